// Package share distributes word sets to the downstream bots subscribed to
// each category and accepts their hit-count reports.
package share

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/jqs7/regex/pkg/lock"
	"github.com/jqs7/regex/pkg/model"
	"github.com/jqs7/regex/pkg/queue"
	"github.com/jqs7/regex/pkg/words"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
)

type Sharer struct {
	queue     queue.Interface
	queueURL  string
	receivers map[model.WordType][]string
	types     []model.WordType
	words     *words.Manager
	lock      lock.Interface
	logger    *zap.Logger
}

func NewSharer(q queue.Interface, queueURL string, receivers map[model.WordType][]string,
	types []model.WordType, w *words.Manager, l lock.Interface, logger *zap.Logger) *Sharer {
	return &Sharer{
		queue:     q,
		queueURL:  queueURL,
		receivers: receivers,
		types:     types,
		words:     w,
		lock:      l,
		logger:    logger,
	}
}

func (s *Sharer) send(ctx context.Context, receivers []string, actionType string, data interface{}) error {
	if len(receivers) == 0 {
		return nil
	}
	if s.queueURL == "" {
		s.logger.Debug("exchange queue not configured", zap.String("action_type", actionType))
		return nil
	}
	return s.queue.SendMsg(ctx, s.queueURL, model.ShareData{
		From:       model.ShareSender,
		To:         receivers,
		Action:     model.ActionRegex,
		ActionType: actionType,
		Data:       data,
	}, 0)
}

// Update pushes the current word set of t to its receivers.
func (s *Sharer) Update(ctx context.Context, t model.WordType) error {
	patterns, err := s.words.Patterns(ctx, t)
	if err != nil {
		return err
	}
	if err := s.send(ctx, s.receivers[t], model.ActionTypeUpdate, model.WordsUpdate{Type: t, Words: patterns}); err != nil {
		return xerrors.Errorf("推送 %s 失败: %w", t, err)
	}
	s.logger.Info("words shared", zap.String("type", string(t)), zap.Int("words", len(patterns)))
	return nil
}

func (s *Sharer) UpdateAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, t := range s.types {
		t := t
		g.Go(func() error {
			return s.Update(ctx, t)
		})
	}
	return g.Wait()
}

// Receivers returns the sorted union of every category's receivers.
func (s *Sharer) Receivers() []string {
	set := map[string]struct{}{}
	for _, list := range s.receivers {
		for _, r := range list {
			set[r] = struct{}{}
		}
	}
	all := make([]string, 0, len(set))
	for r := range set {
		all = append(all, r)
	}
	sort.Strings(all)
	return all
}

// Count asks every receiver to report its hit counts.
func (s *Sharer) Count(ctx context.Context) error {
	if err := s.send(ctx, s.Receivers(), model.ActionTypeCount, model.CountAsk); err != nil {
		return xerrors.Errorf("发送计数请求失败: %w", err)
	}
	return nil
}

// Receive handles one envelope from the exchange. Only hit-count reports
// addressed to this bot are processed; everything else is ignored.
func (s *Sharer) Receive(ctx context.Context, data model.ShareData) error {
	if !addressed(data.To) || data.Action != model.ActionRegex || data.ActionType != model.ActionTypeCount {
		return nil
	}
	raw, err := json.Marshal(data.Data)
	if err != nil {
		return xerrors.Errorf("编码计数失败: %w", err)
	}
	counts := map[model.WordType]map[string]int{}
	if err := json.Unmarshal(raw, &counts); err != nil {
		s.logger.Warn("计数格式有误", zap.String("from", data.From), zap.Error(err))
		return nil
	}

	release, err := s.lock.Lock(ctx, lock.Regex)
	if err != nil {
		return err
	}
	defer release()
	for t, hits := range counts {
		if !t.Valid() {
			continue
		}
		if err := s.words.AddHits(ctx, t, hits); err != nil {
			return err
		}
	}
	s.logger.Info("counts received", zap.String("from", data.From), zap.Int("types", len(counts)))
	return nil
}

func addressed(to []string) bool {
	for _, r := range to {
		if r == model.ShareSender {
			return true
		}
	}
	return false
}
