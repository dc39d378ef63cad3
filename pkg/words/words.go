// Package words implements the operations on the categorized pattern table:
// adding with overlap detection, confirmation of overlapping additions,
// removal, listing, loose search, status reset and hit accounting.
package words

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/jqs7/regex/pkg/db"
	"github.com/jqs7/regex/pkg/model"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

var (
	ErrExists  = xerrors.New("word exists")
	ErrInvalid = xerrors.New("invalid pattern")
)

type Manager struct {
	words  db.IWords
	logger *zap.Logger
	now    func() time.Time
}

func NewManager(words db.IWords, logger *zap.Logger) *Manager {
	return &Manager{
		words:  words,
		logger: logger,
		now:    time.Now,
	}
}

// Add stores pattern unless it is invalid, already present, or overlaps
// existing patterns of the same type. Overlaps are returned without writing
// anything so the caller can ask for confirmation.
func (m *Manager) Add(ctx context.Context, t model.WordType, pattern string, adminID int) ([]string, error) {
	re, err := compile(pattern)
	if err != nil {
		return nil, xerrors.Errorf("%s: %w", err.Error(), ErrInvalid)
	}
	existing, err := m.words.ListWords(ctx, t)
	if err != nil {
		return nil, err
	}
	var conflicts []string
	for _, w := range existing {
		if w.Pattern == pattern {
			return nil, ErrExists
		}
		if overlaps(re, pattern, w.Pattern) {
			conflicts = append(conflicts, w.Pattern)
		}
	}
	if len(conflicts) > 0 {
		return conflicts, nil
	}
	return nil, m.put(ctx, t, pattern, adminID)
}

func (m *Manager) put(ctx context.Context, t model.WordType, pattern string, adminID int) error {
	now := m.now()
	return m.words.PutWord(ctx, model.Word{
		Type:      t,
		Pattern:   pattern,
		CreatedBy: adminID,
		CreatedAt: now,
		Status:    model.DefaultStatus(now),
	})
}

// Resolve applies the admin's answer to a pending addition. It reports
// whether the table changed. ErrExists means the word was stored by someone
// else while the confirmation was pending.
func (m *Manager) Resolve(ctx context.Context, s model.Session, answer string) (bool, error) {
	switch answer {
	case model.AskNew, model.AskReplace:
		_, err := m.words.GetWord(ctx, s.Type, s.Word)
		if err == nil {
			return false, ErrExists
		}
		if !xerrors.Is(err, db.ErrNotFound) {
			return false, err
		}
	}
	switch answer {
	case model.AskNew:
		return true, m.put(ctx, s.Type, s.Word, s.AdminID)
	case model.AskReplace:
		for _, old := range s.Conflicts {
			if err := m.words.DeleteWord(ctx, s.Type, old); err != nil && !xerrors.Is(err, db.ErrNotFound) {
				return false, err
			}
		}
		return true, m.put(ctx, s.Type, s.Word, s.AdminID)
	case model.AskCancel:
		return false, nil
	}
	return false, xerrors.Errorf("unknown answer %q", answer)
}

// Import stores every valid pattern not yet present, skipping the overlap
// check. It returns how many patterns were added.
func (m *Manager) Import(ctx context.Context, t model.WordType, patterns []string, adminID int) (int, error) {
	existing, err := m.Patterns(ctx, t)
	if err != nil {
		return 0, err
	}
	seen := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		seen[p] = struct{}{}
	}
	added := 0
	for _, p := range patterns {
		if _, ok := seen[p]; ok || p == "" {
			continue
		}
		if _, err := compile(p); err != nil {
			m.logger.Warn("skip invalid pattern", zap.String("type", string(t)), zap.String("pattern", p), zap.Error(err))
			continue
		}
		if err := m.put(ctx, t, p, adminID); err != nil {
			return added, err
		}
		seen[p] = struct{}{}
		added++
	}
	return added, nil
}

func (m *Manager) Remove(ctx context.Context, t model.WordType, pattern string) error {
	return m.words.DeleteWord(ctx, t, pattern)
}

func (m *Manager) Patterns(ctx context.Context, t model.WordType) ([]string, error) {
	list, err := m.words.ListWords(ctx, t)
	if err != nil {
		return nil, err
	}
	patterns := make([]string, len(list))
	for i, w := range list {
		patterns[i] = w.Pattern
	}
	return patterns, nil
}

// List returns the words of t ordered by pattern, or by total hits when desc is set.
func (m *Manager) List(ctx context.Context, t model.WordType, desc bool) ([]model.Word, error) {
	list, err := m.words.ListWords(ctx, t)
	if err != nil {
		return nil, err
	}
	if desc {
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].Status.Total != list[j].Status.Total {
				return list[i].Status.Total > list[j].Status.Total
			}
			return list[i].Pattern < list[j].Pattern
		})
	}
	return list, nil
}

// Search loosely matches query against every pattern of the given types.
func (m *Manager) Search(ctx context.Context, types []model.WordType, query string) ([]model.Word, error) {
	var result []model.Word
	for _, t := range types {
		list, err := m.words.ListWords(ctx, t)
		if err != nil {
			return nil, err
		}
		for _, w := range list {
			if Similar(w.Pattern, query) {
				result = append(result, w)
			}
		}
	}
	return result, nil
}

func (m *Manager) Reset(ctx context.Context, t model.WordType) error {
	list, err := m.words.ListWords(ctx, t)
	if err != nil {
		return err
	}
	now := m.now()
	for _, w := range list {
		w.Status = model.DefaultStatus(now)
		if err := m.words.PutWord(ctx, w); err != nil {
			return err
		}
	}
	m.logger.Info("status reset", zap.String("type", string(t)), zap.Int("words", len(list)))
	return nil
}

// AddHits accumulates hit counts reported downstream. Unknown patterns are skipped.
func (m *Manager) AddHits(ctx context.Context, t model.WordType, hits map[string]int) error {
	now := m.now()
	for pattern, n := range hits {
		w, err := m.words.GetWord(ctx, t, pattern)
		if err != nil {
			if xerrors.Is(err, db.ErrNotFound) {
				continue
			}
			return err
		}
		days := now.Sub(w.CreatedAt).Hours() / 24
		if days < 1 {
			days = 1
		}
		if w.Status.Time.IsZero() || w.Status.Time.YearDay() != now.YearDay() || w.Status.Time.Year() != now.Year() {
			w.Status.Today = 0
		}
		w.Status.Today += n
		w.Status.Total += n
		w.Status.Average = float64(w.Status.Total) / days
		w.Status.Time = now
		if err := m.words.PutWord(ctx, *w); err != nil {
			return err
		}
	}
	return nil
}

func compile(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile("(?i)" + pattern)
}

func overlaps(re *regexp.Regexp, pattern, other string) bool {
	if re.MatchString(other) {
		return true
	}
	otherRe, err := compile(other)
	if err != nil {
		return false
	}
	return otherRe.MatchString(pattern)
}

// Similar is the loose match used by search.
func Similar(pattern, query string) bool {
	p, q := strings.ToLower(pattern), strings.ToLower(query)
	if strings.Contains(p, q) || strings.Contains(q, p) {
		return true
	}
	re, err := compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(query)
}

// Paginate returns page (zero based) of list and the number of pages.
func Paginate(list []model.Word, page, perPage int) ([]model.Word, int) {
	pages := (len(list) + perPage - 1) / perPage
	if pages == 0 {
		pages = 1
	}
	if page < 0 || page >= pages {
		return nil, pages
	}
	end := (page + 1) * perPage
	if end > len(list) {
		end = len(list)
	}
	return list[page*perPage : end], pages
}
