package db

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jqs7/regex/pkg/model"
)

type sessionIndex struct {
	chatID  int64
	adminID int
	kind    model.SessionKind
}

type recordIndex struct {
	chatID int64
	msgID  int
}

// Memory implements every store in process memory. It backs local runs
// without AWS and the tests.
type Memory struct {
	mu       sync.RWMutex
	words    map[model.WordType]map[string]model.Word
	sessions map[sessionIndex]model.Session
	records  map[recordIndex]model.Record
	Now      func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		words:    map[model.WordType]map[string]model.Word{},
		sessions: map[sessionIndex]model.Session{},
		records:  map[recordIndex]model.Record{},
		Now:      time.Now,
	}
}

func (m *Memory) GetWord(_ context.Context, t model.WordType, pattern string) (*model.Word, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	word, ok := m.words[t][pattern]
	if !ok {
		return nil, ErrNotFound
	}
	return &word, nil
}

func (m *Memory) ListWords(_ context.Context, t model.WordType) ([]model.Word, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	words := make([]model.Word, 0, len(m.words[t]))
	for _, w := range m.words[t] {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool { return words[i].Pattern < words[j].Pattern })
	return words, nil
}

func (m *Memory) PutWord(_ context.Context, word model.Word) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.words[word.Type] == nil {
		m.words[word.Type] = map[string]model.Word{}
	}
	m.words[word.Type][word.Pattern] = word
	return nil
}

func (m *Memory) DeleteWord(_ context.Context, t model.WordType, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.words[t][pattern]; !ok {
		return ErrNotFound
	}
	delete(m.words[t], pattern)
	return nil
}

func (m *Memory) expired(at time.Time) bool {
	return !at.IsZero() && !m.Now().Before(at)
}

func (m *Memory) GetSession(_ context.Context, chatID int64, adminID int, kind model.SessionKind) (*model.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[sessionIndex{chatID, adminID, kind}]
	if !ok || m.expired(s.ExpireAt) {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *Memory) PutSession(_ context.Context, session model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionIndex{session.ChatID, session.AdminID, session.Kind}] = session
	return nil
}

func (m *Memory) DeleteSession(_ context.Context, chatID int64, adminID int, kind model.SessionKind) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionIndex{chatID, adminID, kind})
	return nil
}

func (m *Memory) GetRecord(_ context.Context, chatID int64, msgID int) (*model.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.records[recordIndex{chatID, msgID}]
	if !ok || m.expired(r.ExpireAt) {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (m *Memory) PutRecord(_ context.Context, record model.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[recordIndex{record.ChatID, record.MsgID}] = record
	return nil
}
