package db

import (
	"context"
	"testing"
	"time"

	"github.com/jqs7/regex/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

func TestMemoryWords(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.PutWord(ctx, model.Word{Type: model.TypeAd, Pattern: "b"}))
	require.NoError(t, m.PutWord(ctx, model.Word{Type: model.TypeAd, Pattern: "a"}))
	require.NoError(t, m.PutWord(ctx, model.Word{Type: model.TypeBan, Pattern: "c"}))

	words, err := m.ListWords(ctx, model.TypeAd)
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "a", words[0].Pattern)
	assert.Equal(t, "b", words[1].Pattern)

	_, err = m.GetWord(ctx, model.TypeBan, "a")
	assert.True(t, xerrors.Is(err, ErrNotFound))

	assert.NoError(t, m.DeleteWord(ctx, model.TypeAd, "a"))
	assert.True(t, xerrors.Is(m.DeleteWord(ctx, model.TypeAd, "a"), ErrNotFound))
}

func TestMemorySessionExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1000, 0)
	m := NewMemory()
	m.Now = func() time.Time { return now }

	require.NoError(t, m.PutSession(ctx, model.Session{
		ChatID: 1, AdminID: 2, Kind: model.SessionAsk, Key: "k", ExpireAt: now.Add(time.Minute),
	}))
	s, err := m.GetSession(ctx, 1, 2, model.SessionAsk)
	require.NoError(t, err)
	assert.Equal(t, "k", s.Key)

	_, err = m.GetSession(ctx, 1, 2, model.SessionPage)
	assert.Equal(t, ErrNotFound, err)

	now = now.Add(time.Minute)
	_, err = m.GetSession(ctx, 1, 2, model.SessionAsk)
	assert.Equal(t, ErrNotFound, err)

	require.NoError(t, m.PutRecord(ctx, model.Record{ChatID: 1, MsgID: 9, AdminID: 2}))
	r, err := m.GetRecord(ctx, 1, 9)
	require.NoError(t, err)
	assert.Equal(t, 2, r.AdminID)
}
