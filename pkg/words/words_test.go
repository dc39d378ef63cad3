package words

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jqs7/regex/pkg/db"
	"github.com/jqs7/regex/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

func newTestManager() (*Manager, *db.Memory) {
	store := db.NewMemory()
	m := NewManager(store, zap.NewNop())
	m.now = func() time.Time { return time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC) }
	return m, store
}

func patterns(list []model.Word) []string {
	out := make([]string, len(list))
	for i, w := range list {
		out[i] = w.Pattern
	}
	return out
}

func TestAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("新类别添加后可精确查询", func(t *testing.T) {
		m, store := newTestManager()
		conflicts, err := m.Add(ctx, model.TypeAd, "加微信", 7)
		require.NoError(t, err)
		assert.Empty(t, conflicts)

		w, err := store.GetWord(ctx, model.TypeAd, "加微信")
		require.NoError(t, err)
		assert.Equal(t, 7, w.CreatedBy)

		found, err := m.Search(ctx, []model.WordType{model.TypeAd}, "加微信")
		require.NoError(t, err)
		assert.Equal(t, []string{"加微信"}, patterns(found))
	})

	t.Run("重复添加", func(t *testing.T) {
		m, _ := newTestManager()
		_, err := m.Add(ctx, model.TypeAd, "abc", 1)
		require.NoError(t, err)
		_, err = m.Add(ctx, model.TypeAd, "abc", 1)
		assert.True(t, xerrors.Is(err, ErrExists))
	})

	t.Run("正则有误", func(t *testing.T) {
		m, store := newTestManager()
		_, err := m.Add(ctx, model.TypeAd, "a(b", 1)
		assert.True(t, xerrors.Is(err, ErrInvalid))
		list, _ := store.ListWords(ctx, model.TypeAd)
		assert.Empty(t, list)
	})

	t.Run("重叠时不写入", func(t *testing.T) {
		m, store := newTestManager()
		require.NoError(t, store.PutWord(ctx, model.Word{Type: model.TypeAd, Pattern: "foobar"}))
		require.NoError(t, store.PutWord(ctx, model.Word{Type: model.TypeAd, Pattern: "f.x"}))
		require.NoError(t, store.PutWord(ctx, model.Word{Type: model.TypeAd, Pattern: "zzz"}))

		conflicts, err := m.Add(ctx, model.TypeAd, "foo", 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"foobar"}, conflicts)

		conflicts, err = m.Add(ctx, model.TypeAd, "fox", 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"f.x"}, conflicts)

		_, err = store.GetWord(ctx, model.TypeAd, "foo")
		assert.Equal(t, db.ErrNotFound, err)
	})
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	session := model.Session{
		AdminID: 3, Type: model.TypeBan, Word: "foo", Conflicts: []string{"foobar", "foobaz"},
	}
	setup := func() (*Manager, *db.Memory) {
		m, store := newTestManager()
		for _, p := range session.Conflicts {
			require.NoError(t, store.PutWord(ctx, model.Word{Type: model.TypeBan, Pattern: p}))
		}
		return m, store
	}

	t.Run("new", func(t *testing.T) {
		m, _ := setup()
		changed, err := m.Resolve(ctx, session, model.AskNew)
		require.NoError(t, err)
		assert.True(t, changed)
		got, _ := m.Patterns(ctx, model.TypeBan)
		assert.Equal(t, []string{"foo", "foobar", "foobaz"}, got)
	})

	t.Run("replace", func(t *testing.T) {
		m, _ := setup()
		changed, err := m.Resolve(ctx, session, model.AskReplace)
		require.NoError(t, err)
		assert.True(t, changed)
		got, _ := m.Patterns(ctx, model.TypeBan)
		assert.Equal(t, []string{"foo"}, got)
	})

	t.Run("cancel", func(t *testing.T) {
		m, _ := setup()
		changed, err := m.Resolve(ctx, session, model.AskCancel)
		require.NoError(t, err)
		assert.False(t, changed)
		got, _ := m.Patterns(ctx, model.TypeBan)
		assert.Equal(t, []string{"foobar", "foobaz"}, got)
	})

	t.Run("确认期间已被他人添加", func(t *testing.T) {
		m, store := setup()
		changed, err := m.Resolve(ctx, model.Session{AdminID: 2, Type: session.Type, Word: session.Word}, model.AskNew)
		require.NoError(t, err)
		require.True(t, changed)
		w, err := store.GetWord(ctx, model.TypeBan, "foo")
		require.NoError(t, err)
		w.Status.Total = 42
		require.NoError(t, store.PutWord(ctx, *w))

		for _, answer := range []string{model.AskNew, model.AskReplace} {
			changed, err = m.Resolve(ctx, session, answer)
			assert.True(t, xerrors.Is(err, ErrExists), answer)
			assert.False(t, changed)
		}
		w, err = store.GetWord(ctx, model.TypeBan, "foo")
		require.NoError(t, err)
		assert.Equal(t, 2, w.CreatedBy)
		assert.Equal(t, 42, w.Status.Total)
		got, _ := m.Patterns(ctx, model.TypeBan)
		assert.Equal(t, []string{"foo", "foobar", "foobaz"}, got)
	})

	t.Run("unknown", func(t *testing.T) {
		m, _ := setup()
		_, err := m.Resolve(ctx, session, "maybe")
		assert.Error(t, err)
	})
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	m, store := newTestManager()
	require.NoError(t, store.PutWord(ctx, model.Word{Type: model.TypeCon, Pattern: "qq"}))

	assert.True(t, xerrors.Is(m.Remove(ctx, model.TypeCon, "wx"), db.ErrNotFound))
	got, _ := m.Patterns(ctx, model.TypeCon)
	assert.Equal(t, []string{"qq"}, got)

	assert.NoError(t, m.Remove(ctx, model.TypeCon, "qq"))
	got, _ = m.Patterns(ctx, model.TypeCon)
	assert.Empty(t, got)
}

func TestListAndReset(t *testing.T) {
	ctx := context.Background()
	m, store := newTestManager()
	for i, total := range []int{5, 0, 9} {
		require.NoError(t, store.PutWord(ctx, model.Word{
			Type:    model.TypeNm,
			Pattern: fmt.Sprintf("w%d", i),
			Status:  model.WordStatus{Total: total, Today: 1},
		}))
	}

	asc, err := m.List(ctx, model.TypeNm, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"w0", "w1", "w2"}, patterns(asc))

	desc, err := m.List(ctx, model.TypeNm, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"w2", "w0", "w1"}, patterns(desc))

	require.NoError(t, m.Reset(ctx, model.TypeNm))
	after, err := m.List(ctx, model.TypeNm, false)
	require.NoError(t, err)
	assert.Equal(t, patterns(asc), patterns(after))
	for _, w := range after {
		assert.Equal(t, model.DefaultStatus(m.now()), w.Status)
	}
}

func TestAddHits(t *testing.T) {
	ctx := context.Background()
	m, store := newTestManager()
	created := m.now().Add(-4 * 24 * time.Hour)
	require.NoError(t, store.PutWord(ctx, model.Word{
		Type: model.TypeAd, Pattern: "x", CreatedAt: created,
		Status: model.WordStatus{Today: 3, Total: 4, Time: m.now().Add(-24 * time.Hour)},
	}))

	require.NoError(t, m.AddHits(ctx, model.TypeAd, map[string]int{"x": 4, "gone": 1}))
	w, err := store.GetWord(ctx, model.TypeAd, "x")
	require.NoError(t, err)
	assert.Equal(t, 4, w.Status.Today)
	assert.Equal(t, 8, w.Status.Total)
	assert.InDelta(t, 2.0, w.Status.Average, 0.001)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	m, store := newTestManager()
	for _, w := range []model.Word{
		{Type: model.TypeAd, Pattern: "代理"},
		{Type: model.TypeAd, Pattern: "v[x信]"},
		{Type: model.TypeBan, Pattern: "代理商"},
		{Type: model.TypeBan, Pattern: "无关"},
	} {
		require.NoError(t, store.PutWord(ctx, w))
	}

	found, err := m.Search(ctx, []model.WordType{model.TypeAd, model.TypeBan}, "代理")
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"代理", "代理商"}, patterns(found)); diff != "" {
		t.Errorf("search mismatch (-want +got):\n%s", diff)
	}

	found, err = m.Search(ctx, []model.WordType{model.TypeAd}, "加我vx")
	require.NoError(t, err)
	assert.Equal(t, []string{"v[x信]"}, patterns(found))
}

func TestPaginate(t *testing.T) {
	var list []model.Word
	for i := 0; i < 7; i++ {
		list = append(list, model.Word{Pattern: fmt.Sprintf("%d", i)})
	}

	page, pages := Paginate(list, 0, 3)
	assert.Equal(t, 3, pages)
	assert.Equal(t, []string{"0", "1", "2"}, patterns(page))

	page, _ = Paginate(list, 2, 3)
	assert.Equal(t, []string{"6"}, patterns(page))

	again, _ := Paginate(list, 2, 3)
	assert.Equal(t, page, again)

	page, _ = Paginate(list, 3, 3)
	assert.Nil(t, page)

	page, pages = Paginate(nil, 0, 3)
	assert.Equal(t, 1, pages)
	assert.Empty(t, page)
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemory()
	m := NewManager(store, zap.NewNop())

	_, err := m.Add(ctx, model.TypeAd, "foo", 1)
	require.NoError(t, err)

	added, err := m.Import(ctx, model.TypeAd, []string{"foo", "fo+", "(", "", "bar", "bar"}, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	list, err := m.Patterns(ctx, model.TypeAd)
	require.NoError(t, err)
	assert.Equal(t, []string{"bar", "fo+", "foo"}, list)
}
