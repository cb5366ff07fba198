package table

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/table-facts/internal/domain"
)

// --- mock for cache tests ---

type countingLoader struct {
	calls int
	rows  []domain.RawRow
	err   error
}

func (m *countingLoader) Load(_ context.Context, _ domain.Source) ([]domain.RawRow, error) {
	m.calls++
	return m.rows, m.err
}

func writeTable(t *testing.T, content string) domain.Source {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weather.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return domain.Source{Path: path, Delimiter: ','}
}

// --- CachedLoader tests ---

func TestCachedLoader_CacheHit(t *testing.T) {
	inner := &countingLoader{rows: []domain.RawRow{domain.RowOf("Day", "1")}}
	cached := NewCachedLoader(inner, 4)
	src := writeTable(t, "Day\n1\n")

	r1, err := cached.Load(context.Background(), src)
	require.NoError(t, err)
	r2, err := cached.Load(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
	assert.Equal(t, 1, inner.calls, "should only call inner once")
}

func TestCachedLoader_ReloadsChangedFile(t *testing.T) {
	inner := &countingLoader{rows: []domain.RawRow{domain.RowOf("Day", "1")}}
	cached := NewCachedLoader(inner, 4)
	src := writeTable(t, "Day\n1\n")

	_, err := cached.Load(context.Background(), src)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(src.Path, []byte("Day\n1\n2\n"), 0o600))
	_, err = cached.Load(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedLoader_DelimiterIsPartOfKey(t *testing.T) {
	inner := &countingLoader{rows: []domain.RawRow{domain.RowOf("Day", "1")}}
	cached := NewCachedLoader(inner, 4)
	src := writeTable(t, "Day\n1\n")

	_, _ = cached.Load(context.Background(), src)
	src.Delimiter = ';'
	_, _ = cached.Load(context.Background(), src)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedLoader_EmptyTablesNotCached(t *testing.T) {
	inner := &countingLoader{}
	cached := NewCachedLoader(inner, 4)
	src := writeTable(t, "")

	_, _ = cached.Load(context.Background(), src)
	_, _ = cached.Load(context.Background(), src)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedLoader_MissingFileDelegates(t *testing.T) {
	want := &domain.ResourceError{Source: "absent.csv", Err: domain.ErrResourceNotFound}
	inner := &countingLoader{err: want}
	cached := NewCachedLoader(inner, 4)

	_, err := cached.Load(context.Background(), domain.Source{Path: filepath.Join(t.TempDir(), "absent.csv")})

	var resErr *domain.ResourceError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, 1, inner.calls)
}

func TestCachedLoader_WrapsRealLoader(t *testing.T) {
	cached := NewCachedLoader(NewLoader(discardLogger()), 4)
	src := writeTable(t, "Day,MxT,MnT\n1,88,59\n")

	rows, err := cached.Load(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	v, ok := rows[0].Get("MxT")
	require.True(t, ok)
	assert.Equal(t, "88", v)
}

// --- LRU cache unit tests ---

func tableOfSize(n int) cachedTable {
	return cachedTable{size: int64(n)}
}

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3)

	c.put("a", tableOfSize(1))
	c.put("b", tableOfSize(2))

	result, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, int64(1), result.size)

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", tableOfSize(1))
	c.put("b", tableOfSize(2))
	c.put("c", tableOfSize(3)) // evicts "a"

	_, ok := c.get("a")
	assert.False(t, ok, "a should have been evicted")

	result, ok := c.get("b")
	assert.True(t, ok)
	assert.Equal(t, int64(2), result.size)

	result, ok = c.get("c")
	assert.True(t, ok)
	assert.Equal(t, int64(3), result.size)
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", tableOfSize(1))
	c.put("b", tableOfSize(2))

	c.get("a")

	// "b" is now least recently used.
	c.put("c", tableOfSize(3))

	_, ok := c.get("a")
	assert.True(t, ok, "a was accessed recently, should not be evicted")

	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", tableOfSize(1))
	c.put("a", tableOfSize(2))

	result, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, int64(2), result.size)
}
