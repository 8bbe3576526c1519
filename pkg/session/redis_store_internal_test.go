package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/wayfinder/pkg/history"
)

func TestSnapshotEncoding(t *testing.T) {
	t.Parallel()

	snap := history.Snapshot{Entries: []string{"/", "/a?x=1#top"}, Index: 1}
	data, err := encodeSnapshot(snap)
	require.NoError(t, err)
	assert.JSONEq(t, `{"entries":["/","/a?x=1#top"],"index":1}`, string(data))

	got, err := decodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, snap, got)

	_, err = decodeSnapshot([]byte(`{"entries":[],"index":0}`))
	assert.ErrorIs(t, err, ErrDecode)

	_, err = decodeSnapshot([]byte(`{`))
	assert.ErrorIs(t, err, ErrDecode)

	_, err = encodeSnapshot(history.Snapshot{})
	assert.ErrorIs(t, err, ErrEncode)
}

func TestLRU(t *testing.T) {
	t.Parallel()

	var evicted []string
	c := newLRU[string, int](2)
	c.onEvict = func(key string, _ int) { evicted = append(evicted, key) }

	c.put("a", 1)
	c.put("b", 2)
	c.put("a", 10)
	c.put("c", 3)

	_, ok := c.get("b")
	assert.False(t, ok)
	v, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, 10, v)
	assert.Equal(t, []string{"b"}, evicted)

	assert.True(t, c.remove("a"))
	assert.False(t, c.remove("a"))
	assert.Equal(t, 1, c.len())
	assert.Equal(t, []string{"b"}, evicted, "explicit removal is not an eviction")
}
