package sorted_test

import (
	"bytes"
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/amp-labs/sortedslice/sorted"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// entry is a path-keyed element, the typical shape for byte-sequence keys.
type entry struct {
	Path string
	Size int
}

func pathKey(e entry) []byte {
	return []byte(e.Path)
}

func TestNewBytes(t *testing.T) {
	t.Parallel()

	t.Run("creates empty container", func(t *testing.T) {
		t.Parallel()

		s := sorted.NewBytes(pathKey)
		require.NotNil(t, s)
		assert.Equal(t, 0, s.Len())
		assert.True(t, s.IsEmpty())
	})

	t.Run("empty container answers every query negatively", func(t *testing.T) {
		t.Parallel()

		s := sorted.NewBytes(pathKey)

		_, found := s.Find([]byte("anything"))
		assert.False(t, found)

		assert.False(t, s.Contains([]byte("anything")))
		assert.True(t, s.Pop().Empty())

		_, err := s.RemoveAt(0)
		assert.ErrorIs(t, err, sorted.ErrIndexOutOfRange)
	})
}

func TestBytesFromSlice(t *testing.T) {
	t.Parallel()

	t.Run("sorts lexicographically with shorter prefixes first", func(t *testing.T) {
		t.Parallel()

		s := sorted.BytesFromSlice([]entry{
			{Path: "applesauce"},
			{Path: "app"},
			{Path: "apricot"},
			{Path: "apples"},
			{Path: "apple"},
			{Path: "banana"},
		}, pathKey)

		var got []string
		for e := range s.Seq() {
			got = append(got, e.Path)
		}

		assert.Equal(t, []string{"app", "apple", "apples", "applesauce", "apricot", "banana"}, got)
	})

	t.Run("is stable for equal keys", func(t *testing.T) {
		t.Parallel()

		s := sorted.BytesFromSlice([]entry{
			{Path: "dup", Size: 1},
			{Path: "aaa", Size: 0},
			{Path: "dup", Size: 2},
		}, pathKey)

		assert.Equal(t, []entry{
			{Path: "aaa", Size: 0},
			{Path: "dup", Size: 1},
			{Path: "dup", Size: 2},
		}, s.Entries())
	})
}

func TestBytesFind(t *testing.T) {
	t.Parallel()

	s := sorted.BytesFromSlice([]entry{
		{Path: "etc/hosts", Size: 1},
		{Path: "etc/hostname", Size: 2},
		{Path: "etc/passwd", Size: 3},
		{Path: "usr/bin/env", Size: 4},
	}, pathKey)

	t.Run("finds by exact key", func(t *testing.T) {
		t.Parallel()

		got, found := s.Find([]byte("etc/hostname"))
		require.True(t, found)
		assert.Equal(t, 2, got.Size)
	})

	t.Run("a shared prefix alone does not match", func(t *testing.T) {
		t.Parallel()

		_, found := s.Find([]byte("etc/host"))
		assert.False(t, found)

		_, found = s.Find([]byte("etc/hostss"))
		assert.False(t, found)
	})

	t.Run("position reflects sorted order", func(t *testing.T) {
		t.Parallel()

		pos, found := s.Position([]byte("etc/hosts"))
		require.True(t, found)
		assert.Equal(t, 1, pos)
	})

	t.Run("ties resolve to the first of an equal-key run", func(t *testing.T) {
		t.Parallel()

		dup := sorted.NewBytes(pathKey)
		dup.Insert(entry{Path: "same", Size: 1})
		dup.Insert(entry{Path: "same", Size: 2})
		dup.Insert(entry{Path: "other", Size: 3})

		got, found := dup.Find([]byte("same"))
		require.True(t, found)
		assert.Equal(t, 1, got.Size, "first-inserted element wins Find")

		pos, found := dup.Position([]byte("same"))
		require.True(t, found)
		assert.Equal(t, 1, pos)
	})
}

func TestBytesInsert(t *testing.T) {
	t.Parallel()

	t.Run("keeps elements sorted regardless of insertion order", func(t *testing.T) {
		t.Parallel()

		paths := []string{"mm", "aa", "zz", "a", "m", "z", "mmm"}

		s := sorted.NewBytes(pathKey)
		for _, p := range paths {
			s.Insert(entry{Path: p})
		}

		want := slices.Clone(paths)
		slices.Sort(want)

		var got []string
		for e := range s.Seq() {
			got = append(got, e.Path)
		}

		assert.Equal(t, want, got)
	})

	t.Run("empty key sorts first", func(t *testing.T) {
		t.Parallel()

		s := sorted.NewBytes(pathKey)
		s.Insert(entry{Path: "a"})
		s.Insert(entry{Path: ""})

		assert.Equal(t, []entry{{Path: ""}, {Path: "a"}}, s.Entries())

		got, found := s.Find([]byte{})
		require.True(t, found)
		assert.Equal(t, "", got.Path)
	})

	t.Run("copies the derived key", func(t *testing.T) {
		t.Parallel()

		type buffered struct {
			key []byte
		}

		buf := []byte("mutable")
		s := sorted.NewBytes(func(b buffered) []byte { return b.key })
		s.Insert(buffered{key: buf})

		// Caller scribbles over the key's backing memory after insertion.
		copy(buf, "XXXXXXX")

		assert.True(t, s.Contains([]byte("mutable")))
		assert.False(t, s.Contains([]byte("XXXXXXX")))
	})
}

func TestBytesRemove(t *testing.T) {
	t.Parallel()

	t.Run("removes by key", func(t *testing.T) {
		t.Parallel()

		s := sorted.BytesFromSlice([]entry{
			{Path: "a", Size: 1},
			{Path: "b", Size: 2},
			{Path: "c", Size: 3},
		}, pathKey)

		removed := s.RemoveByKey([]byte("b"))
		require.True(t, removed.NonEmpty())
		assert.Equal(t, 2, removed.GetOrPanic().Size)
		assert.False(t, s.Contains([]byte("b")))
		assert.Equal(t, 2, s.Len())
	})

	t.Run("absent key returns None without mutating", func(t *testing.T) {
		t.Parallel()

		s := sorted.BytesFromSlice([]entry{{Path: "only"}}, pathKey)

		assert.True(t, s.RemoveByKey([]byte("missing")).Empty())
		assert.Equal(t, 1, s.Len())
	})

	t.Run("removes the first of an equal-key run", func(t *testing.T) {
		t.Parallel()

		s := sorted.NewBytes(pathKey)
		s.Insert(entry{Path: "dup", Size: 1})
		s.Insert(entry{Path: "dup", Size: 2})

		removed := s.RemoveByKey([]byte("dup"))
		require.True(t, removed.NonEmpty())
		assert.Equal(t, 1, removed.GetOrPanic().Size)

		got, found := s.Find([]byte("dup"))
		require.True(t, found)
		assert.Equal(t, 2, got.Size)
	})

	t.Run("removes by position", func(t *testing.T) {
		t.Parallel()

		s := sorted.BytesFromSlice([]entry{
			{Path: "x"}, {Path: "y"}, {Path: "z"},
		}, pathKey)

		removed, err := s.RemoveAt(0)
		require.NoError(t, err)
		assert.Equal(t, "x", removed.Path)

		_, err = s.RemoveAt(5)
		assert.ErrorIs(t, err, sorted.ErrIndexOutOfRange)
	})

	t.Run("pop takes the greatest key", func(t *testing.T) {
		t.Parallel()

		s := sorted.BytesFromSlice([]entry{
			{Path: "b"}, {Path: "c"}, {Path: "a"},
		}, pathKey)

		assert.Equal(t, "c", s.Pop().GetOrPanic().Path)
		assert.Equal(t, "b", s.Pop().GetOrPanic().Path)
		assert.Equal(t, "a", s.Pop().GetOrPanic().Path)
		assert.True(t, s.Pop().Empty())
	})
}

func TestBytesClear(t *testing.T) {
	t.Parallel()

	s := sorted.BytesFromSlice([]entry{{Path: "a"}, {Path: "b"}}, pathKey)
	s.Clear()

	assert.True(t, s.IsEmpty())
	assert.False(t, s.Contains([]byte("a")))

	s.Insert(entry{Path: "fresh"})
	assert.Equal(t, 1, s.Len())
}

func TestBytesAlignment(t *testing.T) {
	t.Parallel()

	s := sorted.NewBytes(pathKey)
	for _, p := range []string{"delta", "alpha", "echo", "bravo", "charlie"} {
		s.Insert(entry{Path: p})
	}

	s.RemoveByKey([]byte("bravo"))

	_, err := s.RemoveAt(0)
	require.NoError(t, err)

	entries := s.Entries()
	require.Len(t, entries, s.Len())

	for i := range s.Len() {
		key, err := s.KeyAt(i)
		require.NoError(t, err)
		require.Equal(t, pathKey(entries[i]), key, "cached key at %d does not match derived key", i)
	}
}

func TestBytesRandomizedAgainstBytesCompare(t *testing.T) {
	t.Parallel()

	type record struct {
		ID string
	}

	keyOf := func(r record) []byte { return []byte(r.ID) }

	records := make([]record, 250)
	for i := range records {
		records[i] = record{ID: uuid.NewString()}
	}

	s := sorted.BytesFromSlice(records, keyOf)
	require.Equal(t, len(records), s.Len())

	// Order agrees with bytes.Compare.
	var prev []byte
	for i := range s.Len() {
		key, err := s.KeyAt(i)
		require.NoError(t, err)
		require.LessOrEqual(t, bytes.Compare(prev, key), 0)
		prev = key
	}

	// Every record is discoverable.
	for _, r := range records {
		got, found := s.Find([]byte(r.ID))
		require.True(t, found, "missing key %q", r.ID)
		require.Equal(t, r, got)
	}

	assert.False(t, s.Contains([]byte("not-a-uuid")))
}

func TestBytesPrefixHeavyCorpus(t *testing.T) {
	t.Parallel()

	// Long shared prefixes exercise the prefix-skipping comparisons.
	rng := rand.New(rand.NewSource(1)) //nolint:gosec

	var keys []string

	prefixes := []string{
		"tenants/acme/environments/production/services/",
		"tenants/acme/environments/staging/services/",
		"tenants/globex/environments/production/services/",
	}
	for _, prefix := range prefixes {
		for i := range 40 {
			keys = append(keys, fmt.Sprintf("%ssvc-%03d", prefix, i))
		}
	}

	rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })

	s := sorted.NewBytes(func(k string) []byte { return []byte(k) })
	for _, k := range keys {
		s.Insert(k)
	}

	want := slices.Clone(keys)
	slices.Sort(want)
	assert.Equal(t, want, s.Entries())

	for _, k := range keys {
		got, found := s.Find([]byte(k))
		require.True(t, found, "missing key %q", k)
		require.Equal(t, k, got)
	}

	// Probes that diverge only at the tail of a long shared prefix.
	assert.False(t, s.Contains([]byte("tenants/acme/environments/production/services/svc-999")))
	assert.False(t, s.Contains([]byte("tenants/acme/environments/production/services/")))

	removed := s.RemoveByKey([]byte(want[50]))
	require.True(t, removed.NonEmpty())
	assert.False(t, s.Contains([]byte(want[50])))
	assert.Equal(t, len(keys)-1, s.Len())
}
