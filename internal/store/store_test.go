package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRecord is a minimal keyed record for exercising the generic store.
type testRecord struct {
	ID   int32
	Name string
}

type testCodec struct{}

func (testCodec) Size() int { return 4 + 16 }

func (testCodec) AppendBinary(dst []byte, rec testRecord) []byte {
	dst = AppendInt32(dst, rec.ID)
	dst = AppendFixedString(dst, rec.Name, 16)
	return dst
}

func (testCodec) DecodeBinary(src []byte) (testRecord, error) {
	return testRecord{
		ID:   Int32At(src, 0),
		Name: FixedString(src, 4, 16),
	}, nil
}

func newOrderedStore(capacity int) *Store[testRecord, int32] {
	return New(Config[testRecord, int32]{
		Entity:   "widget",
		Capacity: capacity,
		Codec:    testCodec{},
		Key:      func(r testRecord) int32 { return r.ID },
		Ordered:  true,
	})
}

func TestInsertThenFindReturnsRecordUnchanged(t *testing.T) {
	s := newOrderedStore(0)
	want := testRecord{ID: 7, Name: "anvil"}
	require.NoError(t, s.Insert(want))

	i, ok := s.FindByKey(7)
	require.True(t, ok)
	got, err := s.Get(i)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestInsertDuplicateKeyLeavesStoreUnchanged(t *testing.T) {
	s := newOrderedStore(0)
	require.NoError(t, s.Insert(testRecord{ID: 1, Name: "original"}))

	err := s.Insert(testRecord{ID: 1, Name: "imposter"})
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))
	assert.Equal(t, 1, s.Len())

	i, ok := s.FindByKey(1)
	require.True(t, ok)
	got, err := s.Get(i)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Name, "existing record must be untouched")
}

func TestOrderedStoreStaysSortedAcrossInsertAndDelete(t *testing.T) {
	s := newOrderedStore(0)
	for _, id := range []int32{42, 7, 99, 1, 63, 23} {
		require.NoError(t, s.Insert(testRecord{ID: id}))
	}
	i, ok := s.FindByKey(42)
	require.True(t, ok)
	require.NoError(t, s.DeleteAt(i))
	require.NoError(t, s.Insert(testRecord{ID: 15}))

	recs := s.Records()
	for i := 1; i < len(recs); i++ {
		assert.Less(t, recs[i-1].ID, recs[i].ID, "keys must be ascending at index %d", i)
	}
}

func TestInsertAtCapacityFails(t *testing.T) {
	s := newOrderedStore(3)
	for id := int32(1); id <= 3; id++ {
		require.NoError(t, s.Insert(testRecord{ID: id}))
	}

	err := s.Insert(testRecord{ID: 4})
	require.Error(t, err)
	assert.True(t, IsStoreFull(err))
	assert.Equal(t, 3, s.Len())
}

func TestUpdateRejectsKeyChange(t *testing.T) {
	s := newOrderedStore(0)
	require.NoError(t, s.Insert(testRecord{ID: 5, Name: "before"}))

	err := s.Update(0, testRecord{ID: 6, Name: "rekeyed"})
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalidInput, CodeOf(err))

	require.NoError(t, s.Update(0, testRecord{ID: 5, Name: "after"}))
	got, err := s.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Name)
}

func TestDeleteCompactsAndPreservesOrder(t *testing.T) {
	s := newOrderedStore(0)
	for id := int32(1); id <= 5; id++ {
		require.NoError(t, s.Insert(testRecord{ID: id}))
	}
	require.NoError(t, s.DeleteAt(2))

	recs := s.Records()
	require.Len(t, recs, 4)
	assert.Equal(t, []int32{1, 2, 4, 5}, []int32{recs[0].ID, recs[1].ID, recs[2].ID, recs[3].ID})

	_, ok := s.FindByKey(3)
	assert.False(t, ok)
}

func TestUnorderedKeyedStoreUsesLinearScan(t *testing.T) {
	s := New(Config[testRecord, int32]{
		Entity: "widget",
		Codec:  testCodec{},
		Key:    func(r testRecord) int32 { return r.ID },
	})
	require.NoError(t, s.Insert(testRecord{ID: 9}))
	require.NoError(t, s.Insert(testRecord{ID: 3}))

	// Insertion order is preserved for unordered stores.
	recs := s.Records()
	assert.Equal(t, int32(9), recs[0].ID)

	i, ok := s.FindByKey(3)
	require.True(t, ok)
	assert.Equal(t, 1, i)
}

func TestUnkeyedStoreAllowsRepeats(t *testing.T) {
	s := New(Config[testRecord, int32]{
		Entity: "logline",
		Codec:  testCodec{},
	})
	require.NoError(t, s.Insert(testRecord{ID: 1, Name: "a"}))
	require.NoError(t, s.Insert(testRecord{ID: 1, Name: "b"}))
	assert.Equal(t, 2, s.Len())

	_, ok := s.FindByKey(1)
	assert.False(t, ok, "unkeyed stores never match by key")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "widgets.dat")

	s := newOrderedStore(0)
	want := []testRecord{
		{ID: 2, Name: "bolt"},
		{ID: 11, Name: "nut"},
		{ID: 30, Name: "washer"},
	}
	for _, rec := range want {
		require.NoError(t, s.Insert(rec))
	}
	require.NoError(t, s.Save(path))

	loaded := newOrderedStore(0)
	require.NoError(t, loaded.Load(path))
	assert.Equal(t, want, loaded.Records())
}

func TestLoadMissingFileYieldsEmptyStoreWithoutError(t *testing.T) {
	s := newOrderedStore(0)
	require.NoError(t, s.Insert(testRecord{ID: 1}))

	err := s.Load(filepath.Join(t.TempDir(), "never-written.dat"))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestLoadCountBeyondCapacityIsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "widgets.dat")
	var buf []byte
	buf = AppendInt32(buf, 101) // capacity is 100
	require.NoError(t, os.WriteFile(path, buf, 0o644))

	s := newOrderedStore(0)
	err := s.Load(path)
	require.Error(t, err)
	assert.True(t, IsCorrupt(err))
	assert.Equal(t, 0, s.Len())
}

func TestLoadNegativeCountIsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "widgets.dat")
	var buf []byte
	buf = AppendInt32(buf, -1)
	require.NoError(t, os.WriteFile(path, buf, 0o644))

	s := newOrderedStore(0)
	err := s.Load(path)
	require.Error(t, err)
	assert.True(t, IsCorrupt(err))
}

func TestLoadTruncatedBodyIsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "widgets.dat")

	s := newOrderedStore(0)
	require.NoError(t, s.Insert(testRecord{ID: 1, Name: "whole"}))
	require.NoError(t, s.Insert(testRecord{ID: 2, Name: "half"}))
	require.NoError(t, s.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data[:len(data)-5], 0o644))

	loaded := newOrderedStore(0)
	err = loaded.Load(path)
	require.Error(t, err)
	assert.True(t, IsCorrupt(err))
	assert.Equal(t, 0, loaded.Len())
}

func TestSaveLeavesNoTempFilesBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "widgets.dat")

	s := newOrderedStore(0)
	require.NoError(t, s.Insert(testRecord{ID: 1}))
	require.NoError(t, s.Save(path))
	require.NoError(t, s.Save(path)) // overwrite goes through rename too

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "widgets.dat", entries[0].Name())
}

func TestFixedStringTruncatesAndTerminates(t *testing.T) {
	long := "abcdefghijklmnopqrstuvwxyz"
	buf := AppendFixedString(nil, long, 16)
	require.Len(t, buf, 16)
	assert.Equal(t, byte(0), buf[15], "last byte is always NUL")
	assert.Equal(t, long[:15], FixedString(buf, 0, 16))
}
