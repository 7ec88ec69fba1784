package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Snapshot layout: a little-endian int32 live count, then exactly that many
// fixed-width records in store order. The whole file is written and read as
// one unit; there is no incremental persistence.

const countHeaderSize = 4

// Save serializes the entire store to path.
//
// The snapshot is written to a temporary file in the same directory and
// renamed into place, so a crash mid-write leaves the previous snapshot
// intact rather than a truncated file.
func (s *Store[T, K]) Save(path string) error {
	size := s.cfg.Codec.Size()
	buf := make([]byte, 0, countHeaderSize+len(s.recs)*size)
	buf = AppendInt32(buf, int32(len(s.recs)))
	for _, rec := range s.recs {
		buf = s.cfg.Codec.AppendBinary(buf, rec)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return NewIOError(s.cfg.Entity, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return NewIOError(s.cfg.Entity, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return NewIOError(s.cfg.Entity, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return NewIOError(s.cfg.Entity, err)
	}
	return nil
}

// Load deserializes a snapshot from path, replacing the store's contents.
//
// A missing file is not an error: the store is simply reset to empty (the
// fresh-start policy; first run has no data files). A snapshot that fails
// structural validation also resets the store to empty, but surfaces
// CORRUPT_STORE so callers can tell data loss apart from a fresh start:
//   - stored count outside [0, capacity]
//   - file length not matching count*recordSize
func (s *Store[T, K]) Load(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.Reset()
		return nil
	}
	if err != nil {
		return NewIOError(s.cfg.Entity, err)
	}

	if len(data) < countHeaderSize {
		s.Reset()
		return NewCorruptStoreError(s.cfg.Entity, "snapshot shorter than count header")
	}
	count := int(Int32At(data, 0))
	if count < 0 || count > s.cfg.Capacity {
		s.Reset()
		return NewCorruptStoreError(s.cfg.Entity,
			fmt.Sprintf("stored count %d outside [0, %d]", count, s.cfg.Capacity))
	}
	size := s.cfg.Codec.Size()
	body := data[countHeaderSize:]
	if len(body) != count*size {
		s.Reset()
		return NewCorruptStoreError(s.cfg.Entity,
			fmt.Sprintf("snapshot body is %d bytes, want %d for %d records", len(body), count*size, count))
	}

	recs := make([]T, 0, count)
	for i := 0; i < count; i++ {
		rec, err := s.cfg.Codec.DecodeBinary(body[i*size : (i+1)*size])
		if err != nil {
			s.Reset()
			return NewCorruptStoreError(s.cfg.Entity, fmt.Sprintf("record %d: %v", i, err))
		}
		recs = append(recs, rec)
	}
	s.replaceAll(recs)
	return nil
}
