package store

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Store is an opened binary stroke store. It holds the offsets of its
// buckets only; the records are read on demand by scanners.
type Store struct {
	src     io.ReaderAt
	size    int64
	offsets [partitionCount][bucketCount]int64 // start of the records of a bucket
	lengths [partitionCount][bucketCount]int32
	closer  io.Closer
}

// Open opens a store file. Clients should call Close when done.
func Open(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	st, err := NewStore(f, info.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	st.closer = f
	tracer().Infof("opened stroke store %s (%d bytes)", path, info.Size())
	return st, nil
}

// NewStore indexes a store of size bytes readable from src.
func NewStore(src io.ReaderAt, size int64) (*Store, error) {
	st := &Store{src: src, size: size}
	if err := st.index(); err != nil {
		return nil, err
	}
	return st, nil
}

// FromBytes creates a store from an in-memory image, e.g. the output of
// Compiler.Bytes.
func FromBytes(data []byte) (*Store, error) {
	return NewStore(bytes.NewReader(data), int64(len(data)))
}

// index walks the length prefixes of all buckets.
func (st *Store) index() error {
	var prefix [4]byte
	pos := int64(0)
	for p := range partitionCount {
		for s := range bucketCount {
			if pos+4 > st.size {
				return corrupt("truncated at bucket %s/%d", p, s+1)
			}
			if _, err := st.src.ReadAt(prefix[:], pos); err != nil {
				return truncated(err)
			}
			length := int32(binary.BigEndian.Uint32(prefix[:]))
			if length < 0 {
				return corrupt("negative length %d of bucket %s/%d", length, p, s+1)
			}
			pos += 4
			if pos+int64(length) > st.size {
				return corrupt("bucket %s/%d overruns store", p, s+1)
			}
			st.offsets[p][s] = pos
			st.lengths[p][s] = length
			pos += int64(length)
		}
	}
	if pos != st.size {
		return corrupt("%d trailing bytes", st.size-pos)
	}
	return nil
}

// Size returns the size of the store in bytes.
func (st *Store) Size() int64 {
	return st.size
}

// BucketSize returns the number of record bytes in the bucket of partition p
// for the given stroke count, or 0 for stroke counts out of range.
func (st *Store) BucketSize(p Partition, strokes int) int {
	if p < 0 || p >= partitionCount || strokes < 1 || strokes > bucketCount {
		return 0
	}
	return int(st.lengths[p][strokes-1])
}

// Close releases the underlying file, if the store has been opened by Open.
func (st *Store) Close() error {
	if st.closer == nil {
		return nil
	}
	err := st.closer.Close()
	st.closer = nil
	return err
}
