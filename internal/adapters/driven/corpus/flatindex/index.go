// Package flatindex implements the indexed corpus backend: a binary
// vector index file searched natively, paired with an ordinal-aligned
// metadata list.
package flatindex

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/vidseek/vidseek/internal/adapters/driven/corpus"
)

// Binary index format: a fixed header followed by count*dimension
// float32 vectors, row-major, little-endian.
const (
	indexMagic   = "VSIX"
	indexVersion = 1
	headerSize   = 4 + 4 + 4 + 4 // magic + version + dimension + count
)

// Errors returned by index operations.
var (
	ErrBadMagic           = errors.New("flatindex: not an index file")
	ErrUnsupportedVersion = errors.New("flatindex: unsupported index version")
	ErrTruncated          = errors.New("flatindex: truncated index file")
)

// Hit is one native search result: the vector's ordinal position in the
// index and its cosine similarity to the query. An ordinal of -1 marks
// "no match" and must be filtered by callers.
type Hit struct {
	Ordinal int
	Score   float64
}

// Index is a read-only flat vector index loaded from disk.
// Search is an exact scan over the packed vectors; the file format keeps
// the whole index in one memory-resident block.
type Index struct {
	dimension int
	count     int
	vectors   []float32 // packed row-major
}

// OpenIndex reads and validates a binary index file.
func OpenIndex(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("flatindex: reading %s: %w", path, err)
	}
	return parseIndex(data)
}

func parseIndex(data []byte) (*Index, error) {
	if len(data) < headerSize {
		return nil, ErrTruncated
	}
	if string(data[:4]) != indexMagic {
		return nil, ErrBadMagic
	}

	version := binary.LittleEndian.Uint32(data[4:8])
	if version != indexVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrUnsupportedVersion, version, indexVersion)
	}

	dimension := int(binary.LittleEndian.Uint32(data[8:12]))
	count := int(binary.LittleEndian.Uint32(data[12:16]))
	if dimension <= 0 {
		return nil, fmt.Errorf("flatindex: invalid dimension %d", dimension)
	}

	want := headerSize + 4*dimension*count
	if len(data) != want {
		return nil, fmt.Errorf("%w: %d bytes, want %d", ErrTruncated, len(data), want)
	}

	vectors := make([]float32, dimension*count)
	for i := range vectors {
		off := headerSize + 4*i
		vectors[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[off : off+4]))
	}

	return &Index{dimension: dimension, count: count, vectors: vectors}, nil
}

// WriteIndex writes vectors to path in the binary index format.
// Used by corpus build tooling and tests; the search path only reads.
func WriteIndex(path string, dimension int, vectors [][]float32) error {
	if dimension <= 0 {
		return fmt.Errorf("flatindex: dimension must be positive")
	}

	buf := make([]byte, headerSize+4*dimension*len(vectors))
	copy(buf[:4], indexMagic)
	binary.LittleEndian.PutUint32(buf[4:8], indexVersion)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(dimension))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(len(vectors)))

	for i, vec := range vectors {
		if len(vec) != dimension {
			return fmt.Errorf("flatindex: vector %d has dimension %d, want %d", i, len(vec), dimension)
		}
		for j, v := range vec {
			off := headerSize + 4*(i*dimension+j)
			binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf, 0600); err != nil {
		return fmt.Errorf("flatindex: writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("flatindex: renaming temp file: %w", err)
	}
	return nil
}

// Dimension returns the vector size of the index.
func (ix *Index) Dimension() int { return ix.dimension }

// Count returns the number of vectors in the index.
func (ix *Index) Count() int { return ix.count }

// Search returns the k nearest vectors to the query by cosine
// similarity, best first. k is capped at the index size.
func (ix *Index) Search(query []float32, k int) ([]Hit, error) {
	if len(query) != ix.dimension {
		return nil, fmt.Errorf("flatindex: query dimension %d, index dimension %d",
			len(query), ix.dimension)
	}
	if k <= 0 {
		return nil, nil
	}
	if k > ix.count {
		k = ix.count
	}

	hits := make([]Hit, ix.count)
	for i := 0; i < ix.count; i++ {
		row := ix.vectors[i*ix.dimension : (i+1)*ix.dimension]
		hits[i] = Hit{Ordinal: i, Score: corpus.Cosine(query, row)}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	return hits[:k], nil
}
