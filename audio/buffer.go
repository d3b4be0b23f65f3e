package audio

import (
	"errors"
	"sync"
)

// ErrBufferFull is returned when the buffer exceeds its maximum size
var ErrBufferFull = errors.New("audio buffer full")

// ChunkBuffer accumulates PCM chunks until flushed. The TTS endpoint may
// split one utterance across several inline-data parts; the buffer
// reassembles them in arrival order and caps the total clip size.
type ChunkBuffer struct {
	chunks    [][]byte
	totalSize int
	maxSize   int
	mu        sync.Mutex
}

// NewChunkBuffer creates a buffer with the specified maximum size in bytes
func NewChunkBuffer(maxSize int) *ChunkBuffer {
	return &ChunkBuffer{
		chunks:  make([][]byte, 0),
		maxSize: maxSize,
	}
}

// MaxSize returns the maximum buffer size
func (cb *ChunkBuffer) MaxSize() int {
	return cb.maxSize
}

// Append adds a PCM chunk to the buffer.
// Returns ErrBufferFull if adding the chunk would exceed maxSize.
func (cb *ChunkBuffer) Append(chunk []byte) error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	newSize := cb.totalSize + len(chunk)
	if newSize > cb.maxSize {
		return ErrBufferFull
	}

	cb.chunks = append(cb.chunks, chunk)
	cb.totalSize = newSize
	return nil
}

// Flush concatenates all chunks in order and clears the buffer.
func (cb *ChunkBuffer) Flush() []byte {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if len(cb.chunks) == 0 {
		return nil
	}

	result := make([]byte, 0, cb.totalSize)
	for _, chunk := range cb.chunks {
		result = append(result, chunk...)
	}

	cb.chunks = make([][]byte, 0)
	cb.totalSize = 0

	return result
}

// Clear empties the buffer without returning data
func (cb *ChunkBuffer) Clear() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.chunks = make([][]byte, 0)
	cb.totalSize = 0
}

// Size returns the current total buffered bytes
func (cb *ChunkBuffer) Size() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.totalSize
}

// IsEmpty returns true if no chunks are buffered
func (cb *ChunkBuffer) IsEmpty() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return len(cb.chunks) == 0
}
