package ws

import "encoding/json"

// RingBuffer is a fixed-size circular buffer for storing chat history
// It provides O(1) append and FIFO eviction of the oldest entries
type RingBuffer struct {
	data []json.RawMessage
	head int // next write position
	size int // current number of elements
	cap  int // maximum capacity
}

// NewRingBuffer creates a new ring buffer with the given capacity
func NewRingBuffer(capacity int) *RingBuffer {
	return &RingBuffer{
		data: make([]json.RawMessage, capacity),
		head: 0,
		size: 0,
		cap:  capacity,
	}
}

// Add appends an event to the buffer, overwriting oldest if full
func (rb *RingBuffer) Add(msg json.RawMessage) {
	// Copy message to avoid external modification
	copied := make(json.RawMessage, len(msg))
	copy(copied, msg)

	rb.data[rb.head] = copied
	rb.head = (rb.head + 1) % rb.cap

	if rb.size < rb.cap {
		rb.size++
	}
}

// GetAll returns all events in chronological order (oldest first)
func (rb *RingBuffer) GetAll() []json.RawMessage {
	if rb.size == 0 {
		return nil
	}

	result := make([]json.RawMessage, rb.size)

	if rb.size < rb.cap {
		// Buffer not full yet, elements are at indices 0..size-1
		copy(result, rb.data[:rb.size])
	} else {
		// Buffer is full, head points to oldest element
		copy(result, rb.data[rb.head:])
		copy(result[rb.cap-rb.head:], rb.data[:rb.head])
	}

	return result
}

// Last returns the most recent n events in chronological order. Passing
// n >= Len() is equivalent to GetAll.
func (rb *RingBuffer) Last(n int) []json.RawMessage {
	all := rb.GetAll()
	if n >= len(all) {
		return all
	}
	if n <= 0 {
		return nil
	}
	return all[len(all)-n:]
}

// Len returns the current number of elements
func (rb *RingBuffer) Len() int {
	return rb.size
}

// Clear removes all elements from the buffer
func (rb *RingBuffer) Clear() {
	rb.head = 0
	rb.size = 0
	// Zero out data to allow GC
	for i := range rb.data {
		rb.data[i] = nil
	}
}
