package store

import (
	"sync"

	"github.com/theirongolddev/compound/internal/model"
)

// Memory keeps a sequence in memory. It round-trips through the JSON codec
// so it behaves like the SQLite slot.
type Memory struct {
	mu    sync.Mutex
	data  []byte
	Saves int
	Err   error // returned from Save when set
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Load returns the stored sequence, if any.
func (m *Memory) Load() (model.Sequence, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, false, nil
	}
	seq, err := Decode(m.data)
	return seq, true, err
}

// Save stores seq.
func (m *Memory) Save(seq model.Sequence) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	data, err := Encode(seq)
	if err != nil {
		return err
	}
	m.data = data
	m.Saves++
	return nil
}

// SetRaw stores raw bytes without encoding, for simulating corrupt state.
func (m *Memory) SetRaw(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
}
