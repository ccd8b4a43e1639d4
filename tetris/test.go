package tetris

import (
	"sync"
	"time"
)

// MockTicker is a mock implementation of the ticker interface.
type MockTicker struct {
	ch          chan time.Time
	now         time.Time
	stop, reset bool
	mu          sync.Mutex
}

func NewMockTicker() *MockTicker {
	return &MockTicker{ch: make(chan time.Time), now: time.Unix(0, 0)}
}

func (m *MockTicker) C() <-chan time.Time { return m.ch }

// Advance sends a tick d after the previous one.
func (m *MockTicker) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	now := m.now
	m.mu.Unlock()
	m.ch <- now
}

func (m *MockTicker) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop = true
}

func (m *MockTicker) Reset(time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset = true
}

func (m *MockTicker) IsReset() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reset
}

func (m *MockTicker) IsStop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop
}

// NewTestGame creates a game around a specific Tetris and returns it with
// a manual ticker.
func NewTestGame(t *Tetris) (*Game, *MockTicker) {
	ticker := NewMockTicker()
	return NewConfigurableGame(t, ticker, DefaultFrame, nil), ticker
}

// NewTestTetris creates a Tetris on the default 12x4 board whose current
// and next tetrominos have the given shape.
func NewTestTetris(shape Shape) *Tetris {
	o := DefaultOptions()
	o.Seed = 1
	t, err := New(o)
	if err != nil {
		panic(err)
	}
	t.SetTetromino(shape)
	t.next = shape
	return t
}

// SetTetromino replaces the current tetromino with a fresh one of shape at
// the spawn location.
func (t *Tetris) SetTetromino(shape Shape) {
	t.Tetromino = newTetromino(shape, t.board.Cols())
	t.touch()
}
