package client

import (
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"narrowtris/tetris"

	"github.com/eiannone/keyboard"
	"github.com/stretchr/testify/assert"
)

type mockTetris struct {
	updateCh chan *tetris.Snapshot

	mu     sync.Mutex
	start  int
	stop   bool
	action tetris.Action
}

func (m *mockTetris) GetUpdate() <-chan *tetris.Snapshot { return m.updateCh }

func (m *mockTetris) Start() {
	m.mu.Lock()
	m.start++
	m.mu.Unlock()
	m.updateCh <- &tetris.Snapshot{Phase: tetris.Playing}
}

func (m *mockTetris) Action(a tetris.Action) {
	m.mu.Lock()
	m.action = a
	m.mu.Unlock()
	m.updateCh <- &tetris.Snapshot{Phase: tetris.Playing}
}

func (m *mockTetris) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop = true
}

func (m *mockTetris) sendGameOver() { m.updateCh <- &tetris.Snapshot{Phase: tetris.GameOver, Score: 300} }

func (m *mockTetris) get() (int, bool, tetris.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.start, m.stop, m.action
}

type mockRender struct {
	mu         sync.Mutex
	gameCount  int
	lobbyCount int
	lastLobby  []string
}

func (m *mockRender) reset() {}

func (m *mockRender) game(*tetris.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gameCount++
}

func (m *mockRender) lobby(msg []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lobbyCount++
	m.lastLobby = msg
}

func (m *mockRender) counts() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gameCount, m.lobbyCount
}

const wait = time.Second

func TestClient(t *testing.T) {
	render := &mockRender{}
	tts := &mockTetris{updateCh: make(chan *tetris.Snapshot)}
	kCh := make(chan keyboard.KeyEvent)
	cl := newClient(tts, render, slog.New(slog.DiscardHandler), kCh)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() { cl.Start(); wg.Done() }()

	// keys other than 'p' and 'x' do nothing in the lobby.
	kCh <- keyboard.KeyEvent{Rune: 'a'}
	_, _, a := tts.get()
	assert.Equal(t, tetris.Action(""), a)

	// 'p' calls tetris.Start(), leaves the lobby and renders the game once.
	kCh <- keyboard.KeyEvent{Rune: 'p'}
	assert.Eventually(t, func() bool { s, _, _ := tts.get(); return s == 1 }, wait, time.Millisecond)
	assert.Eventually(t, func() bool { g, _ := render.counts(); return g == 1 }, wait, time.Millisecond)
	assert.False(t, cl.lobby.Load(), "wanted lobby to be false after 'p' key press")

	// while in game, keys should direct to tetris actions.
	actions := []struct {
		key    keyboard.KeyEvent
		action tetris.Action
	}{
		{key: keyboard.KeyEvent{Rune: 's'}, action: tetris.MoveDown},
		{key: keyboard.KeyEvent{Rune: 'k'}, action: tetris.MoveDown},
		{key: keyboard.KeyEvent{Key: keyboard.KeyArrowDown}, action: tetris.MoveDown},
		{key: keyboard.KeyEvent{Rune: 'a'}, action: tetris.MoveLeft},
		{key: keyboard.KeyEvent{Key: keyboard.KeyArrowLeft}, action: tetris.MoveLeft},
		{key: keyboard.KeyEvent{Rune: 'd'}, action: tetris.MoveRight},
		{key: keyboard.KeyEvent{Key: keyboard.KeyArrowRight}, action: tetris.MoveRight},
		{key: keyboard.KeyEvent{Rune: 'e'}, action: tetris.RotateRight},
		{key: keyboard.KeyEvent{Rune: 'l'}, action: tetris.RotateRight},
		{key: keyboard.KeyEvent{Key: keyboard.KeyArrowUp}, action: tetris.RotateRight},
		{key: keyboard.KeyEvent{Rune: 'q'}, action: tetris.RotateLeft},
		{key: keyboard.KeyEvent{Rune: 'j'}, action: tetris.RotateLeft},
		{key: keyboard.KeyEvent{Rune: 'w'}, action: tetris.Rotate180},
		{key: keyboard.KeyEvent{Rune: 'c'}, action: tetris.HoldPiece},
		{key: keyboard.KeyEvent{Rune: 'i'}, action: tetris.DropDown},
		{key: keyboard.KeyEvent{Key: keyboard.KeySpace}, action: tetris.DropDown},
		{key: keyboard.KeyEvent{Rune: 'r'}, action: tetris.Restart},
	}
	wantGameCount := 1
	for _, tt := range actions {
		wantGameCount++
		t.Run(fmt.Sprintf("key %v", tt.key), func(t *testing.T) {
			kCh <- tt.key
			assert.Eventually(t, func() bool { g, _ := render.counts(); return g == wantGameCount }, wait, time.Millisecond)
			_, _, a := tts.get()
			assert.Equal(t, tt.action, a)
		})
	}

	// unmapped keys are ignored.
	kCh <- keyboard.KeyEvent{Rune: 'z'}
	_, _, a = tts.get()
	assert.Equal(t, tetris.Restart, a)

	// game over renders the last frame, then the lobby, and goes back to it.
	tts.sendGameOver()
	assert.Eventually(t, func() bool { _, l := render.counts(); return l == 2 }, wait, time.Millisecond)
	assert.Eventually(t, cl.lobby.Load, wait, time.Millisecond)
	g, _ := render.counts()
	assert.Equal(t, wantGameCount+1, g)
	render.mu.Lock()
	assert.Equal(t, gameOver(&tetris.Snapshot{Score: 300}), render.lastLobby)
	render.mu.Unlock()

	// 'p' plays again.
	kCh <- keyboard.KeyEvent{Rune: 'p'}
	assert.Eventually(t, func() bool { s, _, _ := tts.get(); return s == 2 }, wait, time.Millisecond)
	assert.Eventually(t, func() bool { return !cl.lobby.Load() }, wait, time.Millisecond)

	// ctrl-c quits from anywhere and stops the game.
	kCh <- keyboard.KeyEvent{Key: keyboard.KeyCtrlC}
	wgDone := make(chan struct{})
	go func() { wg.Wait(); close(wgDone) }()
	select {
	case <-time.After(wait):
		t.Errorf("timeout waiting for quit")
	case <-wgDone:
	}
	_, stop, _ := tts.get()
	assert.True(t, stop)
}

func TestClientQuitFromLobby(t *testing.T) {
	tts := &mockTetris{updateCh: make(chan *tetris.Snapshot)}
	kCh := make(chan keyboard.KeyEvent)
	cl := newClient(tts, &mockRender{}, slog.New(slog.DiscardHandler), kCh)

	done := make(chan struct{})
	go func() { cl.Start(); close(done) }()
	kCh <- keyboard.KeyEvent{Rune: 'x'}
	select {
	case <-time.After(wait):
		t.Errorf("timeout waiting for quit")
	case <-done:
	}
}

func TestClientKeyboardError(t *testing.T) {
	tts := &mockTetris{updateCh: make(chan *tetris.Snapshot)}
	kCh := make(chan keyboard.KeyEvent, 1)
	cl := newClient(tts, &mockRender{}, slog.New(slog.DiscardHandler), kCh)

	kCh <- keyboard.KeyEvent{Err: fmt.Errorf("boom")}
	done := make(chan struct{})
	go func() { cl.Start(); close(done) }()
	select {
	case <-time.After(wait):
		t.Errorf("timeout waiting for the client to stop")
	case <-done:
	}
}
