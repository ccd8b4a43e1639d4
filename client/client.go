// Package client plays a game of Tetris on the terminal.
package client

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"narrowtris/tetris"

	"github.com/eiannone/keyboard"
)

type tetrisGame interface {
	Start()
	GetUpdate() <-chan *tetris.Snapshot
	Action(tetris.Action)
	Stop()
}

type renderer interface {
	game(*tetris.Snapshot)
	lobby([]string)
	reset()
}

// keys maps the keyboard to actions while playing.
var keys = map[rune]tetris.Action{
	'a': tetris.MoveLeft,
	'd': tetris.MoveRight,
	's': tetris.MoveDown,
	'k': tetris.MoveDown,
	'i': tetris.DropDown,
	'e': tetris.RotateRight,
	'l': tetris.RotateRight,
	'q': tetris.RotateLeft,
	'j': tetris.RotateLeft,
	'w': tetris.Rotate180,
	'c': tetris.HoldPiece,
	'r': tetris.Restart,
}

var arrows = map[keyboard.Key]tetris.Action{
	keyboard.KeyArrowLeft:  tetris.MoveLeft,
	keyboard.KeyArrowRight: tetris.MoveRight,
	keyboard.KeyArrowDown:  tetris.MoveDown,
	keyboard.KeyArrowUp:    tetris.RotateRight,
	keyboard.KeySpace:      tetris.DropDown,
}

type Client struct {
	tetris tetrisGame
	render renderer
	logger *slog.Logger
	kbCh   <-chan keyboard.KeyEvent
	doneCh chan struct{}
	lobby  atomic.Bool

	closeKB func() error
}

type Options struct {
	NoGhost bool
}

func New(g *tetris.Game, l *slog.Logger, o *Options) (*Client, error) {
	r, err := newRender(l, o.NoGhost)
	if err != nil {
		return nil, fmt.Errorf("failed to load renderer: %w", err)
	}
	kb, err := keyboard.GetKeys(20)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyboard: %w", err)
	}
	c := newClient(g, r, l, kb)
	c.closeKB = keyboard.Close
	return c, nil
}

func newClient(g tetrisGame, r renderer, l *slog.Logger, kb <-chan keyboard.KeyEvent) *Client {
	c := &Client{
		tetris: g,
		render: r,
		logger: l,
		kbCh:   kb,
		doneCh: make(chan struct{}),
	}
	c.lobby.Store(true)
	return c
}

// Start shows the lobby and blocks until the player quits.
func (c *Client) Start() {
	c.render.reset()
	c.render.lobby(welcome())

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); c.listenTetris() }()
	go func() { defer wg.Done(); c.listenKB() }()
	wg.Wait()
	c.tetris.Stop()
	if c.closeKB == nil {
		return
	}
	if err := c.closeKB(); err != nil {
		c.logger.Error("unable to close keyboard", slog.String("error", err.Error()))
	}
}

func (c *Client) listenKB() {
	defer close(c.doneCh)
	for {
		event, ok := <-c.kbCh
		if !ok {
			c.logger.Error("Keyboard events channel closed unexpectedly")
			return
		}
		if event.Err != nil {
			c.logger.Error("keysEvents error", slog.String("error", event.Err.Error()))
			return
		}
		if event.Key == keyboard.KeyCtrlC {
			return
		}

		if c.lobby.Load() {
			switch event.Rune {
			case 'p':
				c.logger.Debug("starting game from lobby")
				c.render.reset()
				c.lobby.Store(false)
				go c.tetris.Start()
			case 'x':
				return
			}
			continue
		}

		a, ok := action(event)
		if !ok {
			continue
		}
		c.tetris.Action(a)
	}
}

func action(event keyboard.KeyEvent) (tetris.Action, bool) {
	if event.Rune != 0 {
		a, ok := keys[event.Rune]
		return a, ok
	}
	a, ok := arrows[event.Key]
	return a, ok
}

// listenTetris draws every update while playing and goes back to the lobby
// when the game is over. Updates reaching the lobby are dropped.
func (c *Client) listenTetris() {
	for {
		select {
		case u := <-c.tetris.GetUpdate():
			if c.lobby.Load() {
				continue
			}
			c.render.game(u)
			if u.Phase == tetris.GameOver {
				c.render.lobby(gameOver(u))
				c.lobby.Store(true)
			}
		case <-c.doneCh:
			return
		}
	}
}
