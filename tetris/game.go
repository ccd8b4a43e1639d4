package tetris

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	MoveLeft     Action = "left"          // Moves the Tetromino one step to the left.
	MoveRight    Action = "right"         // Moves the Tetromino one step to the right.
	MoveDown     Action = "down"          // Moves the Tetromino one step down.
	DropDown     Action = "drop"          // Drops the Tetromino down the stack.
	RotateRight  Action = "rotatecw"      // Rotates the Tetromino clockwise.
	RotateLeft   Action = "rotateccw"     // Rotates the Tetromino counter-clockwise.
	Rotate180    Action = "rotate180"     // Rotates the Tetromino half a turn.
	HoldPiece    Action = "hold"          // Swaps the Tetromino with the held one.
	Restart      Action = "restart"       // Starts over.
	PressLeft    Action = "press-left"    // Starts auto shifting left.
	ReleaseLeft  Action = "release-left"  // Stops auto shifting left.
	PressRight   Action = "press-right"   // Starts auto shifting right.
	ReleaseRight Action = "release-right" // Stops auto shifting right.
	PressDown    Action = "press-down"    // Starts soft dropping every frame.
	ReleaseDown  Action = "release-down"  // Stops soft dropping.
)

// DefaultFrame is the tick period used by NewGame.
const DefaultFrame = 16 * time.Millisecond

type Ticker interface {
	C() <-chan time.Time
	Reset(time.Duration)
	Stop()
}

type wrappedTicker struct {
	ticker *time.Ticker
}

func newWrappedTicker(d time.Duration) *wrappedTicker {
	return &wrappedTicker{ticker: time.NewTicker(d)}
}

func (t *wrappedTicker) C() <-chan time.Time   { return t.ticker.C }
func (t *wrappedTicker) Stop()                 { t.ticker.Stop() }
func (t *wrappedTicker) Reset(d time.Duration) { t.ticker.Reset(d) }

// Snapshot is a copy of the game state that's safe to read concurrently.
type Snapshot struct {
	Rows, Cols int
	Stack      [][]Shape
	Tetromino  *Tetromino
	GhostY     int
	Next       Shape
	Hold       Shape
	CanHold    bool
	Score      int
	Lines      int
	Level      int
	Phase      Phase
	Clearing   []int
	Progress   float64
	Version    uint64
}

func (t *Tetris) Snapshot() *Snapshot {
	s := &Snapshot{
		Rows:      t.board.Rows(),
		Cols:      t.board.Cols(),
		Stack:     t.board.Cells(),
		Tetromino: t.Tetromino.copy(),
		Next:      t.next,
		Hold:      t.hold,
		CanHold:   t.canHold,
		Score:     t.score,
		Lines:     t.lines,
		Level:     t.level,
		Phase:     t.phase,
		Clearing:  slices.Clone(t.clearing),
		Progress:  t.progress,
		Version:   t.version,
	}
	if t.Tetromino != nil {
		s.GhostY = t.Tetromino.Ghost(t.board)
	}
	return s
}

// Game runs a Tetris in real time: every tick of the ticker advances it by
// the elapsed time and actions are applied in between. Updates are only
// published when something changed.
type Game struct {
	ID uuid.UUID

	updateCh chan *Snapshot
	actionCh chan Action
	doneCh   chan struct{}
	tetris   *Tetris
	ticker   Ticker
	frame    time.Duration
	logger   *slog.Logger

	last      time.Time
	published uint64
	phase     Phase

	startOnce, stopOnce sync.Once
}

func NewGame(o Options, l *slog.Logger) (*Game, error) {
	t, err := New(o)
	if err != nil {
		return nil, fmt.Errorf("unable to create tetris: %w", err)
	}
	return NewConfigurableGame(t, newWrappedTicker(DefaultFrame), DefaultFrame, l), nil
}

func NewConfigurableGame(t *Tetris, ticker Ticker, frame time.Duration, l *slog.Logger) *Game {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	id := uuid.New()
	return &Game{
		ID:       id,
		updateCh: make(chan *Snapshot),
		actionCh: make(chan Action),
		doneCh:   make(chan struct{}),
		tetris:   t,
		ticker:   ticker,
		frame:    frame,
		logger:   l.With(slog.String("game", id.String())),
	}
}

// Start runs the game loop the first time it's called, publishing the
// current state. Every following call starts a fresh game.
func (g *Game) Start() {
	started := false
	g.startOnce.Do(func() {
		started = true
		g.logger.Info("starting game")
		g.ticker.Reset(g.frame)
		go g.listen()
	})
	if !started {
		g.Action(Restart)
	}
}

func (g *Game) Stop() {
	g.stopOnce.Do(func() {
		g.ticker.Stop()
		close(g.doneCh)
	})
}

// Action sends a to the game loop. It returns immediately once stopped.
func (g *Game) Action(a Action) {
	select {
	case g.actionCh <- a:
	case <-g.doneCh:
	}
}

func (g *Game) GetUpdate() <-chan *Snapshot { return g.updateCh }

func (g *Game) listen() {
	if !g.publish() {
		return
	}
	for {
		select {
		case now := <-g.ticker.C():
			if !g.last.IsZero() {
				g.tetris.Tick(now.Sub(g.last))
			}
			g.last = now
		case a := <-g.actionCh:
			if a == Restart {
				g.logger.Info("restarting game")
				g.published = 0
			}
			g.tetris.Action(a)
		case <-g.doneCh:
			return
		}
		if !g.publish() {
			return
		}
	}
}

// publish sends a snapshot if the state changed since the last one. It
// returns false if the game was stopped while waiting for a reader.
func (g *Game) publish() bool {
	if g.published != 0 && g.tetris.Version() == g.published {
		return true
	}
	s := g.tetris.Snapshot()
	g.published = s.Version
	if s.Phase != g.phase {
		g.logPhase(s)
		g.phase = s.Phase
	}
	select {
	case g.updateCh <- s:
		return true
	case <-g.doneCh:
		return false
	}
}

func (g *Game) logPhase(s *Snapshot) {
	switch s.Phase {
	case Clearing:
		g.logger.Debug("clearing lines", slog.Int("lines", len(s.Clearing)))
	case GameOver:
		g.logger.Info("game over", slog.Int("score", s.Score), slog.Int("lines", s.Lines), slog.Int("level", s.Level))
	case Playing:
		g.logger.Debug("playing", slog.Int("score", s.Score))
	}
}
