// Package tetris contains the rules of the game: the stack, the falling
// tetromino, rotation with wall kicks, gravity, locking and line clears.
// Based on https://tetris.wiki/Tetris_Guideline
package tetris

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"
)

var ErrInvalidOptions = errors.New("invalid options")

// Phase is the state the game is in.
type Phase int

const (
	Playing Phase = iota
	Clearing
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case Clearing:
		return "clearing"
	case GameOver:
		return "game over"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Input is a control that can be held down between ticks.
type Input int

const (
	InputLeft Input = iota
	InputRight
	InputDown
)

// points awarded by lines cleared at once.
var rewards = [5]int{0, 100, 300, 500, 800}

type Options struct {
	Rows, Cols int
	// DropInterval is the gravity step when LevelGravity is off.
	DropInterval time.Duration
	// ClearDuration is how long complete rows stay on the stack before
	// being removed.
	ClearDuration time.Duration
	// DASDelay is how long a direction must be held before auto shift.
	DASDelay time.Duration
	// ARRInterval is the auto shift period. Zero moves straight to the wall.
	ARRInterval time.Duration
	// LevelGravity replaces DropInterval with the marathon speed curve.
	LevelGravity bool
	StartLevel   int
	// Seed for the bag. Zero picks a random one.
	Seed uint64
}

func DefaultOptions() Options {
	return Options{
		Rows:          12,
		Cols:          4,
		DropInterval:  time.Second,
		ClearDuration: 300 * time.Millisecond,
		DASDelay:      110 * time.Millisecond,
		StartLevel:    1,
	}
}

func (o Options) Validate() error {
	switch {
	case o.Rows < 4 || o.Cols < 4:
		return fmt.Errorf("%w: board must be at least 4x4, got %dx%d", ErrInvalidOptions, o.Rows, o.Cols)
	case o.DropInterval <= 0 && !o.LevelGravity:
		return fmt.Errorf("%w: drop interval must be positive", ErrInvalidOptions)
	case o.ClearDuration < 0 || o.DASDelay < 0 || o.ARRInterval < 0:
		return fmt.Errorf("%w: durations can't be negative", ErrInvalidOptions)
	case o.StartLevel < 1:
		return fmt.Errorf("%w: start level must be 1 or more", ErrInvalidOptions)
	}
	return nil
}

// Tetris holds the whole game state. It is not safe for concurrent use,
// Game serialises access to it.
type Tetris struct {
	opts  Options
	board *Board
	bag   *Bag

	Tetromino *Tetromino
	next      Shape
	hold      Shape
	canHold   bool

	phase    Phase
	clearing []int
	progress float64

	score, lines, level int

	dropCounter time.Duration
	held        [3]bool
	shiftDir    int
	dasCounter  time.Duration
	arrCounter  time.Duration

	version uint64
}

// New returns a game with its first tetromino already spawned.
func New(o Options) (*Tetris, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	t := &Tetris{
		opts:  o,
		board: NewBoard(o.Rows, o.Cols),
		bag:   NewBag(o.Seed),
	}
	t.Reset()
	return t, nil
}

// Reset puts everything back to how New left it and spawns a tetromino.
func (t *Tetris) Reset() {
	t.board.Reset()
	t.bag.reset()
	t.Tetromino = nil
	t.hold = None
	t.phase = Playing
	t.clearing = nil
	t.progress = 0
	t.score, t.lines, t.level = 0, 0, t.opts.StartLevel
	t.dropCounter = 0
	t.held = [3]bool{}
	t.shiftDir = 0
	t.dasCounter, t.arrCounter = 0, 0
	t.next = t.bag.Draw()
	t.spawn()
}

func (t *Tetris) Board() *Board     { return t.board }
func (t *Tetris) Phase() Phase      { return t.phase }
func (t *Tetris) Score() int        { return t.score }
func (t *Tetris) Lines() int        { return t.lines }
func (t *Tetris) Level() int        { return t.level }
func (t *Tetris) Next() Shape       { return t.next }
func (t *Tetris) Held() Shape       { return t.hold }
func (t *Tetris) CanHold() bool     { return t.canHold }
func (t *Tetris) Version() uint64   { return t.version }
func (t *Tetris) Clearing() []int   { return slices.Clone(t.clearing) }
func (t *Tetris) Progress() float64 { return t.progress }
func (t *Tetris) Options() Options  { return t.opts }

func (t *Tetris) playing() bool { return t.phase == Playing && t.Tetromino != nil }
func (t *Tetris) touch()        { t.version++ }

// Action applies a control coming from the player.
func (t *Tetris) Action(a Action) bool {
	switch a {
	case MoveLeft:
		return t.Shift(-1)
	case MoveRight:
		return t.Shift(1)
	case MoveDown:
		return t.SoftDrop()
	case DropDown:
		return t.HardDrop()
	case RotateRight:
		return t.Rotate(Clockwise)
	case RotateLeft:
		return t.Rotate(CounterClockwise)
	case Rotate180:
		return t.Rotate180()
	case HoldPiece:
		return t.Hold()
	case Restart:
		t.Reset()
		return true
	case PressLeft:
		t.Press(InputLeft)
	case ReleaseLeft:
		t.Release(InputLeft)
	case PressRight:
		t.Press(InputRight)
	case ReleaseRight:
		t.Release(InputRight)
	case PressDown:
		t.Press(InputDown)
	case ReleaseDown:
		t.Release(InputDown)
	default:
		return false
	}
	return true
}

// Tick advances the game by d. It is meant to be called once per frame.
func (t *Tetris) Tick(d time.Duration) {
	if d < 0 {
		return
	}
	switch t.phase {
	case GameOver:
		return
	case Clearing:
		t.advanceClear(d)
		return
	}
	if t.Tetromino == nil {
		return
	}

	t.dropCounter += d
	if t.dropCounter > t.dropInterval() {
		t.dropCounter = 0
		if t.Tetromino.Move(t.board, 0, 1) {
			t.touch()
		} else {
			t.lock()
		}
	}
	if !t.playing() {
		return
	}
	t.autoShift(d)
	if t.held[InputDown] && t.Tetromino.Move(t.board, 0, 1) {
		t.dropCounter = 0
		t.touch()
	}
}

func (t *Tetris) advanceClear(d time.Duration) {
	if t.opts.ClearDuration <= 0 {
		t.progress = 1
	} else {
		t.progress += float64(d) / float64(t.opts.ClearDuration)
	}
	if t.progress >= 1 {
		t.progress = 1
		t.clearLines()
	}
	t.touch()
}

// autoShift moves the tetromino while a direction is held: nothing until
// DASDelay has passed, then one column per ARRInterval or straight to the
// wall if there's no interval.
func (t *Tetris) autoShift(d time.Duration) {
	if t.shiftDir == 0 {
		return
	}
	if t.dasCounter < t.opts.DASDelay {
		t.dasCounter += d
		return
	}
	if t.opts.ARRInterval <= 0 {
		if t.Tetromino.Move(t.board, t.shiftDir, 0) {
			for t.Tetromino.Move(t.board, t.shiftDir, 0) {
			}
			t.touch()
		}
		return
	}
	t.arrCounter += d
	for t.arrCounter >= t.opts.ARRInterval {
		t.arrCounter -= t.opts.ARRInterval
		if !t.Tetromino.Move(t.board, t.shiftDir, 0) {
			t.arrCounter = 0
			return
		}
		t.touch()
	}
}

// Press registers a held input. Directions shift once right away like a
// tap, then auto shift from Tick.
func (t *Tetris) Press(i Input) {
	if i < InputLeft || i > InputDown || t.held[i] {
		return
	}
	t.held[i] = true
	if i != InputDown {
		t.startShift(direction(i))
	}
}

// Release lets go of a held input. If the released direction was driving
// auto shift and the opposite one is still held, that one takes over with a
// fresh timer.
func (t *Tetris) Release(i Input) {
	if i < InputLeft || i > InputDown || !t.held[i] {
		return
	}
	t.held[i] = false
	if i == InputDown || t.shiftDir != direction(i) {
		return
	}
	other := InputRight
	if i == InputRight {
		other = InputLeft
	}
	if t.held[other] {
		t.startShift(direction(other))
		return
	}
	t.shiftDir = 0
	t.dasCounter, t.arrCounter = 0, 0
}

func direction(i Input) int {
	if i == InputLeft {
		return -1
	}
	return 1
}

func (t *Tetris) startShift(dir int) {
	t.shiftDir = dir
	t.dasCounter, t.arrCounter = 0, 0
	t.Shift(dir)
}

// Shift moves the tetromino one column, left for negative dx.
func (t *Tetris) Shift(dx int) bool {
	if !t.playing() || dx == 0 {
		return false
	}
	if dx > 0 {
		dx = 1
	} else {
		dx = -1
	}
	if !t.Tetromino.Move(t.board, dx, 0) {
		return false
	}
	t.touch()
	return true
}

// SoftDrop moves the tetromino one row down and restarts gravity. It never
// locks, that's left to gravity.
func (t *Tetris) SoftDrop() bool {
	if !t.playing() || !t.Tetromino.Move(t.board, 0, 1) {
		return false
	}
	t.dropCounter = 0
	t.touch()
	return true
}

// HardDrop drops the tetromino down the stack and locks it right away.
func (t *Tetris) HardDrop() bool {
	if !t.playing() {
		return false
	}
	t.Tetromino.HardDrop(t.board)
	t.lock()
	return true
}

func (t *Tetris) Rotate(dir int) bool {
	if !t.playing() || !t.Tetromino.Rotate(t.board, dir) {
		return false
	}
	t.touch()
	return true
}

func (t *Tetris) Rotate180() bool {
	if !t.playing() || !t.Tetromino.Rotate180(t.board) {
		return false
	}
	t.touch()
	return true
}

// Hold stores the current tetromino, swapping it with a previously held
// one. It can be used once per tetromino.
func (t *Tetris) Hold() bool {
	if !t.playing() || !t.canHold {
		return false
	}
	current := t.Tetromino.Shape
	if t.hold == None {
		t.hold = current
		t.spawn()
	} else {
		held := t.hold
		t.hold = current
		t.Tetromino = newTetromino(held, t.board.Cols())
		t.dropCounter = 0
		if t.Tetromino.Collides(t.board) {
			t.phase = GameOver
		}
	}
	t.canHold = false
	t.touch()
	return true
}

func (t *Tetris) spawn() {
	t.Tetromino = newTetromino(t.next, t.board.Cols())
	t.next = t.bag.Draw()
	t.canHold = true
	t.dropCounter = 0
	if t.Tetromino.Collides(t.board) {
		t.phase = GameOver
	}
	t.touch()
}

func (t *Tetris) lock() {
	tetromino := t.Tetromino
	t.Tetromino = nil
	t.touch()
	if !t.board.Lock(tetromino) {
		t.phase = GameOver
		return
	}
	if full := t.board.FullRows(); len(full) > 0 {
		t.phase = Clearing
		t.clearing = full
		t.progress = 0
		return
	}
	t.spawn()
}

func (t *Tetris) clearLines() {
	n := len(t.clearing)
	t.board.RemoveRows(t.clearing)
	t.clearing = nil
	t.progress = 0
	t.score += rewards[min(n, len(rewards)-1)]
	t.lines += n
	t.setLevel()
	t.phase = Playing
	t.spawn()
}

func (t *Tetris) setLevel() {
	if l := t.lines/10 + 1; l > t.level {
		t.level = l
	}
}

// dropInterval is the time between gravity steps. With level gravity it
// follows https://tetris.wiki/Marathon
//
// Time = (0.8-((Level-1)*0.007))^(Level-1)
func (t *Tetris) dropInterval() time.Duration {
	if !t.opts.LevelGravity {
		return t.opts.DropInterval
	}
	l := min(t.level, 20)
	seconds := math.Pow(0.8-float64(l-1)*0.007, float64(l-1))
	return time.Duration(seconds * float64(time.Second))
}
