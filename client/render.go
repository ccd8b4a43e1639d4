package client

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"text/template"

	"narrowtris/tetris"
)

const (
	// ASCII colors.
	Cyan    = "36"
	Blue    = "34"
	Orange  = "38;5;214"
	Yellow  = "33"
	Green   = "32"
	Red     = "31"
	Magenta = "35"

	resetPos    = "\033[H"  // Reset cursor position to 0,0
	clearScreen = "\033[2J" // Clear the whole screen
	clearLine   = "\033[K"  // Clear up to the end of the line
	clearBelow  = "\033[J"  // Clear up to the end of the screen
	emptyCell   = "  "
	ghostCell   = "[]"
)

//go:embed "layout.tmpl"
var layout string

// colorMap translates the game's color tokens into terminal colors.
var colorMap = map[string]string{
	tetris.Cyan:    Cyan,
	tetris.Blue:    Blue,
	tetris.Orange:  Orange,
	tetris.Yellow:  Yellow,
	tetris.Green:   Green,
	tetris.Red:     Red,
	tetris.Magenta: Magenta,
}

type templateData struct {
	Game    *tetris.Snapshot
	Message []string
	NoGhost bool

	mu sync.Mutex
}

type render struct {
	writer   io.Writer
	logger   *slog.Logger
	template *template.Template
	*templateData
}

func newRender(l *slog.Logger, noGhost bool) (*render, error) {
	tmpl, err := loadTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	return &render{
		writer:       os.Stdout,
		logger:       l,
		template:     tmpl,
		templateData: &templateData{NoGhost: noGhost},
	}, nil
}

// game draws s with no message under the board.
func (r *render) game(s *tetris.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templateData.Game = s
	r.templateData.Message = nil
	r.draw()
}

// lobby draws the last game, if any, with msg under the board.
func (r *render) lobby(msg []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templateData.Message = msg
	r.draw()
}

func (r *render) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templateData.Game = nil
	r.templateData.Message = nil
	fmt.Fprint(r.writer, clearScreen)
}

// draw expects mu to be held.
func (r *render) draw() {
	fmt.Fprint(r.writer, resetPos)
	if err := r.template.Execute(r.writer, r.templateData); err != nil {
		r.logger.Error("unable to execute template", slog.String("error", err.Error()))
	}
	fmt.Fprint(r.writer, clearBelow)
}

func welcome() []string {
	return []string{"Welcome to Narrow Tetris", "", "(p)lay   (x)quit"}
}

func gameOver(s *tetris.Snapshot) []string {
	return []string{
		"Game Over :)",
		fmt.Sprintf("score %d", s.Score),
		"",
		"(p)lay   (x)quit",
	}
}

func loadTemplate() (*template.Template, error) {
	funcMap := template.FuncMap{
		"stack":  stack,
		"panel":  panel,
		"border": border,
	}

	// we use the console raw so new lines don't automatically transform into carriage return
	// to fix that we add a carriage return to every new line in the layout. Lines are cleared
	// to the end as the width of messages changes between frames.
	l := strings.ReplaceAll(layout, "\n", clearLine+"\r\n")
	l = strings.ReplaceAll(l, "Narrow Tetris", "\033[1mNarrow Tetris\033[0m")
	return template.New("layout").Funcs(funcMap).Parse(l)
}

func block(s tetris.Shape) string {
	return fmt.Sprintf("\x1b[7m\x1b[%sm[]\x1b[0m", colorMap[s.Color()])
}

// rowsFor returns the board size to draw. Before the first game the default
// board is drawn empty.
func rowsFor(t *templateData) (rows, cols int) {
	if t == nil || t.Game == nil {
		o := tetris.DefaultOptions()
		return o.Rows, o.Cols
	}
	return t.Game.Rows, t.Game.Cols
}

func border(t *templateData) string {
	_, cols := rowsFor(t)
	return "+" + strings.Repeat("--", cols) + "+"
}

// stack renders every row of the board: locked cells, the ghost and the
// current tetromino. Rows being cleared are wiped left to right as the
// animation progresses.
func stack(t *templateData) [][]string {
	rows, cols := rowsFor(t)
	rendered := make([][]string, rows)
	for y := range rendered {
		rendered[y] = make([]string, cols)
		for x := range rendered[y] {
			rendered[y][x] = emptyCell
		}
	}
	if t == nil || t.Game == nil {
		return rendered
	}
	s := t.Game

	for y, row := range s.Stack {
		for x, c := range row {
			if c != tetris.None {
				rendered[y][x] = block(c)
			}
		}
	}

	wiped := int(s.Progress * float64(cols))
	for _, y := range s.Clearing {
		for x := range min(wiped, cols) {
			rendered[y][x] = emptyCell
		}
	}

	if s.Tetromino == nil {
		return rendered
	}
	put := func(y int, cell string) {
		for iy, r := range s.Tetromino.Grid {
			for ix, v := range r {
				cy, cx := y+iy, s.Tetromino.X+ix
				if v && cy >= 0 && cy < rows && cx >= 0 && cx < cols {
					rendered[cy][cx] = cell
				}
			}
		}
	}
	if !t.NoGhost {
		put(s.GhostY, ghostCell)
	}
	put(s.Tetromino.Y, block(s.Tetromino.Shape))
	return rendered
}

// preview renders the top two rows of shape's mask, where every shape has
// its cells at spawn.
func preview(shape tetris.Shape) []string {
	rendered := []string{strings.Repeat(emptyCell, 4), strings.Repeat(emptyCell, 4)}
	if shape == tetris.None {
		return rendered
	}
	grid := shape.Grid()
	for i := range 2 {
		row := []string{emptyCell, emptyCell, emptyCell, emptyCell}
		for iv, v := range grid[i] {
			if v {
				row[iv] = block(shape)
			}
		}
		rendered[i] = strings.Join(row, "")
	}
	return rendered
}

// panel returns the text shown right of the board on row y.
func panel(t *templateData, y int) string {
	if t == nil || t.Game == nil {
		return ""
	}
	s := t.Game
	next, hold := preview(s.Next), preview(s.Hold)
	switch y {
	case 0:
		return "NEXT"
	case 1, 2:
		return next[y-1]
	case 4:
		if !s.CanHold {
			return "\x1b[2mHOLD\x1b[0m"
		}
		return "HOLD"
	case 5, 6:
		return hold[y-5]
	case 8:
		return fmt.Sprintf("SCORE %d", s.Score)
	case 9:
		return fmt.Sprintf("LINES %d", s.Lines)
	case 10:
		return fmt.Sprintf("LEVEL %d", s.Level)
	}
	return ""
}
