package game

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var ErrInvalidLayout = errors.New("invalid layout")

// Layout is the static part of a game: walls plus the starting positions of
// food, capsules and agents. It is shared by every state of a game and never
// mutated after parsing.
type Layout struct {
	Name     string
	Width    int
	Height   int
	walls    [][]bool // Indexed [x][y]
	food     []Position
	capsules []Position
	pacman   Position
	ghosts   []Position
}

// ParseLayout reads a text grid where '%' is a wall, '.' food, 'o' a capsule,
// 'P' pacman and 'G' a ghost. The first text row is the top of the board.
func ParseLayout(name, text string) (*Layout, error) {
	rows := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, line)
	}
	if len(rows) == 0 {
		return nil, errors.Wrapf(ErrInvalidLayout, "layout %s is empty", name)
	}

	width := len(rows[0])
	height := len(rows)
	l := &Layout{
		Name:   name,
		Width:  width,
		Height: height,
		walls:  make([][]bool, width),
	}
	for x := range l.walls {
		l.walls[x] = make([]bool, height)
	}

	pacmen := 0
	for row, line := range rows {
		if len(line) != width {
			return nil, errors.Wrapf(ErrInvalidLayout, "layout %s row %d has width %d, want %d", name, row, len(line), width)
		}
		y := height - 1 - row
		for x, cell := range line {
			p := Position{X: x, Y: y}
			switch cell {
			case '%':
				l.walls[x][y] = true
			case '.':
				l.food = append(l.food, p)
			case 'o':
				l.capsules = append(l.capsules, p)
			case 'P':
				l.pacman = p
				pacmen++
			case 'G':
				l.ghosts = append(l.ghosts, p)
			case ' ':
			default:
				return nil, errors.Wrapf(ErrInvalidLayout, "layout %s has unknown cell %q at row %d column %d", name, cell, row, x)
			}
		}
	}
	if pacmen != 1 {
		return nil, errors.Wrapf(ErrInvalidLayout, "layout %s has %d pacman cells, want 1", name, pacmen)
	}
	sortPositions(l.food)
	return l, nil
}

// LoadLayout parses a layout file, named after its base name without extension.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read layout %s", path)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseLayout(name, string(data))
}

// LookupLayout returns a built-in layout by name, or loads it from disk when
// the name is a path to an existing file.
func LookupLayout(name string) (*Layout, error) {
	if text, ok := Layouts[name]; ok {
		return ParseLayout(name, text)
	}
	if _, err := os.Stat(name); err == nil {
		return LoadLayout(name)
	}
	return nil, errors.Wrapf(ErrInvalidLayout, "no layout named %s", name)
}

func (l *Layout) IsWall(p Position) bool {
	if p.X < 0 || p.Y < 0 || p.X >= l.Width || p.Y >= l.Height {
		return true
	}
	return l.walls[p.X][p.Y]
}

func (l *Layout) NumGhosts() int {
	return len(l.ghosts)
}

// WithGhosts returns a copy of the layout keeping only the first n ghosts.
func (l *Layout) WithGhosts(n int) *Layout {
	if n < 0 || n >= len(l.ghosts) {
		return l
	}
	copied := *l
	copied.ghosts = l.ghosts[:n:n]
	return &copied
}

// sortPositions orders positions column by column, bottom to top.
func sortPositions(ps []Position) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].X != ps[j].X {
			return ps[i].X < ps[j].X
		}
		return ps[i].Y < ps[j].Y
	})
}

// Built-in layouts by name.
var Layouts = map[string]string{
	"testClassic": `
%%%%%
% . %
%.G.%
% . %
%. .%
%   %
%  .%
%   %
%P .%
%%%%%
`,
	"minimaxClassic": `
%%%%%%%%%
%.P    G%
% %.%G%%%
%G    %%%
%%%%%%%%%
`,
	"trappedClassic": `
%%%%%%%%
%   P G%
%G%%%%%%
%....  %
%%%%%%%%
`,
	"smallClassic": `
%%%%%%%%%%%%%%%%%%%%
%......%G  G%......%
%.%%...%%  %%...%%.%
%.%o.%........%.o%.%
%.%%.%.%%%%%%.%.%%.%
%........P.........%
%%%%%%%%%%%%%%%%%%%%
`,
	"openClassic": `
%%%%%%%%%%
%P.....  %
%.  o  ..%
%..  ...G%
%%%%%%%%%%
`,
}
