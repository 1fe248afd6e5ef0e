package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jeffwilliams/squarify"
	"github.com/lumipallolabs/imageinfo/internal/model"
)

// Block represents a rectangle in the treemap
type Block struct {
	Root          model.RootName
	Bytes         uint64
	X, Y          int
	Width, Height int
}

// RootTreemap shows how matched bytes split across scan roots
type RootTreemap struct {
	tallies []model.Tally
	blocks  []Block
	width   int
	height  int
}

// NewRootTreemap creates a treemap for a scan result
func NewRootTreemap(tallies []model.Tally) RootTreemap {
	return RootTreemap{tallies: tallies}
}

// SetSize sets the treemap dimensions and recomputes the layout
func (t *RootTreemap) SetSize(w, h int) {
	t.width = w
	t.height = h
	t.layout()
}

// Blocks returns the laid out blocks
func (t RootTreemap) Blocks() []Block {
	return t.blocks
}

// treemapItem wraps a tally for the squarify algorithm
type treemapItem struct {
	tally    model.Tally
	size     float64
	children []*treemapItem
}

// Size implements squarify.TreeSizer
func (t *treemapItem) Size() float64 {
	return t.size
}

// NumChildren implements squarify.TreeSizer
func (t *treemapItem) NumChildren() int {
	return len(t.children)
}

// Child implements squarify.TreeSizer
func (t *treemapItem) Child(i int) squarify.TreeSizer {
	return t.children[i]
}

// layout calculates block positions using the squarify library
func (t *RootTreemap) layout() {
	t.blocks = nil

	if t.width < 1 || t.height < 1 {
		return
	}

	// Roots without matches get no area
	root := &treemapItem{}
	for _, tally := range t.tallies {
		if tally.Bytes == 0 {
			continue
		}
		item := &treemapItem{tally: tally, size: float64(tally.Bytes)}
		root.children = append(root.children, item)
		root.size += item.size
	}
	if len(root.children) == 0 {
		return
	}

	sort.Slice(root.children, func(i, j int) bool {
		return root.children[i].size > root.children[j].size
	})

	rect := squarify.Rect{
		X: 0,
		Y: 0,
		W: float64(t.width),
		H: float64(t.height),
	}
	blocks, metas := squarify.Squarify(root, rect, squarify.Options{
		MaxDepth: 1,
		Sort:     true,
	})

	for i, b := range blocks {
		// squarify reports the root's children at depth 0
		if i >= len(metas) || metas[i].Depth != 0 {
			continue
		}
		item, ok := b.TreeSizer.(*treemapItem)
		if !ok {
			continue
		}

		// Snap to the character grid so neighbours share edges
		x := int(b.X)
		y := int(b.Y)
		w := int(b.X+b.W) - x
		h := int(b.Y+b.H) - y
		if x+w > t.width {
			w = t.width - x
		}
		if y+h > t.height {
			h = t.height - y
		}
		if w < 1 || h < 1 {
			continue
		}

		t.blocks = append(t.blocks, Block{
			Root:   item.tally.Root,
			Bytes:  item.tally.Bytes,
			X:      x,
			Y:      y,
			Width:  w,
			Height: h,
		})
	}
}

// View renders the treemap as colored character cells
func (t RootTreemap) View() string {
	if len(t.blocks) == 0 {
		return MutedStyle.Render("nothing to chart")
	}

	owner := make([][]int, t.height)
	cells := make([][]rune, t.height)
	for y := range owner {
		owner[y] = make([]int, t.width)
		cells[y] = []rune(strings.Repeat(" ", t.width))
		for x := range owner[y] {
			owner[y][x] = -1
		}
	}

	for i, b := range t.blocks {
		for y := b.Y; y < b.Y+b.Height; y++ {
			for x := b.X; x < b.X+b.Width; x++ {
				owner[y][x] = i
			}
		}

		label := []rune(fmt.Sprintf(" %s %s", b.Root.Label(), FormatSize(b.Bytes)))
		if len(label) > b.Width {
			label = label[:b.Width]
		}
		copy(cells[b.Y][b.X:], label)
	}

	var out strings.Builder
	for y := 0; y < t.height; y++ {
		start := 0
		for x := 1; x <= t.width; x++ {
			if x < t.width && owner[y][x] == owner[y][start] {
				continue
			}
			out.WriteString(t.cellStyle(owner[y][start]).Render(string(cells[y][start:x])))
			start = x
		}
		if y < t.height-1 {
			out.WriteString("\n")
		}
	}
	return out.String()
}

func (t RootTreemap) cellStyle(block int) lipgloss.Style {
	if block < 0 {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().
		Background(blockColors[block%len(blockColors)]).
		Foreground(lipgloss.Color("#FFFFFF"))
}
