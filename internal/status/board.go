package status

import (
	"strings"
	"sync"
)

// Board keeps the blocks of every region in memory so a view can render
// them. Safe for use from command goroutines and the render loop.
type Board struct {
	mu      sync.RWMutex
	regions map[Region][]Block
}

var _ Presenter = (*Board)(nil)

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{regions: make(map[Region][]Block)}
}

// Present replaces the region content, or appends when appendMode is set.
func (b *Board) Present(region Region, message string, severity Severity, appendMode bool) {
	block := NewBlock(message, severity)

	b.mu.Lock()
	defer b.mu.Unlock()

	if appendMode {
		b.regions[region] = append(b.regions[region], block)
		return
	}
	b.regions[region] = []Block{block}
}

// Blocks returns a copy of the region's blocks.
func (b *Board) Blocks(region Region) []Block {
	b.mu.RLock()
	defer b.mu.RUnlock()

	blocks := b.regions[region]
	out := make([]Block, len(blocks))
	copy(out, blocks)
	return out
}

// Clear empties a region.
func (b *Board) Clear(region Region) {
	b.mu.Lock()
	delete(b.regions, region)
	b.mu.Unlock()
}

// Render returns the styled content of a region, or "" when empty.
func (b *Board) Render(region Region) string {
	blocks := b.Blocks(region)
	if len(blocks) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(blocks))
	for _, block := range blocks {
		rendered = append(rendered, renderBlock(block))
	}
	return strings.Join(rendered, "\n")
}
