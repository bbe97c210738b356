package overlay

import (
	"sync/atomic"

	"github.com/Garsondee/Region-Locker/internal/region"
)

// Hover is the region under the cursor, or none when OK is false.
type Hover struct {
	ID region.ID
	OK bool
}

// NoHover is the "no region hovered" value.
var NoHover = Hover{}

// Hovered returns a Hover for id.
func Hovered(id region.ID) Hover { return Hover{ID: id, OK: true} }

func (h Hover) String() string {
	if !h.OK {
		return "none"
	}
	return h.ID.String()
}

const hoverValid = 1 << 32

// HoverCell holds the last composed Hover across frames. The render pass is
// the single writer; tooltip and click handlers may read it, or reset it
// between frames, from any goroutine.
type HoverCell struct {
	v atomic.Uint64
}

// Load returns the stored hover.
func (c *HoverCell) Load() Hover {
	v := c.v.Load()
	if v&hoverValid == 0 {
		return NoHover
	}
	return Hovered(region.ID(int32(uint32(v))))
}

// Store replaces the stored hover.
func (c *HoverCell) Store(h Hover) {
	if !h.OK {
		c.v.Store(0)
		return
	}
	c.v.Store(hoverValid | uint64(uint32(h.ID)))
}

// Reset clears the stored hover.
func (c *HoverCell) Reset() { c.v.Store(0) }
