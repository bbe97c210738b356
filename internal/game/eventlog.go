package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	logPanelWidth = 320
	logMaxEntries = 60
	logLineHeight = 16 // DebugPrint glyphs are 6x16
)

// LogEntry is a single line in the event log.
type LogEntry struct {
	Tick    int
	Message string
}

// EventLog is a ring buffer of viewer events rendered on-screen.
type EventLog struct {
	entries []LogEntry
	head    int
	count   int
}

// NewEventLog creates an event log with a fixed capacity.
func NewEventLog() *EventLog {
	return &EventLog{
		entries: make([]LogEntry, logMaxEntries),
	}
}

// Add appends an entry, evicting the oldest once full.
func (l *EventLog) Add(tick int, msg string) {
	l.entries[l.head] = LogEntry{Tick: tick, Message: msg}
	l.head = (l.head + 1) % logMaxEntries
	if l.count < logMaxEntries {
		l.count++
	}
}

// Len is the number of retained entries.
func (l *EventLog) Len() int { return l.count }

// Recent returns entries in chronological order (oldest first).
func (l *EventLog) Recent() []LogEntry {
	result := make([]LogEntry, l.count)
	for i := 0; i < l.count; i++ {
		idx := (l.head - l.count + i + logMaxEntries) % logMaxEntries
		result[i] = l.entries[idx]
	}
	return result
}

// Draw renders the log panel at panelX, full height.
func (l *EventLog) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 10, G: 12, B: 10, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 16, color.RGBA{R: 20, G: 30, B: 20, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", panelX+8, 0)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+logPanelWidth), 16, 1.0, color.RGBA{R: 50, G: 80, B: 50, A: 200}, false)

	entries := l.Recent()

	// Newest at the bottom.
	maxVisible := (panelH - 24) / logLineHeight
	if maxVisible < 0 {
		maxVisible = 0
	}
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 20
	for i, e := range entries {
		if i == len(entries)-1 {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 30, G: 40, B: 30, A: 160}, false)
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d %s", e.Tick, e.Message), panelX+6, y)
		y += logLineHeight
	}
}
