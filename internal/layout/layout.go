// Package layout places schedule items on the weekly time grid.
//
// Geometry is unit-agnostic: with UnitsPerHour=120 the numbers are pixels,
// with UnitsPerHour=2 and GridWidth set to a terminal width they are rows
// and columns.
package layout

import (
	"fmt"
	"time"

	"questlog/internal/schedule"
	"questlog/internal/timeparse"
)

// Columns is the seven day columns plus the time-label column.
const Columns = 8

type Params struct {
	GridStartHour float64
	GridEndHour   float64
	UnitsPerHour  float64
	GridWidth     float64
}

// Geometry is the absolute position of one item. Values are not clipped to
// the grid: items starting before GridStartHour get a negative Top and items
// running past GridEndHour overflow the grid height.
type Geometry struct {
	ItemID string
	Column int
	Top    float64
	Height float64
	Left   float64
	Width  float64
}

func (g Geometry) Bottom() float64 { return g.Top + g.Height }

// Place computes the geometry of a single item.
func Place(item schedule.Item, p Params) Geometry {
	col := item.DayIndex + 1
	return Geometry{
		ItemID: item.ID,
		Column: col,
		Top:    (item.StartHour - p.GridStartHour) * p.UnitsPerHour,
		Height: item.Duration * p.UnitsPerHour,
		Left:   float64(col) / Columns * p.GridWidth,
		Width:  p.GridWidth / Columns,
	}
}

// PlaceAll keeps the input order.
func PlaceAll(items []schedule.Item, p Params) []Geometry {
	out := make([]Geometry, 0, len(items))
	for _, item := range items {
		out = append(out, Place(item, p))
	}
	return out
}

// GridHeight is the full height of the time axis.
func (p Params) GridHeight() float64 {
	return (p.GridEndHour - p.GridStartHour) * p.UnitsPerHour
}

// Offset is the vertical position of a clock time, used for the current-time line.
func (p Params) Offset(t time.Time) float64 {
	return (timeparse.FractionalHour(t) - p.GridStartHour) * p.UnitsPerHour
}

// InRange reports whether a vertical offset lies on the visible grid.
func (p Params) InRange(offset float64) bool {
	return offset >= 0 && offset < p.GridHeight()
}

type Slot struct {
	Hour    int
	Minutes int
	Label   string
}

// OnHour marks the slots that start an hour; they get the stronger rule.
func (s Slot) OnHour() bool { return s.Minutes == 0 }

// TimeSlots lists the rows of the time axis every slotMinutes from
// startHour up to (not including) endHour.
func TimeSlots(startHour, endHour, slotMinutes int) []Slot {
	if slotMinutes <= 0 || endHour <= startHour {
		return nil
	}
	count := (endHour - startHour) * 60 / slotMinutes
	slots := make([]Slot, 0, count)
	for i := 0; i < count; i++ {
		total := i * slotMinutes
		hour := startHour + total/60
		minutes := total % 60
		slots = append(slots, Slot{
			Hour:    hour,
			Minutes: minutes,
			Label:   fmt.Sprintf("%d:%02d", hour, minutes),
		})
	}
	return slots
}
