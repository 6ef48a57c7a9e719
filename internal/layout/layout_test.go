package layout

import (
	"testing"
	"time"

	"questlog/internal/schedule"
)

func TestPlaceMatchesPixelGrid(t *testing.T) {
	item := schedule.Item{ID: "s1", DayIndex: 1, StartHour: 9, Duration: 1.25}
	g := Place(item, Params{GridStartHour: 6, GridEndHour: 24, UnitsPerHour: 120, GridWidth: 800})
	if g.Top != 360 || g.Height != 150 {
		t.Fatalf("expected top 360 height 150, got %v %v", g.Top, g.Height)
	}
	if g.Column != 2 || g.Left != 200 || g.Width != 100 {
		t.Fatalf("unexpected horizontal geometry %#v", g)
	}
	if g.Bottom() != 510 {
		t.Fatalf("unexpected bottom %v", g.Bottom())
	}
}

func TestPlaceDoesNotClip(t *testing.T) {
	p := Params{GridStartHour: 6, GridEndHour: 24, UnitsPerHour: 2, GridWidth: 80}
	early := Place(schedule.Item{ID: "a", DayIndex: 0, StartHour: 5, Duration: 2}, p)
	if early.Top != -2 || early.Height != 4 {
		t.Fatalf("expected negative top, got %#v", early)
	}
	late := Place(schedule.Item{ID: "b", DayIndex: 6, StartHour: 23, Duration: 2}, p)
	if late.Bottom() <= p.GridHeight() {
		t.Fatalf("expected overflow past grid height %v, got %v", p.GridHeight(), late.Bottom())
	}
	if late.Column != 7 {
		t.Fatalf("expected Saturday in column 7, got %d", late.Column)
	}
}

func TestPlaceAllKeepsOrder(t *testing.T) {
	items := schedule.Defaults()
	geoms := PlaceAll(items, Params{GridStartHour: 6, GridEndHour: 24, UnitsPerHour: 120, GridWidth: 800})
	if len(geoms) != len(items) {
		t.Fatalf("expected %d geometries, got %d", len(items), len(geoms))
	}
	for i := range items {
		if geoms[i].ItemID != items[i].ID {
			t.Fatalf("order mismatch at %d: %s vs %s", i, geoms[i].ItemID, items[i].ID)
		}
	}
}

func TestOffsetAndRange(t *testing.T) {
	p := Params{GridStartHour: 6, GridEndHour: 24, UnitsPerHour: 120}
	at := time.Date(2025, 1, 6, 10, 30, 0, 0, time.UTC)
	if got := p.Offset(at); got != 540 {
		t.Fatalf("expected offset 540, got %v", got)
	}
	if !p.InRange(540) {
		t.Fatalf("expected 540 to be on the grid")
	}
	early := time.Date(2025, 1, 6, 5, 0, 0, 0, time.UTC)
	if p.InRange(p.Offset(early)) {
		t.Fatalf("expected 5:00 to be off the grid")
	}
	if p.InRange(p.GridHeight()) {
		t.Fatalf("expected grid end to be exclusive")
	}
}

func TestTimeSlots(t *testing.T) {
	slots := TimeSlots(6, 24, 15)
	if len(slots) != 72 {
		t.Fatalf("expected 72 slots, got %d", len(slots))
	}
	if slots[0].Label != "6:00" || !slots[0].OnHour() {
		t.Fatalf("unexpected first slot %#v", slots[0])
	}
	if slots[1].Label != "6:15" || slots[1].OnHour() {
		t.Fatalf("unexpected second slot %#v", slots[1])
	}
	if last := slots[len(slots)-1]; last.Label != "23:45" {
		t.Fatalf("unexpected last slot %#v", last)
	}
	if TimeSlots(6, 6, 15) != nil || TimeSlots(6, 24, 0) != nil {
		t.Fatalf("expected nil for empty ranges")
	}
}
