package task

import "testing"

func fixedID(id string) func() string {
	return func() string { return id }
}

func TestAddGeneratesID(t *testing.T) {
	list := Seed()
	out, added := list.Add(Task{Title: "Read chapter 5", DueDate: "2025-01-20", DueTime: "10:00"}, fixedID("new-1"))
	if out.Len() != list.Len()+1 {
		t.Fatalf("expected %d tasks, got %d", list.Len()+1, out.Len())
	}
	if added.ID != "new-1" {
		t.Fatalf("expected generated id, got %q", added.ID)
	}
	if last := out[out.Len()-1]; last.ID != "new-1" || last.Title != "Read chapter 5" {
		t.Fatalf("expected new task appended last, got %#v", last)
	}
	if list.Len() != 5 {
		t.Fatalf("expected original list untouched, got %d", list.Len())
	}
}

func TestAddDefaultIDIsUnique(t *testing.T) {
	var list List
	list, a := list.Add(Task{Title: "a"}, nil)
	list, b := list.Add(Task{Title: "b"}, nil)
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct ids, got %q and %q", a.ID, b.ID)
	}
	if list.Len() != 2 {
		t.Fatalf("expected 2 tasks, got %d", list.Len())
	}
}

func TestUpdateInPlace(t *testing.T) {
	list := Seed()
	edited := list[2]
	edited.Title = "Lab Report Final"
	out, ok := list.Update(edited)
	if !ok {
		t.Fatalf("expected update to succeed")
	}
	if out[2].Title != "Lab Report Final" || out.Len() != list.Len() {
		t.Fatalf("unexpected list after update: %#v", out)
	}
	if list[2].Title != "Lab Report Writeup" {
		t.Fatalf("expected original list untouched")
	}
}

func TestUpdateUnknownIsNoop(t *testing.T) {
	list := Seed()
	out, ok := list.Update(Task{ID: "missing", Title: "x"})
	if ok {
		t.Fatalf("expected unknown id to report false")
	}
	if out.Len() != list.Len() {
		t.Fatalf("expected no change, got %d tasks", out.Len())
	}
	for i := range list {
		if out[i] != list[i] {
			t.Fatalf("task %d changed: %#v", i, out[i])
		}
	}
}

func TestRemoveExactlyOne(t *testing.T) {
	list := Seed()
	out, ok := list.Remove("3")
	if !ok {
		t.Fatalf("expected remove to succeed")
	}
	if out.Len() != list.Len()-1 {
		t.Fatalf("expected %d tasks, got %d", list.Len()-1, out.Len())
	}
	want := []string{"1", "2", "4", "5"}
	for i, id := range want {
		if out[i].ID != id {
			t.Fatalf("expected order %v, got %#v", want, out.Items())
		}
	}
	if _, ok := out.Remove("3"); ok {
		t.Fatalf("expected second remove to report false")
	}
}

func TestSave(t *testing.T) {
	list := Seed()
	out, saved, ok := list.Save(Task{Title: "New"}, fixedID("n"))
	if !ok || saved.ID != "n" || out.Len() != 6 {
		t.Fatalf("expected add via save, got ok=%v id=%q len=%d", ok, saved.ID, out.Len())
	}
	out, saved, ok = out.Save(Task{ID: "n", Title: "Renamed"}, fixedID("unused"))
	if !ok || saved.ID != "n" {
		t.Fatalf("expected update via save")
	}
	if got, _ := out.Find("n"); got.Title != "Renamed" {
		t.Fatalf("expected renamed task, got %#v", got)
	}
	if _, _, ok := out.Save(Task{ID: "ghost", Title: "x"}, nil); ok {
		t.Fatalf("expected save with unknown id to report false")
	}
}

func TestItemsIsCopy(t *testing.T) {
	list := Seed()
	items := list.Items()
	items[0].Title = "changed"
	if list[0].Title == "changed" {
		t.Fatalf("Items must not alias the list")
	}
}
