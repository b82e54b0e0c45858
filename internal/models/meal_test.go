package models

import "testing"

func TestMealBookPutReplacesSlot(t *testing.T) {
	book := NewMealBook()

	if _, replaced := book.Put(MealEntry{ID: "m1", MemberID: "alice", Date: "2026-10-01", Count: 2}); replaced {
		t.Fatal("first put should not replace anything")
	}

	prev, replaced := book.Put(MealEntry{MemberID: "alice", Date: "2026-10-01", Count: 3})
	if !replaced {
		t.Fatal("second put for the same slot should replace")
	}
	if prev.Count != 2 {
		t.Errorf("previous count = %d, want 2", prev.Count)
	}

	if book.Len() != 1 {
		t.Fatalf("len = %d, want 1", book.Len())
	}
	got, ok := book.Get("alice", "2026-10-01")
	if !ok {
		t.Fatal("expected entry for alice")
	}
	if got.Count != 3 {
		t.Errorf("count = %d, want 3", got.Count)
	}
	if got.ID != "m1" {
		t.Errorf("id = %q, want the original id m1 to be kept", got.ID)
	}
}

func TestMealBookCollisionsLastWins(t *testing.T) {
	book := NewMealBook(
		MealEntry{ID: "a", MemberID: "bob", Date: "2026-10-02", Count: 1},
		MealEntry{ID: "b", MemberID: "bob", Date: "2026-10-02", Count: 4},
		MealEntry{ID: "c", MemberID: "bob", Date: "2026-10-03", Count: 2},
	)

	if book.Len() != 2 {
		t.Fatalf("len = %d, want 2", book.Len())
	}
	if c := book.Count("bob", "2026-10-02"); c != 4 {
		t.Errorf("count = %d, want 4", c)
	}

	entries := book.ForMember("bob")
	if len(entries) != 2 || entries[0].Date != "2026-10-02" || entries[1].Date != "2026-10-03" {
		t.Errorf("ForMember not ordered by date: %+v", entries)
	}
}

func TestMealBookRemoveID(t *testing.T) {
	book := NewMealBook(MealEntry{ID: "x", MemberID: "carol", Date: "2026-10-05", Count: 2})

	if !book.RemoveID("x") {
		t.Fatal("expected removal")
	}
	if book.RemoveID("x") {
		t.Error("second removal should report false")
	}
	if book.Count("carol", "2026-10-05") != 0 {
		t.Error("expected slot to be empty")
	}
}

func TestNilMealBookReadsEmpty(t *testing.T) {
	var book *MealBook
	if book.Len() != 0 || book.Count("x", "2026-01-01") != 0 || book.Entries() != nil {
		t.Error("nil book should read as empty")
	}
}
