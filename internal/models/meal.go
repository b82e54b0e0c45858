package models

import "sort"

// MealEntry records how many meals a member had on one day.
type MealEntry struct {
	// ID is the unique identifier for the entry (UUID format).
	ID string

	// MemberID is the member who ate. May reference a deleted member.
	MemberID string

	// Date is the day of the meals (YYYY-MM-DD).
	Date string

	// Count is the number of meals. Never negative.
	Count int
}

// RecordDate implements period.Dated.
func (e MealEntry) RecordDate() string { return e.Date }

// Key returns the composite key identifying the entry's (member, day) slot.
func (e MealEntry) Key() MealKey {
	return MealKey{MemberID: e.MemberID, Date: e.Date}
}

// MealKey identifies the single meal slot of a member on a day.
type MealKey struct {
	MemberID string
	Date     string
}

// MealBook holds at most one MealEntry per MealKey.
// The zero value is not usable; use NewMealBook. A nil *MealBook reads as empty.
type MealBook struct {
	entries map[MealKey]MealEntry
}

// NewMealBook builds a book from entries. Later entries win on key collisions.
func NewMealBook(entries ...MealEntry) *MealBook {
	b := &MealBook{entries: make(map[MealKey]MealEntry, len(entries))}
	for _, e := range entries {
		b.Put(e)
	}
	return b
}

// Put stores e in its slot, replacing whatever was there.
// If e has no ID, the replaced entry's ID is kept.
// It returns the previous entry and whether one existed.
func (b *MealBook) Put(e MealEntry) (MealEntry, bool) {
	key := e.Key()
	prev, ok := b.entries[key]
	if ok && e.ID == "" {
		e.ID = prev.ID
	}
	b.entries[key] = e
	return prev, ok
}

// Get returns the entry for a member on a day.
func (b *MealBook) Get(memberID, date string) (MealEntry, bool) {
	if b == nil {
		return MealEntry{}, false
	}
	e, ok := b.entries[MealKey{MemberID: memberID, Date: date}]
	return e, ok
}

// Count returns the meal count for a member on a day, or 0.
func (b *MealBook) Count(memberID, date string) int {
	e, _ := b.Get(memberID, date)
	return e.Count
}

// RemoveID deletes the entry with the given ID. Reports whether it existed.
func (b *MealBook) RemoveID(id string) bool {
	if b == nil {
		return false
	}
	for key, e := range b.entries {
		if e.ID == id {
			delete(b.entries, key)
			return true
		}
	}
	return false
}

// Len returns the number of entries.
func (b *MealBook) Len() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}

// Entries returns all entries ordered by date, then member.
func (b *MealBook) Entries() []MealEntry {
	if b == nil {
		return nil
	}
	out := make([]MealEntry, 0, len(b.entries))
	for _, e := range b.entries {
		out = append(out, e)
	}
	sortEntries(out)
	return out
}

// ForMember returns the member's entries ordered by date.
func (b *MealBook) ForMember(memberID string) []MealEntry {
	if b == nil {
		return nil
	}
	var out []MealEntry
	for key, e := range b.entries {
		if key.MemberID == memberID {
			out = append(out, e)
		}
	}
	sortEntries(out)
	return out
}

func sortEntries(entries []MealEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].MemberID < entries[j].MemberID
	})
}
