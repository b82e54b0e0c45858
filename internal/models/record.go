package models

import "fmt"

// RecordKind tags the payload carried by a Record.
type RecordKind string

const (
	KindMember    RecordKind = "member"
	KindBill      RecordKind = "bill"
	KindPayment   RecordKind = "payment"
	KindMealEntry RecordKind = "meal_entry"
)

// RecordKinds lists every kind in load order (members first).
var RecordKinds = []RecordKind{KindMember, KindBill, KindPayment, KindMealEntry}

// ParseRecordKind converts a user-supplied string into a RecordKind.
// "meal" is accepted as a short form of "meal_entry".
func ParseRecordKind(s string) (RecordKind, error) {
	switch RecordKind(s) {
	case KindMember, KindBill, KindPayment, KindMealEntry:
		return RecordKind(s), nil
	case "meal":
		return KindMealEntry, nil
	}
	return "", fmt.Errorf("unknown record kind %q", s)
}

// Record is the unit the record store works with: exactly one of the
// payload pointers is set, matching Kind.
type Record struct {
	Kind      RecordKind
	Member    *Member
	Bill      *Bill
	Payment   *Payment
	MealEntry *MealEntry
}

// MemberRecord wraps a member.
func MemberRecord(m Member) Record { return Record{Kind: KindMember, Member: &m} }

// BillRecord wraps a bill.
func BillRecord(b Bill) Record { return Record{Kind: KindBill, Bill: &b} }

// PaymentRecord wraps a payment.
func PaymentRecord(p Payment) Record { return Record{Kind: KindPayment, Payment: &p} }

// MealEntryRecord wraps a meal entry.
func MealEntryRecord(e MealEntry) Record { return Record{Kind: KindMealEntry, MealEntry: &e} }

// ID returns the identifier of the wrapped payload, or "" if the payload is missing.
func (r Record) ID() string {
	switch {
	case r.Kind == KindMember && r.Member != nil:
		return r.Member.ID
	case r.Kind == KindBill && r.Bill != nil:
		return r.Bill.ID
	case r.Kind == KindPayment && r.Payment != nil:
		return r.Payment.ID
	case r.Kind == KindMealEntry && r.MealEntry != nil:
		return r.MealEntry.ID
	}
	return ""
}

// SetID assigns the payload identifier.
func (r *Record) SetID(id string) {
	switch {
	case r.Kind == KindMember && r.Member != nil:
		r.Member.ID = id
	case r.Kind == KindBill && r.Bill != nil:
		r.Bill.ID = id
	case r.Kind == KindPayment && r.Payment != nil:
		r.Payment.ID = id
	case r.Kind == KindMealEntry && r.MealEntry != nil:
		r.MealEntry.ID = id
	}
}

// Check verifies that the payload matching Kind is present.
func (r Record) Check() error {
	var present bool
	switch r.Kind {
	case KindMember:
		present = r.Member != nil
	case KindBill:
		present = r.Bill != nil
	case KindPayment:
		present = r.Payment != nil
	case KindMealEntry:
		present = r.MealEntry != nil
	default:
		return fmt.Errorf("unknown record kind %q", r.Kind)
	}
	if !present {
		return fmt.Errorf("%s record has no payload", r.Kind)
	}
	return nil
}
