package ledger

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mmynk/messledger/internal/models"
	"github.com/mmynk/messledger/internal/period"
)

var (
	ErrInvalidRecord = errors.New("invalid record")
	ErrUnknownMember = errors.New("unknown member")
	ErrRecordLimit   = errors.New("record limit reached")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRecord, fmt.Sprintf(format, args...))
}

// normalize validates rec against the current snapshot and fills defaults.
// It rewrites dates to YYYY-MM-DD and trims free-text fields in place.
func normalize(rec *models.Record, snap Snapshot, now time.Time) error {
	if err := rec.Check(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	switch rec.Kind {
	case models.KindMember:
		return normalizeMember(rec.Member, now)
	case models.KindBill:
		return normalizeBill(rec.Bill)
	case models.KindPayment:
		return normalizePayment(rec.Payment, snap)
	case models.KindMealEntry:
		return normalizeMealEntry(rec.MealEntry, snap)
	}
	return nil
}

func normalizeMember(m *models.Member, now time.Time) error {
	m.Name = strings.TrimSpace(m.Name)
	m.Phone = strings.TrimSpace(m.Phone)
	if m.Name == "" {
		return invalid("member name is required")
	}
	if strings.TrimSpace(m.JoinDate) == "" {
		m.JoinDate = now.Format(period.DateLayout)
		return nil
	}
	date, err := period.NormalizeDate(m.JoinDate)
	if err != nil {
		return invalid("join date: %v", err)
	}
	m.JoinDate = date
	return nil
}

func normalizeBill(b *models.Bill) error {
	b.Title = strings.TrimSpace(b.Title)
	if b.Title == "" {
		return invalid("bill title is required")
	}

	if b.Category == "" {
		b.Category = models.CategoryOther
	}
	if !b.Category.Valid() {
		return invalid("unknown bill category %q", b.Category)
	}
	if b.SplitType == "" {
		b.SplitType = models.SplitEqual
	}
	if !b.SplitType.Valid() {
		return invalid("unknown split type %q", b.SplitType)
	}
	if b.Participants == "" {
		b.Participants = models.ParticipantsAll
	}
	if b.Participants != models.ParticipantsAll {
		return invalid("participants must be %q", models.ParticipantsAll)
	}

	if err := checkAmount(b.Amount); err != nil {
		return err
	}
	date, err := period.NormalizeDate(b.Date)
	if err != nil {
		return invalid("bill date: %v", err)
	}
	b.Date = date
	return nil
}

func normalizePayment(p *models.Payment, snap Snapshot) error {
	if _, ok := snap.Member(p.MemberID); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMember, p.MemberID)
	}
	if err := checkAmount(p.Amount); err != nil {
		return err
	}
	date, err := period.NormalizeDate(p.Date)
	if err != nil {
		return invalid("payment date: %v", err)
	}
	p.Date = date
	p.Method = strings.TrimSpace(p.Method)
	p.Note = strings.TrimSpace(p.Note)
	return nil
}

func normalizeMealEntry(e *models.MealEntry, snap Snapshot) error {
	if _, ok := snap.Member(e.MemberID); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMember, e.MemberID)
	}
	if e.Count < 0 {
		return invalid("meal count must not be negative")
	}
	date, err := period.NormalizeDate(e.Date)
	if err != nil {
		return invalid("meal date: %v", err)
	}
	e.Date = date
	return nil
}

func checkAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return invalid("amount must be a number")
	}
	if amount < 0 {
		return invalid("amount must not be negative")
	}
	return nil
}
