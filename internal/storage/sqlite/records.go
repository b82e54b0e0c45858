package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/messledger/internal/models"
)

// createdAt orders records of one kind by insertion.
func createdAt() int64 {
	return time.Now().UnixNano()
}

func (s *SQLiteStore) createMember(ctx context.Context, m *models.Member) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO members (id, name, phone, join_date, created_at) VALUES (?, ?, ?, ?, ?)",
		m.ID, m.Name, m.Phone, m.JoinDate, createdAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

func (s *SQLiteStore) listMembers(ctx context.Context) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, phone, join_date FROM members ORDER BY created_at, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Phone, &m.JoinDate); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

func (s *SQLiteStore) createBill(ctx context.Context, b *models.Bill) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.SplitType == "" {
		b.SplitType = models.SplitEqual
	}
	if b.Participants == "" {
		b.Participants = models.ParticipantsAll
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bills (id, title, category, amount, bill_date, split_type, participants, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Title, string(b.Category), b.Amount, b.Date, string(b.SplitType), b.Participants, createdAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}
	return nil
}

func (s *SQLiteStore) listBills(ctx context.Context) ([]models.Bill, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, category, amount, bill_date, split_type, participants
		 FROM bills ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []models.Bill
	for rows.Next() {
		var (
			b         models.Bill
			category  string
			splitType string
		)
		if err := rows.Scan(&b.ID, &b.Title, &category, &b.Amount, &b.Date, &splitType, &b.Participants); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		b.Category = models.BillCategory(category)
		b.SplitType = models.SplitType(splitType)
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}
	return bills, nil
}

func (s *SQLiteStore) createPayment(ctx context.Context, p *models.Payment) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (id, member_id, amount, payment_date, method, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.MemberID, p.Amount, p.Date, p.Method, p.Note, createdAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

func (s *SQLiteStore) listPayments(ctx context.Context) ([]models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, member_id, amount, payment_date, method, note
		 FROM payments ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.MemberID, &p.Amount, &p.Date, &p.Method, &p.Note); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}

// upsertMealEntry writes the entry into its (member, day) slot.
// An existing slot keeps its ID and takes the new count; e.ID is updated to
// the stored ID either way.
func (s *SQLiteStore) upsertMealEntry(ctx context.Context, e *models.MealEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	var id string
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO meal_entries (id, member_id, meal_date, meal_count, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (member_id, meal_date) DO UPDATE SET meal_count = excluded.meal_count
		 RETURNING id`,
		e.ID, e.MemberID, e.Date, e.Count, createdAt(),
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to upsert meal entry: %w", err)
	}
	e.ID = id
	return nil
}

func (s *SQLiteStore) listMealEntries(ctx context.Context) ([]models.MealEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, member_id, meal_date, meal_count FROM meal_entries ORDER BY meal_date, created_at",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal entries: %w", err)
	}
	defer rows.Close()

	var entries []models.MealEntry
	for rows.Next() {
		var e models.MealEntry
		if err := rows.Scan(&e.ID, &e.MemberID, &e.Date, &e.Count); err != nil {
			return nil, fmt.Errorf("failed to scan meal entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate meal entries: %w", err)
	}
	return entries, nil
}
