package api

import (
	"fmt"

	"github.com/mmynk/messledger/internal/calculator"
	"github.com/mmynk/messledger/internal/models"
)

// FromRecord converts a domain record to its wire form.
func FromRecord(r models.Record) Record {
	out := Record{Kind: string(r.Kind)}
	switch {
	case r.Member != nil:
		out.Member = &Member{
			ID:       r.Member.ID,
			Name:     r.Member.Name,
			Phone:    r.Member.Phone,
			JoinDate: r.Member.JoinDate,
		}
	case r.Bill != nil:
		out.Bill = &Bill{
			ID:           r.Bill.ID,
			Title:        r.Bill.Title,
			BillType:     string(r.Bill.Category),
			Amount:       r.Bill.Amount,
			Date:         r.Bill.Date,
			SplitType:    string(r.Bill.SplitType),
			Participants: r.Bill.Participants,
		}
	case r.Payment != nil:
		out.Payment = &Payment{
			ID:            r.Payment.ID,
			MemberID:      r.Payment.MemberID,
			Amount:        r.Payment.Amount,
			Date:          r.Payment.Date,
			PaymentMethod: r.Payment.Method,
			Note:          r.Payment.Note,
		}
	case r.MealEntry != nil:
		out.MealEntry = &MealEntry{
			ID:        r.MealEntry.ID,
			MemberID:  r.MealEntry.MemberID,
			MealDate:  r.MealEntry.Date,
			MealCount: r.MealEntry.Count,
		}
	}
	return out
}

// FromRecords converts a record collection.
func FromRecords(records []models.Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = FromRecord(r)
	}
	return out
}

// ToRecord converts a wire record to the domain form.
// Missing optional fields become their zero values.
func (r Record) ToRecord() (models.Record, error) {
	kind, err := models.ParseRecordKind(r.Kind)
	if err != nil {
		return models.Record{}, err
	}

	out := models.Record{Kind: kind}
	switch kind {
	case models.KindMember:
		if r.Member != nil {
			out.Member = &models.Member{
				ID:       r.Member.ID,
				Name:     r.Member.Name,
				Phone:    r.Member.Phone,
				JoinDate: r.Member.JoinDate,
			}
		}
	case models.KindBill:
		if r.Bill != nil {
			out.Bill = &models.Bill{
				ID:           r.Bill.ID,
				Title:        r.Bill.Title,
				Category:     models.BillCategory(r.Bill.BillType),
				Amount:       r.Bill.Amount,
				Date:         r.Bill.Date,
				SplitType:    models.SplitType(r.Bill.SplitType),
				Participants: r.Bill.Participants,
			}
		}
	case models.KindPayment:
		if r.Payment != nil {
			out.Payment = &models.Payment{
				ID:       r.Payment.ID,
				MemberID: r.Payment.MemberID,
				Amount:   r.Payment.Amount,
				Date:     r.Payment.Date,
				Method:   r.Payment.PaymentMethod,
				Note:     r.Payment.Note,
			}
		}
	case models.KindMealEntry:
		if r.MealEntry != nil {
			out.MealEntry = &models.MealEntry{
				ID:       r.MealEntry.ID,
				MemberID: r.MealEntry.MemberID,
				Date:     r.MealEntry.MealDate,
				Count:    r.MealEntry.MealCount,
			}
		}
	}

	if err := out.Check(); err != nil {
		return models.Record{}, fmt.Errorf("invalid record: %w", err)
	}
	return out, nil
}

// FromMetrics converts one member's metrics.
func FromMetrics(m calculator.MemberMetrics) SettlementRow {
	return SettlementRow{
		MemberID:     m.MemberID,
		Name:         m.Name,
		JoinDate:     m.JoinDate,
		TotalPaid:    m.TotalPaid,
		TotalBills:   m.TotalBills,
		TotalDue:     m.TotalDue,
		MonthlyMeals: m.MonthlyMeals,
		Balance:      m.Balance,
		Advance:      m.Advance,
		Status:       string(m.Status),
	}
}

// FromReport converts a settlement report.
func FromReport(r calculator.Report) Settlement {
	out := Settlement{
		Period:        r.Period.String(),
		Label:         r.Period.Label(),
		Rows:          make([]SettlementRow, len(r.Rows)),
		TotalExpense:  r.TotalExpense,
		TotalDeposits: r.TotalDeposits,
		TotalDue:      r.TotalDue,
		TotalMeals:    r.TotalMeals,
		MealRate:      r.MealRate,
		Transfers:     make([]Transfer, len(r.Transfers)),
	}
	for i, row := range r.Rows {
		out.Rows[i] = FromMetrics(row)
	}
	for i, t := range r.Transfers {
		out.Transfers[i] = Transfer{
			FromID:   t.FromID,
			FromName: t.FromName,
			ToID:     t.ToID,
			ToName:   t.ToName,
			Amount:   t.Amount,
		}
	}
	return out
}
