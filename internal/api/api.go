// Package api defines the wire messages of the messledger.v1 RPC service.
//
// Messages are plain structs encoded as JSON; field names follow the record
// shapes households already export (bill_type, meal_date, payment_method...).
package api

// Member is the wire form of models.Member.
type Member struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	JoinDate string `json:"join_date"`
}

// Bill is the wire form of models.Bill.
type Bill struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	BillType     string  `json:"bill_type"`
	Amount       float64 `json:"amount"`
	Date         string  `json:"date"`
	SplitType    string  `json:"split_type"`
	Participants string  `json:"participants"`
}

// Payment is the wire form of models.Payment.
type Payment struct {
	ID            string  `json:"id"`
	MemberID      string  `json:"member_id"`
	Amount        float64 `json:"amount"`
	Date          string  `json:"date"`
	PaymentMethod string  `json:"payment_method"`
	Note          string  `json:"note,omitempty"`
}

// MealEntry is the wire form of models.MealEntry.
type MealEntry struct {
	ID        string `json:"id"`
	MemberID  string `json:"member_id"`
	MealDate  string `json:"meal_date"`
	MealCount int    `json:"meal_count"`
}

// Record carries exactly one payload matching Kind.
type Record struct {
	Kind      string     `json:"kind"`
	Member    *Member    `json:"member,omitempty"`
	Bill      *Bill      `json:"bill,omitempty"`
	Payment   *Payment   `json:"payment,omitempty"`
	MealEntry *MealEntry `json:"meal_entry,omitempty"`
}

type ListRecordsRequest struct{}

type ListRecordsResponse struct {
	Records []Record `json:"records"`
}

type CreateRecordRequest struct {
	Record Record `json:"record"`
}

type CreateRecordResponse struct {
	Record Record `json:"record"`
}

type DeleteRecordRequest struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

type DeleteRecordResponse struct{}

// GetSettlementRequest selects the reporting scope.
// Month is "YYYY-MM" (default: current month). Filter is "" (same as Month),
// "all", or "YYYY-MM" and scopes bills and payments.
type GetSettlementRequest struct {
	Month  string `json:"month,omitempty"`
	Filter string `json:"filter,omitempty"`
}

type GetSettlementResponse struct {
	Settlement Settlement `json:"settlement"`
}

type GetMemberMetricsRequest struct {
	MemberID string `json:"member_id"`
	Month    string `json:"month,omitempty"`
	Filter   string `json:"filter,omitempty"`
	// Date selects the day for MealCountForDate (default: today).
	Date string `json:"date,omitempty"`
}

type GetMemberMetricsResponse struct {
	Metrics          SettlementRow `json:"metrics"`
	Date             string        `json:"date"`
	MealCountForDate int           `json:"meal_count_for_date"`
}

// Settlement is the wire form of calculator.Report.
type Settlement struct {
	Period        string          `json:"period"`
	Label         string          `json:"label"`
	Rows          []SettlementRow `json:"rows"`
	TotalExpense  float64         `json:"total_expense"`
	TotalDeposits float64         `json:"total_deposits"`
	TotalDue      float64         `json:"total_due"`
	TotalMeals    int             `json:"total_meals"`
	MealRate      float64         `json:"meal_rate"`
	Transfers     []Transfer      `json:"transfers"`
}

// SettlementRow is one member's line in the settlement.
type SettlementRow struct {
	MemberID     string  `json:"member_id"`
	Name         string  `json:"name"`
	JoinDate     string  `json:"join_date"`
	TotalPaid    float64 `json:"total_paid"`
	TotalBills   float64 `json:"total_bills"`
	TotalDue     float64 `json:"total_due"`
	MonthlyMeals int     `json:"monthly_meals"`
	Balance      float64 `json:"balance"`
	Advance      float64 `json:"advance"`
	Status       string  `json:"status"`
}

type Transfer struct {
	FromID   string  `json:"from_id"`
	FromName string  `json:"from_name"`
	ToID     string  `json:"to_id"`
	ToName   string  `json:"to_name"`
	Amount   float64 `json:"amount"`
}
