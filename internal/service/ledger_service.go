package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/messledger/internal/api"
	"github.com/mmynk/messledger/internal/api/apiconnect"
	"github.com/mmynk/messledger/internal/ledger"
	"github.com/mmynk/messledger/internal/models"
	"github.com/mmynk/messledger/internal/period"
	"github.com/mmynk/messledger/internal/storage"
)

// LedgerService implements the Connect LedgerService
type LedgerService struct {
	apiconnect.UnimplementedLedgerServiceHandler
	ledger *ledger.Ledger
	now    func() time.Time
}

// NewLedgerService creates a new LedgerService on top of the given ledger.
func NewLedgerService(l *ledger.Ledger) *LedgerService {
	return &LedgerService{ledger: l, now: time.Now}
}

// connectError maps ledger and storage errors to Connect codes.
func connectError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrInvalidRecord):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, ledger.ErrUnknownMember):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, ledger.ErrRecordLimit):
		return connect.NewError(connect.CodeResourceExhausted, err)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// ListRecords returns every record the ledger currently holds.
func (s *LedgerService) ListRecords(ctx context.Context, req *connect.Request[api.ListRecordsRequest]) (*connect.Response[api.ListRecordsResponse], error) {
	records := s.ledger.Snapshot().Records()
	return connect.NewResponse(&api.ListRecordsResponse{
		Records: api.FromRecords(records),
	}), nil
}

// CreateRecord validates and stores a record, returning it with its ID.
func (s *LedgerService) CreateRecord(ctx context.Context, req *connect.Request[api.CreateRecordRequest]) (*connect.Response[api.CreateRecordResponse], error) {
	rec, err := req.Msg.Record.ToRecord()
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := s.ledger.Create(ctx, &rec); err != nil {
		slog.Error("CreateRecord failed", "kind", rec.Kind, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.CreateRecordResponse{
		Record: api.FromRecord(rec),
	}), nil
}

// DeleteRecord removes a record by kind and ID.
func (s *LedgerService) DeleteRecord(ctx context.Context, req *connect.Request[api.DeleteRecordRequest]) (*connect.Response[api.DeleteRecordResponse], error) {
	kind, err := models.ParseRecordKind(req.Msg.Kind)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := s.ledger.Delete(ctx, kind, req.Msg.ID); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Error("DeleteRecord failed", "kind", kind, "id", req.Msg.ID, "error", err)
		}
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.DeleteRecordResponse{}), nil
}

// GetSettlement computes the house report for the requested month.
func (s *LedgerService) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	p, filter, err := period.ResolveScope(req.Msg.Month, req.Msg.Filter, s.now())
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	report := s.ledger.Settlement(p, filter)
	slog.Debug("Settlement computed",
		"period", p.String(),
		"members", len(report.Rows),
		"meal_rate", report.MealRate,
		"total_expense", report.TotalExpense,
	)

	return connect.NewResponse(&api.GetSettlementResponse{
		Settlement: api.FromReport(report),
	}), nil
}

// GetMemberMetrics computes one member's settlement and their meal count for a day.
func (s *LedgerService) GetMemberMetrics(ctx context.Context, req *connect.Request[api.GetMemberMetricsRequest]) (*connect.Response[api.GetMemberMetricsResponse], error) {
	if req.Msg.MemberID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("member_id is required"))
	}

	now := s.now()
	p, filter, err := period.ResolveScope(req.Msg.Month, req.Msg.Filter, now)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	date := now.Format(period.DateLayout)
	if req.Msg.Date != "" {
		date, err = period.NormalizeDate(req.Msg.Date)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
	}

	m, ok := s.ledger.MemberMetrics(req.Msg.MemberID, p, filter)
	if !ok {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("member not found"))
	}

	return connect.NewResponse(&api.GetMemberMetricsResponse{
		Metrics:          api.FromMetrics(m),
		Date:             date,
		MealCountForDate: s.ledger.MealCount(req.Msg.MemberID, date),
	}), nil
}
