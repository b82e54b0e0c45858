package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/messledger/internal/api"
)

// LedgerServiceName is the fully-qualified name of the LedgerService service.
const LedgerServiceName = "messledger.v1.LedgerService"

// Procedure paths, usable as HTTP routes and in interceptors via Spec().Procedure.
const (
	LedgerServiceListRecordsProcedure      = "/messledger.v1.LedgerService/ListRecords"
	LedgerServiceCreateRecordProcedure     = "/messledger.v1.LedgerService/CreateRecord"
	LedgerServiceDeleteRecordProcedure     = "/messledger.v1.LedgerService/DeleteRecord"
	LedgerServiceGetSettlementProcedure    = "/messledger.v1.LedgerService/GetSettlement"
	LedgerServiceGetMemberMetricsProcedure = "/messledger.v1.LedgerService/GetMemberMetrics"
)

// LedgerServiceClient is a client for the messledger.v1.LedgerService service.
type LedgerServiceClient interface {
	ListRecords(context.Context, *connect.Request[api.ListRecordsRequest]) (*connect.Response[api.ListRecordsResponse], error)
	CreateRecord(context.Context, *connect.Request[api.CreateRecordRequest]) (*connect.Response[api.CreateRecordResponse], error)
	DeleteRecord(context.Context, *connect.Request[api.DeleteRecordRequest]) (*connect.Response[api.DeleteRecordResponse], error)
	GetSettlement(context.Context, *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error)
	GetMemberMetrics(context.Context, *connect.Request[api.GetMemberMetricsRequest]) (*connect.Response[api.GetMemberMetricsResponse], error)
}

// NewLedgerServiceClient constructs a client for the messledger.v1.LedgerService
// service. The JSON codec is always installed; opts may add interceptors etc.
//
// The URL supplied here should be the base URL for the Connect server
// (for example, http://api.acme.com or https://acme.com/grpc).
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return &ledgerServiceClient{
		listRecords: connect.NewClient[api.ListRecordsRequest, api.ListRecordsResponse](
			httpClient, baseURL+LedgerServiceListRecordsProcedure, opts...,
		),
		createRecord: connect.NewClient[api.CreateRecordRequest, api.CreateRecordResponse](
			httpClient, baseURL+LedgerServiceCreateRecordProcedure, opts...,
		),
		deleteRecord: connect.NewClient[api.DeleteRecordRequest, api.DeleteRecordResponse](
			httpClient, baseURL+LedgerServiceDeleteRecordProcedure, opts...,
		),
		getSettlement: connect.NewClient[api.GetSettlementRequest, api.GetSettlementResponse](
			httpClient, baseURL+LedgerServiceGetSettlementProcedure, opts...,
		),
		getMemberMetrics: connect.NewClient[api.GetMemberMetricsRequest, api.GetMemberMetricsResponse](
			httpClient, baseURL+LedgerServiceGetMemberMetricsProcedure, opts...,
		),
	}
}

type ledgerServiceClient struct {
	listRecords      *connect.Client[api.ListRecordsRequest, api.ListRecordsResponse]
	createRecord     *connect.Client[api.CreateRecordRequest, api.CreateRecordResponse]
	deleteRecord     *connect.Client[api.DeleteRecordRequest, api.DeleteRecordResponse]
	getSettlement    *connect.Client[api.GetSettlementRequest, api.GetSettlementResponse]
	getMemberMetrics *connect.Client[api.GetMemberMetricsRequest, api.GetMemberMetricsResponse]
}

func (c *ledgerServiceClient) ListRecords(ctx context.Context, req *connect.Request[api.ListRecordsRequest]) (*connect.Response[api.ListRecordsResponse], error) {
	return c.listRecords.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) CreateRecord(ctx context.Context, req *connect.Request[api.CreateRecordRequest]) (*connect.Response[api.CreateRecordResponse], error) {
	return c.createRecord.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) DeleteRecord(ctx context.Context, req *connect.Request[api.DeleteRecordRequest]) (*connect.Response[api.DeleteRecordResponse], error) {
	return c.deleteRecord.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	return c.getSettlement.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetMemberMetrics(ctx context.Context, req *connect.Request[api.GetMemberMetricsRequest]) (*connect.Response[api.GetMemberMetricsResponse], error) {
	return c.getMemberMetrics.CallUnary(ctx, req)
}

// LedgerServiceHandler is an implementation of the messledger.v1.LedgerService service.
type LedgerServiceHandler interface {
	ListRecords(context.Context, *connect.Request[api.ListRecordsRequest]) (*connect.Response[api.ListRecordsResponse], error)
	CreateRecord(context.Context, *connect.Request[api.CreateRecordRequest]) (*connect.Response[api.CreateRecordResponse], error)
	DeleteRecord(context.Context, *connect.Request[api.DeleteRecordRequest]) (*connect.Response[api.DeleteRecordResponse], error)
	GetSettlement(context.Context, *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error)
	GetMemberMetrics(context.Context, *connect.Request[api.GetMemberMetricsRequest]) (*connect.Response[api.GetMemberMetricsResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)

	listRecords := connect.NewUnaryHandler(LedgerServiceListRecordsProcedure, svc.ListRecords, opts...)
	createRecord := connect.NewUnaryHandler(LedgerServiceCreateRecordProcedure, svc.CreateRecord, opts...)
	deleteRecord := connect.NewUnaryHandler(LedgerServiceDeleteRecordProcedure, svc.DeleteRecord, opts...)
	getSettlement := connect.NewUnaryHandler(LedgerServiceGetSettlementProcedure, svc.GetSettlement, opts...)
	getMemberMetrics := connect.NewUnaryHandler(LedgerServiceGetMemberMetricsProcedure, svc.GetMemberMetrics, opts...)

	return "/" + LedgerServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case LedgerServiceListRecordsProcedure:
			listRecords.ServeHTTP(w, r)
		case LedgerServiceCreateRecordProcedure:
			createRecord.ServeHTTP(w, r)
		case LedgerServiceDeleteRecordProcedure:
			deleteRecord.ServeHTTP(w, r)
		case LedgerServiceGetSettlementProcedure:
			getSettlement.ServeHTTP(w, r)
		case LedgerServiceGetMemberMetricsProcedure:
			getMemberMetrics.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedLedgerServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedLedgerServiceHandler struct{}

func (UnimplementedLedgerServiceHandler) ListRecords(context.Context, *connect.Request[api.ListRecordsRequest]) (*connect.Response[api.ListRecordsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("messledger.v1.LedgerService.ListRecords is not implemented"))
}

func (UnimplementedLedgerServiceHandler) CreateRecord(context.Context, *connect.Request[api.CreateRecordRequest]) (*connect.Response[api.CreateRecordResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("messledger.v1.LedgerService.CreateRecord is not implemented"))
}

func (UnimplementedLedgerServiceHandler) DeleteRecord(context.Context, *connect.Request[api.DeleteRecordRequest]) (*connect.Response[api.DeleteRecordResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("messledger.v1.LedgerService.DeleteRecord is not implemented"))
}

func (UnimplementedLedgerServiceHandler) GetSettlement(context.Context, *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("messledger.v1.LedgerService.GetSettlement is not implemented"))
}

func (UnimplementedLedgerServiceHandler) GetMemberMetrics(context.Context, *connect.Request[api.GetMemberMetricsRequest]) (*connect.Response[api.GetMemberMetricsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("messledger.v1.LedgerService.GetMemberMetrics is not implemented"))
}
