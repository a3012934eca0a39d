package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/mmynk/salestax/internal/auth"
	"github.com/mmynk/salestax/internal/calculator"
	"github.com/mmynk/salestax/internal/metrics"
	"github.com/mmynk/salestax/internal/middleware"
	"github.com/mmynk/salestax/internal/models"
	"github.com/mmynk/salestax/internal/storage"
)

const (
	// PricingServiceName is the fully-qualified name of the pricing service.
	PricingServiceName = "salestax.v1.PricingService"

	PriceBillProcedure = "/" + PricingServiceName + "/PriceBill"
	GetRatesProcedure  = "/" + PricingServiceName + "/GetRates"
)

// PricingService prices shopping bills against stored rate tables.
type PricingService struct {
	store          storage.RateStore
	defaultVersion string
	metrics        *metrics.Metrics
}

// NewPricingService creates a PricingService. Requests that do not name a
// rate table use defaultVersion. m may be nil.
func NewPricingService(store storage.RateStore, defaultVersion string, m *metrics.Metrics) *PricingService {
	if defaultVersion == "" {
		defaultVersion = storage.StandardVersion
	}
	return &PricingService{store: store, defaultVersion: defaultVersion, metrics: m}
}

func (s *PricingService) loadRates(ctx context.Context, version string) (*models.RateTable, error) {
	if version == "" {
		version = s.defaultVersion
	}
	table, err := s.store.GetRates(ctx, version)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, connect.NewError(connect.CodeNotFound, err)
	}
	if err != nil {
		slog.Error("Failed to load rate table", "version", version, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return table, nil
}

// PriceBill validates the submitted items and returns the priced receipt.
func (s *PricingService) PriceBill(ctx context.Context, req *connect.Request[models.PriceBillRequest]) (*connect.Response[models.PriceBillResponse], error) {
	table, err := s.loadRates(ctx, req.Msg.RatesVersion)
	if err != nil {
		return nil, err
	}

	bill, err := calculator.BillFromRaw(req.Msg.Items, table.Rates)
	if err != nil {
		s.metrics.ObserveValidationError(err)
		slog.Debug("PriceBill rejected", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	s.metrics.ObserveBill(bill)

	items := bill.Items()
	lines := make([]models.PricedLine, len(items))
	for i, item := range items {
		lines[i] = models.NewPricedLine(item)
		slog.Debug("Priced item",
			"index", i+1,
			"name", item.Name(),
			"count", item.Count(),
			"unit_tax", lines[i].UnitTax,
			"total", lines[i].InclTaxTotal,
		)
	}

	resp := &models.PriceBillResponse{
		ReceiptID:    uuid.New().String(),
		RatesVersion: table.Version,
		Lines:        lines,
		TaxSum:       bill.TaxSum().StringFixed(2),
		GrandTotal:   bill.GrandTotal().StringFixed(2),
		Text:         bill.String(),
	}
	slog.Info("Bill priced",
		"receipt_id", resp.ReceiptID,
		"terminal_id", middleware.GetTerminalID(ctx),
		"items", len(lines),
		"tax_sum", resp.TaxSum,
		"grand_total", resp.GrandTotal,
	)
	return connect.NewResponse(resp), nil
}

// GetRates returns a stored rate table and the list of available versions.
func (s *PricingService) GetRates(ctx context.Context, req *connect.Request[models.GetRatesRequest]) (*connect.Response[models.GetRatesResponse], error) {
	table, err := s.loadRates(ctx, req.Msg.Version)
	if err != nil {
		return nil, err
	}
	versions, err := s.store.ListVersions(ctx)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("failed to list versions: %w", err))
	}

	rates := make(map[string]string, len(table.Rates))
	for c, r := range table.Rates {
		rates[string(c)] = r.String()
	}
	return connect.NewResponse(&models.GetRatesResponse{
		Version:         table.Version,
		Rates:           rates,
		ImportSurcharge: calculator.ImportSurcharge().String(),
		Versions:        versions,
	}), nil
}

// NewPricingServiceHandler builds an HTTP handler serving both procedures.
// When tokens is non-nil PriceBill requires a terminal token and GetRates
// accepts one. opts are applied after the auth interceptors.
func NewPricingServiceHandler(svc *PricingService, tokens *auth.TokenManager, opts ...connect.HandlerOption) (string, http.Handler) {
	priceOpts := []connect.HandlerOption{connect.WithCodec(jsonCodec{})}
	ratesOpts := []connect.HandlerOption{connect.WithCodec(jsonCodec{})}
	if tokens != nil {
		priceOpts = append(priceOpts, connect.WithInterceptors(middleware.RequireAuth(tokens)))
		ratesOpts = append(ratesOpts, connect.WithInterceptors(middleware.OptionalAuth(tokens)))
	}
	priceOpts = append(priceOpts, opts...)
	ratesOpts = append(ratesOpts, opts...)

	priceBill := connect.NewUnaryHandler(PriceBillProcedure, svc.PriceBill, priceOpts...)
	getRates := connect.NewUnaryHandler(GetRatesProcedure, svc.GetRates, ratesOpts...)

	return "/" + PricingServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case PriceBillProcedure:
			priceBill.ServeHTTP(w, r)
		case GetRatesProcedure:
			getRates.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// PricingServiceClient calls a remote PricingService.
type PricingServiceClient struct {
	priceBill *connect.Client[models.PriceBillRequest, models.PriceBillResponse]
	getRates  *connect.Client[models.GetRatesRequest, models.GetRatesResponse]
}

// NewPricingServiceClient creates a client for the service at baseURL.
func NewPricingServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *PricingServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &PricingServiceClient{
		priceBill: connect.NewClient[models.PriceBillRequest, models.PriceBillResponse](httpClient, baseURL+PriceBillProcedure, opts...),
		getRates:  connect.NewClient[models.GetRatesRequest, models.GetRatesResponse](httpClient, baseURL+GetRatesProcedure, opts...),
	}
}

// PriceBill calls PricingService.PriceBill.
func (c *PricingServiceClient) PriceBill(ctx context.Context, req *connect.Request[models.PriceBillRequest]) (*connect.Response[models.PriceBillResponse], error) {
	return c.priceBill.CallUnary(ctx, req)
}

// GetRates calls PricingService.GetRates.
func (c *PricingServiceClient) GetRates(ctx context.Context, req *connect.Request[models.GetRatesRequest]) (*connect.Response[models.GetRatesResponse], error) {
	return c.getRates.CallUnary(ctx, req)
}
