package usecase

import (
	"context"
	"strings"

	"github.com/soychecker/backend/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// SoyService looks up products by barcode and drives the lookup view
type SoyService struct {
	lookup   domain.ProductLookup
	logger   *zap.Logger
	inflight singleflight.Group
}

// NewSoyService creates a new soy service with dependencies
func NewSoyService(lookup domain.ProductLookup, logger *zap.Logger) *SoyService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SoyService{
		lookup: lookup,
		logger: logger.Named("soy"),
	}
}

// Lookup fetches the product record for a barcode.
// Every unsuccessful lookup is reported as ErrProductNotFound.
// Concurrent lookups of the same barcode share a single upstream request.
// The shared request outlives any one caller; each caller stops waiting
// when its own ctx is done.
func (s *SoyService) Lookup(ctx context.Context, barcode string) (*domain.Record, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, domain.ErrInvalidRequest
	}

	shared := context.WithoutCancel(ctx)
	ch := s.inflight.DoChan(barcode, func() (interface{}, error) {
		return s.lookup.GetProduct(shared, barcode)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		s.logger.Debug("lookup abandoned",
			zap.String("barcode", barcode),
			zap.Error(ctx.Err()))
		return nil, domain.ErrProductNotFound
	}

	if res.Err != nil {
		s.logger.Debug("lookup failed",
			zap.String("barcode", barcode),
			zap.Bool("shared", res.Shared),
			zap.Error(res.Err))
		return nil, domain.ErrProductNotFound
	}

	record, ok := res.Val.(*domain.Record)
	if !ok || record == nil || record.Product == nil {
		return nil, domain.ErrProductNotFound
	}

	return record, nil
}

// Submit applies a form submission to the current view.
// A blank barcode leaves the view untouched and reports false.
func (s *SoyService) Submit(ctx context.Context, current domain.View, input string) (domain.View, bool) {
	barcode := strings.TrimSpace(input)
	if barcode == "" {
		return current, false
	}

	record, err := s.Lookup(ctx, barcode)
	if err != nil {
		return domain.NotFoundView(input), true
	}

	view := domain.ResultView(input, record)
	s.logger.Info("product classified",
		zap.String("barcode", barcode),
		zap.String("outcome", string(view.Outcome())))

	return view, true
}

// Check looks up and classifies a single barcode from the empty state
func (s *SoyService) Check(ctx context.Context, barcode string) (domain.View, error) {
	view, submitted := s.Submit(ctx, domain.EmptyView(), strings.TrimSpace(barcode))
	if !submitted {
		return view, domain.ErrInvalidRequest
	}
	return view, nil
}

// Clear resets any view to the empty state
func (s *SoyService) Clear(current domain.View) domain.View {
	return current.Clear()
}
