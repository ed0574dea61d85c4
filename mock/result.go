package mock

import (
	"context"

	"github.com/fwojciec/leadscan"
)

var _ leadscan.ResultService = (*ResultService)(nil)

// ResultService is a mock implementation of leadscan.ResultService.
type ResultService struct {
	CreateResultFn   func(ctx context.Context, result *leadscan.Result) error
	FindResultByIDFn func(ctx context.Context, id string) (*leadscan.Result, error)
	FindResultsFn    func(ctx context.Context, filter leadscan.ResultFilter) ([]*leadscan.Result, error)
	DeleteResultFn   func(ctx context.Context, id string) error
}

func (s *ResultService) CreateResult(ctx context.Context, result *leadscan.Result) error {
	return s.CreateResultFn(ctx, result)
}

func (s *ResultService) FindResultByID(ctx context.Context, id string) (*leadscan.Result, error) {
	return s.FindResultByIDFn(ctx, id)
}

func (s *ResultService) FindResults(ctx context.Context, filter leadscan.ResultFilter) ([]*leadscan.Result, error) {
	return s.FindResultsFn(ctx, filter)
}

func (s *ResultService) DeleteResult(ctx context.Context, id string) error {
	return s.DeleteResultFn(ctx, id)
}
