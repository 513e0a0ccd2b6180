package dashboard

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/dashfetch/internal/domain"
	"github.com/hamed0406/dashfetch/internal/fetch"
)

// Aggregator runs one fetch per requested resource and folds the results
// into a single AggregateResult. It either awaits resources one at a time
// in the order given, or starts them all at once.
type Aggregator struct {
	Logger  *zap.Logger
	Fetcher fetch.Fetcher
}

func New(logger *zap.Logger, fetcher fetch.Fetcher) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		Logger:  logger,
		Fetcher: fetcher,
	}
}

// Run dispatches to the strategy named by mode.
func (a *Aggregator) Run(ctx context.Context, mode domain.Mode, reqs []domain.ResourceRequest) (domain.AggregateResult, error) {
	switch mode {
	case domain.ModeSequential:
		return a.RunSequential(ctx, reqs)
	case domain.ModeParallel:
		return a.RunParallel(ctx, reqs)
	default:
		return domain.AggregateResult{}, fmt.Errorf("unknown mode %q", mode)
	}
}

// RunSequential fetches resources strictly in the order given, waiting for
// each before starting the next. The first failure stops the run: requests
// after the failing one are never issued, and results gathered before it
// are dropped.
func (a *Aggregator) RunSequential(ctx context.Context, reqs []domain.ResourceRequest) (domain.AggregateResult, error) {
	if err := validateRequests(reqs); err != nil {
		return domain.AggregateResult{}, err
	}

	start := time.Now()
	out := domain.AggregateResult{
		Mode:    domain.ModeSequential,
		Results: make(map[domain.ResourceName]domain.ResourceResult, len(reqs)),
	}

	for _, req := range reqs {
		res, err := a.Fetcher.Fetch(ctx, req)
		if err != nil {
			a.Logger.Warn("resource_failed",
				zap.String("mode", string(domain.ModeSequential)),
				zap.String("resource", string(req.Name)),
				zap.Error(err),
			)
			return domain.AggregateResult{}, err
		}
		a.Logger.Debug("resource_fetched",
			zap.String("mode", string(domain.ModeSequential)),
			zap.String("resource", string(res.Name)),
			zap.Float64("elapsed_ms", res.ElapsedMS),
		)
		out.Results[res.Name] = res
	}

	out.ElapsedMS = time.Since(start).Seconds() * 1000
	a.Logger.Debug("aggregate_done",
		zap.String("mode", string(out.Mode)),
		zap.Int("resources", len(out.Results)),
		zap.Float64("total_ms", out.ElapsedMS),
	)
	return out, nil
}

type outcome struct {
	res domain.ResourceResult
	err error
}

// RunParallel starts every fetch at once and collects outcomes as they
// arrive. The first failure wins: it is returned immediately without
// waiting for the fetches still in flight. Those are left to finish on
// their own, never cancelled, and whatever they produce is discarded
// without being recorded or logged as a success.
func (a *Aggregator) RunParallel(ctx context.Context, reqs []domain.ResourceRequest) (domain.AggregateResult, error) {
	if err := validateRequests(reqs); err != nil {
		return domain.AggregateResult{}, err
	}

	start := time.Now()

	// Buffered to len(reqs) so abandoned fetches can always deliver and
	// exit; nothing receives from the channel after an early return.
	outcomes := make(chan outcome, len(reqs))
	for _, req := range reqs {
		r := req // avoid loop var capture
		go func() {
			res, err := a.Fetcher.Fetch(ctx, r)
			outcomes <- outcome{res: res, err: err}
		}()
	}

	out := domain.AggregateResult{
		Mode:    domain.ModeParallel,
		Results: make(map[domain.ResourceName]domain.ResourceResult, len(reqs)),
	}

	for range reqs {
		oc := <-outcomes
		if oc.err != nil {
			a.Logger.Warn("resource_failed",
				zap.String("mode", string(domain.ModeParallel)),
				zap.Error(oc.err),
			)
			return domain.AggregateResult{}, oc.err
		}
		a.Logger.Debug("resource_fetched",
			zap.String("mode", string(domain.ModeParallel)),
			zap.String("resource", string(oc.res.Name)),
			zap.Float64("elapsed_ms", oc.res.ElapsedMS),
		)
		out.Results[oc.res.Name] = oc.res
	}

	out.ElapsedMS = time.Since(start).Seconds() * 1000
	a.Logger.Debug("aggregate_done",
		zap.String("mode", string(out.Mode)),
		zap.Int("resources", len(out.Results)),
		zap.Float64("total_ms", out.ElapsedMS),
	)
	return out, nil
}

func validateRequests(reqs []domain.ResourceRequest) error {
	if len(reqs) == 0 {
		return fmt.Errorf("no resources requested")
	}
	seen := make(map[domain.ResourceName]bool, len(reqs))
	for _, req := range reqs {
		if req.Name == "" {
			return fmt.Errorf("resource with empty name")
		}
		if req.Path == "" {
			return fmt.Errorf("resource %q has no path", req.Name)
		}
		if seen[req.Name] {
			return fmt.Errorf("duplicate resource %q", req.Name)
		}
		seen[req.Name] = true
	}
	return nil
}
