package contacts

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tartampluch/go-panchanga/internal/config"
	"github.com/tartampluch/go-panchanga/internal/engine"
)

// ChartComputer is the part of engine.Engine the batch needs.
type ChartComputer interface {
	ComputeChart(ctx context.Context, req engine.ChartRequest) (*engine.BirthChartRecord, error)
}

// Failure records a profile whose chart could not be computed.
type Failure struct {
	Profile Profile
	Err     error
}

// Batch computes charts for many profiles with bounded parallelism.
type Batch struct {
	Engine   ChartComputer
	Parallel int
}

// Run returns the records in profile order. Individual failures are collected
// rather than aborting the batch; only cancellation stops it.
func (b Batch) Run(ctx context.Context, profiles []Profile) ([]*engine.BirthChartRecord, []Failure, error) {
	start := time.Now()
	limit := b.Parallel
	if limit <= 0 {
		limit = config.DefaultBatchParallel
	}

	results := make([]*engine.BirthChartRecord, len(profiles))
	errs := make([]error, len(profiles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, p := range profiles {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := b.Engine.ComputeChart(gctx, p.Request())
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				errs[i] = err
				return nil
			}
			results[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var (
		records  []*engine.BirthChartRecord
		failures []Failure
	)
	for i, rec := range results {
		if errs[i] != nil {
			slog.WarnContext(ctx, config.MsgBatchSkip,
				config.LogKeyComponent, config.CompContacts,
				config.LogKeyName, profiles[i].Name,
				config.LogKeyError, errs[i])
			failures = append(failures, Failure{Profile: profiles[i], Err: errs[i]})
			continue
		}
		records = append(records, rec)
	}

	slog.InfoContext(ctx, config.MsgBatchDone,
		config.LogKeyComponent, config.CompContacts,
		config.LogKeyCharts, len(records),
		config.LogKeyFailed, len(failures),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return records, failures, nil
}
