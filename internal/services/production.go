// Package services provides the data access layer and statistics for the production dashboard.
package services

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/pandeptwidyaop/cnc-monitor/internal/database"
	"github.com/pandeptwidyaop/cnc-monitor/internal/metrics"
	"github.com/pandeptwidyaop/cnc-monitor/internal/models"
)

const statsCacheKey = "stats"

// ErrFetchFailed indicates a read could not be answered by the database and no fallback applied.
var ErrFetchFailed = errors.New("fetch failed")

// ProductionOptions configures a ProductionService.
type ProductionOptions struct {
	// Strict surfaces database failures to callers instead of answering from the fallback store.
	Strict        bool
	StatsCacheTTL time.Duration
	Metrics       *metrics.Metrics
}

// ProductionService answers dashboard reads from the primary store, switching to the
// fallback store when the database is unreachable.
//
// Fallback mode is a write-once flag: once enabled it stays on for the process lifetime.
// Outside fallback mode and without Strict, a failed read is answered from the fallback
// store for that single call only.
type ProductionService struct {
	primary  Store
	fallback Store
	strict   bool
	metrics  *metrics.Metrics
	cache    *cache.Cache

	fallbackMode atomic.Bool
}

// NewProductionService creates a service over primary and fallback. primary may be nil,
// in which case the service starts in fallback mode.
func NewProductionService(primary, fallback Store, opts ProductionOptions) *ProductionService {
	s := &ProductionService{
		primary:  primary,
		fallback: fallback,
		strict:   opts.Strict,
		metrics:  opts.Metrics,
	}
	if opts.StatsCacheTTL > 0 {
		s.cache = cache.New(opts.StatsCacheTTL, 2*opts.StatsCacheTTL)
	}
	if primary == nil {
		s.EnableFallbackMode(errors.New("no primary store configured"))
	}
	return s
}

// EnableFallbackMode switches the service to the fallback store for the rest of the process
// lifetime. Only the first call has an effect.
func (s *ProductionService) EnableFallbackMode(reason error) {
	if !s.fallbackMode.CompareAndSwap(false, true) {
		return
	}
	zap.S().Warnw("Switching to fallback mode, serving sample data", "reason", reason)
	s.metrics.SetFallbackMode(true)
}

// FallbackMode reports whether the service serves the fallback store for every read.
func (s *ProductionService) FallbackMode() bool {
	return s.fallbackMode.Load()
}

// ListMachines returns all machines ordered by name.
func (s *ProductionService) ListMachines(ctx context.Context) ([]models.Machine, error) {
	return read(ctx, s, "list_machines", func(st Store) ([]models.Machine, error) {
		return st.ListMachines(ctx)
	})
}

// ListPrograms returns programs matching filter, newest first.
func (s *ProductionService) ListPrograms(ctx context.Context, filter models.ProgramFilter) ([]models.ProductionProgram, error) {
	return read(ctx, s, "list_programs", func(st Store) ([]models.ProductionProgram, error) {
		return st.ListPrograms(ctx, filter)
	})
}

// ListProgramsForExport returns programs matching filter with their machine names, newest first.
func (s *ProductionService) ListProgramsForExport(ctx context.Context, filter models.ProgramFilter) ([]models.ExportRow, error) {
	return read(ctx, s, "list_programs_export", func(st Store) ([]models.ExportRow, error) {
		return st.ListProgramsForExport(ctx, filter)
	})
}

// snapshot is the input of one statistics computation, always read from a single store.
type snapshot struct {
	programs []models.ProductionProgram
	machines []models.Machine
}

// Stats computes the dashboard summary over all machines and programs. Both inputs come
// from the same store; results computed from the fallback store are not cached.
func (s *ProductionService) Stats(ctx context.Context) (models.Stats, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(statsCacheKey); ok {
			return cached.(models.Stats), nil
		}
	}

	snap, fromFallback, err := readFrom(ctx, s, "stats", func(st Store) (snapshot, error) {
		programs, err := st.ListPrograms(ctx, models.ProgramFilter{})
		if err != nil {
			return snapshot{}, err
		}
		machines, err := st.ListMachines(ctx)
		if err != nil {
			return snapshot{}, err
		}
		return snapshot{programs: programs, machines: machines}, nil
	})
	if err != nil {
		return models.Stats{}, err
	}

	stats := ComputeStats(snap.programs, snap.machines)
	if s.cache != nil && !fromFallback {
		s.cache.SetDefault(statsCacheKey, stats)
	}
	return stats, nil
}

func read[T any](ctx context.Context, s *ProductionService, operation string, fn func(Store) (T, error)) (T, error) {
	result, _, err := readFrom(ctx, s, operation, fn)
	return result, err
}

// readFrom runs fn against the primary store, or the fallback store when the primary is
// unavailable, and reports whether the fallback answered.
func readFrom[T any](ctx context.Context, s *ProductionService, operation string, fn func(Store) (T, error)) (T, bool, error) {
	if s.FallbackMode() {
		result, err := fn(s.fallback)
		return result, true, err
	}

	result, err := fn(s.primary)
	if err == nil {
		return result, false, nil
	}

	if s.strict || s.fallback == nil || ctx.Err() != nil {
		zap.S().Errorw("Store read failed",
			"operation", operation,
			"error", err,
			"connection", database.IsConnectionError(err),
		)
		var zero T
		return zero, false, errors.Join(ErrFetchFailed, err)
	}

	zap.S().Warnw("Store read failed, answering from fallback store",
		"operation", operation,
		"error", err,
		"connection", database.IsConnectionError(err),
	)
	s.metrics.RecordFallback(operation)
	result, err = fn(s.fallback)
	return result, true, err
}
