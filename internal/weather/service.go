package weather

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/i474232898/weather-placeholder/internal/observability"
)

// Request describes one sample set. A nil Seed asks for a non-deterministic source.
type Request struct {
	Start Date
	Days  int
	Seed  *int32
}

// ServiceConfig holds generation defaults.
type ServiceConfig struct {
	DefaultDays int
	MaxDays     int    // 0 = unlimited
	Seed        *int32 // seed for today's set; nil = non-deterministic

	Clock clockwork.Clock
}

// Service generates sample sets and keeps recent ones in a Store.
type Service struct {
	store   Store
	cfg     ServiceConfig
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewService creates a new Service. A nil logger or metrics disables that output.
func NewService(store Store, cfg ServiceConfig, logger *slog.Logger, metrics *observability.Metrics) *Service {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if metrics == nil {
		metrics = observability.NewMetricsForTesting()
	}
	return &Service{
		store:   store,
		cfg:     cfg,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
	}
}

// Generate synthesizes and stores a sample set for req.
func (s *Service) Generate(ctx context.Context, req Request) (SampleSet, error) {
	if err := ctx.Err(); err != nil {
		return SampleSet{}, err
	}
	if s.cfg.MaxDays > 0 && req.Days > s.cfg.MaxDays {
		s.metrics.GenerateErrors.Inc()
		return SampleSet{}, fmt.Errorf("%w: day count %d exceeds maximum %d", ErrInvalidInput, req.Days, s.cfg.MaxDays)
	}
	if req.Start.IsZero() {
		s.metrics.GenerateErrors.Inc()
		return SampleSet{}, fmt.Errorf("%w: start date is required", ErrInvalidInput)
	}

	var src Source
	mode := "random"
	if req.Seed != nil {
		src = NewSeededSource(*req.Seed)
		mode = "seeded"
	} else {
		src = NewRandomSource()
	}

	began := s.clock.Now()
	days, err := Generate(req.Start, req.Days, src)
	if err != nil {
		s.metrics.GenerateErrors.Inc()
		return SampleSet{}, err
	}
	s.metrics.GenerateDuration.Observe(s.clock.Since(began).Seconds())

	set := SampleSet{
		ID:          uuid.NewString(),
		Start:       req.Start,
		Seed:        req.Seed,
		GeneratedAt: s.clock.Now().UTC(),
		Days:        days,
	}
	s.store.Save(set)

	s.metrics.SetsGenerated.WithLabelValues(mode).Inc()
	s.metrics.DaysGenerated.Add(float64(len(days)))
	s.metrics.StoredSets.Set(float64(len(s.store.List())))

	s.logger.Debug("sample set generated",
		"id", set.ID,
		"start", set.Start.String(),
		"days", len(days),
		"mode", mode,
	)
	return set, nil
}

// Today returns the newest stored set starting today, generating one with the
// configured defaults if there is none.
func (s *Service) Today(ctx context.Context) (SampleSet, error) {
	set, err := s.store.LatestFor(s.today())
	if err == nil {
		return set, nil
	}
	return s.generateToday(ctx)
}

// Refresh regenerates today's set unconditionally.
func (s *Service) Refresh(ctx context.Context) error {
	set, err := s.generateToday(ctx)
	if err != nil {
		s.metrics.RefreshRuns.WithLabelValues("error").Inc()
		return fmt.Errorf("refresh today's samples: %w", err)
	}
	s.metrics.RefreshRuns.WithLabelValues("success").Inc()
	s.logger.Info("refreshed today's samples", "id", set.ID, "start", set.Start.String())
	return nil
}

func (s *Service) generateToday(ctx context.Context) (SampleSet, error) {
	return s.Generate(ctx, Request{
		Start: s.today(),
		Days:  s.cfg.DefaultDays,
		Seed:  s.cfg.Seed,
	})
}

func (s *Service) today() Date {
	return DateOf(s.clock.Now().UTC())
}

// Get delegates to the underlying store.
func (s *Service) Get(id string) (SampleSet, error) {
	return s.store.Get(id)
}

// Reference returns the regression sequence as an unstored set with a fixed ID.
func (s *Service) Reference() SampleSet {
	seed := ReferenceSeed
	return SampleSet{
		ID:          "reference",
		Start:       ReferenceStart,
		Seed:        &seed,
		GeneratedAt: ReferenceStart.Time(),
		Days:        Reference(),
	}
}

