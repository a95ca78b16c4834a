package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	domain "distfit/domain/fit"
	"distfit/internal"
	"distfit/internal/analysis/fit"
	"distfit/internal/config"
	"distfit/internal/errors"
	"distfit/internal/generator"
	"distfit/ports"
)

// EvaluationService is the single entry point the CLI, the HTML front-end and
// the JSON API use to evaluate and generate samples.
type EvaluationService struct {
	store         ports.SampleStore
	logger        *internal.Logger
	defaultSeed   *uint64
	batchLimit    int
	maxSampleSize int
}

// BatchResult is the outcome of one sample in a batch, in input order
type BatchResult struct {
	Index      int
	Evaluation *domain.Evaluation
	Err        error
}

// NewEvaluationService wires the service to a sample store and configuration
func NewEvaluationService(store ports.SampleStore, cfg *config.Config, logger *internal.Logger) *EvaluationService {
	if logger == nil {
		logger = internal.NopLogger()
	}
	svc := &EvaluationService{
		store:         store,
		logger:        logger.WithPrefix("evaluation"),
		batchLimit:    1,
		maxSampleSize: config.DefaultMaxSampleSize,
	}
	if cfg != nil {
		svc.defaultSeed = cfg.Generator.Seed
		if cfg.Generator.MaxSampleSize > 0 {
			svc.maxSampleSize = cfg.Generator.MaxSampleSize
		}
		if cfg.Batch.MaxConcurrency > 0 {
			svc.batchLimit = cfg.Batch.MaxConcurrency
		}
	}
	return svc
}

// EvaluateSample runs the full evaluation on an in-memory sample
func (s *EvaluationService) EvaluateSample(ctx context.Context, sample domain.Sample) (*domain.Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	eval, err := fit.Evaluate(sample)
	if err != nil {
		s.logger.Debug("evaluation rejected: %v", err)
		return nil, err
	}

	s.logger.Info("evaluation %s [%.12s]: n=%d bins=%d verdict=%s (%.2fms)",
		eval.ID, eval.Fingerprint, eval.SampleSize, eval.Histogram.Bins(), eval.Verdict.Decision,
		float64(time.Since(start).Microseconds())/1000)
	for _, outcome := range eval.Verdict.Outcomes() {
		if outcome.Err != nil {
			s.logger.Debug("evaluation %s: %s not evaluable: %v", eval.ID, outcome.Family, outcome.Err)
		}
	}
	return eval, nil
}

// Evaluate returns the verdict for sample together with its human-readable report
func (s *EvaluationService) Evaluate(ctx context.Context, sample domain.Sample) (domain.Verdict, string, error) {
	eval, err := s.EvaluateSample(ctx, sample)
	if err != nil {
		return domain.Verdict{}, "", err
	}
	return eval.Verdict, fit.Report(eval), nil
}

// AnalyzeFile loads the sample stored at path and evaluates it
func (s *EvaluationService) AnalyzeFile(ctx context.Context, path string) (*domain.Evaluation, error) {
	sample, err := s.store.ReadSample(ctx, path)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("loaded %d values from %s", len(sample), path)

	eval, err := s.EvaluateSample(ctx, sample)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot evaluate %s", path)
	}
	return eval, nil
}

// EvaluateBatch evaluates independent samples concurrently, bounded by the
// configured concurrency. A sample that cannot be evaluated records its error
// in its own result; only cancellation aborts the batch.
func (s *EvaluationService) EvaluateBatch(ctx context.Context, samples []domain.Sample) ([]BatchResult, error) {
	results := make([]BatchResult, len(samples))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchLimit)
	for i, sample := range samples {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			eval, err := fit.Evaluate(sample)
			results[i] = BatchResult{Index: i, Evaluation: eval, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("batch of %d samples evaluated (limit %d)", len(samples), s.batchLimit)
	return results, nil
}

// GenerateSample draws count values from family. A nil seed falls back to the
// configured seed; when neither is set the draw is not reproducible. Counts
// above the configured maximum are rejected before anything is allocated.
func (s *EvaluationService) GenerateSample(ctx context.Context, family domain.Family, count int, seed *uint64) (domain.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if count > s.maxSampleSize {
		return nil, errors.InvalidSize(fmt.Sprintf("sample size %d exceeds the maximum of %d", count, s.maxSampleSize))
	}
	if seed == nil {
		seed = s.defaultSeed
	}

	sample, err := generator.NewFromSeed(seed).Generate(family, count)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("generated %d %s values", count, family)
	return sample, nil
}

// GenerateFile generates a sample and writes it to path. Nothing is written
// when the family or size is invalid.
func (s *EvaluationService) GenerateFile(ctx context.Context, family domain.Family, count int, seed *uint64, path string) error {
	sample, err := s.GenerateSample(ctx, family, count, seed)
	if err != nil {
		return err
	}
	if err := s.store.WriteSample(ctx, path, sample); err != nil {
		return err
	}
	s.logger.Info("wrote %d %s values to %s", count, family, path)
	return nil
}
