package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"subtrans/internal/language"
	"subtrans/internal/logging"
	"subtrans/internal/services"
)

// Mode selects the request strategy for a multi-language run.
type Mode string

const (
	// ModeSequential issues one provider request per language with pacing
	// between requests. Failures are isolated per language.
	ModeSequential Mode = "batch"
	// ModeSimultaneous issues a single combined request for all languages.
	// A failed request discards every language in the call.
	ModeSimultaneous Mode = "simultaneous"
)

// ParseMode resolves a mode flag or config value.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "batch", "sequential":
		return ModeSequential, nil
	case "simultaneous":
		return ModeSimultaneous, nil
	default:
		return "", services.Wrap(services.ErrValidation, "translate", "mode", fmt.Sprintf("unsupported mode %q (batch or simultaneous)", value), nil)
	}
}

// DefaultRequestInterval is the minimum spacing between provider requests.
const DefaultRequestInterval = time.Second

// Result carries one language's translation outcome out of the orchestrator.
type Result struct {
	Language language.Language
	Texts    []string
	Err      error
	Elapsed  time.Duration
}

// Orchestrator issues provider requests per the selected mode. It owns the
// last-request timestamp used for pacing; construct one per run rather than
// sharing globally.
type Orchestrator struct {
	provider Provider
	logger   *slog.Logger
	interval time.Duration

	lastRequest time.Time
	now         func() time.Time
	sleeper     func(context.Context, time.Duration) error
}

// OrchestratorOption customizes an orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithRequestInterval overrides the minimum spacing between requests.
func WithRequestInterval(interval time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		o.interval = interval
	}
}

// WithSleeper overrides how pacing waits are performed (useful for tests).
func WithSleeper(sleeper func(context.Context, time.Duration) error) OrchestratorOption {
	return func(o *Orchestrator) {
		if sleeper != nil {
			o.sleeper = sleeper
		}
	}
}

// WithClock overrides the time source (useful for tests).
func WithClock(now func() time.Time) OrchestratorOption {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// NewOrchestrator builds an orchestrator around a provider.
func NewOrchestrator(provider Provider, logger *slog.Logger, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		provider: provider,
		logger:   logging.NewComponentLogger(logger, "orchestrator"),
		interval: DefaultRequestInterval,
		now:      time.Now,
		sleeper:  sleepContext,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run translates texts into every target using the given mode and returns one
// result per target, in target order.
func (o *Orchestrator) Run(ctx context.Context, mode Mode, texts []string, targets []language.Language) []Result {
	if mode == ModeSimultaneous {
		return o.runSimultaneous(ctx, texts, targets)
	}
	return o.runSequential(ctx, texts, targets)
}

func (o *Orchestrator) runSequential(ctx context.Context, texts []string, targets []language.Language) []Result {
	results := make([]Result, 0, len(targets))
	for _, target := range targets {
		result := Result{Language: target}
		started := o.now()

		if err := o.pace(ctx); err != nil {
			result.Err = err
			results = append(results, result)
			continue
		}

		o.logger.Info("translating",
			logging.Args(
				logging.String(logging.FieldLanguage, target.Code),
				logging.String(logging.FieldProvider, o.provider.Name()),
			)...)

		translated, err := o.provider.Translate(services.WithLanguage(ctx, target.Code), texts, target)
		if err == nil {
			err = validateCount(len(texts), len(translated))
		}
		if err != nil {
			o.logger.Warn("translation failed",
				logging.Args(
					logging.String(logging.FieldLanguage, target.Code),
					logging.Error(err),
				)...)
			result.Err = err
		} else {
			result.Texts = translated
		}
		result.Elapsed = o.now().Sub(started)
		results = append(results, result)
	}
	return results
}

func (o *Orchestrator) runSimultaneous(ctx context.Context, texts []string, targets []language.Language) []Result {
	results := make([]Result, len(targets))
	for i, target := range targets {
		results[i] = Result{Language: target}
	}
	started := o.now()

	if err := o.pace(ctx); err != nil {
		return failAll(results, err, o.now().Sub(started))
	}

	o.logger.Info("translating all languages in one request",
		logging.Args(
			logging.Int("languages", len(targets)),
			logging.String(logging.FieldProvider, o.provider.Name()),
		)...)

	translations, err := o.provider.TranslateAll(ctx, texts, targets)
	if err != nil {
		o.logger.Warn("combined translation failed", logging.Args(logging.Error(err))...)
		return failAll(results, err, o.now().Sub(started))
	}

	elapsed := o.now().Sub(started)
	for i, target := range targets {
		translated, ok := translations[target.Code]
		if !ok {
			results[i].Err = services.Wrap(services.ErrCountMismatch, "translate", "validate",
				fmt.Sprintf("no translations returned for %s", target.Code), nil)
		} else if err := validateCount(len(texts), len(translated)); err != nil {
			results[i].Err = err
		} else {
			results[i].Texts = translated
		}
		results[i].Elapsed = elapsed
	}
	return results
}

func failAll(results []Result, err error, elapsed time.Duration) []Result {
	for i := range results {
		results[i].Err = err
		results[i].Elapsed = elapsed
	}
	return results
}

// validateCount requires the translated entry count to match the input
// exactly. Extra entries are as much an error as missing ones; silently
// truncating would misalign every timestamp below the divergence.
func validateCount(expected, got int) error {
	if expected == got {
		return nil
	}
	return services.Wrap(services.ErrCountMismatch, "translate", "validate",
		fmt.Sprintf("expected %d translations, got %d", expected, got), nil)
}

// pace waits so that successive provider requests are at least the configured
// interval apart, then stamps the request time.
func (o *Orchestrator) pace(ctx context.Context) error {
	if o.interval > 0 && !o.lastRequest.IsZero() {
		if wait := o.interval - o.now().Sub(o.lastRequest); wait > 0 {
			o.logger.Debug("pacing before next request", logging.Args(logging.Duration("wait", wait))...)
			if err := o.sleeper(ctx, wait); err != nil {
				return err
			}
		}
	}
	o.lastRequest = o.now()
	return nil
}

func sleepContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	if ctx == nil {
		return errors.New("pace: nil context")
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
