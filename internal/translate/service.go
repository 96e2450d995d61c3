package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"subtrans/internal/language"
	"subtrans/internal/logging"
	"subtrans/internal/services"
	"subtrans/internal/subtitle"
)

// Request describes one translation run.
type Request struct {
	InputPath string
	Languages []language.Language
	Mode      Mode
	OutputDir string // empty writes alongside the input file
}

// ConvertRequest describes an identity SUB to SRT conversion, no provider
// involved.
type ConvertRequest struct {
	InputPath string
	OutputDir string
}

// Service wires parse, orchestrate, and write into a single run.
type Service struct {
	provider           Provider
	logger             *slog.Logger
	tokenWarnThreshold int
	orchestratorOpts   []OrchestratorOption
}

// ServiceOption customizes the service.
type ServiceOption func(*Service)

// WithTokenWarnThreshold overrides the token warning threshold. Zero or
// negative disables the warning.
func WithTokenWarnThreshold(threshold int) ServiceOption {
	return func(s *Service) {
		s.tokenWarnThreshold = threshold
	}
}

// WithOrchestratorOptions forwards options to the per-run orchestrator.
func WithOrchestratorOptions(opts ...OrchestratorOption) ServiceOption {
	return func(s *Service) {
		s.orchestratorOpts = append(s.orchestratorOpts, opts...)
	}
}

// NewService builds a run service around a provider. The provider may be nil
// when the service is only used for identity conversion.
func NewService(provider Provider, logger *slog.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		provider:           provider,
		logger:             logging.NewComponentLogger(logger, "translate"),
		tokenWarnThreshold: DefaultTokenWarnThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes a full translation run. The returned error is nil as long as
// at least one language produced an output file; per-language failures are
// reported through the summary.
func (s *Service) Run(ctx context.Context, req Request) (Summary, error) {
	summary := Summary{InputPath: req.InputPath, Mode: req.Mode}

	if s.provider == nil {
		return summary, services.Wrap(services.ErrConfiguration, "translate", "run", "no provider configured", nil)
	}
	if len(req.Languages) == 0 {
		return summary, services.Wrap(services.ErrValidation, "translate", "run", "no target languages", nil)
	}

	runID := uuid.NewString()
	summary.RunID = runID
	summary.Provider = s.provider.Name()
	ctx = services.WithRunID(services.WithProvider(ctx, s.provider.Name()), runID)
	logger := s.logger.With(
		logging.String(logging.FieldRunID, runID),
		logging.String(logging.FieldProvider, s.provider.Name()),
		logging.String(logging.FieldMode, string(req.Mode)),
	)

	captions, err := subtitle.ParseFile(req.InputPath)
	if err != nil {
		return summary, err
	}
	summary.Captions = len(captions)
	logger.Info("parsed subtitle source",
		logging.Args(
			logging.String(logging.FieldInput, req.InputPath),
			logging.Int("captions", len(captions)),
		)...)

	texts := subtitle.Texts(captions)
	summary.Tokens = EstimateRun(texts, len(req.Languages))
	if summary.Tokens.Exceeds(s.tokenWarnThreshold) {
		summary.TokenWarning = true
		logger.Warn("estimated token usage is high",
			logging.Args(
				logging.Int("estimated_tokens", summary.Tokens.Total),
				logging.Int("threshold", s.tokenWarnThreshold),
			)...)
	}

	writer, err := subtitle.NewWriter(outputDir(req.InputPath, req.OutputDir))
	if err != nil {
		return summary, err
	}
	stem := subtitle.Stem(req.InputPath)

	orch := NewOrchestrator(s.provider, logger, s.orchestratorOpts...)
	results := orch.Run(ctx, req.Mode, texts, req.Languages)

	for _, result := range results {
		outcome := Outcome{Language: result.Language, Err: result.Err, Elapsed: result.Elapsed}
		if result.Err == nil {
			path := writer.OutputPath(stem, result.Language.Code)
			started := time.Now()
			if err := writer.WriteSRT(path, subtitle.WithTexts(captions, result.Texts)); err != nil {
				outcome.Err = err
			} else {
				outcome.OutputPath = path
				logger.Info("wrote translated subtitles",
					logging.Args(
						logging.String(logging.FieldLanguage, result.Language.Code),
						logging.String(logging.FieldOutput, path),
					)...)
			}
			outcome.Elapsed += time.Since(started)
		}
		summary.Outcomes = append(summary.Outcomes, outcome)
	}

	if summary.SuccessCount() == 0 {
		return summary, errors.Join(collectErrors(summary.Outcomes)...)
	}
	return summary, nil
}

// Convert performs an identity SUB to SRT conversion, writing
// "<stem>_converted.srt". No credentials or network access needed.
func (s *Service) Convert(ctx context.Context, req ConvertRequest) (string, error) {
	_ = ctx

	captions, err := subtitle.ParseFile(req.InputPath)
	if err != nil {
		return "", err
	}

	writer, err := subtitle.NewWriter(outputDir(req.InputPath, req.OutputDir))
	if err != nil {
		return "", err
	}
	path := writer.OutputPath(subtitle.Stem(req.InputPath), "converted")
	if err := writer.WriteSRT(path, captions); err != nil {
		return "", err
	}

	s.logger.Info("converted subtitles",
		logging.Args(
			logging.String(logging.FieldInput, req.InputPath),
			logging.String(logging.FieldOutput, path),
			logging.Int("captions", len(captions)),
		)...)
	return path, nil
}

func outputDir(inputPath, override string) string {
	if override != "" {
		return override
	}
	dir := filepath.Dir(inputPath)
	if dir == "" {
		return "."
	}
	return dir
}

func collectErrors(outcomes []Outcome) []error {
	errs := make([]error, 0, len(outcomes))
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", outcome.Language.Code, outcome.Err))
		}
	}
	if len(errs) == 0 {
		errs = append(errs, errors.New("no languages translated"))
	}
	return errs
}
