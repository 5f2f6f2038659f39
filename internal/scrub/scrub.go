package scrub

import (
	"context"
	"fmt"
	"strings"

	"github.com/dshills/phiscrub/internal/ollama"
	"github.com/dshills/phiscrub/internal/redact"
	"go.uber.org/zap"
)

const (
	// DefaultModel is the model sent with every generate request.
	DefaultModel = "phi3:mini"
	// DefaultFamily must appear in an installed model's name for the
	// service to count as ready.
	DefaultFamily = "phi3"
)

// Backend is the subset of the Ollama client the scrubber needs.
type Backend interface {
	Generate(ctx context.Context, req ollama.GenerateRequest) (string, error)
	ListModels(ctx context.Context) ([]ollama.Model, error)
}

// Result is the outcome of one successful scrub.
type Result struct {
	Model    string          `json:"model"`
	Redacted string          `json:"redacted"`
	Analysis redact.Analysis `json:"analysis"`
	LinesIn  int             `json:"linesIn"`
	LinesOut int             `json:"linesOut"`
}

// LineDrift reports whether the model changed the number of lines.
func (r Result) LineDrift() bool {
	return r.LinesIn != r.LinesOut
}

// Availability is the outcome of a successful availability check.
type Availability struct {
	Ready bool   `json:"ready"`
	Model string `json:"model"`
}

// Scrubber sends text to the local model for PHI redaction.
type Scrubber struct {
	backend Backend
	model   string
	family  string
	log     *zap.Logger
}

// Option configures a Scrubber.
type Option func(*Scrubber)

// WithModel overrides the model name sent to the service.
func WithModel(model string) Option {
	return func(s *Scrubber) {
		if model != "" {
			s.model = model
		}
	}
}

// WithFamily overrides the model family required by CheckAvailability.
func WithFamily(family string) Option {
	return func(s *Scrubber) {
		if family != "" {
			s.family = family
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Scrubber) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a Scrubber backed by b.
func New(b Backend, opts ...Option) *Scrubber {
	s := &Scrubber{
		backend: b,
		model:   DefaultModel,
		family:  DefaultFamily,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Model returns the model name used for generation.
func (s *Scrubber) Model() string { return s.model }

// BuildRequest returns the generate request for text.
func (s *Scrubber) BuildRequest(text string) ollama.GenerateRequest {
	return ollama.GenerateRequest{
		Model:  s.model,
		Prompt: BuildPrompt(text),
		Stream: false,
		Options: ollama.Options{
			Temperature: 0,
			TopK:        1,
		},
	}
}

// Scrub redacts PHI from text with a single model call. Input that is empty
// after trimming fails with ErrEmptyInput and makes no request.
func (s *Scrubber) Scrub(ctx context.Context, text string) (Result, error) {
	query := strings.TrimSpace(text)
	if query == "" {
		return Result{}, ErrEmptyInput
	}

	s.log.Debug("scrub request",
		zap.String("model", s.model),
		zap.Int("input_bytes", len(query)),
	)

	out, err := s.backend.Generate(ctx, s.BuildRequest(query))
	if err != nil {
		s.log.Debug("scrub failed", zap.Error(err))
		return Result{}, fmt.Errorf("scrubbing text: %w", err)
	}

	redacted := strings.TrimSpace(out)
	res := Result{
		Model:    s.model,
		Redacted: redacted,
		Analysis: redact.Analyze(redacted),
		LinesIn:  redact.LineCount(query),
		LinesOut: redact.LineCount(redacted),
	}

	s.log.Debug("scrub complete",
		zap.Int("output_bytes", len(redacted)),
		zap.Int("tags", res.Analysis.Count),
		zap.Int("tag_types", res.Analysis.Types),
		zap.Bool("line_drift", res.LineDrift()),
	)
	return res, nil
}

// CheckAvailability confirms the service is up and has a model whose name
// contains the required family.
func (s *Scrubber) CheckAvailability(ctx context.Context) (Availability, error) {
	models, err := s.backend.ListModels(ctx)
	if err != nil {
		s.log.Debug("model listing failed", zap.Error(err))
		return Availability{}, &ModelUnavailableError{
			Model:       s.model,
			ServiceDown: ollama.IsUnavailable(err),
			Err:         err,
		}
	}

	for _, m := range models {
		if strings.Contains(m.Name, s.family) {
			return Availability{Ready: true, Model: m.Name}, nil
		}
	}

	return Availability{}, &ModelUnavailableError{
		Model:    s.model,
		Guidance: "ollama pull " + s.model,
	}
}
