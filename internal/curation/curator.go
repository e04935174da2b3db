// Package curation sends harvested questions through an LLM for review and
// falls back to a local repair of the payload when that fails.
package curation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaswanth-142004/EZ-Search/internal/llm"
	"github.com/yaswanth-142004/EZ-Search/internal/logging"
	"github.com/yaswanth-142004/EZ-Search/internal/prompts"
	"github.com/yaswanth-142004/EZ-Search/internal/schemas"
	"github.com/yaswanth-142004/EZ-Search/internal/types"
)

const promptFile = "curation.json"

// Sampling temperature bounds for curation calls.
const (
	MinTemperature     float32 = 0.1
	MaxTemperature     float32 = 0.2
	DefaultTemperature float32 = 0.2
)

// ClampTemperature bounds t to [MinTemperature, MaxTemperature].
func ClampTemperature(t float32) float32 {
	switch {
	case t < MinTemperature:
		return MinTemperature
	case t > MaxTemperature:
		return MaxTemperature
	default:
		return t
	}
}

// ClientConfig derives the LLM configuration used for curation from base:
// clamped temperature and the JSON-only system instruction.
func ClientConfig(base *llm.Config, temperature float32) *llm.Config {
	if base == nil {
		base = llm.DefaultConfig()
	}
	cfg := base.WithTemperature(ClampTemperature(temperature))
	cfg.SystemInstruction = prompts.MustGet(promptFile, "system")
	return cfg
}

// Curator reviews a question payload with an LLM.
type Curator struct {
	client llm.Client
	log    *logging.Logger
}

// Option configures a Curator.
type Option func(*Curator)

// WithLogger sets the Curator's logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Curator) { c.log = l }
}

// New returns a Curator. A nil client is allowed: every call then takes the
// fallback path.
func New(client llm.Client, opts ...Option) *Curator {
	c := &Curator{client: client}
	for _, opt := range opts {
		opt(c)
	}
	c.log = logging.OrNop(c.log)
	return c
}

// BuildPrompt renders the curation prompt for payload and ic.
func BuildPrompt(payload any, ic types.InterviewContext) (string, error) {
	pretty, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}
	return prompts.Render(promptFile, "validate-questions", map[string]string{
		"Questions":      string(pretty),
		"JobRole":        ic.JobRole,
		"CompanyName":    ic.CompanyName,
		"JobDescription": ic.JobDescription,
	})
}

// Curate never fails: it returns the LLM's JSON on success, a locally
// repaired payload when the LLM path fails, or the fixed error object when
// the payload cannot be repaired either.
func (c *Curator) Curate(ctx context.Context, payload any, ic types.InterviewContext) *types.CuratedResult {
	value, err := c.review(ctx, payload, ic)
	if err == nil {
		result := &types.CuratedResult{Kind: types.ResultSuccess, Value: value}
		if violations := schemas.CheckQuestions(value); len(violations) > 0 {
			c.log.Info("curated output does not match question schema", "violations", violations)
			result.SchemaViolations = violations
		}
		return result
	}

	c.log.Warn("LLM curation failed, repairing original payload", "error", err)
	repaired, repairErr := Repair(payload)
	if repairErr != nil {
		c.log.Error("payload repair failed", "error", repairErr)
		return &types.CuratedResult{
			Kind:   types.ResultFailure,
			Value:  types.ErrorObject(originalString(payload)),
			Reason: repairErr.Error(),
		}
	}
	return &types.CuratedResult{
		Kind:   types.ResultDegraded,
		Value:  repaired,
		Reason: err.Error(),
	}
}

func (c *Curator) review(ctx context.Context, payload any, ic types.InterviewContext) (value any, err error) {
	if c.client == nil {
		return nil, ErrNoClient
	}
	defer func() {
		if r := recover(); r != nil {
			value, err = nil, fmt.Errorf("LLM client panicked: %v", r)
		}
	}()

	prompt, err := BuildPrompt(payload, ic)
	if err != nil {
		return nil, err
	}

	c.log.Debug("requesting curation", "model", c.client.GetModel(llm.TierStandard), "company", ic.CompanyName)
	raw, err := c.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("LLM request failed: %w", err)
	}

	if err := llm.DecodeJSON(raw, &value); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	return value, nil
}

// originalString renders payload for the terminal error object.
func originalString(payload any) string {
	if b, ok := payload.([]byte); ok {
		return string(b)
	}
	return fmt.Sprint(payload)
}
