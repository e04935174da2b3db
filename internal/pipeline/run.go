// Package pipeline orchestrates one interview question run: harvest,
// format and serialize, then hand the result to the curator.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yaswanth-142004/EZ-Search/internal/curation"
	"github.com/yaswanth-142004/EZ-Search/internal/logging"
	"github.com/yaswanth-142004/EZ-Search/internal/normalize"
	"github.com/yaswanth-142004/EZ-Search/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// QuestionSource yields the harvested question set. It must not fail; an
// unreachable source contributes nothing.
type QuestionSource interface {
	Harvest(ctx context.Context) types.QuestionSet
}

// Curator reviews a decoded question payload.
type Curator interface {
	Curate(ctx context.Context, payload any, ic types.InterviewContext) *types.CuratedResult
}

// State is the data carried between stages. FormattedText and FinalJSON are
// only written from the current Questions.
type State struct {
	RunID         uuid.UUID
	Context       types.InterviewContext
	Questions     types.QuestionSet
	FormattedText string
	FinalJSON     string
	Stage         Stage
}

// NewState returns a state ready for StageFetching.
func NewState(ic types.InterviewContext) *State {
	return &State{
		RunID:     uuid.New(),
		Context:   ic,
		Questions: types.QuestionSet{},
		Stage:     StageFetching,
	}
}

func (s *State) expect(stage Stage) error {
	if s.Stage != stage {
		return &StageOrderError{Want: stage, Got: s.Stage}
	}
	return nil
}

func (s *State) advance() {
	if next, ok := Next(s.Stage); ok {
		s.Stage = next
	}
}

// Options holds the collaborators of a Pipeline
type Options struct {
	Source     QuestionSource
	Curator    Curator
	Logger     *logging.Logger
	OnProgress ProgressCallback
}

// Pipeline runs the question stages. It holds no per-run data and may be
// reused across runs.
type Pipeline struct {
	source     QuestionSource
	curator    Curator
	log        *logging.Logger
	onProgress ProgressCallback
}

// New builds a Pipeline. A nil Curator is replaced by one without an LLM
// client, which always takes the local fallback.
func New(opts Options) *Pipeline {
	log := logging.OrNop(opts.Logger)
	curator := opts.Curator
	if curator == nil {
		curator = curation.New(nil, curation.WithLogger(log))
	}
	return &Pipeline{
		source:     opts.Source,
		curator:    curator,
		log:        log,
		onProgress: opts.OnProgress,
	}
}

func (p *Pipeline) emit(s *State, category, message string, content any) {
	if p.onProgress == nil {
		return
	}
	p.onProgress(ProgressEvent{
		Step:     string(s.Stage),
		Category: category,
		Message:  message,
		RunID:    s.RunID.String(),
		Content:  content,
	})
}

// Fetch harvests questions into s. It is the StageFetching transition.
func (p *Pipeline) Fetch(ctx context.Context, s *State) error {
	if err := s.expect(StageFetching); err != nil {
		return err
	}
	var qs types.QuestionSet
	if p.source != nil {
		qs = p.source.Harvest(ctx)
	}
	if qs == nil {
		qs = types.QuestionSet{}
	}
	s.Questions = qs

	counts := qs.CountByType()
	p.log.Info("harvested questions", "run_id", s.RunID.String(), "total", len(qs),
		"dsa", counts[types.QuestionTypeDSA], "hr", counts[types.QuestionTypeHR])
	p.emit(s, CategoryFetch, fmt.Sprintf("Harvested %d questions", len(qs)), nil)
	s.advance()
	return nil
}

// Format renders the text projection. It is the StageFormatting transition.
func (p *Pipeline) Format(s *State) error {
	if err := s.expect(StageFormatting); err != nil {
		return err
	}
	s.FormattedText = normalize.FormatText(s.Questions)
	p.emit(s, CategoryNormalize, "Formatted question text", nil)
	s.advance()
	return nil
}

// Serialize renders the JSON projection. It is the StageSerializing transition.
func (p *Pipeline) Serialize(s *State) error {
	if err := s.expect(StageSerializing); err != nil {
		return err
	}
	s.FinalJSON = normalize.MarshalJSON(s.Questions)
	p.emit(s, CategoryNormalize, "Serialized question set", nil)
	s.advance()
	return nil
}

// Step runs the transition for the current stage of s.
func (p *Pipeline) Step(ctx context.Context, s *State) error {
	switch s.Stage {
	case StageFetching:
		return p.Fetch(ctx, s)
	case StageFormatting:
		return p.Format(s)
	case StageSerializing:
		return p.Serialize(s)
	default:
		return &StageOrderError{Want: StageFetching, Got: s.Stage}
	}
}

// Run validates ic and drives a fresh state to StageDone. The only error is
// an invalid context, reported before anything is fetched.
func (p *Pipeline) Run(ctx context.Context, ic types.InterviewContext) (*State, error) {
	if err := ic.Validate(); err != nil {
		return nil, err
	}

	s := NewState(ic.Trimmed())
	p.log.Debug("pipeline run started", "run_id", s.RunID.String(), "company", s.Context.CompanyName)
	for s.Stage != StageDone {
		if err := p.Step(ctx, s); err != nil {
			return s, err
		}
	}
	return s, nil
}

// Generate runs the pipeline and curates its JSON output.
func (p *Pipeline) Generate(ctx context.Context, ic types.InterviewContext) (*types.CuratedResult, *State, error) {
	s, err := p.Run(ctx, ic)
	if err != nil {
		return nil, s, err
	}

	payload, err := normalize.Decode(s.FinalJSON)
	if err != nil {
		// FinalJSON is produced by the normalizer, so this is a bug.
		return nil, s, fmt.Errorf("failed to decode serialized questions: %w", err)
	}

	result := p.curator.Curate(ctx, payload, s.Context)
	p.log.Info("curation finished", "run_id", s.RunID.String(), "kind", string(result.Kind))
	p.emit(s, CategoryCuration, fmt.Sprintf("Curation finished: %s", result.Kind), result.Kind)
	return result, s, nil
}
