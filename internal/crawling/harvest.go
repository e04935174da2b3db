package crawling

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/yaswanth-142004/EZ-Search/internal/fetch"
	"github.com/yaswanth-142004/EZ-Search/internal/logging"
	"github.com/yaswanth-142004/EZ-Search/internal/types"
)

// DefaultTimeout is the per-URL request timeout.
const DefaultTimeout = fetch.DefaultTimeout

// PageFetcher retrieves one page. fetch.URL is the production implementation.
type PageFetcher func(ctx context.Context, url string, opts *fetch.Options) (*fetch.Result, error)

// SourceStatus is the outcome of harvesting one source.
type SourceStatus string

const (
	// SourceOK means the page was fetched and parsed
	SourceOK SourceStatus = "ok"
	// SourceSkipped means the page failed and contributed nothing
	SourceSkipped SourceStatus = "skipped"
)

// SourceReport describes what one source contributed.
type SourceReport struct {
	URL        string
	Status     SourceStatus
	StatusCode int
	Questions  int
	Rendered   bool
	Err        error
}

// Config configures a Harvester. Zero values select the defaults.
type Config struct {
	Sources []string
	Timeout time.Duration
	// Interval is the minimum gap between two requests. Zero disables pacing.
	Interval time.Duration
	// Renderer enables the headless-browser fallback for script-rendered pages.
	Renderer fetch.Renderer
	Fetch    PageFetcher
	Logger   *logging.Logger
}

// Harvester fetches every source in order and turns its h2 headings into questions.
type Harvester struct {
	sources  []string
	options  *fetch.Options
	fetch    PageFetcher
	renderer fetch.Renderer
	limiter  *rate.Limiter
	log      *logging.Logger
}

// NewHarvester creates a Harvester from cfg.
func NewHarvester(cfg Config) *Harvester {
	sources := cfg.Sources
	if len(sources) == 0 {
		sources = Sources()
	}
	opts := fetch.DefaultOptions()
	if cfg.Timeout > 0 {
		opts.Timeout = cfg.Timeout
	}
	fetcher := cfg.Fetch
	if fetcher == nil {
		fetcher = fetch.URL
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.Interval > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.Interval), 1)
	}
	return &Harvester{
		sources:  sources,
		options:  opts,
		fetch:    fetcher,
		renderer: cfg.Renderer,
		limiter:  limiter,
		log:      logging.OrNop(cfg.Logger),
	}
}

// Sources returns the URLs this harvester visits.
func (h *Harvester) Sources() []string {
	return h.sources
}

// Harvest visits every source and returns the accumulated questions. It never
// fails: a source that errors is logged and contributes nothing.
func (h *Harvester) Harvest(ctx context.Context) types.QuestionSet {
	questions, _ := h.HarvestWithReport(ctx)
	return questions
}

// HarvestWithReport is Harvest plus a per-source report in source order.
func (h *Harvester) HarvestWithReport(ctx context.Context) (types.QuestionSet, []SourceReport) {
	questions := make(types.QuestionSet, 0)
	reports := make([]SourceReport, 0, len(h.sources))

	h.log.Info("starting question harvest", "sources", len(h.sources))
	for _, url := range h.sources {
		found, report := h.harvestSource(ctx, url)
		reports = append(reports, report)
		if report.Status != SourceOK {
			h.log.Warn("skipping source", "url", url, "status_code", report.StatusCode, "error", report.Err)
			continue
		}
		h.log.Info("harvested source", "url", url, "questions", len(found), "rendered", report.Rendered)
		questions = append(questions, found...)
	}
	h.log.Info("finished question harvest", "questions", len(questions))

	return questions, reports
}

func (h *Harvester) harvestSource(ctx context.Context, url string) (types.QuestionSet, SourceReport) {
	report := SourceReport{URL: url, Status: SourceSkipped}

	if err := h.limiter.Wait(ctx); err != nil {
		report.Err = err
		return nil, report
	}

	h.log.Debug("fetching source", "url", url)
	result, err := h.fetch(ctx, url, h.options)
	if result != nil {
		report.StatusCode = result.StatusCode
	}
	if err != nil {
		report.Err = err
		return nil, report
	}

	headings, err := ExtractHeadings(result.HTML, HeadingSelector)
	if err != nil {
		report.Err = err
		return nil, report
	}

	if h.renderer != nil && fetch.ShouldUseBrowser(url, len(headings), result.HTML) {
		if rendered, rerr := h.renderWithBrowser(ctx, url); rerr != nil {
			h.log.Warn("browser render failed, keeping plain fetch", "url", url, "error", rerr)
		} else {
			headings = rendered
			report.Rendered = true
		}
	}

	category := types.QuestionTypeForURL(url)
	questions := make(types.QuestionSet, 0, len(headings))
	for _, text := range headings {
		questions = append(questions, types.RawQuestion{
			Question: text,
			Link:     url,
			Type:     category,
		})
	}

	report.Status = SourceOK
	report.Questions = len(questions)
	return questions, report
}

func (h *Harvester) renderWithBrowser(ctx context.Context, url string) ([]string, error) {
	html, err := h.renderer.Render(ctx, url)
	if err != nil {
		return nil, err
	}
	return ExtractHeadings(html, HeadingSelector)
}
