package main

import (
	"context"
	"fmt"

	"github.com/yaswanth-142004/EZ-Search/internal/config"
	"github.com/yaswanth-142004/EZ-Search/internal/crawling"
	"github.com/yaswanth-142004/EZ-Search/internal/curation"
	"github.com/yaswanth-142004/EZ-Search/internal/fetch"
	"github.com/yaswanth-142004/EZ-Search/internal/llm"
	"github.com/yaswanth-142004/EZ-Search/internal/logging"
	"github.com/yaswanth-142004/EZ-Search/internal/observability"
	"github.com/yaswanth-142004/EZ-Search/internal/pipeline"
	"github.com/yaswanth-142004/EZ-Search/internal/types"
)

// app wires the components shared by the generate and serve commands.
type app struct {
	cfg       config.Config
	log       *logging.Logger
	client    llm.Client
	harvester *crawling.Harvester
	curator   *curation.Curator
}

func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	log, err := logging.New(cfg.LogMode)
	if err != nil {
		return nil, err
	}

	harvestCfg, err := harvesterConfig(cfg, log)
	if err != nil {
		return nil, err
	}

	client, err := newLLMClient(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:       cfg,
		log:       log,
		client:    client,
		harvester: crawling.NewHarvester(harvestCfg),
		curator:   curation.New(client, curation.WithLogger(log)),
	}, nil
}

// harvesterConfig applies the fetch settings of cfg to both the plain
// fetcher and the browser renderer.
func harvesterConfig(cfg config.Config, log *logging.Logger) (crawling.Config, error) {
	interval, err := cfg.FetchIntervalDuration()
	if err != nil {
		return crawling.Config{}, err
	}
	harvestCfg := crawling.Config{
		Sources:  cfg.Sources,
		Timeout:  cfg.FetchTimeout(),
		Interval: interval,
		Logger:   log,
	}
	if cfg.UseBrowser {
		harvestCfg.Renderer = fetch.NewBrowserRenderer(cfg.FetchTimeout())
	}
	return harvestCfg, nil
}

// newLLMClient returns nil without an API key; curation then always uses
// the local fallback.
func newLLMClient(ctx context.Context, cfg config.Config, log *logging.Logger) (llm.Client, error) {
	apiKey := cfg.ResolveAPIKey()
	if apiKey == "" {
		log.Warn("no LLM API key configured, curation will return the harvested questions", "provider", cfg.Provider)
		return nil, nil
	}

	llmCfg, err := cfg.LLMConfig()
	if err != nil {
		return nil, err
	}
	llmCfg = curation.ClientConfig(llmCfg, float32(cfg.Temperature))

	client, err := llm.NewClient(ctx, llmCfg, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	log.Debug("LLM client ready", "provider", string(llmCfg.Provider), "model", client.GetModel(llm.TierStandard))
	return client, nil
}

// pipeline builds a Pipeline over the shared harvester and curator.
func (a *app) pipeline(onProgress pipeline.ProgressCallback) *pipeline.Pipeline {
	return pipeline.New(pipeline.Options{
		Source:     a.harvester,
		Curator:    a.curator,
		Logger:     a.log,
		OnProgress: onProgress,
	})
}

func (a *app) Close() {
	if a.client != nil {
		if err := a.client.Close(); err != nil {
			a.log.Warn("failed to close LLM client", "error", err)
		}
	}
	a.log.Sync()
}

// reportingSource prints the per-source harvest report in verbose mode.
type reportingSource struct {
	harvester *crawling.Harvester
	printer   *observability.Printer
}

func (r reportingSource) Harvest(ctx context.Context) types.QuestionSet {
	qs, reports := r.harvester.HarvestWithReport(ctx)
	r.printer.PrintSourceReports(reports)
	r.printer.PrintQuestionSet(qs)
	return qs
}
