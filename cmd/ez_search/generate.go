package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaswanth-142004/EZ-Search/internal/observability"
	"github.com/yaswanth-142004/EZ-Search/internal/pipeline"
	"github.com/yaswanth-142004/EZ-Search/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate curated interview questions for a company and role",
	Long: `Harvests interview questions from the built-in source pages, normalizes them and
asks the configured LLM to curate them for the given company, role and job description.
When the LLM is unavailable the harvested questions are returned as-is.`,
	RunE: runGenerate,
}

var (
	genCompany     string
	genRole        string
	genDescription string
	genProvider    string
	genAPIKey      string
	genModel       string
	genUseBrowser  bool
	genInterval    string
	genOut         string
	genText        bool
)

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&genCompany, "company", "", "Company name (required)")
	generateCmd.Flags().StringVar(&genRole, "role", "", "Job role (required)")
	generateCmd.Flags().StringVar(&genDescription, "description", "", "Job description (required)")
	generateCmd.Flags().StringVar(&genProvider, "provider", "", "LLM provider: gemini or openai (groq)")
	generateCmd.Flags().StringVar(&genAPIKey, "api-key", "", "LLM API key (defaults to GEMINI_API_KEY or GROQ_API_KEY)")
	generateCmd.Flags().StringVar(&genModel, "model", "", "Override the curation model")
	generateCmd.Flags().BoolVar(&genUseBrowser, "use-browser", false, "Render script-heavy pages with a headless browser")
	generateCmd.Flags().StringVar(&genInterval, "fetch-interval", "", "Minimum gap between page requests, e.g. 500ms")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "", "Write the JSON result to this file instead of stdout")
	generateCmd.Flags().BoolVar(&genText, "text", false, "Print the formatted question text before curation")

	_ = generateCmd.MarkFlagRequired("company")
	_ = generateCmd.MarkFlagRequired("role")
	_ = generateCmd.MarkFlagRequired("description")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("provider") {
		cfg.Provider = genProvider
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = genAPIKey
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = genModel
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = genUseBrowser
	}
	if cmd.Flags().Changed("fetch-interval") {
		cfg.FetchInterval = genInterval
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ic := types.InterviewContext{
		CompanyName:    genCompany,
		JobRole:        genRole,
		JobDescription: genDescription,
	}
	if err := ic.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	stderr := cmd.ErrOrStderr()
	printer := observability.NewPrinter(stderr)
	opts := pipeline.Options{
		Source:  a.harvester,
		Curator: a.curator,
		Logger:  a.log,
	}
	if cfg.Verbose {
		printer.PrintInterviewContext(ic)
		opts.Source = reportingSource{harvester: a.harvester, printer: printer}
		opts.OnProgress = func(e pipeline.ProgressEvent) {
			_, _ = fmt.Fprintf(stderr, "[%s] %s\n", e.Step, e.Message)
		}
	}

	result, state, err := pipeline.New(opts).Generate(ctx, ic)
	if err != nil {
		return err
	}

	if genText {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), state.FormattedText)
	}
	if cfg.Verbose {
		printer.PrintCuratedResult(result)
	}
	if !result.OK() {
		a.log.Warn("curation degraded", "kind", string(result.Kind), "reason", result.Reason)
	}

	if genOut == "" {
		return observability.WriteJSON(cmd.OutOrStdout(), result.Payload())
	}
	f, err := os.Create(genOut)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()
	if err := observability.WriteJSON(f, result.Payload()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	_, _ = fmt.Fprintf(stderr, "Wrote %d questions harvested for %s to %s\n", len(state.Questions), ic.CompanyName, genOut)
	return nil
}
