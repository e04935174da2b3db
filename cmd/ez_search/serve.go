package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yaswanth-142004/EZ-Search/internal/dsa"
	"github.com/yaswanth-142004/EZ-Search/internal/pipeline"
	"github.com/yaswanth-142004/EZ-Search/internal/server"
	"github.com/yaswanth-142004/EZ-Search/internal/server/ratelimit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing interview question generation and DSA lookup.

Endpoints:
  GET  /                                   Service status
  GET  /health                             Health check
  POST /generate_interview_questions       Curated questions for a company and role
  POST /generate_interview_questions/stream  Same, with progress as Server-Sent Events
  POST /generate_dsa_questions             DSA questions recorded for a company`,
	RunE: runServe,
}

var (
	servePort    int
	serveDSAPath string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (defaults to PORT or 7070)")
	serveCmd.Flags().StringVar(&serveDSAPath, "dsa-path", "", "Path to the DSA question table (defaults to DSA_PATH or dsa.json)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("dsa-path") {
		cfg.DSAPath = serveDSAPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	cfgServer := server.Config{
		Port:      cfg.Port,
		Logger:    a.log,
		RateLimit: ratelimit.LoadConfig(),
		Generator: func(onProgress pipeline.ProgressCallback) server.Generator {
			return a.pipeline(onProgress)
		},
	}
	table, err := dsa.Load(cfg.DSAPath)
	if err != nil {
		a.log.Error("DSA table unavailable", "path", cfg.DSAPath, "error", err)
	} else {
		a.log.Info("DSA table loaded", "path", cfg.DSAPath, "companies", table.Len())
		cfgServer.DSA = table
	}

	srv, err := server.New(cfgServer)
	if err != nil {
		return err
	}

	a.log.Info("starting server", "port", cfg.Port)
	return srv.ListenAndServe(ctx)
}
