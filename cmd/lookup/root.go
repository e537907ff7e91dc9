package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/VijayAsokkumar/VigilAI/internal/config"
	"github.com/VijayAsokkumar/VigilAI/internal/model"
	"github.com/VijayAsokkumar/VigilAI/internal/provider"
)

var (
	version = "dev"
	commit  = "none"
)

type Lookup interface {
	Quote(ctx context.Context, symbol string) (*model.QuoteResult, error)
	CompanyNews(ctx context.Context, symbol string) ([]model.NewsArticle, error)
	IndustryNews(ctx context.Context, symbol string) ([]model.NewsArticle, error)
	Performance(ctx context.Context, symbol string) ([]model.PerformancePoint, error)
}

type serviceFactory func(configPath string) (Lookup, error)

func serviceFromConfig(configPath string) (Lookup, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	level, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	return provider.NewLookup(cfg)
}

func newRootCmd(newService serviceFactory) *cobra.Command {
	var flagConfig string

	root := &cobra.Command{
		Use:          "lookup",
		Short:        "Query quotes, performance and news from the command line",
		Long:         "lookup runs the gateway's stock and news lookups once and prints the JSON the API would return.",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")

	run := func(fetch func(ctx context.Context, svc Lookup, symbol string) (any, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			svc, err := newService(flagConfig)
			if err != nil {
				return err
			}
			v, err := fetch(cmd.Context(), svc, args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), v)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "quote SYMBOL",
			Short: "Latest trading day for a symbol",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(ctx context.Context, svc Lookup, symbol string) (any, error) {
				return svc.Quote(ctx, symbol)
			}),
		},
		&cobra.Command{
			Use:   "news SYMBOL",
			Short: "News articles mentioning a symbol",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(ctx context.Context, svc Lookup, symbol string) (any, error) {
				return svc.CompanyNews(ctx, symbol)
			}),
		},
		&cobra.Command{
			Use:   "industry-news SYMBOL",
			Short: "News for the configured industry",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(ctx context.Context, svc Lookup, symbol string) (any, error) {
				return svc.IndustryNews(ctx, symbol)
			}),
		},
		&cobra.Command{
			Use:   "performance SYMBOL",
			Short: "Daily closing prices over the last six months",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(ctx context.Context, svc Lookup, symbol string) (any, error) {
				return svc.Performance(ctx, symbol)
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "lookup %s (commit: %s)\n", version, commit)
			},
		},
	)

	return root
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
