package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/oops"
	"github.com/urfave/cli/v3"

	"github.com/g5becks/doxmd/internal/config"
	"github.com/g5becks/doxmd/internal/manifest"
	"github.com/g5becks/doxmd/internal/search"
)

func newSearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search generated documentation metadata or content",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
			},
			&cli.StringFlag{
				Name:  "group",
				Usage: "Search only within one group",
			},
			&cli.BoolFlag{
				Name:  "content",
				Usage: "Search file contents instead of metadata",
			},
			&cli.BoolFlag{
				Name:  "regex",
				Usage: "Treat query as regex (requires --content)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output as JSON",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: table, json, csv",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Max results (0 = unlimited)",
			},
			&cli.IntFlag{
				Name:  "desc-length",
				Usage: "Max table text length (0 = use config default)",
			},
		},
		Action: searchAction,
	}
}

func searchAction(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return oops.
			Code("INVALID_ARGS").
			Hint("Usage: doxmd search <query>").
			Errorf("expected 1 argument, got %d", cmd.Args().Len())
	}

	query := strings.TrimSpace(cmd.Args().First())
	if query == "" {
		return oops.
			Code("INVALID_ARGS").
			Hint("Provide a non-empty search query").
			Errorf("search query cannot be empty")
	}

	if cmd.Bool("regex") && !cmd.Bool("content") {
		return oops.
			Code("INVALID_ARGS").
			Hint("--regex requires --content flag").
			Errorf("--regex can only be used with --content")
	}

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	m, err := manifest.Load(cfg.Output)
	if err != nil {
		return err
	}

	format := resolveFormat(cmd, cfg)
	limit := resolveLimit(cmd, cfg)
	descLength := resolveDescLength(cmd, cfg)

	if cmd.Bool("content") {
		return runContentSearch(m, cfg, cmd, query, format, limit, descLength)
	}

	return runMetadataSearch(m, cmd, query, format, limit, descLength)
}

func runMetadataSearch(
	m *manifest.Manifest,
	cmd *cli.Command,
	query, format string,
	limit, descLength int,
) error {
	results, err := search.Metadata(m, search.MetadataOptions{
		Query: query,
		Group: cmd.String("group"),
		Limit: limit,
	})
	if err != nil {
		return err
	}

	switch format {
	case formatJSON:
		return outputMetadataJSON(results)
	case formatCSV:
		return outputMetadataCSV(results)
	default:
		return outputMetadataTable(results, descLength)
	}
}

func runContentSearch(
	m *manifest.Manifest,
	cfg *config.Config,
	cmd *cli.Command,
	query, format string,
	limit, descLength int,
) error {
	results, err := search.Content(m, search.ContentOptions{
		OutputDir: cfg.Output,
		Query:     query,
		Group:     cmd.String("group"),
		UseRegex:  cmd.Bool("regex"),
		Limit:     limit,
	})
	if err != nil {
		return err
	}

	switch format {
	case formatJSON:
		return outputContentJSON(results)
	case formatCSV:
		return outputContentCSV(results)
	default:
		return outputContentTable(results, descLength)
	}
}

func outputMetadataJSON(results []search.MetadataResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(results); err != nil {
		return oops.
			Code("JSON_ERROR").
			Wrapf(err, "encoding search results")
	}

	return nil
}

func outputMetadataCSV(results []search.MetadataResult) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"group", "path", "match_field", "match_value", "score"}
	if err := w.Write(header); err != nil {
		return oops.
			Code("CSV_ERROR").
			Wrapf(err, "writing CSV header")
	}

	for _, result := range results {
		row := []string{
			result.Group,
			result.Path,
			result.MatchField,
			result.MatchValue,
			strconv.Itoa(result.Score),
		}
		if err := w.Write(row); err != nil {
			return oops.
				Code("CSV_ERROR").
				Wrapf(err, "writing CSV row")
		}
	}

	return nil
}

func outputMetadataTable(results []search.MetadataResult, descLength int) error {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"GROUP", "PATH", "MATCH", "VALUE"})

	for _, result := range results {
		t.AppendRow(table.Row{
			result.Group,
			result.Path,
			result.MatchField,
			truncateDescription(result.MatchValue, descLength),
		})
	}

	t.Render()
	return nil
}

func outputContentJSON(results []search.ContentResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(results); err != nil {
		return oops.
			Code("JSON_ERROR").
			Wrapf(err, "encoding search results")
	}

	return nil
}

func outputContentCSV(results []search.ContentResult) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"group", "path", "line", "text"}
	if err := w.Write(header); err != nil {
		return oops.
			Code("CSV_ERROR").
			Wrapf(err, "writing CSV header")
	}

	for _, result := range results {
		row := []string{
			result.Group,
			result.Path,
			strconv.Itoa(result.Line),
			result.Text,
		}
		if err := w.Write(row); err != nil {
			return oops.
				Code("CSV_ERROR").
				Wrapf(err, "writing CSV row")
		}
	}

	return nil
}

func outputContentTable(results []search.ContentResult, descLength int) error {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"GROUP", "PATH", "LINE", "TEXT"})

	for _, result := range results {
		t.AppendRow(table.Row{
			result.Group,
			result.Path,
			result.Line,
			truncateDescription(result.Text, descLength),
		})
	}

	t.Render()
	return nil
}
