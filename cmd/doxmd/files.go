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
)

func newFilesCommand() *cli.Command {
	return &cli.Command{
		Name:      "files",
		Usage:     "List generated files in a group",
		ArgsUsage: "<group>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output as JSON",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Show first N files (0 = use config default)",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Show all files (no limit)",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: table, json, csv",
			},
			&cli.StringFlag{
				Name:  "fields",
				Usage: "Comma-separated fields: path,source,compounds,members,lines,size,description,generated",
			},
			&cli.IntFlag{
				Name:  "desc-length",
				Usage: "Max description length (0 = use config default)",
			},
		},
		Action: filesAction,
	}
}

func filesAction(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return oops.
			Code("INVALID_ARGS").
			Hint("Usage: doxmd files <group>").
			Errorf("expected 1 argument, got %d", cmd.Args().Len())
	}

	groupName := cmd.Args().First()

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	m, err := manifest.Load(cfg.Output)
	if err != nil {
		return err
	}

	group, ok := m.Groups[groupName]
	if !ok {
		return oops.
			Code("GROUP_NOT_FOUND").
			With("group", groupName).
			Hint("Run 'doxmd groups' to see available groups").
			Errorf("group %q not found", groupName)
	}

	limit := resolveLimit(cmd, cfg)
	format := resolveFormat(cmd, cfg)
	fields := resolveFields(cmd, cfg)
	descLength := resolveDescLength(cmd, cfg)

	files := group.Files
	totalFiles := len(files)
	limited := false

	if limit > 0 && len(files) > limit {
		files = files[:limit]
		limited = true
	}

	switch format {
	case formatJSON:
		return outputFilesJSON(files)
	case formatCSV:
		return outputFilesCSV(files, fields, descLength)
	default:
		return outputFilesTable(files, fields, descLength, limited, totalFiles)
	}
}

func resolveLimit(cmd *cli.Command, cfg *config.Config) int {
	if cmd.Bool("all") {
		return 0
	}
	if cmd.IsSet("limit") {
		return cmd.Int("limit")
	}
	return cfg.Display.DefaultLimit
}

func resolveFormat(cmd *cli.Command, cfg *config.Config) string {
	if cmd.Bool("json") {
		return formatJSON
	}
	if cmd.IsSet("format") {
		return cmd.String("format")
	}
	return cfg.Display.Format
}

func resolveFields(cmd *cli.Command, cfg *config.Config) []string {
	if cmd.IsSet("fields") {
		return strings.Split(cmd.String("fields"), ",")
	}
	return cfg.Display.ListFields
}

func resolveDescLength(cmd *cli.Command, cfg *config.Config) int {
	if cmd.IsSet("desc-length") {
		return cmd.Int("desc-length")
	}
	return cfg.Display.DescriptionLength
}

func outputFilesJSON(files []manifest.FileInfo) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(files); err != nil {
		return oops.
			Code("JSON_ERROR").
			Wrapf(err, "encoding files")
	}

	return nil
}

func outputFilesCSV(files []manifest.FileInfo, fields []string, descLength int) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write(fields); err != nil {
		return oops.
			Code("CSV_ERROR").
			Wrapf(err, "writing CSV header")
	}

	for _, file := range files {
		row := make([]string, len(fields))
		for i, field := range fields {
			row[i] = getFieldValue(file, field, descLength)
		}
		if err := w.Write(row); err != nil {
			return oops.
				Code("CSV_ERROR").
				Wrapf(err, "writing CSV row")
		}
	}

	return nil
}

func outputFilesTable(files []manifest.FileInfo, fields []string, descLength int, limited bool, total int) error {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)

	header := make(table.Row, len(fields))
	for i, field := range fields {
		header[i] = strings.ToUpper(field)
	}
	t.AppendHeader(header)

	for _, file := range files {
		row := make(table.Row, len(fields))
		for i, field := range fields {
			row[i] = getFieldValue(file, field, descLength)
		}
		t.AppendRow(row)
	}

	t.Render()

	if limited {
		_, _ = os.Stdout.WriteString("\n(showing " + strconv.Itoa(len(files)) + " of " + strconv.Itoa(total) + " files, use --all to show all)\n")
	}

	return nil
}

func getFieldValue(file manifest.FileInfo, field string, descLength int) string {
	switch field {
	case "path":
		return file.Path
	case "source":
		return file.Source
	case "compounds":
		return strconv.Itoa(file.Compounds)
	case "members":
		return strconv.Itoa(file.Members)
	case "lines":
		return strconv.Itoa(file.Lines)
	case "size":
		return formatSize(file.Size)
	case "description":
		return truncateDescription(file.Description, descLength)
	case "generated":
		return formatTime(file.Generated)
	default:
		return ""
	}
}

func truncateDescription(desc string, maxLen int) string {
	if maxLen <= 0 || len(desc) <= maxLen {
		return desc
	}
	const ellipsis = "..."
	if maxLen <= len(ellipsis) {
		return ellipsis
	}
	return desc[:maxLen-len(ellipsis)] + ellipsis
}
