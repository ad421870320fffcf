package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/samber/oops"
	"github.com/urfave/cli/v3"

	"github.com/g5becks/doxmd/internal/config"
	"github.com/g5becks/doxmd/internal/doxygen"
	"github.com/g5becks/doxmd/internal/render"
	"github.com/g5becks/doxmd/internal/source"
)

func newConvertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert Doxygen XML to Markdown without a config file",
		ArgsUsage: "[file|directory|url]",
		Description: "Reads a single XML document from stdin, a file, or a URL and " +
			"prints Markdown to stdout. Given a directory, converts every matching " +
			"XML file into grouped Markdown files under --outdir.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "outdir",
				Aliases: []string{"o"},
				Usage:   "Output directory for directory conversion",
				Value:   config.DefaultOutput,
			},
			&cli.StringSliceFlag{
				Name:  "patterns",
				Usage: "Include glob pattern for directory conversion (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Exclude glob pattern for directory conversion (repeatable)",
			},
		},
		Action: convertAction,
	}
}

func convertAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() > 1 {
		return oops.
			Code("INVALID_ARGS").
			Hint("Usage: doxmd convert [file|directory|url]").
			Errorf("expected at most 1 argument, got %d", cmd.Args().Len())
	}

	if cmd.Args().Len() == 0 {
		return convertStdin()
	}

	target := cmd.Args().First()
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return convertURL(ctx, target)
	}

	info, err := os.Stat(target)
	if err != nil {
		return oops.
			Code("READ_FAILED").
			With("path", target).
			Wrapf(err, "checking input path")
	}

	if info.IsDir() {
		return convertDirectory(ctx, cmd, target)
	}

	return convertFile(target)
}

func convertStdin() error {
	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return oops.
			Code("READ_FAILED").
			Wrapf(err, "reading stdin")
	}

	return convertAndPrint(content)
}

func convertFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return oops.
			Code("READ_FAILED").
			With("path", path).
			Wrapf(err, "reading input file")
	}

	return convertAndPrint(content)
}

func convertURL(ctx context.Context, url string) error {
	src := source.NewURL("input", config.Source{Type: "url", URL: url})
	result, err := src.Fetch(ctx, nil, source.FetchOptions{Force: true})
	if err != nil {
		return err
	}

	if len(result.Inputs) == 0 {
		return oops.
			Code("DOWNLOAD_FAILED").
			With("url", url).
			Errorf("url returned no content")
	}

	return convertAndPrint(result.Inputs[0].Content)
}

func convertAndPrint(content []byte) error {
	md, err := render.Convert(content)
	if err != nil {
		return err
	}

	_, _ = os.Stdout.WriteString(md)
	return nil
}

func convertDirectory(ctx context.Context, cmd *cli.Command, dir string) error {
	patterns := cmd.StringSlice("patterns")
	if len(patterns) == 0 {
		patterns = config.DefaultPatterns()
	}

	src := source.NewDir("input", config.Source{
		Type:     "dir",
		Patterns: patterns,
		Exclude:  cmd.StringSlice("exclude"),
	}, dir)

	result, err := src.Fetch(ctx, nil, source.FetchOptions{})
	if err != nil {
		return err
	}

	outdir := cmd.String("outdir")
	yellow := color.New(color.FgYellow)
	written := 0

	for _, input := range result.Inputs {
		doc, parseErr := doxygen.Parse(input.Content)
		if parseErr != nil {
			_, _ = yellow.Fprintf(os.Stderr, "Skipping %s: not valid Doxygen XML\n",
				filepath.Base(input.Path))
			continue
		}

		md := render.Markdown(doc)
		groupDir := filepath.Join(outdir, doc.Group())
		if mkdirErr := os.MkdirAll(groupDir, 0o755); mkdirErr != nil {
			return oops.
				Code("WRITE_FAILED").
				With("path", groupDir).
				Wrapf(mkdirErr, "creating group directory")
		}

		outPath := filepath.Join(groupDir, input.Name+".md")
		if writeErr := os.WriteFile(outPath, []byte(md), 0o644); writeErr != nil {
			return oops.
				Code("WRITE_FAILED").
				With("path", outPath).
				Wrapf(writeErr, "writing markdown file")
		}

		fmt.Printf("Wrote %s\n", outPath)
		written++
	}

	fmt.Printf("Converted %d of %d file(s)\n", written, len(result.Inputs))
	return nil
}
