package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/g5becks/doxmd/internal/config"
	"github.com/g5becks/doxmd/internal/generate"
	"github.com/g5becks/doxmd/internal/ui"
)

const defaultParallel = 3

func newGenerateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "Convert all configured documentation sources",
		ArgsUsage: "[source-name...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Path to config file"},
			&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "Re-fetch url sources even when unchanged"},
			&cli.BoolFlag{Name: "clean", Usage: "Delete output directory before generating"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Show planned output without writing files"},
			&cli.IntFlag{Name: "parallel", Aliases: []string{"p"}, Usage: "Maximum parallel source conversions", Value: defaultParallel},
		},
		Action: generateAction,
	}
}

func generateAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	printer := ui.NewPrinter(cmd.Bool("dry-run"))

	stats, err := generate.Run(ctx, cfg, generate.Options{
		SourceNames: cmd.Args().Slice(),
		Force:       cmd.Bool("force"),
		DryRun:      cmd.Bool("dry-run"),
		Clean:       cmd.Bool("clean"),
		MaxParallel: cmd.Int("parallel"),
		OnEvent:     printer.HandleEvent,
	})

	printer.PrintSummary(stats)
	return err
}
