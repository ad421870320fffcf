package main

import (
	"context"
	"encoding/json"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/oops"
	"github.com/urfave/cli/v3"

	"github.com/g5becks/doxmd/internal/config"
	"github.com/g5becks/doxmd/internal/manifest"
)

func newGroupsCommand() *cli.Command {
	return &cli.Command{
		Name:  "groups",
		Usage: "List generated documentation groups",
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
				Usage: "Limit number of results (0 = all)",
			},
		},
		Action: groupsAction,
	}
}

type groupOutput struct {
	Name  string `json:"name"`
	Files int    `json:"files"`
	Size  int64  `json:"size"`
}

func groupsAction(_ context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	m, err := manifest.Load(cfg.Output)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(m.Groups))
	for name := range m.Groups {
		names = append(names, name)
	}
	sort.Strings(names)

	limit := cmd.Int("limit")
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}

	groups := make([]groupOutput, 0, len(names))
	for _, name := range names {
		group := m.Groups[name]
		groups = append(groups, groupOutput{
			Name:  group.Name,
			Files: group.FileCount,
			Size:  group.TotalSize,
		})
	}

	if cmd.Bool("json") {
		return outputGroupsJSON(groups)
	}

	return outputGroupsTable(groups)
}

func outputGroupsJSON(groups []groupOutput) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(groups); err != nil {
		return oops.
			Code("JSON_ERROR").
			Wrapf(err, "encoding groups")
	}

	return nil
}

func outputGroupsTable(groups []groupOutput) error {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"GROUP", "FILES", "SIZE"})

	for _, group := range groups {
		t.AppendRow(table.Row{
			group.Name,
			group.Files,
			formatSize(group.Size),
		})
	}

	t.Render()
	return nil
}
