package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/samber/oops"
	"github.com/urfave/cli/v3"

	"github.com/g5becks/doxmd/internal/config"
	"github.com/g5becks/doxmd/internal/manifest"
)

func newCatCommand() *cli.Command {
	return &cli.Command{
		Name:      "cat",
		Usage:     "Read generated Markdown from a group",
		ArgsUsage: "<group> <file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output as JSON with metadata",
			},
			&cli.BoolFlag{
				Name:  "no-line-numbers",
				Usage: "Don't show line numbers",
			},
			&cli.IntFlag{
				Name:  "offset",
				Usage: "Start at line N (0-based)",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Show N lines (0 = all)",
			},
		},
		Action: catAction,
	}
}

type catOutput struct {
	Group   string `json:"group"`
	Path    string `json:"path"`
	Lines   int    `json:"lines"`
	Size    int64  `json:"size"`
	Content string `json:"content"`
	Offset  int    `json:"offset"`
	Limit   int    `json:"limit"`
}

func catAction(_ context.Context, cmd *cli.Command) error {
	const requiredArgs = 2
	if cmd.Args().Len() != requiredArgs {
		return oops.
			Code("INVALID_ARGS").
			Hint("Usage: doxmd cat <group> <file>").
			Errorf("expected %d arguments, got %d", requiredArgs, cmd.Args().Len())
	}

	groupName := cmd.Args().Get(0)
	filePath := cmd.Args().Get(1)

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

	var fileInfo *manifest.FileInfo
	for i := range group.Files {
		if group.Files[i].Path == filePath || filepath.Base(group.Files[i].Path) == filePath {
			fileInfo = &group.Files[i]
			break
		}
	}

	if fileInfo == nil {
		return oops.
			Code("FILE_NOT_FOUND").
			With("file", filePath).
			With("group", groupName).
			Hint("Run 'doxmd files' to see available files").
			Errorf("file %q not found in group %q", filePath, groupName)
	}

	fullPath := filepath.Join(cfg.Output, filepath.FromSlash(fileInfo.Path))
	content, err := os.ReadFile(fullPath)
	if err != nil {
		return oops.
			Code("FILE_READ_ERROR").
			With("path", fullPath).
			Hint("Run 'doxmd generate' to regenerate the file").
			Wrapf(err, "reading file")
	}

	lines := strings.Split(string(content), "\n")
	offset := cmd.Int("offset")
	limit := cmd.Int("limit")

	if offset >= len(lines) {
		lines = []string{}
	} else {
		lines = lines[offset:]
		if limit > 0 && len(lines) > limit {
			lines = lines[:limit]
		}
	}

	if cmd.Bool("json") {
		return outputCatJSON(groupName, fileInfo, strings.Join(lines, "\n"), offset, limit)
	}

	showLineNumbers := !cmd.Bool("no-line-numbers")
	outputCatText(lines, offset, showLineNumbers)
	return nil
}

func outputCatJSON(group string, fileInfo *manifest.FileInfo, content string, offset, limit int) error {
	output := catOutput{
		Group:   group,
		Path:    fileInfo.Path,
		Lines:   fileInfo.Lines,
		Size:    fileInfo.Size,
		Content: content,
		Offset:  offset,
		Limit:   limit,
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(output); err != nil {
		return oops.
			Code("JSON_ERROR").
			Wrapf(err, "encoding output")
	}

	return nil
}

func outputCatText(lines []string, offset int, showLineNumbers bool) {
	for i, line := range lines {
		lineNum := offset + i + 1
		if showLineNumbers {
			_, _ = os.Stdout.WriteString(formatWithLineNumber(lineNum, line))
		} else {
			_, _ = os.Stdout.WriteString(line + "\n")
		}
	}
}

func formatWithLineNumber(lineNum int, content string) string {
	const lineNumWidth = 6
	const spacing = "  "
	return padLeft(lineNum, lineNumWidth) + spacing + content + "\n"
}

func padLeft(num, width int) string {
	s := strconv.Itoa(num)
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
