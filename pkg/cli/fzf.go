package cli

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Fepozopo/grade/pkg/grade"
)

// SelectParamWithFzf lists the adjustable parameters in fzf, each with its
// current value, and returns the selected parameter name.
func SelectParamWithFzf(s grade.Settings) (string, error) {
	cmd := exec.Command("fzf", "--prompt=Adjust> ")
	cmd.Stdin = strings.NewReader(paramMenu(s))
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error running fzf: %w", err)
	}
	selection := strings.TrimSpace(out.String())
	name, _, _ := strings.Cut(selection, ":")
	if name = strings.TrimSpace(name); name != "" {
		return name, nil
	}
	return "", fmt.Errorf("no parameter selected")
}

// paramMenu formats one "name: value - description" line per parameter.
func paramMenu(s grade.Settings) string {
	var b strings.Builder
	for _, p := range grade.Params {
		fmt.Fprintf(&b, "%s: %s - %s\n", p.Name, p.Format(p.Value(s)), p.Description)
	}
	return b.String()
}

// SelectFileWithFzf launches fzf over the image files found under startDir
// and returns the selected path. It needs find and fzf in PATH; the preview
// pane uses kitty icat, imgcat or chafa depending on the terminal.
func SelectFileWithFzf(startDir string) (string, error) {
	var previewCmd string
	switch {
	case isKitty():
		previewCmd = "printf \"\\x1b_Ga=d\\x1b\\\\\"; kitty +kitten icat --silent {} 2>/dev/null || chafa --fill=block --symbols=block -s 80x40 {} 2>/dev/null"
	case isInlineImageCapable():
		previewCmd = "imgcat {} 2>/dev/null || chafa --fill=block --symbols=block -s 80x40 {} 2>/dev/null"
	default:
		previewCmd = "chafa --fill=block --symbols=block -s 80x40 {} 2>/dev/null"
	}

	cmdStr := fmt.Sprintf(
		"find %s -type f \\( -iname '*.jpg' -o -iname '*.jpeg' -o -iname '*.png' -o -iname '*.gif' -o -iname '*.bmp' -o -iname '*.tif' -o -iname '*.tiff' -o -iname '*.webp' \\) | fzf --height 100%% --border --prompt='Files> ' --ansi --preview=%q --preview-window='right:60%%'",
		strconv.Quote(startDir),
		previewCmd,
	)
	cmd := exec.Command("bash", "-lc", cmdStr)
	var out bytes.Buffer
	cmd.Stdout = &out
	err := cmd.Run()
	clearKittyImages()
	if err != nil {
		return "", fmt.Errorf("error running fzf for files: %w", err)
	}
	selection := strings.TrimSpace(out.String())
	if selection == "" {
		return "", fmt.Errorf("no file selected")
	}
	return selection, nil
}

// clearKittyImages emits the kitty graphics "delete" control sequence.
// Terminals that don't understand it will ignore it.
func clearKittyImages() {
	if isKitty() {
		fmt.Fprint(os.Stdout, "\x1b_Ga=d\x1b\\")
	}
}
