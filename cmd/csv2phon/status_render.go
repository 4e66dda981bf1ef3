package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"csv2phon/internal/importer"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 24
	statusIndent     = "  "
)

// statusStyles maps each kind to its bracketed label and terminal color.
var statusStyles = map[statusKind]struct{ label, color string }{
	statusInfo:  {"INFO", ansiBlue},
	statusOK:    {"OK", ansiGreen},
	statusWarn:  {"WARN", ansiYellow},
	statusError: {"ERROR", ansiRed},
}

// renderStatusLine formats "  label:   [KIND] message" with the label padded
// so status columns align across lines.
func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	style, ok := statusStyles[kind]
	if !ok {
		style = statusStyles[statusInfo]
	}
	var b strings.Builder
	if colorize {
		b.WriteString(style.color)
	}
	fmt.Fprintf(&b, "%s%-*s [%s]", statusIndent, statusLabelWidth, label+":", style.label)
	if message != "" {
		b.WriteByte(' ')
		b.WriteString(message)
	}
	if colorize {
		b.WriteString(ansiReset)
	}
	return b.String()
}

// fileStatus classifies one import result for the summary lines.
func fileStatus(res importer.FileResult) (statusKind, string) {
	switch {
	case res.Err != nil:
		if kind := importer.Kind(res.Err); kind != "" {
			return statusError, fmt.Sprintf("%s: %v", kind, res.Err)
		}
		return statusError, res.Err.Error()
	case !res.Saved:
		return statusWarn, "session locked, not saved"
	default:
		parts := []string{fmt.Sprintf("%d records", res.Records)}
		if res.Aligned > 0 {
			parts = append(parts, fmt.Sprintf("%d aligned", res.Aligned))
		}
		if res.Warnings == 0 {
			return statusOK, strings.Join(parts, ", ")
		}
		parts = append(parts, humanize.Plural(res.Warnings, "warning", ""))
		return statusWarn, strings.Join(parts, ", ")
	}
}

func renderSectionHeader(title string, colorize bool) []string {
	line := "== " + strings.TrimSpace(title) + " =="
	rule := strings.Repeat("-", utf8.RuneCountInString(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

func shouldColorize(writer io.Writer) bool {
	if _, disabled := os.LookupEnv("NO_COLOR"); disabled {
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
