package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"algoviz/internal/preflight"
	"algoviz/internal/viz"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
	// statusFallback marks a request answered with the degraded document.
	statusFallback
	// statusOff marks a feature switched off in config.
	statusOff
)

const (
	ansiReset   = "\x1b[0m"
	ansiRed     = "\x1b[31m"
	ansiGreen   = "\x1b[32m"
	ansiYellow  = "\x1b[33m"
	ansiBlue    = "\x1b[34m"
	ansiMagenta = "\x1b[35m"
	ansiDim     = "\x1b[2m"
)

const (
	statusLabelWidth = 16
	statusIndent     = "  "
)

var statusStyles = map[statusKind]struct{ tag, color string }{
	statusInfo:     {"INFO", ansiBlue},
	statusOK:       {"OK", ansiGreen},
	statusWarn:     {"WARN", ansiYellow},
	statusError:    {"ERROR", ansiRed},
	statusFallback: {"FALLBACK", ansiMagenta},
	statusOff:      {"OFF", ansiDim},
}

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	style, ok := statusStyles[kind]
	if !ok {
		style = statusStyles[statusInfo]
	}
	statusText := "[" + style.tag + "]"
	if message != "" {
		statusText += " " + message
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		return style.color + base + ansiReset
	}
	return base
}

// documentStatus summarizes a generated document for the Result line.
func documentStatus(doc viz.Document) (statusKind, string) {
	meta := doc.Metadata
	if meta.IsFallback {
		return statusFallback, meta.Error
	}
	message := fmt.Sprintf("%d frames, %s complexity", meta.TotalFrames, meta.Complexity)
	if meta.TotalFrames == 1 {
		return statusWarn, message + " (single frame)"
	}
	return statusOK, message
}

func checkStatus(r preflight.Result) statusKind {
	if r.Passed {
		return statusOK
	}
	return statusError
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

// shouldColorize reports whether writer is a terminal and NO_COLOR is unset.
func shouldColorize(writer io.Writer) bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
