// Package repair recovers JSON objects from model output that is close to,
// but not quite, valid JSON.
//
// Decoding is a chain where each step runs only when the previous one failed:
// parse as-is; strip code fences, drop trailing commas and close unbalanced
// braces and brackets; finally cut the text at its last '}' and repair again.
// The balance pass skips string literals but is still a textual heuristic.
package repair

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Stage reports which step of the chain produced a value.
type Stage int

const (
	StageFailed Stage = iota
	StageDirect
	StageRepaired
	StageTruncated
)

func (s Stage) String() string {
	switch s {
	case StageDirect:
		return "direct"
	case StageRepaired:
		return "repaired"
	case StageTruncated:
		return "truncated"
	default:
		return "failed"
	}
}

// minTruncateOffset keeps truncation from cutting at a stray early brace.
const minTruncateOffset = 100

var (
	// ErrUnrecoverable is returned once every step of the chain failed.
	ErrUnrecoverable = errors.New("json unrecoverable after repair")

	trailingComma = regexp.MustCompile(`,(\s*[}\]])`)
)

// Decode unmarshals text into target using the repair chain. Candidates are
// checked for syntax first so target is written at most once.
func Decode(text string, target any) (Stage, error) {
	payload, stage, err := Recover(text)
	if err != nil {
		return stage, err
	}
	if err := json.Unmarshal([]byte(payload), target); err != nil {
		return StageFailed, fmt.Errorf("%w: %v (payload snippet: %s)", ErrUnrecoverable, err, Snippet(payload))
	}
	return stage, nil
}

// Recover returns the first syntactically valid JSON text produced by the
// chain.
func Recover(text string) (string, Stage, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", StageFailed, fmt.Errorf("%w: empty payload", ErrUnrecoverable)
	}
	if json.Valid([]byte(trimmed)) {
		return trimmed, StageDirect, nil
	}
	repaired := Repair(trimmed)
	if json.Valid([]byte(repaired)) {
		return repaired, StageRepaired, nil
	}
	if last := strings.LastIndex(trimmed, "}"); last > minTruncateOffset {
		if truncated := Repair(trimmed[:last+1]); json.Valid([]byte(truncated)) {
			return truncated, StageTruncated, nil
		}
	}
	return "", StageFailed, fmt.Errorf("%w (payload snippet: %s)", ErrUnrecoverable, Snippet(repaired))
}

// Repair applies the textual fixes: fence stripping, leading prose removal,
// trailing comma removal and closing of unbalanced structures.
func Repair(text string) string {
	out := StripCodeFence(text)
	if start := strings.IndexAny(out, "{["); start > 0 {
		out = out[start:]
	}
	out = trailingComma.ReplaceAllString(out, "$1")
	return out + closers(out)
}

// StripCodeFence removes a surrounding ``` or ```json fence.
func StripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	body := strings.TrimLeft(trimmed[3:], " \t\r\n")
	if len(body) >= 4 && strings.EqualFold(body[:4], "json") {
		body = strings.TrimLeft(body[4:], " \t\r\n")
	}
	if idx := strings.LastIndex(body, "```"); idx >= 0 {
		body = body[:idx]
	}
	return strings.TrimSpace(body)
}

// closers returns the suffix that closes every structure left open, in
// nesting order. An unterminated string is closed first.
func closers(text string) string {
	var stack []byte
	inString, escaped := false, false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) > 0 && stack[len(stack)-1] == c {
				stack = stack[:len(stack)-1]
			}
		}
	}
	var b strings.Builder
	if inString {
		b.WriteByte('"')
	}
	for i := len(stack) - 1; i >= 0; i-- {
		b.WriteByte(stack[i])
	}
	return b.String()
}

// Snippet shortens a payload for error messages and logs.
func Snippet(content string) string {
	const limit = 160
	trimmed := strings.Join(strings.Fields(content), " ")
	if len(trimmed) <= limit {
		return trimmed
	}
	return trimmed[:limit] + "..."
}
