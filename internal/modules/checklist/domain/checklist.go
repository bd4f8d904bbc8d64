package domain

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"unicode"

	apperrors "github.com/Aquid0/Prompt-Heatmap/internal/platform/errors"
)

type Kind int

const (
	KindOther Kind = iota
	KindCheckbox
)

type Status int

const (
	StatusPending Status = iota
	StatusDone
)

func (s Status) String() string {
	if s == StatusDone {
		return "done"
	}
	return "pending"
}

// checkbox is matched against a whitespace-trimmed line. Only a line that is
// itself a checkbox qualifies; checkbox-like text later in a line does not.
var checkbox = regexp.MustCompile(`^(- )?\[([ xX])\](.*)$`)

// Document is the raw checklist note.
type Document struct {
	Path string
	Text string
}

type Line struct {
	Index  int
	Kind   Kind
	Status Status
	Label  string
	Text   string
}

// Entry is a pending checkbox that can be drawn.
type Entry struct {
	LineIndex int
	Label     string
}

type Selection struct {
	Entry       Entry
	UpdatedText string
}

type Stats struct {
	Lines    int
	Pending  int
	Done     int
	Eligible int
}

// Rand draws a uniform integer in [0, n). *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand uses the runtime-seeded global source.
var DefaultRand Rand = globalRand{}

func Classify(text string) []Line {
	raw := strings.Split(text, "\n")
	lines := make([]Line, len(raw))
	for i, line := range raw {
		lines[i] = classifyLine(i, line)
	}
	return lines
}

func classifyLine(index int, text string) Line {
	line := Line{Index: index, Kind: KindOther, Text: text}
	m := checkbox.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return line
	}
	line.Kind = KindCheckbox
	line.Label = strings.TrimSpace(m[3])
	if m[2] != " " {
		line.Status = StatusDone
	}
	return line
}

// Eligible lists pending checkboxes in document order. Checkboxes without a
// label are skipped.
func Eligible(text string) []Entry {
	var out []Entry
	for _, line := range Classify(text) {
		if line.eligible() {
			out = append(out, Entry{LineIndex: line.Index, Label: line.Label})
		}
	}
	return out
}

// A blank label is never drawable: the record merger rejects empty labels
// (record/domain.Apply), so drawing one would tick a box and then fail.
func (l Line) eligible() bool {
	return l.Kind == KindCheckbox && l.Status == StatusPending && l.Label != ""
}

func Summarize(text string) Stats {
	lines := Classify(text)
	stats := Stats{Lines: len(lines)}
	for _, line := range lines {
		if line.Kind != KindCheckbox {
			continue
		}
		if line.Status == StatusDone {
			stats.Done++
			continue
		}
		stats.Pending++
		if line.eligible() {
			stats.Eligible++
		}
	}
	return stats
}

// Pick draws one eligible entry uniformly and ticks it. Only the bracket
// character of the chosen line changes; every other byte is kept.
func Pick(text string, rng Rand) (Selection, error) {
	if rng == nil {
		rng = DefaultRand
	}
	eligible := Eligible(text)
	if len(eligible) == 0 {
		return Selection{}, apperrors.ErrNoEligibleEntries
	}
	n := rng.IntN(len(eligible))
	if n < 0 || n >= len(eligible) {
		return Selection{}, fmt.Errorf("random source returned %d for %d entries", n, len(eligible))
	}
	chosen := eligible[n]

	lines := strings.Split(text, "\n")
	ticked, err := tick(lines[chosen.LineIndex])
	if err != nil {
		return Selection{}, err
	}
	lines[chosen.LineIndex] = ticked
	return Selection{Entry: chosen, UpdatedText: strings.Join(lines, "\n")}, nil
}

func tick(line string) (string, error) {
	lead := len(line) - len(strings.TrimLeftFunc(line, unicode.IsSpace))
	pos := lead
	if strings.HasPrefix(line[lead:], "- ") {
		pos += 2
	}
	if !strings.HasPrefix(line[pos:], "[ ]") {
		return "", fmt.Errorf("line %q is not a pending checkbox", line)
	}
	pos++
	return line[:pos] + "x" + line[pos+1:], nil
}
