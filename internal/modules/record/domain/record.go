package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/Aquid0/Prompt-Heatmap/internal/platform/errors"
	"github.com/Aquid0/Prompt-Heatmap/internal/platform/markdown"
)

const (
	Title     = "Writing Prompt"
	Extension = ".md"
)

// Document is one daily record note. Text is empty when the note does not
// exist yet.
type Document struct {
	Path    string
	DateKey string
	Text    string
}

// Record is what a daily record note holds: the answered counter from its
// header and the prompt labels recovered from its body.
type Record struct {
	Answered int
	Labels   []string
}

// Merge is the next text of a record after one prompt was added to it.
type Merge struct {
	Text     string
	IsNew    bool
	Answered int
}

// IndexEntry is the projection of a record kept in the sqlite index.
type IndexEntry struct {
	DateKey   string
	Day       time.Time
	Answered  int
	Prompts   int
	Path      string
	UpdatedAt time.Time
}

// FormatBlock wraps a prompt label between two thematic breaks.
func FormatBlock(label string) string {
	return "***\n\n" + label + "\n\n***\n"
}

// New renders the first version of a day's record.
func New(label, counterKey string) (string, error) {
	return markdown.RenderFrontmatter(map[string]any{counterKey: 1}, "# "+Title+"\n\n"+FormatBlock(label))
}

// Apply creates the record when existing is nil and appends to it otherwise.
func Apply(existing *string, label, counterKey string) (Merge, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Merge{}, fmt.Errorf("%w: prompt label is empty", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(counterKey) == "" {
		return Merge{}, fmt.Errorf("%w: counter field is empty", apperrors.ErrInvalidInput)
	}
	if existing == nil {
		text, err := New(label, counterKey)
		if err != nil {
			return Merge{}, err
		}
		return Merge{Text: text, IsNew: true, Answered: 1}, nil
	}
	return Append(*existing, label, counterKey)
}

// Append increments the counter in place and adds one block at the end of
// the note. The rest of the note is kept byte for byte.
func Append(text, label, counterKey string) (Merge, error) {
	answered, field, err := counter(text, counterKey)
	if err != nil {
		return Merge{}, err
	}
	if !field.Replaceable() {
		return Merge{}, fmt.Errorf("%w: %s cannot be rewritten in place", apperrors.ErrMalformedRecord, counterKey)
	}
	next, err := markdown.ReplaceField(text, field, strconv.Itoa(answered+1))
	if err != nil {
		return Merge{}, fmt.Errorf("%w: %v", apperrors.ErrMalformedRecord, err)
	}
	return Merge{
		Text:     markdown.AppendBlock(next, FormatBlock(label)),
		Answered: answered + 1,
	}, nil
}

func Parse(text, counterKey string) (Record, error) {
	answered, _, err := counter(text, counterKey)
	if err != nil {
		return Record{}, err
	}
	header, err := markdown.SplitHeader(text)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", apperrors.ErrMalformedRecord, err)
	}
	return Record{Answered: answered, Labels: Blocks(header.Body)}, nil
}

func counter(text, key string) (int, markdown.Field, error) {
	field, err := markdown.FindField(text, key)
	switch {
	case errors.Is(err, markdown.ErrNoFrontmatter):
		return 0, markdown.Field{}, fmt.Errorf("%w: no frontmatter", apperrors.ErrMalformedRecord)
	case errors.Is(err, markdown.ErrFieldNotFound):
		return 0, markdown.Field{}, fmt.Errorf("%w: %s is missing", apperrors.ErrMalformedRecord, key)
	case err != nil:
		return 0, markdown.Field{}, fmt.Errorf("%w: %v", apperrors.ErrMalformedRecord, err)
	}
	if !field.Int() {
		return 0, markdown.Field{}, fmt.Errorf("%w: %s is %q, not an integer", apperrors.ErrMalformedRecord, key, field.Value)
	}
	n, err := strconv.Atoi(field.Value)
	if err != nil || n < 0 {
		return 0, markdown.Field{}, fmt.Errorf("%w: %s is %q, not a count", apperrors.ErrMalformedRecord, key, field.Value)
	}
	return n, field, nil
}
