package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

const separator = "---"

var (
	ErrNoFrontmatter = errors.New("note has no frontmatter")
	ErrFieldNotFound = errors.New("frontmatter field not found")
)

// Header is the frontmatter preamble of a note. Raw spans the lines between
// the separators, trailing newline included, and is kept verbatim.
type Header struct {
	Raw     string
	Body    string
	Present bool

	rawStart int
}

// Field is one top-level scalar of a note's frontmatter together with the
// byte span of its value inside the note.
type Field struct {
	Key   string
	Value string
	Tag   string
	Kind  yaml.Kind

	start int
	end   int
}

func SplitHeader(content string) (Header, error) {
	open, rest, found := strings.Cut(content, "\n")
	if !found || strings.TrimRight(open, "\r") != separator {
		return Header{Body: content}, nil
	}
	rawStart := len(open) + 1
	offset := 0
	for {
		line, _, more := strings.Cut(rest[offset:], "\n")
		if strings.TrimRight(line, "\r") == separator {
			bodyStart := offset + len(line)
			if more {
				bodyStart++
			}
			return Header{
				Raw:      rest[:offset],
				Body:     rest[bodyStart:],
				Present:  true,
				rawStart: rawStart,
			}, nil
		}
		if !more {
			return Header{}, fmt.Errorf("invalid frontmatter: missing closing separator")
		}
		offset += len(line) + 1
	}
}

// FindField locates a top-level key of the note's frontmatter without
// reformatting anything around it.
func FindField(content, key string) (Field, error) {
	header, err := SplitHeader(content)
	if err != nil {
		return Field{}, err
	}
	if !header.Present {
		return Field{}, ErrNoFrontmatter
	}

	doc := yaml.Node{}
	if err := yaml.Unmarshal([]byte(header.Raw), &doc); err != nil {
		return Field{}, fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	if len(doc.Content) == 0 {
		return Field{}, fmt.Errorf("%w: %s", ErrFieldNotFound, key)
	}
	mapping := doc.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return Field{}, fmt.Errorf("frontmatter is not a mapping")
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		k, v := mapping.Content[i], mapping.Content[i+1]
		if k.Value != key {
			continue
		}
		field := Field{Key: key, Value: v.Value, Tag: v.ShortTag(), Kind: v.Kind}
		if v.Kind == yaml.ScalarNode && v.Style == 0 && v.Value != "" {
			start, ok := locate(header.Raw, v.Line, v.Column)
			if ok && strings.HasPrefix(header.Raw[start:], v.Value) {
				field.start = header.rawStart + start
				field.end = field.start + len(v.Value)
			}
		}
		return field, nil
	}
	return Field{}, fmt.Errorf("%w: %s", ErrFieldNotFound, key)
}

// Replaceable reports whether the field value can be rewritten in place.
func (f Field) Replaceable() bool {
	return f.end > f.start
}

// ReplaceField swaps the field's value for value, leaving every other byte of
// the note untouched.
func ReplaceField(content string, field Field, value string) (string, error) {
	if !field.Replaceable() || field.end > len(content) || content[field.start:field.end] != field.Value {
		return "", fmt.Errorf("field %q cannot be rewritten in place", field.Key)
	}
	return content[:field.start] + value + content[field.end:], nil
}

func RenderFrontmatter(meta map[string]any, body string) (string, error) {
	raw, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	buf := bytes.Buffer{}
	buf.WriteString(separator + "\n")
	buf.Write(raw)
	buf.WriteString(separator + "\n")
	if !strings.HasPrefix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString(body)
	return buf.String(), nil
}

// locate converts a 1-based yaml line/column (columns count runes) into a
// byte offset within raw.
func locate(raw string, line, column int) (int, bool) {
	offset := 0
	for l := 1; l < line; l++ {
		idx := strings.IndexByte(raw[offset:], '\n')
		if idx < 0 {
			return 0, false
		}
		offset += idx + 1
	}
	for c := 1; c < column; c++ {
		if offset >= len(raw) || raw[offset] == '\n' {
			return 0, false
		}
		_, size := utf8.DecodeRuneInString(raw[offset:])
		offset += size
	}
	return offset, true
}
