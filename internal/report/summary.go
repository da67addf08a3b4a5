package report

import (
	"fmt"
	"strings"
)

// Summary is a structured summary document assembled block by block and
// rendered as Markdown. Supported blocks: headings, raw text, bulleted
// lists, and labeled code blocks.
type Summary struct {
	blocks []string
}

// NewSummary creates an empty summary document
func NewSummary() *Summary {
	return &Summary{}
}

// Heading appends a heading with the given level (1-6, clamped)
func (s *Summary) Heading(level int, text string) *Summary {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	s.blocks = append(s.blocks, strings.Repeat("#", level)+" "+text)
	return s
}

// Text appends a raw text block
func (s *Summary) Text(text string) *Summary {
	s.blocks = append(s.blocks, text)
	return s
}

// List appends a bulleted list
func (s *Summary) List(items ...string) *Summary {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	s.blocks = append(s.blocks, strings.Join(lines, "\n"))
	return s
}

// Code appends a fenced code block with a language hint
func (s *Summary) Code(lang, content string) *Summary {
	s.blocks = append(s.blocks, fmt.Sprintf("```%s\n%s\n```", lang, strings.TrimRight(content, "\n")))
	return s
}

// Markdown renders the document
func (s *Summary) Markdown() string {
	return strings.Join(s.blocks, "\n\n") + "\n"
}

// Empty reports whether any block was added
func (s *Summary) Empty() bool {
	return len(s.blocks) == 0
}
