package runner

import "strings"

// OutputKind tags the form captured output arrived in
type OutputKind int

const (
	// KindText is a single string of output
	KindText OutputKind = iota
	// KindLines is an ordered sequence of text chunks
	KindLines
	// KindBytes is raw captured bytes
	KindBytes
	// KindUnrecognized is anything else; it normalizes to the empty string
	KindUnrecognized
)

// Output is a tagged union over the forms captured stdout/stderr can take.
// Conversion to a string is total: every kind has a defined normalization.
type Output struct {
	kind  OutputKind
	text  string
	lines []string
	raw   []byte
}

// Text wraps a single string of output
func Text(s string) Output {
	return Output{kind: KindText, text: s}
}

// Lines wraps an ordered sequence of text chunks
func Lines(chunks []string) Output {
	return Output{kind: KindLines, lines: chunks}
}

// Bytes wraps raw captured bytes
func Bytes(b []byte) Output {
	return Output{kind: KindBytes, raw: b}
}

// Unrecognized wraps output of no known form
func Unrecognized() Output {
	return Output{kind: KindUnrecognized}
}

// From classifies an arbitrary captured value into the union
func From(v any) Output {
	switch val := v.(type) {
	case string:
		return Text(val)
	case []string:
		return Lines(val)
	case []byte:
		return Bytes(val)
	default:
		return Unrecognized()
	}
}

// Kind returns the tag
func (o Output) Kind() OutputKind {
	return o.kind
}

// String normalizes the output to a single string: text unchanged, chunk
// sequences joined with newlines, raw bytes decoded as text, anything
// unrecognized empty.
func (o Output) String() string {
	switch o.kind {
	case KindText:
		return o.text
	case KindLines:
		return strings.Join(o.lines, "\n")
	case KindBytes:
		return string(o.raw)
	default:
		return ""
	}
}
