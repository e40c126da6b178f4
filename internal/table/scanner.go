package table

import (
	"fmt"
	"strings"
)

// source is the table text with comments blanked out. quoted marks bytes
// that sit inside a double-quoted literal; braces and commas there are data.
type source struct {
	text   string
	quoted []bool
}

// clean blanks out // and /* */ comments, keeping newlines so that byte
// offsets and line numbers still match the original input.
func clean(src string) source {
	out := []byte(src)
	quoted := make([]bool, len(src))

	blank := func(from, to int) {
		for j := from; j < to; j++ {
			if out[j] != '\n' {
				out[j] = ' '
			}
		}
	}

	for i := 0; i < len(src); i++ {
		switch {
		case src[i] == '/' && i+1 < len(src) && src[i+1] == '/':
			end := strings.IndexByte(src[i:], '\n')
			if end < 0 {
				end = len(src) - i
			}

			blank(i, i+end)
			i += end - 1
		case src[i] == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				blank(i, len(src))
				i = len(src)

				continue
			}

			blank(i, i+end+4)
			i += end + 3
		case src[i] == '"':
			quoted[i] = true

			for i++; i < len(src); i++ {
				quoted[i] = true
				if src[i] == '\\' && i+1 < len(src) {
					i++
					quoted[i] = true

					continue
				}

				if src[i] == '"' {
					break
				}
			}
		}
	}

	return source{text: string(out), quoted: quoted}
}

// block is one balanced top-level brace group, starting at the beginning of
// the line holding its opening brace so the declaration is included.
type block struct {
	source

	line int
}

func (s source) slice(from, to int) source {
	return source{text: s.text[from:to], quoted: s.quoted[from:to]}
}

// name returns the declared array name: the third whitespace separated
// token, cut at the first '['.
func (b block) name() string {
	tokens := strings.Fields(b.text)
	if len(tokens) < 3 {
		return ""
	}

	name, _, _ := strings.Cut(tokens[2], "[")

	return name
}

func splitBlocks(src source) ([]block, error) {
	var (
		blocks    []block
		depth     int
		lineStart int
		start     int
		line      = 1
		startLine int
	)

	for i := 0; i < len(src.text); i++ {
		c := src.text[i]
		if c == '\n' {
			line++
			if depth == 0 {
				lineStart = i + 1
			}
		}

		if src.quoted[i] {
			continue
		}

		switch c {
		case '{':
			if depth == 0 {
				start, startLine = lineStart, line
			}

			depth++
		case '}':
			if depth == 0 {
				return nil, fmt.Errorf("%w: unexpected '}' on line %d", ErrUnbalanced, line)
			}

			depth--
			if depth == 0 {
				blocks = append(blocks, block{source: src.slice(start, i+1), line: startLine})
				lineStart = i + 1
			}
		}
	}

	if depth != 0 {
		return nil, fmt.Errorf("%w: block starting on line %d is never closed", ErrUnbalanced, startLine)
	}

	return blocks, nil
}

// rawEntry is the comma separated content of one depth-2 brace group.
type rawEntry struct {
	fields []string
	line   int
}

// entries re-scans the block: bytes at depth 2 form the current entry and
// a '}' returning to depth 1 finishes it.
func (b block) entries() []rawEntry {
	var (
		out       []rawEntry
		depth     int
		buf       []byte
		mask      []bool
		line      = b.line
		entryLine int
	)

	for i := 0; i < len(b.text); i++ {
		c, q := b.text[i], b.quoted[i]
		if c == '\n' {
			line++
		}

		if c == '}' && !q {
			depth--
		}

		if depth == 2 {
			buf = append(buf, c)
			mask = append(mask, q)
		}

		if c == '{' && !q {
			depth++
			buf, mask = buf[:0], mask[:0]
			entryLine = line
		}

		if c == '}' && !q && depth == 1 {
			out = append(out, rawEntry{fields: splitFields(buf, mask), line: entryLine})
		}
	}

	return out
}

// splitFields splits on commas outside string literals and trims each field.
func splitFields(buf []byte, mask []bool) []string {
	var (
		fields []string
		from   int
	)

	for i, c := range buf {
		if c == ',' && !mask[i] {
			fields = append(fields, strings.TrimSpace(string(buf[from:i])))
			from = i + 1
		}
	}

	return append(fields, strings.TrimSpace(string(buf[from:])))
}
