package markdown

import (
	"iter"
	"strings"
)

// HeaderOccurrence is a single ATX header found in a document.
type HeaderOccurrence struct {
	Text  string
	Level int // 1-6 for H1-H6
	Line  int // 1-indexed line number
}

// Headers returns an iterator over the ATX headers (H1-H6) in lines.
// A line is a header when it begins with 1-6 '#' characters followed by
// whitespace and non-empty text. Lines inside fenced code blocks are
// skipped; the fence state toggles on every line starting with ```.
// The returned sequence is restartable and has no side effects.
func Headers(lines []string) iter.Seq[HeaderOccurrence] {
	return func(yield func(HeaderOccurrence) bool) {
		inFence := false
		for i, line := range lines {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, "```") {
				inFence = !inFence
				continue
			}
			if inFence {
				continue
			}
			occ, ok := parseHeaderLine(trimmed, i+1)
			if !ok {
				continue
			}
			if !yield(occ) {
				return
			}
		}
	}
}

// parseHeaderLine parses a whitespace-trimmed line as an ATX header.
func parseHeaderLine(trimmed string, lineNo int) (HeaderOccurrence, bool) {
	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level < 1 || level > 6 {
		return HeaderOccurrence{}, false
	}
	rest := trimmed[level:]
	if rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return HeaderOccurrence{}, false
	}
	text := strings.TrimSpace(rest)
	if text == "" {
		return HeaderOccurrence{}, false
	}
	return HeaderOccurrence{Text: text, Level: level, Line: lineNo}, true
}

// SplitLines splits raw document content into 1-indexed-addressable lines.
// An empty document yields no lines; a trailing newline does not produce a
// phantom final line.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// FenceMask reports, for each line, whether it lies inside a fenced code
// block. Fence delimiter lines themselves are marked true so they are never
// treated as data.
func FenceMask(lines []string) []bool {
	mask := make([]bool, len(lines))
	inFence := false
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			mask[i] = true
			inFence = !inFence
			continue
		}
		mask[i] = inFence
	}
	return mask
}
