package markdown

// Section is a header with computed boundaries and hierarchy. LineStart is
// the header's own line; LineEnd is inclusive and covers all descendant
// content up to the next same-or-shallower header.
type Section struct {
	Text      string
	Level     int
	LineStart int
	LineEnd   int
	Parent    int // index of the parent section in the slice, -1 for roots
}

// ComputeBoundaries converts the ordered header sequence into sections with
// end lines. A section ends one line before the next header whose level is
// less than or equal to its own, or at end of file when no such header
// exists. Zero headers produce an empty list.
func ComputeBoundaries(headers []HeaderOccurrence, totalLines int) []Section {
	if len(headers) == 0 {
		return nil
	}
	sections := make([]Section, 0, len(headers))
	for i, h := range headers {
		lineEnd := totalLines
		for _, next := range headers[i+1:] {
			if next.Level <= h.Level {
				lineEnd = next.Line - 1
				break
			}
		}
		sections = append(sections, Section{
			Text:      h.Text,
			Level:     h.Level,
			LineStart: h.Line,
			LineEnd:   lineEnd,
			Parent:    -1,
		})
	}
	return sections
}

// BuildHierarchy assigns parent indexes in place using an explicit stack of
// (level, index) pairs. Entries at the same or deeper level cannot be
// ancestors and are popped before the parent is read off the top, so
// non-monotonic sequences (H1 -> H3 -> H2) resolve correctly. Every parent
// index points to an earlier section.
func BuildHierarchy(sections []Section) {
	type frame struct {
		level int
		index int
	}
	var stack []frame
	for i := range sections {
		for len(stack) > 0 && stack[len(stack)-1].level >= sections[i].Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 {
			sections[i].Parent = stack[len(stack)-1].index
		} else {
			sections[i].Parent = -1
		}
		stack = append(stack, frame{level: sections[i].Level, index: i})
	}
}

// Parse runs the full header pipeline over raw document content: scan,
// boundary calculation, hierarchy assignment.
func Parse(content string) []Section {
	lines := SplitLines(content)
	var headers []HeaderOccurrence
	for h := range Headers(lines) {
		headers = append(headers, h)
	}
	sections := ComputeBoundaries(headers, len(lines))
	BuildHierarchy(sections)
	return sections
}
