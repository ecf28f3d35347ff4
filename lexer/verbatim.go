package lexer

// VerbatimRegion is a non-overlapping half-open byte range identified by
// the Pass-0 scanner, per spec §4.1.
type VerbatimRegion struct {
	Start       int // byte offset of the opening colon-terminated line
	End         int // byte offset, exclusive, one past the region (including any label line)
	StartLine   int // line index of the opening line
	EndLine     int // line index one past the last line belonging to this region
	OpenIndent  int // column of the opening line
	Label       string
	Language    string
	ContentLine []lineRange // byte ranges of each content line, preserved exactly
}

type lineRange struct {
	Start, End int // exclusive of the trailing newline
}

// ScanVerbatimRegions is Pass 0: it identifies regions where normal
// lexing must be suspended, per spec §4.1.
//
// A region begins on a line whose non-whitespace content ends in a
// solitary colon (optionally preceded by a title phrase). Its content is
// every subsequent line indented strictly more than the opening line.
// It ends at a line at or below the opening column, or at a label line
// "(identifier)" at the opening column (inclusive).
func ScanVerbatimRegions(source []byte) []VerbatimRegion {
	lines := splitLines(source)

	var regions []VerbatimRegion
	i := 0
	for i < len(lines) {
		ln := lines[i]
		if isBlank(source[ln.Start:ln.End]) {
			i++
			continue
		}

		indent := leadingIndent(source[ln.Start:ln.End])
		trimmed := trimTrailingWhitespace(source[ln.Start:ln.End])

		if endsInSolitaryColon(trimmed, ln.Start) {
			// Look ahead: is there at least one more-indented
			// non-blank successor line? If not, this is NOT verbatim
			// (spec §4.1 edge case).
			next := i + 1
			for next < len(lines) && isBlank(source[lines[next].Start:lines[next].End]) {
				next++
			}
			if next < len(lines) && leadingIndent(source[lines[next].Start:lines[next].End]) > indent {
				region, consumed := scanRegion(source, lines, i, indent)
				region.StartLine = i
				region.EndLine = i + consumed
				regions = append(regions, region)
				i += consumed
				continue
			}
		}
		i++
	}

	return regions
}

// scanRegion consumes the verbatim region starting at line index start,
// returning the region and the number of lines consumed.
func scanRegion(source []byte, lines []lineRange, start, openIndent int) (VerbatimRegion, int) {
	region := VerbatimRegion{
		Start:      lines[start].Start,
		OpenIndent: openIndent,
	}

	i := start + 1
	for i < len(lines) {
		text := source[lines[i].Start:lines[i].End]
		if isBlank(text) {
			region.ContentLine = append(region.ContentLine, lineRange{lines[i].Start, lines[i].End})
			i++
			continue
		}

		indent := leadingIndent(text)
		if indent <= openIndent {
			// Could be a label line "(identifier)" at the opening indent.
			if indent == openIndent {
				if lang, ok := parseLabelLine(text); ok {
					region.Label = lang
					region.Language = lang
					region.End = lines[i].End
					return region, i - start + 1
				}
			}
			break
		}

		region.ContentLine = append(region.ContentLine, lineRange{lines[i].Start, lines[i].End})
		i++
	}

	if region.End == 0 {
		if len(region.ContentLine) > 0 {
			region.End = region.ContentLine[len(region.ContentLine)-1].End
		} else {
			region.End = lines[start].End
		}
	}

	return region, i - start
}

func splitLines(source []byte) []lineRange {
	var lines []lineRange
	start := 0
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			lines = append(lines, lineRange{start, i})
			start = i + 1
		}
	}
	if start <= len(source) {
		lines = append(lines, lineRange{start, len(source)})
	}
	return lines
}

func isBlank(line []byte) bool {
	for _, b := range line {
		if b != ' ' && b != '\t' && b != '\r' {
			return false
		}
	}
	return true
}

func leadingIndent(line []byte) int {
	col := 0
	for _, b := range line {
		switch b {
		case ' ':
			col++
		case '\t':
			col += 4 - (col % 4)
		default:
			return col
		}
	}
	return col
}

func trimTrailingWhitespace(line []byte) []byte {
	end := len(line)
	for end > 0 && (line[end-1] == ' ' || line[end-1] == '\t' || line[end-1] == '\r') {
		end--
	}
	return line[:end]
}

// endsInSolitaryColon reports whether trimmed ends in ':' that is not
// itself part of a "::" annotation/definition marker.
func endsInSolitaryColon(trimmed []byte, _ int) bool {
	if len(trimmed) == 0 || trimmed[len(trimmed)-1] != ':' {
		return false
	}
	if len(trimmed) >= 2 && trimmed[len(trimmed)-2] == ':' {
		return false // "::" is an annotation/definition marker, not verbatim
	}
	return true
}

// parseLabelLine recognizes a label line "(identifier)" and returns its
// identifier text.
func parseLabelLine(line []byte) (string, bool) {
	trimmed := trimTrailingWhitespace(line)
	start := 0
	for start < len(trimmed) && (trimmed[start] == ' ' || trimmed[start] == '\t') {
		start++
	}
	rest := trimmed[start:]
	if len(rest) < 2 || rest[0] != '(' || rest[len(rest)-1] != ')' {
		return "", false
	}
	ident := rest[1 : len(rest)-1]
	if len(ident) == 0 {
		return "", false
	}
	for _, b := range ident {
		if !isIdentByte(b) {
			return "", false
		}
	}
	return string(ident), true
}

// Contains reports whether offset falls within a scanned region
// (used by the lexer to suspend normal tokenization).
func (r VerbatimRegion) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}
