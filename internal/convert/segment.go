package convert

import (
	"regexp"
	"strings"
)

var (
	headingRe = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	fenceRe   = regexp.MustCompile("^\\s*(`{3,}|~{3,})\\s*(\\S*)\\s*$")
	bulletRe  = regexp.MustCompile(`^(\s*)([-*+])( +)(.*)$`)
	numberRe  = regexp.MustCompile(`^(\s*)(\d+)\.( +)(.*)$`)
)

// segmentBlocks splits markdown source into an ordered block sequence.
// depth tracks blockquote/list recursion against maxNestingDepth.
func segmentBlocks(src string, depth int) ([]block, error) {
	if depth > maxNestingDepth {
		return nil, ErrNestingTooDeep
	}

	lines := strings.Split(src, "\n")
	var blocks []block
	i := 0

	for i < len(lines) {
		line := strings.TrimRight(lines[i], " \t")

		// Blank lines separate blocks and produce no node.
		if line == "" {
			i++
			continue
		}

		// Heading
		if m := headingRe.FindStringSubmatch(line); m != nil {
			blocks = append(blocks, block{
				kind:  blockHeading,
				level: len(m[1]),
				text:  strings.TrimSpace(m[2]),
			})
			i++
			continue
		}

		// Fenced code block. An unterminated fence consumes the rest of
		// the input; that is recovery, not an error.
		if m := fenceRe.FindStringSubmatch(line); m != nil {
			fence := m[1]
			var codeLines []string
			i++
			for i < len(lines) {
				if closesFence(lines[i], fence) {
					i++
					break
				}
				codeLines = append(codeLines, lines[i])
				i++
			}
			blocks = append(blocks, block{
				kind:     blockCode,
				language: m[2],
				code:     strings.Join(codeLines, "\n"),
			})
			continue
		}

		// Blockquote: consecutive > lines, marker stripped, recursively
		// segmented.
		if strings.HasPrefix(line, ">") {
			var quoteLines []string
			for i < len(lines) {
				l := strings.TrimRight(lines[i], " \t")
				if !strings.HasPrefix(l, ">") {
					break
				}
				l = strings.TrimPrefix(l, ">")
				l = strings.TrimPrefix(l, " ")
				quoteLines = append(quoteLines, l)
				i++
			}
			children, err := segmentBlocks(strings.Join(quoteLines, "\n"), depth+1)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, block{kind: blockQuote, children: children})
			continue
		}

		// Horizontal rule. Checked before lists so "* * *" is a rule,
		// not a bullet item.
		if isRuleLine(line) {
			blocks = append(blocks, block{kind: blockRule})
			i++
			continue
		}

		// List run
		if _, ok := matchMarker(line); ok {
			b, newI, err := parseList(lines, i, depth)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, b)
			i = newI
			continue
		}

		// Paragraph: accumulate until a blank line or another block start.
		var paraLines []string
		for i < len(lines) {
			l := strings.TrimRight(lines[i], " \t")
			if l == "" || startsBlock(l) {
				break
			}
			paraLines = append(paraLines, l)
			i++
		}
		blocks = append(blocks, block{kind: blockParagraph, lines: paraLines})
	}

	return blocks, nil
}

// startsBlock reports whether a line would terminate a paragraph by
// starting a higher-priority block.
func startsBlock(line string) bool {
	if headingRe.MatchString(line) || fenceRe.MatchString(line) {
		return true
	}
	if strings.HasPrefix(line, ">") {
		return true
	}
	if _, ok := matchMarker(line); ok {
		return true
	}
	return isRuleLine(line)
}

// closesFence reports whether a line closes a fence opened with the given
// delimiter run (same character, same or greater length, nothing else).
func closesFence(line, fence string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < len(fence) {
		return false
	}
	ch := fence[0]
	for j := 0; j < len(trimmed); j++ {
		if trimmed[j] != ch {
			return false
		}
	}
	return true
}

// isRuleLine matches three or more of the same -, *, or _ character,
// optionally space-separated, and nothing else.
func isRuleLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	var ch byte
	count := 0
	for j := 0; j < len(trimmed); j++ {
		c := trimmed[j]
		if c == ' ' {
			continue
		}
		if c != '-' && c != '*' && c != '_' {
			return false
		}
		if ch == 0 {
			ch = c
		} else if c != ch {
			return false
		}
		count++
	}
	return count >= 3
}

// marker describes a list marker line.
type marker struct {
	indent  int    // column of the marker itself
	width   int    // columns from marker to item content
	ordered bool
	content string // text after the marker
}

// matchMarker parses a bullet or numbered list marker line.
func matchMarker(line string) (marker, bool) {
	if m := bulletRe.FindStringSubmatch(line); m != nil {
		return marker{
			indent:  columns(m[1]),
			width:   len(m[2]) + len(m[3]),
			ordered: false,
			content: m[4],
		}, true
	}
	if m := numberRe.FindStringSubmatch(line); m != nil {
		return marker{
			indent:  columns(m[1]),
			width:   len(m[2]) + 1 + len(m[3]),
			ordered: true,
			content: m[4],
		}, true
	}
	return marker{}, false
}

// columns counts indentation columns, expanding tabs to 4.
func columns(ws string) int {
	n := 0
	for _, r := range ws {
		if r == '\t' {
			n += 4
		} else {
			n++
		}
	}
	return n
}

// indentOf returns the indentation column of the first non-space character.
func indentOf(line string) int {
	i := 0
	n := 0
	for i < len(line) {
		switch line[i] {
		case ' ':
			n++
		case '\t':
			n += 4
		default:
			return n
		}
		i++
	}
	return n
}

// dedent strips up to col columns of leading whitespace.
func dedent(line string, col int) string {
	i := 0
	removed := 0
	for i < len(line) && removed < col {
		switch line[i] {
		case ' ':
			removed++
		case '\t':
			removed += 4
		default:
			return line[i:]
		}
		i++
	}
	return line[i:]
}

// Common markdown info-string aliases mapped to the language identifiers
// JIRA's code block highlighter recognizes.
var languageAliases = map[string]string{
	"golang": "go",
	"js":     "javascript",
	"ts":     "typescript",
	"py":     "python",
	"rb":     "ruby",
	"sh":     "bash",
	"shell":  "bash",
	"zsh":    "bash",
	"yml":    "yaml",
	"ps1":    "powershell",
	"c++":    "cpp",
	"md":     "markdown",
	"txt":    "text",
}

func normalizeLanguage(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if norm, ok := languageAliases[tag]; ok {
		return norm
	}
	return tag
}
