package convert

import "strings"

// tokenizeInline scans one logical line into an ordered span sequence
// covering the full input. Precedence is resolved left to right: code
// spans shield their contents from every other rule, images are detected
// before links, link text is re-tokenized for emphasis but not for links,
// and bold is tried before italic at each delimiter (longest match).
// A delimiter with no closer on the line is emitted as literal text.
func tokenizeInline(text string, depth int, allowLinks bool) ([]span, error) {
	if depth > maxNestingDepth {
		return nil, ErrNestingTooDeep
	}

	var out []span
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			out = append(out, span{kind: spanText, text: plain.String()})
			plain.Reset()
		}
	}

	i := 0
	for i < len(text) {
		c := text[i]
		switch {
		case c == '`':
			// Code span: one or more backticks, closed by a run of equal
			// length. Content is literal.
			n := runLength(text, i, '`')
			if j := findBacktickRun(text, i+n, n); j >= 0 {
				flush()
				out = append(out, span{kind: spanCode, text: text[i+n : j]})
				i = j + n
			} else {
				plain.WriteString(text[i : i+n])
				i += n
			}

		case c == '!' && i+1 < len(text) && text[i+1] == '[':
			alt, href, end, ok := parseBracketPair(text, i+1)
			if ok {
				flush()
				out = append(out, span{kind: spanImage, text: alt, href: href})
				i = end
			} else {
				plain.WriteByte(c)
				i++
			}

		case c == '[':
			label, href, end, ok := parseBracketPair(text, i)
			if ok && allowLinks {
				children, err := tokenizeInline(label, depth+1, false)
				if err != nil {
					return nil, err
				}
				flush()
				out = append(out, span{kind: spanLink, href: href, children: children})
				i = end
			} else {
				plain.WriteByte(c)
				i++
			}

		case c == '~' && i+1 < len(text) && text[i+1] == '~':
			inner, end, ok := matchDelimited(text, i, "~~")
			if ok {
				children, err := tokenizeInline(inner, depth+1, allowLinks)
				if err != nil {
					return nil, err
				}
				flush()
				out = append(out, span{kind: spanStrike, children: children})
				i = end
			} else {
				plain.WriteString("~~")
				i += 2
			}

		case c == '*' || c == '_':
			sp, end, ok, err := matchEmphasis(text, i, depth, allowLinks)
			if err != nil {
				return nil, err
			}
			if ok {
				flush()
				out = append(out, sp)
				i = end
			} else {
				plain.WriteByte(c)
				i++
			}

		default:
			plain.WriteByte(c)
			i++
		}
	}
	flush()

	return mergeText(out), nil
}

// matchEmphasis resolves a * or _ delimiter at position i. The double form
// (bold) is tried first; if it has no closer the single form (italic) is
// tried. Underscores flanked by word characters stay literal so that
// identifiers like snake_case survive.
func matchEmphasis(text string, i, depth int, allowLinks bool) (span, int, bool, error) {
	d := text[i]

	if d == '_' && i > 0 && isWordByte(text[i-1]) {
		return span{}, 0, false, nil
	}

	// Bold: **…** or __…__
	if i+1 < len(text) && text[i+1] == d {
		double := string([]byte{d, d})
		inner, end, ok := matchDelimited(text, i, double)
		if ok && !strings.HasPrefix(inner, " ") && !strings.HasSuffix(inner, " ") {
			children, err := tokenizeInline(inner, depth+1, allowLinks)
			if err != nil {
				return span{}, 0, false, err
			}
			return span{kind: spanBold, children: children}, end, true, nil
		}
		return span{}, 0, false, nil
	}

	// Italic: *…* or _…_. A delimiter next to a space does not open or
	// close emphasis, so "5 * 3 * 2" stays literal.
	if i+1 >= len(text) || text[i+1] == ' ' {
		return span{}, 0, false, nil
	}
	for j := i + 1; j < len(text); j++ {
		if text[j] != d {
			continue
		}
		if j == i+1 {
			break // empty emphasis, treat opener as literal
		}
		if text[j-1] == ' ' {
			continue
		}
		if d == '_' && j+1 < len(text) && isWordByte(text[j+1]) {
			continue
		}
		children, err := tokenizeInline(text[i+1:j], depth+1, allowLinks)
		if err != nil {
			return span{}, 0, false, err
		}
		return span{kind: spanItalic, children: children}, j + 1, true, nil
	}
	return span{}, 0, false, nil
}

// matchDelimited finds the closing occurrence of delim for an opener at i
// and returns the inner text and the index just past the closer. Empty
// inner text counts as no match.
func matchDelimited(text string, i int, delim string) (string, int, bool) {
	start := i + len(delim)
	rel := strings.Index(text[start:], delim)
	if rel <= 0 {
		return "", 0, false
	}
	return text[start : start+rel], start + rel + len(delim), true
}

// parseBracketPair parses [label](target) with the opening bracket at i.
// Neither nested brackets in the label nor parentheses in the target are
// supported. Returns the label, target, and index past the closing paren.
func parseBracketPair(text string, i int) (string, string, int, bool) {
	rb := strings.IndexByte(text[i:], ']')
	if rb < 0 {
		return "", "", 0, false
	}
	rb += i
	if rb+1 >= len(text) || text[rb+1] != '(' {
		return "", "", 0, false
	}
	end := strings.IndexByte(text[rb+2:], ')')
	if end < 0 {
		return "", "", 0, false
	}
	end += rb + 2
	return text[i+1 : rb], text[rb+2 : end], end + 1, true
}

// findBacktickRun returns the index of the next backtick run of exactly n
// backticks at or after start, or -1.
func findBacktickRun(text string, start, n int) int {
	for j := start; j < len(text); j++ {
		if text[j] != '`' {
			continue
		}
		l := runLength(text, j, '`')
		if l == n {
			return j
		}
		j += l - 1
	}
	return -1
}

func runLength(text string, i int, c byte) int {
	n := 0
	for i+n < len(text) && text[i+n] == c {
		n++
	}
	return n
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// mergeText collapses adjacent plain text spans.
func mergeText(spans []span) []span {
	if len(spans) < 2 {
		return spans
	}
	merged := spans[:0]
	for _, sp := range spans {
		if sp.kind == spanText && len(merged) > 0 && merged[len(merged)-1].kind == spanText {
			merged[len(merged)-1].text += sp.text
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}
