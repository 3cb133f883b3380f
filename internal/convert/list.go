package convert

import "strings"

// parseList builds one (possibly nested) list from a contiguous run of
// marker lines starting at lines[i]. Nesting comes from indentation: item
// body lines (including deeper markers) are collected, dedented to the
// item's content column, and recursively segmented, so nested lists and
// block content inside items fall out of the block segmenter. Returns the
// list block and the index of the first line after the run.
//
// A marker at the same indentation but of the other kind (bullet vs
// numbered) ends this list; the segmenter then starts a sibling list.
func parseList(lines []string, i, depth int) (block, int, error) {
	if depth > maxNestingDepth {
		return block{}, i, ErrNestingTooDeep
	}

	first, _ := matchMarker(strings.TrimRight(lines[i], " \t"))
	b := block{kind: blockList, ordered: first.ordered}

	var body []string
	contentCol := 0
	haveItem := false

	flush := func() error {
		if !haveItem {
			return nil
		}
		itemBlocks, err := segmentBlocks(strings.Join(body, "\n"), depth+1)
		if err != nil {
			return err
		}
		b.items = append(b.items, itemBlocks)
		body = nil
		return nil
	}

	for i < len(lines) {
		line := strings.TrimRight(lines[i], " \t")

		// A blank line stays inside the current item when an indented
		// continuation follows, and separates items when another marker of
		// the same kind and indentation follows; otherwise the run is over.
		if line == "" {
			j := i
			for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
				j++
			}
			if j >= len(lines) {
				break
			}
			if haveItem && indentOf(lines[j]) > first.indent {
				body = append(body, "")
				i++
				continue
			}
			next := strings.TrimRight(lines[j], " \t")
			if m, ok := matchMarker(next); ok && m.indent == first.indent && m.ordered == b.ordered {
				i = j
				continue
			}
			break
		}

		if m, ok := matchMarker(line); ok && m.indent <= first.indent {
			if m.indent < first.indent || m.ordered != b.ordered {
				break
			}
			if err := flush(); err != nil {
				return block{}, i, err
			}
			haveItem = true
			contentCol = m.indent + m.width
			body = append(body, m.content)
			i++
			continue
		}

		// Continuation or nested marker line: anything indented past the
		// item's marker column belongs to the current item.
		if haveItem && indentOf(line) > first.indent {
			body = append(body, dedent(line, contentCol))
			i++
			continue
		}

		break
	}

	if err := flush(); err != nil {
		return block{}, i, err
	}

	return b, i, nil
}
