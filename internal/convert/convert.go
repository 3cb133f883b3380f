package convert

import (
	"reflect"
	"strings"

	"github.com/dt-pm-tools/gitlab2jira/internal/jira"
)

// Convert parses GitLab-flavored markdown into an ADF document rooted at
// {"type":"doc","version":1}. Warnings report recovered conditions such as
// image downgrades; the only fatal condition is nesting beyond the depth
// limit, in which case no document is returned.
func Convert(markdown string, cfg Config) (*jira.ADFNode, []Warning, error) {
	if cfg.ImageMode == "" {
		cfg.ImageMode = ImageLinks
	}

	// Empty input is a valid document with one empty paragraph.
	if strings.TrimSpace(markdown) == "" {
		return &jira.ADFNode{
			Type:    "doc",
			Version: 1,
			Content: []jira.ADFNode{{Type: "paragraph"}},
		}, nil, nil
	}

	blocks, err := segmentBlocks(markdown, 0)
	if err != nil {
		return nil, nil, err
	}

	var warnings []Warning
	content, err := blocksToADF(blocks, cfg, &warnings)
	if err != nil {
		return nil, nil, err
	}

	return &jira.ADFNode{Type: "doc", Version: 1, Content: content}, warnings, nil
}

// blocksToADF converts a block sequence in source order. Sibling order is
// preserved; every emitted node type is valid in its position by
// construction (listItem only under lists, marks only on text).
func blocksToADF(blocks []block, cfg Config, warnings *[]Warning) ([]jira.ADFNode, error) {
	var nodes []jira.ADFNode

	for _, b := range blocks {
		switch b.kind {
		case blockHeading:
			spans, err := tokenizeInline(b.text, 0, true)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, jira.ADFNode{
				Type:    "heading",
				Attrs:   map[string]any{"level": b.level},
				Content: mergeAdjacentText(spansToADF(spans, cfg, nil, warnings)),
			})

		case blockParagraph:
			var content []jira.ADFNode
			for i, line := range b.lines {
				if i > 0 {
					content = append(content, jira.ADFNode{Type: "hardBreak"})
				}
				spans, err := tokenizeInline(line, 0, true)
				if err != nil {
					return nil, err
				}
				content = append(content, spansToADF(spans, cfg, nil, warnings)...)
			}
			nodes = append(nodes, jira.ADFNode{Type: "paragraph", Content: mergeAdjacentText(content)})

		case blockCode:
			node := jira.ADFNode{Type: "codeBlock"}
			if lang := normalizeLanguage(b.language); lang != "" {
				node.Attrs = map[string]any{"language": lang}
			}
			if b.code != "" {
				node.Content = []jira.ADFNode{{Type: "text", Text: b.code}}
			}
			nodes = append(nodes, node)

		case blockList:
			listType := "bulletList"
			if b.ordered {
				listType = "orderedList"
			}
			var items []jira.ADFNode
			for _, itemBlocks := range b.items {
				itemContent, err := blocksToADF(itemBlocks, cfg, warnings)
				if err != nil {
					return nil, err
				}
				if len(itemContent) == 0 {
					itemContent = []jira.ADFNode{{Type: "paragraph"}}
				}
				items = append(items, jira.ADFNode{Type: "listItem", Content: itemContent})
			}
			nodes = append(nodes, jira.ADFNode{Type: listType, Content: items})

		case blockQuote:
			content, err := blocksToADF(b.children, cfg, warnings)
			if err != nil {
				return nil, err
			}
			if len(content) == 0 {
				content = []jira.ADFNode{{Type: "paragraph"}}
			}
			nodes = append(nodes, jira.ADFNode{Type: "blockquote", Content: content})

		case blockRule:
			nodes = append(nodes, jira.ADFNode{Type: "rule"})

		default:
			// Safeguard for future block kinds: degrade to a literal
			// paragraph rather than dropping content.
			*warnings = append(*warnings, Warning{
				Type:    WarningUnknownBlock,
				Message: "unrepresentable block rendered as plain text",
			})
			nodes = append(nodes, jira.ADFNode{
				Type:    "paragraph",
				Content: []jira.ADFNode{{Type: "text", Text: b.text}},
			})
		}
	}

	return nodes, nil
}

// spansToADF flattens nested inline spans into ADF text nodes. Nesting
// becomes mark accumulation: bold containing a link yields a text node
// carrying both strong and link marks.
func spansToADF(spans []span, cfg Config, marks []jira.ADFMark, warnings *[]Warning) []jira.ADFNode {
	var nodes []jira.ADFNode

	for _, sp := range spans {
		switch sp.kind {
		case spanText:
			if sp.text == "" {
				continue
			}
			nodes = append(nodes, textNode(sp.text, marks))

		case spanCode:
			nodes = append(nodes, textNode(sp.text, appendMark(marks, jira.ADFMark{Type: "code"})))

		case spanBold:
			nodes = append(nodes, spansToADF(sp.children, cfg, appendMark(marks, jira.ADFMark{Type: "strong"}), warnings)...)

		case spanItalic:
			nodes = append(nodes, spansToADF(sp.children, cfg, appendMark(marks, jira.ADFMark{Type: "em"}), warnings)...)

		case spanStrike:
			nodes = append(nodes, spansToADF(sp.children, cfg, appendMark(marks, jira.ADFMark{Type: "strike"}), warnings)...)

		case spanLink:
			mark := jira.ADFMark{Type: "link", Attrs: map[string]any{"href": sp.href}}
			nodes = append(nodes, spansToADF(sp.children, cfg, appendMark(marks, mark), warnings)...)

		case spanImage:
			resolved := resolveImage(sp, cfg, warnings)
			nodes = append(nodes, spansToADF(resolved, cfg, marks, warnings)...)
		}
	}

	return nodes
}

func textNode(text string, marks []jira.ADFMark) jira.ADFNode {
	node := jira.ADFNode{Type: "text", Text: text}
	if len(marks) > 0 {
		node.Marks = marks
	}
	return node
}

// mergeAdjacentText collapses neighboring text nodes carrying identical
// marks, so image stripping and literalized delimiters don't fragment
// plain runs.
func mergeAdjacentText(nodes []jira.ADFNode) []jira.ADFNode {
	if len(nodes) < 2 {
		return nodes
	}
	merged := nodes[:0]
	for _, n := range nodes {
		if n.Type == "text" && len(merged) > 0 {
			last := &merged[len(merged)-1]
			if last.Type == "text" && reflect.DeepEqual(last.Marks, n.Marks) {
				last.Text += n.Text
				continue
			}
		}
		merged = append(merged, n)
	}
	return merged
}

// appendMark copies the mark stack so sibling spans never share backing
// arrays.
func appendMark(marks []jira.ADFMark, mark jira.ADFMark) []jira.ADFMark {
	out := make([]jira.ADFMark, 0, len(marks)+1)
	out = append(out, marks...)
	return append(out, mark)
}
