package convert

import (
	"fmt"
	"strings"

	"github.com/dt-pm-tools/gitlab2jira/internal/jira"
)

// Render converts an ADF tree back to markdown. It covers the node
// vocabulary Convert emits and is used for dry-run previews and round-trip
// checks; unknown nodes render their children best-effort.
func Render(node *jira.ADFNode) string {
	if node == nil {
		return ""
	}
	var b strings.Builder
	renderNode(&b, node, "")
	return b.String()
}

func renderNode(b *strings.Builder, node *jira.ADFNode, listPrefix string) {
	switch node.Type {
	case "doc":
		renderChildren(b, node, "")

	case "paragraph":
		renderInlineChildren(b, node)
		b.WriteString("\n\n")

	case "heading":
		level := 1
		if l, ok := node.Attrs["level"]; ok {
			if lf, ok := l.(float64); ok {
				level = int(lf)
			} else if li, ok := l.(int); ok {
				level = li
			}
		}
		b.WriteString(strings.Repeat("#", level))
		b.WriteString(" ")
		renderInlineChildren(b, node)
		b.WriteString("\n\n")

	case "bulletList":
		for i := range node.Content {
			renderNode(b, &node.Content[i], "- ")
		}

	case "orderedList":
		for i := range node.Content {
			renderNode(b, &node.Content[i], fmt.Sprintf("%d. ", i+1))
		}

	case "listItem":
		for i := range node.Content {
			child := &node.Content[i]
			if i == 0 && child.Type == "paragraph" {
				b.WriteString(listPrefix)
				renderInlineChildren(b, child)
				b.WriteString("\n")
			} else if child.Type == "bulletList" || child.Type == "orderedList" {
				indent := strings.Repeat(" ", len(listPrefix))
				for j := range child.Content {
					prefix := "- "
					if child.Type == "orderedList" {
						prefix = fmt.Sprintf("%d. ", j+1)
					}
					renderNode(b, &child.Content[j], indent+prefix)
				}
			} else {
				renderNode(b, child, listPrefix)
			}
		}

	case "codeBlock":
		lang := ""
		if l, ok := node.Attrs["language"]; ok {
			if ls, ok := l.(string); ok {
				lang = ls
			}
		}
		b.WriteString("```")
		b.WriteString(lang)
		b.WriteString("\n")
		for _, child := range node.Content {
			b.WriteString(child.Text)
		}
		b.WriteString("\n```\n\n")

	case "blockquote":
		var inner strings.Builder
		renderChildren(&inner, node, "")
		for _, line := range strings.Split(strings.TrimRight(inner.String(), "\n"), "\n") {
			b.WriteString("> ")
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")

	case "rule":
		b.WriteString("---\n\n")

	case "panel":
		renderChildren(b, node, "")

	case "text":
		b.WriteString(applyMarks(node.Text, node.Marks))

	case "hardBreak":
		b.WriteString("\n")

	default:
		renderChildren(b, node, "")
	}
}

func renderChildren(b *strings.Builder, node *jira.ADFNode, listPrefix string) {
	for i := range node.Content {
		renderNode(b, &node.Content[i], listPrefix)
	}
}

func renderInlineChildren(b *strings.Builder, node *jira.ADFNode) {
	for i := range node.Content {
		renderNode(b, &node.Content[i], "")
	}
}

func applyMarks(text string, marks []jira.ADFMark) string {
	for _, mark := range marks {
		switch mark.Type {
		case "strong":
			text = "**" + text + "**"
		case "em":
			text = "*" + text + "*"
		case "code":
			text = "`" + text + "`"
		case "strike":
			text = "~~" + text + "~~"
		case "link":
			href := ""
			if h, ok := mark.Attrs["href"]; ok {
				if hs, ok := h.(string); ok {
					href = hs
				}
			}
			text = fmt.Sprintf("[%s](%s)", text, href)
		}
	}
	return text
}
