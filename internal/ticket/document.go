// Package ticket composes the full JIRA issue description from a converted
// merge request body and its metadata.
package ticket

import (
	"strings"

	"github.com/dt-pm-tools/gitlab2jira/internal/gitlab"
	"github.com/dt-pm-tools/gitlab2jira/internal/jira"
)

// BuildDescription assembles the issue description document: a paragraph
// linking back to the MR, a rule, the converted description body (when the
// MR has one), and an info panel with MR details.
func BuildDescription(mrURL string, mr *gitlab.MergeRequest, body *jira.ADFNode) *jira.ADFNode {
	var content []jira.ADFNode

	content = append(content, jira.ADFNode{
		Type: "paragraph",
		Content: []jira.ADFNode{
			{Type: "text", Text: "Created from "},
			{
				Type: "text",
				Text: "GitLab Merge Request",
				Marks: []jira.ADFMark{{
					Type:  "link",
					Attrs: map[string]any{"href": mrURL},
				}},
			},
			{Type: "text", Text: ":"},
		},
	})
	content = append(content, jira.ADFNode{Type: "rule"})

	if body != nil && strings.TrimSpace(mr.Description) != "" {
		content = append(content, body.Content...)
		content = append(content, jira.ADFNode{Type: "rule"})
	}

	content = append(content, detailsPanel(mr))

	return &jira.ADFNode{Type: "doc", Version: 1, Content: content}
}

// detailsPanel builds the MR Details info panel: heading plus one
// paragraph of labelled fields separated by hard breaks.
func detailsPanel(mr *gitlab.MergeRequest) jira.ADFNode {
	fields := []jira.ADFNode{
		{Type: "text", Text: "Author: "},
		{Type: "text", Text: mr.Author.Name, Marks: []jira.ADFMark{{Type: "strong"}}},
		{Type: "hardBreak"},
		{Type: "text", Text: "Source Branch: "},
		{Type: "text", Text: mr.SourceBranch, Marks: []jira.ADFMark{{Type: "code"}}},
		{Type: "hardBreak"},
		{Type: "text", Text: "Target Branch: "},
		{Type: "text", Text: mr.TargetBranch, Marks: []jira.ADFMark{{Type: "code"}}},
		{Type: "hardBreak"},
		{Type: "text", Text: "State: "},
		{Type: "text", Text: mr.State, Marks: []jira.ADFMark{{Type: "strong"}}},
		{Type: "hardBreak"},
		{Type: "text", Text: "Created: "},
		{Type: "text", Text: mr.CreatedAt, Marks: []jira.ADFMark{{Type: "strong"}}},
	}

	return jira.ADFNode{
		Type:  "panel",
		Attrs: map[string]any{"panelType": "info"},
		Content: []jira.ADFNode{
			{
				Type:    "heading",
				Attrs:   map[string]any{"level": 3},
				Content: []jira.ADFNode{{Type: "text", Text: "MR Details"}},
			},
			{Type: "paragraph", Content: fields},
		},
	}
}
