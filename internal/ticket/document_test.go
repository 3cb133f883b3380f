package ticket

import (
	"testing"

	"github.com/dt-pm-tools/gitlab2jira/internal/convert"
	"github.com/dt-pm-tools/gitlab2jira/internal/gitlab"
	"github.com/stretchr/testify/require"
)

func sampleMR() *gitlab.MergeRequest {
	return &gitlab.MergeRequest{
		IID:          42,
		Title:        "Fix the thing",
		Description:  "Some **context** here.",
		State:        "opened",
		SourceBranch: "fix/thing",
		TargetBranch: "main",
		CreatedAt:    "2026-08-01T10:00:00Z",
		Author:       gitlab.Author{Name: "Dev One"},
	}
}

func TestBuildDescription(t *testing.T) {
	mr := sampleMR()
	body, _, err := convert.Convert(mr.Description, convert.Config{})
	require.NoError(t, err)

	doc := BuildDescription("https://gitlab.com/ns/proj/-/merge_requests/42", mr, body)

	require.Equal(t, "doc", doc.Type)
	require.Equal(t, 1, doc.Version)

	// Link paragraph, rule, body paragraph, rule, panel.
	require.Len(t, doc.Content, 5)

	link := doc.Content[0]
	require.Equal(t, "paragraph", link.Type)
	require.Equal(t, "GitLab Merge Request", link.Content[1].Text)
	require.Equal(t, "link", link.Content[1].Marks[0].Type)

	require.Equal(t, "rule", doc.Content[1].Type)
	require.Equal(t, "paragraph", doc.Content[2].Type)
	require.Equal(t, "rule", doc.Content[3].Type)

	panel := doc.Content[4]
	require.Equal(t, "panel", panel.Type)
	require.Equal(t, "info", panel.Attrs["panelType"])
	require.Equal(t, "heading", panel.Content[0].Type)
	require.Equal(t, "MR Details", panel.Content[0].Content[0].Text)
}

func TestBuildDescription_EmptyBodySkipsDescription(t *testing.T) {
	mr := sampleMR()
	mr.Description = "   "
	body, _, err := convert.Convert(mr.Description, convert.Config{})
	require.NoError(t, err)

	doc := BuildDescription("https://gitlab.com/ns/proj/-/merge_requests/42", mr, body)

	// Link paragraph, rule, panel only.
	require.Len(t, doc.Content, 3)
	require.Equal(t, "panel", doc.Content[2].Type)
}

func TestBuildDescription_PanelFields(t *testing.T) {
	mr := sampleMR()
	doc := BuildDescription("u", mr, nil)

	panel := doc.Content[len(doc.Content)-1]
	para := panel.Content[1]

	var text string
	for _, n := range para.Content {
		if n.Type == "text" {
			text += n.Text
		}
	}
	require.Contains(t, text, "Dev One")
	require.Contains(t, text, "fix/thing")
	require.Contains(t, text, "main")
	require.Contains(t, text, "opened")
}
