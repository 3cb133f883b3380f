package gitlab

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMRURL(t *testing.T) {
	ref, err := ParseMRURL("https://gitlab.com/group/sub/project/-/merge_requests/42")
	require.NoError(t, err)
	require.Equal(t, "group/sub/project", ref.ProjectPath)
	require.Equal(t, "group%2Fsub%2Fproject", ref.ProjectID)
	require.Equal(t, "42", ref.IID)
}

func TestParseMRURL_TrailingSlash(t *testing.T) {
	ref, err := ParseMRURL("https://gitlab.com/ns/proj/-/merge_requests/7/")
	require.NoError(t, err)
	require.Equal(t, "7", ref.IID)
}

func TestParseMRURL_Invalid(t *testing.T) {
	for _, bad := range []string{
		"https://gitlab.com/ns/proj",
		"https://gitlab.com/ns/proj/-/issues/3",
		"https://gitlab.com/-/merge_requests/3",
		"https://gitlab.com/ns/proj/-/merge_requests/abc",
	} {
		_, err := ParseMRURL(bad)
		require.Error(t, err, "expected error for %q", bad)
	}
}

func TestRewriteUploadURLs(t *testing.T) {
	in := "intro ![shot](/uploads/abc123/shot.png) outro"
	out := RewriteUploadURLs(in, "https://gitlab.com/", 99)
	require.Equal(t, "intro ![shot](https://gitlab.com/-/project/99/uploads/abc123/shot.png) outro", out)
}

func TestRewriteUploadURLs_DropsAttributesAndDefaultsAlt(t *testing.T) {
	in := "![](/uploads/h/x.png){width=60%}"
	out := RewriteUploadURLs(in, "https://gitlab.example.com", 5)
	require.Equal(t, "![image](https://gitlab.example.com/-/project/5/uploads/h/x.png)", out)
}

func TestRewriteUploadURLs_LeavesAbsoluteImagesAlone(t *testing.T) {
	in := "![x](https://elsewhere.example/pic.png)"
	require.Equal(t, in, RewriteUploadURLs(in, "https://gitlab.com", 1))
}
