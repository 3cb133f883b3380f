package gitlab

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// MRRef identifies a merge request parsed from its web URL.
type MRRef struct {
	ProjectID   string // URL-encoded project path, usable in API paths
	ProjectPath string // namespace/project
	IID         string
}

// ParseMRURL extracts the project and MR iid from a GitLab merge request
// web URL of the form https://host/namespace/project/-/merge_requests/123.
func ParseMRURL(mrURL string) (MRRef, error) {
	u, err := url.Parse(strings.TrimRight(mrURL, "/"))
	if err != nil {
		return MRRef{}, fmt.Errorf("parsing MR URL: %w", err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")

	// Find the /-/merge_requests separator.
	sep := -1
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] == "-" && parts[i+1] == "merge_requests" {
			sep = i
			break
		}
	}
	if sep < 1 || sep+2 >= len(parts) {
		return MRRef{}, fmt.Errorf("not a merge request URL: %s", mrURL)
	}

	iid := parts[sep+2]
	if iid == "" || strings.Trim(iid, "0123456789") != "" {
		return MRRef{}, fmt.Errorf("invalid merge request iid in URL: %s", mrURL)
	}

	projectPath := strings.Join(parts[:sep], "/")

	return MRRef{
		ProjectID:   url.PathEscape(projectPath),
		ProjectPath: projectPath,
		IID:         iid,
	}, nil
}

// Relative upload references: ![alt](/uploads/hash/file.png){width=60%}.
// The trailing attribute block is GitLab-specific and is dropped.
var uploadImageRe = regexp.MustCompile(`!\[([^\]]*)\]\((/uploads/[^)]+)\)(\{[^}]*\})?`)

// RewriteUploadURLs replaces relative /uploads/ image paths in an MR
// description with absolute URLs. GitLab serves project uploads under
// /-/project/{numeric id}/uploads/…, which is why the numeric project id
// is required.
func RewriteUploadURLs(description, baseURL string, numericProjectID int) string {
	base := strings.TrimRight(baseURL, "/")
	return uploadImageRe.ReplaceAllStringFunc(description, func(m string) string {
		sub := uploadImageRe.FindStringSubmatch(m)
		alt := sub[1]
		if alt == "" {
			alt = "image"
		}
		return fmt.Sprintf("![%s](%s/-/project/%d%s)", alt, base, numericProjectID, sub[2])
	})
}
