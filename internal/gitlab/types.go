package gitlab

// MergeRequest holds the merge request fields this tool uses.
type MergeRequest struct {
	IID          int    `json:"iid"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	State        string `json:"state"`
	SourceBranch string `json:"source_branch"`
	TargetBranch string `json:"target_branch"`
	CreatedAt    string `json:"created_at"`
	WebURL       string `json:"web_url"`
	Author       Author `json:"author"`
}

// Author is the MR author.
type Author struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

// Project holds project fields; the numeric ID is needed to build absolute
// upload URLs.
type Project struct {
	ID                int    `json:"id"`
	PathWithNamespace string `json:"path_with_namespace"`
	WebURL            string `json:"web_url"`
}

// titlePayload is the body for PUT merge_requests/{iid}.
type titlePayload struct {
	Title string `json:"title"`
}
