package jira

// ADFNode represents a node in the Atlassian Document Format.
type ADFNode struct {
	Type    string         `json:"type"`
	Version int            `json:"version,omitempty"` // set on the "doc" root only
	Content []ADFNode      `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Marks   []ADFMark      `json:"marks,omitempty"`
}

// ADFMark represents an inline formatting mark in ADF.
type ADFMark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// CreatePayload is the body for POST /rest/api/3/issue.
type CreatePayload struct {
	Fields CreateFields `json:"fields"`
}

// CreateFields contains the fields sent when creating an issue.
type CreateFields struct {
	Project     ProjectRef     `json:"project"`
	Summary     string         `json:"summary"`
	Description *ADFNode       `json:"description,omitempty"`
	IssueType   IssueType      `json:"issuetype"`
	Labels      []string       `json:"labels,omitempty"`
	Components  []ComponentRef `json:"components,omitempty"`
	Priority    *Priority      `json:"priority,omitempty"`
}

// ProjectRef identifies a project by key.
type ProjectRef struct {
	Key string `json:"key"`
}

// IssueType represents a JIRA issue type.
type IssueType struct {
	Name string `json:"name"`
}

// Priority represents a JIRA priority.
type Priority struct {
	Name string `json:"name"`
}

// ComponentRef identifies a component by name in a create payload.
type ComponentRef struct {
	Name string `json:"name"`
}

// Component is a project component from GET /rest/api/3/project/{key}/components.
type Component struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreatedIssue is the response from a successful issue creation.
type CreatedIssue struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}

// Transition is used to change issue status.
type Transition struct {
	ID string `json:"id"`
}

// TransitionPayload is the body for POST /rest/api/3/issue/{key}/transitions.
type TransitionPayload struct {
	Transition Transition `json:"transition"`
}

// TransitionsResponse is the response from GET transitions.
type TransitionsResponse struct {
	Transitions []TransitionInfo `json:"transitions"`
}

// TransitionInfo describes an available transition.
type TransitionInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
