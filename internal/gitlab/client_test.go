package gitlab

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetMergeRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "GET", r.Method)
		require.Equal(t, "/api/v4/projects/ns%2Fproj/merge_requests/42", r.URL.EscapedPath())
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(MergeRequest{
			IID:          42,
			Title:        "Fix the thing",
			SourceBranch: "fix/thing",
			Author:       Author{Name: "Dev"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	mr, err := c.GetMergeRequest("ns%2Fproj", "42")
	require.NoError(t, err)
	require.Equal(t, "Fix the thing", mr.Title)
	require.Equal(t, "fix/thing", mr.SourceBranch)
}

func TestGetProject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v4/projects/ns%2Fproj", r.URL.EscapedPath())
		json.NewEncoder(w).Encode(Project{ID: 99, PathWithNamespace: "ns/proj"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	p, err := c.GetProject("ns%2Fproj")
	require.NoError(t, err)
	require.Equal(t, 99, p.ID)
}

func TestUpdateMergeRequestTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "PUT", r.Method)
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "[OPS-1] Fix the thing", payload["title"])
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	require.NoError(t, c.UpdateMergeRequestTitle("ns%2Fproj", "42", "[OPS-1] Fix the thing"))
}

func TestClientErrorsIncludeStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"404 Not Found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	_, err := c.GetMergeRequest("ns%2Fproj", "42")
	require.Error(t, err)
	require.Contains(t, err.Error(), "404")
}
