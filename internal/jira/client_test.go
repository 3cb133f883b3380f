package jira

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateIssue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/rest/api/3/issue", r.URL.Path)

		expected := "Basic " + base64.StdEncoding.EncodeToString([]byte("me@example.com:tok"))
		require.Equal(t, expected, r.Header.Get("Authorization"))

		var payload CreatePayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "OPS", payload.Fields.Project.Key)
		require.Equal(t, "Fix the thing", payload.Fields.Summary)
		require.Equal(t, "doc", payload.Fields.Description.Type)
		require.Equal(t, 1, payload.Fields.Description.Version)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(CreatedIssue{ID: "10001", Key: "OPS-7"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "me@example.com", "tok")
	created, err := c.CreateIssue(CreatePayload{
		Fields: CreateFields{
			Project:     ProjectRef{Key: "OPS"},
			Summary:     "Fix the thing",
			Description: &ADFNode{Type: "doc", Version: 1},
			IssueType:   IssueType{Name: "Task"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "OPS-7", created.Key)
}

func TestTransitionByName(t *testing.T) {
	var transitioned string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/api/3/issue/OPS-7/transitions", r.URL.Path)
		switch r.Method {
		case "GET":
			json.NewEncoder(w).Encode(TransitionsResponse{Transitions: []TransitionInfo{
				{ID: "11", Name: "To Do"},
				{ID: "21", Name: "In Progress"},
			}})
		case "POST":
			var payload TransitionPayload
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			transitioned = payload.Transition.ID
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "me@example.com", "tok")
	require.NoError(t, c.TransitionByName("OPS-7", "in progress"))
	require.Equal(t, "21", transitioned)
}

func TestTransitionByName_NotAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(TransitionsResponse{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "me@example.com", "tok")
	err := c.TransitionByName("OPS-7", "In Progress")
	require.Error(t, err)
	require.Contains(t, err.Error(), "In Progress")
}

func TestGetProjectComponents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/api/3/project/OPS/components", r.URL.Path)
		json.NewEncoder(w).Encode([]Component{
			{ID: "1", Name: "Backend"},
			{ID: "2", Name: "Frontend"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "me@example.com", "tok")
	components, err := c.GetProjectComponents("OPS")
	require.NoError(t, err)
	require.Len(t, components, 2)
	require.Equal(t, "Backend", components[0].Name)
}

func TestADFNodeSerialization(t *testing.T) {
	doc := ADFNode{
		Type:    "doc",
		Version: 1,
		Content: []ADFNode{{
			Type: "paragraph",
			Content: []ADFNode{{
				Type:  "text",
				Text:  "hi",
				Marks: []ADFMark{{Type: "strong"}},
			}},
		}},
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"type": "doc",
		"version": 1,
		"content": [{
			"type": "paragraph",
			"content": [{"type": "text", "text": "hi", "marks": [{"type": "strong"}]}]
		}]
	}`, string(data))
}
