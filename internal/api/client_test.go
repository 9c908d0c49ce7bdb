package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Joseda-hg/lazyboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   map[string]any
}

func newRecordingServer(t *testing.T, status int, response string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Path: r.URL.EscapedPath(), Header: r.Header.Clone()}
		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			_ = json.Unmarshal(data, &rec.Body)
		}
		requests = append(requests, rec)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func TestListTasksDecodesArray(t *testing.T) {
	srv, requests := newRecordingServer(t, http.StatusOK, `[{"_id":"a","title":"One","description":"d","timestamp":"2024-01-01T10:00","category":"Done","order":3}]`)

	tasks, err := New(srv.URL + "/").ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "a", tasks[0].ID)
	assert.Equal(t, model.CategoryDone, tasks[0].Category)
	assert.Equal(t, 3.0, tasks[0].SortOrder())

	require.Len(t, *requests, 1)
	assert.Equal(t, http.MethodGet, (*requests)[0].Method)
	assert.Equal(t, "/tasks", (*requests)[0].Path)
	assert.NotEmpty(t, (*requests)[0].Header.Get("X-Request-ID"))
	assert.Empty(t, (*requests)[0].Header.Get("Authorization"))
}

func TestListTasksEmptyBodyIsEmptySlice(t *testing.T) {
	srv, _ := newRecordingServer(t, http.StatusOK, `null`)

	tasks, err := New(srv.URL).ListTasks(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestCreateTaskNeverSendsID(t *testing.T) {
	srv, requests := newRecordingServer(t, http.StatusCreated, `{}`)

	err := New(srv.URL, WithToken("tok")).CreateTask(context.Background(), model.Task{
		ID:          "client-made",
		Title:       "Write spec",
		Description: "core design",
		Timestamp:   "2024-01-01T10:00",
		Category:    model.CategoryToDo,
	})
	require.NoError(t, err)

	require.Len(t, *requests, 1)
	got := (*requests)[0]
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/tasks", got.Path)
	assert.Equal(t, "Bearer tok", got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.NotContains(t, got.Body, "_id")
	assert.Equal(t, "Write spec", got.Body["title"])
	assert.Equal(t, "To-Do", got.Body["category"])
}

func TestUpdateTaskSendsFullRecord(t *testing.T) {
	srv, requests := newRecordingServer(t, http.StatusOK, `{}`)

	task := model.Task{
		ID:          "id/with slash",
		Title:       "t",
		Description: "d",
		Timestamp:   "2024-01-01T10:00",
		Category:    model.CategoryInProgress,
		Extra:       map[string]json.RawMessage{"owner": json.RawMessage(`"me"`)},
	}
	require.NoError(t, New(srv.URL).UpdateTask(context.Background(), task))

	got := (*requests)[0]
	assert.Equal(t, http.MethodPut, got.Method)
	assert.Equal(t, "/tasks/id%2Fwith%20slash", got.Path)
	for _, key := range []string{"_id", "title", "description", "timestamp", "category", "owner"} {
		assert.Contains(t, got.Body, key)
	}
}

func TestNonSuccessStatusIsStatusError(t *testing.T) {
	srv, _ := newRecordingServer(t, http.StatusNotFound, `{"error":"not_found"}`)

	err := New(srv.URL).DeleteTask(context.Background(), "missing")
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, http.MethodDelete, statusErr.Method)
	assert.Contains(t, statusErr.Error(), "not_found")
}

func TestTransportFailureIsNotStatusError(t *testing.T) {
	srv, _ := newRecordingServer(t, http.StatusOK, `[]`)
	srv.Close()

	_, err := New(srv.URL).ListTasks(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestMissingIDIsRejectedLocally(t *testing.T) {
	client := New("http://unused.invalid")
	assert.Error(t, client.UpdateTask(context.Background(), model.Task{}))
	assert.Error(t, client.DeleteTask(context.Background(), ""))
}
