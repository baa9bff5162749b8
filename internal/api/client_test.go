package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL + "/api/")
}

func TestListResources(t *testing.T) {

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/resources", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"ResourceID": 1, "Title": "Computational music theory", "Author": "mit ocw", "Rating": "5", "Date": "2025-11-15", "Format": "Video", "Url": "https://example.com/v.mp4"},
			{"ResourceID": 4, "Title": "text note", "Author": "Nikki", "Rating": 2, "Format": "Note", "Body": "hello"},
			{"ResourceID": 6, "Title": "t6", "Rating": null, "Format": "PDF"}
		]`))
	})

	got, err := c.ListResources(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, int64(1), got[0].ResourceID)
	assert.Equal(t, Rating(5), got[0].Rating)
	assert.Equal(t, "https://example.com/v.mp4", got[0].Link())
	assert.Equal(t, Rating(2), got[1].Rating)
	assert.Equal(t, "hello", got[1].Text())
	assert.Equal(t, Rating(0), got[2].Rating)

}

func TestGetResource(t *testing.T) {

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/resources/2":
			w.Write([]byte(`{"ResourceID": 2, "Title": "Quiz 1", "Format": "PDF", "PdfLink": "https://example.com/q.pdf"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": "not found"}`))
		}
	})

	res, err := c.GetResource(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/q.pdf", res.Link())

	_, err = c.GetResource(context.Background(), 3)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "not found", apiErr.Message)
	assert.Equal(t, "api: status 404: not found", apiErr.Error())

}

func TestSearchResources(t *testing.T) {

	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "music theory", r.URL.Query().Get("search"))
		w.Write([]byte(`[{"ResourceID": 1, "Title": "Computational music theory"}]`))
	})

	got, err := c.SearchResources(context.Background(), "  ")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, calls)

	got, err = c.SearchResources(context.Background(), " music theory ")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 1, calls)

}

func TestCreateResource(t *testing.T) {

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in NewResource
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		if in.Topic == "" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": "missing Topic"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ResourceID": 11}`))
	})

	created, err := c.CreateResource(context.Background(), NewResource{Author: "nikki", Topic: "Cells", Format: FormatNote, Body: "..."})
	require.NoError(t, err)
	assert.Equal(t, int64(11), created.ResourceID)

	_, err = c.CreateResource(context.Background(), NewResource{Author: "nikki", Format: FormatNote})
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "missing Topic", apiErr.Message)

}

func TestUsersAndRoster(t *testing.T) {

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/users" && r.Method == http.MethodPost:
			var in NewUser
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, "Ada", in.Name)
			w.Write([]byte(`{"user_id": 7}`))
		case r.URL.Path == "/api/users":
			w.Write([]byte(`[{"UserID": 1, "Name": "Ada", "IsProfessor": true}, {"UserID": 2, "Name": "Bo", "IsProfessor": 0}]`))
		case r.URL.Path == "/api/course/3/roster":
			w.Write([]byte(`[{"UserID": 1, "Name": "Ada", "IsProfessor": "True"}, {"UserID": 2, "Name": "Bo", "IsProfessor": "False", "Courses": "CS101"}]`))
		case r.URL.Path == "/api/professor/1/courses", r.URL.Path == "/api/courses":
			w.Write([]byte(`[{"CourseID": 3, "Name": "Intro", "Subject": "CS", "CatalogNumber": "101", "Year": 2025}]`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("boom"))
		}
	})

	ctx := context.Background()

	users, err := c.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.True(t, bool(users[0].IsProfessor))
	assert.False(t, bool(users[1].IsProfessor))

	created, err := c.CreateUser(ctx, NewUser{Name: " Ada "})
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.UserID)

	roster, err := c.CourseRoster(ctx, 3)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "Bo", roster[0].Name)

	courses, err := c.ProfessorCourses(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Intro", courses[0].Name)

	courses, err = c.ListCourses(ctx)
	require.NoError(t, err)
	assert.Len(t, courses, 1)

	_, err = c.CourseRoster(ctx, 99)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "boom", apiErr.Message)

}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := NewClient(srv.URL).ListResources(context.Background())
	require.Error(t, err)
	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr))
}
