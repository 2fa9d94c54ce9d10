package client

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumire/bugs/internal/domain"
	"github.com/sumire/bugs/internal/handler"
	"github.com/sumire/bugs/internal/repository"
	"github.com/sumire/bugs/internal/service"
)

func strp(s string) *string { return &s }

func newTestClient(t *testing.T) *Client {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewBugService(repository.NewMemoryBugRepository(), logger)
	srv := httptest.NewServer(handler.NewRouter(handler.RouterConfig{BasePath: "/api"}, svc, logger))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api/", srv.Client())
}

func TestClient_RoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	bugs, err := c.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, bugs)

	created, err := c.Create(ctx, domain.BugPayload{Title: strp("Crash on save"), Description: strp("Steps to reproduce")})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOpen, created.Status)
	assert.Equal(t, domain.DefaultAssignee, created.AssignedTo)

	updated, err := c.UpdateStatus(ctx, created.ID, domain.StatusResolved)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusResolved, updated.Status)
	assert.Equal(t, "Crash on save", updated.Title)

	bugs, err = c.List(ctx)
	require.NoError(t, err)
	require.Len(t, bugs, 1)
	assert.Equal(t, domain.StatusResolved, bugs[0].Status)

	result, err := c.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, result.ID)

	_, err = c.Delete(ctx, created.ID)
	assert.True(t, IsNotFound(err))
}

func TestClient_ValidationErrorCarriesMessage(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Create(context.Background(), domain.BugPayload{Title: strp("T")})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Description is required", apiErr.Message)
	assert.False(t, IsNotFound(err))
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	_, err := New(srv.URL, nil).List(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Empty(t, apiErr.Message)
}

func TestClient_EscapesBugID(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.EscapedPath())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"not_found","message":"Bug not found"}`))
	}))
	t.Cleanup(srv.Close)
	c := New(srv.URL, srv.Client())
	ctx := context.Background()

	_, err := c.UpdateStatus(ctx, "a/b c?d", domain.StatusResolved)
	assert.True(t, IsNotFound(err))
	_, err = c.Delete(ctx, "../health")
	assert.True(t, IsNotFound(err))

	assert.Equal(t, []string{
		"PUT /bugs/a%2Fb%20c%3Fd",
		"DELETE /bugs/..%2Fhealth",
	}, paths)
}
