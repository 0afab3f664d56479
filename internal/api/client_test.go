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

	"repoplan/internal/plan"
)

func TestProcessSuccess(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/process", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req plan.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://github.com/a/b", req.RepoURL)
		assert.Equal(t, "add auth", req.FeatureDescription)

		json.NewEncoder(w).Encode(plan.Analysis{
			RepositoryName: "b",
			FeatureSummary: "S",
			ImplementationSteps: []plan.ImplementationStep{
				{StepNumber: 1, Description: "D"},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, 0, nil)
	a, err := c.Process(context.Background(), "https://github.com/a/b", "add auth")
	require.NoError(t, err)
	require.Equal(t, 1, calls, "exactly one request per submit")
	assert.Equal(t, "b", a.RepositoryName)
	assert.Len(t, a.ImplementationSteps, 1)
}

func TestProcessStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, 0, nil)
	_, err := c.Process(context.Background(), "https://github.com/a/b", "q")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.Code)
}

func TestProcessTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening any more

	c := New(srv.URL, 0, nil)
	_, err := c.Process(context.Background(), "https://github.com/a/b", "q")

	require.Error(t, err)
	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr), "transport failures must not look like status errors")
}

func TestProcessTrailingSlashBase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/process", r.URL.Path)
		json.NewEncoder(w).Encode(plan.Analysis{RepositoryName: "x", FeatureSummary: "y"})
	}))
	defer srv.Close()

	c := New(srv.URL+"/", 0, nil)
	_, err := c.Process(context.Background(), "https://github.com/a/b", "q")
	require.NoError(t, err)
}

func TestProcessBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := New(srv.URL, 0, nil)
	_, err := c.Process(context.Background(), "https://github.com/a/b", "q")
	require.Error(t, err)
}
