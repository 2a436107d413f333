//go:build unit

package github_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/projectwizard/internal/domain/entities"
	"github.com/rios0rios0/projectwizard/internal/infrastructure/repositories/github"
)

func newServer(t *testing.T, mux *http.ServeMux) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestGitHubHostingRepository(t *testing.T) {
	t.Parallel()

	t.Run("should report the token and build clone URLs", func(t *testing.T) {
		t.Parallel()

		// given
		repo := github.NewGitHubHostingRepository("ghp_test")

		// when
		url := repo.CloneURL("acme/template")

		// then
		assert.Equal(t, "github", repo.Name())
		assert.True(t, repo.HasToken())
		assert.Equal(t, "https://github.com/acme/template.git", url)
		assert.False(t, github.NewGitHubHostingRepository("").HasToken())
	})

	t.Run("should return the login of the token user", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer ghp_test", r.Header.Get("Authorization"))
			fmt.Fprint(w, `{"login":"octocat"}`)
		})
		server := newServer(t, mux)
		repo := github.NewWithBaseURL("ghp_test", server.URL)

		// when
		login, err := repo.ValidateToken(context.Background())

		// then
		require.NoError(t, err)
		assert.Equal(t, "octocat", login)
	})

	t.Run("should keep the HTTP status when the token is rejected", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("/user", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"message":"Bad credentials"}`)
		})
		server := newServer(t, mux)
		repo := github.NewWithBaseURL("ghp_bad", server.URL)

		// when
		_, err := repo.ValidateToken(context.Background())

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 401")
	})

	t.Run("should create the repository in an organization", func(t *testing.T) {
		t.Parallel()

		// given
		var body map[string]any
		mux := http.NewServeMux()
		mux.HandleFunc("/user", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"login":"octocat"}`)
		})
		mux.HandleFunc("/orgs/acme/repos", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &body)
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"id":42,"name":"acme-app","owner":{"login":"acme"},`+
				`"clone_url":"https://github.com/acme/acme-app.git","ssh_url":"git@github.com:acme/acme-app.git"}`)
		})
		server := newServer(t, mux)
		repo := github.NewWithBaseURL("ghp_test", server.URL)

		// when
		created, err := repo.CreateRepository(context.Background(), "acme", entities.RepositoryInput{
			Name: "acme-app", Description: "demo", Private: true,
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, "42", created.ID)
		assert.Equal(t, "acme", created.Organization)
		assert.Equal(t, "https://github.com/acme/acme-app.git", created.RemoteURL)
		assert.Equal(t, "refs/heads/main", created.DefaultBranch)
		assert.Equal(t, "acme-app", body["name"])
		assert.Equal(t, true, body["private"])
	})

	t.Run("should create the repository under the token user when the owner is the user", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("/user", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"login":"octocat"}`)
		})
		mux.HandleFunc("/user/repos", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"id":7,"name":"acme-app","owner":{"login":"octocat"},`+
				`"clone_url":"https://github.com/octocat/acme-app.git"}`)
		})
		server := newServer(t, mux)
		repo := github.NewWithBaseURL("ghp_test", server.URL)

		// when
		created, err := repo.CreateRepository(context.Background(), "OctoCat", entities.RepositoryInput{Name: "acme-app"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "octocat", created.Organization)
	})

	t.Run("should follow pagination when listing branches", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		var serverURL string
		mux.HandleFunc("/repos/acme/template/branches", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("page") == "2" {
				fmt.Fprint(w, `[{"name":"release"}]`)
				return
			}
			w.Header().Set("Link", fmt.Sprintf(`<%s/repos/acme/template/branches?page=2>; rel="next"`, serverURL))
			fmt.Fprint(w, `[{"name":"main"},{"name":"develop"}]`)
		})
		server := newServer(t, mux)
		serverURL = server.URL
		repo := github.NewWithBaseURL("ghp_test", server.URL)

		// when
		branches, err := repo.ListBranches(context.Background(), "acme/template")

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"main", "develop", "release"}, branches)
	})

	t.Run("should reject a name without an owner", func(t *testing.T) {
		t.Parallel()

		// given
		repo := github.NewGitHubHostingRepository("")

		// when
		_, err := repo.ListBranches(context.Background(), "template")

		// then
		require.Error(t, err)
	})

	t.Run("should skip archived repositories", func(t *testing.T) {
		t.Parallel()

		// given
		mux := http.NewServeMux()
		mux.HandleFunc("/user/repos", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `[{"id":1,"name":"template","owner":{"login":"acme"},"default_branch":"develop"},`+
				`{"id":2,"name":"old","archived":true,"owner":{"login":"acme"}}]`)
		})
		server := newServer(t, mux)
		repo := github.NewWithBaseURL("ghp_test", server.URL)

		// when
		repos, err := repo.ListRepositories(context.Background())

		// then
		require.NoError(t, err)
		require.Len(t, repos, 1)
		assert.Equal(t, "template", repos[0].Name)
		assert.Equal(t, "refs/heads/develop", repos[0].DefaultBranch)
	})
}
