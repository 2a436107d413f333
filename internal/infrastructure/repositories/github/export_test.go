package github

import (
	"net/url"

	gh "github.com/google/go-github/v66/github"
)

// NewWithBaseURL creates a hosting repository talking to a test server.
func NewWithBaseURL(token, baseURL string) *GitHubHostingRepository {
	client := gh.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	parsed, err := url.Parse(baseURL + "/")
	if err != nil {
		panic(err)
	}
	client.BaseURL = parsed
	return &GitHubHostingRepository{token: token, client: client}
}
