package plan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownMinimal(t *testing.T) {
	a := Analysis{
		RepositoryName: "b",
		FeatureSummary: "S",
		ImplementationSteps: []ImplementationStep{
			{StepNumber: 1, Description: "D"},
		},
	}

	md := a.Markdown()

	require.True(t, strings.HasPrefix(md, "# b\n"), "document must open with the repository heading")
	assert.Contains(t, md, "## Feature Summary\nS")
	assert.Contains(t, md, "1. D")

	// empty sections are skipped, not rendered as empty headings
	assert.NotContains(t, md, "## Setup Instructions")
	assert.NotContains(t, md, "## Potential Challenges")
	assert.NotContains(t, md, "## Relevant Files")
}

func TestMarkdownFull(t *testing.T) {
	a := Analysis{
		RepositoryName: "widgets",
		FeatureSummary: "Add OAuth login.",
		ImplementationSteps: []ImplementationStep{
			{StepNumber: 1, Description: "Add the handler", FilePath: "http/auth.go", CodeSnippet: "func Login() {}\n"},
			{StepNumber: 2, Description: "Wire the route"},
		},
		SetupInstructions: []SetupStep{
			{StepNumber: 1, Description: "Install deps", Code: "go mod download"},
		},
		PotentialChallenges: []string{"token refresh", "session storage"},
		RelevantFiles: []FileInfo{
			{Path: "http/router.go", Importance: 8, Reason: "routes live here", ContentPreview: "mux := http.NewServeMux()"},
			{Path: "README.md", Importance: 2, Reason: "mentions auth"},
		},
	}

	md := a.Markdown()

	assert.Contains(t, md, "# widgets\n")
	assert.Contains(t, md, "File: `http/auth.go`")
	assert.Contains(t, md, "```\nfunc Login() {}\n```")
	assert.Contains(t, md, "## Setup Instructions")
	assert.Contains(t, md, "```sh\ngo mod download\n```")
	assert.Contains(t, md, "- token refresh\n- session storage\n")
	assert.Contains(t, md, "### `http/router.go`")
	assert.Contains(t, md, "- Importance: 8/10")
	assert.Contains(t, md, "```\nmux := http.NewServeMux()\n```")

	// section order: summary, implementation, setup, challenges, files
	order := []string{
		"## Feature Summary",
		"## Implementation Steps",
		"## Setup Instructions",
		"## Potential Challenges",
		"## Relevant Files",
	}
	last := -1
	for _, h := range order {
		idx := strings.Index(md, h)
		require.Greater(t, idx, last, "section %q out of order", h)
		last = idx
	}
}

func TestMarkdownOmitsAbsentOptionals(t *testing.T) {
	a := Analysis{
		RepositoryName: "r",
		FeatureSummary: "s",
		ImplementationSteps: []ImplementationStep{
			{StepNumber: 1, Description: "no snippet, no path"},
		},
		RelevantFiles: []FileInfo{
			{Path: "a.go", Importance: 5, Reason: "r"},
		},
	}

	md := a.Markdown()

	assert.NotContains(t, md, "File:")
	assert.NotContains(t, md, "```")
}
