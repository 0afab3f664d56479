package plan

import (
	"fmt"
	"strings"
)

// Request is the payload for POST /api/process.
type Request struct {
	RepoURL            string `json:"repo_url"`
	FeatureDescription string `json:"feature_description"`
}

// FileInfo describes a repository file the backend considers relevant
// to the requested feature.
type FileInfo struct {
	Path           string `json:"path"`
	ContentPreview string `json:"content_preview,omitempty"`
	Importance     int    `json:"importance"` // 1-10 scale of relevance
	Reason         string `json:"reason"`
}

// SetupStep is one numbered step to get the repository running locally.
type SetupStep struct {
	StepNumber  int    `json:"step_number"`
	Description string `json:"description"`
	Code        string `json:"code,omitempty"` // shell commands, if any
}

// ImplementationStep is one numbered step of the implementation plan.
type ImplementationStep struct {
	StepNumber  int    `json:"step_number"`
	Description string `json:"description"`
	FilePath    string `json:"file_path,omitempty"`
	CodeSnippet string `json:"code_snippet,omitempty"`
}

// Analysis is the structured plan returned by the backend.
type Analysis struct {
	RepositoryName      string               `json:"repository_name"`
	FeatureSummary      string               `json:"feature_summary"`
	SetupInstructions   []SetupStep          `json:"setup_instructions"`
	RelevantFiles       []FileInfo           `json:"relevant_files"`
	ImplementationSteps []ImplementationStep `json:"implementation_steps"`
	PotentialChallenges []string             `json:"potential_challenges"`
}

// Markdown flattens the analysis into a single markdown document:
// repository heading, feature summary, numbered implementation steps with
// fenced snippets, numbered setup instructions, challenge bullets, and the
// relevant-file listing. Optional fields that are absent produce no output
// at all, and empty sections are skipped entirely.
func (a *Analysis) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", a.RepositoryName)
	fmt.Fprintf(&b, "## Feature Summary\n%s\n", a.FeatureSummary)

	if len(a.ImplementationSteps) > 0 {
		b.WriteString("\n## Implementation Steps\n")
		for _, s := range a.ImplementationSteps {
			fmt.Fprintf(&b, "\n%d. %s\n", s.StepNumber, s.Description)
			if s.FilePath != "" {
				fmt.Fprintf(&b, "\n   File: `%s`\n", s.FilePath)
			}
			if s.CodeSnippet != "" {
				fmt.Fprintf(&b, "\n```\n%s\n```\n", strings.TrimRight(s.CodeSnippet, "\n"))
			}
		}
	}

	if len(a.SetupInstructions) > 0 {
		b.WriteString("\n## Setup Instructions\n")
		for _, s := range a.SetupInstructions {
			fmt.Fprintf(&b, "\n%d. %s\n", s.StepNumber, s.Description)
			if s.Code != "" {
				fmt.Fprintf(&b, "\n```sh\n%s\n```\n", strings.TrimRight(s.Code, "\n"))
			}
		}
	}

	if len(a.PotentialChallenges) > 0 {
		b.WriteString("\n## Potential Challenges\n\n")
		for _, c := range a.PotentialChallenges {
			fmt.Fprintf(&b, "- %s\n", c)
		}
	}

	if len(a.RelevantFiles) > 0 {
		b.WriteString("\n## Relevant Files\n")
		for _, f := range a.RelevantFiles {
			fmt.Fprintf(&b, "\n### `%s`\n\n", f.Path)
			fmt.Fprintf(&b, "- Importance: %d/10\n", f.Importance)
			fmt.Fprintf(&b, "- %s\n", f.Reason)
			if f.ContentPreview != "" {
				fmt.Fprintf(&b, "\n```\n%s\n```\n", strings.TrimRight(f.ContentPreview, "\n"))
			}
		}
	}

	return b.String()
}
