package config

import "strings"

const (
	DefaultGitHubOrg    = "Datasembly"
	DefaultClubhouseURL = "https://api.clubhouse.io/api/v3"
	DefaultState        = "open"
)

// Flag names, shared by the CLI and the validation messages.
const (
	FlagGitHubToken      = "github-token"
	FlagClubhouseToken   = "clubhouse-token"
	FlagGitHubRepo       = "github-repo"
	FlagGitHubOrg        = "github-org"
	FlagClubhouseProject = "clubhouse-project"
	FlagClubhouseURL     = "clubhouse-url"
	FlagState            = "state"
	FlagLabel            = "label"
)

var validStates = []string{"open", "closed", "all"}

// ImportOptions holds everything one import run needs.
type ImportOptions struct {
	GitHubToken      string
	ClubhouseToken   string
	GitHubOrg        string
	GitHubRepo       string
	ClubhouseProject string
	ClubhouseURL     string
	State            string
	Label            string
}

type ViolationKind int

const (
	ViolationMissing ViolationKind = iota
	ViolationInvalid
)

// Violation names a flag that is missing or holds an unusable value.
type Violation struct {
	Flag string
	Kind ViolationKind
}

// Validate reports every problem with the options, not just the first one.
func (o ImportOptions) Validate() []Violation {
	var violations []Violation

	required := []struct {
		flag  string
		value string
	}{
		{FlagGitHubToken, o.GitHubToken},
		{FlagClubhouseToken, o.ClubhouseToken},
		{FlagClubhouseProject, o.ClubhouseProject},
		{FlagGitHubRepo, o.GitHubRepo},
		{FlagLabel, o.Label},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			violations = append(violations, Violation{Flag: r.flag, Kind: ViolationMissing})
		}
	}

	if !isValidState(o.State) {
		violations = append(violations, Violation{Flag: FlagState, Kind: ViolationInvalid})
	}

	return violations
}

// NormalizedState returns the state lower-cased, as GitHub search expects it.
func (o ImportOptions) NormalizedState() string {
	return strings.ToLower(strings.TrimSpace(o.State))
}

// Org returns the configured organization, falling back to DefaultGitHubOrg.
func (o ImportOptions) Org() string {
	if o.GitHubOrg == "" {
		return DefaultGitHubOrg
	}
	return o.GitHubOrg
}

// BaseURL returns the Clubhouse API URL, falling back to DefaultClubhouseURL.
func (o ImportOptions) BaseURL() string {
	if o.ClubhouseURL == "" {
		return DefaultClubhouseURL
	}
	return o.ClubhouseURL
}

func isValidState(state string) bool {
	state = strings.ToLower(strings.TrimSpace(state))
	for _, s := range validStates {
		if s == state {
			return true
		}
	}
	return false
}
