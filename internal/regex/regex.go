package regex

import "regexp"

var (
	// Commit message grammar
	ConventionalCommit = regexp.MustCompile(`^(feat|fix|docs|style|refactor|perf|test|build|ci|chore|revert)(\(([^)]+)\))?(!)?:\s*(.+)`)
	BreakingChange     = regexp.MustCompile(`(?m)^BREAKING[ -]CHANGE:\s*(.+)`)
	ScopeChars         = regexp.MustCompile(`^[a-zA-Z0-9,./_-]+$`)

	// Model output normalization
	BracketScope = regexp.MustCompile(`^([a-z]+)\[([^]]+)]!?:`)
	ScopeComma   = regexp.MustCompile(`\s*,\s*`)

	// Scope derivation from paths
	ScopeCleanup = regexp.MustCompile(`[^a-z0-9-]`)
)
