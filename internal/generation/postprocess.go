package generation

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jamiehdev/commit-wizard/internal/models"
)

// Abbreviation tables applied by shortenDescription, longest words first.
var (
	longWordReplacer = strings.NewReplacer(
		"functionality", "func",
		"configuration", "config",
		"implementation", "impl",
		"documentation", "docs",
		"specification", "spec",
		"repository", "repo",
		"database", "db",
		"application", "app",
		"development", "dev",
		"production", "prod",
		"environment", "env",
		"authentication", "auth",
		"authorization", "authz",
		"administrator", "admin",
		"management", "mgmt",
		"information", "info",
	)

	shortWordReplacer = strings.NewReplacer(
		"update", "upd",
		"message", "msg",
		"commit", "cmt",
		"generation", "gen",
		"validation", "valid",
		"description", "desc",
		"character", "char",
		"maximum", "max",
		"minimum", "min",
		"function", "fn",
		"variable", "var",
		"parameter", "param",
	)
)

// fillerWords carry no meaning and go first when space runs out.
var fillerWords = []string{"the", "a", "an", "for", "with", "to", "in", "of"}

// PostProcessCommitMessage enforces the mechanically fixable parts of
// the grammar on the header: a lowercase description opener, no trailing
// period, and a deterministic shortening attempt when the description
// runs past the length ceiling. Body lines pass through untouched.
func PostProcessCommitMessage(msg string) string {
	firstLine, body, hasBody := strings.Cut(msg, "\n")

	i := strings.Index(firstLine, ":")
	if i < 0 {
		return msg
	}

	typeScope := strings.TrimRight(firstLine[:i], " \t")
	description := strings.TrimSpace(firstLine[i+1:])

	if description != "" {
		first, size := utf8.DecodeRuneInString(description)
		if unicode.IsUpper(first) {
			description = string(unicode.ToLower(first)) + description[size:]
		}

		description = strings.TrimSuffix(description, ".")

		if len(description) > maxDescriptionLen {
			if short, ok := shortenDescription(description); ok {
				description = short
			}
		}
	}

	out := typeScope + ": " + description
	if hasBody {
		out += "\n" + body
	}
	return out
}

// shortenDescription tries three increasingly aggressive passes to pull
// an overlong description under the ceiling: long-word abbreviation,
// filler-word removal, then short-word abbreviation. The second return
// is false when even that is not enough.
func shortenDescription(description string) (string, bool) {
	if len(description) <= maxDescriptionLen {
		return description, true
	}

	shortened := longWordReplacer.Replace(description)
	if len(shortened) <= maxDescriptionLen {
		return shortened, true
	}

	words := strings.Fields(shortened)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if !slices.Contains(fillerWords, w) {
			kept = append(kept, w)
		}
	}
	shortened = strings.Join(kept, " ")
	if len(shortened) <= maxDescriptionLen {
		return shortened, true
	}

	shortened = shortWordReplacer.Replace(shortened)
	if len(shortened) <= maxDescriptionLen {
		return shortened, true
	}

	return "", false
}

// FixCommitFormat repairs the common model mistakes that do not need a
// regeneration: prose spilled into the type field, bracket scopes, and
// loose comma spacing. The caller still validates the result.
func FixCommitFormat(msg string) (string, error) {
	msg = strings.TrimSpace(msg)

	// a very long type field usually means the model put half the
	// description before the colon
	if before, after, ok := strings.Cut(msg, ":"); ok {
		if len(before) > 20 && !strings.Contains(before, "(") {
			if actualType, _, found := strings.Cut(before, " "); found && models.IsValidCommitType(actualType) {
				return actualType + ": " + strings.TrimSpace(after), nil
			}
		}
	}

	normalized := normalizeCommitFormat(msg)
	if err := ValidateCommitMessage(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}
