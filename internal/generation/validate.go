package generation

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jamiehdev/commit-wizard/internal/models"
	"github.com/jamiehdev/commit-wizard/internal/regex"
)

// maxDescriptionLen is the hard ceiling on the header description.
const maxDescriptionLen = 72

// Validation failures the orchestrator can repair by regenerating with a
// corrective hint. Everything else fails the attempt outright.
var (
	errDescriptionTooLong = errors.New("description too long")
	errInvalidScope       = errors.New("invalid scope")
)

// vagueWords are scored by substring match over the lowercased
// description. More than two of them reads like filler.
var vagueWords = []string{
	"things", "stuff", "various", "multiple", "some", "several", "many",
	"few", "miscellaneous", "misc", "general", "generic", "updates",
	"changes", "modifications", "improvements", "fixes",
}

// nonImperative lists the past-tense and gerund openers the grammar
// rejects in favour of the imperative mood.
var nonImperative = []string{
	"added", "removed", "deleted", "created", "updated", "modified",
	"fixing", "adding", "removing", "creating", "updating", "modifying",
}

// ValidateCommitMessage checks the first line of msg against the
// conventional commit grammar: a known type, an optional well-formed
// scope, and a 1-72 character imperative description.
func ValidateCommitMessage(msg string) error {
	if strings.TrimSpace(msg) == "" {
		return errors.New("commit message is empty")
	}

	firstLine, _, _ := strings.Cut(msg, "\n")

	if strings.Contains(firstLine, "(") && strings.Contains(firstLine, ")") {
		typePart, rest, _ := strings.Cut(firstLine, "(")
		if err := validateType(strings.TrimRight(typePart, "!")); err != nil {
			return err
		}

		scope, description, ok := strings.Cut(rest, ")!: ")
		if !ok {
			scope, description, ok = strings.Cut(rest, "): ")
		}
		if !ok {
			return errors.New("invalid format: expected 'type(scope): description' or 'type(scope)!: description'")
		}

		if scope == "" || !regex.ScopeChars.MatchString(scope) {
			return fmt.Errorf("%w %q: scopes use letters, digits, hyphens, underscores, commas, dots and slashes", errInvalidScope, scope)
		}

		return validateDescription(description)
	}

	typePart, description, ok := strings.Cut(firstLine, "!: ")
	if !ok {
		typePart, description, ok = strings.Cut(firstLine, ": ")
	}
	if !ok {
		return errors.New("invalid format: expected 'type: description' or 'type(scope): description'")
	}
	if err := validateType(typePart); err != nil {
		return err
	}

	return validateDescription(description)
}

func validateType(typePart string) error {
	if !models.IsValidCommitType(typePart) {
		return fmt.Errorf("invalid type %q, must be one of: %s", typePart, strings.Join(models.CommitTypes, ", "))
	}
	return nil
}

func validateDescription(description string) error {
	if description == "" {
		return errors.New("description cannot be empty")
	}

	if len(description) > maxDescriptionLen {
		return fmt.Errorf("%w (%d chars), must be %d characters or fewer",
			errDescriptionTooLong, len(description), maxDescriptionLen)
	}

	if strings.HasSuffix(description, ".") {
		return errors.New("description should not end with a period")
	}

	first, _ := utf8.DecodeRuneInString(description)
	if unicode.IsUpper(first) {
		return errors.New("description should start with a lowercase letter")
	}

	lower := strings.ToLower(description)
	var found []string
	for _, word := range vagueWords {
		if strings.Contains(lower, word) {
			found = append(found, word)
		}
	}
	if len(found) > 2 {
		return fmt.Errorf("description too vague: contains %d filler words (%s)",
			len(found), strings.Join(found, ", "))
	}

	words := strings.Fields(description)
	if len(words) > 0 && slices.Contains(nonImperative, words[0]) {
		return fmt.Errorf("description should use the imperative mood ('add', not %q)", words[0])
	}

	return nil
}

// CommitParts is the decomposed header of a conventional commit.
type CommitParts struct {
	Type        string
	Scope       string
	Description string
	Breaking    bool
}

// ParseFirstLine decomposes a commit header into its grammar parts. The
// second return is false when the header does not match the grammar.
func ParseFirstLine(msg string) (CommitParts, bool) {
	firstLine, _, _ := strings.Cut(msg, "\n")
	m := regex.ConventionalCommit.FindStringSubmatch(firstLine)
	if m == nil {
		return CommitParts{}, false
	}
	return CommitParts{
		Type:        m[1],
		Scope:       m[3],
		Description: m[5],
		Breaking:    m[4] == "!",
	}, true
}
