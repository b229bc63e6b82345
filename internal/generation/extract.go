package generation

import (
	"strings"

	"github.com/jamiehdev/commit-wizard/internal/models"
	"github.com/jamiehdev/commit-wizard/internal/regex"
)

// ExtractCommitMessage pulls a commit message candidate out of a raw
// model response. A conventional commit inside a fenced code block wins,
// then the same shape anywhere in the response, and as a last resort the
// first non-empty line of the cleaned response.
func ExtractCommitMessage(response string) string {
	response = strings.Trim(strings.TrimSpace(response), "\"`*")
	lines := strings.Split(response, "\n")

	var commitLines []string
	foundStart := false
	inCodeBlock := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			if inCodeBlock && foundStart {
				break
			}
			inCodeBlock = !inCodeBlock
			continue
		}

		if !inCodeBlock {
			continue
		}
		if !foundStart {
			if isLikelyCommitMessage(trimmed) {
				foundStart = true
				commitLines = append(commitLines, trimmed)
			}
			continue
		}
		if strings.HasPrefix(trimmed, "Breaking changes:") || strings.HasPrefix(trimmed, "Note:") {
			break
		}
		commitLines = append(commitLines, trimmed)
	}

	if len(commitLines) > 0 {
		return normalizeCommitFormat(cleanCommitMessage(strings.Join(commitLines, "\n")))
	}

	commitLines = nil
	foundStart = false

scan:
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if !foundStart {
			if isLikelyCommitMessage(trimmed) {
				foundStart = true
				commitLines = append(commitLines, trimmed)
			}
			continue
		}
		switch {
		case strings.HasPrefix(trimmed, "Breaking changes:"), strings.HasPrefix(trimmed, "Note:"):
			break scan
		case trimmed == "":
			commitLines = append(commitLines, "")
		case strings.HasPrefix(trimmed, "-"), strings.HasPrefix(trimmed, "*"), strings.HasPrefix(trimmed, "BREAKING CHANGE:"):
			commitLines = append(commitLines, trimmed)
		case len(commitLines) > 2:
			// already inside the body, keep collecting
			commitLines = append(commitLines, trimmed)
		default:
			break scan
		}
	}

	if len(commitLines) > 0 {
		return normalizeCommitFormat(cleanCommitMessage(strings.Join(commitLines, "\n")))
	}

	cleaned := normalizeCommitFormat(cleanCommitMessage(response))
	for _, line := range strings.Split(cleaned, "\n") {
		if line != "" {
			return line
		}
	}
	return cleaned
}

// cleanCommitMessage strips response artifacts (fences, labels, quotes,
// meta-commentary) and reflows body bullets onto a uniform "- " marker.
func cleanCommitMessage(msg string) string {
	msg = strings.TrimSpace(msg)
	msg = strings.TrimPrefix(msg, "```")
	msg = strings.TrimSuffix(msg, "```")
	msg = strings.TrimPrefix(msg, "commit message:")
	msg = strings.TrimPrefix(msg, "generated commit:")
	msg = strings.TrimPrefix(msg, "here's the commit message:")
	msg = strings.TrimSpace(msg)
	msg = strings.Trim(msg, "\"`")

	var cleaned []string
	inBody := false

	for _, line := range strings.Split(msg, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "This commit") ||
			strings.HasPrefix(trimmed, "The commit") ||
			strings.HasPrefix(trimmed, "Note:") ||
			strings.HasPrefix(trimmed, "Explanation:") {
			continue
		}

		if len(cleaned) == 1 && trimmed == "" {
			inBody = true
			cleaned = append(cleaned, "")
			continue
		}

		if inBody && (strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*")) {
			content := strings.TrimSpace(strings.TrimLeft(trimmed, "-*"))
			cleaned = append(cleaned, "- "+content)
		} else if trimmed != "" || inBody {
			cleaned = append(cleaned, trimmed)
		}
	}

	return strings.Join(cleaned, "\n")
}

// isLikelyCommitMessage reports whether line opens with a conventional
// commit type, with or without a scope or breaking-change marker.
func isLikelyCommitMessage(line string) bool {
	before, _, ok := strings.Cut(line, ":")
	if !ok {
		return false
	}
	typePart := before
	if i := strings.Index(typePart, "("); i >= 0 {
		typePart = typePart[:i]
	}
	return models.IsValidCommitType(strings.TrimRight(typePart, "!"))
}

// normalizeScope collapses whitespace around scope commas, so
// "ai, napi" becomes "ai,napi".
func normalizeScope(scope string) string {
	return regex.ScopeComma.ReplaceAllString(strings.TrimSpace(scope), ",")
}

// normalizeCommitFormat rewrites type[scope]: headers to type(scope):
// and tidies comma spacing inside an existing scope.
func normalizeCommitFormat(msg string) string {
	msg = strings.TrimSpace(msg)

	if regex.BracketScope.MatchString(msg) {
		if before, after, ok := strings.Cut(msg, ":"); ok {
			typeScope := strings.ReplaceAll(strings.TrimSpace(before), "[", "(")
			typeScope = strings.ReplaceAll(typeScope, "]", ")")
			msg = typeScope + ": " + strings.TrimSpace(after)
		}
	}

	open := strings.Index(msg, "(")
	closing := strings.Index(msg, ")")
	if open >= 0 && closing > open {
		return msg[:open+1] + normalizeScope(msg[open+1:closing]) + msg[closing:]
	}

	return msg
}
