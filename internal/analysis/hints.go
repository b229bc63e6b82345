package analysis

import (
	"strings"

	"github.com/jamiehdev/commit-wizard/internal/models"
)

// Keyword families scanned over the added lines of a patch. Substring
// semantics on purpose: the point is language-agnostic signal across
// many ecosystems, not syntactic truth for any one of them.
var (
	structKeywords = []string{
		"public class ", "class ", "public interface ", "interface ",
		"public record ", "record ", "export class ", "export interface ",
		"export type ", "type ", "struct ",
	}
	enumKeywords     = []string{"public enum ", "enum "}
	functionKeywords = []string{"public ", "function ", "const ", "=> ", "def ", "fn ", "pub fn", "func "}
	moduleKeywords   = []string{"namespace ", "module ", "export ", "mod ", "package "}

	bugKeywords         = []string{"fix", "bug", "error", "issue", "problem", "crash"}
	errorFlowKeywords   = []string{"result", "option", "unwrap", "expect", "context"}
	refactorKeywords    = []string{"refactor", "rename", "move", "extract", "cleanup"}
	performanceKeywords = []string{"perf", "performance", "optimis", "optimiz", "speed", "cache", "async"}

	importKeywords  = []string{"dependencies", "packages", "using ", "import ", "require(", "from "}
	manifestMarkers = []string{"package.json", "cargo.toml", ".csproj", "requirements.txt", "go.mod"}
)

// AnalyseChangeHints derives qualitative tags from one file's patch
// text. A brand-new file short-circuits to the feature tags; everything
// else is keyword-scanned. The result is never empty: a change with no
// recognisable signal still reads as a new feature.
func AnalyseChangeHints(diffText string, isNewFile bool) []models.ChangeHint {
	set := newHintSet()
	if isNewFile {
		set.add(models.HintNewFeature)
		set.add(models.HintMajorAddition)
		return set.ordered
	}

	contentLower := strings.ToLower(diffText)

	var addedLines []string
	removedCount := 0
	for _, line := range strings.Split(diffText, "\n") {
		switch {
		case strings.HasPrefix(line, "+"):
			addedLines = append(addedLines, line[1:])
		case strings.HasPrefix(line, "-"):
			removedCount++
		}
	}
	addedContent := strings.ToLower(strings.Join(addedLines, "\n"))

	netAdditions := len(addedLines) - removedCount
	if netAdditions < 0 {
		netAdditions = 0
	}

	if containsAny(addedContent, structKeywords) {
		set.add(models.HintNewStruct)
		set.add(models.HintNewFeature)
	}
	if containsAny(addedContent, enumKeywords) {
		set.add(models.HintNewEnum)
		set.add(models.HintNewFeature)
	}
	if containsAny(addedContent, functionKeywords) {
		set.add(models.HintNewFunction)
		if netAdditions > 10 {
			set.add(models.HintNewFeature)
		}
	}
	if containsAny(addedContent, moduleKeywords) {
		set.add(models.HintNewModule)
		set.add(models.HintNewFeature)
	}

	// new selector blocks in stylesheets
	if strings.Contains(addedContent, ".") &&
		(strings.Contains(addedContent, "{") || strings.Contains(addedContent, "}")) &&
		netAdditions > 5 {
		set.add(models.HintNewFeature)
	}

	if netAdditions > 20 {
		set.add(models.HintMajorAddition)
		set.add(models.HintNewFeature)
	} else if netAdditions <= 5 && !set.hasStructural() {
		set.add(models.HintMinorTweak)
	}

	// a big block of new code full of the word "error" is a feature,
	// not a fix, so MajorAddition suppresses the fix-ish tags
	if containsAny(contentLower, bugKeywords) && !set.has(models.HintMajorAddition) {
		set.add(models.HintBugFix)
	}
	if containsAny(addedContent, errorFlowKeywords) {
		set.add(models.HintErrorHandling)
	}
	if containsAny(contentLower, refactorKeywords) && !set.has(models.HintMajorAddition) {
		set.add(models.HintRefactor)
	}
	if containsAny(contentLower, performanceKeywords) {
		set.add(models.HintPerformance)
	}

	if containsAny(contentLower, importKeywords) &&
		(containsAny(contentLower, manifestMarkers) ||
			strings.Contains(addedContent, "using ") ||
			strings.Contains(addedContent, "import ")) {
		set.add(models.HintDependencies)
	}

	if hasDocMarkers(contentLower, addedContent, addedLines) {
		set.add(models.HintDocumentation)
	}

	if len(set.ordered) == 0 {
		set.add(models.HintNewFeature)
	}
	return set.ordered
}

// hasDocMarkers looks for doc comments or markdown structure among the
// added lines.
func hasDocMarkers(contentLower, addedContent string, addedLines []string) bool {
	if strings.Contains(addedContent, "///") || strings.Contains(addedContent, "/**") {
		return true
	}
	if strings.Contains(contentLower, "doc") && strings.Contains(addedContent, "//") {
		return true
	}
	for _, line := range addedLines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") || strings.HasPrefix(trimmed, "## ") || strings.HasPrefix(trimmed, "### ") {
			return true
		}
	}
	return false
}

// hintSet deduplicates while keeping insertion order, since hints are a
// set but callers want stable output.
type hintSet struct {
	ordered []models.ChangeHint
	seen    map[models.ChangeHint]bool
}

func newHintSet() *hintSet {
	return &hintSet{seen: make(map[models.ChangeHint]bool)}
}

func (s *hintSet) add(h models.ChangeHint) {
	if s.seen[h] {
		return
	}
	s.seen[h] = true
	s.ordered = append(s.ordered, h)
}

func (s *hintSet) has(h models.ChangeHint) bool { return s.seen[h] }

func (s *hintSet) hasStructural() bool {
	return s.seen[models.HintNewStruct] || s.seen[models.HintNewEnum] ||
		s.seen[models.HintNewFunction] || s.seen[models.HintNewModule]
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
