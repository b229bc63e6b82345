package git

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/jamiehdev/commit-wizard/internal/models"
)

const maxKeyChanges = 3

// buildSummary renders the digest that feeds both the verbose output
// and the model prompt: a totals line followed by a per-file breakdown
// with coarse descriptors and key-change phrases.
func buildSummary(files []models.ModifiedFile) string {
	totalAdded := 0
	totalRemoved := 0
	for i := range files {
		totalAdded += files[i].AddedLines
		totalRemoved += files[i].RemovedLines
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d file%s changed, %d insertion%s, %d deletion%s",
		len(files), plural(len(files)), totalAdded, plural(totalAdded), totalRemoved, plural(totalRemoved))
	b.WriteString("\n\nfile breakdown:\n")

	for i := range files {
		f := &files[i]
		fmt.Fprintf(&b, "  %s (+%d, -%d)%s", f.Path, f.AddedLines, f.RemovedLines, describeChange(f))
		if key := extractKeyChanges(f.DiffContent); len(key) > 0 {
			fmt.Fprintf(&b, "\n    key changes: %s", strings.Join(key, ", "))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// describeChange picks the coarse per-file descriptor.
func describeChange(f *models.ModifiedFile) string {
	switch {
	case f.RemovedLines == 0 && f.AddedLines > 5:
		return " (new file)"
	case f.AddedLines > f.RemovedLines*2:
		return " (major additions)"
	case f.RemovedLines > f.AddedLines*2:
		return " (major deletions)"
	default:
		return " (modified)"
	}
}

// extractKeyChanges scans the added lines of a patch for a handful of
// recognisable change shapes. Fast substring checks only, no parsing.
// Results are deduplicated, sorted, and capped at maxKeyChanges.
func extractKeyChanges(diffContent string) []string {
	seen := make(map[string]struct{})
	for _, raw := range strings.Split(diffContent, "\n") {
		if !strings.HasPrefix(raw, "+") || strings.HasPrefix(raw, "+++") {
			continue
		}
		line := strings.TrimSpace(raw[1:])
		if line == "" {
			continue
		}

		if name := declaredFunctionName(line); name != "" {
			seen["add function "+name] = struct{}{}
		}
		if lineContainsAny(line, "struct ", "enum ", "class ", "interface ") {
			seen["add type definition"] = struct{}{}
		}
		lower := strings.ToLower(line)
		if lineContainsAny(lower, "use ", "import ", "from ") {
			seen["add dependencies"] = struct{}{}
		}
		if lineContainsAny(line, "config", "setting") {
			seen["modify configuration"] = struct{}{}
		}
		if lineContainsAny(line, "Error", "Exception", "Result") {
			seen["improve error handling"] = struct{}{}
		}
		if lineContainsAny(line, "async", "await", "cache") {
			seen["add async/performance features"] = struct{}{}
		}
	}

	if len(seen) == 0 {
		return nil
	}
	changes := make([]string, 0, len(seen))
	for change := range seen {
		changes = append(changes, change)
	}
	sort.Strings(changes)
	if len(changes) > maxKeyChanges {
		changes = changes[:maxKeyChanges]
	}
	return changes
}

// declaredFunctionName pulls the identifier that follows a function
// keyword, or "" when the line does not declare one.
func declaredFunctionName(line string) string {
	var rest string
	switch {
	case strings.Contains(line, "fn ") && (strings.Contains(line, "pub ") || strings.Contains(line, "async ")):
		rest = line[strings.Index(line, "fn ")+len("fn "):]
	case strings.Contains(line, "func "):
		rest = line[strings.Index(line, "func ")+len("func "):]
	case strings.Contains(line, "function "):
		rest = line[strings.Index(line, "function ")+len("function "):]
	case strings.Contains(line, "def "):
		rest = line[strings.Index(line, "def ")+len("def "):]
	default:
		return ""
	}

	var b strings.Builder
	for _, r := range rest {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

func lineContainsAny(line string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(line, sub) {
			return true
		}
	}
	return false
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
