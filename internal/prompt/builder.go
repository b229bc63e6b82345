// Package prompt renders the diff analysis into the text prompt sent
// to the language model. Rendering is pure string assembly: identical
// inputs always produce identical output.
package prompt

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/jamiehdev/commit-wizard/internal/models"
)

const (
	// maxDiffLines bounds the raw diff text injected across all files.
	maxDiffLines = 3000
	// maxDiffFiles bounds how many files contribute raw diff text.
	maxDiffFiles = 15
	// maxPathsListed bounds the scope-determination path list.
	maxPathsListed = 10
	// maxPurposeFiles bounds the change-context purpose list.
	maxPurposeFiles = 5
	// mixedLanguageShare is the fraction of recognised files a language
	// must exceed before the diff counts as mixed-language.
	mixedLanguageShare = 0.2
)

// Build renders the analysed diff into the user prompt for the model:
// complexity, body requirement, language context, detected patterns,
// recommended structure, the diff summary, and a budgeted slice of raw
// diff content, in that fixed order.
func Build(diffInfo *models.DiffInfo, intelligence *models.CommitIntelligence) string {
	var b strings.Builder

	b.WriteString("generate a conventional commit message based on the following analysis:\n\n")

	fmt.Fprintf(&b, "📊 COMMIT COMPLEXITY: %.1f/5.0 - %s\n",
		intelligence.ComplexityScore, complexityBand(intelligence.ComplexityScore))

	if intelligence.RequiresBody {
		b.WriteString("\n🔴 BODY REQUIRED - this commit is too complex for a single line.\n")
		b.WriteString("the commit message MUST include a body with bullet points.\n\n")
	} else {
		b.WriteString("\n✅ SINGLE LINE - this is a focused change, no body needed.\n\n")
	}

	language := inferDominantLanguage(diffInfo)
	if language != "Unknown" {
		fmt.Fprintf(&b, "\n🌐 LANGUAGE CONTEXT: Primarily %s code - tailor examples accordingly.\n", language)
	}

	b.WriteString("🔍 DETECTED PATTERNS:\n")
	for _, p := range intelligence.DetectedPatterns {
		fmt.Fprintf(&b, "- %s: %s (impact: %.1f)\n", FormatPatternType(p.Type), p.Description, p.Impact)
	}
	b.WriteByte('\n')

	b.WriteString("🔧 CHANGE CONTEXT:\n")
	fmt.Fprintf(&b, "- Primary subsystem affected: %s\n", detectSubsystem(diffInfo))
	b.WriteString("- File purposes:\n")
	for i := range diffInfo.Files {
		if i >= maxPurposeFiles {
			break
		}
		fmt.Fprintf(&b, "  * %s → %s\n", diffInfo.Files[i].Path, filePurpose(diffInfo.Files[i].Path))
	}
	b.WriteByte('\n')

	b.WriteString("📝 RECOMMENDED COMMIT STRUCTURE (choose best fit based on code analysis):\n")
	fmt.Fprintf(&b, "type: %s\n", intelligence.CommitTypeHint)
	b.WriteString("scope: [DETERMINE FROM FILE PATHS AND CONTEXT ABOVE]\n")

	b.WriteString("\n📂 FILE PATHS AFFECTED (use these to determine the most appropriate scope):\n")
	for i := range diffInfo.Files {
		if i >= maxPathsListed {
			fmt.Fprintf(&b, "... and %d more files\n", len(diffInfo.Files)-maxPathsListed)
			break
		}
		fmt.Fprintf(&b, "- %s\n", diffInfo.Files[i].Path)
	}

	b.WriteString(scopeGuidelines)
	b.WriteString(commonMistakes)
	b.WriteString(formatExamples)

	fmt.Fprintf(&b, "\nRATIONALE FOR TYPE RECOMMENDATION:\n- Type '%s' suggested based on patterns: %s\n",
		intelligence.CommitTypeHint, patternTypeList(intelligence.DetectedPatterns))
	fmt.Fprintf(&b, "\nALLOWED TYPES: %s\n\n", strings.Join(models.CommitTypes, ", "))

	if intelligence.RequiresBody && len(intelligence.SuggestedBullets) > 0 {
		b.WriteString("📌 SUGGESTED BULLET POINTS FOR BODY:\n")
		for _, bullet := range intelligence.SuggestedBullets {
			fmt.Fprintf(&b, "- %s\n", bullet)
		}
		b.WriteByte('\n')
	}

	b.WriteString("📁 ACTUAL CODE CHANGES:\n")
	b.WriteString(diffInfo.Summary)
	b.WriteByte('\n')

	if len(diffInfo.Files) > 0 {
		writeDiffContent(&b, diffInfo)
	}
	b.WriteByte('\n')

	writeLanguageExamples(&b, intelligence, language)
	writeInstructions(&b, intelligence)

	b.WriteString("generate the commit message now, with no additional commentary.\n")

	return b.String()
}

// SystemPrompt picks the model persona matching how demanding the
// commit is.
func SystemPrompt(intelligence *models.CommitIntelligence) string {
	switch {
	case intelligence.ComplexityScore > 3.0:
		return "you are an expert software engineer writing precise, detailed commit messages. analyse the code changes and generate a conventional commit message that fully explains complex architectural changes."
	case intelligence.RequiresBody:
		return "you are a senior developer creating clear commit messages. generate a conventional commit with proper type, scope, and a body with bullet points explaining the changes."
	default:
		return "you are a developer writing concise commit messages. generate a single-line conventional commit message that clearly describes the change."
	}
}

func complexityBand(score float64) string {
	switch {
	case score < 1.5:
		return "simple"
	case score < 2.5:
		return "moderate"
	default:
		return "complex"
	}
}

const scopeGuidelines = `
🎯 SCOPE DETERMINATION GUIDELINES:
- analyse the file paths to identify the most specific, meaningful scope
- use the actual module, component, feature, or project folder name
- if files span multiple unrelated areas, omit the scope
- prefer specific scopes over generic ones (e.g., 'auth' not 'backend')
`

const commonMistakes = `
⚠️ COMMON MISTAKES TO AVOID:
- DON'T use 'security' just because validation is mentioned
- DON'T confuse commit message validation with input/data validation
- DON'T use generic scopes like 'app', 'project', 'system', 'frontend', 'backend'
- DON'T use file extensions as scopes
`

const formatExamples = `
📋 FORMAT EXAMPLES (follow these EXACTLY):
✅ CORRECT formats:
  - fix(ai): improve validation logic
  - feat(auth,api): add oauth support
  - refactor: simplify error handling
❌ WRONG formats:
  - fix(ai, napi): improve validation ← NO SPACES after commas!
  - Fix(ai): improve validation ← type must be lowercase!
`

// writeDiffContent renders the budgeted raw-diff slice: boring files
// are excluded outright, the rest walk in priority order under a total
// line budget and a file-count ceiling. Files that contribute no text
// are summarised only by a count.
func writeDiffContent(b *strings.Builder, diffInfo *models.DiffInfo) {
	b.WriteString("\n🔍 DIFF CONTENT (for context):\n")

	important := importantFiles(diffInfo.Files)
	rendered := 0
	totalLines := 0
	for _, f := range important {
		if rendered >= maxDiffFiles || totalLines >= maxDiffLines {
			break
		}

		fmt.Fprintf(b, "\n--- %s (+%d -%d) ---\n", f.Path, f.AddedLines, f.RemovedLines)

		meaningful := meaningfulDiffLines(f.DiffContent, diffLineBudget(f, totalLines))
		if meaningful != "" {
			b.WriteString(meaningful)
			b.WriteByte('\n')
			totalLines += strings.Count(meaningful, "\n") + 1
		} else {
			fmt.Fprintf(b, "Large diff with %d additions, %d deletions\n", f.AddedLines, f.RemovedLines)
		}
		rendered++
	}

	if skipped := len(diffInfo.Files) - rendered; skipped > 0 {
		fmt.Fprintf(b, "\n... and %d more files (auto-generated/less important)\n", skipped)
	}
}

func writeLanguageExamples(b *strings.Builder, intelligence *models.CommitIntelligence, language string) {
	b.WriteString("✨ LANGUAGE-TAILORED EXAMPLES FOR THIS TYPE OF CHANGE:\n")
	b.WriteString("```\n")

	scope := ""
	if intelligence.ScopeHint != "" {
		scope = "(" + intelligence.ScopeHint + ")"
	}

	if intelligence.RequiresBody {
		writeMultiLineExample(b, intelligence.CommitTypeHint, scope, language)
	} else {
		writeSingleLineExamples(b, intelligence.CommitTypeHint, scope, language)
	}

	b.WriteString("```\n\n")
}

func writeMultiLineExample(b *strings.Builder, commitType, scope, language string) {
	switch {
	case strings.HasPrefix(language, "Mixed"):
		fmt.Fprintf(b, "%s%s: implement cross-platform functionality\n\n", commitType, scope)
		b.WriteString("- Add shared logic between frontend and backend\n")
		b.WriteString("- Implement consistent error handling patterns\n")
		b.WriteString("- Create unified configuration management\n")
	case language == "Rust":
		fmt.Fprintf(b, "%s%s: implement pattern detection for commit analysis\n\n", commitType, scope)
		b.WriteString("- Add PatternType enum with deprecation detection\n")
		b.WriteString("- Implement detect_universal_patterns function\n")
		b.WriteString("- Enhance Result error handling with anyhow context\n")
	case language == "JavaScript" || language == "TypeScript":
		fmt.Fprintf(b, "%s%s: implement responsive ui components\n\n", commitType, scope)
		b.WriteString("- Add responsive FlexContainer with media queries\n")
		b.WriteString("- Implement theme provider for dark/light modes\n")
		b.WriteString("- Create reusable Button and Input components\n")
	default:
		fmt.Fprintf(b, "%s%s: describe the main change briefly\n\n", commitType, scope)
		b.WriteString("- Explain first major change with technical specifics\n")
		b.WriteString("- Describe second significant modification\n")
		b.WriteString("- Note any important architectural decisions\n")
	}
}

func writeSingleLineExamples(b *strings.Builder, commitType, scope, language string) {
	switch {
	case commitType == "feat" && language == "Rust":
		fmt.Fprintf(b, "feat%s: add deprecation detection in pattern analysis\n", scope)
		fmt.Fprintf(b, "feat%s: implement Result-based error propagation\n", scope)
	case commitType == "feat" && (language == "JavaScript" || language == "TypeScript"):
		fmt.Fprintf(b, "feat%s: add dark mode toggle with context provider\n", scope)
		fmt.Fprintf(b, "feat%s: implement responsive navigation component\n", scope)
	case commitType == "fix":
		fmt.Fprintf(b, "fix%s: resolve memory leak in diff processing\n", scope)
		fmt.Fprintf(b, "fix%s: handle edge case in api response parsing\n", scope)
	case commitType == "refactor":
		fmt.Fprintf(b, "refactor%s: extract validation logic into utilities\n", scope)
		fmt.Fprintf(b, "refactor%s: simplify error handling patterns\n", scope)
	default:
		fmt.Fprintf(b, "%s%s: brief description of specific change\n", commitType, scope)
	}
}

func writeInstructions(b *strings.Builder, intelligence *models.CommitIntelligence) {
	b.WriteString("🎯 INSTRUCTIONS:\n")
	b.WriteString("1. ANALYSE THE CODE DIFFS and patterns to choose the BEST type from the allowed list above.\n")
	if intelligence.RequiresBody {
		b.WriteString("2. create a commit with type, optional scope, and description (under 72 chars)\n")
		b.WriteString("3. add a blank line\n")
		b.WriteString("4. add a body with bullet points explaining the key changes\n")
		b.WriteString("5. BE SPECIFIC: mention actual function names, modules, and purposes\n")
		b.WriteString("6. ORGANISE BULLETS: major changes first, then features, then minor updates\n")
		b.WriteString("7. FOLLOW CONVENTIONAL COMMITS 1.0: use ! for breaking changes\n")
		b.WriteString("8. CAPITALISATION: bullet points start with capital letter, header stays lowercase\n")
		b.WriteString("9. focus on WHAT changed and WHY, not implementation details\n")
		b.WriteString("10. use UK english spelling (optimisation, behaviour, etc.)\n")
	} else {
		b.WriteString("2. create a single-line commit message\n")
		b.WriteString("3. format: <type>(<scope>): <description>\n")
		b.WriteString("4. description must be under 72 characters\n")
		b.WriteString("5. NO BODY - just the single line\n")
		b.WriteString("6. use UK english spelling\n")
	}
	b.WriteByte('\n')
}

// FormatPatternType maps a pattern type onto its display name.
func FormatPatternType(t models.PatternType) string {
	switch t {
	case models.NewFilePattern:
		return "new file"
	case models.MassModification:
		return "mass modification"
	case models.CrossLayerChange:
		return "cross-layer"
	case models.InterfaceEvolution:
		return "interface evolution"
	case models.ArchitecturalShift:
		return "architectural"
	case models.ConfigurationDrift:
		return "configuration"
	case models.DependencyUpdate:
		return "dependency"
	case models.RefactoringPattern:
		return "refactoring"
	case models.FeatureAddition:
		return "feature"
	case models.BugFixPattern:
		return "bugfix"
	case models.TestEvolution:
		return "test"
	case models.DocumentationUpdate:
		return "documentation"
	case models.StyleNormalization:
		return "style"
	case models.PerformanceTuning:
		return "performance"
	case models.SecurityHardening:
		return "security"
	case models.CiChange:
		return "ci/cd"
	case models.Deprecation:
		return "deprecation"
	case models.SecurityFix:
		return "security fix"
	default:
		return string(t)
	}
}

func patternTypeList(patterns []models.Pattern) string {
	names := make([]string, 0, len(patterns))
	for _, p := range patterns {
		names = append(names, FormatPatternType(p.Type))
	}
	return strings.Join(names, ", ")
}

var languageByExtension = map[string]string{
	"rs":    "Rust",
	"js":    "JavaScript",
	"jsx":   "JavaScript",
	"ts":    "TypeScript",
	"tsx":   "TypeScript",
	"py":    "Python",
	"go":    "Go",
	"java":  "Java",
	"cs":    "C#",
	"cpp":   "C++",
	"cc":    "C++",
	"cxx":   "C++",
	"c":     "C",
	"h":     "C",
	"rb":    "Ruby",
	"php":   "PHP",
	"swift": "Swift",
	"kt":    "Kotlin",
	"kts":   "Kotlin",
}

// inferDominantLanguage names the language most of the diff is written
// in, from file-extension frequency. The result is "Mixed (a, b)" only
// when several languages each hold more than mixedLanguageShare of the
// recognised files, so a lone stray script does not dilute the label.
func inferDominantLanguage(diffInfo *models.DiffInfo) string {
	counts := make(map[string]int)
	recognised := 0
	for i := range diffInfo.Files {
		lang, ok := languageByExtension[pathExtension(diffInfo.Files[i].Path)]
		if !ok {
			continue
		}
		counts[lang]++
		recognised++
	}
	if recognised == 0 {
		return "Unknown"
	}

	var major []string
	for lang, n := range counts {
		if float64(n) > mixedLanguageShare*float64(recognised) {
			major = append(major, lang)
		}
	}
	if len(major) > 1 {
		sort.Strings(major)
		return fmt.Sprintf("Mixed (%s)", strings.Join(major, ", "))
	}

	langs := make([]string, 0, len(counts))
	for lang := range counts {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	best := "Unknown"
	bestCount := 0
	for _, lang := range langs {
		if counts[lang] > bestCount {
			best = lang
			bestCount = counts[lang]
		}
	}
	return best
}

func pathExtension(p string) string {
	if i := strings.LastIndex(p, "."); i >= 0 {
		return p[i+1:]
	}
	return ""
}

// subsystemChecks run in order; the first fragment match names the
// subsystem for the whole diff.
var subsystemChecks = []struct {
	name      string
	fragments []string
}{
	{"auth", []string{"auth", "login"}},
	{"api", []string{"api", "endpoint"}},
	{"ui", []string{"ui", "component"}},
	{"database", []string{"database", "model"}},
	{"test", []string{"test", "spec"}},
}

func detectSubsystem(diffInfo *models.DiffInfo) string {
	for _, check := range subsystemChecks {
		for i := range diffInfo.Files {
			if containsAny(diffInfo.Files[i].Path, check.fragments) {
				return check.name
			}
		}
	}
	return "general"
}

func filePurpose(filePath string) string {
	p := strings.ToLower(filePath)
	switch {
	case strings.Contains(p, "test") || strings.Contains(p, "spec"):
		return "test file"
	case strings.Contains(p, "config") || strings.Contains(p, "settings"):
		return "configuration"
	case strings.Contains(p, "api") || strings.Contains(p, "endpoint"):
		return "api endpoint"
	case strings.Contains(p, "model") || strings.Contains(p, "schema"):
		return "data model"
	case strings.Contains(p, "util") || strings.Contains(p, "helper"):
		return "utility functions"
	case strings.Contains(p, "component") || strings.Contains(p, "view"):
		return "ui component"
	case strings.Contains(p, "service"):
		return "service layer"
	case strings.Contains(p, "middleware"):
		return "middleware"
	default:
		return "implementation"
	}
}

// importantFiles drops auto-generated noise and orders the rest so the
// highest-value diffs spend the budget first. The sort is stable, so
// files within a tier keep their diff order.
func importantFiles(files []models.ModifiedFile) []*models.ModifiedFile {
	kept := make([]*models.ModifiedFile, 0, len(files))
	for i := range files {
		if boringFile(files[i].Path) {
			continue
		}
		kept = append(kept, &files[i])
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return filePriority(kept[i]) > filePriority(kept[j])
	})
	return kept
}

var (
	lockSuffixes       = []string{".lock", "-lock.json", "-lock.yaml"}
	generatedFragments = []string{"generated", ".min.", "dist/", "build/", "target/"}
	mediaSuffixes      = []string{".png", ".jpg", ".gif", ".ico", ".pdf"}
)

func boringFile(filePath string) bool {
	p := strings.ToLower(filePath)
	for _, suffix := range lockSuffixes {
		if strings.HasSuffix(p, suffix) {
			return true
		}
	}
	for _, fragment := range generatedFragments {
		if strings.Contains(p, fragment) {
			return true
		}
	}
	for _, suffix := range mediaSuffixes {
		if strings.HasSuffix(p, suffix) {
			return true
		}
	}
	return false
}

var entryPointNames = map[string]bool{
	"main.go":     true,
	"main.rs":     true,
	"main.py":     true,
	"main.c":      true,
	"index.js":    true,
	"index.ts":    true,
	"app.js":      true,
	"app.py":      true,
	"__main__.py": true,
}

// filePriority ranks core source above entry points, then config and
// build manifests, tests, docs, and everything else.
func filePriority(f *models.ModifiedFile) int {
	switch f.FileType {
	case models.FileTypeSourceCode:
		if entryPointNames[path.Base(strings.ToLower(f.Path))] {
			return 9
		}
		return 10
	case models.FileTypeConfig, models.FileTypeBuild:
		return 7
	case models.FileTypeTest:
		return 6
	case models.FileTypeDocumentation:
		return 5
	default:
		return 3
	}
}

// diffLineBudget allocates lines for one file from what is left of the
// total budget. Small diffs ship whole, medium ones at half, and big
// ones get a fixed slice.
func diffLineBudget(f *models.ModifiedFile, currentTotal int) int {
	remaining := maxDiffLines - currentTotal
	if remaining < 0 {
		remaining = 0
	}
	changes := f.AddedLines + f.RemovedLines
	switch {
	case changes < 50:
		return min(changes, remaining)
	case changes < 200:
		return min(min(changes/2, 100), remaining)
	default:
		return min(50, remaining)
	}
}

// meaningfulDiffLines selects up to maxLines from the captured patch,
// important lines first, then any remaining non-empty lines that were
// not already selected.
func meaningfulDiffLines(diffContent string, maxLines int) string {
	if maxLines <= 0 || diffContent == "" {
		return ""
	}
	lines := strings.Split(diffContent, "\n")

	selected := make([]string, 0, maxLines)
	for _, line := range lines {
		if len(selected) >= maxLines {
			break
		}
		if isImportantLine(line) {
			selected = append(selected, line)
		}
	}

	if len(selected) < maxLines {
		seen := make(map[string]bool, len(selected))
		for _, line := range selected {
			seen[line] = true
		}
		for _, line := range lines {
			if len(selected) >= maxLines {
				break
			}
			if seen[line] || strings.TrimSpace(line) == "" {
				continue
			}
			selected = append(selected, line)
			seen[line] = true
		}
	}

	return strings.Join(selected, "\n")
}

// isImportantLine reports whether a patch line deserves a slot ahead of
// plain context: an addition or removal that reads like a declaration,
// an import or export, a visibility modifier, a constant, or a comment.
func isImportantLine(line string) bool {
	var content string
	switch {
	case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
		content = strings.TrimSpace(strings.TrimPrefix(line, "+"))
	case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
		content = strings.TrimSpace(strings.TrimPrefix(line, "-"))
	default:
		return false
	}

	if content == "" {
		return false
	}
	switch content {
	case "{", "}", "(", ")":
		return false
	}
	return looksDeclarative(content)
}

var (
	declarationKeywords = []string{
		"func ", "fn ", "def ", "function ", "class ", "struct ",
		"enum ", "interface ", "trait ", "impl ", "type ",
	}
	importKeywords     = []string{"import ", "use ", "export ", "require(", "from ", "package ", "module "}
	visibilityKeywords = []string{"pub ", "public ", "private ", "protected ", "internal "}
	constantKeywords   = []string{"const ", "static ", "final ", "readonly "}
	commentMarkers     = []string{"//", "/*", "* ", "# "}
)

func looksDeclarative(content string) bool {
	for _, marker := range commentMarkers {
		if strings.HasPrefix(content, marker) {
			return true
		}
	}
	for _, group := range [][]string{declarationKeywords, importKeywords, visibilityKeywords, constantKeywords} {
		for _, keyword := range group {
			if strings.Contains(content, keyword) {
				return true
			}
		}
	}
	return false
}

func containsAny(s string, fragments []string) bool {
	for _, fragment := range fragments {
		if strings.Contains(s, fragment) {
			return true
		}
	}
	return false
}
