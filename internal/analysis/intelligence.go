package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jamiehdev/commit-wizard/internal/models"
	"github.com/jamiehdev/commit-wizard/internal/regex"
)

// AnalyseCommitIntelligence reduces a diff to the aggregate judgment
// consumed by the prompt builder and the generation orchestrator.
// fallbackType is used when no detected pattern argues for any type.
func AnalyseCommitIntelligence(diffInfo *models.DiffInfo, fallbackType string) *models.CommitIntelligence {
	patterns := DetectUniversalPatterns(diffInfo)
	complexity := PatternComplexity(patterns)

	intelligence := &models.CommitIntelligence{
		ComplexityScore:  complexity,
		RequiresBody:     requiresBody(patterns, complexity, diffInfo),
		DetectedPatterns: patterns,
		CommitTypeHint:   suggestCommitType(patterns, fallbackType),
		ScopeHint:        suggestScope(diffInfo),
	}
	if intelligence.RequiresBody {
		intelligence.SuggestedBullets = bulletSuggestions(patterns)
	}
	return intelligence
}

// PatternComplexity blends pattern count and summed impact into one
// score saturating at 5. More patterns or higher impacts never lower
// the result.
func PatternComplexity(patterns []models.Pattern) float64 {
	base := 0.3 * float64(len(patterns))
	sum := 0.0
	for _, p := range patterns {
		sum += p.Impact
	}
	score := (base + sum) / 2
	if score > 5 {
		score = 5
	}
	if score < 0 {
		score = 0
	}
	return score
}

// bodyPatternTypes force a multi-line body on their own: these changes
// always deserve explanation beyond a single line.
var bodyPatternTypes = []models.PatternType{
	models.ArchitecturalShift,
	models.CrossLayerChange,
	models.InterfaceEvolution,
	models.SecurityFix,
	models.Deprecation,
}

// requiresBody is a disjunction of independently sufficient conditions;
// any one of them triggers the multi-line body requirement.
func requiresBody(patterns []models.Pattern, complexity float64, diffInfo *models.DiffInfo) bool {
	if complexity >= 2.5 {
		return true
	}

	highImpact := 0
	featureLike := 0
	distinct := make(map[models.PatternType]bool)
	for _, p := range patterns {
		for _, t := range bodyPatternTypes {
			if p.Type == t {
				return true
			}
		}
		if p.Impact >= 0.7 {
			highImpact++
		}
		if p.Type == models.FeatureAddition || p.Type == models.NewFilePattern {
			featureLike++
		}
		distinct[p.Type] = true
	}
	if highImpact >= 2 || featureLike >= 2 {
		return true
	}
	if len(distinct) >= 3 && complexity >= 1.5 {
		return true
	}
	if len(diffInfo.Files) >= 5 {
		return true
	}
	return diffInfo.TotalAdded()+diffInfo.TotalRemoved() > 100
}

func bulletSuggestions(patterns []models.Pattern) []string {
	ranked := make([]models.Pattern, len(patterns))
	copy(ranked, patterns)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Impact > ranked[j].Impact })

	if len(ranked) > 5 {
		ranked = ranked[:5]
	}

	bullets := make([]string, 0, len(ranked))
	for _, p := range ranked {
		bullets = append(bullets, bulletFor(p))
	}
	return bullets
}

func bulletFor(p models.Pattern) string {
	switch p.Type {
	case models.NewFilePattern:
		return fmt.Sprintf("introduce %s for enhanced functionality", summariseFiles(p.FilesAffected))
	case models.CrossLayerChange:
		return "update multiple architectural layers for consistency"
	case models.BugFixPattern:
		return "resolve issues with error handling and edge cases"
	case models.RefactoringPattern:
		return "improve code structure and maintainability"
	case models.SecurityFix:
		return "address security vulnerabilities and harden defences"
	default:
		return p.Description
	}
}

func summariseFiles(files []string) string {
	switch {
	case len(files) == 1:
		return files[0]
	case len(files) <= 3:
		return strings.Join(files, ", ")
	default:
		return fmt.Sprintf("%d files", len(files))
	}
}

// typeAffinities map each pattern type onto the commit type it argues
// for, with a weight expressing how loudly. Security fixes outrank
// plain bug fixes, and deprecations usually ride along with feature
// evolution rather than chores.
var typeAffinities = []struct {
	pattern    models.PatternType
	commitType string
	weight     float64
}{
	{models.FeatureAddition, "feat", 1.0},
	{models.NewFilePattern, "feat", 1.0},
	{models.InterfaceEvolution, "feat", 1.0},
	{models.Deprecation, "feat", 1.2},
	{models.SecurityFix, "fix", 1.5},
	{models.BugFixPattern, "fix", 1.0},
	{models.RefactoringPattern, "refactor", 1.0},
	{models.DocumentationUpdate, "docs", 1.0},
	{models.TestEvolution, "test", 1.0},
	{models.PerformanceTuning, "perf", 1.0},
	{models.CiChange, "ci", 1.0},
	{models.DependencyUpdate, "chore", 1.0},
	{models.StyleNormalization, "style", 1.0},
}

func suggestCommitType(patterns []models.Pattern, fallbackType string) string {
	scores := make(map[string]float64)
	for _, p := range patterns {
		for _, affinity := range typeAffinities {
			if p.Type == affinity.pattern {
				scores[affinity.commitType] += p.Impact * affinity.weight
			}
		}
	}
	if len(scores) == 0 {
		return fallbackType
	}

	// walking the vocabulary in its fixed order keeps ties deterministic
	best := ""
	bestScore := 0.0
	for _, candidate := range models.CommitTypes {
		if score, ok := scores[candidate]; ok && score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	return best
}

// subsystemRules is the fixed vocabulary checked before falling back to
// path components.
var subsystemRules = []struct {
	name      string
	fragments []string
}{
	{"auth", []string{"auth", "login"}},
	{"api", []string{"api", "endpoint"}},
	{"ui", []string{"ui", "component"}},
	{"database", []string{"database", "model"}},
	{"test", []string{"test", "spec"}},
}

// genericComponents are too vague to name a scope.
var genericComponents = map[string]bool{
	"src": true, "lib": true, "app": true, "test": true, "spec": true,
}

// suggestScope names the dominant subsystem, or returns empty when the
// changes are too spread out for one scope to be honest.
func suggestScope(diffInfo *models.DiffInfo) string {
	for _, rule := range subsystemRules {
		for i := range diffInfo.Files {
			if containsAny(strings.ToLower(diffInfo.Files[i].Path), rule.fragments) {
				return rule.name
			}
		}
	}

	counts := make(map[string]int)
	var order []string
	for i := range diffInfo.Files {
		parts := strings.SplitN(diffInfo.Files[i].Path, "/", 2)
		if len(parts) < 2 {
			continue
		}
		component := strings.ToLower(parts[0])
		if component == "" || genericComponents[component] {
			continue
		}
		if _, seen := counts[component]; !seen {
			order = append(order, component)
		}
		counts[component]++
	}

	best := ""
	bestCount := 0
	for _, component := range order {
		if counts[component] > bestCount {
			best = component
			bestCount = counts[component]
		}
	}

	// a scope must describe a clear majority of the diff to be worth
	// printing at all
	if best == "" || bestCount*2 <= len(diffInfo.Files) {
		return ""
	}
	return normaliseScope(best)
}

func normaliseScope(scope string) string {
	s := strings.ToLower(scope)
	s = strings.NewReplacer("_", "-", " ", "-").Replace(s)
	return regex.ScopeCleanup.ReplaceAllString(s, "")
}
