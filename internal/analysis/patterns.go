package analysis

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jamiehdev/commit-wizard/internal/models"
)

var (
	configExtensions = []string{"json", "yaml", "yml", "toml", "ini", "conf", "config", "env"}
	docExtensions    = []string{"md", "rst", "txt", "adoc"}

	dependencyFileMarkers = []string{
		"package.json", "cargo.toml", "requirements.txt", "pom.xml",
		"build.gradle", "gemfile", "pipfile", "go.mod", "go.sum",
	}
	ciPathMarkers = []string{
		".github/workflows", ".gitlab-ci", "jenkinsfile", ".circleci",
		"azure-pipelines", ".travis",
	}

	securityKeywords   = []string{"vulnerability", "exploit", "injection", "xss", "csrf", "cve-"}
	authCryptoKeywords = []string{"authentication", "authorization", "encrypt", "token"}
	securityPaths      = []string{"/auth/", "/security/"}

	functionDeclKeywords = []string{"fn ", "func ", "function ", "def ", "public ", "private ", "protected "}
	typeDeclKeywords     = []string{"class ", "struct ", "interface ", "enum "}

	// routeKeywords mark additions to a service's exposed surface:
	// route annotations, endpoint registrations, handler wiring.
	routeKeywords = []string{
		"@getmapping", "@postmapping", "@putmapping", "@deletemapping",
		"@app.route", "#[get(", "#[post(",
		"[httpget", "[httppost",
		"app.get(", "app.post(", "app.put(", "app.delete(",
		"router.get(", "router.post(", "router.handle(", "handlefunc(",
	}
)

// DetectUniversalPatterns reduces a diff to weighted signals. Rules are
// additive, not mutually exclusive: one diff routinely fires several
// patterns and downstream aggregation arbitrates between them.
func DetectUniversalPatterns(diffInfo *models.DiffInfo) []models.Pattern {
	var patterns []models.Pattern
	meta := collectFileMetadata(diffInfo)

	if len(meta.newFiles) > 0 {
		patterns = append(patterns, models.Pattern{
			Type:          models.NewFilePattern,
			Description:   fmt.Sprintf("%d new file%s introduced", len(meta.newFiles), plural(len(meta.newFiles))),
			Impact:        newFileImpact(len(meta.newFiles)),
			FilesAffected: meta.newFiles,
		})
	}

	if layers := detectLayers(meta); len(layers) >= 2 {
		patterns = append(patterns, models.Pattern{
			Type:          models.CrossLayerChange,
			Description:   fmt.Sprintf("changes span %d layers: %s", len(layers), strings.Join(layers, ", ")),
			Impact:        0.8 + 0.1*float64(len(layers)),
			FilesAffected: allPaths(diffInfo),
		})
	}

	if len(diffInfo.Files) >= 5 {
		totalChanges := diffInfo.TotalAdded() + diffInfo.TotalRemoved()
		impact := 0.5 + 0.1*float64(len(diffInfo.Files))
		if impact > 1.0 {
			impact = 1.0
		}
		patterns = append(patterns, models.Pattern{
			Type:          models.MassModification,
			Description:   fmt.Sprintf("%d files modified with %d total line changes", len(diffInfo.Files), totalChanges),
			Impact:        impact,
			FilesAffected: allPaths(diffInfo),
		})
	}

	for i := range diffInfo.Files {
		patterns = append(patterns, contentPatterns(&diffInfo.Files[i])...)
	}

	if configFiles := meta.filesWithExtension(configExtensions); len(configFiles) > 0 {
		patterns = append(patterns, models.Pattern{
			Type:          models.ConfigurationDrift,
			Description:   "configuration or settings modified",
			Impact:        0.7,
			FilesAffected: configFiles,
		})
	}

	if depFiles := detectDependencyFiles(diffInfo); len(depFiles) > 0 {
		patterns = append(patterns, models.Pattern{
			Type:          models.DependencyUpdate,
			Description:   "dependencies or packages updated",
			Impact:        0.6,
			FilesAffected: depFiles,
		})
	}

	if testFiles := detectTestFiles(diffInfo); len(testFiles) > 0 &&
		float64(len(testFiles))/float64(len(diffInfo.Files)) > 0.3 {
		patterns = append(patterns, models.Pattern{
			Type:          models.TestEvolution,
			Description:   fmt.Sprintf("%d test file%s modified", len(testFiles), plural(len(testFiles))),
			Impact:        0.5,
			FilesAffected: testFiles,
		})
	}

	if refactoring := detectRefactoring(diffInfo); refactoring != nil {
		patterns = append(patterns, *refactoring)
	}

	if docFiles := meta.filesWithExtension(docExtensions); len(docFiles) > 0 {
		patterns = append(patterns, models.Pattern{
			Type:          models.DocumentationUpdate,
			Description:   fmt.Sprintf("%d documentation file%s updated", len(docFiles), plural(len(docFiles))),
			Impact:        0.4,
			FilesAffected: docFiles,
		})
	}

	if isStyleSweep(diffInfo) {
		patterns = append(patterns, models.Pattern{
			Type:          models.StyleNormalization,
			Description:   "formatting and style normalisations",
			Impact:        0.3,
			FilesAffected: allPaths(diffInfo),
		})
	}

	if ciFiles := detectCIFiles(diffInfo); len(ciFiles) > 0 {
		patterns = append(patterns, models.Pattern{
			Type:          models.CiChange,
			Description:   fmt.Sprintf("%d CI configuration file%s modified", len(ciFiles), plural(len(ciFiles))),
			Impact:        0.5,
			FilesAffected: ciFiles,
		})
	}

	if deprecated := detectDeprecations(diffInfo); len(deprecated) > 0 {
		patterns = append(patterns, models.Pattern{
			Type:          models.Deprecation,
			Description:   fmt.Sprintf("%d deprecation%s detected - potential breaking changes", len(deprecated), plural(len(deprecated))),
			Impact:        0.9,
			FilesAffected: deprecated,
		})
	}

	if security := detectSecurityChanges(diffInfo); len(security) > 0 {
		patterns = append(patterns, models.Pattern{
			Type:          models.SecurityFix,
			Description:   fmt.Sprintf("%d security-related change%s detected", len(security), plural(len(security))),
			Impact:        0.95,
			FilesAffected: security,
		})
	}

	return patterns
}

// fileMetadata groups the diff's paths along the axes the pattern rules
// care about.
type fileMetadata struct {
	newFiles      []string
	modifiedFiles []string
	byExtension   map[string][]string
	// directories holds every lowercase path component except the
	// filename itself, deduplicated, in discovery order.
	directories []string
}

func collectFileMetadata(diffInfo *models.DiffInfo) *fileMetadata {
	meta := &fileMetadata{byExtension: make(map[string][]string)}
	seenDirs := make(map[string]bool)

	for _, file := range diffInfo.Files {
		// brand-new docs and tests are better served by their dedicated
		// patterns than by the new-file signal
		if file.IsNewFile() &&
			file.FileType != models.FileTypeDocumentation &&
			file.FileType != models.FileTypeTest {
			meta.newFiles = append(meta.newFiles, file.Path)
		} else {
			meta.modifiedFiles = append(meta.modifiedFiles, file.Path)
		}

		if ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Path), ".")); ext != "" {
			meta.byExtension[ext] = append(meta.byExtension[ext], file.Path)
		}

		parts := strings.Split(file.Path, "/")
		for _, dir := range parts[:len(parts)-1] {
			lower := strings.ToLower(dir)
			if lower != "" && !seenDirs[lower] {
				seenDirs[lower] = true
				meta.directories = append(meta.directories, lower)
			}
		}
	}
	return meta
}

func (m *fileMetadata) filesWithExtension(extensions []string) []string {
	var matched []string
	for _, ext := range extensions {
		matched = append(matched, m.byExtension[ext]...)
	}
	return matched
}

// newFileImpact scales with the number of new files, from 0.5 for a
// single file up to a 0.9 ceiling.
func newFileImpact(count int) float64 {
	impact := 0.4 + 0.1*float64(count)
	if impact > 0.9 {
		impact = 0.9
	}
	return impact
}

// layerRules map directory fragments onto coarse architectural layers.
var layerRules = []struct {
	layer     string
	fragments []string
}{
	{"api", []string{"controller", "api", "endpoint", "backend", "server", "handler"}},
	{"service", []string{"service", "business", "domain"}},
	{"model", []string{"model", "entity", "schema", "database", "migration"}},
	{"ui", []string{"view", "component", "ui", "frontend", "client", "page"}},
	{"test", []string{"test", "spec"}},
	{"configuration", []string{"config", "settings"}},
}

// layerExtensions catch layer membership for files whose directory
// names say nothing, like a .tsx component at the repository root.
var layerExtensions = map[string]string{
	"tsx": "ui", "jsx": "ui", "vue": "ui", "svelte": "ui",
	"css": "ui", "scss": "ui", "sass": "ui", "less": "ui",
	"sql": "model",
}

func detectLayers(meta *fileMetadata) []string {
	found := make(map[string]bool)
	for _, dir := range meta.directories {
		for _, rule := range layerRules {
			for _, fragment := range rule.fragments {
				if strings.Contains(dir, fragment) {
					found[rule.layer] = true
				}
			}
		}
	}
	for ext, layer := range layerExtensions {
		if len(meta.byExtension[ext]) > 0 {
			found[layer] = true
		}
	}

	layers := make([]string, 0, len(found))
	for layer := range found {
		layers = append(layers, layer)
	}
	// map order is random and the layer list ends up in a rendered
	// description, which must be stable
	sort.Strings(layers)
	return layers
}

// contentSignals are the per-file lexical counts the content patterns
// are built from.
type contentSignals struct {
	newFunctions int
	newTypes     int
	routeHits    int
	bugFix       bool
	performance  bool
}

func scanContent(diffText string) contentSignals {
	var signals contentSignals
	contentLower := strings.ToLower(diffText)

	for _, line := range strings.Split(diffText, "\n") {
		if !strings.HasPrefix(line, "+") {
			continue
		}
		if containsAny(line, functionDeclKeywords) {
			signals.newFunctions++
		}
		if containsAny(line, typeDeclKeywords) {
			signals.newTypes++
		}
		if containsAny(strings.ToLower(line), routeKeywords) {
			signals.routeHits++
		}
	}

	signals.bugFix = containsAny(contentLower, []string{"fix", "bug", "error", "issue", "problem"})
	signals.performance = containsAny(contentLower, performanceKeywords)
	return signals
}

func contentPatterns(file *models.ModifiedFile) []models.Pattern {
	var patterns []models.Pattern
	signals := scanContent(file.DiffContent)

	if signals.newFunctions >= 3 || signals.newTypes >= 1 {
		patterns = append(patterns, models.Pattern{
			Type:          models.FeatureAddition,
			Description:   fmt.Sprintf("significant new functionality (%d functions, %d types)", signals.newFunctions, signals.newTypes),
			Impact:        0.8,
			FilesAffected: []string{file.Path},
		})
	}

	if signals.routeHits > 0 {
		patterns = append(patterns, models.Pattern{
			Type:          models.InterfaceEvolution,
			Description:   "exposed API surface changed",
			Impact:        0.7,
			FilesAffected: []string{file.Path},
		})
	}

	if signals.bugFix && file.RemovedLines > 0 {
		patterns = append(patterns, models.Pattern{
			Type:          models.BugFixPattern,
			Description:   "bug fix indicators detected",
			Impact:        0.6,
			FilesAffected: []string{file.Path},
		})
	}

	if signals.performance {
		patterns = append(patterns, models.Pattern{
			Type:          models.PerformanceTuning,
			Description:   "performance improvements detected",
			Impact:        0.7,
			FilesAffected: []string{file.Path},
		})
	}

	return patterns
}

func detectDependencyFiles(diffInfo *models.DiffInfo) []string {
	var matched []string
	for _, file := range diffInfo.Files {
		lower := strings.ToLower(file.Path)
		if strings.HasSuffix(lower, ".lock") || containsAny(lower, dependencyFileMarkers) {
			matched = append(matched, file.Path)
		}
	}
	return matched
}

func detectTestFiles(diffInfo *models.DiffInfo) []string {
	var matched []string
	for _, file := range diffInfo.Files {
		lower := strings.ToLower(file.Path)
		if strings.Contains(lower, "test") || strings.Contains(lower, "spec") {
			matched = append(matched, file.Path)
		}
	}
	return matched
}

func detectCIFiles(diffInfo *models.DiffInfo) []string {
	var matched []string
	for _, file := range diffInfo.Files {
		if containsAny(strings.ToLower(file.Path), ciPathMarkers) {
			matched = append(matched, file.Path)
		}
	}
	return matched
}

// isStyleSweep is a simple heuristic: many files, each barely touched.
func isStyleSweep(diffInfo *models.DiffInfo) bool {
	if len(diffInfo.Files) <= 3 {
		return false
	}
	total := diffInfo.TotalAdded() + diffInfo.TotalRemoved()
	return float64(total)/float64(len(diffInfo.Files)) < 10
}

// detectRefactoring looks for the signature of a restructuring: added
// and removed totals roughly balance, and the change is big enough that
// the balance is not noise.
func detectRefactoring(diffInfo *models.DiffInfo) *models.Pattern {
	totalAdded := diffInfo.TotalAdded()
	totalRemoved := diffInfo.TotalRemoved()
	if totalAdded <= 50 {
		return nil
	}
	ratio := float64(totalRemoved) / float64(totalAdded)
	if ratio <= 0.7 || ratio >= 1.3 {
		return nil
	}
	return &models.Pattern{
		Type:          models.RefactoringPattern,
		Description:   "code restructuring with balanced changes",
		Impact:        0.7,
		FilesAffected: allPaths(diffInfo),
	}
}

func detectDeprecations(diffInfo *models.DiffInfo) []string {
	var matched []string
	for _, file := range diffInfo.Files {
		lower := strings.ToLower(file.DiffContent)
		if strings.Contains(lower, "deprecated") ||
			(file.RemovedLines > 10 && strings.Contains(lower, "export")) {
			matched = append(matched, file.Path)
		}
	}
	return matched
}

// detectSecurityChanges flags security-sensitive edits while excluding
// tests and docs, which mention these words constantly without being
// security changes themselves.
func detectSecurityChanges(diffInfo *models.DiffInfo) []string {
	var matched []string
	for _, file := range diffInfo.Files {
		pathLower := strings.ToLower(file.Path)
		if strings.Contains(pathLower, "test") || strings.Contains(pathLower, "spec") ||
			strings.HasSuffix(pathLower, ".md") {
			continue
		}
		contentLower := strings.ToLower(file.DiffContent)
		strong := containsAny(contentLower, securityKeywords)
		authCrypto := containsAny(contentLower, authCryptoKeywords) && containsAny(pathLower, securityPaths)
		if strong || authCrypto {
			matched = append(matched, file.Path)
		}
	}
	return matched
}

func allPaths(diffInfo *models.DiffInfo) []string {
	paths := make([]string, len(diffInfo.Files))
	for i := range diffInfo.Files {
		paths[i] = diffInfo.Files[i].Path
	}
	return paths
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
