// Package analysis turns a normalized diff into file classifications,
// weighted change patterns, and an aggregate commit judgment. Everything
// here is pure: no filesystem, no clock, no network.
package analysis

import (
	"strings"

	"github.com/jamiehdev/commit-wizard/internal/models"
)

// fileTypeRule couples one file kind with the lowercase path fragments
// and suffixes that identify it.
type fileTypeRule struct {
	fileType  models.FileType
	fragments []string
	suffixes  []string
}

// fileTypeRules is evaluated top to bottom and the first match wins, so
// a path like tests/config.json classifies as Test rather than Config.
var fileTypeRules = []fileTypeRule{
	{
		fileType:  models.FileTypeTest,
		fragments: []string{"test", "spec", "__tests__", ".tests/"},
		suffixes:  []string{".test.js", ".spec.js", ".test.ts", ".spec.ts", "tests.cs", "test.cs", "_test.py", "_test.rs", "_test.go"},
	},
	{
		fileType:  models.FileTypeDocumentation,
		fragments: []string{"readme", "docs/", "doc/", "changelog"},
		suffixes:  []string{".md", ".txt", ".rst", ".adoc"},
	},
	{
		fileType: models.FileTypeBuild,
		fragments: []string{
			"package.json", "package-lock.json", "yarn.lock", "pnpm-lock.yaml",
			"cargo", "makefile", "dockerfile", "go.mod", "go.sum",
			"webpack", "vite.config", "rollup.config",
		},
		suffixes: []string{".csproj", ".sln", ".props", ".targets", ".lock", ".gradle"},
	},
	{
		fileType:  models.FileTypeConfig,
		fragments: []string{".env", "web.config"},
		suffixes:  []string{".json", ".yaml", ".yml", ".xml", ".ini", ".conf", ".config", ".toml"},
	},
	{
		fileType: models.FileTypeSourceCode,
		suffixes: []string{
			".cs", ".vb", ".js", ".jsx", ".ts", ".tsx", ".vue", ".svelte",
			".css", ".scss", ".sass", ".less", ".html", ".htm", ".razor", ".cshtml",
			".py", ".rs", ".go", ".java", ".kt", ".cpp", ".c", ".h", ".php", ".rb", ".swift",
		},
	},
}

func (r fileTypeRule) matches(path string) bool {
	for _, fragment := range r.fragments {
		if strings.Contains(path, fragment) {
			return true
		}
	}
	for _, suffix := range r.suffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

// ClassifyFileType maps a path to a coarse file kind. Every path gets
// exactly one kind; anything unrecognised falls through to Other.
func ClassifyFileType(path string) models.FileType {
	lower := strings.ToLower(path)
	for _, rule := range fileTypeRules {
		if rule.matches(lower) {
			return rule.fileType
		}
	}
	return models.FileTypeOther
}
