package models

// PatternType names one detected diff signal.
type PatternType string

const (
	NewFilePattern      PatternType = "new-file"
	MassModification    PatternType = "mass-modification"
	CrossLayerChange    PatternType = "cross-layer"
	InterfaceEvolution  PatternType = "interface-evolution"
	ArchitecturalShift  PatternType = "architectural-shift"
	ConfigurationDrift  PatternType = "configuration-drift"
	DependencyUpdate    PatternType = "dependency-update"
	RefactoringPattern  PatternType = "refactoring"
	FeatureAddition     PatternType = "feature-addition"
	BugFixPattern       PatternType = "bug-fix"
	TestEvolution       PatternType = "test-evolution"
	DocumentationUpdate PatternType = "documentation-update"
	StyleNormalization  PatternType = "style-normalization"
	PerformanceTuning   PatternType = "performance-tuning"
	SecurityHardening   PatternType = "security-hardening"
	CiChange            PatternType = "ci-change"
	Deprecation         PatternType = "deprecation"
	SecurityFix         PatternType = "security-fix"
)

// CommitTypes is the conventional commit type vocabulary, in the order
// used for tie-breaking during type selection.
var CommitTypes = []string{
	"feat", "fix", "docs", "style", "refactor",
	"perf", "test", "build", "ci", "chore", "revert",
}

// IsValidCommitType reports whether s is an exact, lowercase member of
// the commit type vocabulary.
func IsValidCommitType(s string) bool {
	for _, t := range CommitTypes {
		if s == t {
			return true
		}
	}
	return false
}

// Pattern is one weighted signal over a diff. Impact sits in [0,1] and
// expresses how strongly the pattern should pull complexity and type
// selection. FilesAffected is the triggering subset, which may overlap
// with other patterns.
type Pattern struct {
	Type          PatternType
	Description   string
	Impact        float64
	FilesAffected []string
}

// CommitIntelligence is the aggregate judgment for one diff. It is a
// pure function of DiffInfo and is never persisted.
type CommitIntelligence struct {
	ComplexityScore  float64
	RequiresBody     bool
	DetectedPatterns []Pattern
	SuggestedBullets []string
	CommitTypeHint   string
	ScopeHint        string
}
