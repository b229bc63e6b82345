package models

// FileType is the coarse kind assigned to a changed path.
type FileType string

const (
	FileTypeSourceCode    FileType = "source"
	FileTypeTest          FileType = "test"
	FileTypeDocumentation FileType = "documentation"
	FileTypeConfig        FileType = "config"
	FileTypeBuild         FileType = "build"
	FileTypeOther         FileType = "other"
)

// ChangeHint is a qualitative tag derived from the added lines of one file.
type ChangeHint string

const (
	HintNewFunction   ChangeHint = "new-function"
	HintNewStruct     ChangeHint = "new-struct"
	HintNewEnum       ChangeHint = "new-enum"
	HintNewModule     ChangeHint = "new-module"
	HintNewFeature    ChangeHint = "new-feature"
	HintMajorAddition ChangeHint = "major-addition"
	HintMinorTweak    ChangeHint = "minor-tweak"
	HintBugFix        ChangeHint = "bug-fix"
	HintRefactor      ChangeHint = "refactor"
	HintErrorHandling ChangeHint = "error-handling"
	HintPerformance   ChangeHint = "performance"
	HintDependencies  ChangeHint = "dependencies"
	HintDocumentation ChangeHint = "documentation"
)

// ModifiedFile is one changed path in a diff pass.
type ModifiedFile struct {
	Path         string
	AddedLines   int
	RemovedLines int
	// DiffContent holds the captured patch text, capped at a fixed byte
	// budget so a single large file cannot blow up memory.
	DiffContent string
	FileType    FileType
	ChangeHints []ChangeHint
}

// HasHint reports whether the file carries the given hint.
func (f *ModifiedFile) HasHint(hint ChangeHint) bool {
	for _, h := range f.ChangeHints {
		if h == hint {
			return true
		}
	}
	return false
}

// IsNewFile reports whether the metadata looks like a brand-new file:
// nothing removed and a non-trivial number of added lines.
func (f *ModifiedFile) IsNewFile() bool {
	return f.RemovedLines == 0 && f.AddedLines > 10
}

// DiffInfo is the whole-repository view for one analysis pass. It is
// built once, never mutated, and read by every downstream stage.
type DiffInfo struct {
	Files   []ModifiedFile
	Summary string
}

func (d *DiffInfo) TotalAdded() int {
	total := 0
	for _, f := range d.Files {
		total += f.AddedLines
	}
	return total
}

func (d *DiffInfo) TotalRemoved() int {
	total := 0
	for _, f := range d.Files {
		total += f.RemovedLines
	}
	return total
}
