package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/jamiehdev/commit-wizard/internal/analysis"
	domainErrors "github.com/jamiehdev/commit-wizard/internal/errors"
	"github.com/jamiehdev/commit-wizard/internal/logger"
	"github.com/jamiehdev/commit-wizard/internal/models"
)

// maxDiffContentBytes caps the patch text kept per file. Line counts
// keep accumulating past the cap.
const maxDiffContentBytes = 5000

// binarySniffLen matches git's own heuristic: a NUL byte within the
// first 8000 bytes marks the content binary.
const binarySniffLen = 8000

// GetDiffInfo walks the repository and builds the normalised diff view.
// Staged changes (index vs HEAD) take precedence; unstaged changes
// (working tree vs index, plus untracked files) are inspected only when
// nothing is staged. A repository without commits treats every indexed
// path as a wholesale addition.
func (s *Service) GetDiffInfo(ctx context.Context) (*models.DiffInfo, error) {
	repo, err := s.open()
	if err != nil {
		return nil, err
	}

	wt, st, err := s.status(repo)
	if err != nil {
		return nil, err
	}

	tree, err := headTree(repo)
	if err != nil {
		return nil, domainErrors.ErrGetDiff.WithError(err)
	}

	var files []models.ModifiedFile
	if tree == nil {
		logger.Info(ctx, "no commits yet, analysing all staged files")
		files, err = s.collectInitial(ctx, repo)
	} else {
		logger.Info(ctx, "analysing staged changes (index vs HEAD)")
		files, err = s.collectStaged(ctx, repo, tree, st)
	}
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		logger.Info(ctx, "no staged changes found, checking unstaged changes (working tree vs index)")
		files, err = s.collectUnstaged(ctx, repo, wt, st)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Debug(ctx, "staged changes found, skipping unstaged changes")
	}

	if len(files) == 0 {
		return nil, domainErrors.ErrNoChanges
	}

	return &models.DiffInfo{Files: files, Summary: buildSummary(files)}, nil
}

// collectInitial handles the unborn-HEAD case: every index entry is a
// brand-new file with no previous version to diff against.
func (s *Service) collectInitial(ctx context.Context, repo *gogit.Repository) ([]models.ModifiedFile, error) {
	idx, err := repo.Storer.Index()
	if err != nil {
		return nil, domainErrors.ErrGetDiff.WithError(fmt.Errorf("reading index: %w", err))
	}

	var files []models.ModifiedFile
	for _, entry := range idx.Entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.Mode == filemode.Submodule {
			continue
		}
		if len(files) >= s.maxFiles {
			logger.Info(ctx, "file limit reached, skipping remaining changes", "max_files", s.maxFiles)
			break
		}

		content, err := blobContent(repo, entry.Hash)
		if err != nil {
			return nil, domainErrors.ErrGetDiff.WithError(fmt.Errorf("reading %s: %w", entry.Name, err))
		}
		if isBinary(content) {
			logger.Info(ctx, "skipping binary file", "path", entry.Name)
			continue
		}
		if len(content) > s.maxFileSizeKB*1024 {
			logger.Info(ctx, "skipping large file", "path", entry.Name, "size_kb", len(content)/1024)
			continue
		}

		lines := countLines(content)
		logger.Info(ctx, "adding new file", "path", entry.Name, "lines", lines)

		files = append(files, models.ModifiedFile{
			Path:        entry.Name,
			AddedLines:  lines,
			DiffContent: allAddedPatch(content),
			FileType:    analysis.ClassifyFileType(entry.Name),
			ChangeHints: analysis.AnalyseChangeHints(content, true),
		})
	}
	return files, nil
}

// collectStaged diffs the index against the HEAD tree.
func (s *Service) collectStaged(ctx context.Context, repo *gogit.Repository, tree *object.Tree, st gogit.Status) ([]models.ModifiedFile, error) {
	entries, err := indexEntries(repo)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(st))
	for path, fileStatus := range st {
		if isStaged(fileStatus.Staging) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)

	var files []models.ModifiedFile
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(files) >= s.maxFiles {
			logger.Info(ctx, "file limit reached, skipping remaining changes", "max_files", s.maxFiles)
			break
		}

		oldContent, err := treeContent(tree, path)
		if err != nil {
			return nil, domainErrors.ErrGetDiff.WithError(fmt.Errorf("reading %s from HEAD: %w", path, err))
		}

		newContent := ""
		if entry, ok := entries[path]; ok {
			if entry.Mode == filemode.Submodule {
				continue
			}
			newContent, err = blobContent(repo, entry.Hash)
			if err != nil {
				return nil, domainErrors.ErrGetDiff.WithError(fmt.Errorf("reading %s from index: %w", path, err))
			}
		}

		if file, ok := s.buildFile(ctx, path, oldContent, newContent); ok {
			files = append(files, *file)
		}
	}
	return files, nil
}

// collectUnstaged diffs the working tree against the index, treating
// untracked files as wholesale additions.
func (s *Service) collectUnstaged(ctx context.Context, repo *gogit.Repository, wt *gogit.Worktree, st gogit.Status) ([]models.ModifiedFile, error) {
	entries, err := indexEntries(repo)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(st))
	for path, fileStatus := range st {
		switch fileStatus.Worktree {
		case gogit.Modified, gogit.Deleted, gogit.Untracked:
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)

	var files []models.ModifiedFile
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(files) >= s.maxFiles {
			logger.Info(ctx, "file limit reached, skipping remaining changes", "max_files", s.maxFiles)
			break
		}

		oldContent := ""
		if entry, ok := entries[path]; ok {
			if entry.Mode == filemode.Submodule {
				continue
			}
			oldContent, err = blobContent(repo, entry.Hash)
			if err != nil {
				return nil, domainErrors.ErrGetDiff.WithError(fmt.Errorf("reading %s from index: %w", path, err))
			}
		}

		newContent, err := worktreeContent(wt, path)
		if err != nil {
			return nil, domainErrors.ErrGetDiff.WithError(fmt.Errorf("reading %s: %w", path, err))
		}

		if file, ok := s.buildFile(ctx, path, oldContent, newContent); ok {
			files = append(files, *file)
		}
	}
	return files, nil
}

// buildFile applies the binary and size guards, computes the line diff,
// and classifies the result. ok is false when the file was skipped or
// produced no changed lines.
func (s *Service) buildFile(ctx context.Context, path, oldContent, newContent string) (*models.ModifiedFile, bool) {
	if isBinary(oldContent) || isBinary(newContent) {
		logger.Info(ctx, "skipping binary file", "path", path)
		return nil, false
	}

	size := len(newContent)
	if size == 0 {
		size = len(oldContent)
	}
	if size > s.maxFileSizeKB*1024 {
		logger.Info(ctx, "skipping large file", "path", path, "size_kb", size/1024)
		return nil, false
	}

	added, removed, patch := lineDiff(oldContent, newContent)
	if added == 0 && removed == 0 {
		return nil, false
	}

	return &models.ModifiedFile{
		Path:         path,
		AddedLines:   added,
		RemovedLines: removed,
		DiffContent:  patch,
		FileType:     analysis.ClassifyFileType(path),
		ChangeHints:  analysis.AnalyseChangeHints(patch, false),
	}, true
}

// lineDiff produces per-line added/removed counts and a compact patch
// holding only the changed lines, prefixed + and - in old-to-new order.
func lineDiff(oldContent, newContent string) (added, removed int, patch string) {
	dmp := diffmatchpatch.New()
	src, dst, lineIndex := dmp.DiffLinesToChars(oldContent, newContent)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(src, dst, false), lineIndex)

	var b strings.Builder
	for _, d := range diffs {
		var prefix byte
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = '+'
		case diffmatchpatch.DiffDelete:
			prefix = '-'
		default:
			continue
		}

		for _, line := range splitLines(d.Text) {
			if prefix == '+' {
				added++
			} else {
				removed++
			}
			if b.Len() < maxDiffContentBytes {
				b.WriteByte(prefix)
				b.WriteString(line)
				b.WriteByte('\n')
			}
		}
	}
	return added, removed, b.String()
}

func indexEntries(repo *gogit.Repository) (map[string]*index.Entry, error) {
	idx, err := repo.Storer.Index()
	if err != nil {
		return nil, domainErrors.ErrGetDiff.WithError(fmt.Errorf("reading index: %w", err))
	}

	entries := make(map[string]*index.Entry, len(idx.Entries))
	for _, entry := range idx.Entries {
		entries[entry.Name] = entry
	}
	return entries, nil
}

func blobContent(repo *gogit.Repository, hash plumbing.Hash) (string, error) {
	blob, err := repo.BlobObject(hash)
	if err != nil {
		return "", err
	}

	reader, err := blob.Reader()
	if err != nil {
		return "", err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// treeContent reads a path from the HEAD tree, returning "" for paths
// that did not exist in the last commit.
func treeContent(tree *object.Tree, path string) (string, error) {
	file, err := tree.File(path)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return "", nil
		}
		return "", err
	}
	return file.Contents()
}

// worktreeContent reads a path from the working tree, returning "" for
// deleted files.
func worktreeContent(wt *gogit.Worktree, path string) (string, error) {
	file, err := wt.Filesystem.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// allAddedPatch renders whole-file content as an all-added patch, capped
// at the same budget as regular diffs.
func allAddedPatch(content string) string {
	var b strings.Builder
	for _, line := range splitLines(content) {
		if b.Len() >= maxDiffContentBytes {
			break
		}
		b.WriteByte('+')
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

func isBinary(content string) bool {
	limit := len(content)
	if limit > binarySniffLen {
		limit = binarySniffLen
	}
	return strings.Contains(content[:limit], "\x00")
}

func countLines(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}

// splitLines breaks a diff chunk into lines, treating a trailing newline
// as a terminator rather than an extra empty line.
func splitLines(chunk string) []string {
	if chunk == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(chunk, "\n"), "\n")
}
