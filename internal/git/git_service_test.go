package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/jamiehdev/commit-wizard/internal/errors"
	"github.com/jamiehdev/commit-wizard/internal/models"
)

// initTestRepo creates a temp dir with a git repository and a local
// user identity, returning the directory path.
func initTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	cfg, err := repo.Config()
	require.NoError(t, err)
	cfg.User.Name = "Test User"
	cfg.User.Email = "test@example.com"
	require.NoError(t, repo.SetConfig(cfg))

	return dir
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func stageFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	repo, err := gogit.PlainOpen(dir)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	for _, name := range names {
		_, err := wt.Add(name)
		require.NoError(t, err)
	}
}

// removeFile stages the deletion of a tracked file, like git rm.
func removeFile(t *testing.T, dir, name string) {
	t.Helper()
	repo, err := gogit.PlainOpen(dir)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	_, err = wt.Remove(name)
	require.NoError(t, err)
}

func commitAll(t *testing.T, dir, message string) {
	t.Helper()
	repo, err := gogit.PlainOpen(dir)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	_, err = wt.Add(".")
	require.NoError(t, err)

	_, err = wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{Name: "Test User", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
}

func TestNewServiceDefaults(t *testing.T) {
	s := NewService("/tmp/repo", 0, 0)
	assert.Equal(t, defaultMaxFileSizeKB, s.maxFileSizeKB)
	assert.Equal(t, defaultMaxFiles, s.maxFiles)
}

func TestHasStagedChanges(t *testing.T) {
	dir := initTestRepo(t)
	svc := NewService(dir, 100, 10)
	ctx := context.Background()

	staged, err := svc.HasStagedChanges(ctx)
	require.NoError(t, err)
	assert.False(t, staged, "empty repository should have nothing staged")

	writeFile(t, dir, "main.go", "package main\n")
	staged, err = svc.HasStagedChanges(ctx)
	require.NoError(t, err)
	assert.False(t, staged, "untracked files are not staged")

	stageFiles(t, dir, "main.go")
	staged, err = svc.HasStagedChanges(ctx)
	require.NoError(t, err)
	assert.True(t, staged, "indexed file in a repository without commits counts as staged")

	commitAll(t, dir, "initial commit")
	staged, err = svc.HasStagedChanges(ctx)
	require.NoError(t, err)
	assert.False(t, staged, "a commit empties the staging area")
}

func TestGetStagedFiles(t *testing.T) {
	dir := initTestRepo(t)
	svc := NewService(dir, 100, 10)

	writeFile(t, dir, "b.go", "package b\n")
	writeFile(t, dir, "a.go", "package a\n")
	stageFiles(t, dir, "b.go", "a.go")

	paths, err := svc.GetStagedFiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go", "b.go"}, paths)
}

func TestGetDiffInfoInitialCommit(t *testing.T) {
	dir := initTestRepo(t)
	svc := NewService(dir, 100, 10)

	content := "package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"start\")\n\tfmt.Println(\"ready\")\n}\n\nfunc helper() int {\n\treturn 3\n}\n"
	writeFile(t, dir, "main.go", content)
	stageFiles(t, dir, "main.go")

	info, err := svc.GetDiffInfo(context.Background())
	require.NoError(t, err)

	require.Len(t, info.Files, 1)
	f := info.Files[0]
	assert.Equal(t, "main.go", f.Path)
	assert.Equal(t, 12, f.AddedLines)
	assert.Equal(t, 0, f.RemovedLines)
	assert.Equal(t, models.FileTypeSourceCode, f.FileType)
	assert.Equal(t, []models.ChangeHint{models.HintNewFeature, models.HintMajorAddition}, f.ChangeHints)

	assert.True(t, strings.HasPrefix(f.DiffContent, "+package main\n+\n"))
	assert.Contains(t, f.DiffContent, "+func helper() int {\n")

	assert.Contains(t, info.Summary, "1 file changed, 12 insertions, 0 deletions")
	assert.Contains(t, info.Summary, "main.go (+12, -0) (new file)")
	assert.Contains(t, info.Summary, "key changes: add dependencies, add function helper, add function main")
}

func TestGetDiffInfoStagedModification(t *testing.T) {
	dir := initTestRepo(t)
	writeFile(t, dir, "notes.txt", "one\ntwo\nthree\n")
	commitAll(t, dir, "initial commit")

	writeFile(t, dir, "notes.txt", "one\n2\nthree\nfour\n")
	stageFiles(t, dir, "notes.txt")

	// A later unstaged edit must not leak into the staged analysis.
	writeFile(t, dir, "notes.txt", "one\n2\nthree\nfour\nworktree-only\n")

	info, err := NewService(dir, 100, 10).GetDiffInfo(context.Background())
	require.NoError(t, err)

	require.Len(t, info.Files, 1)
	f := info.Files[0]
	assert.Equal(t, "notes.txt", f.Path)
	assert.Equal(t, 2, f.AddedLines)
	assert.Equal(t, 1, f.RemovedLines)
	assert.Equal(t, models.FileTypeDocumentation, f.FileType)
	assert.Contains(t, f.DiffContent, "-two\n")
	assert.Contains(t, f.DiffContent, "+2\n")
	assert.Contains(t, f.DiffContent, "+four\n")
	assert.NotContains(t, f.DiffContent, "worktree-only")

	assert.Contains(t, info.Summary, "1 file changed, 2 insertions, 1 deletion")
	assert.Contains(t, info.Summary, "notes.txt (+2, -1) (modified)")
}

func TestGetDiffInfoUnstagedFallback(t *testing.T) {
	dir := initTestRepo(t)
	writeFile(t, dir, "app.py", "def run():\n    return 1\n")
	commitAll(t, dir, "initial commit")

	// One unstaged edit plus one untracked file.
	writeFile(t, dir, "app.py", "def run():\n    return 2\n")
	writeFile(t, dir, "util.py", "def helper():\n    return 3\n")

	info, err := NewService(dir, 100, 10).GetDiffInfo(context.Background())
	require.NoError(t, err)

	require.Len(t, info.Files, 2)
	assert.Equal(t, "app.py", info.Files[0].Path)
	assert.Equal(t, 1, info.Files[0].AddedLines)
	assert.Equal(t, 1, info.Files[0].RemovedLines)
	assert.ElementsMatch(t, []models.ChangeHint{models.HintMinorTweak}, info.Files[0].ChangeHints)

	assert.Equal(t, "util.py", info.Files[1].Path)
	assert.Equal(t, 2, info.Files[1].AddedLines)
	assert.Equal(t, 0, info.Files[1].RemovedLines)
	assert.ElementsMatch(t, []models.ChangeHint{models.HintNewFunction}, info.Files[1].ChangeHints)
}

func TestGetDiffInfoStagedSuppressesUnstaged(t *testing.T) {
	dir := initTestRepo(t)
	writeFile(t, dir, "a.txt", "alpha\n")
	writeFile(t, dir, "b.txt", "beta\n")
	commitAll(t, dir, "initial commit")

	writeFile(t, dir, "a.txt", "alpha\nsecond\n")
	stageFiles(t, dir, "a.txt")
	writeFile(t, dir, "b.txt", "beta\nunstaged\n")

	info, err := NewService(dir, 100, 10).GetDiffInfo(context.Background())
	require.NoError(t, err)

	require.Len(t, info.Files, 1)
	assert.Equal(t, "a.txt", info.Files[0].Path)
}

func TestGetDiffInfoNoChanges(t *testing.T) {
	t.Run("clean repository", func(t *testing.T) {
		dir := initTestRepo(t)
		writeFile(t, dir, "main.go", "package main\n")
		commitAll(t, dir, "initial commit")

		_, err := NewService(dir, 100, 10).GetDiffInfo(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, domainErrors.ErrNoChanges)
	})

	t.Run("empty repository", func(t *testing.T) {
		dir := initTestRepo(t)

		_, err := NewService(dir, 100, 10).GetDiffInfo(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, domainErrors.ErrNoChanges)
	})
}

func TestGetDiffInfoSkipsBinaryFiles(t *testing.T) {
	dir := initTestRepo(t)
	svc := NewService(dir, 100, 10)
	ctx := context.Background()

	writeFile(t, dir, "logo.bin", "PNG\x00\x01\x02data")
	writeFile(t, dir, "main.go", "package main\n\nfunc main() {}\n")
	stageFiles(t, dir, "logo.bin", "main.go")

	info, err := svc.GetDiffInfo(ctx)
	require.NoError(t, err)
	require.Len(t, info.Files, 1)
	assert.Equal(t, "main.go", info.Files[0].Path)

	commitAll(t, dir, "initial commit")

	writeFile(t, dir, "logo.bin", "PNG\x00\x03\x04more")
	writeFile(t, dir, "main.go", "package main\n\nfunc main() { println(1) }\n")
	stageFiles(t, dir, "logo.bin", "main.go")

	info, err = svc.GetDiffInfo(ctx)
	require.NoError(t, err)
	require.Len(t, info.Files, 1)
	assert.Equal(t, "main.go", info.Files[0].Path)
}

func TestGetDiffInfoSkipsLargeFiles(t *testing.T) {
	dir := initTestRepo(t)
	svc := NewService(dir, 1, 10) // 1 KB ceiling

	writeFile(t, dir, "big.txt", strings.Repeat("0123456789abcde\n", 128))
	writeFile(t, dir, "small.txt", "just a note\n")
	stageFiles(t, dir, "big.txt", "small.txt")

	info, err := svc.GetDiffInfo(context.Background())
	require.NoError(t, err)
	require.Len(t, info.Files, 1)
	assert.Equal(t, "small.txt", info.Files[0].Path)
}

func TestGetDiffInfoFileLimit(t *testing.T) {
	dir := initTestRepo(t)
	svc := NewService(dir, 100, 2)

	for _, name := range []string{"a.txt", "b.txt", "c.txt", "d.txt"} {
		writeFile(t, dir, name, "line one\nline two\n")
	}
	stageFiles(t, dir, "a.txt", "b.txt", "c.txt", "d.txt")

	info, err := svc.GetDiffInfo(context.Background())
	require.NoError(t, err, "hitting the file limit is not an error")
	require.Len(t, info.Files, 2)
	assert.Equal(t, "a.txt", info.Files[0].Path)
	assert.Equal(t, "b.txt", info.Files[1].Path)
}

func TestGetDiffInfoCapsDiffContent(t *testing.T) {
	dir := initTestRepo(t)
	writeFile(t, dir, "base.txt", "start\n")
	commitAll(t, dir, "initial commit")

	var sb strings.Builder
	sb.WriteString("start\n")
	for i := 0; i < 400; i++ {
		fmt.Fprintf(&sb, "added line number %03d padding padding\n", i)
	}
	writeFile(t, dir, "base.txt", sb.String())
	stageFiles(t, dir, "base.txt")

	info, err := NewService(dir, 100, 10).GetDiffInfo(context.Background())
	require.NoError(t, err)

	require.Len(t, info.Files, 1)
	f := info.Files[0]
	assert.Equal(t, 400, f.AddedLines, "line counts keep accumulating past the content cap")
	assert.Less(t, len(f.DiffContent), maxDiffContentBytes+100)
}

func TestGetDiffInfoDeletedFile(t *testing.T) {
	dir := initTestRepo(t)
	writeFile(t, dir, "old.conf", "one\ntwo\nthree\nfour\nfive\nsix\nseven\n")
	writeFile(t, dir, "keep.txt", "keep\n")
	commitAll(t, dir, "initial commit")

	removeFile(t, dir, "old.conf")

	info, err := NewService(dir, 100, 10).GetDiffInfo(context.Background())
	require.NoError(t, err)

	require.Len(t, info.Files, 1)
	f := info.Files[0]
	assert.Equal(t, "old.conf", f.Path)
	assert.Equal(t, 0, f.AddedLines)
	assert.Equal(t, 7, f.RemovedLines)
	assert.Equal(t, models.FileTypeConfig, f.FileType)
	assert.Contains(t, info.Summary, "1 file changed, 0 insertions, 7 deletions")
	assert.Contains(t, info.Summary, "old.conf (+0, -7) (major deletions)")
}

func TestGetDiffInfoHonoursContext(t *testing.T) {
	dir := initTestRepo(t)
	writeFile(t, dir, "main.go", "package main\n")
	stageFiles(t, dir, "main.go")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewService(dir, 100, 10).GetDiffInfo(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetDiffInfoNotARepository(t *testing.T) {
	_, err := NewService(t.TempDir(), 100, 10).GetDiffInfo(context.Background())
	require.Error(t, err)

	var appErr *domainErrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, domainErrors.TypeGit, appErr.Type)
	assert.Contains(t, appErr.Message, "git repository")
}

func TestCreateCommit(t *testing.T) {
	dir := initTestRepo(t)
	svc := NewService(dir, 100, 10)
	ctx := context.Background()

	writeFile(t, dir, "main.go", "package main\n")
	stageFiles(t, dir, "main.go")

	require.NoError(t, svc.CreateCommit(ctx, "feat: add entry point"))

	repo, err := gogit.PlainOpen(dir)
	require.NoError(t, err)
	head, err := repo.Head()
	require.NoError(t, err)
	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)

	assert.Equal(t, "feat: add entry point", commit.Message)
	assert.Equal(t, "Test User", commit.Author.Name)
	assert.Equal(t, "test@example.com", commit.Author.Email)

	err = svc.CreateCommit(ctx, "feat: nothing staged")
	assert.ErrorIs(t, err, domainErrors.ErrNoChanges)
}

func TestCreateCommitRequiresIdentity(t *testing.T) {
	dir := t.TempDir()
	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	// Hide any real global identity from the scoped config lookup.
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")

	writeFile(t, dir, "main.go", "package main\n")
	stageFiles(t, dir, "main.go")

	err = NewService(dir, 100, 10).CreateCommit(context.Background(), "feat: initial")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrGitUserNotConfigured)
}

func TestLineDiff(t *testing.T) {
	added, removed, patch := lineDiff("a\nb\nc\n", "a\nx\nc\nd\n")
	assert.Equal(t, 2, added)
	assert.Equal(t, 1, removed)
	assert.Contains(t, patch, "-b\n")
	assert.Contains(t, patch, "+x\n")
	assert.Contains(t, patch, "+d\n")
	assert.NotContains(t, patch, "c", "unchanged lines stay out of the patch")
}

func TestCountLines(t *testing.T) {
	assert.Equal(t, 0, countLines(""))
	assert.Equal(t, 1, countLines("a\n"))
	assert.Equal(t, 1, countLines("a"))
	assert.Equal(t, 2, countLines("a\nb"))
	assert.Equal(t, 2, countLines("a\nb\n"))
}

func TestDescribeChange(t *testing.T) {
	tests := []struct {
		name    string
		added   int
		removed int
		want    string
	}{
		{"new file", 12, 0, " (new file)"},
		{"small addition-only file", 3, 0, " (major additions)"},
		{"major additions", 30, 4, " (major additions)"},
		{"major deletions", 2, 9, " (major deletions)"},
		{"balanced edit", 6, 5, " (modified)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &models.ModifiedFile{AddedLines: tt.added, RemovedLines: tt.removed}
			assert.Equal(t, tt.want, describeChange(f))
		})
	}
}

func TestExtractKeyChanges(t *testing.T) {
	t.Run("collects function, type, and dependency phrases", func(t *testing.T) {
		diff := "+use std::collections::HashMap;\n" +
			"+pub fn compute_total(items: &[Item]) -> u64 {\n" +
			"+struct Basket {\n" +
			"-old line\n"

		want := []string{"add dependencies", "add function compute_total", "add type definition"}
		assert.Equal(t, want, extractKeyChanges(diff))
	})

	t.Run("caps at three phrases", func(t *testing.T) {
		diff := "+import requests\n" +
			"+def fetch(url):\n" +
			"+class Client:\n" +
			"+retry_config = Config()\n" +
			"+raise TimeoutError\n"

		want := []string{"add dependencies", "add function fetch", "add type definition"}
		assert.Equal(t, want, extractKeyChanges(diff))
	})

	t.Run("ignores removals and patch headers", func(t *testing.T) {
		diff := "-struct Gone {\n+++ b/file.rs\n context line\n"
		assert.Empty(t, extractKeyChanges(diff))
	})
}

func TestDeclaredFunctionName(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"pub fn parse_input(raw: &str)", "parse_input"},
		{"pub async fn run()", "run"},
		{"func NewService(path string)", "NewService"},
		{"export function handleClick() {", "handleClick"},
		{"def compute(x):", "compute"},
		{"fn private_helper()", ""},
		{"let total = 4", ""},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, declaredFunctionName(tt.line))
		})
	}
}
