// Package git reads repository changes through go-git and records
// commits with the user's configured identity. All diff inspection is
// in-memory object access, no git binary is required.
package git

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	domainErrors "github.com/jamiehdev/commit-wizard/internal/errors"
	"github.com/jamiehdev/commit-wizard/internal/logger"
)

const (
	defaultMaxFileSizeKB = 100
	defaultMaxFiles      = 10
)

// Service inspects and commits changes in a single repository.
type Service struct {
	path          string
	maxFileSizeKB int
	maxFiles      int
}

// NewService returns a Service rooted at path. Non-positive limits fall
// back to the defaults (100 KB per file, 10 files per pass).
func NewService(path string, maxFileSizeKB, maxFiles int) *Service {
	if maxFileSizeKB <= 0 {
		maxFileSizeKB = defaultMaxFileSizeKB
	}
	if maxFiles <= 0 {
		maxFiles = defaultMaxFiles
	}
	return &Service{path: path, maxFileSizeKB: maxFileSizeKB, maxFiles: maxFiles}
}

func (s *Service) open() (*gogit.Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(s.path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, domainErrors.ErrNotGitRepo.WithError(err)
	}
	return repo, nil
}

// status returns the worktree and its status. go-git computes the
// staging column against an empty tree when the repository has no
// commits yet, so this works on an unborn HEAD too.
func (s *Service) status(repo *gogit.Repository) (*gogit.Worktree, gogit.Status, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return nil, nil, domainErrors.ErrGetDiff.WithError(fmt.Errorf("getting worktree: %w", err))
	}

	st, err := wt.Status()
	if err != nil {
		return nil, nil, domainErrors.ErrGetDiff.WithError(fmt.Errorf("getting status: %w", err))
	}
	return wt, st, nil
}

// HasStagedChanges reports whether the index differs from HEAD. In a
// repository without commits any indexed file counts as staged.
func (s *Service) HasStagedChanges(ctx context.Context) (bool, error) {
	repo, err := s.open()
	if err != nil {
		return false, err
	}

	_, st, err := s.status(repo)
	if err != nil {
		return false, err
	}

	for _, fileStatus := range st {
		if isStaged(fileStatus.Staging) {
			return true, nil
		}
	}
	return false, nil
}

// GetStagedFiles lists the staged paths in lexical order.
func (s *Service) GetStagedFiles(ctx context.Context) ([]string, error) {
	repo, err := s.open()
	if err != nil {
		return nil, err
	}

	_, st, err := s.status(repo)
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
	return paths, nil
}

// CreateCommit records the staged changes under message, signed with
// user.name and user.email from the merged git configuration.
func (s *Service) CreateCommit(ctx context.Context, message string) error {
	repo, err := s.open()
	if err != nil {
		return err
	}

	staged, err := s.HasStagedChanges(ctx)
	if err != nil {
		return err
	}
	if !staged {
		return domainErrors.ErrNoChanges
	}

	cfg, err := repo.ConfigScoped(gitconfig.SystemScope)
	if err != nil {
		return domainErrors.ErrCreateCommit.WithError(fmt.Errorf("reading git config: %w", err))
	}
	if cfg.User.Name == "" || cfg.User.Email == "" {
		return domainErrors.ErrGitUserNotConfigured
	}

	wt, err := repo.Worktree()
	if err != nil {
		return domainErrors.ErrCreateCommit.WithError(fmt.Errorf("getting worktree: %w", err))
	}

	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  cfg.User.Name,
			Email: cfg.User.Email,
			When:  time.Now(),
		},
	})
	if err != nil {
		return domainErrors.ErrCreateCommit.WithError(err)
	}

	logger.Debug(ctx, "commit created", "hash", hash.String()[:8], "author", cfg.User.Name)
	return nil
}

func isStaged(code gogit.StatusCode) bool {
	switch code {
	case gogit.Added, gogit.Modified, gogit.Deleted, gogit.Renamed, gogit.Copied:
		return true
	default:
		return false
	}
}

// headTree resolves the tree of the current HEAD commit, or nil when
// the repository has no commits yet.
func headTree(repo *gogit.Repository) (*object.Tree, error) {
	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting HEAD: %w", err)
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("getting commit: %w", err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("getting tree: %w", err)
	}
	return tree, nil
}
