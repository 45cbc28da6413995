// Package git reads the state of the local repository. The CLI uses it to
// fill a task's branch link from the checked-out branch.
package git

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/equilibra/eqboard/internal/domain"
)

// Ensure Client implements domain.BranchResolver.
var _ domain.BranchResolver = (*Client)(nil)

// Client provides git operations.
type Client struct {
	repo     *git.Repository
	repoRoot string // Worktree root (parent of .git)
}

// NewClient opens the repository containing dir, searching parent
// directories. Linked worktrees are supported.
func NewClient(dir string) (*Client, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, domain.ErrNotGitRepository
		}
		return nil, fmt.Errorf("open git repository: %w", err)
	}

	root := dir
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &Client{repo: repo, repoRoot: root}, nil
}

// RepoRoot returns the repository root directory.
func (c *Client) RepoRoot() string {
	return c.repoRoot
}

// CurrentBranch returns the short name of the checked-out branch. A branch
// with no commits yet is still reported. A detached HEAD returns
// domain.ErrDetachedHead.
func (c *Client) CurrentBranch() (string, error) {
	head, err := c.repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", fmt.Errorf("read HEAD: %w", err)
	}
	if head.Type() != plumbing.SymbolicReference {
		return "", domain.ErrDetachedHead
	}
	target := head.Target()
	if !target.IsBranch() {
		return "", domain.ErrDetachedHead
	}
	return target.Short(), nil
}
