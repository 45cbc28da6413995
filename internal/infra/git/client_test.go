package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equilibra/eqboard/internal/domain"
)

func setupTestRepo(t *testing.T) (string, *git.Repository, plumbing.Hash) {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Test"), 0o644))
	_, err = wt.Add("README.md")
	require.NoError(t, err)

	hash, err := wt.Commit("Initial commit", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)
	return dir, repo, hash
}

func TestNewClient_NotARepository(t *testing.T) {
	_, err := NewClient(t.TempDir())

	assert.ErrorIs(t, err, domain.ErrNotGitRepository)
}

func TestNewClient_FromSubdirectory(t *testing.T) {
	dir, _, _ := setupTestRepo(t)
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	client, err := NewClient(sub)
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(client.RepoRoot())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestClient_CurrentBranch(t *testing.T) {
	dir, repo, _ := setupTestRepo(t)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName("feat/board-sync"),
		Create: true,
	}))

	client, err := NewClient(dir)
	require.NoError(t, err)
	branch, err := client.CurrentBranch()

	require.NoError(t, err)
	assert.Equal(t, "feat/board-sync", branch)
}

func TestClient_CurrentBranch_Unborn(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	client, err := NewClient(dir)
	require.NoError(t, err)
	branch, err := client.CurrentBranch()

	require.NoError(t, err)
	assert.Equal(t, "master", branch)
}

func TestClient_CurrentBranch_Detached(t *testing.T) {
	dir, repo, hash := setupTestRepo(t)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, wt.Checkout(&git.CheckoutOptions{Hash: hash}))

	client, err := NewClient(dir)
	require.NoError(t, err)
	_, err = client.CurrentBranch()

	assert.ErrorIs(t, err, domain.ErrDetachedHead)
}
