package shared

import (
	"fmt"

	"github.com/equilibra/eqboard/internal/domain"
)

// ResolveBranch returns the branch checked out in the working directory.
// A nil resolver means the working directory is not a repository.
func ResolveBranch(git domain.BranchResolver) (string, error) {
	if git == nil {
		return "", domain.ErrNotGitRepository
	}
	branch, err := git.CurrentBranch()
	if err != nil {
		return "", fmt.Errorf("resolve current branch: %w", err)
	}
	return branch, nil
}

// RequireProject returns the open project or domain.ErrNoProject.
func RequireProject(store domain.BoardStore) (domain.EntityID, error) {
	id := store.ProjectID()
	if id.IsZero() {
		return "", domain.ErrNoProject
	}
	return id, nil
}
