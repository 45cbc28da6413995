package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equilibra/eqboard/internal/domain"
	"github.com/equilibra/eqboard/internal/testutil"
)

func TestCreateTask_Execute_Success(t *testing.T) {
	// Setup
	env := newBoardEnv(t)
	uc := NewCreateTask(env.mutator, env.gateway, nil)

	// Execute
	out, err := uc.Execute(context.Background(), CreateTaskInput{
		BucketID: "20",
		Title:    "New card",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "New card", out.Task.Title)
	assert.Equal(t, domain.TaskTypeOther, out.Task.Type)
	assert.Equal(t, domain.MinWeight, out.Task.Weight)
	assert.Equal(t, 2, env.gateway.CallCount("FetchBoard"), "created tasks are picked up by a refresh")
	assert.Equal(t, []domain.EntityID{"201", "202", out.Task.ID}, taskIDs(env.board(), "20"))
}

func TestCreateTask_Execute_BranchFromGit(t *testing.T) {
	env := newBoardEnv(t)
	uc := NewCreateTask(env.mutator, env.gateway, &testutil.MockGit{CurrentBranchName: "feat/login"})

	out, err := uc.Execute(context.Background(), CreateTaskInput{
		Title:         "Login",
		Type:          domain.TaskTypeCode,
		Weight:        3,
		BranchFromGit: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "feat/login", out.Task.BranchName)
	assert.Equal(t, domain.EntityID("10"), out.Task.BucketID)
}

func TestCreateTask_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		in      CreateTaskInput
		git     domain.BranchResolver
		wantErr error
	}{
		{name: "no repository", in: CreateTaskInput{Title: "t", BranchFromGit: true}, wantErr: domain.ErrNotGitRepository},
		{name: "empty title", in: CreateTaskInput{}, wantErr: domain.ErrEmptyTitle},
		{name: "weight too high", in: CreateTaskInput{Title: "t", Weight: 9}, wantErr: domain.ErrInvalidWeight},
		{name: "unknown type", in: CreateTaskInput{Title: "t", Type: "EPIC"}, wantErr: domain.ErrInvalidTaskType},
		{name: "unknown bucket", in: CreateTaskInput{Title: "t", BucketID: "99"}, wantErr: domain.ErrBucketNotFound},
		{name: "detached head", in: CreateTaskInput{Title: "t", BranchFromGit: true}, git: &testutil.MockGit{CurrentBranchErr: domain.ErrDetachedHead}, wantErr: domain.ErrDetachedHead},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newBoardEnv(t)
			uc := NewCreateTask(env.mutator, env.gateway, tt.git)

			_, err := uc.Execute(context.Background(), tt.in)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, env.gateway.CallCount("CreateTask"))
		})
	}
}

func TestCreateTask_Execute_RemoteError(t *testing.T) {
	// Setup
	env := newBoardEnv(t)
	env.gateway.CreateTaskErr = assert.AnError
	before := env.board()
	uc := NewCreateTask(env.mutator, env.gateway, nil)

	// Execute
	_, err := uc.Execute(context.Background(), CreateTaskInput{Title: "Doomed"})

	// Assert
	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, before, env.board())
	assert.Len(t, env.notifier.Failures(), 1)
}
