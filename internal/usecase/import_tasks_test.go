package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equilibra/eqboard/internal/domain"
)

const testDrafts = `---
title: Add login endpoint
type: CODE
weight: 3
assignee: 9223372036854775807
---
POST /auth/login

---
title: "Review: auth flow"
---
`

func TestImportTasks_Execute_Success(t *testing.T) {
	// Setup
	env := newBoardEnv(t)
	uc := NewImportTasks(env.mutator, env.gateway)

	// Execute
	out, err := uc.Execute(context.Background(), ImportTasksInput{AlertID: "77", Content: testDrafts})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, out.Created)
	require.Len(t, out.Drafts, 2)

	require.Len(t, env.gateway.Reviews, 1)
	review := env.gateway.Reviews[0]
	assert.Equal(t, domain.EntityID("77"), review.AlertID)
	assert.Equal(t, domain.EntityID("1"), review.ProjectID)
	require.Len(t, review.Tasks, 2)
	assert.Equal(t, domain.EntityID("9223372036854775807"), review.Tasks[0].AssigneeID)
	assert.Equal(t, "POST /auth/login", review.Tasks[0].Description)
	assert.Equal(t, domain.TaskTypeOther, review.Tasks[1].Type)
	assert.Equal(t, domain.MinWeight, review.Tasks[1].Weight)

	titles := []string{}
	for _, task := range env.board().TasksInBucket("10") {
		titles = append(titles, task.Title)
	}
	assert.Equal(t, []string{"A", "B", "C", "Add login endpoint", "Review: auth flow"}, titles)
}

func TestImportTasks_Execute_DryRun(t *testing.T) {
	env := newBoardEnv(t)

	out, err := NewImportTasks(env.mutator, env.gateway).Execute(context.Background(), ImportTasksInput{
		AlertID: "77",
		Content: testDrafts,
		DryRun:  true,
	})

	require.NoError(t, err)
	assert.Len(t, out.Drafts, 2)
	assert.Zero(t, out.Created)
	assert.Zero(t, env.gateway.CallCount("BatchReview"))
}

func TestImportTasks_Execute_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		in      ImportTasksInput
		wantErr error
	}{
		{name: "empty file", in: ImportTasksInput{AlertID: "77", Content: "  \n"}, wantErr: domain.ErrEmptyFile},
		{name: "no blocks", in: ImportTasksInput{AlertID: "77", Content: "just text"}, wantErr: domain.ErrNoTasksInFile},
		{name: "non-code", in: ImportTasksInput{AlertID: "77", Content: "---\ntitle: x\ntype: NON-CODE\n---\n"}, wantErr: domain.ErrInvalidTaskType},
		{name: "no alert", in: ImportTasksInput{Content: testDrafts}, wantErr: domain.ErrInvalidID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newBoardEnv(t)

			_, err := NewImportTasks(env.mutator, env.gateway).Execute(context.Background(), tt.in)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, env.gateway.CallCount("BatchReview"))
		})
	}
}

func TestImportTasks_Execute_RemoteError(t *testing.T) {
	env := newBoardEnv(t)
	env.gateway.BatchReviewErr = assert.AnError
	before := env.board()

	_, err := NewImportTasks(env.mutator, env.gateway).Execute(context.Background(), ImportTasksInput{AlertID: "77", Content: testDrafts})

	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, before, env.board())
}
