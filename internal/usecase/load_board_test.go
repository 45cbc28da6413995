package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equilibra/eqboard/internal/domain"
	"github.com/equilibra/eqboard/internal/store"
	"github.com/equilibra/eqboard/internal/testutil"
)

func TestLoadBoard_Execute(t *testing.T) {
	// Setup
	gw := testutil.NewMockBoardGateway(newTestBoard())
	s := store.New(gw, &testutil.MockClock{NowTime: testNow}, nil, 0)
	s.Open("1")
	uc := NewLoadBoard(s)

	// Execute
	out, err := uc.Execute(context.Background(), LoadBoardInput{})

	// Assert
	require.NoError(t, err)
	assert.True(t, out.Snapshot.Loaded)
	assert.Equal(t, []domain.EntityID{"101", "102", "103"}, taskIDs(out.Snapshot.Board, "10"))
}

func TestLoadBoard_Execute_NoProject(t *testing.T) {
	s := store.New(testutil.NewMockBoardGateway(newTestBoard()), &testutil.MockClock{}, nil, 0)

	_, err := NewLoadBoard(s).Execute(context.Background(), LoadBoardInput{})

	assert.ErrorIs(t, err, domain.ErrNoProject)
}

func TestLoadBoard_Execute_Error(t *testing.T) {
	gw := testutil.NewMockBoardGateway(newTestBoard())
	gw.FetchErr = assert.AnError
	s := store.New(gw, &testutil.MockClock{}, nil, 0)
	s.Open("1")

	_, err := NewLoadBoard(s).Execute(context.Background(), LoadBoardInput{})

	require.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "load board")
	assert.ErrorIs(t, s.Snapshot().Err, assert.AnError)
}
