// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"

	"github.com/equilibra/eqboard/internal/domain"
	"github.com/equilibra/eqboard/internal/usecase/shared"
)

// LoadBoardInput contains the parameters for loading the board.
type LoadBoardInput struct {
	Silent bool // Keep the loading flag and visible error untouched
}

// LoadBoardOutput contains the loaded board.
type LoadBoardOutput struct {
	Snapshot domain.BoardSnapshot
}

// LoadBoard fetches the open project's board into the store.
type LoadBoard struct {
	store domain.BoardStore
}

// NewLoadBoard creates a new LoadBoard use case.
func NewLoadBoard(store domain.BoardStore) *LoadBoard {
	return &LoadBoard{store: store}
}

// Execute refreshes the board.
func (uc *LoadBoard) Execute(ctx context.Context, in LoadBoardInput) (*LoadBoardOutput, error) {
	if _, err := shared.RequireProject(uc.store); err != nil {
		return nil, err
	}
	snap, err := uc.store.Refresh(ctx, in.Silent)
	if err != nil {
		return nil, fmt.Errorf("load board: %w", err)
	}
	return &LoadBoardOutput{Snapshot: snap}, nil
}
