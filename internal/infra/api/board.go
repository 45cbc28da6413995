package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/equilibra/eqboard/internal/domain"
)

// Ensure Client implements the gateway ports.
var (
	_ domain.BoardGateway  = (*Client)(nil)
	_ domain.MemberGateway = (*Client)(nil)
	_ domain.AlertGateway  = (*Client)(nil)
)

// FetchBoard returns the project's buckets and tasks from the combined
// board endpoint, normalised and sorted.
func (c *Client) FetchBoard(ctx context.Context, projectID domain.EntityID) (*domain.Board, error) {
	var board domain.Board
	if err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/projects/%s/board", projectID), nil, &board); err != nil {
		return nil, err
	}
	board.Normalize()
	return &board, nil
}

// CreateTask creates a task.
func (c *Client) CreateTask(ctx context.Context, in domain.TaskCreate) (*domain.Task, error) {
	var task domain.Task
	if err := c.Do(ctx, http.MethodPost, "/tasks", in, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a partial update.
func (c *Client) UpdateTask(ctx context.Context, id domain.EntityID, patch domain.TaskPatch) (*domain.Task, error) {
	var task domain.Task
	if err := c.Do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%s", id), patch, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask soft-deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id domain.EntityID) error {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%s", id), nil, nil)
}

// ReorderTasks sends the full ordered task list of a bucket as a bare JSON
// array of identifiers.
func (c *Client) ReorderTasks(ctx context.Context, projectID, bucketID domain.EntityID, ids []domain.EntityID) error {
	endpoint := fmt.Sprintf("/projects/%s/buckets/%s/tasks/reorder", projectID, bucketID)
	return c.Do(ctx, http.MethodPut, endpoint, nonNil(ids), nil)
}

// CreateBucket creates a bucket.
func (c *Client) CreateBucket(ctx context.Context, in domain.BucketCreate) (*domain.Bucket, error) {
	var bucket domain.Bucket
	if err := c.Do(ctx, http.MethodPost, "/buckets", in, &bucket); err != nil {
		return nil, err
	}
	return &bucket, nil
}

// ReorderBuckets sends the full ordered bucket list of a project.
func (c *Client) ReorderBuckets(ctx context.Context, projectID domain.EntityID, ids []domain.EntityID) error {
	return c.Do(ctx, http.MethodPut, fmt.Sprintf("/projects/%s/buckets/reorder", projectID), nonNil(ids), nil)
}

// DeleteBucket deletes an empty bucket. The backend answers 409 when the
// bucket still holds tasks.
func (c *Client) DeleteBucket(ctx context.Context, projectID, bucketID domain.EntityID) error {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/projects/%s/buckets/%s", projectID, bucketID), nil, nil)
}

// BatchReview commits reviewed task drafts.
func (c *Client) BatchReview(ctx context.Context, in domain.BatchReview) (*domain.BatchReviewResult, error) {
	var res domain.BatchReviewResult
	if err := c.Do(ctx, http.MethodPost, "/tasks/batch-review", in, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// nonNil keeps an empty list encoded as [] rather than null.
func nonNil(ids []domain.EntityID) []domain.EntityID {
	if ids == nil {
		return []domain.EntityID{}
	}
	return ids
}
