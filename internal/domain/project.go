package domain

// Project is a board owner as listed by the backend.
// Fields are ordered to minimize memory padding.
type Project struct {
	ID                EntityID `json:"id"`
	CompletedBucketID EntityID `json:"completed_bucket_id,omitzero"`
	InReviewBucketID  EntityID `json:"in_review_bucket_id,omitzero"`
	TodoBucketID      EntityID `json:"todo_bucket_id,omitzero"`
	Name              string   `json:"name"`
	Description       string   `json:"description,omitempty"`
	Status            string   `json:"status,omitempty"`
	GHRepoURLs        []string `json:"gh_repo_url,omitempty"`
	Tags              []string `json:"tags,omitempty"`
	IsDeleted         bool     `json:"is_deleted,omitempty"`
}

// Activity is one entry of a project's activity feed, e.g. "ana moved
// Login form to On Review".
// Fields are ordered to minimize memory padding.
type Activity struct {
	CreatedAt Timestamp `json:"created_at,omitzero"`
	ID        EntityID  `json:"id"`
	ProjectID EntityID  `json:"project_id"`
	UserName  string    `json:"user_name"`
	Action    string    `json:"action"`
	Target    string    `json:"target"`
}
