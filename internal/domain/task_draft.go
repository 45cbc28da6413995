package domain

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// TaskDraft is a reviewed task suggestion read from a file before it is
// committed through the batch-review endpoint.
// Fields are ordered to minimize memory padding.
type TaskDraft struct {
	Title       string
	Description string
	Type        TaskType
	Assignee    EntityID
	Weight      int
}

// draftFrontmatter is the YAML header of one draft block.
type draftFrontmatter struct {
	Title    string `yaml:"title"`
	Type     string `yaml:"type"`
	Assignee string    `yaml:"assignee"`
	Weight   yaml.Node `yaml:"weight"` // Kept as a node so 0.5 and "3" are rejected, not truncated
}

// draftKeys are the frontmatter keys that mark the start of a new block.
var draftKeys = []string{"title:", "type:", "weight:", "assignee:"}

// Draft defaults applied when the frontmatter omits a field.
const (
	DefaultDraftType   = TaskTypeOther
	DefaultDraftWeight = MinWeight
)

// ParseTaskDrafts parses a markdown file containing one or more task drafts.
// Drafts are separated by frontmatter blocks starting with "---".
//
// Format:
//
//	---
//	title: Add login endpoint
//	type: CODE
//	weight: 3
//	assignee: 7392648311298117632
//	---
//	Description here.
//
//	---
//	title: "Review: auth flow"
//	---
//	Second draft body.
//
// Titles containing ": " must be quoted.
func ParseTaskDrafts(content string) ([]TaskDraft, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyFile
	}

	blocks := splitDraftBlocks(content)
	if len(blocks) == 0 {
		return nil, ErrNoTasksInFile
	}

	drafts := make([]TaskDraft, 0, len(blocks))
	for i, block := range blocks {
		draft, err := parseDraftBlock(block)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

// draftBlock holds the raw frontmatter and body of one draft.
type draftBlock struct {
	header []string
	body   []string
}

// splitDraftBlocks splits content into draft blocks. A "---" line inside a
// body only starts a new block when the next line is a frontmatter key.
func splitDraftBlocks(content string) []draftBlock {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	var blocks []draftBlock
	var cur *draftBlock
	inHeader := false

	for i, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		switch {
		case trimmed == "---" && cur == nil:
			cur = &draftBlock{}
			inHeader = true
		case trimmed == "---" && inHeader:
			inHeader = false
		case trimmed == "---" && i+1 < len(lines) && isDraftKey(lines[i+1]):
			blocks = append(blocks, *cur)
			cur = &draftBlock{}
			inHeader = true
		case cur == nil:
			// Text before the first block is ignored.
		case inHeader:
			cur.header = append(cur.header, line)
		default:
			cur.body = append(cur.body, line)
		}
	}
	if cur != nil {
		blocks = append(blocks, *cur)
	}
	return blocks
}

func isDraftKey(line string) bool {
	for _, key := range draftKeys {
		if strings.HasPrefix(line, key) {
			return true
		}
	}
	return false
}

func parseDraftBlock(block draftBlock) (TaskDraft, error) {
	var fm draftFrontmatter
	if err := yaml.Unmarshal([]byte(strings.Join(block.header, "\n")), &fm); err != nil {
		return TaskDraft{}, fmt.Errorf("parse frontmatter: %w", err)
	}

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		return TaskDraft{}, ErrEmptyTitle
	}

	weight, err := draftWeight(&fm.Weight)
	if err != nil {
		return TaskDraft{}, err
	}

	draft := TaskDraft{
		Title:       title,
		Description: strings.TrimSpace(strings.Join(block.body, "\n")),
		Type:        TaskType(strings.ToUpper(strings.TrimSpace(fm.Type))),
		Assignee:    ParseEntityID(fm.Assignee),
		Weight:      weight,
	}
	if draft.Type == "" {
		draft.Type = DefaultDraftType
	}
	if err := draft.Validate(); err != nil {
		return TaskDraft{}, err
	}
	return draft, nil
}

// draftWeight reads the weight scalar. A missing or null weight gets the
// default; anything but a YAML integer is an error.
func draftWeight(n *yaml.Node) (int, error) {
	if n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null") {
		return DefaultDraftWeight, nil
	}
	if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!int" {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidWeight, n.Value)
	}
	var weight int
	if err := n.Decode(&weight); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidWeight, err)
	}
	return weight, nil
}

// Validate checks the draft against the batch-review rules. NON-CODE is not
// accepted there.
func (d TaskDraft) Validate() error {
	if d.Title == "" {
		return ErrEmptyTitle
	}
	if d.Type == TaskTypeNonCode {
		return fmt.Errorf("%w: %q is not accepted for review import", ErrInvalidTaskType, d.Type)
	}
	return validateTypeAndWeight(d.Type, d.Weight)
}

// BatchReviewItem is one task in a batch-review request.
type BatchReviewItem struct {
	AssigneeID  EntityID `json:"assignee_id,omitzero"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Type        TaskType `json:"type"`
	Weight      int      `json:"weight"`
}

// BatchReview commits reviewed drafts and resolves the alert that proposed
// them. The backend applies it all-or-nothing.
type BatchReview struct {
	AlertID   EntityID          `json:"alert_id"`
	ProjectID EntityID          `json:"project_id"`
	Tasks     []BatchReviewItem `json:"tasks"`
}

// NewBatchReview builds a request from parsed drafts.
func NewBatchReview(projectID, alertID EntityID, drafts []TaskDraft) BatchReview {
	items := make([]BatchReviewItem, 0, len(drafts))
	for _, d := range drafts {
		items = append(items, BatchReviewItem{
			AssigneeID:  d.Assignee,
			Title:       d.Title,
			Description: d.Description,
			Type:        d.Type,
			Weight:      d.Weight,
		})
	}
	return BatchReview{AlertID: alertID, ProjectID: projectID, Tasks: items}
}

// Validate checks the request before it is sent.
func (r BatchReview) Validate() error {
	if r.ProjectID.IsZero() {
		return ErrNoProject
	}
	if r.AlertID.IsZero() {
		return fmt.Errorf("%w: alert id is required", ErrInvalidID)
	}
	if len(r.Tasks) == 0 {
		return ErrNoTasksInFile
	}
	return nil
}

// BatchReviewResult is the backend's reply to a batch review.
type BatchReviewResult struct {
	Status       string `json:"status"`
	TasksCreated int    `json:"tasks_created"`
}
