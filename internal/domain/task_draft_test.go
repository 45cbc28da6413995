package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskDrafts(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		content string
		want    []TaskDraft
	}{
		{
			name: "single draft with defaults",
			content: `---
title: First Task
---
Task description here.`,
			want: []TaskDraft{
				{
					Title:       "First Task",
					Description: "Task description here.",
					Type:        TaskTypeOther,
					Weight:      1,
				},
			},
		},
		{
			name: "all fields",
			content: `---
title: Add login endpoint
type: code
weight: 5
assignee: 7392648311298117632
---
Use the session cookie.`,
			want: []TaskDraft{
				{
					Title:       "Add login endpoint",
					Description: "Use the session cookie.",
					Type:        TaskTypeCode,
					Assignee:    "7392648311298117632",
					Weight:      5,
				},
			},
		},
		{
			name: "multiple drafts with separator in body",
			content: `intro text is ignored
---
title: "Phase 1: Foundation"
type: DESIGN
---
First body.

---

Still first body.
---
title: Phase 2
weight: 2
---
Second body.`,
			want: []TaskDraft{
				{
					Title:       "Phase 1: Foundation",
					Description: "First body.\n\n---\n\nStill first body.",
					Type:        TaskTypeDesign,
					Weight:      1,
				},
				{
					Title:       "Phase 2",
					Description: "Second body.",
					Type:        TaskTypeOther,
					Weight:      2,
				},
			},
		},
		{
			name:    "empty content",
			content: "  \n",
			wantErr: ErrEmptyFile,
		},
		{
			name:    "no blocks",
			content: "just text",
			wantErr: ErrNoTasksInFile,
		},
		{
			name: "missing title",
			content: `---
type: CODE
---
body`,
			wantErr: ErrEmptyTitle,
		},
		{
			name: "non-code rejected",
			content: `---
title: Meeting notes
type: NON-CODE
---`,
			wantErr: ErrInvalidTaskType,
		},
		{
			name: "weight out of range",
			content: `---
title: Huge
weight: 13
---`,
			wantErr: ErrInvalidWeight,
		},
		{
			name:    "fractional weight rejected",
			content: "---\ntitle: Half\nweight: 0.5\n---\n",
			wantErr: ErrInvalidWeight,
		},
		{
			name:    "fraction above one rejected",
			content: "---\ntitle: Almost four\nweight: 3.9\n---\n",
			wantErr: ErrInvalidWeight,
		},
		{
			name:    "explicit zero rejected",
			content: "---\ntitle: Nothing\nweight: 0\n---\n",
			wantErr: ErrInvalidWeight,
		},
		{
			name:    "quoted weight rejected",
			content: "---\ntitle: Text\nweight: \"3\"\n---\n",
			wantErr: ErrInvalidWeight,
		},
		{
			name:    "null weight gets default",
			content: "---\ntitle: Blank\nweight:\n---\n",
			want:    []TaskDraft{{Title: "Blank", Type: DefaultDraftType, Weight: DefaultDraftWeight}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTaskDrafts(tt.content)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTaskDrafts_ErrorNamesBlock(t *testing.T) {
	_, err := ParseTaskDrafts("---\ntitle: ok\n---\n---\ntitle: bad\nweight: 0.5\n---\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidWeight)
	assert.Contains(t, err.Error(), "task 2")
}

func TestNewBatchReview(t *testing.T) {
	drafts := []TaskDraft{
		{Title: "a", Type: TaskTypeCode, Weight: 2, Assignee: "9"},
		{Title: "b", Type: TaskTypeOther, Weight: 1},
	}

	req := NewBatchReview("1", "77", drafts)

	require.NoError(t, req.Validate())
	require.Len(t, req.Tasks, 2)
	assert.Equal(t, EntityID("9"), req.Tasks[0].AssigneeID)
	assert.True(t, req.Tasks[1].AssigneeID.IsZero())

	assert.ErrorIs(t, NewBatchReview("", "77", drafts).Validate(), ErrNoProject)
	assert.ErrorIs(t, NewBatchReview("1", "", drafts).Validate(), ErrInvalidID)
	assert.ErrorIs(t, NewBatchReview("1", "77", nil).Validate(), ErrNoTasksInFile)
}
