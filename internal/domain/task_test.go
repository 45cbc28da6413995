package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestTaskType_IsValid(t *testing.T) {
	for _, typ := range AllTaskTypes() {
		assert.True(t, typ.IsValid(), typ)
	}
	assert.False(t, TaskType("code").IsValid())
	assert.False(t, TaskType("").IsValid())
}

func TestTaskCreate_Validate(t *testing.T) {
	valid := TaskCreate{ProjectID: "1", Title: "t", Type: TaskTypeCode, Weight: 3}

	tests := []struct {
		wantErr error
		mutate  func(*TaskCreate)
		name    string
	}{
		{name: "valid", mutate: func(*TaskCreate) {}},
		{name: "no project", mutate: func(in *TaskCreate) { in.ProjectID = "" }, wantErr: ErrNoProject},
		{name: "empty title", mutate: func(in *TaskCreate) { in.Title = "" }, wantErr: ErrEmptyTitle},
		{name: "bad type", mutate: func(in *TaskCreate) { in.Type = "BUG" }, wantErr: ErrInvalidTaskType},
		{name: "weight too low", mutate: func(in *TaskCreate) { in.Weight = 0 }, wantErr: ErrInvalidWeight},
		{name: "weight too high", mutate: func(in *TaskCreate) { in.Weight = 9 }, wantErr: ErrInvalidWeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := in.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTaskPatch_Validate(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		patch   TaskPatch
	}{
		{name: "empty", patch: TaskPatch{}, wantErr: ErrNoFieldsToUpdate},
		{name: "title", patch: TaskPatch{Title: ptr("x")}},
		{name: "blank title", patch: TaskPatch{Title: ptr("")}, wantErr: ErrEmptyTitle},
		{name: "bad type", patch: TaskPatch{Type: ptr(TaskType("BUG"))}, wantErr: ErrInvalidTaskType},
		{name: "bad weight", patch: TaskPatch{Weight: ptr(12)}, wantErr: ErrInvalidWeight},
		{name: "clear assignee", patch: TaskPatch{LeadAssigneeID: ptr(EntityID(""))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.patch.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTaskPatch_ApplyTo_OnlySuppliedFields(t *testing.T) {
	task := Task{
		ID:             "1",
		Title:          "old",
		Description:    "keep",
		Type:           TaskTypeCode,
		Weight:         2,
		LeadAssigneeID: "5",
	}

	TaskPatch{Title: ptr("new"), Weight: ptr(5), BucketID: ptr(EntityID("009"))}.ApplyTo(&task)

	assert.Equal(t, "new", task.Title)
	assert.Equal(t, "keep", task.Description)
	assert.Equal(t, TaskTypeCode, task.Type)
	assert.Equal(t, 5, task.Weight)
	assert.Equal(t, EntityID("9"), task.BucketID)
	assert.Equal(t, EntityID("5"), task.LeadAssigneeID)
}

func TestTaskPatch_JSON(t *testing.T) {
	out, err := json.Marshal(TaskPatch{
		Title:          ptr("x"),
		LeadAssigneeID: ptr(EntityID("")),
		BucketID:       ptr(EntityID("9223372036854775807")),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"x","lead_assignee_id":null,"bucket_id":9223372036854775807}`, string(out))
}

func TestTaskPatch_UnmarshalJSON_KeepsExplicitNull(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantBucket   *EntityID
		wantAssignee *EntityID
	}{
		{name: "null assignee clears", body: `{"lead_assignee_id":null}`, wantAssignee: ptr(EntityID(""))},
		{name: "null bucket un-triages", body: `{"bucket_id":null}`, wantBucket: ptr(EntityID(""))},
		{name: "absent keys stay nil", body: `{"title":"x"}`},
		{name: "values decode", body: `{"bucket_id":"20","lead_assignee_id":9223372036854775807}`, wantBucket: ptr(EntityID("20")), wantAssignee: ptr(EntityID("9223372036854775807"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Execute
			var patch TaskPatch
			err := json.Unmarshal([]byte(tt.body), &patch)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, patch.BucketID)
			assert.Equal(t, tt.wantAssignee, patch.LeadAssigneeID)
		})
	}
}

func TestTaskPatch_ClearSurvivesRoundTrip(t *testing.T) {
	// Setup
	out, err := json.Marshal(TaskPatch{LeadAssigneeID: ptr(EntityID(""))})
	require.NoError(t, err)

	// Execute
	var decoded TaskPatch
	require.NoError(t, json.Unmarshal(out, &decoded))

	// Assert
	assert.False(t, decoded.IsEmpty())
	require.NoError(t, decoded.Validate())
	task := Task{LeadAssigneeID: "7"}
	decoded.ApplyTo(&task)
	assert.False(t, task.IsAssigned())
}

func TestTaskPatch_UnmarshalJSON_RejectsNonObject(t *testing.T) {
	var patch TaskPatch
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &patch))
}

func TestTaskCreate_JSONOmitsZeroReferences(t *testing.T) {
	out, err := json.Marshal(TaskCreate{ProjectID: "3", Title: "t", Type: TaskTypeOther, Weight: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"project_id":3,"title":"t","type":"OTHER","weight":1}`, string(out))
}

func TestTask_ActivityTime(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)
	active := created.Add(2 * time.Hour)

	task := Task{CreatedAt: NewTimestamp(created)}
	assert.Equal(t, created, task.ActivityTime())

	task.UpdatedAt = NewTimestamp(updated)
	assert.Equal(t, updated, task.ActivityTime())

	task.LastActivityAt = NewTimestamp(active)
	assert.Equal(t, active, task.ActivityTime())
}

func TestTask_DecodeBackendPayload(t *testing.T) {
	const payload = `{
		"id": 7392648311298117632,
		"project_id": 7392648311298117000,
		"bucket_id": "7392648311298117001",
		"lead_assignee_id": null,
		"title": "Wire login",
		"type": "CODE",
		"weight": 3,
		"order_idx": 4,
		"last_activity_at": "2026-02-01T09:30:00.250000",
		"is_deleted": false
	}`

	var task Task
	require.NoError(t, json.Unmarshal([]byte(payload), &task))

	assert.Equal(t, EntityID("7392648311298117632"), task.ID)
	assert.Equal(t, EntityID("7392648311298117001"), task.BucketID)
	assert.False(t, task.IsAssigned())
	assert.Equal(t, 4, task.OrderIdx)
	assert.Equal(t, 9, task.LastActivityAt.Hour())
	assert.False(t, task.Stagnant)
}

func TestBucketCreate_Validate(t *testing.T) {
	assert.NoError(t, BucketCreate{ProjectID: "1", Name: "Backlog", State: BucketTodo}.Validate())
	assert.ErrorIs(t, BucketCreate{Name: "x", State: BucketTodo}.Validate(), ErrNoProject)
	assert.ErrorIs(t, BucketCreate{ProjectID: "1", State: BucketTodo}.Validate(), ErrEmptyName)
	assert.ErrorIs(t, BucketCreate{ProjectID: "1", Name: "x", State: "DONE"}.Validate(), ErrInvalidBucketState)
}

func TestBucket_Label(t *testing.T) {
	assert.Equal(t, "Backlog", (&Bucket{Name: "Backlog", State: BucketTodo}).Label())
	assert.Equal(t, "On Review", (&Bucket{State: BucketOnReview}).Label())
}

func TestMemberCreate_Validate(t *testing.T) {
	assert.NoError(t, MemberCreate{UserID: "4", Role: RoleProgrammer}.Validate())
	assert.ErrorIs(t, MemberCreate{Role: RoleProgrammer}.Validate(), ErrInvalidID)
	assert.ErrorIs(t, MemberCreate{UserID: "4", Role: "INTERN"}.Validate(), ErrInvalidRole)

	m := ProjectMember{MaxCapacity: 10, CurrentLoad: 5}
	assert.InDelta(t, 0.5, m.Utilisation(), 0.0001)
	assert.Zero(t, (&ProjectMember{}).Utilisation())
}
