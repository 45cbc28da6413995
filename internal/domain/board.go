package domain

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

// Board is one project's buckets and tasks as fetched together.
type Board struct {
	Buckets []Bucket `json:"buckets"`
	Tasks   []Task   `json:"tasks"`
}

// SortBuckets orders buckets by order index. Ties keep arrival order.
func SortBuckets(buckets []Bucket) {
	slices.SortStableFunc(buckets, func(a, b Bucket) int {
		return cmp.Compare(a.OrderIdx, b.OrderIdx)
	})
}

// SortTasks orders tasks by order index. Ties keep arrival order.
func SortTasks(tasks []Task) {
	slices.SortStableFunc(tasks, func(a, b Task) int {
		return cmp.Compare(a.OrderIdx, b.OrderIdx)
	})
}

// Normalize drops soft-deleted entries, canonicalises IDs and sorts both
// collections. Nil slices become empty ones.
func (b *Board) Normalize() {
	buckets := make([]Bucket, 0, len(b.Buckets))
	for _, bk := range b.Buckets {
		if bk.IsDeleted {
			continue
		}
		bk.ID = bk.ID.Canonical()
		bk.ProjectID = bk.ProjectID.Canonical()
		buckets = append(buckets, bk)
	}
	tasks := make([]Task, 0, len(b.Tasks))
	for _, t := range b.Tasks {
		if t.IsDeleted {
			continue
		}
		t.ID = t.ID.Canonical()
		t.ProjectID = t.ProjectID.Canonical()
		t.BucketID = t.BucketID.Canonical()
		t.LeadAssigneeID = t.LeadAssigneeID.Canonical()
		tasks = append(tasks, t)
	}
	SortBuckets(buckets)
	SortTasks(tasks)
	b.Buckets = buckets
	b.Tasks = tasks
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	return Board{
		Buckets: slices.Clone(b.Buckets),
		Tasks:   slices.Clone(b.Tasks),
	}
}

// FindTask returns the index of the task, or -1.
func (b Board) FindTask(id EntityID) int {
	return slices.IndexFunc(b.Tasks, func(t Task) bool { return t.ID.Equal(id) })
}

// FindBucket returns the index of the bucket, or -1.
func (b Board) FindBucket(id EntityID) int {
	return slices.IndexFunc(b.Buckets, func(bk Bucket) bool { return bk.ID.Equal(id) })
}

// TasksInBucket returns the tasks of a bucket in display order.
func (b Board) TasksInBucket(bucketID EntityID) []Task {
	var out []Task
	for _, t := range b.Tasks {
		if t.BucketID.Equal(bucketID) {
			out = append(out, t)
		}
	}
	return out
}

// UnbucketedTasks returns tasks that have not been triaged into a bucket.
func (b Board) UnbucketedTasks() []Task {
	return b.TasksInBucket("")
}

// PatchTask merges patch into the matching task and re-sorts. A task that
// changes bucket without an explicit order index goes to the end of its new
// bucket, and the bucket it left is renumbered densely.
func (b *Board) PatchTask(id EntityID, patch TaskPatch) error {
	i := b.FindTask(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	from := b.Tasks[i].BucketID.Canonical()
	patch.ApplyTo(&b.Tasks[i])
	if to := b.Tasks[i].BucketID; !to.Equal(from) {
		if patch.OrderIdx == nil {
			b.Tasks[i].OrderIdx = b.nextTaskOrder(to, id)
		}
		b.renumberBucket(from)
	}
	SortTasks(b.Tasks)
	return nil
}

// nextTaskOrder returns max(order_idx)+1 over the bucket's tasks other than
// skip, 0 when there are none.
func (b Board) nextTaskOrder(bucketID, skip EntityID) int {
	next := 0
	for _, t := range b.Tasks {
		if t.BucketID.Equal(bucketID) && !t.ID.Equal(skip) && t.OrderIdx >= next {
			next = t.OrderIdx + 1
		}
	}
	return next
}

// RemoveTask drops the matching task.
func (b *Board) RemoveTask(id EntityID) error {
	i := b.FindTask(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	b.Tasks = slices.Delete(b.Tasks, i, i+1)
	return nil
}

// AppendBucket places a bucket after every existing one. When the bucket
// arrives without a usable index it gets max+1.
func (b *Board) AppendBucket(bucket Bucket) {
	bucket.ID = bucket.ID.Canonical()
	if len(b.Buckets) > 0 {
		last := b.Buckets[len(b.Buckets)-1].OrderIdx
		if bucket.OrderIdx <= last {
			bucket.OrderIdx = last + 1
		}
	}
	b.Buckets = append(b.Buckets, bucket)
}

// RemoveBucket drops the matching bucket.
func (b *Board) RemoveBucket(id EntityID) error {
	i := b.FindBucket(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrBucketNotFound, id)
	}
	b.Buckets = slices.Delete(b.Buckets, i, i+1)
	return nil
}

// ReorderBuckets assigns order indices 0..n-1 following ids. Buckets not
// named in ids keep their relative order after the listed ones.
func (b *Board) ReorderBuckets(ids []EntityID) error {
	positions, err := positionsOf(ids, func(id EntityID) bool { return b.FindBucket(id) >= 0 }, ErrBucketNotFound)
	if err != nil {
		return err
	}
	next := len(ids)
	for i := range b.Buckets {
		bk := &b.Buckets[i]
		if pos, ok := positions[bk.ID.Canonical()]; ok {
			bk.OrderIdx = pos
			continue
		}
		bk.OrderIdx = next
		next++
	}
	SortBuckets(b.Buckets)
	return nil
}

// PlanDrop computes the ordered task IDs of destBucketID after taskID is
// dropped into it: the task is removed from its current position, then
// inserted immediately before targetTaskID, or appended when the target is
// zero or not a sibling.
func (b Board) PlanDrop(taskID, destBucketID, targetTaskID EntityID) ([]EntityID, error) {
	if b.FindTask(taskID) < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	if b.FindBucket(destBucketID) < 0 {
		return nil, fmt.Errorf("%w: %s", ErrBucketNotFound, destBucketID)
	}
	siblings := make([]EntityID, 0, len(b.Tasks))
	for _, t := range b.Tasks {
		if t.BucketID.Equal(destBucketID) && !t.ID.Equal(taskID) {
			siblings = append(siblings, t.ID)
		}
	}
	at := len(siblings)
	if !targetTaskID.IsZero() {
		if i := slices.IndexFunc(siblings, func(id EntityID) bool { return id.Equal(targetTaskID) }); i >= 0 {
			at = i
		}
	}
	return slices.Insert(siblings, at, taskID.Canonical()), nil
}

// ReorderTasks moves the listed tasks into bucketID with order indices
// 0..n-1 following ids. Tasks already in the bucket but missing from ids
// follow in their current order. Buckets that lost a task are renumbered
// densely, so every affected bucket ends with indices 0..len-1.
func (b *Board) ReorderTasks(bucketID EntityID, ids []EntityID) error {
	if b.FindBucket(bucketID) < 0 {
		return fmt.Errorf("%w: %s", ErrBucketNotFound, bucketID)
	}
	positions, err := positionsOf(ids, func(id EntityID) bool { return b.FindTask(id) >= 0 }, ErrTaskNotFound)
	if err != nil {
		return err
	}

	dest := bucketID.Canonical()
	sources := make(map[EntityID]struct{})
	next := len(ids)
	for i := range b.Tasks {
		t := &b.Tasks[i]
		if pos, ok := positions[t.ID.Canonical()]; ok {
			if !t.BucketID.Equal(dest) {
				sources[t.BucketID.Canonical()] = struct{}{}
			}
			t.BucketID = dest
			t.OrderIdx = pos
			continue
		}
		if t.BucketID.Equal(dest) {
			t.OrderIdx = next
			next++
		}
	}
	for src := range sources {
		b.renumberBucket(src)
	}
	SortTasks(b.Tasks)
	return nil
}

// renumberBucket assigns dense indices to a bucket's tasks in slice order.
func (b *Board) renumberBucket(bucketID EntityID) {
	n := 0
	for i := range b.Tasks {
		if b.Tasks[i].BucketID.Equal(bucketID) {
			b.Tasks[i].OrderIdx = n
			n++
		}
	}
}

// MarkStagnant sets the derived Stagnant flag: no activity for longer than
// after, outside COMPLETED buckets. A non-positive after disables the flag.
func (b *Board) MarkStagnant(now time.Time, after time.Duration) {
	done := make(map[EntityID]struct{})
	for _, bk := range b.Buckets {
		if bk.State == BucketCompleted {
			done[bk.ID.Canonical()] = struct{}{}
		}
	}
	for i := range b.Tasks {
		t := &b.Tasks[i]
		_, completed := done[t.BucketID.Canonical()]
		last := t.ActivityTime()
		t.Stagnant = after > 0 && !completed && !last.IsZero() && now.Sub(last) > after
	}
}

// positionsOf maps canonical IDs to their index, rejecting duplicates and
// IDs for which exists returns false.
func positionsOf(ids []EntityID, exists func(EntityID) bool, notFound error) (map[EntityID]int, error) {
	positions := make(map[EntityID]int, len(ids))
	for i, id := range ids {
		key := id.Canonical()
		if key.IsZero() {
			return nil, fmt.Errorf("%w: empty identifier at position %d", ErrInvalidOrder, i)
		}
		if _, dup := positions[key]; dup {
			return nil, fmt.Errorf("%w: %s listed twice", ErrInvalidOrder, key)
		}
		if !exists(key) {
			return nil, fmt.Errorf("%w: %s", notFound, key)
		}
		positions[key] = i
	}
	return positions, nil
}
