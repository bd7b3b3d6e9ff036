package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storeerr "github.com/randalmurphal/taskdb/internal/errors"
)

func TestCreateTask_RoundTrip(t *testing.T) {
	t.Parallel()
	tdb := NewTestTaskDB(t)

	conv := []Message{
		{Role: "user", Content: "need milk"},
		{Role: "assistant", Content: "added to the list"},
	}
	steps := []string{"go", "pay"}

	id, err := tdb.CreateTask(NewTask{
		TaskID:       "t1",
		Summary:      "Buy milk",
		Conversation: conv,
		Details:      "whole milk, 1l",
		Steps:        steps,
	})
	require.NoError(t, err)
	assert.Greater(t, id, int64(0), "internal id should be assigned")

	got, err := tdb.GetTask("t1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "t1", got.TaskID)
	assert.Equal(t, "Buy milk", got.Summary)
	assert.Equal(t, conv, got.Conversation)
	assert.Equal(t, "whole milk, 1l", got.Details)
	assert.Equal(t, steps, got.Steps)
	assert.Equal(t, 0, got.CurrentStepNum)
	assert.True(t, got.IsActive)
	assert.False(t, got.IsWaiting)
}

func TestCreateTask_EmptyCollections(t *testing.T) {
	t.Parallel()
	tdb := NewTestTaskDB(t)

	_, err := tdb.CreateTask(NewTask{TaskID: "t1", Summary: "Buy milk"})
	require.NoError(t, err)

	got, err := tdb.GetTask("t1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.Conversation)
	assert.Empty(t, got.Steps)
	assert.Empty(t, got.Details)
}

func TestCreateTask_Validation(t *testing.T) {
	t.Parallel()
	tdb := NewTestTaskDB(t)

	_, err := tdb.CreateTask(NewTask{TaskID: "", Summary: "Buy milk"})
	require.Error(t, err)
	storeErr := storeerr.AsStoreError(err)
	require.NotNil(t, storeErr)
	assert.Equal(t, storeerr.CodeValidation, storeErr.Code)

	_, err = tdb.CreateTask(NewTask{TaskID: "t1", Summary: ""})
	require.Error(t, err)
	storeErr = storeerr.AsStoreError(err)
	require.NotNil(t, storeErr)
	assert.Equal(t, storeerr.CodeValidation, storeErr.Code)

	// Nothing was inserted
	got, err := tdb.GetTask("t1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreateTask_DuplicateID(t *testing.T) {
	t.Parallel()
	tdb := NewTestTaskDB(t)

	_, err := tdb.CreateTask(NewTask{TaskID: "t1", Summary: "original"})
	require.NoError(t, err)

	_, err = tdb.CreateTask(NewTask{TaskID: "t1", Summary: "imposter"})
	require.Error(t, err)
	storeErr := storeerr.AsStoreError(err)
	require.NotNil(t, storeErr)
	assert.Equal(t, storeerr.CodeDuplicateTask, storeErr.Code)

	// Original row unmodified
	got, err := tdb.GetTask("t1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "original", got.Summary)
}

func TestCreateTask_FreshInternalIDAfterDelete(t *testing.T) {
	t.Parallel()
	tdb := NewTestTaskDB(t)

	first, err := tdb.CreateTask(NewTask{TaskID: "t1", Summary: "Buy milk"})
	require.NoError(t, err)
	require.NoError(t, tdb.DeleteTask("t1"))

	second, err := tdb.CreateTask(NewTask{TaskID: "t1", Summary: "Buy milk again"})
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "internal ids are never reused")
}

func TestGetTask_NotFound(t *testing.T) {
	t.Parallel()
	tdb := NewTestTaskDB(t)

	got, err := tdb.GetTask("missing")
	require.NoError(t, err, "not-found is not an error")
	assert.Nil(t, got)
}

func TestUpdateTask_PartialMerge(t *testing.T) {
	t.Parallel()
	tdb := NewTestTaskDB(t)

	conv := []Message{{Role: "user", Content: "hi"}}
	steps := []string{"one", "two"}
	_, err := tdb.CreateTask(NewTask{
		TaskID: "t1", Summary: "Buy milk", Conversation: conv, Details: "corner shop", Steps: steps,
	})
	require.NoError(t, err)

	summary := "Buy oat milk"
	require.NoError(t, tdb.UpdateTask("t1", TaskUpdate{Summary: &summary}))

	got, err := tdb.GetTask("t1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Buy oat milk", got.Summary)
	assert.Equal(t, conv, got.Conversation, "omitted field must be retained")
	assert.Equal(t, "corner shop", got.Details, "omitted field must be retained")
	assert.Equal(t, steps, got.Steps, "omitted field must be retained")
}

func TestUpdateTask_EmptyUpdateIsIdentity(t *testing.T) {
	t.Parallel()
	tdb := NewTestTaskDB(t)

	_, err := tdb.CreateTask(NewTask{
		TaskID: "t1", Summary: "Buy milk", Details: "d", Steps: []string{"s"},
	})
	require.NoError(t, err)

	before, err := tdb.GetTask("t1")
	require.NoError(t, err)

	require.NoError(t, tdb.UpdateTask("t1", TaskUpdate{}))

	after, err := tdb.GetTask("t1")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUpdateTask_ExplicitEmptyOverwrites(t *testing.T) {
	t.Parallel()
	tdb := NewTestTaskDB(t)

	_, err := tdb.CreateTask(NewTask{
		TaskID: "t1", Summary: "Buy milk", Details: "d", Steps: []string{"s"},
	})
	require.NoError(t, err)

	// Supplying an empty value is not the same as omitting the field.
	empty := []string{}
	details := ""
	require.NoError(t, tdb.UpdateTask("t1", TaskUpdate{Steps: &empty, Details: &details}))

	got, err := tdb.GetTask("t1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.Steps)
	assert.Empty(t, got.Details)
	assert.Equal(t, "Buy milk", got.Summary)
}

func TestUpdateTask_MissingIDIsSilentNoOp(t *testing.T) {
	t.Parallel()
	tdb := NewTestTaskDB(t)

	summary := "ghost"
	require.NoError(t, tdb.UpdateTask("missing", TaskUpdate{Summary: &summary}))

	// No row was created
	got, err := tdb.GetTask("missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateTaskStrict_MissingID(t *testing.T) {
	t.Parallel()
	tdb := NewTestTaskDB(t)

	summary := "ghost"
	err := tdb.UpdateTaskStrict("missing", TaskUpdate{Summary: &summary})
	require.Error(t, err)
	storeErr := storeerr.AsStoreError(err)
	require.NotNil(t, storeErr)
	assert.Equal(t, storeerr.CodeTaskNotFound, storeErr.Code)
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()
	tdb := NewTestTaskDB(t)

	_, err := tdb.CreateTask(NewTask{TaskID: "t1", Summary: "Buy milk"})
	require.NoError(t, err)

	require.NoError(t, tdb.DeleteTask("t1"))

	got, err := tdb.GetTask("t1")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting again is a no-op
	require.NoError(t, tdb.DeleteTask("t1"))
}

func TestLifecycleOps_MissingIDAreNoOps(t *testing.T) {
	t.Parallel()
	tdb := NewTestTaskDB(t)

	require.NoError(t, tdb.CompleteTask("missing"))
	require.NoError(t, tdb.DeferTask("missing"))
	require.NoError(t, tdb.ResumeTask("missing"))
	require.NoError(t, tdb.SetCurrentStep("missing", 3))

	got, err := tdb.GetTask("missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFlagIndependence(t *testing.T) {
	t.Parallel()
	tdb := NewTestTaskDB(t)

	_, err := tdb.CreateTask(NewTask{TaskID: "t1", Summary: "Buy milk"})
	require.NoError(t, err)

	require.NoError(t, tdb.DeferTask("t1"))
	require.NoError(t, tdb.CompleteTask("t1"))

	got, err := tdb.GetTask("t1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.IsActive)
	assert.True(t, got.IsWaiting, "completing must not clear is_waiting")
}

func TestListActiveTasks_Filter(t *testing.T) {
	t.Parallel()
	tdb := NewTestTaskDB(t)

	for _, id := range []string{"t1", "t2", "t3"} {
		_, err := tdb.CreateTask(NewTask{TaskID: id, Summary: "task " + id})
		require.NoError(t, err)
	}
	require.NoError(t, tdb.CompleteTask("t2"))

	active, err := tdb.ListActiveTasks()
	require.NoError(t, err)
	require.Len(t, active, 2)

	var ids []string
	for _, tk := range active {
		ids = append(ids, tk.TaskID)
		assert.Equal(t, "task "+tk.TaskID, tk.Summary)
		assert.True(t, tk.IsActive)
	}
	assert.ElementsMatch(t, []string{"t1", "t3"}, ids)

	all, err := tdb.ListTasks()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListActiveTasks_Empty(t *testing.T) {
	t.Parallel()
	tdb := NewTestTaskDB(t)

	active, err := tdb.ListActiveTasks()
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestSetCurrentStep(t *testing.T) {
	t.Parallel()
	tdb := NewTestTaskDB(t)

	_, err := tdb.CreateTask(NewTask{TaskID: "t1", Summary: "Buy milk", Steps: []string{"go", "pay"}})
	require.NoError(t, err)

	require.NoError(t, tdb.SetCurrentStep("t1", 1))

	got, err := tdb.GetTask("t1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.CurrentStepNum)
}

// TestTaskLifecycle walks the full create/defer/complete/delete scenario.
func TestTaskLifecycle(t *testing.T) {
	t.Parallel()
	tdb := NewTestTaskDB(t)

	_, err := tdb.CreateTask(NewTask{
		TaskID:  "t1",
		Summary: "Buy milk",
		Steps:   []string{"go", "pay"},
	})
	require.NoError(t, err)

	got, err := tdb.GetTask("t1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"go", "pay"}, got.Steps)
	assert.True(t, got.IsActive)
	assert.False(t, got.IsWaiting)

	require.NoError(t, tdb.DeferTask("t1"))
	got, err = tdb.GetTask("t1")
	require.NoError(t, err)
	assert.True(t, got.IsWaiting)

	require.NoError(t, tdb.CompleteTask("t1"))
	active, err := tdb.ListActiveTasks()
	require.NoError(t, err)
	for _, tk := range active {
		assert.NotEqual(t, "t1", tk.TaskID)
	}

	require.NoError(t, tdb.DeleteTask("t1"))
	got, err = tdb.GetTask("t1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOperationsAfterClose(t *testing.T) {
	t.Parallel()

	tdb, err := OpenTaskDBInMemory()
	require.NoError(t, err)
	require.NoError(t, tdb.Close())

	_, err = tdb.CreateTask(NewTask{TaskID: "t1", Summary: "Buy milk"})
	require.Error(t, err)
	storeErr := storeerr.AsStoreError(err)
	require.NotNil(t, storeErr)
	assert.Equal(t, storeerr.CodeStorageUnavailable, storeErr.Code)
}
