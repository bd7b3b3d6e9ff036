package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/randalmurphal/taskdb/internal/db/driver"
	storeerr "github.com/randalmurphal/taskdb/internal/errors"
)

// Message is one conversation entry attached to a task.
type Message struct {
	Role    string `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}

// Task represents a task stored in the database.
//
// InternalID is the storage engine's autoincrement key and is exposed
// for diagnostics only; every operation addresses tasks by TaskID.
type Task struct {
	InternalID     int64     `json:"internal_id" yaml:"internal_id"`
	TaskID         string    `json:"task_id" yaml:"task_id"`
	Summary        string    `json:"summary" yaml:"summary"`
	Conversation   []Message `json:"conversation" yaml:"conversation"`
	Details        string    `json:"details" yaml:"details"`
	Steps          []string  `json:"steps" yaml:"steps"`
	CurrentStepNum int       `json:"current_step_num" yaml:"current_step_num"`
	IsActive       bool      `json:"is_active" yaml:"is_active"`
	IsWaiting      bool      `json:"is_waiting" yaml:"is_waiting"`
}

// NewTask holds the fields accepted at creation.
type NewTask struct {
	TaskID       string
	Summary      string
	Conversation []Message
	Details      string
	Steps        []string
}

// TaskUpdate carries a partial update. Nil fields keep the stored
// value; only fields explicitly supplied overwrite their column.
type TaskUpdate struct {
	Summary      *string
	Conversation *[]Message
	Details      *string
	Steps        *[]string
}

// TaskDB provides the task lifecycle operations over an opened store.
type TaskDB struct {
	*DB
	codec Codec
}

// Option configures a TaskDB.
type Option func(*TaskDB)

// WithCodec replaces the default JSON codec for the conversation and
// steps columns.
func WithCodec(c Codec) Option {
	return func(t *TaskDB) {
		t.codec = c
	}
}

// OpenTaskDB opens (or creates) a SQLite task store at the given path
// and applies the schema. Schema creation is committed immediately and
// is idempotent against an already-initialized store.
func OpenTaskDB(path string, opts ...Option) (*TaskDB, error) {
	d, err := Open(path)
	if err != nil {
		return nil, storeerr.ErrStorageUnavailable(path, err)
	}
	return newTaskDB(d, opts...)
}

// OpenTaskDBWithDialect opens a task store with a specific dialect.
func OpenTaskDBWithDialect(dsn string, dialect driver.Dialect, opts ...Option) (*TaskDB, error) {
	d, err := OpenWithDialect(dsn, dialect)
	if err != nil {
		return nil, storeerr.ErrStorageUnavailable(dsn, err)
	}
	return newTaskDB(d, opts...)
}

// OpenTaskDBInMemory opens an in-memory task store, mostly for tests.
func OpenTaskDBInMemory(opts ...Option) (*TaskDB, error) {
	d, err := OpenInMemory()
	if err != nil {
		return nil, storeerr.ErrStorageUnavailable(":memory:", err)
	}
	return newTaskDB(d, opts...)
}

func newTaskDB(d *DB, opts ...Option) (*TaskDB, error) {
	t := &TaskDB{DB: d, codec: DefaultCodec()}
	for _, opt := range opts {
		opt(t)
	}
	if err := d.Migrate("tasks"); err != nil {
		_ = d.Close()
		return nil, storeerr.ErrStorageUnavailable(d.Path(), err)
	}
	return t, nil
}

const taskColumns = "id, task_id, summary, conversation, details, steps, current_step_num, is_active, is_waiting"

// CreateTask inserts a new task with current_step_num=0, is_active=true
// and is_waiting=false. The returned internal row id is diagnostic
// only. Fails with VALIDATION_FAILED on an empty task_id or summary and
// DUPLICATE_TASK_ID when the task_id is already in use.
func (t *TaskDB) CreateTask(nt NewTask) (int64, error) {
	if strings.TrimSpace(nt.TaskID) == "" {
		return 0, storeerr.ErrTaskIDRequired()
	}
	if strings.TrimSpace(nt.Summary) == "" {
		return 0, storeerr.ErrSummaryRequired()
	}

	conv, err := t.encodeConversation(nt.Conversation)
	if err != nil {
		return 0, err
	}
	steps, err := t.encodeSteps(nt.Steps)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`
		INSERT INTO tasks (task_id, summary, conversation, details, steps, current_step_num, is_active, is_waiting)
		VALUES (%s, 0, 1, 0)`, t.placeholders(5))
	args := []any{nt.TaskID, nt.Summary, conv, nt.Details, steps}

	// pgx's database/sql adapter has no LastInsertId; use RETURNING.
	if t.Dialect() == driver.DialectPostgres {
		var id int64
		if err := t.QueryRow(query+" RETURNING id", args...).Scan(&id); err != nil {
			return 0, t.createErr(nt.TaskID, err)
		}
		return id, nil
	}

	res, err := t.Exec(query, args...)
	if err != nil {
		return 0, t.createErr(nt.TaskID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, t.wrapStoreErr("create task", err)
	}
	return id, nil
}

func (t *TaskDB) createErr(taskID string, err error) error {
	if t.Driver().IsUniqueViolation(err) {
		return storeerr.ErrDuplicateTask(taskID).WithCause(err)
	}
	return t.wrapStoreErr("create task", err)
}

// GetTask retrieves a task by its stable id, with conversation and
// steps decoded. Returns nil, nil when no task matches: absence is a
// found/not-found outcome, not an error.
func (t *TaskDB) GetTask(taskID string) (*Task, error) {
	query := fmt.Sprintf("SELECT %s FROM tasks WHERE task_id = %s", taskColumns, t.Placeholder(1))
	row := t.QueryRow(query, taskID)

	tk, err := t.scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, t.wrapStoreErr(fmt.Sprintf("get task %s", taskID), err)
	}
	return tk, nil
}

// UpdateTask applies a partial update: only the fields supplied in upd
// overwrite their columns, everything else keeps its stored value.
// Updating a non-existent task_id is a silent no-op.
func (t *TaskDB) UpdateTask(taskID string, upd TaskUpdate) error {
	return t.updateTask(taskID, upd, false)
}

// UpdateTaskStrict is UpdateTask except that a non-existent task_id
// fails with TASK_NOT_FOUND instead of being a no-op.
func (t *TaskDB) UpdateTaskStrict(taskID string, upd TaskUpdate) error {
	return t.updateTask(taskID, upd, true)
}

func (t *TaskDB) updateTask(taskID string, upd TaskUpdate, strict bool) error {
	ctx := context.Background()

	// Partial merge requires the current row, so read and write under
	// one transaction.
	tx, err := t.BeginTx(ctx, nil)
	if err != nil {
		return t.wrapStoreErr("update task", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := fmt.Sprintf("SELECT %s FROM tasks WHERE task_id = %s", taskColumns, t.Placeholder(1))
	cur, err := t.scanTask(tx.QueryRow(ctx, query, taskID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if strict {
				return storeerr.ErrTaskNotFound(taskID)
			}
			return nil
		}
		return t.wrapStoreErr(fmt.Sprintf("update task %s", taskID), err)
	}

	if upd.Summary != nil {
		cur.Summary = *upd.Summary
	}
	if upd.Conversation != nil {
		cur.Conversation = *upd.Conversation
	}
	if upd.Details != nil {
		cur.Details = *upd.Details
	}
	if upd.Steps != nil {
		cur.Steps = *upd.Steps
	}

	conv, err := t.encodeConversation(cur.Conversation)
	if err != nil {
		return err
	}
	steps, err := t.encodeSteps(cur.Steps)
	if err != nil {
		return err
	}

	update := fmt.Sprintf(`
		UPDATE tasks
		SET summary = %s, conversation = %s, details = %s, steps = %s
		WHERE task_id = %s`,
		t.Placeholder(1), t.Placeholder(2), t.Placeholder(3), t.Placeholder(4), t.Placeholder(5))
	if _, err := tx.Exec(ctx, update, cur.Summary, conv, cur.Details, steps, taskID); err != nil {
		return t.wrapStoreErr(fmt.Sprintf("update task %s", taskID), err)
	}

	if err := tx.Commit(); err != nil {
		return t.wrapStoreErr(fmt.Sprintf("update task %s", taskID), err)
	}
	return nil
}

// DeleteTask removes the task with the given stable id. Deleting a
// non-existent task_id is a no-op.
func (t *TaskDB) DeleteTask(taskID string) error {
	query := fmt.Sprintf("DELETE FROM tasks WHERE task_id = %s", t.Placeholder(1))
	if _, err := t.Exec(query, taskID); err != nil {
		return t.wrapStoreErr(fmt.Sprintf("delete task %s", taskID), err)
	}
	return nil
}

// ListActiveTasks returns every task with is_active set, decoded, in
// storage order. The result may be empty.
func (t *TaskDB) ListActiveTasks() ([]Task, error) {
	return t.listTasks("WHERE is_active = 1")
}

// ListTasks returns every task regardless of flags, in storage order.
func (t *TaskDB) ListTasks() ([]Task, error) {
	return t.listTasks("")
}

func (t *TaskDB) listTasks(where string) ([]Task, error) {
	query := fmt.Sprintf("SELECT %s FROM tasks %s ORDER BY id", taskColumns, where)
	rows, err := t.Query(query)
	if err != nil {
		return nil, t.wrapStoreErr("list tasks", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []Task
	for rows.Next() {
		tk, err := t.scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *tk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	return tasks, nil
}

// CompleteTask clears is_active. No-op on a missing task_id.
func (t *TaskDB) CompleteTask(taskID string) error {
	return t.setColumn(taskID, "is_active", 0)
}

// DeferTask sets is_waiting. No-op on a missing task_id.
// is_active and is_waiting are independent; deferring a completed task
// leaves it completed and waiting at the same time.
func (t *TaskDB) DeferTask(taskID string) error {
	return t.setColumn(taskID, "is_waiting", 1)
}

// ResumeTask clears is_waiting. No-op on a missing task_id.
func (t *TaskDB) ResumeTask(taskID string) error {
	return t.setColumn(taskID, "is_waiting", 0)
}

// SetCurrentStep moves the step cursor. No lifecycle operation touches
// current_step_num; this is the caller-facing hook for it.
func (t *TaskDB) SetCurrentStep(taskID string, step int) error {
	return t.setColumn(taskID, "current_step_num", step)
}

// setColumn updates a single column by task_id. Zero rows affected is
// not an error; callers that need to detect a missing id re-query.
func (t *TaskDB) setColumn(taskID, column string, value int) error {
	query := fmt.Sprintf("UPDATE tasks SET %s = %s WHERE task_id = %s",
		column, t.Placeholder(1), t.Placeholder(2))
	if _, err := t.Exec(query, value, taskID); err != nil {
		return t.wrapStoreErr(fmt.Sprintf("update task %s", taskID), err)
	}
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (t *TaskDB) scanTask(row rowScanner) (*Task, error) {
	var tk Task
	var conv, steps string
	var isActive, isWaiting int
	if err := row.Scan(&tk.InternalID, &tk.TaskID, &tk.Summary, &conv, &tk.Details, &steps,
		&tk.CurrentStepNum, &isActive, &isWaiting); err != nil {
		return nil, err
	}
	tk.IsActive = isActive != 0
	tk.IsWaiting = isWaiting != 0

	tk.Conversation = []Message{}
	if err := t.codec.Decode(conv, &tk.Conversation); err != nil {
		return nil, fmt.Errorf("decode conversation: %w", err)
	}
	tk.Steps = []string{}
	if err := t.codec.Decode(steps, &tk.Steps); err != nil {
		return nil, fmt.Errorf("decode steps: %w", err)
	}
	return &tk, nil
}

func (t *TaskDB) encodeConversation(msgs []Message) (string, error) {
	if msgs == nil {
		msgs = []Message{}
	}
	data, err := t.codec.Encode(msgs)
	if err != nil {
		return "", fmt.Errorf("encode conversation: %w", err)
	}
	return data, nil
}

func (t *TaskDB) encodeSteps(steps []string) (string, error) {
	if steps == nil {
		steps = []string{}
	}
	data, err := t.codec.Encode(steps)
	if err != nil {
		return "", fmt.Errorf("encode steps: %w", err)
	}
	return data, nil
}

// placeholders returns n comma-separated dialect placeholders starting at 1.
func (t *TaskDB) placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = t.Placeholder(i + 1)
	}
	return strings.Join(parts, ", ")
}

// wrapStoreErr maps use-after-close failures to STORAGE_UNAVAILABLE and
// wraps everything else with the operation name.
func (t *TaskDB) wrapStoreErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrConnDone) || strings.Contains(err.Error(), "database is closed") {
		return storeerr.ErrStorageUnavailable(t.Path(), err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
