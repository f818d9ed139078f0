// Package tasks implements the persistent task list backing the side panel.
package tasks

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a task id does not exist.
var ErrNotFound = errors.New("tasks: not found")

// Task is one entry of the task list.
type Task struct {
	ID        string
	Title     string
	Done      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	done       INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// Store persists tasks in SQLite.
type Store struct {
	db *sql.DB

	// NewID and Now are injectable for tests.
	NewID func() string
	Now   func() time.Time
}

// NewStore wraps db and ensures the schema exists.
func NewStore(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("tasks: schema: %w", err)
	}
	return &Store{
		db:    db,
		NewID: uuid.NewString,
		Now:   time.Now,
	}, nil
}

// Add creates a new open task with the given title.
func (s *Store) Add(title string) (Task, error) {
	now := s.Now().UTC()
	t := Task{
		ID:        s.NewID(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.db.Exec(
		"INSERT INTO tasks (id, title, done, created_at, updated_at) VALUES (?, ?, 0, ?, ?)",
		t.ID, t.Title, now.UnixMilli(), now.UnixMilli(),
	)
	if err != nil {
		return Task{}, fmt.Errorf("tasks: add: %w", err)
	}
	return t, nil
}

// List returns all tasks: open before done, newest first within each group.
func (s *Store) List() ([]Task, error) {
	rows, err := s.db.Query(
		"SELECT id, title, done, created_at, updated_at FROM tasks ORDER BY done ASC, created_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("tasks: list: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		var t Task
		var done int
		var created, updated int64
		if err := rows.Scan(&t.ID, &t.Title, &done, &created, &updated); err != nil {
			return nil, fmt.Errorf("tasks: scan: %w", err)
		}
		t.Done = done != 0
		t.CreatedAt = time.UnixMilli(created).UTC()
		t.UpdatedAt = time.UnixMilli(updated).UTC()
		out = append(out, t)
	}
	return out, rows.Err()
}

// SetDone marks a task done or open.
func (s *Store) SetDone(id string, done bool) error {
	d := 0
	if done {
		d = 1
	}
	res, err := s.db.Exec(
		"UPDATE tasks SET done = ?, updated_at = ? WHERE id = ?",
		d, s.Now().UTC().UnixMilli(), id,
	)
	if err != nil {
		return fmt.Errorf("tasks: set done: %w", err)
	}
	return checkAffected(res)
}

// Rename changes a task's title.
func (s *Store) Rename(id, title string) error {
	res, err := s.db.Exec(
		"UPDATE tasks SET title = ?, updated_at = ? WHERE id = ?",
		title, s.Now().UTC().UnixMilli(), id,
	)
	if err != nil {
		return fmt.Errorf("tasks: rename: %w", err)
	}
	return checkAffected(res)
}

// Delete removes a task.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("tasks: delete: %w", err)
	}
	return checkAffected(res)
}

// ClearDone removes all completed tasks and returns how many were removed.
func (s *Store) ClearDone() (int, error) {
	res, err := s.db.Exec("DELETE FROM tasks WHERE done = 1")
	if err != nil {
		return 0, fmt.Errorf("tasks: clear done: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
