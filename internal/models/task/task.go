package task

import "time"

type Task struct {
	ID           int
	Owner        string
	Title        string
	Description  string
	DueDate      time.Time
	AssignedDate time.Time
	Completed    bool
}

// IsOverdue reports whether the task is uncompleted and past its due date.
// Overdue is derived at evaluation time, never stored.
func (t *Task) IsOverdue(now time.Time) bool {
	return !t.Completed && t.DueDate.Before(now)
}
