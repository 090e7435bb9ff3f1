package task

import "time"

type TaskOption func(*Task)

func WithOwner(owner string) TaskOption {
	if owner == "" {
		return nil
	}
	return func(task *Task) {
		task.Owner = owner
	}
}

func WithDueDate(dueDate time.Time) TaskOption {
	if dueDate.IsZero() {
		return nil
	}
	return func(task *Task) {
		task.DueDate = dueDate
	}
}
