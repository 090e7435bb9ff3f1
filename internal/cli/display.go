package cli

import (
	"fmt"
	"strings"

	"taskManager/internal/codec"
	"taskManager/internal/models/task"
)

func formatTask(t *task.Task) string {
	completed := "No"
	if t.Completed {
		completed = "Yes"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Task: %d\t\t %s\n", t.ID, t.Title)
	fmt.Fprintf(&b, "Assigned to: \t %s\n", t.Owner)
	fmt.Fprintf(&b, "Date Assigned: \t %s\n", t.AssignedDate.Format(codec.DateLayout))
	fmt.Fprintf(&b, "Due Date: \t %s\n", t.DueDate.Format(codec.DateLayout))
	fmt.Fprintf(&b, "Task Complete? \t %s\n", completed)
	fmt.Fprintf(&b, "Task Description: \n %s\n", t.Description)
	return b.String()
}
