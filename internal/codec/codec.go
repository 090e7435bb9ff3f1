// Package codec converts tasks and user credentials to and from the
// delimited line format of the backing files.
package codec

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"taskManager/internal/models/task"
	"taskManager/internal/models/user"
	"taskManager/internal/repository"
)

const Delimiter = ";"

// DateLayout renders dates like "23 Sep 2024".
const DateLayout = "02 Jan 2006"

const taskFieldCount = 7

// DecodeTask parses one tasks-file line: owner, title, description,
// due date, assigned date, completed flag, id.
func DecodeTask(line string) (*task.Task, error) {
	fields := strings.Split(line, Delimiter)
	if len(fields) != taskFieldCount {
		return nil, fmt.Errorf("%w: task line has %d fields, want %d", repository.ErrMalformedRecord, len(fields), taskFieldCount)
	}

	dueDate, err := time.Parse(DateLayout, fields[3])
	if err != nil {
		return nil, fmt.Errorf("%w: due date %q: %v", repository.ErrMalformedRecord, fields[3], err)
	}

	assignedDate, err := time.Parse(DateLayout, fields[4])
	if err != nil {
		return nil, fmt.Errorf("%w: assigned date %q: %v", repository.ErrMalformedRecord, fields[4], err)
	}

	id, err := strconv.Atoi(fields[6])
	if err != nil {
		return nil, fmt.Errorf("%w: task id %q: %v", repository.ErrMalformedRecord, fields[6], err)
	}

	return &task.Task{
		ID:           id,
		Owner:        fields[0],
		Title:        fields[1],
		Description:  fields[2],
		DueDate:      dueDate,
		AssignedDate: assignedDate,
		Completed:    fields[5] == "Yes",
	}, nil
}

func EncodeTask(t *task.Task) string {
	completed := "No"
	if t.Completed {
		completed = "Yes"
	}

	return strings.Join([]string{
		t.Owner,
		t.Title,
		t.Description,
		t.DueDate.Format(DateLayout),
		t.AssignedDate.Format(DateLayout),
		completed,
		strconv.Itoa(t.ID),
	}, Delimiter)
}

// DecodeUser parses one users-file line: username, password. Trailing
// whitespace around the password is dropped, matching the historical files.
func DecodeUser(line string) (*user.User, error) {
	fields := strings.Split(line, Delimiter)
	if len(fields) != 2 {
		return nil, fmt.Errorf("%w: user line has %d fields, want 2", repository.ErrMalformedRecord, len(fields))
	}

	return &user.User{
		Name:     fields[0],
		Password: strings.TrimSpace(fields[1]),
		Role:     user.RoleUser,
	}, nil
}

func EncodeUser(u *user.User) string {
	return u.Name + Delimiter + u.Password
}

// ValidateField reports whether a free-text field is safe to store, i.e.
// contains no delimiter. Services must reject unsafe input before it
// reaches the codec.
func ValidateField(s string) bool {
	return !strings.Contains(s, Delimiter)
}
