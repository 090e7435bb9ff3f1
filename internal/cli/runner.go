// Package cli is the interactive surface: the login loop, the main menu
// and the per-option prompt flows. All reads and writes go through the
// injected reader/writer so sessions can be scripted in tests.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"taskManager/internal/codec"
	"taskManager/internal/logger"
	"taskManager/internal/models/task"
	"taskManager/internal/report"
	"taskManager/internal/service"

	"go.uber.org/zap"
)

const separator = "-----------------------------------"

const adminMenu = `Select one of the following options below:
r - register a user
a - add a task
va - view all tasks
vm - view my tasks
gr - generate reports
ds - display statistics
e - exit
: `

const userMenu = `Select one of the following options below:
r - register a user
a - add a task
va - view all tasks
vm - view my tasks
e - exit
: `

const markEditMenu = `Select one of the options below:
m - mark the task as complete
e - edit the task
x - back
: `

type Runner struct {
	in      *bufio.Scanner
	out     io.Writer
	tasks   *service.TaskService
	auth    *service.AuthService
	reports *report.Generator
}

func NewRunner(in io.Reader, out io.Writer, tasks *service.TaskService, auth *service.AuthService, reports *report.Generator) *Runner {
	return &Runner{
		in:      bufio.NewScanner(in),
		out:     out,
		tasks:   tasks,
		auth:    auth,
		reports: reports,
	}
}

// Run drives one interactive session: login, then the menu loop until
// the user exits or the input ends.
func (r *Runner) Run(ctx context.Context) error {
	session, err := r.login(ctx)
	if err != nil {
		return err
	}

	menu := userMenu
	if session.IsAdmin() {
		menu = adminMenu
	}

	for {
		fmt.Fprintln(r.out)
		choice, err := r.prompt(menu)
		if err != nil {
			return err
		}

		switch strings.ToLower(choice) {
		case "r":
			if !session.IsAdmin() {
				fmt.Fprintln(r.out, "Registering new users requires admin privileges")
				continue
			}
			err = r.registerUser(ctx)
		case "a":
			err = r.addTask(ctx)
		case "va":
			err = r.viewAll(ctx)
		case "vm":
			err = r.viewMine(ctx, session)
		case "gr":
			if !session.IsAdmin() {
				fmt.Fprintln(r.out, "Generating reports requires admin privileges")
				continue
			}
			if err = r.reports.Generate(ctx); err == nil {
				fmt.Fprintln(r.out, "Reports generated.")
			}
		case "ds":
			if !session.IsAdmin() {
				fmt.Fprintln(r.out, "You have made a wrong choice, please try again")
				continue
			}
			err = r.reports.DisplayStats(ctx, r.out)
		case "e":
			fmt.Fprintln(r.out, "Goodbye!!!")
			return nil
		default:
			fmt.Fprintln(r.out, "You have made a wrong choice, please try again")
		}

		if err != nil {
			return err
		}
	}
}

func (r *Runner) login(ctx context.Context) (*service.Session, error) {
	for {
		fmt.Fprintln(r.out, "LOGIN")
		username, err := r.prompt("Username: ")
		if err != nil {
			return nil, err
		}
		password, err := r.prompt("Password: ")
		if err != nil {
			return nil, err
		}

		session, err := r.auth.Authenticate(ctx, username, password)
		switch service.CodeOf(err) {
		case service.CodeUnknownUser:
			fmt.Fprintln(r.out, "User does not exist")
			continue
		case service.CodeWrongPassword:
			fmt.Fprintln(r.out, "Wrong password")
			continue
		}
		if err != nil {
			return nil, err
		}

		fmt.Fprintln(r.out, "Login Successful!")
		return session, nil
	}
}

func (r *Runner) registerUser(ctx context.Context) error {
	username, err := r.prompt("New Username: ")
	if err != nil {
		return err
	}
	for {
		taken, err := r.auth.UserExists(ctx, username)
		if err != nil {
			return err
		}
		if !taken {
			break
		}
		if username, err = r.prompt("Username is taken, please enter a different one: "); err != nil {
			return err
		}
	}

	password, err := r.prompt("New Password: ")
	if err != nil {
		return err
	}
	confirm, err := r.prompt("Confirm Password: ")
	if err != nil {
		return err
	}

	_, err = r.auth.Register(ctx, username, password, confirm)
	switch service.CodeOf(err) {
	case service.CodeInvalidCharacter:
		fmt.Fprintln(r.out, "Username or password cannot contain ';'.")
		return nil
	case service.CodePasswordMismatch:
		fmt.Fprintln(r.out, "Passwords do not match")
		return nil
	case service.CodeDuplicateUser:
		fmt.Fprintln(r.out, "Username is taken")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(r.out, "New user added")
	return nil
}

func (r *Runner) addTask(ctx context.Context) error {
	owner, err := r.prompt("Name of person assigned to task: ")
	if err != nil {
		return err
	}
	exists, err := r.auth.UserExists(ctx, owner)
	if err != nil {
		return err
	}
	if !exists {
		fmt.Fprintln(r.out, "User does not exist. Please enter a valid username")
		return nil
	}

	title, err := r.promptSafe("Title of Task: ")
	if err != nil {
		return err
	}
	description, err := r.promptSafe("Description of Task: ")
	if err != nil {
		return err
	}
	dueDate, err := r.promptDate("Due date of task (dd Mon yyyy): ")
	if err != nil {
		return err
	}

	if _, err := r.tasks.CreateTask(ctx, owner, title, description, dueDate); err != nil {
		if service.CodeOf(err) != "" {
			fmt.Fprintln(r.out, err.Error())
			return nil
		}
		return err
	}

	fmt.Fprintln(r.out, "Task successfully added.")
	return nil
}

func (r *Runner) viewAll(ctx context.Context) error {
	fmt.Fprintln(r.out, separator)

	tasks, err := r.tasks.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Fprintln(r.out, "There are no tasks.")
		fmt.Fprintln(r.out, separator)
		return nil
	}

	for _, t := range tasks {
		fmt.Fprint(r.out, formatTask(t))
		fmt.Fprintln(r.out, separator)
	}
	return nil
}

func (r *Runner) viewMine(ctx context.Context, session *service.Session) error {
	fmt.Fprintln(r.out, separator)

	mine, err := r.tasks.ListMine(ctx, session.Username())
	if err != nil {
		return err
	}
	if len(mine) == 0 {
		fmt.Fprintln(r.out, "You have no tasks.")
		fmt.Fprintln(r.out, separator)
	}
	for _, t := range mine {
		fmt.Fprint(r.out, formatTask(t))
		fmt.Fprintln(r.out, separator)
	}

	selection, err := r.prompt("Select a task id to mark complete or edit, or enter -1 to cancel: ")
	if err != nil {
		return err
	}
	id, convErr := strconv.Atoi(selection)
	if convErr != nil {
		fmt.Fprintln(r.out, "Please enter a numeric task id")
		return nil
	}
	if id == -1 {
		fmt.Fprintln(r.out, "Returning to menu")
		return nil
	}

	t, err := r.tasks.GetByID(ctx, id)
	if service.CodeOf(err) == service.CodeNotFound {
		fmt.Fprintln(r.out, "Task not found")
		return nil
	}
	if err != nil {
		return err
	}

	action, err := r.prompt(markEditMenu)
	if err != nil {
		return err
	}

	switch strings.ToLower(action) {
	case "m":
		if err := r.tasks.MarkComplete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(r.out, "Task successfully updated.")
	case "e":
		return r.editTask(ctx, t)
	case "x":
		fmt.Fprintln(r.out, separator)
	}
	return nil
}

func (r *Runner) editTask(ctx context.Context, t *task.Task) error {
	if t.Completed {
		fmt.Fprintln(r.out, "Task is completed and cannot be edited")
		return nil
	}

	owner, err := r.prompt("Name of new user to assign the task to: ")
	if err != nil {
		return err
	}
	dueDate, err := r.promptDate("Due date of task (dd Mon yyyy): ")
	if err != nil {
		return err
	}

	err = r.tasks.EditTask(ctx, t.ID, task.WithOwner(owner), task.WithDueDate(dueDate))
	switch service.CodeOf(err) {
	case service.CodeAlreadyCompleted:
		fmt.Fprintln(r.out, "Task is completed and cannot be edited")
		return nil
	case service.CodeInvalidCharacter:
		fmt.Fprintln(r.out, "Your input cannot contain a ';' character")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(r.out, "Task successfully updated.")
	return nil
}

func (r *Runner) prompt(label string) (string, error) {
	fmt.Fprint(r.out, label)
	if !r.in.Scan() {
		if err := r.in.Err(); err != nil {
			return "", err
		}
		logger.Info("CLI: input closed")
		return "", io.EOF
	}
	return strings.TrimSpace(r.in.Text()), nil
}

// promptSafe re-prompts until the input is free of the delimiter.
func (r *Runner) promptSafe(label string) (string, error) {
	for {
		value, err := r.prompt(label)
		if err != nil {
			return "", err
		}
		if codec.ValidateField(value) {
			return value, nil
		}
		fmt.Fprintln(r.out, "Your input cannot contain a ';' character")
	}
}

// promptDate re-prompts until the input parses in the fixed date layout.
// An invalid date is recoverable, never fatal.
func (r *Runner) promptDate(label string) (time.Time, error) {
	for {
		value, err := r.prompt(label)
		if err != nil {
			return time.Time{}, err
		}
		parsed, parseErr := time.Parse(codec.DateLayout, value)
		if parseErr == nil {
			return parsed, nil
		}
		logger.Warn("CLI: invalid date input", zap.String("value", value))
		fmt.Fprintln(r.out, "Invalid date format. Please use the format specified")
	}
}
