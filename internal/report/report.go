// Package report computes aggregate completion/overdue statistics and
// maintains the two generated overview artifacts.
package report

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"taskManager/internal/logger"
	"taskManager/internal/models/task"
	"taskManager/internal/service"

	"go.uber.org/zap"
)

const separator = "-----------------------------------"

// Summary holds the aggregate counters for one task set. Applicable is
// false when the set is empty and the percentages are meaningless.
type Summary struct {
	Total         int
	Completed     int
	Uncompleted   int
	Overdue       int
	PctIncomplete float64
	PctOverdue    float64
	Applicable    bool
}

func summarize(tasks []*task.Task, now time.Time) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
			continue
		}
		s.Uncompleted++
		if t.IsOverdue(now) {
			s.Overdue++
		}
	}

	if s.Total == 0 {
		return s
	}

	s.Applicable = true
	s.PctIncomplete = roundPct(s.Uncompleted, s.Total)
	s.PctOverdue = roundPct(s.Overdue, s.Total)
	return s
}

// ComputeTaskSummary aggregates the whole task set as of now.
func ComputeTaskSummary(tasks []*task.Task, now time.Time) Summary {
	return summarize(tasks, now)
}

// ComputeUserSummary aggregates the tasks owned by username as of now.
func ComputeUserSummary(tasks []*task.Task, username string, now time.Time) Summary {
	owned := []*task.Task{}
	for _, t := range tasks {
		if t.Owner == username {
			owned = append(owned, t)
		}
	}
	return summarize(owned, now)
}

func roundPct(count, total int) float64 {
	return math.Round(float64(count)/float64(total)*100*100) / 100
}

func formatPct(s Summary, pct float64) string {
	if !s.Applicable {
		return "na"
	}
	return strconv.FormatFloat(pct, 'f', -1, 64)
}

type Generator struct {
	tasks            service.TaskRepository
	users            service.UserRepository
	taskOverviewPath string
	userOverviewPath string
	now              func() time.Time
}

func NewGenerator(tasks service.TaskRepository, users service.UserRepository, taskOverviewPath, userOverviewPath string) *Generator {
	return &Generator{
		tasks:            tasks,
		users:            users,
		taskOverviewPath: taskOverviewPath,
		userOverviewPath: userOverviewPath,
		now:              time.Now,
	}
}

// Generate recomputes both overview artifacts from the current store and
// overwrites any previous ones. This is always a full regeneration.
func (g *Generator) Generate(ctx context.Context) error {
	tasks, err := g.tasks.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("loading tasks: %w", err)
	}
	users, err := g.users.Users(ctx)
	if err != nil {
		return fmt.Errorf("loading users: %w", err)
	}

	now := g.now()

	taskOverview := renderSummary(ComputeTaskSummary(tasks, now))
	if err := os.WriteFile(g.taskOverviewPath, []byte(separator+"\n"+taskOverview+separator), 0644); err != nil {
		return fmt.Errorf("writing task overview: %w", err)
	}

	var userOverview strings.Builder
	for _, u := range users {
		userOverview.WriteString(separator + "\n")
		userOverview.WriteString(u.Name + "\n")
		userOverview.WriteString(renderSummary(ComputeUserSummary(tasks, u.Name, now)))
		userOverview.WriteString(separator + "\n")
	}
	if err := os.WriteFile(g.userOverviewPath, []byte(userOverview.String()), 0644); err != nil {
		return fmt.Errorf("writing user overview: %w", err)
	}

	logger.Info("Report: overviews generated",
		zap.Int("tasks", len(tasks)),
		zap.Int("users", len(users)))
	return nil
}

func renderSummary(s Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total Number of Tasks:\t\t%d\n", s.Total)
	fmt.Fprintf(&b, "Total Completed Tasks:\t\t%d\n", s.Completed)
	fmt.Fprintf(&b, "Total Uncompleted Tasks:\t%d\n", s.Uncompleted)
	fmt.Fprintf(&b, "Total Overdue Tasks:\t\t%d\n", s.Overdue)
	fmt.Fprintf(&b, "Percentage Incomplete:\t\t%s\n", formatPct(s, s.PctIncomplete))
	fmt.Fprintf(&b, "Percentage Overdue:\t\t\t%s\n", formatPct(s, s.PctOverdue))
	return b.String()
}

// DisplayStats prints the user/task counts and the stored overview
// artifacts. The artifacts are regenerated only when one of them is
// missing; existing ones are shown verbatim even if the store has moved
// on since they were written.
func (g *Generator) DisplayStats(ctx context.Context, w io.Writer) error {
	tasks, err := g.tasks.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("loading tasks: %w", err)
	}
	users, err := g.users.Users(ctx)
	if err != nil {
		return fmt.Errorf("loading users: %w", err)
	}

	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "Number of users: \t\t %d\n", len(users))
	fmt.Fprintf(w, "Number of tasks: \t\t %d\n", len(tasks))
	fmt.Fprintln(w, separator)

	if !fileExists(g.taskOverviewPath) || !fileExists(g.userOverviewPath) {
		if err := g.Generate(ctx); err != nil {
			return err
		}
	}

	fmt.Fprintln(w, "Task Statistics")
	fmt.Fprintln(w)
	if err := streamFile(w, g.taskOverviewPath); err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, separator)

	fmt.Fprintln(w, "User Statistics")
	fmt.Fprintln(w)
	if err := streamFile(w, g.userOverviewPath); err != nil {
		return err
	}
	fmt.Fprintln(w, separator)
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func streamFile(w io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading overview %s: %w", path, err)
	}
	_, err = w.Write(data)
	return err
}
