package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"questlog/internal/task"
)

func newTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Print the quests a new session starts with",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(app.Out, buildTasksText(initialTasks(app)))
			return err
		},
	}
	return cmd
}

// initialTasks is the seed list unless skip_seed is set. Quests live only in
// memory, so every session starts from here.
func initialTasks(app *App) task.List {
	if app.Config.SkipSeed {
		return task.List{}
	}
	return task.Seed()
}

func buildTasksText(tasks task.List) string {
	if tasks.Len() == 0 {
		return "All quests completed."
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d PENDING\n", tasks.Len()))
	for _, t := range tasks.Items() {
		b.WriteString(fmt.Sprintf("\n%s\n", strong(t.Title)))
		b.WriteString(fmt.Sprintf("  due %s %s %s\n", t.DueDate, t.DueTime, muted("["+t.ID+"]")))
		if desc := strings.TrimSpace(t.Description); desc != "" {
			for _, line := range strings.Split(wrapText(desc, 60), "\n") {
				b.WriteString("  " + line + "\n")
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
