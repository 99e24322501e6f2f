package render

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/BuzzLyutic/task-tracker-cli/internal/model"
)

// JSON выводит данные с отступами, как они лежат в файле хранения
func JSON(w io.Writer, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// Table выводит задачи колонками в порядке добавления
func Table(w io.Writer, tasks []model.Task) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "No tasks found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tDESCRIPTION\tCREATED\tUPDATED")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			t.ID,
			t.Status,
			t.Description,
			t.CreatedAt.Local().Format("2006-01-02 15:04"),
			t.UpdatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	return tw.Flush()
}

func Error(w io.Writer, message string) {
	fmt.Fprintf(w, "Error: %s\n", message)
}
