package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"tasklist/internal/errors"
)

// taskRecord is the exported shape of one row
type taskRecord struct {
	Row  int     `json:"row" yaml:"row"`
	ID   int64   `json:"id" yaml:"id"`
	Name *string `json:"name" yaml:"name"`
}

// OutputCommand handles the output command
type OutputCommand struct {
	app *App
}

// NewOutputCommand creates a new output command handler
func NewOutputCommand(app *App) *OutputCommand {
	return &OutputCommand{app: app}
}

// Execute runs the output command
func (c *OutputCommand) Execute(ctx context.Context, args []string) error {
	return c.outputTasks(ctx, args)
}

// outputTasks outputs tasks in the specified format
func (c *OutputCommand) outputTasks(ctx context.Context, args []string) error {
	format := c.app.config.Commands.OutputDefaultFormat
	if len(args) > 0 {
		if !strings.HasPrefix(args[0], "format=") {
			return errors.NewInvalidInputError("format", args[0], "invalid format option")
		}
		format = strings.TrimPrefix(args[0], "format=")
	}

	if err := c.app.taskList.Activate(ctx); err != nil {
		return NewErrorHandler().Handle("load tasks", err)
	}
	records := c.records()

	switch format {
	case "csv":
		return c.outputCSV(records)
	case "json":
		encoder := json.NewEncoder(c.app.out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(records)
	case "yaml":
		encoder := yaml.NewEncoder(c.app.out)
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(records)
	default:
		return errors.NewInvalidInputError("format", format, "unsupported format")
	}
}

func (c *OutputCommand) records() []taskRecord {
	items := c.app.taskList.Items()
	records := make([]taskRecord, 0, len(items))
	for i, task := range items {
		record := taskRecord{Row: i + 1, ID: task.ID()}
		if name, ok := task.Name(); ok {
			record.Name = &name
		}
		records = append(records, record)
	}
	return records
}

// outputCSV writes the rows as CSV. An absent name is written as an empty field.
func (c *OutputCommand) outputCSV(records []taskRecord) error {
	writer := csv.NewWriter(c.app.out)

	if err := writer.Write([]string{"Row", "ID", "Name"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, record := range records {
		name := ""
		if record.Name != nil {
			name = *record.Name
		}
		row := []string{
			strconv.Itoa(record.Row),
			strconv.FormatInt(record.ID, 10),
			name,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
