// Package export renders roadmaps and progress summaries as
// spreadsheets for download.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/eduflow-app/eduflow/internal/catalog"
	"github.com/eduflow-app/eduflow/internal/progress"
	"github.com/eduflow-app/eduflow/internal/roadmap"
)

const sheetName = "Sheet1"

// RoadmapWorkbook renders a study plan, one row per item, grouped by
// day in plan order.
func RoadmapWorkbook(topic catalog.Topic, plans []roadmap.DailyPlan) (*excelize.File, error) {
	f := excelize.NewFile()

	header := []any{"Day", "Item", "Type", "URL", "Points"}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	if err := f.SetCellValue(sheetName, "G1", fmt.Sprintf("Roadmap: %s", topic.Name)); err != nil {
		return nil, fmt.Errorf("writing title: %w", err)
	}

	row := 2
	for _, plan := range plans {
		for _, item := range plan.Items {
			cells := []any{plan.Day, item.Title, string(item.Type), item.URL, item.Points}
			cell := fmt.Sprintf("A%d", row)
			if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
				return nil, fmt.Errorf("writing row %d: %w", row, err)
			}
			row++
		}
	}
	return f, nil
}

// ProgressWorkbook renders per-topic completion aggregates plus the
// overall line and the user's points/level.
func ProgressWorkbook(topics []catalog.Topic, summary progress.Summary, state progress.State) (*excelize.File, error) {
	f := excelize.NewFile()

	names := make(map[string]string, len(topics))
	for _, topic := range topics {
		names[topic.ID] = topic.Name
	}

	header := []any{"Topic", "Completed", "Total", "Percentage"}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	row := 2
	for _, tp := range summary.PerTopic {
		name := names[tp.TopicID]
		if name == "" {
			name = tp.TopicID
		}
		cells := []any{name, tp.Completed, tp.Total, tp.Percentage}
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", row), &cells); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", row, err)
		}
		row++
	}

	overall := []any{"Overall", summary.Overall.Completed, summary.Overall.Total, summary.Overall.Percentage}
	if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", row), &overall); err != nil {
		return nil, fmt.Errorf("writing overall row: %w", err)
	}
	row += 2

	if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", row), &[]any{"Points", state.Points}); err != nil {
		return nil, fmt.Errorf("writing points: %w", err)
	}
	row++
	if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", row), &[]any{"Level", state.Level}); err != nil {
		return nil, fmt.Errorf("writing level: %w", err)
	}
	return f, nil
}
