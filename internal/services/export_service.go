package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"staging-console-backend/internal/lifecycle"
)

const queueSheet = "Review Queue"

var queueExportHeaders = []string{
	"Submission", "Customer", "Plan", "Status", "Payment", "Quote (USD)",
	"Editor", "Submitted", "Due", "Remove Result", "Final Result",
}

type ExportService struct {
	review *ReviewService
}

func NewExportService(review *ReviewService) *ExportService {
	return &ExportService{review: review}
}

// ExportQueue renders the review queue as a workbook.
func (s *ExportService) ExportQueue(ctx context.Context, now time.Time) (*excelize.File, string, error) {
	subs, err := s.review.Queue(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("list queue: %w", err)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", queueSheet); err != nil {
		return nil, "", err
	}

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range queueExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(queueSheet, cell, h)
		f.SetCellStyle(queueSheet, cell, cell, boldStyle)
	}

	for rowIdx := range subs {
		sub := &subs[rowIdx]
		row := rowIdx + 2
		f.SetCellValue(queueSheet, fmt.Sprintf("A%d", row), sub.ID)
		f.SetCellValue(queueSheet, fmt.Sprintf("B%d", row), sub.UserID)
		f.SetCellValue(queueSheet, fmt.Sprintf("C%d", row), sub.Plan.Title())
		f.SetCellValue(queueSheet, fmt.Sprintf("D%d", row), string(lifecycle.DisplayStatus(sub)))
		f.SetCellValue(queueSheet, fmt.Sprintf("E%d", row), string(sub.PaymentStatus))
		if sub.QuotedAmount != nil {
			f.SetCellValue(queueSheet, fmt.Sprintf("F%d", row), float64(*sub.QuotedAmount)/100)
		}
		f.SetCellValue(queueSheet, fmt.Sprintf("G%d", row), sub.AssignedEditorID)
		f.SetCellValue(queueSheet, fmt.Sprintf("H%d", row), sub.Timestamp.UTC().Format(time.RFC3339))
		f.SetCellValue(queueSheet, fmt.Sprintf("I%d", row), lifecycle.DueDate(sub).UTC().Format(time.RFC3339))
		f.SetCellValue(queueSheet, fmt.Sprintf("J%d", row), sub.ResultRemoveURL)
		f.SetCellValue(queueSheet, fmt.Sprintf("K%d", row), sub.ResultDataURL)
	}

	colWidths := []float64{14, 14, 24, 14, 14, 12, 14, 22, 22, 40, 40}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(queueSheet, col, col, w)
	}

	filename := fmt.Sprintf("review_queue_%s.xlsx", now.UTC().Format("20060102_150405"))
	return f, filename, nil
}
