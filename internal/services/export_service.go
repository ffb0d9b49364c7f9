// internal/services/export_service.go
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/javajoker/permit-backend/internal/models"
	"github.com/javajoker/permit-backend/internal/repository"
)

const ChecklistSheet = "Documents"

var checklistHeader = []interface{}{"No.", "Requirement", "Checked", "Uploaded", "File Name", "Status"}

// ExportService writes the document checklist as a spreadsheet.
type ExportService struct {
	store repository.ApplicationStore
}

func NewExportService(store repository.ApplicationStore) *ExportService {
	return &ExportService{store: store}
}

func (s *ExportService) ExportChecklist(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	app, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, "", storeError(err)
	}

	data, err := BuildChecklistWorkbook(app)
	if err != nil {
		return nil, "", err
	}
	return data, exportFileName(app), nil
}

func BuildChecklistWorkbook(app *models.PermitApplication) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ChecklistSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(ChecklistSheet, "A1", &checklistHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(ChecklistSheet, "A1", "F1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, doc := range app.Checklist.Documents {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{i + 1, doc.Name, yesNo(doc.IsChecked), yesNo(doc.IsUploaded), doc.FileName, string(doc.State())}
		if err := f.SetSheetRow(ChecklistSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(ChecklistSheet, "B", "B", 50); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(ChecklistSheet, "E", "E", 40); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func exportFileName(app *models.PermitApplication) string {
	if app.Submission.ApplicationNumber != "" {
		return fmt.Sprintf("%s-documents.xlsx", app.Submission.ApplicationNumber)
	}
	return fmt.Sprintf("%s-documents.xlsx", app.ID)
}
