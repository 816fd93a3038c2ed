package helpers

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"alfredoramos.mx/outreach-tracker/app"
	"alfredoramos.mx/outreach-tracker/models"
	"alfredoramos.mx/outreach-tracker/utils"
	"github.com/getsentry/sentry-go"
	"github.com/xuri/excelize/v2"
)

// Export column order is fixed and doubles as the file header.
var exportColumns = []string{
	"id", "website", "contact_name", "contact_email", "module", "traffic",
	"da", "status", "assignee", "notes", "source", "created_at", "updated_at",
}

// ImportCSV loads records from a comma-separated file with a header row.
// Rows without a usable website value are skipped, malformed numeric fields
// become null, and inserts bypass the activity log so a bulk load does not
// flood the audit trail. Returns the number of rows added.
func ImportCSV(path string, sourceTag string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("could not open import file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("could not read import file: %w", err)
	}

	return importRows(rows, sourceTag)
}

// ImportXLSX mirrors ImportCSV for spreadsheet uploads, reading the first
// sheet of the workbook.
func ImportXLSX(path string, sourceTag string) (int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, fmt.Errorf("could not open import file: %w", err)
	}

	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn(fmt.Sprintf("Could not close spreadsheet: %v", err))
		}
	}()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return 0, fmt.Errorf("could not read import file: %w", err)
	}

	return importRows(rows, sourceTag)
}

func importRows(rows [][]string, sourceTag string) (int, error) {
	if len(rows) < 1 {
		return 0, nil
	}

	columns := headerIndex(rows[0])
	added := 0

	for _, row := range rows[1:] {
		website, ok := mapImportRow(columns, row, sourceTag)
		if !ok {
			continue
		}

		// Raw insert path: no activity entry per imported row.
		if err := app.DB().Create(website).Error; err != nil {
			sentry.CaptureException(err)
			slog.Error(fmt.Sprintf("Could not store imported row: %v", err))

			if added > 0 {
				InvalidateStatusSummary()
			}

			return added, fmt.Errorf("could not store imported row: %w", err)
		}

		added++
	}

	if added > 0 {
		InvalidateStatusSummary()
	}

	return added, nil
}

// headerIndex maps recognized column names, case-insensitively, to their
// position. Unrecognized columns are carried too and simply never read.
func headerIndex(header []string) map[string]int {
	columns := map[string]int{}

	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))

		if len(name) < 1 {
			continue
		}

		if _, ok := columns[name]; !ok {
			columns[name] = i
		}
	}

	return columns
}

func mapImportRow(columns map[string]int, row []string, sourceTag string) (*models.Website, bool) {
	cell := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}

		return strings.TrimSpace(row[i])
	}

	website := cell("website")

	if len(website) < 1 {
		website = cell("url")
	}

	if len(website) < 1 {
		return nil, false
	}

	status := cell("status")

	if len(status) < 1 {
		status = models.DefaultStatus
	}

	now := time.Now().In(utils.DefaultLocation())

	return &models.Website{
		Website:      website,
		ContactName:  utils.ToStringPtr(cell("contact_name")),
		ContactEmail: utils.ToStringPtr(cell("contact_email")),
		Module:       utils.ToStringPtr(cell("module")),
		Traffic:      utils.ToIntPtr(cell("traffic")),
		DA:           utils.ToIntPtr(cell("da")),
		Status:       &status,
		Assignee:     utils.ToStringPtr(cell("assignee")),
		Notes:        utils.ToStringPtr(cell("notes")),
		Source:       utils.ToStringPtr(sourceTag),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, true
}

// ExportCSV writes every record to a comma-separated file in the fixed column
// order. An empty store still produces a valid header-only file. Returns the
// number of data rows written.
func ExportCSV(path string) (int, error) {
	websites, err := allWebsites()
	if err != nil {
		return 0, err
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("could not create export file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	if err := writer.Write(exportColumns); err != nil {
		return 0, fmt.Errorf("could not write export header: %w", err)
	}

	for _, w := range websites {
		if err := writer.Write(exportRow(&w)); err != nil {
			return 0, fmt.Errorf("could not write export row: %w", err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return 0, fmt.Errorf("could not flush export file: %w", err)
	}

	return len(websites), nil
}

// ExportXLSX mirrors ExportCSV for spreadsheet downloads.
func ExportXLSX(path string) (int, error) {
	websites, err := allWebsites()
	if err != nil {
		return 0, err
	}

	f := excelize.NewFile()

	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn(fmt.Sprintf("Could not close spreadsheet: %v", err))
		}
	}()

	sheet := f.GetSheetName(0)

	header := make([]any, len(exportColumns))
	for i, name := range exportColumns {
		header[i] = name
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return 0, fmt.Errorf("could not write export header: %w", err)
	}

	for i, w := range websites {
		row := exportRow(&w)
		cells := make([]any, len(row))

		for j, v := range row {
			cells[j] = v
		}

		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, fmt.Errorf("could not address export row: %w", err)
		}

		if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
			return 0, fmt.Errorf("could not write export row: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return 0, fmt.Errorf("could not save export file: %w", err)
	}

	return len(websites), nil
}

func allWebsites() ([]models.Website, error) {
	websites := []models.Website{}

	if err := app.DB().Order("id asc").Find(&websites).Error; err != nil {
		sentry.CaptureException(err)
		slog.Error(fmt.Sprintf("Could not list websites for export: %v", err))
		return nil, err
	}

	return websites, nil
}

func exportRow(w *models.Website) []string {
	return []string{
		strconv.FormatUint(uint64(w.ID), 10),
		w.Website,
		stringField(w.ContactName),
		stringField(w.ContactEmail),
		stringField(w.Module),
		intField(w.Traffic),
		intField(w.DA),
		stringField(w.Status),
		stringField(w.Assignee),
		stringField(w.Notes),
		stringField(w.Source),
		w.CreatedAt.Format(time.RFC3339),
		w.UpdatedAt.Format(time.RFC3339),
	}
}

func stringField(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

func intField(n *int) string {
	if n == nil {
		return ""
	}

	return strconv.Itoa(*n)
}
