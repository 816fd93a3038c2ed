package controllers

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"alfredoramos.mx/outreach-tracker/helpers"
	"alfredoramos.mx/outreach-tracker/utils"
	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// PostImport accepts a multipart CSV or XLSX upload and loads it into the
// store. The response carries the number of rows actually added; rows without
// a usable website value are skipped, not errors.
func PostImport(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		slog.Error(fmt.Sprintf("Error reading uploaded file: %v", err))
		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": []string{"A CSV or XLSX file is required."},
		})
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))

	if ext != ".csv" && ext != ".xlsx" {
		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": []string{"Only CSV and XLSX files are supported."},
		})
	}

	sourceTag := utils.CleanString(c.FormValue("source"))

	if len(sourceTag) < 1 {
		sourceTag = "upload"
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("import-%s%s", uuid.NewString(), ext))

	if err := c.SaveFile(fh, path); err != nil {
		sentry.CaptureException(err)
		slog.Error(fmt.Sprintf("Error saving uploaded file: %v", err))
		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": []string{"Could not read the uploaded file."},
		})
	}

	defer func() {
		if err := os.Remove(path); err != nil {
			slog.Warn(fmt.Sprintf("Could not remove temporary file: %v", err))
		}
	}()

	var added int

	if ext == ".xlsx" {
		added, err = helpers.ImportXLSX(path, sourceTag)
	} else {
		added, err = helpers.ImportCSV(path, sourceTag)
	}

	if err != nil {
		slog.Error(fmt.Sprintf("Error importing file: %v", err))

		// Rows stored before the failure stay stored; the count says how many.
		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": []string{"The import could not be completed."},
			"added": added,
		})
	}

	return c.Status(fiber.StatusOK).JSON(&fiber.Map{"added": added})
}

// GetExport streams the full store as a CSV or XLSX download.
func GetExport(c *fiber.Ctx) error {
	format := strings.ToLower(utils.CleanString(c.Query("format")))

	if len(format) < 1 {
		format = "csv"
	}

	if format != "csv" && format != "xlsx" {
		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": []string{"Only CSV and XLSX exports are supported."},
		})
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("export-%s.%s", uuid.NewString(), format))

	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			slog.Warn(fmt.Sprintf("Could not remove temporary file: %v", err))
		}
	}()

	var (
		total int
		err   error
	)

	if format == "xlsx" {
		total, err = helpers.ExportXLSX(path)
	} else {
		total, err = helpers.ExportCSV(path)
	}

	if err != nil {
		slog.Error(fmt.Sprintf("Error exporting websites: %v", err))
		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": []string{"The export could not be completed."},
		})
	}

	data, err := os.ReadFile(path)
	if err != nil {
		sentry.CaptureException(err)
		slog.Error(fmt.Sprintf("Error reading export file: %v", err))
		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": []string{"The export could not be completed."},
		})
	}

	contentType := "text/csv; charset=utf-8"

	if format == "xlsx" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="websites_export.%s"`, format))
	c.Set("X-Total-Rows", strconv.Itoa(total))

	return c.Status(fiber.StatusOK).Send(data)
}
