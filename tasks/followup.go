package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"alfredoramos.mx/outreach-tracker/app"
	"alfredoramos.mx/outreach-tracker/helpers"
	"alfredoramos.mx/outreach-tracker/models"
	"alfredoramos.mx/outreach-tracker/utils"
	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
)

const (
	TaskFollowupScan string = "followups:scan"
)

// HandleFollowupScanTask emails a digest of the records whose follow-up date
// has arrived. Runs on the cronspec from tasks/config.yml.
func HandleFollowupScanTask(ctx context.Context, t *asynq.Task) error {
	now := time.Now().In(utils.DefaultLocation())
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())

	due := []models.Website{}

	if err := app.DB().WithContext(ctx).
		Where("next_followup IS NOT NULL AND next_followup <= ?", endOfDay).
		Order("next_followup asc").
		Find(&due).Error; err != nil {
		sentry.CaptureException(err)
		slog.Error(fmt.Sprintf("Could not scan for due follow-ups: %v", err))
		return err
	}

	if len(due) < 1 {
		slog.Info("No follow-ups due.")
		return nil
	}

	recipients := utils.ReminderEmails()

	if len(recipients) < 1 {
		slog.Warn("No reminder recipients configured. Skipping follow-up digest.")
		return nil
	}

	type digestRow struct {
		Website      string
		Status       string
		Assignee     string
		NextFollowup string
	}

	rows := make([]digestRow, 0, len(due))

	for _, w := range due {
		row := digestRow{Website: w.Website}

		if w.Status != nil {
			row.Status = *w.Status
		}

		if w.Assignee != nil {
			row.Assignee = *w.Assignee
		}

		if w.NextFollowup != nil {
			row.NextFollowup = w.NextFollowup.Format(utils.DateFormat)
		}

		rows = append(rows, row)
	}

	//nolint:contextcheck
	return NewEmail(
		helpers.EmailOpts{
			Subject:      fmt.Sprintf("Follow-ups due: %d", len(rows)),
			TemplateName: "followup_reminder",
			ToList:       recipients,
		},
		map[string]interface{}{
			"Total":     len(rows),
			"Followups": rows,
		},
	)
}
