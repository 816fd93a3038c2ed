package helpers

import (
	"fmt"
	"log/slog"
	"time"

	"alfredoramos.mx/outreach-tracker/app"
	"alfredoramos.mx/outreach-tracker/models"
	"alfredoramos.mx/outreach-tracker/utils"
	"github.com/getsentry/sentry-go"
	"gorm.io/gorm"
)

// AppendActivity stores one audit entry. The website id is deliberately not
// checked against the store, so a log write never fails for a record removed
// by external means.
func AppendActivity(websiteID uint, action string, note *string, user string) (*models.ActivityLog, error) {
	entry, err := appendActivity(app.DB(), websiteID, action, note, user)
	if err != nil {
		sentry.CaptureException(err)
		slog.Error(fmt.Sprintf("Could not append activity: %v", err))
	}

	return entry, err
}

func appendActivity(tx *gorm.DB, websiteID uint, action string, note *string, user string) (*models.ActivityLog, error) {
	action = utils.CleanString(action)

	if len(action) < 1 {
		return nil, ErrActionRequired
	}

	entry := &models.ActivityLog{
		WebsiteID: websiteID,
		Action:    action,
		Note:      note,
		User:      utils.ToStringPtr(user),
		Timestamp: time.Now().In(utils.DefaultLocation()),
	}

	if err := tx.Create(entry).Error; err != nil {
		return nil, fmt.Errorf("could not store activity entry: %w", err)
	}

	return entry, nil
}

// WebsiteActivity returns the audit trail for a record, most recent first.
// A limit below one returns the full history.
func WebsiteActivity(websiteID uint, limit int) ([]models.ActivityLog, error) {
	entries := []models.ActivityLog{}

	query := app.DB().Model(&models.ActivityLog{}).
		Where("website_id = ?", websiteID).
		Order("timestamp desc").
		Order("id desc")

	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&entries).Error; err != nil {
		sentry.CaptureException(err)
		slog.Error(fmt.Sprintf("Could not list activity: %v", err))
		return nil, err
	}

	return entries, nil
}
