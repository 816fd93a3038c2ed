package helpers

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"alfredoramos.mx/outreach-tracker/app"
	"alfredoramos.mx/outreach-tracker/models"
	"alfredoramos.mx/outreach-tracker/utils"
	"github.com/getsentry/sentry-go"
	"gorm.io/gorm"
)

type WebsiteFilter struct {
	Module   string
	Status   string
	Assignee string
	MinDA    *int
	MaxDA    *int
}

// CreateWebsite stores a new record and its paired "created" activity entry in
// a single transaction. Unknown field names are ignored.
func CreateWebsite(fields map[string]any, actingUser string) (*models.Website, error) {
	website := &models.Website{}
	applyFields(website, fields)

	website.Website = utils.CleanString(website.Website)

	if len(website.Website) < 1 {
		return nil, ErrWebsiteRequired
	}

	if website.Source == nil {
		website.Source = utils.ToStringPtr("manual")
	}

	if website.CreatedBy == nil {
		website.CreatedBy = utils.ToStringPtr(actingUser)
	}

	now := time.Now().In(utils.DefaultLocation())
	website.CreatedAt = now
	website.UpdatedAt = now

	if err := app.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(website).Error; err != nil {
			return fmt.Errorf("could not store website: %w", err)
		}

		if _, err := appendActivity(tx, website.ID, models.ActionCreated, nil, actingUser); err != nil {
			return err
		}

		return nil
	}); err != nil {
		sentry.CaptureException(err)
		slog.Error(fmt.Sprintf("Could not create website: %v", err))
		return nil, err
	}

	InvalidateStatusSummary()

	return website, nil
}

// UpdateWebsite overwrites the known fields present in the payload, refreshes
// updated_at and stores exactly one activity entry, all atomically. The entry's
// note mirrors the notes field only when the payload contains a notes key.
// The action label defaults to "update".
func UpdateWebsite(id uint, fields map[string]any, action string, actingUser string) (*models.Website, error) {
	website := &models.Website{}

	if err := app.DB().First(website, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWebsiteNotFound
		}

		sentry.CaptureException(err)
		slog.Error(fmt.Sprintf("Could not get website: %v", err))
		return nil, err
	}

	applyFields(website, fields)

	website.Website = utils.CleanString(website.Website)

	if len(website.Website) < 1 {
		return nil, ErrWebsiteRequired
	}

	action = utils.CleanString(action)

	if len(action) < 1 {
		action = models.ActionUpdate
	}

	var note *string

	if raw, ok := fields["notes"]; ok {
		if s, ok := raw.(string); ok {
			note = &s
		}
	}

	website.UpdatedAt = time.Now().In(utils.DefaultLocation())

	if err := app.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(website).Error; err != nil {
			return fmt.Errorf("could not store website: %w", err)
		}

		if _, err := appendActivity(tx, website.ID, action, note, actingUser); err != nil {
			return err
		}

		return nil
	}); err != nil {
		sentry.CaptureException(err)
		slog.Error(fmt.Sprintf("Could not update website: %v", err))
		return nil, err
	}

	InvalidateStatusSummary()

	return website, nil
}

func GetWebsite(id uint) (*models.Website, error) {
	website := &models.Website{}

	if err := app.DB().First(website, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWebsiteNotFound
		}

		sentry.CaptureException(err)
		slog.Error(fmt.Sprintf("Could not get website: %v", err))
		return nil, err
	}

	return website, nil
}

// ListWebsites applies the filter conjunctively and returns records in
// ascending id order, truncated to limit. An empty result is not an error.
func ListWebsites(filter WebsiteFilter, limit int) ([]models.Website, error) {
	websites := []models.Website{}

	query := app.DB().Model(&models.Website{})

	if len(filter.Module) > 0 {
		query = query.Where("module = ?", filter.Module)
	}

	if len(filter.Status) > 0 {
		query = query.Where("status = ?", filter.Status)
	}

	if len(filter.Assignee) > 0 {
		query = query.Where("assignee = ?", filter.Assignee)
	}

	if filter.MinDA != nil {
		query = query.Where("da >= ?", *filter.MinDA)
	}

	if filter.MaxDA != nil {
		query = query.Where("da <= ?", *filter.MaxDA)
	}

	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Order("id asc").Find(&websites).Error; err != nil {
		sentry.CaptureException(err)
		slog.Error(fmt.Sprintf("Could not list websites: %v", err))
		return nil, err
	}

	return websites, nil
}

// applyFields copies the known attributes present in the payload onto the
// record. The reserved "action" key and anything unknown is ignored. Numeric
// fields coerce to integers or null, date fields to calendar dates or null.
func applyFields(website *models.Website, fields map[string]any) {
	for name, raw := range fields {
		switch name {
		case "website":
			if s, ok := raw.(string); ok {
				website.Website = s
			}
		case "contact_name":
			website.ContactName = toStringField(raw)
		case "contact_email":
			website.ContactEmail = toStringField(raw)
		case "module":
			website.Module = toStringField(raw)
		case "traffic":
			website.Traffic = toIntField(raw)
		case "da":
			website.DA = toIntField(raw)
		case "status":
			website.Status = toStringField(raw)
		case "outreach_count":
			if n := toIntField(raw); n != nil {
				website.OutreachCount = *n
			}
		case "last_contacted":
			website.LastContacted = toDateField(raw)
		case "next_followup":
			website.NextFollowup = toDateField(raw)
		case "assignee":
			website.Assignee = toStringField(raw)
		case "notes":
			website.Notes = toStringField(raw)
		case "source":
			website.Source = toStringField(raw)
		case "created_by":
			website.CreatedBy = toStringField(raw)
		}
	}
}

func toStringField(raw any) *string {
	s, ok := raw.(string)
	if !ok {
		return nil
	}

	return &s
}

func toIntField(raw any) *int {
	switch v := raw.(type) {
	case float64:
		n := int(v)
		return &n
	case int:
		return &v
	case string:
		return utils.ToIntPtr(v)
	default:
		return nil
	}
}

func toDateField(raw any) *time.Time {
	s, ok := raw.(string)
	if !ok {
		return nil
	}

	if d := utils.ToDatePtr(s); d != nil {
		return d
	}

	// Full timestamps are accepted too, reduced to the calendar day in the
	// configured timezone.
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.In(utils.DefaultLocation())
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		return &d
	}

	return nil
}
