package helpers

import (
	"fmt"
	"log/slog"
	"strings"

	"alfredoramos.mx/outreach-tracker/app"
	"alfredoramos.mx/outreach-tracker/models"
	"alfredoramos.mx/outreach-tracker/utils"
)

// FindDuplicates reports existing records sharing the apex domain of the
// given website value. Duplicates are surfaced, never rejected: the same
// domain may legitimately be prospected under more than one engagement.
func FindDuplicates(website string, excludeID uint) []models.Website {
	apex, err := utils.GetApexDomain(website)
	if err != nil || len(apex) < 1 {
		return []models.Website{}
	}

	candidates := []models.Website{}

	query := app.DB().Model(&models.Website{}).Where("website LIKE ?", "%"+apex+"%")

	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}

	if err := query.Order("id asc").Find(&candidates).Error; err != nil {
		slog.Error(fmt.Sprintf("Could not check for duplicates: %v", err))
		return []models.Website{}
	}

	duplicates := []models.Website{}

	for _, c := range candidates {
		candidateApex, err := utils.GetApexDomain(c.Website)
		if err != nil {
			continue
		}

		if strings.EqualFold(apex, candidateApex) {
			duplicates = append(duplicates, c)
		}
	}

	return duplicates
}
