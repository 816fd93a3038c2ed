package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"alfredoramos.mx/outreach-tracker/helpers"
	"alfredoramos.mx/outreach-tracker/utils"
	"github.com/gofiber/fiber/v2"
)

// ActingUser identifies who performed a mutation for activity attribution.
// The presentation layer sends it per request; there is no authentication.
func ActingUser(c *fiber.Ctx) string {
	user := utils.CleanString(c.Get("X-Acting-User"))

	if len(user) < 1 {
		user = utils.CleanString(c.Query("user"))
	}

	return user
}

func websiteID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("The requested website is invalid.")
	}

	return uint(id), nil
}

func PostWebsite(c *fiber.Ctx) error {
	fields := map[string]any{}
	if err := c.BodyParser(&fields); err != nil {
		slog.Error(fmt.Sprintf("Error parsing input data: %v", err))
		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": []string{"Invalid website data."},
		})
	}

	website, err := helpers.CreateWebsite(fields, ActingUser(c))
	if err != nil {
		if errors.Is(err, helpers.ErrWebsiteRequired) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(&fiber.Map{
				"error": []string{err.Error()},
			})
		}

		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": []string{"Could not create the website."},
		})
	}

	duplicates := helpers.FindDuplicates(website.Website, website.ID)

	return c.Status(fiber.StatusCreated).JSON(&fiber.Map{
		"data":       website,
		"duplicates": duplicates,
	})
}

func PostUpdateWebsite(c *fiber.Ctx) error {
	id, err := websiteID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": []string{err.Error()},
		})
	}

	fields := map[string]any{}
	if err := c.BodyParser(&fields); err != nil {
		slog.Error(fmt.Sprintf("Error parsing input data: %v", err))
		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": []string{"Invalid website data."},
		})
	}

	// The action label rides inside the payload for backwards compatibility
	// with older clients. It is lifted out here and never persisted.
	action := ""

	if raw, ok := fields["action"]; ok {
		if s, ok := raw.(string); ok {
			action = s
		}

		delete(fields, "action")
	}

	website, err := helpers.UpdateWebsite(id, fields, action, ActingUser(c))
	if err != nil {
		if errors.Is(err, helpers.ErrWebsiteNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(&fiber.Map{
				"error": []string{err.Error()},
			})
		}

		if errors.Is(err, helpers.ErrWebsiteRequired) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(&fiber.Map{
				"error": []string{err.Error()},
			})
		}

		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": []string{"Could not update the website."},
		})
	}

	return c.Status(fiber.StatusOK).JSON(&fiber.Map{"data": website})
}

func GetAllWebsites(c *fiber.Ctx) error {
	filter := helpers.WebsiteFilter{
		Module:   utils.CleanString(c.Query("module")),
		Status:   utils.CleanString(c.Query("status")),
		Assignee: utils.CleanString(c.Query("assignee")),
		MinDA:    utils.ToIntPtr(c.Query("min_da")),
		MaxDA:    utils.ToIntPtr(c.Query("max_da")),
	}

	websites, err := helpers.ListWebsites(filter, utils.ListLimit(c.Query("limit")))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": []string{"Could not list websites."},
		})
	}

	return c.Status(fiber.StatusOK).JSON(&fiber.Map{
		"data":  websites,
		"total": len(websites),
	})
}

func GetWebsite(c *fiber.Ctx) error {
	id, err := websiteID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": []string{err.Error()},
		})
	}

	website, err := helpers.GetWebsite(id)
	if err != nil {
		if errors.Is(err, helpers.ErrWebsiteNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(&fiber.Map{
				"error": []string{err.Error()},
			})
		}

		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": []string{"Could not get the website."},
		})
	}

	return c.Status(fiber.StatusOK).JSON(&fiber.Map{"data": website})
}

func GetWebsiteActivity(c *fiber.Ctx) error {
	id, err := websiteID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": []string{err.Error()},
		})
	}

	if _, err := helpers.GetWebsite(id); err != nil {
		if errors.Is(err, helpers.ErrWebsiteNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(&fiber.Map{
				"error": []string{err.Error()},
			})
		}

		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": []string{"Could not get the website."},
		})
	}

	limit := 0

	if n := utils.ToIntPtr(c.Query("limit")); n != nil && *n > 0 {
		limit = *n
	}

	entries, err := helpers.WebsiteActivity(id, limit)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": []string{"Could not get the activity log."},
		})
	}

	return c.Status(fiber.StatusOK).JSON(&fiber.Map{
		"data":  entries,
		"total": len(entries),
	})
}

func GetWebsiteStats(c *fiber.Ctx) error {
	summary, err := helpers.StatusSummary()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": []string{"Could not get website stats."},
		})
	}

	return c.Status(fiber.StatusOK).JSON(&fiber.Map{"data": summary})
}
