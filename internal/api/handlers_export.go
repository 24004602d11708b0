package api

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"time"

	"github.com/HarshitaThota/Flow-State/internal/models"
	"github.com/HarshitaThota/Flow-State/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) exportUserAndRange(c *fiber.Ctx) (*models.User, *time.Time, *time.Time, error) {
	user, ok := currentUser(c)
	if !ok {
		return nil, nil, nil, errMissingToken
	}
	from, to, err := services.ParseExportRange(c.Query("from"), c.Query("to"), handler.location)
	if err != nil {
		return nil, nil, nil, err
	}
	return user, from, to, nil
}

func (handler *Handler) respondExportError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errMissingToken) {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return handler.respondServiceError(c, err)
}

func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	user, from, to, err := handler.exportUserAndRange(c)
	if err != nil {
		return handler.respondExportError(c, err)
	}

	summary, err := handler.exportService.BuildSummary(user.ID, from, to)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(summary)
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	user, from, to, err := handler.exportUserAndRange(c)
	if err != nil {
		return handler.respondExportError(c, err)
	}

	rows, err := handler.exportService.BuildEnergyCSVRows(user.ID, from, to)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(services.EnergyCSVHeaders); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}
	if err := writer.WriteAll(rows); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	setExportAttachmentHeaders(c, "text/csv", services.ExportFilename(handler.now(), handler.location, "csv"))
	return c.Send(output.Bytes())
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	user, from, to, err := handler.exportUserAndRange(c)
	if err != nil {
		return handler.respondExportError(c, err)
	}

	now := handler.now()
	bundle, err := handler.exportService.BuildBundle(*user, from, to, now)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	serialized, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	setExportAttachmentHeaders(c, fiber.MIMEApplicationJSON, services.ExportFilename(now, handler.location, "json"))
	return c.Send(serialized)
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
}
