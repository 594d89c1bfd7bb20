package api

import (
	"context"

	"sahayak/catalog"
	"sahayak/store"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	downloadStore store.DBStorer
}

func NewCatalogHandler(downloadStore store.DBStorer) *CatalogHandler {
	return &CatalogHandler{
		downloadStore: downloadStore,
	}
}

func (h *CatalogHandler) HandleClasses(c *fiber.Ctx) error {
	return c.JSON(catalog.ClassOptions)
}

func (h *CatalogHandler) HandleSubjectsForClass(c *fiber.Ctx) error {
	return c.JSON(catalog.SubjectsForClass(c.Params("classID")))
}

// HandleDownloads lists the content-download queue the loader service keeps
// up to date in Postgres.
func (h *CatalogHandler) HandleDownloads(c *fiber.Ctx) error {
	items, err := h.downloadStore.ListDownloads(context.Background())
	if err != nil {
		return err
	}
	return c.JSON(items)
}
