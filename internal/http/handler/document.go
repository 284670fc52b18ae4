package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"scriptum/internal/model"
	"scriptum/internal/service"
)

const documentEntity = "document"

// The app-documents resource exposes documents with their category and tags.

// CreateAppDocument handles POST /api/app-documents.
// @Summary Create a document
// @Tags app-documents
// @Accept json
// @Produce json
// @Param document body model.AppDocument true "document without id"
// @Success 201 {object} model.AppDocument
// @Failure 400 {object} errorPayload
// @Router /api/app-documents [post]
func CreateAppDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.AppDocument
		if err := parseBody(c, &in); err != nil {
			return writeRequestError(c, err)
		}
		out, err := svc.Create(c.UserContext(), &in)
		if err != nil {
			return writeServiceError(c, err, documentEntity)
		}
		c.Location("/api/app-documents/" + out.ID)
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// UpdateAppDocument handles PUT /api/app-documents. Category and tags are replaced as sent.
// @Summary Update a document
// @Tags app-documents
// @Accept json
// @Produce json
// @Param document body model.AppDocument true "document with id"
// @Success 200 {object} model.AppDocument
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/app-documents [put]
func UpdateAppDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.AppDocument
		if err := parseBody(c, &in); err != nil {
			return writeRequestError(c, err)
		}
		if err := checkBodyID(in.ID); err != nil {
			return writeRequestError(c, err)
		}
		out, err := svc.Update(c.UserContext(), &in)
		if err != nil {
			return writeServiceError(c, err, documentEntity)
		}
		return c.JSON(out)
	}
}

// ListAppDocuments handles GET /api/app-documents. Blobs are left out of list items.
// @Summary List documents
// @Tags app-documents
// @Produce json
// @Param limit query int false "page size" default(20)
// @Param offset query int false "items to skip" default(0)
// @Success 200 {object} service.ListResult[model.AppDocument]
// @Header 200 {integer} X-Total-Count "total number of documents"
// @Router /api/app-documents [get]
func ListAppDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := listDocuments(c, svc)
		if err != nil || res == nil {
			return err
		}
		return c.JSON(res)
	}
}

// GetAppDocument handles GET /api/app-documents/:id.
// @Summary Get a document
// @Tags app-documents
// @Produce json
// @Param id path string true "document id"
// @Success 200 {object} model.AppDocument
// @Failure 404 {object} errorPayload
// @Router /api/app-documents/{id} [get]
func GetAppDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := getDocument(c, svc)
		if err != nil || doc == nil {
			return err
		}
		return c.JSON(doc)
	}
}

// GetDocumentBlobURL handles GET /api/app-documents/:id/blob-url.
// @Summary Get a short-lived download URL for the document blob
// @Tags app-documents
// @Produce json
// @Param id path string true "document id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errorPayload
// @Router /api/app-documents/{id}/blob-url [get]
func GetDocumentBlobURL(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return writeRequestError(c, err)
		}
		u, err := svc.BlobURL(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, documentEntity)
		}
		return c.JSON(fiber.Map{"url": u})
	}
}

// DeleteDocument handles DELETE on both document resources.
// @Summary Delete a document and its blob
// @Tags app-documents
// @Param id path string true "document id"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /api/app-documents/{id} [delete]
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return writeRequestError(c, err)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err, documentEntity)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// The documents resource is the plain view: content, link and blob only.

// CreateDocument handles POST /api/documents.
// @Summary Create a plain document
// @Tags documents
// @Accept json
// @Produce json
// @Param document body model.Document true "document without id"
// @Success 201 {object} model.Document
// @Failure 400 {object} errorPayload
// @Router /api/documents [post]
func CreateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.Document
		if err := parseBody(c, &in); err != nil {
			return writeRequestError(c, err)
		}
		out, err := svc.Create(c.UserContext(), &model.AppDocument{Document: in})
		if err != nil {
			return writeServiceError(c, err, documentEntity)
		}
		c.Location("/api/documents/" + out.ID)
		return c.Status(fiber.StatusCreated).JSON(out.Document)
	}
}

// UpdateDocument handles PUT /api/documents. Category and tags are kept.
// @Summary Update a plain document
// @Tags documents
// @Accept json
// @Produce json
// @Param document body model.Document true "document with id"
// @Success 200 {object} model.Document
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/documents [put]
func UpdateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.Document
		if err := parseBody(c, &in); err != nil {
			return writeRequestError(c, err)
		}
		if err := checkBodyID(in.ID); err != nil {
			return writeRequestError(c, err)
		}
		out, err := svc.UpdateFields(c.UserContext(), &in)
		if err != nil {
			return writeServiceError(c, err, documentEntity)
		}
		return c.JSON(out)
	}
}

// ListDocuments handles GET /api/documents.
// @Summary List plain documents
// @Tags documents
// @Produce json
// @Param limit query int false "page size" default(20)
// @Param offset query int false "items to skip" default(0)
// @Success 200 {object} service.ListResult[model.Document]
// @Header 200 {integer} X-Total-Count "total number of documents"
// @Router /api/documents [get]
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := listDocuments(c, svc)
		if err != nil || res == nil {
			return err
		}
		plain := make([]model.Document, len(res.Items))
		for i := range res.Items {
			plain[i] = res.Items[i].Document
		}
		return c.JSON(service.ListResult[model.Document]{Items: plain, Total: res.Total})
	}
}

// GetDocument handles GET /api/documents/:id.
// @Summary Get a plain document
// @Tags documents
// @Produce json
// @Param id path string true "document id"
// @Success 200 {object} model.Document
// @Failure 404 {object} errorPayload
// @Router /api/documents/{id} [get]
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := getDocument(c, svc)
		if err != nil || doc == nil {
			return err
		}
		return c.JSON(doc.Document)
	}
}

// listDocuments runs the paged query and sets X-Total-Count. A nil result
// means an error response has been written.
func listDocuments(c *fiber.Ctx, svc service.DocumentService) (*service.ListResult[model.AppDocument], error) {
	limit, offset, err := page(c)
	if err != nil {
		return nil, writeRequestError(c, err)
	}
	res, err := svc.List(c.UserContext(), limit, offset)
	if err != nil {
		return nil, writeServiceError(c, err, documentEntity)
	}
	c.Set(totalCountHeader, strconv.Itoa(res.Total))
	return res, nil
}

// getDocument loads the document named by :id. A nil document means an
// error response has been written.
func getDocument(c *fiber.Ctx, svc service.DocumentService) (*model.AppDocument, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, writeRequestError(c, err)
	}
	doc, err := svc.Get(c.UserContext(), id)
	if err != nil {
		return nil, writeServiceError(c, err, documentEntity)
	}
	return doc, nil
}
