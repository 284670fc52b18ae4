package handler

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"scriptum/internal/model"
	"scriptum/internal/service"
)

const tagEntity = "tag"

// CreateTag handles POST /api/tags.
// @Summary Create a tag
// @Tags tags
// @Accept json
// @Produce json
// @Param tag body model.Tag true "tag without id"
// @Success 201 {object} model.Tag
// @Failure 400 {object} errorPayload
// @Router /api/tags [post]
func CreateTag(svc service.TagService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.Tag
		if err := parseBody(c, &in); err != nil {
			return writeRequestError(c, err)
		}
		out, err := svc.Create(c.UserContext(), &in)
		if err != nil {
			return writeServiceError(c, err, tagEntity)
		}
		c.Location("/api/tags/" + out.ID)
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// UpdateTag handles PUT /api/tags. The id travels in the body.
// @Summary Update a tag
// @Tags tags
// @Accept json
// @Produce json
// @Param tag body model.Tag true "tag with id"
// @Success 200 {object} model.Tag
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/tags [put]
func UpdateTag(svc service.TagService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.Tag
		if err := parseBody(c, &in); err != nil {
			return writeRequestError(c, err)
		}
		if err := checkBodyID(in.ID); err != nil {
			return writeRequestError(c, err)
		}
		out, err := svc.Update(c.UserContext(), &in)
		if err != nil {
			return writeServiceError(c, err, tagEntity)
		}
		return c.JSON(out)
	}
}

// ListTags handles GET /api/tags?limit=&offset=.
// @Summary List tags
// @Tags tags
// @Produce json
// @Param limit query int false "page size" default(20)
// @Param offset query int false "items to skip" default(0)
// @Success 200 {object} service.ListResult[model.Tag]
// @Header 200 {integer} X-Total-Count "total number of tags"
// @Router /api/tags [get]
func ListTags(svc service.TagService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := page(c)
		if err != nil {
			return writeRequestError(c, err)
		}
		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err, tagEntity)
		}
		c.Set(totalCountHeader, strconv.Itoa(res.Total))
		return c.JSON(res)
	}
}

// GetTag handles GET /api/tags/:id.
// @Summary Get a tag
// @Tags tags
// @Produce json
// @Param id path string true "tag id"
// @Success 200 {object} model.Tag
// @Failure 404 {object} errorPayload
// @Router /api/tags/{id} [get]
func GetTag(svc service.TagService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return writeRequestError(c, err)
		}
		out, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, tagEntity)
		}
		return c.JSON(out)
	}
}

// DeleteTag handles DELETE /api/tags/:id. Its document links go with it.
// @Summary Delete a tag
// @Tags tags
// @Param id path string true "tag id"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /api/tags/{id} [delete]
func DeleteTag(svc service.TagService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return writeRequestError(c, err)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err, tagEntity)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// AddTagDocument handles POST /api/tags/:id/documents/:documentId.
// @Summary Tag a document
// @Tags tags
// @Produce json
// @Param id path string true "tag id"
// @Param documentId path string true "document id"
// @Success 200 {object} model.Tag
// @Failure 404 {object} errorPayload
// @Router /api/tags/{id}/documents/{documentId} [post]
func AddTagDocument(svc service.TagService) fiber.Handler {
	return tagMembership(svc.AddDocument)
}

// RemoveTagDocument handles DELETE /api/tags/:id/documents/:documentId.
// @Summary Untag a document
// @Tags tags
// @Produce json
// @Param id path string true "tag id"
// @Param documentId path string true "document id"
// @Success 200 {object} model.Tag
// @Failure 404 {object} errorPayload
// @Router /api/tags/{id}/documents/{documentId} [delete]
func RemoveTagDocument(svc service.TagService) fiber.Handler {
	return tagMembership(svc.RemoveDocument)
}

func tagMembership(op func(ctx context.Context, tagID, documentID string) (*model.Tag, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return writeRequestError(c, err)
		}
		docID, err := pathID(c, "documentId")
		if err != nil {
			return writeRequestError(c, err)
		}
		out, err := op(c.UserContext(), id, docID)
		if err != nil {
			return writeServiceError(c, err, tagEntity+" or document")
		}
		return c.JSON(out)
	}
}
