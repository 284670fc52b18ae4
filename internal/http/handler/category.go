package handler

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"scriptum/internal/model"
	"scriptum/internal/service"
)

const categoryEntity = "category"

// CreateCategory handles POST /api/categories.
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body model.Category true "category without id"
// @Success 201 {object} model.Category
// @Failure 400 {object} errorPayload
// @Router /api/categories [post]
func CreateCategory(svc service.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.Category
		if err := parseBody(c, &in); err != nil {
			return writeRequestError(c, err)
		}
		out, err := svc.Create(c.UserContext(), &in)
		if err != nil {
			return writeServiceError(c, err, categoryEntity)
		}
		c.Location("/api/categories/" + out.ID)
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// UpdateCategory handles PUT /api/categories. The id travels in the body.
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body model.Category true "category with id"
// @Success 200 {object} model.Category
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/categories [put]
func UpdateCategory(svc service.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.Category
		if err := parseBody(c, &in); err != nil {
			return writeRequestError(c, err)
		}
		if err := checkBodyID(in.ID); err != nil {
			return writeRequestError(c, err)
		}
		out, err := svc.Update(c.UserContext(), &in)
		if err != nil {
			return writeServiceError(c, err, categoryEntity)
		}
		return c.JSON(out)
	}
}

// ListCategories handles GET /api/categories?limit=&offset=.
// @Summary List categories
// @Tags categories
// @Produce json
// @Param limit query int false "page size" default(20)
// @Param offset query int false "items to skip" default(0)
// @Success 200 {object} service.ListResult[model.Category]
// @Header 200 {integer} X-Total-Count "total number of categories"
// @Router /api/categories [get]
func ListCategories(svc service.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := page(c)
		if err != nil {
			return writeRequestError(c, err)
		}
		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err, categoryEntity)
		}
		c.Set(totalCountHeader, strconv.Itoa(res.Total))
		return c.JSON(res)
	}
}

// GetCategory handles GET /api/categories/:id.
// @Summary Get a category
// @Tags categories
// @Produce json
// @Param id path string true "category id"
// @Success 200 {object} model.Category
// @Failure 404 {object} errorPayload
// @Router /api/categories/{id} [get]
func GetCategory(svc service.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return writeRequestError(c, err)
		}
		out, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, categoryEntity)
		}
		return c.JSON(out)
	}
}

// DeleteCategory handles DELETE /api/categories/:id. Documents of the category stay, uncategorized.
// @Summary Delete a category
// @Tags categories
// @Param id path string true "category id"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /api/categories/{id} [delete]
func DeleteCategory(svc service.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return writeRequestError(c, err)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err, categoryEntity)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// AddCategoryDocument handles POST /api/categories/:id/documents/:documentId.
// @Summary File a document under a category
// @Tags categories
// @Produce json
// @Param id path string true "category id"
// @Param documentId path string true "document id"
// @Success 200 {object} model.Category
// @Failure 404 {object} errorPayload
// @Router /api/categories/{id}/documents/{documentId} [post]
func AddCategoryDocument(svc service.CategoryService) fiber.Handler {
	return categoryMembership(svc.AddDocument)
}

// RemoveCategoryDocument handles DELETE /api/categories/:id/documents/:documentId.
// @Summary Take a document out of a category
// @Tags categories
// @Produce json
// @Param id path string true "category id"
// @Param documentId path string true "document id"
// @Success 200 {object} model.Category
// @Failure 404 {object} errorPayload
// @Router /api/categories/{id}/documents/{documentId} [delete]
func RemoveCategoryDocument(svc service.CategoryService) fiber.Handler {
	return categoryMembership(svc.RemoveDocument)
}

func categoryMembership(op func(ctx context.Context, categoryID, documentID string) (*model.Category, error)) fiber.Handler {
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
			return writeServiceError(c, err, categoryEntity+" or document")
		}
		return c.JSON(out)
	}
}
