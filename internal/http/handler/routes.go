package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"scriptum/internal/service"
)

// Services bundles what the routes depend on.
type Services struct {
	Documents  service.DocumentService
	Categories service.CategoryService
	Tags       service.TagService
	Drive      service.DriveService
	Docs       service.DocsService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, s Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")

	categories := api.Group("/categories")
	categories.Post("/", CreateCategory(s.Categories))
	categories.Put("/", UpdateCategory(s.Categories))
	categories.Get("/", ListCategories(s.Categories))
	categories.Get("/:id", GetCategory(s.Categories))
	categories.Delete("/:id", DeleteCategory(s.Categories))
	categories.Post("/:id/documents/:documentId", AddCategoryDocument(s.Categories))
	categories.Delete("/:id/documents/:documentId", RemoveCategoryDocument(s.Categories))

	tags := api.Group("/tags")
	tags.Post("/", CreateTag(s.Tags))
	tags.Put("/", UpdateTag(s.Tags))
	tags.Get("/", ListTags(s.Tags))
	tags.Get("/:id", GetTag(s.Tags))
	tags.Delete("/:id", DeleteTag(s.Tags))
	tags.Post("/:id/documents/:documentId", AddTagDocument(s.Tags))
	tags.Delete("/:id/documents/:documentId", RemoveTagDocument(s.Tags))

	documents := api.Group("/documents")
	documents.Post("/", CreateDocument(s.Documents))
	documents.Put("/", UpdateDocument(s.Documents))
	documents.Get("/", ListDocuments(s.Documents))
	documents.Get("/:id", GetDocument(s.Documents))
	documents.Delete("/:id", DeleteDocument(s.Documents))

	appDocuments := api.Group("/app-documents")
	appDocuments.Post("/", CreateAppDocument(s.Documents))
	appDocuments.Put("/", UpdateAppDocument(s.Documents))
	appDocuments.Get("/", ListAppDocuments(s.Documents))
	appDocuments.Get("/:id", GetAppDocument(s.Documents))
	appDocuments.Get("/:id/blob-url", GetDocumentBlobURL(s.Documents))
	appDocuments.Delete("/:id", DeleteDocument(s.Documents))

	drive := app.Group("/google/drive")
	drive.Get("/sign-in", DriveSignIn(s.Drive))
	drive.Get("/oauth/callback", DriveCallback(s.Drive))
	drive.Get("/logout", DriveLogout(s.Drive))
	drive.Get("/status", DriveStatus(s.Drive))
	drive.Post("/upload", DriveUpload(s.Drive))

	app.Get("/google/docs/:id/text", DocsText(s.Docs))
}
