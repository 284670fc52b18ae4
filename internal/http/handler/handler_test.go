package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"scriptum/internal/model"
	"scriptum/internal/repository"
	"scriptum/internal/service"
	serviceMocks "scriptum/internal/service/mocks"
)

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var body errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp).Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{service.ErrIDExists, http.StatusBadRequest, "ID_EXISTS"},
		{service.ErrIDRequired, http.StatusBadRequest, "ID_NULL"},
		{service.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{service.ErrNoBlob, http.StatusNotFound, "NO_BLOB"},
		{service.ErrNameRequired, http.StatusBadRequest, "VALIDATION_ERROR"},
		{service.ErrLinkRequired, http.StatusBadRequest, "VALIDATION_ERROR"},
		{errors.Join(errors.New("db save failed"), repository.ErrInvalidReference), http.StatusBadRequest, "INVALID_REFERENCE"},
		{service.ErrNotAuthenticated, http.StatusUnauthorized, "NOT_AUTHENTICATED"},
		{errors.New("pq: connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return writeServiceError(c, tt.err, "thing") })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			body := decodeError(t, resp)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.NotContains(t, body.Error.Message, "pq:")
		})
	}
}

func TestCreateCategory(t *testing.T) {
	mockSvc := new(serviceMocks.MockCategoryService)
	app := fiber.New()
	app.Post("/api/categories", CreateCategory(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("Create", mock.Anything, &model.Category{Name: "Invoices"}).
			Return(&model.Category{ID: id, Name: "Invoices"}, nil).Once()

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/categories", `{"name":"Invoices"}`))
		require.NoError(t, err)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "/api/categories/"+id, resp.Header.Get("Location"))
		var got model.Category
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, id, got.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("id already set", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.Anything).Return(nil, service.ErrIDExists).Once()

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/categories", `{"id":"`+uuid.NewString()+`","name":"x"}`))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "ID_EXISTS", decodeError(t, resp).Error.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/categories", `{"name":`))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "BAD_REQUEST", decodeError(t, resp).Error.Code)
	})
}

func TestUpdateCategory(t *testing.T) {
	mockSvc := new(serviceMocks.MockCategoryService)
	app := fiber.New()
	app.Put("/api/categories", UpdateCategory(mockSvc))

	t.Run("missing id", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, &model.Category{Name: "x"}).Return(nil, service.ErrIDRequired).Once()

		resp, err := app.Test(jsonRequest(http.MethodPut, "/api/categories", `{"name":"x"}`))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "ID_NULL", decodeError(t, resp).Error.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPut, "/api/categories", `{"id":"nope","name":"x"}`))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("Update", mock.Anything, &model.Category{ID: id, Name: "x"}).Return(nil, service.ErrNotFound).Once()

		resp, err := app.Test(jsonRequest(http.MethodPut, "/api/categories", `{"id":"`+id+`","name":"x"}`))
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})
}

func TestListCategories(t *testing.T) {
	mockSvc := new(serviceMocks.MockCategoryService)
	app := fiber.New()
	app.Get("/api/categories", ListCategories(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, 10, 20).Return(&service.ListResult[model.Category]{
			Items: []model.Category{{ID: uuid.NewString(), Name: "a", DocumentIDs: model.NewIDSet("d2", "d1")}},
			Total: 21,
		}, nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/categories?limit=10&offset=20", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "21", resp.Header.Get("X-Total-Count"))
		var body struct {
			Data []struct {
				DocumentIDs []string `json:"document_ids"`
			} `json:"data"`
			Total int `json:"total"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, 21, body.Total)
		assert.Equal(t, []string{"d1", "d2"}, body.Data[0].DocumentIDs)
		mockSvc.AssertExpectations(t)
	})

	t.Run("defaults are left to the service", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, 0, 0).Return(&service.ListResult[model.Category]{Items: []model.Category{}}, nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/categories", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid limit", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/categories?limit=abc", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_LIMIT", decodeError(t, resp).Error.Code)
	})

	t.Run("invalid offset", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/categories?offset=-x", nil))
		require.NoError(t, err)

		assert.Equal(t, "INVALID_OFFSET", decodeError(t, resp).Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, 0, 0).Return(nil, errors.New("service error")).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/categories", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestGetAndDeleteTag(t *testing.T) {
	mockSvc := new(serviceMocks.MockTagService)
	app := fiber.New()
	app.Get("/api/tags/:id", GetTag(mockSvc))
	app.Delete("/api/tags/:id", DeleteTag(mockSvc))

	id := uuid.NewString()
	missing := uuid.NewString()
	mockSvc.On("Get", mock.Anything, id).Return(&model.Tag{ID: id, Name: "urgent"}, nil)
	mockSvc.On("Get", mock.Anything, missing).Return(nil, service.ErrNotFound)
	mockSvc.On("Delete", mock.Anything, id).Return(nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/tags/"+id, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.NotContains(t, string(body), "document_ids")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/tags/"+missing, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/tags/invalid-uuid", nil))
	require.NoError(t, err)
	assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/api/tags/"+id, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	mockSvc.AssertExpectations(t)
}

func TestTagMembership(t *testing.T) {
	mockSvc := new(serviceMocks.MockTagService)
	app := fiber.New()
	app.Post("/api/tags/:id/documents/:documentId", AddTagDocument(mockSvc))
	app.Delete("/api/tags/:id/documents/:documentId", RemoveTagDocument(mockSvc))

	tagID, docID := uuid.NewString(), uuid.NewString()

	t.Run("add", func(t *testing.T) {
		mockSvc.On("AddDocument", mock.Anything, tagID, docID).
			Return(&model.Tag{ID: tagID, DocumentIDs: model.NewIDSet(docID)}, nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/tags/"+tagID+"/documents/"+docID, nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("remove unknown document", func(t *testing.T) {
		mockSvc.On("RemoveDocument", mock.Anything, tagID, docID).Return(nil, service.ErrNotFound).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/tags/"+tagID+"/documents/"+docID, nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid document id", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/tags/"+tagID+"/documents/x", nil))
		require.NoError(t, err)

		assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
	})
}

func TestCategoryMembership(t *testing.T) {
	mockSvc := new(serviceMocks.MockCategoryService)
	app := fiber.New()
	app.Post("/api/categories/:id/documents/:documentId", AddCategoryDocument(mockSvc))

	catID, docID := uuid.NewString(), uuid.NewString()
	mockSvc.On("AddDocument", mock.Anything, catID, docID).
		Return(&model.Category{ID: catID, DocumentIDs: model.NewIDSet(docID)}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/categories/"+catID+"/documents/"+docID, nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got model.Category
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.True(t, got.DocumentIDs.Has(docID))
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	RegisterRoutes(app, nil, Services{
		Documents:  new(serviceMocks.MockDocumentService),
		Categories: new(serviceMocks.MockCategoryService),
		Tags:       new(serviceMocks.MockTagService),
		Drive:      new(serviceMocks.MockDriveService),
		Docs:       new(serviceMocks.MockDocsService),
	})

	t.Run("not found route", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/non-existent", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/health", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, resp).Error.Code)
	})

	t.Run("collection path without trailing slash", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/tags", `{`))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
