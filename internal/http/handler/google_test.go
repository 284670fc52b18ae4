package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"scriptum/internal/service"
	serviceMocks "scriptum/internal/service/mocks"
)

func TestDriveSignInAndCallback(t *testing.T) {
	mockSvc := new(serviceMocks.MockDriveService)
	app := fiber.New()
	app.Get("/google/drive/sign-in", DriveSignIn(mockSvc))
	app.Get("/google/drive/oauth/callback", DriveCallback(mockSvc))

	var state string
	mockSvc.On("SignInURL", mock.Anything).Run(func(args mock.Arguments) {
		state = args.String(0)
	}).Return("https://accounts.google.com/o/oauth2/auth?access_type=offline")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/google/drive/sign-in", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://accounts.google.com/o/oauth2/auth?access_type=offline", resp.Header.Get("Location"))
	require.NotEmpty(t, state)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == oauthStateCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, state, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	t.Run("matching state", func(t *testing.T) {
		mockSvc.On("Callback", mock.Anything, "code-1").Return(nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/google/drive/oauth/callback?code=code-1&state="+url.QueryEscape(state), nil)
		req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: state})
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]bool
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body["authenticated"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("state mismatch", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/google/drive/oauth/callback?code=code-1&state=forged", nil)
		req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: state})
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_STATE", decodeError(t, resp).Error.Code)
	})

	t.Run("missing code", func(t *testing.T) {
		mockSvc.On("Callback", mock.Anything, "").Return(service.ErrCodeRequired).Once()

		req := httptest.NewRequest(http.MethodGet, "/google/drive/oauth/callback?state="+url.QueryEscape(state), nil)
		req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: state})
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", decodeError(t, resp).Error.Code)
	})
}

func TestDriveLogoutAndStatus(t *testing.T) {
	mockSvc := new(serviceMocks.MockDriveService)
	app := fiber.New()
	app.Get("/google/drive/logout", DriveLogout(mockSvc))
	app.Get("/google/drive/status", DriveStatus(mockSvc))

	mockSvc.On("Logout", mock.Anything).Return(nil)
	mockSvc.On("Status", mock.Anything).Return(false)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/google/drive/logout", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/google/drive/status", nil))
	require.NoError(t, err)
	var body map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body["authenticated"])
}

func multipartFile(t *testing.T, name, contentType, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestDriveUpload(t *testing.T) {
	mockSvc := new(serviceMocks.MockDriveService)
	app := fiber.New()
	app.Post("/google/drive/upload", DriveUpload(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Upload", mock.Anything, "notes.txt", "text/plain", mock.Anything).Return("file-123", nil).Once()

		body, ct := multipartFile(t, "notes.txt", "text/plain", "hello drive")
		req := httptest.NewRequest(http.MethodPost, "/google/drive/upload", body)
		req.Header.Set("Content-Type", ct)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var got map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "file-123", got["id"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/google/drive/upload", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "FILE_REQUIRED", decodeError(t, resp).Error.Code)
	})

	t.Run("not signed in", func(t *testing.T) {
		mockSvc.On("Upload", mock.Anything, "a.pdf", "application/pdf", mock.Anything).Return("", service.ErrNotAuthenticated).Once()

		body, ct := multipartFile(t, "a.pdf", "application/pdf", "%PDF")
		req := httptest.NewRequest(http.MethodPost, "/google/drive/upload", body)
		req.Header.Set("Content-Type", ct)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "NOT_AUTHENTICATED", decodeError(t, resp).Error.Code)
	})
}

func TestDocsText(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocsService)
	app := fiber.New()
	app.Get("/google/docs/:id/text", DocsText(mockSvc))

	mockSvc.On("ExtractText", mock.Anything, "1AbC").Return("Hello, World!", nil)
	mockSvc.On("ExtractText", mock.Anything, "gone").Return("", service.ErrNotFound)
	mockSvc.On("ExtractText", mock.Anything, "boom").Return("", errors.New("upstream 500"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/google/docs/1AbC/text", nil))
	require.NoError(t, err)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Hello, World!", body["text"])
	assert.Equal(t, "1AbC", body["document_id"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/google/docs/gone/text", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/google/docs/boom/text", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, decodeError(t, resp).Error.Message, "upstream")
}

func TestDocsText_IDOutlivesRequest(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocsService)
	app := fiber.New()
	app.Get("/google/docs/:id/text", DocsText(mockSvc))

	var seen []string
	mockSvc.On("ExtractText", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { seen = append(seen, args.String(1)) }).
		Return("text", nil)

	for _, id := range []string{"docAAAA", "docBBBB"} {
		_, err := app.Test(httptest.NewRequest(http.MethodGet, "/google/docs/"+id+"/text", nil))
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"docAAAA", "docBBBB"}, seen)
}
