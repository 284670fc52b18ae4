package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"

	"scriptum/internal/service"
)

const (
	oauthStateCookie = "google_oauth_state"
	driveEntity      = "drive file"
)

// DriveSignIn redirects to the Google consent page.
// @Summary Start Google sign-in
// @Tags google
// @Success 302
// @Router /google/drive/sign-in [get]
func DriveSignIn(svc service.DriveService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state := uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     oauthStateCookie,
			Value:    state,
			Path:     "/google/drive",
			Expires:  time.Now().Add(10 * time.Minute),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return c.Redirect(svc.SignInURL(state), fiber.StatusFound)
	}
}

// DriveCallback completes sign-in. The state must match the cookie set by DriveSignIn.
// @Summary Google OAuth callback
// @Tags google
// @Produce json
// @Param code query string true "authorization code"
// @Param state query string true "state issued at sign-in"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} errorPayload
// @Router /google/drive/oauth/callback [get]
func DriveCallback(svc service.DriveService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if state := c.Cookies(oauthStateCookie); state == "" || state != c.Query("state") {
			return writeError(c, fiber.StatusBadRequest, "INVALID_STATE", "oauth state mismatch")
		}
		if err := svc.Callback(c.UserContext(), c.Query("code")); err != nil {
			return writeServiceError(c, err, driveEntity)
		}
		c.ClearCookie(oauthStateCookie)
		return c.JSON(fiber.Map{"authenticated": true})
	}
}

// DriveLogout forgets the stored Google token.
// @Summary Sign out of Google
// @Tags google
// @Success 204
// @Router /google/drive/logout [get]
func DriveLogout(svc service.DriveService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Logout(c.UserContext()); err != nil {
			return writeServiceError(c, err, driveEntity)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DriveStatus reports whether a refreshable Google token is stored.
// @Summary Google sign-in status
// @Tags google
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /google/drive/status [get]
func DriveStatus(svc service.DriveService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"authenticated": svc.Status(c.UserContext())})
	}
}

// DriveUpload stores the multipart field "file" in Google Drive.
// @Summary Upload a file to Google Drive
// @Tags google
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "file to upload"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errorPayload
// @Failure 401 {object} errorPayload
// @Router /google/drive/upload [post]
func DriveUpload(svc service.DriveService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		id, err := svc.Upload(c.UserContext(), fh.Filename, fh.Header.Get("Content-Type"), f)
		if err != nil {
			return writeServiceError(c, err, driveEntity)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
	}
}

// DocsText returns the plain text of a Google Docs document.
// @Summary Extract the text of a Google Docs document
// @Tags google
// @Produce json
// @Param id path string true "google docs document id"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /google/docs/{id}/text [get]
func DocsText(svc service.DocsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// The id outlives the request as a cache key.
		id := utils.CopyString(c.Params("id"))
		text, err := svc.ExtractText(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, "google document")
		}
		return c.JSON(fiber.Map{"document_id": id, "text": text})
	}
}
