package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
)

const totalCountHeader = "X-Total-Count"

// requestError is a client mistake found while reading the request.
type requestError struct {
	code    string
	message string
}

func (e *requestError) Error() string { return e.message }

var (
	errInvalidID     = &requestError{code: "INVALID_ID", message: "invalid id format"}
	errInvalidLimit  = &requestError{code: "INVALID_LIMIT", message: "invalid limit"}
	errInvalidOffset = &requestError{code: "INVALID_OFFSET", message: "invalid offset"}
	errInvalidBody   = &requestError{code: "BAD_REQUEST", message: "invalid request body"}
)

// writeRequestError answers 400 for a requestError. Anything else counts as an unreadable body.
func writeRequestError(c *fiber.Ctx, err error) error {
	var re *requestError
	if !errors.As(err, &re) {
		re = errInvalidBody
	}
	return writeError(c, fiber.StatusBadRequest, re.code, re.message)
}

// pathID returns a copy of the named path parameter after checking it is a
// UUID. Fiber reuses the buffer behind c.Params once the request ends.
func pathID(c *fiber.Ctx, name string) (string, error) {
	id := c.Params(name)
	if _, err := uuid.Parse(id); err != nil {
		return "", errInvalidID
	}
	return utils.CopyString(id), nil
}

// checkBodyID validates an id carried in a request body. Empty ids are left to the service.
func checkBodyID(id string) error {
	if id == "" {
		return nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return errInvalidID
	}
	return nil
}

// page reads the limit and offset query parameters. Missing values stay zero
// and get the service defaults.
func page(c *fiber.Ctx) (limit, offset int, err error) {
	if s := c.Query("limit"); s != "" {
		if limit, err = strconv.Atoi(s); err != nil {
			return 0, 0, errInvalidLimit
		}
	}
	if s := c.Query("offset"); s != "" {
		if offset, err = strconv.Atoi(s); err != nil {
			return 0, 0, errInvalidOffset
		}
	}
	return limit, offset, nil
}

// parseBody decodes the JSON body into v.
func parseBody(c *fiber.Ctx, v any) error {
	if err := c.BodyParser(v); err != nil {
		return errInvalidBody
	}
	return nil
}
