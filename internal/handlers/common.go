package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// FieldErrors collects per-field validation messages for 400 responses.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func validationFail(c *fiber.Ctx, message string, errs FieldErrors) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": message,
		"errors":  errs,
	})
}

func currentUserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("userId").(uint)
	return id, ok && id != 0
}

func currentUserType(c *fiber.Ctx) string {
	t, _ := c.Locals("userType").(string)
	return t
}

// paramID parses a numeric path parameter. Non-numeric input is a
// request-shape error, not a lookup miss.
func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
