package server

import (
	"errors"

	"incubator/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten signals that a helper already wrote the response.
// Handlers return nil when they see it.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{Limit: limit, Offset: offset}
}

// page slices xs according to p, never returning nil.
func page[T any](xs []T, p Pagination) []T {
	if p.Offset >= len(xs) {
		return []T{}
	}
	end := min(p.Offset+p.Limit, len(xs))
	return xs[p.Offset:end]
}

// orEmpty keeps empty collections rendering as [] rather than null.
func orEmpty[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}

// parseID reads a positive int64 route parameter. On failure it writes a 400
// and returns errResponseWritten.
func parseID(c *fiber.Ctx, param string) (int64, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+param))
		return 0, errResponseWritten
	}
	return int64(id), nil
}

// parseBody decodes the request body into dest, answering 400 on failure.
// An empty body leaves dest untouched.
func parseBody(c *fiber.Ctx, dest any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(dest); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			&models.AppError{Code: models.CodeValidation, Message: "Invalid request body", Err: err})
		return errResponseWritten
	}
	return nil
}

// requireUser returns the current user or writes a 401.
func (s *Server) requireUser(c *fiber.Ctx) (models.User, error) {
	user, ok := s.store.CurrentUser()
	if !ok {
		_ = respondLoginRequired(c)
		return models.User{}, errResponseWritten
	}
	return user, nil
}

func respondLoginRequired(c *fiber.Ctx) error {
	return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewUnauthorizedError("login required"))
}

func respondIncomplete(c *fiber.Ctx, what string) error {
	return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError(what+" is missing required fields"))
}
