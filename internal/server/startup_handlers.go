package server

import (
	"incubator/internal/cache"
	"incubator/internal/forms"
	"incubator/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListStartups handles GET /api/startups.
func (s *Server) ListStartups(c *fiber.Ctx) error {
	var posts []models.StartupPosting
	err := s.listings.Aside(c.UserContext(), cache.Startups, &posts, func() error {
		posts = orEmpty(s.store.Snapshot().Startups)
		return nil
	})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}
	return c.JSON(page(posts, parsePagination(c, 50)))
}

// GetStartup handles GET /api/startups/:id.
func (s *Server) GetStartup(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	post, ok := s.store.Snapshot().StartupByID(id)
	if !ok {
		return models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError("Startup posting", id))
	}
	return c.JSON(post)
}

// PostStartup handles POST /api/startups. Any logged-in user may post.
func (s *Server) PostStartup(c *fiber.Ctx) error {
	if _, err := s.requireUser(c); err != nil {
		return nil
	}
	form := forms.NewStartupForm()
	if err := parseBody(c, &form); err != nil {
		return nil
	}
	if !form.CanSubmit() {
		return respondIncomplete(c, "startup posting")
	}
	fields, err := form.Fields()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError(err.Error()))
	}

	post, ok := s.store.PostStartup(c.UserContext(), fields)
	if !ok {
		return respondLoginRequired(c)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// startupTarget resolves the :id of a startup sub-resource, answering 400,
// 401 or 404 itself when the request cannot proceed.
func (s *Server) startupTarget(c *fiber.Ctx) (int64, error) {
	id, err := parseID(c, "id")
	if err != nil {
		return 0, err
	}
	if _, err := s.requireUser(c); err != nil {
		return 0, err
	}
	if _, ok := s.store.Snapshot().StartupByID(id); !ok {
		_ = models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError("Startup posting", id))
		return 0, errResponseWritten
	}
	return id, nil
}

// ExpressInterest handles POST /api/startups/:id/interests.
func (s *Server) ExpressInterest(c *fiber.Ctx) error {
	id, err := s.startupTarget(c)
	if err != nil {
		return nil
	}
	var form forms.InterestForm
	if err := parseBody(c, &form); err != nil {
		return nil
	}

	in, ok := s.store.ExpressInterest(c.UserContext(), id, form.Message)
	if !ok {
		return respondLoginRequired(c)
	}
	return c.Status(fiber.StatusCreated).JSON(in)
}

// ApplyToIncubator handles POST /api/startups/:id/incubator-applications.
func (s *Server) ApplyToIncubator(c *fiber.Ctx) error {
	id, err := s.startupTarget(c)
	if err != nil {
		return nil
	}
	var form forms.IncubatorApplicationForm
	if err := parseBody(c, &form); err != nil {
		return nil
	}

	app, ok := s.store.ApplyToIncubator(c.UserContext(), id, form.Payload())
	if !ok {
		return respondLoginRequired(c)
	}
	return c.Status(fiber.StatusCreated).JSON(app)
}
