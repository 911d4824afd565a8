package server

import (
	"incubator/internal/cache"
	"incubator/internal/forms"
	"incubator/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListResearch handles GET /api/research.
func (s *Server) ListResearch(c *fiber.Ctx) error {
	var posts []models.ResearchPosting
	err := s.listings.Aside(c.UserContext(), cache.Research, &posts, func() error {
		posts = orEmpty(s.store.Snapshot().Research)
		return nil
	})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}
	return c.JSON(page(posts, parsePagination(c, 50)))
}

// GetResearch handles GET /api/research/:id.
func (s *Server) GetResearch(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	post, ok := s.store.Snapshot().ResearchByID(id)
	if !ok {
		return models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError("Research posting", id))
	}
	return c.JSON(post)
}

// PostResearch handles POST /api/research. Only faculty get the button.
func (s *Server) PostResearch(c *fiber.Ctx) error {
	user, err := s.requireUser(c)
	if err != nil {
		return nil
	}
	if !user.IsFaculty() {
		return models.RespondWithError(c, fiber.StatusForbidden, models.NewForbiddenError("only faculty can post research opportunities"))
	}
	form := forms.NewResearchForm()
	if err := parseBody(c, &form); err != nil {
		return nil
	}
	if !form.CanSubmit() {
		return respondIncomplete(c, "research posting")
	}

	post, ok := s.store.PostResearch(c.UserContext(), form.Fields())
	if !ok {
		return respondLoginRequired(c)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// ApplyToResearch handles POST /api/research/:id/applications.
func (s *Server) ApplyToResearch(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if _, err := s.requireUser(c); err != nil {
		return nil
	}
	if _, ok := s.store.Snapshot().ResearchByID(id); !ok {
		return models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError("Research posting", id))
	}
	var form forms.ResearchApplicationForm
	if err := parseBody(c, &form); err != nil {
		return nil
	}

	app, ok := s.store.ApplyToResearch(c.UserContext(), id, form.Payload())
	if !ok {
		return respondLoginRequired(c)
	}
	return c.Status(fiber.StatusCreated).JSON(app)
}
