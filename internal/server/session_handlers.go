package server

import (
	"errors"
	"strings"

	"incubator/internal/forms"
	"incubator/internal/models"
	"incubator/internal/view"

	"github.com/gofiber/fiber/v2"
)

// SessionResponse describes who is logged in and what they are looking at.
type SessionResponse struct {
	User   *models.User `json:"user"`
	Screen string       `json:"screen"`
}

func (s *Server) session() SessionResponse {
	resp := SessionResponse{Screen: view.Name(s.nav.Current())}
	if u, ok := s.store.CurrentUser(); ok {
		resp.User = &u
	}
	return resp
}

// GetSession handles GET /api/session.
func (s *Server) GetSession(c *fiber.Ctx) error {
	return c.JSON(s.session())
}

// Login handles POST /api/session/login. Any email is accepted; the account
// is made up on the spot with the chosen role.
func (s *Server) Login(c *fiber.Ctx) error {
	var form forms.LoginForm
	if err := parseBody(c, &form); err != nil {
		return nil
	}
	if !form.CanSubmit() {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("email is required"))
	}
	role, err := models.ParseRole(form.Role)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError(err.Error()))
	}

	s.store.Login(c.UserContext(), strings.TrimSpace(form.Email), role)
	s.nav.LoggedIn()
	return c.JSON(s.session())
}

// Logout handles POST /api/session/logout.
func (s *Server) Logout(c *fiber.Ctx) error {
	s.store.Logout(c.UserContext())
	s.nav.LoggedOut()
	return c.JSON(s.session())
}

type navigateRequest struct {
	Screen string `json:"screen"`
}

// Navigate handles POST /api/session/screen.
func (s *Server) Navigate(c *fiber.Ctx) error {
	var req navigateRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	screen, err := view.Parse(req.Screen)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError(err.Error()))
	}

	_, loggedIn := s.store.CurrentUser()
	if err := s.nav.Go(screen, loggedIn); err != nil {
		if errors.Is(err, view.ErrLoginRequired) {
			return respondLoginRequired(c)
		}
		return err
	}
	return c.JSON(s.session())
}

// GetDashboard handles GET /api/dashboard.
func (s *Server) GetDashboard(c *fiber.Ctx) error {
	d, ok := view.BuildDashboard(s.store.Snapshot(), s.store.Cohort())
	if !ok {
		return respondLoginRequired(c)
	}
	return c.JSON(d)
}
