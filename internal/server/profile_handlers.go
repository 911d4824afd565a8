package server

import (
	"errors"
	"strings"

	"incubator/internal/cache"
	"incubator/internal/editor"
	"incubator/internal/forms"
	"incubator/internal/models"
	"incubator/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// ListProfiles handles GET /api/profiles. ?email= narrows the listing to one
// owner, which in append mode may hold several profiles.
func (s *Server) ListProfiles(c *fiber.Ctx) error {
	if email := strings.TrimSpace(c.Query("email")); email != "" {
		owned := orEmpty(s.store.Snapshot().ProfilesFor(email))
		return c.JSON(page(owned, parsePagination(c, 50)))
	}

	var profiles []models.Profile
	err := s.listings.Aside(c.UserContext(), cache.Profiles, &profiles, func() error {
		profiles = orEmpty(s.store.Snapshot().Profiles)
		return nil
	})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}
	return c.JSON(page(profiles, parsePagination(c, 50)))
}

// GetMyProfile handles GET /api/profiles/me.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.requireUser(c)
	if err != nil {
		return nil
	}
	p, ok := s.store.Snapshot().ProfileFor(user.Email)
	if !ok {
		return models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError("Profile", user.Email))
	}
	return c.JSON(p)
}

// CreateProfile handles POST /api/profiles with the create-profile form.
func (s *Server) CreateProfile(c *fiber.Ctx) error {
	if _, err := s.requireUser(c); err != nil {
		return nil
	}
	form := forms.NewProfileForm()
	if err := parseBody(c, &form); err != nil {
		return nil
	}
	if !form.CanSubmit() {
		return respondIncomplete(c, "profile")
	}

	p, ok := s.store.CreateProfile(c.UserContext(), form.Fields())
	if !ok {
		return respondLoginRequired(c)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// GetMyProfileForm handles GET /api/profiles/me/form: the editor's starting
// values for the current user.
func (s *Server) GetMyProfileForm(c *fiber.Ctx) error {
	user, err := s.requireUser(c)
	if err != nil {
		return nil
	}
	var existing *models.Profile
	if p, ok := s.store.Snapshot().ProfileFor(user.Email); ok {
		existing = &p
	}
	f := editor.InitialState(user, existing)
	return c.JSON(fiber.Map{
		"form":      f,
		"canSubmit": editor.CanSubmit(user.Role, f),
	})
}

// UpdateMyProfile handles PUT /api/profiles/me. The save completes in the
// background; poll GET /api/profiles/me/save for the outcome.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	user, err := s.requireUser(c)
	if err != nil {
		return nil
	}
	var form forms.ProfileForm
	if err := parseBody(c, &form); err != nil {
		return nil
	}

	ctx := observability.WithCorrelationID(s.baseCtx, observability.ExtractCorrelationID(c.UserContext()))
	payload, err := s.editor.Submit(ctx, user, form, nil)
	if errors.Is(err, editor.ErrCannotSubmit) {
		return respondIncomplete(c, "profile")
	}
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"status":  editor.StateSaving,
		"profile": payload,
	})
}

// GetSaveStatus handles GET /api/profiles/me/save.
func (s *Server) GetSaveStatus(c *fiber.Ctx) error {
	user, err := s.requireUser(c)
	if err != nil {
		return nil
	}
	st := s.editor.Status(user.Email)
	if st.State == editor.StateFailed {
		return c.JSON(fiber.Map{
			"state": st.State,
			"error": st.Error,
			"code":  models.CodeSaveFailed,
		})
	}
	return c.JSON(st)
}
