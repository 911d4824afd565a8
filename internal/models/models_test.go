package models

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"", RoleStudent, false},
		{"student", RoleStudent, false},
		{" Faculty ", RoleFaculty, false},
		{"admin", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStage(t *testing.T) {
	s, err := ParseStage("")
	require.NoError(t, err)
	assert.Equal(t, StageIdea, s)

	s, err = ParseStage("MVP")
	require.NoError(t, err)
	assert.Equal(t, StageMVP, s)

	_, err = ParseStage("series-a")
	assert.Error(t, err)
}

func TestNameFromEmail(t *testing.T) {
	assert.Equal(t, "schen", NameFromEmail("schen@uoguelph.ca"))
	assert.Equal(t, "nodomain", NameFromEmail("nodomain"))
}

func TestApplication_TargetID(t *testing.T) {
	assert.Equal(t, int64(7), Application{Kind: KindResearch, PostID: 7}.TargetID())
	assert.Equal(t, int64(9), Application{Kind: KindIncubator, StartupID: 9}.TargetID())
}

func TestAppError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	err := NewInternalError(inner)
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "Internal server error: boom", err.Error())
}

func TestRespondWithError(t *testing.T) {
	app := fiber.New()
	app.Get("/app", func(c *fiber.Ctx) error {
		return RespondWithError(c, fiber.StatusNotFound, NewNotFoundError("Research posting", 42))
	})
	app.Get("/plain", func(c *fiber.Ctx) error {
		return RespondWithError(c, fiber.StatusBadRequest, errors.New("bad"))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/app", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, CodeNotFound, body.Code)
	assert.Equal(t, "Research posting with ID 42 not found", body.Error)

	resp2, err := app.Test(httptest.NewRequest(http.MethodGet, "/plain", nil))
	require.NoError(t, err)
	defer func() { _ = resp2.Body.Close() }()
	var body2 ErrorResponse
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&body2))
	assert.Equal(t, "bad", body2.Error)
	assert.Empty(t, body2.Code)
}
