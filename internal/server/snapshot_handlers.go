package server

import (
	"encoding/json"
	"time"

	"incubator/internal/directory"
	"incubator/internal/models"

	"github.com/gofiber/fiber/v2"
	"gopkg.in/yaml.v3"
)

// Snapshot is the full read-only export of the directory.
type Snapshot struct {
	CurrentUser  *models.User             `json:"currentUser"`
	Profiles     []models.Profile         `json:"profiles"`
	Research     []models.ResearchPosting `json:"research"`
	Startups     []models.StartupPosting  `json:"startups"`
	Applications []models.Application     `json:"applications"`
	Interests    []models.Interest        `json:"interests"`
	Cohort       string                   `json:"cohort"`
	CountersOK   bool                     `json:"countersConsistent"`
}

func newSnapshot(st directory.State, cohort string) Snapshot {
	return Snapshot{
		CurrentUser:  st.Current,
		Profiles:     orEmpty(st.Profiles),
		Research:     orEmpty(st.Research),
		Startups:     orEmpty(st.Startups),
		Applications: orEmpty(st.Applications),
		Interests:    orEmpty(st.Interests),
		Cohort:       cohort,
		CountersOK:   directory.CheckCounters(st) == nil,
	}
}

// GetSnapshot handles GET /api/snapshot. ?format=yaml renders YAML with the
// same field names as the JSON form.
func (s *Server) GetSnapshot(c *fiber.Ctx) error {
	snap := newSnapshot(s.store.Snapshot(), s.store.Cohort())

	switch c.Query("format", "json") {
	case "json":
		return c.JSON(snap)
	case "yaml", "yml":
		out, err := toYAML(snap)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
		}
		c.Set(fiber.HeaderContentType, "application/yaml")
		return c.Send(out)
	default:
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("format must be json or yaml"))
	}
}

// toYAML goes through JSON so YAML keys match the API's JSON names.
func toYAML(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	return yaml.Marshal(generic)
}

// GetFeatureFlags handles GET /api/feature-flags, evaluated for the current
// user when someone is logged in.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	key := ""
	if u, ok := s.store.CurrentUser(); ok {
		key = u.Email
	}
	return c.JSON(fiber.Map{
		"raw":       s.featureFlags.Raw(),
		"evaluated": s.featureFlags.Snapshot(key),
	})
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports the store as always ready and Redis as healthy,
// unhealthy or disabled. A failing Redis degrades but does not fail readiness
// since listings fall back to the store.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(c.UserContext()).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := "ready"
	if redisStatus == "unhealthy" {
		status = "degraded"
	}
	return c.JSON(fiber.Map{
		"status": status,
		"checks": fiber.Map{
			"store": "healthy",
			"redis": redisStatus,
		},
	})
}
