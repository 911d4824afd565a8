package view

import (
	"incubator/internal/directory"
	"incubator/internal/models"
)

// recentApplications is how many of the user's applications the dashboard lists.
const recentApplications = 3

// Counts are the headline numbers on the dashboard cards.
type Counts struct {
	Research     int `json:"research"`
	Startups     int `json:"startups"`
	Applications int `json:"applications"`
}

// DashboardView is what the dashboard renders for the current user.
type DashboardView struct {
	User            models.User          `json:"user"`
	HasProfile      bool                 `json:"hasProfile"`
	Profile         *models.Profile      `json:"profile,omitempty"`
	Applications    []models.Application `json:"applications"`
	Counts          Counts               `json:"counts"`
	CanPostResearch bool                 `json:"canPostResearch"`
	CanPostStartup  bool                 `json:"canPostStartup"`
	Cohort          string               `json:"cohort"`
}

// BuildDashboard projects s for the current user. It reports false when no
// one is logged in.
func BuildDashboard(s directory.State, cohort string) (DashboardView, bool) {
	if s.Current == nil {
		return DashboardView{}, false
	}
	user := *s.Current
	mine := s.ApplicationsBy(user.ID)

	v := DashboardView{
		User:            user,
		Applications:    firstN(mine, recentApplications),
		CanPostResearch: user.IsFaculty(),
		CanPostStartup:  true,
		Cohort:          cohort,
		Counts: Counts{
			Research:     len(s.Research),
			Startups:     len(s.Startups),
			Applications: len(mine),
		},
	}
	if p, ok := s.ProfileFor(user.Email); ok {
		v.HasProfile = true
		v.Profile = &p
	}
	return v, true
}

func firstN[T any](xs []T, n int) []T {
	if len(xs) > n {
		xs = xs[:n]
	}
	if xs == nil {
		return []T{}
	}
	return xs
}
