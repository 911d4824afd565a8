package directory

import (
	"testing"

	"incubator/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCounters(t *testing.T) {
	s := loggedIn(t, "arivera@uoguelph.ca", models.RoleStudent)
	s.Research = []models.ResearchPosting{{ID: 1, ApplicationCount: 3}}
	s.Startups = []models.StartupPosting{{ID: 2, InterestCount: 5}}
	s.ResearchBaseline = map[int64]int{1: 3}
	s.StartupBaseline = map[int64]int{2: 5}
	require.NoError(t, CheckCounters(s))

	s, _, _ = ApplyToResearch(s, 1, s.Current, models.ResearchApplication{}, stamp(10))
	s, _, _ = ExpressInterest(s, 2, s.Current, "", stamp(11))
	s, _, _ = ExpressInterest(s, 2, s.Current, "", stamp(12))
	s, _, _ = ApplyToIncubator(s, 2, s.Current, models.IncubatorApplication{}, "", stamp(13))
	assert.NoError(t, CheckCounters(s))

	s.Startups[0].InterestCount = 100
	err := CheckCounters(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "startup posting 2")
}
