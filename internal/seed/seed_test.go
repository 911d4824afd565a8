package seed

import (
	"strings"
	"testing"

	"incubator/internal/directory"
	"incubator/internal/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemo(t *testing.T) {
	s := Demo()
	require.Len(t, s.Profiles, 2)
	require.Len(t, s.Research, 1)
	require.Len(t, s.Startups, 1)
	assert.Empty(t, s.Applications)
	assert.Nil(t, s.Current)

	chen, ok := s.ProfileFor("schen@uoguelph.ca")
	require.True(t, ok)
	assert.Equal(t, models.RoleFaculty, chen.Role)
	assert.True(t, chen.Faculty.SupervisionAvailable)

	assert.Equal(t, 3, s.Research[0].ApplicationCount)
	assert.Equal(t, 5, s.Startups[0].InterestCount)
	assert.NoError(t, directory.CheckCounters(s))
}

func TestFake_Deterministic(t *testing.T) {
	a := Fake(directory.State{}, 42, 5)
	b := Fake(directory.State{}, 42, 5)
	assert.Empty(t, cmp.Diff(a, b))

	c := Fake(directory.State{}, 7, 5)
	assert.NotEmpty(t, cmp.Diff(a, c))
}

func TestFake_Shape(t *testing.T) {
	base := Demo()
	s := Fake(base, 1, 4)

	assert.Len(t, s.Profiles, 2+8)
	assert.Len(t, s.Research, 1+4)
	assert.Len(t, s.Startups, 1+4)
	assert.Len(t, base.Profiles, 2, "input state must not be modified")
	assert.Len(t, base.ResearchBaseline, 1)
	assert.NoError(t, directory.CheckCounters(s))

	ids := make(map[int64]bool)
	for _, p := range s.Profiles {
		assert.False(t, ids[p.ID], "duplicate profile id %d", p.ID)
		ids[p.ID] = true
		assert.True(t, strings.HasSuffix(p.Email, "@uoguelph.ca"))
	}
	for _, p := range s.Research[1:] {
		assert.NotEmpty(t, p.Skills)
		owner, ok := findProfile(s, p.FacultyID)
		require.True(t, ok)
		assert.Equal(t, models.RoleFaculty, owner.Role)
	}
	for _, p := range s.Startups[1:] {
		owner, ok := findProfile(s, p.StudentID)
		require.True(t, ok)
		assert.Equal(t, models.RoleStudent, owner.Role)
	}
}

func TestBuild(t *testing.T) {
	assert.Empty(t, Build(Options{}).Profiles)
	assert.Len(t, Build(Options{Demo: true}).Profiles, 2)
	assert.Len(t, Build(Options{FakeCount: 3, FakeSeed: 9}).Profiles, 6)
}

func findProfile(s directory.State, id int64) (models.Profile, bool) {
	for _, p := range s.Profiles {
		if p.ID == id {
			return p, true
		}
	}
	return models.Profile{}, false
}
