// Package directory holds the in-memory Directory Store: profiles, research
// postings, startup postings, applications and interests, plus the identity
// of the currently active user.
//
// State is an immutable value. Every operation is a pure function from one
// State to the next; the Store serializes those transitions and swaps the
// whole State at once, so no partially-applied mutation is ever observable.
package directory

import (
	"time"

	"incubator/internal/models"
)

// State is one snapshot of the directory. Values returned from reducers share
// unchanged slices with their predecessor and must be treated as read-only.
type State struct {
	Current      *models.User
	Profiles     []models.Profile
	Research     []models.ResearchPosting
	Startups     []models.StartupPosting
	Applications []models.Application
	Interests    []models.Interest

	// Baseline counters carried by seeded postings that have no backing
	// application or interest records.
	ResearchBaseline map[int64]int
	StartupBaseline  map[int64]int
}

// Stamp is the identity and time assigned to a record by a mutation.
type Stamp struct {
	ID int64
	At time.Time
}

// PostedDate renders the stamp as a YYYY-MM-DD date in UTC.
func (s Stamp) PostedDate() string {
	return s.At.UTC().Format("2006-01-02")
}

// ProfileFields are the values submitted by the profile form. Only the
// details matching the user's role are used.
type ProfileFields struct {
	Name    string
	Faculty models.FacultyDetails
	Student models.StudentDetails
}

// ResearchFields are the values submitted by the research posting form.
type ResearchFields struct {
	Title        string
	Description  string
	Type         string
	Duration     string
	Skills       []string
	Requirements string
	Compensation string
	Deadline     string
}

// StartupFields are the values submitted by the startup posting form.
type StartupFields struct {
	Title        string
	Pitch        string
	SkillsNeeded []string
	Contact      string
	Stage        models.Stage
	Commitment   string
	LookingFor   string
}

// ProfileFor returns the first profile registered under email, if any.
func (s State) ProfileFor(email string) (models.Profile, bool) {
	for _, p := range s.Profiles {
		if p.Email == email {
			return p, true
		}
	}
	return models.Profile{}, false
}

// ProfilesFor returns every profile registered under email. More than one
// means the profile form was submitted twice in append mode.
func (s State) ProfilesFor(email string) []models.Profile {
	var out []models.Profile
	for _, p := range s.Profiles {
		if p.Email == email {
			out = append(out, p)
		}
	}
	return out
}

// ApplicationsBy returns the applications submitted by userID in submission order.
func (s State) ApplicationsBy(userID int64) []models.Application {
	var out []models.Application
	for _, a := range s.Applications {
		if a.ApplicantID == userID {
			out = append(out, a)
		}
	}
	return out
}

// ResearchByID looks up a research posting.
func (s State) ResearchByID(id int64) (models.ResearchPosting, bool) {
	for _, p := range s.Research {
		if p.ID == id {
			return p, true
		}
	}
	return models.ResearchPosting{}, false
}

// StartupByID looks up a startup posting.
func (s State) StartupByID(id int64) (models.StartupPosting, bool) {
	for _, p := range s.Startups {
		if p.ID == id {
			return p, true
		}
	}
	return models.StartupPosting{}, false
}

// appended returns a new slice holding xs followed by x. xs is never written.
func appended[T any](xs []T, x T) []T {
	out := make([]T, len(xs), len(xs)+1)
	copy(out, xs)
	return append(out, x)
}
