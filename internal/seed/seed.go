// Package seed builds the starting directory: the demo records the
// front-end ships with and, optionally, generated bulk data for local
// development.
package seed

import (
	"incubator/internal/directory"
	"incubator/internal/models"
)

// Options configures Build.
type Options struct {
	// Demo includes the fixed demo profiles and postings.
	Demo bool
	// FakeCount adds that many generated faculty and student records.
	FakeCount int
	// FakeSeed makes generated data reproducible.
	FakeSeed int64
}

// Build assembles the initial state described by opts.
func Build(opts Options) directory.State {
	var s directory.State
	if opts.Demo {
		s = Demo()
	}
	if opts.FakeCount > 0 {
		s = Fake(s, opts.FakeSeed, opts.FakeCount)
	}
	return s
}

// Demo returns the two demo profiles, one research posting and one startup
// posting. The postings carry pre-existing counts with no backing records,
// which are recorded as baselines.
func Demo() directory.State {
	return directory.State{
		Profiles: []models.Profile{
			{
				ID:    1,
				Email: "schen@uoguelph.ca",
				Role:  models.RoleFaculty,
				Name:  "Dr. Sarah Chen",
				Faculty: &models.FacultyDetails{
					Department:           "School of Computer Science",
					ResearchAreas:        []string{"Machine Learning", "Computer Vision", "AI Ethics"},
					SupervisionAvailable: true,
				},
			},
			{
				ID:    2,
				Email: "arivera@uoguelph.ca",
				Role:  models.RoleStudent,
				Name:  "Alex Rivera",
				Student: &models.StudentDetails{
					Year:     "3rd Year",
					Program:  "Computer Science",
					Skills:   []string{"React", "Python", "Data Analysis"},
					Resume:   "resume.pdf",
					Clubs:    []string{"Tech Club", "Startup Society"},
					Projects: []string{"Weather App", "ML Predictor"},
					Links:    models.Links{GitHub: "github.com/alexr", LinkedIn: "linkedin.com/in/alexr"},
				},
			},
		},
		Research: []models.ResearchPosting{{
			ID:               1,
			FacultyID:        1,
			FacultyName:      "Dr. Sarah Chen",
			Title:            "Computer Vision for Agricultural Applications",
			Description:      "Looking for 2 undergraduate students to work on drone imagery analysis for crop health monitoring.",
			Type:             models.ResearchTypeUSRA,
			Duration:         "Fall 2025",
			Skills:           []string{"Python", "OpenCV", "Machine Learning"},
			PostedDate:       "2025-08-08",
			ApplicationCount: 3,
		}},
		Startups: []models.StartupPosting{{
			ID:            1,
			StudentID:     2,
			StudentName:   "Alex Rivera",
			Title:         "CampusConnect",
			Pitch:         "A mobile app to help students find study groups and campus events in real-time. Think Tinder meets academic success!",
			SkillsNeeded:  []string{"Mobile Dev", "UI/UX", "Marketing"},
			Contact:       "@alexrivera_ug",
			PostedDate:    "2025-08-08",
			InterestCount: 5,
			Stage:         models.StageIdea,
			Commitment:    "10-15 hours/week",
		}},
		ResearchBaseline: map[int64]int{1: 3},
		StartupBaseline:  map[int64]int{1: 5},
	}
}
