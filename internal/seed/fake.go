package seed

import (
	"fmt"
	"maps"
	"strings"
	"time"

	"incubator/internal/directory"
	"incubator/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

var (
	departments = []string{
		"School of Computer Science", "Department of Physics", "School of Engineering",
		"Department of Integrative Biology", "Department of Economics and Finance",
		"Department of Plant Agriculture", "Department of Psychology",
	}
	areas = []string{
		"Machine Learning", "Computer Vision", "AI Ethics", "Bioinformatics", "Robotics",
		"Food Security", "Climate Modelling", "Human-Computer Interaction", "Distributed Systems",
	}
	programs = []string{"Computer Science", "Software Engineering", "Biology", "Marketing", "Economics"}
	years    = []string{"1st Year", "2nd Year", "3rd Year", "4th Year", "Graduate"}
	skills   = []string{"Python", "React", "Go", "SQL", "UI/UX", "Marketing", "OpenCV", "Data Analysis", "Mobile Dev"}
	types    = []string{
		models.ResearchTypeUSRA, models.ResearchTypeAROO, models.ResearchTypeCapstone,
		models.ResearchTypeAssistant, models.ResearchTypeVolunteer,
	}
	stages = []models.Stage{models.StageIdea, models.StagePrototype, models.StageMVP, models.StageLaunched}
	terms  = []string{"Fall 2025", "Winter 2026", "Summer 2026"}
)

// Fake appends n generated faculty members with one research posting each
// and n students with one startup posting each. Generated ids start after
// the largest id already in s. The same seed always yields the same records.
func Fake(s directory.State, seed int64, n int) directory.State {
	f := gofakeit.New(seed)
	next := nextID(s)
	posted := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	s.Profiles = append([]models.Profile(nil), s.Profiles...)
	s.Research = append([]models.ResearchPosting(nil), s.Research...)
	s.Startups = append([]models.StartupPosting(nil), s.Startups...)
	s.ResearchBaseline = maps.Clone(s.ResearchBaseline)
	s.StartupBaseline = maps.Clone(s.StartupBaseline)
	if s.ResearchBaseline == nil {
		s.ResearchBaseline = make(map[int64]int)
	}
	if s.StartupBaseline == nil {
		s.StartupBaseline = make(map[int64]int)
	}

	for i := 0; i < n; i++ {
		prof := fakeFaculty(f, next())
		s.Profiles = append(s.Profiles, prof)

		post := models.ResearchPosting{
			ID:               next(),
			FacultyID:        prof.ID,
			FacultyName:      prof.Name,
			Title:            strings.TrimSuffix(f.Sentence(5), "."),
			Description:      f.Paragraph(1, 2, 12, " "),
			Type:             f.RandomString(types),
			Duration:         f.RandomString(terms),
			Skills:           pick(f, skills, 3),
			PostedDate:       posted.AddDate(0, 0, f.Number(0, 60)).Format("2006-01-02"),
			ApplicationCount: f.Number(0, 8),
		}
		s.Research = append(s.Research, post)
		s.ResearchBaseline[post.ID] = post.ApplicationCount

		stud := fakeStudent(f, next())
		s.Profiles = append(s.Profiles, stud)

		startup := models.StartupPosting{
			ID:            next(),
			StudentID:     stud.ID,
			StudentName:   stud.Name,
			Title:         f.AppName(),
			Pitch:         f.HackerPhrase(),
			SkillsNeeded:  pick(f, skills, 3),
			Contact:       "@" + strings.ToLower(f.Username()),
			PostedDate:    posted.AddDate(0, 0, f.Number(0, 60)).Format("2006-01-02"),
			InterestCount: f.Number(0, 12),
			Stage:         stages[f.Number(0, len(stages)-1)],
			Commitment:    fmt.Sprintf("%d-%d hours/week", 5*f.Number(1, 2), 5*f.Number(3, 4)),
		}
		s.Startups = append(s.Startups, startup)
		s.StartupBaseline[startup.ID] = startup.InterestCount
	}
	return s
}

func fakeFaculty(f *gofakeit.Faker, id int64) models.Profile {
	first, last := f.FirstName(), f.LastName()
	return models.Profile{
		ID:    id,
		Email: email(first, last, id),
		Role:  models.RoleFaculty,
		Name:  "Dr. " + first + " " + last,
		Faculty: &models.FacultyDetails{
			Department:           f.RandomString(departments),
			ResearchAreas:        pick(f, areas, 3),
			SupervisionAvailable: f.Bool(),
		},
	}
}

func fakeStudent(f *gofakeit.Faker, id int64) models.Profile {
	first, last := f.FirstName(), f.LastName()
	handle := strings.ToLower(first[:1] + last)
	return models.Profile{
		ID:    id,
		Email: email(first, last, id),
		Role:  models.RoleStudent,
		Name:  first + " " + last,
		Student: &models.StudentDetails{
			Year:     f.RandomString(years),
			Program:  f.RandomString(programs),
			Skills:   pick(f, skills, 3),
			Clubs:    []string{f.BuzzWord() + " Club"},
			Projects: []string{f.AppName()},
			Links:    models.Links{GitHub: "github.com/" + handle},
		},
	}
}

// email builds a campus address; the id suffix keeps generated people with
// the same name apart.
func email(first, last string, id int64) string {
	return fmt.Sprintf("%s%s%d@uoguelph.ca", strings.ToLower(first[:1]), strings.ToLower(last), id)
}

// pick returns up to n distinct entries of from in random order.
func pick(f *gofakeit.Faker, from []string, n int) []string {
	shuffled := append([]string(nil), from...)
	f.ShuffleStrings(shuffled)
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:f.Number(1, n)]
}

func nextID(s directory.State) func() int64 {
	var last int64
	for _, p := range s.Profiles {
		last = max(last, p.ID)
	}
	for _, p := range s.Research {
		last = max(last, p.ID)
	}
	for _, p := range s.Startups {
		last = max(last, p.ID)
	}
	return func() int64 {
		last++
		return last
	}
}
