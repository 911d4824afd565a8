package directory

import (
	"slices"
	"strings"

	"incubator/internal/models"
)

// Login makes a fresh user the current one. The id comes from the stamp and
// is not checked for uniqueness; the email is trusted as given.
func Login(s State, email string, role models.Role, st Stamp) (State, models.User) {
	u := models.User{
		ID:    st.ID,
		Email: email,
		Name:  models.NameFromEmail(email),
		Role:  role,
	}
	s.Current = &u
	return s, u
}

// Logout clears the current user.
func Logout(s State) State {
	s.Current = nil
	return s
}

// BuildProfile assembles the profile for user from the submitted fields.
func BuildProfile(user models.User, f ProfileFields, st Stamp) models.Profile {
	p := models.Profile{
		ID:    st.ID,
		Email: user.Email,
		Role:  user.Role,
		Name:  f.Name,
	}
	if user.IsFaculty() {
		details := f.Faculty
		p.Faculty = &details
	} else {
		details := f.Student
		p.Student = &details
	}
	return p
}

// CreateProfile appends a profile for user. A nil user is ignored. There is
// no overwrite protection: a second call for the same email adds a second
// entry.
func CreateProfile(s State, user *models.User, f ProfileFields, st Stamp) (State, models.Profile, bool) {
	if user == nil {
		return s, models.Profile{}, false
	}
	p := BuildProfile(*user, f, st)
	s.Profiles = appended(s.Profiles, p)
	return s, p, true
}

// UpsertProfile stores p as the profile for p.Email, replacing the first
// existing entry in place and keeping its id. Without an existing entry the
// profile is appended under the stamp's id.
func UpsertProfile(s State, p models.Profile, st Stamp) (State, models.Profile) {
	for i, existing := range s.Profiles {
		if existing.Email != p.Email {
			continue
		}
		p.ID = existing.ID
		profiles := slices.Clone(s.Profiles)
		profiles[i] = p
		s.Profiles = profiles
		return s, p
	}
	p.ID = st.ID
	s.Profiles = appended(s.Profiles, p)
	return s, p
}

// owner resolves the display identity of a poster: the first profile under
// the user's email when it has an id and name, otherwise the login identity.
func owner(s State, user models.User) (int64, string) {
	id, name := user.ID, user.Name
	if p, ok := s.ProfileFor(user.Email); ok {
		if p.ID != 0 {
			id = p.ID
		}
		if p.Name != "" {
			name = p.Name
		}
	}
	return id, name
}

// PostResearch publishes a research opportunity on behalf of user.
func PostResearch(s State, user *models.User, f ResearchFields, st Stamp) (State, models.ResearchPosting, bool) {
	if user == nil {
		return s, models.ResearchPosting{}, false
	}
	facultyID, facultyName := owner(s, *user)
	kind := strings.TrimSpace(f.Type)
	if kind == "" {
		kind = models.ResearchTypeUSRA
	}
	post := models.ResearchPosting{
		ID:               st.ID,
		FacultyID:        facultyID,
		FacultyName:      facultyName,
		Title:            f.Title,
		Description:      f.Description,
		Type:             kind,
		Duration:         f.Duration,
		Skills:           f.Skills,
		Requirements:     f.Requirements,
		Compensation:     f.Compensation,
		Deadline:         f.Deadline,
		PostedDate:       st.PostedDate(),
		ApplicationCount: 0,
	}
	s.Research = appended(s.Research, post)
	return s, post, true
}

// PostStartup publishes a startup idea on behalf of user.
func PostStartup(s State, user *models.User, f StartupFields, st Stamp) (State, models.StartupPosting, bool) {
	if user == nil {
		return s, models.StartupPosting{}, false
	}
	studentID, studentName := owner(s, *user)
	stage := f.Stage
	if stage == "" {
		stage = models.StageIdea
	}
	post := models.StartupPosting{
		ID:            st.ID,
		StudentID:     studentID,
		StudentName:   studentName,
		Title:         f.Title,
		Pitch:         f.Pitch,
		SkillsNeeded:  f.SkillsNeeded,
		Contact:       f.Contact,
		LookingFor:    f.LookingFor,
		PostedDate:    st.PostedDate(),
		InterestCount: 0,
		Stage:         stage,
		Commitment:    f.Commitment,
	}
	s.Startups = appended(s.Startups, post)
	return s, post, true
}

// ApplyToResearch files a pending research application and bumps the target
// posting's application count by one. Repeat applications are not detected.
func ApplyToResearch(s State, postID int64, user *models.User, f models.ResearchApplication, st Stamp) (State, models.Application, bool) {
	if user == nil {
		return s, models.Application{}, false
	}
	payload := f
	app := models.Application{
		ID:            st.ID,
		PostID:        postID,
		ApplicantID:   user.ID,
		ApplicantName: user.Name,
		Kind:          models.KindResearch,
		Research:      &payload,
		Status:        models.StatusPending,
		SubmittedAt:   st.At,
	}
	s.Applications = appended(s.Applications, app)

	research := slices.Clone(s.Research)
	for i := range research {
		if research[i].ID == postID {
			research[i].ApplicationCount++
		}
	}
	s.Research = research
	return s, app, true
}

// ApplyToIncubator files a pending incubator application for the given
// cohort. No counter on the startup posting changes.
func ApplyToIncubator(s State, startupID int64, user *models.User, f models.IncubatorApplication, cohort string, st Stamp) (State, models.Application, bool) {
	if user == nil {
		return s, models.Application{}, false
	}
	if cohort == "" {
		cohort = models.DefaultCohort
	}
	payload := f
	app := models.Application{
		ID:            st.ID,
		StartupID:     startupID,
		ApplicantID:   user.ID,
		ApplicantName: user.Name,
		Kind:          models.KindIncubator,
		Incubator:     &payload,
		Cohort:        cohort,
		Status:        models.StatusPending,
		SubmittedAt:   st.At,
	}
	s.Applications = appended(s.Applications, app)
	return s, app, true
}

// ExpressInterest records an interest and bumps the startup's interest count
// by one. Repeat interests from the same user each count.
func ExpressInterest(s State, startupID int64, user *models.User, message string, st Stamp) (State, models.Interest, bool) {
	if user == nil {
		return s, models.Interest{}, false
	}
	in := models.Interest{
		ID:        st.ID,
		PostID:    startupID,
		UserID:    user.ID,
		UserName:  user.Name,
		Message:   message,
		Timestamp: st.At,
	}
	s.Interests = appended(s.Interests, in)

	startups := slices.Clone(s.Startups)
	for i := range startups {
		if startups[i].ID == startupID {
			startups[i].InterestCount++
		}
	}
	s.Startups = startups
	return s, in, true
}
