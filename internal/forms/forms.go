package forms

import (
	"incubator/internal/directory"
	"incubator/internal/models"
)

// LoginForm is the login screen: an email and the role picked on the toggle.
type LoginForm struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// CanSubmit mirrors the login button, which is inert without an email.
func (f LoginForm) CanSubmit() bool {
	return !blank(f.Email)
}

// ProfileForm is the create-profile form. List fields arrive as
// comma-separated text; which half is read depends on the user's role.
type ProfileForm struct {
	Name string `json:"name"`

	Department           string `json:"department"`
	ResearchAreas        string `json:"researchAreas"`
	SupervisionAvailable string `json:"supervisionAvailable"`

	Year     string `json:"year"`
	Program  string `json:"program"`
	Skills   string `json:"skills"`
	Resume   string `json:"resume"`
	Clubs    string `json:"clubs"`
	Projects string `json:"projects"`
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
}

// NewProfileForm returns the form's initial values.
func NewProfileForm() ProfileForm {
	return ProfileForm{SupervisionAvailable: "true"}
}

func (f ProfileForm) CanSubmit() bool {
	return !blank(f.Name)
}

// Fields converts the form for the store. Research areas and skills keep
// blank entries; clubs and projects drop them.
func (f ProfileForm) Fields() directory.ProfileFields {
	return directory.ProfileFields{
		Name: f.Name,
		Faculty: models.FacultyDetails{
			Department:           f.Department,
			ResearchAreas:        SplitCSV(f.ResearchAreas),
			SupervisionAvailable: f.SupervisionAvailable == "true",
		},
		Student: models.StudentDetails{
			Year:     f.Year,
			Program:  f.Program,
			Skills:   SplitCSV(f.Skills),
			Resume:   f.Resume,
			Clubs:    SplitCSVNonEmpty(f.Clubs),
			Projects: SplitCSVNonEmpty(f.Projects),
			Links:    models.Links{GitHub: f.GitHub, LinkedIn: f.LinkedIn},
		},
	}
}

// ResearchForm is the faculty "post research opportunity" modal.
type ResearchForm struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Type         string `json:"type"`
	Duration     string `json:"duration"`
	Skills       string `json:"skills"`
	Requirements string `json:"requirements"`
	Compensation string `json:"compensation"`
	Deadline     string `json:"deadline"`
}

// NewResearchForm returns the form's initial values.
func NewResearchForm() ResearchForm {
	return ResearchForm{Type: models.ResearchTypeUSRA}
}

func (f ResearchForm) CanSubmit() bool {
	return !blank(f.Title)
}

func (f ResearchForm) Fields() directory.ResearchFields {
	return directory.ResearchFields{
		Title:        f.Title,
		Description:  f.Description,
		Type:         f.Type,
		Duration:     f.Duration,
		Skills:       SplitCSV(f.Skills),
		Requirements: f.Requirements,
		Compensation: f.Compensation,
		Deadline:     f.Deadline,
	}
}

// StartupForm is the student "post startup idea" modal.
type StartupForm struct {
	Title        string `json:"title"`
	Pitch        string `json:"pitch"`
	SkillsNeeded string `json:"skillsNeeded"`
	Contact      string `json:"contact"`
	Stage        string `json:"stage"`
	Commitment   string `json:"commitment"`
	LookingFor   string `json:"lookingFor"`
}

// NewStartupForm returns the form's initial values.
func NewStartupForm() StartupForm {
	return StartupForm{Stage: string(models.StageIdea)}
}

func (f StartupForm) CanSubmit() bool {
	return !blank(f.Title)
}

// Fields converts the form for the store. An unrecognised stage is an error.
func (f StartupForm) Fields() (directory.StartupFields, error) {
	stage, err := models.ParseStage(f.Stage)
	if err != nil {
		return directory.StartupFields{}, err
	}
	return directory.StartupFields{
		Title:        f.Title,
		Pitch:        f.Pitch,
		SkillsNeeded: SplitCSV(f.SkillsNeeded),
		Contact:      f.Contact,
		Stage:        stage,
		Commitment:   f.Commitment,
		LookingFor:   f.LookingFor,
	}, nil
}

// ResearchApplicationForm is the "apply to research" modal. Every field is
// optional.
type ResearchApplicationForm struct {
	CoverLetter        string `json:"coverLetter"`
	Availability       string `json:"availability"`
	RelevantExperience string `json:"relevantExperience"`
	WhyInterested      string `json:"whyInterested"`
}

func (f ResearchApplicationForm) Payload() models.ResearchApplication {
	return models.ResearchApplication(f)
}

// IncubatorApplicationForm is the "apply to incubator" modal.
type IncubatorApplicationForm struct {
	TeamMembers string `json:"teamMembers"`
	Progress    string `json:"progress"`
	Milestones  string `json:"milestones"`
	PitchDeck   string `json:"pitchDeck"`
	Commitment  string `json:"commitment"`
}

func (f IncubatorApplicationForm) Payload() models.IncubatorApplication {
	return models.IncubatorApplication(f)
}

// InterestForm carries the optional note sent with "I'm interested".
type InterestForm struct {
	Message string `json:"message"`
}
