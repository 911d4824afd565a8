// Package editor implements the profile editor: a role-aware form seeded from
// an existing profile, and a delayed asynchronous save.
package editor

import (
	"strings"

	"incubator/internal/forms"
	"incubator/internal/models"
)

// InitialState seeds the editor. With an existing profile its values are
// copied in, lists joined with ", "; otherwise the form is blank apart from
// the user's name.
func InitialState(user models.User, existing *models.Profile) forms.ProfileForm {
	f := forms.ProfileForm{SupervisionAvailable: "false"}
	if existing == nil {
		f.Name = user.Name
		return f
	}

	f.Name = existing.Name
	if fd := existing.Faculty; fd != nil {
		f.Department = fd.Department
		f.ResearchAreas = forms.JoinCSV(fd.ResearchAreas)
		if fd.SupervisionAvailable {
			f.SupervisionAvailable = "true"
		}
	}
	if sd := existing.Student; sd != nil {
		f.Year = sd.Year
		f.Program = sd.Program
		f.Skills = forms.JoinCSV(sd.Skills)
		f.Resume = sd.Resume
		f.Clubs = forms.JoinCSV(sd.Clubs)
		f.Projects = forms.JoinCSV(sd.Projects)
		f.GitHub = sd.Links.GitHub
		f.LinkedIn = sd.Links.LinkedIn
	}
	return f
}

// CanSubmit requires a name, plus a department for faculty or a year and
// program for students.
func CanSubmit(role models.Role, f forms.ProfileForm) bool {
	if blank(f.Name) {
		return false
	}
	if role == models.RoleFaculty {
		return !blank(f.Department)
	}
	return !blank(f.Year) && !blank(f.Program)
}

// Payload builds the profile the form describes. Text is trimmed and every
// list drops blank entries.
func Payload(user models.User, f forms.ProfileForm) models.Profile {
	p := models.Profile{
		Email: user.Email,
		Role:  user.Role,
		Name:  strings.TrimSpace(f.Name),
	}
	if user.IsFaculty() {
		p.Faculty = &models.FacultyDetails{
			Department:           strings.TrimSpace(f.Department),
			ResearchAreas:        forms.SplitCSVNonEmpty(f.ResearchAreas),
			SupervisionAvailable: f.SupervisionAvailable == "true",
		}
		return p
	}
	p.Student = &models.StudentDetails{
		Year:     strings.TrimSpace(f.Year),
		Program:  strings.TrimSpace(f.Program),
		Skills:   forms.SplitCSVNonEmpty(f.Skills),
		Resume:   strings.TrimSpace(f.Resume),
		Clubs:    forms.SplitCSVNonEmpty(f.Clubs),
		Projects: forms.SplitCSVNonEmpty(f.Projects),
		Links: models.Links{
			GitHub:   strings.TrimSpace(f.GitHub),
			LinkedIn: strings.TrimSpace(f.LinkedIn),
		},
	}
	return p
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
