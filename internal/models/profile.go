package models

// Profile is keyed by its owner's email. Exactly one of Faculty or Student is
// set, selected by Role.
type Profile struct {
	ID      int64           `json:"id"`
	Email   string          `json:"email"`
	Role    Role            `json:"type"`
	Name    string          `json:"name"`
	Faculty *FacultyDetails `json:"faculty,omitempty"`
	Student *StudentDetails `json:"student,omitempty"`
}

// FacultyDetails holds the faculty-only profile fields.
type FacultyDetails struct {
	Department           string   `json:"department"`
	ResearchAreas        []string `json:"researchAreas"`
	SupervisionAvailable bool     `json:"supervisionAvailable"`
}

// StudentDetails holds the student-only profile fields.
type StudentDetails struct {
	Year     string   `json:"year"`
	Program  string   `json:"program"`
	Skills   []string `json:"skills"`
	Resume   string   `json:"resume,omitempty"`
	Clubs    []string `json:"clubs"`
	Projects []string `json:"projects"`
	Links    Links    `json:"links"`
}

// Links are optional external profile links.
type Links struct {
	GitHub   string `json:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}
