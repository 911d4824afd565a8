package models

import "time"

// ApplicationKind distinguishes research applications from incubator ones.
type ApplicationKind string

const (
	KindResearch  ApplicationKind = "research"
	KindIncubator ApplicationKind = "incubator"
)

// ApplicationStatus is the review state of an application. Nothing in the
// platform moves an application out of pending yet.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

// DefaultCohort labels incubator applications when no cohort is configured.
const DefaultCohort = "Fall 2025"

// Application is immutable once created except for Status. Research
// applications set PostID and Research; incubator applications set StartupID,
// Incubator and Cohort.
type Application struct {
	ID            int64                 `json:"id"`
	PostID        int64                 `json:"postId,omitempty"`
	StartupID     int64                 `json:"startupId,omitempty"`
	ApplicantID   int64                 `json:"applicantId"`
	ApplicantName string                `json:"applicantName"`
	Kind          ApplicationKind       `json:"type"`
	Research      *ResearchApplication  `json:"research,omitempty"`
	Incubator     *IncubatorApplication `json:"incubator,omitempty"`
	Cohort        string                `json:"cohort,omitempty"`
	Status        ApplicationStatus     `json:"status"`
	SubmittedAt   time.Time             `json:"submitted"`
}

// TargetID returns the posting the application was filed against.
func (a Application) TargetID() int64 {
	if a.Kind == KindIncubator {
		return a.StartupID
	}
	return a.PostID
}

// ResearchApplication is the payload of a research application.
type ResearchApplication struct {
	CoverLetter        string `json:"coverLetter"`
	Availability       string `json:"availability"`
	RelevantExperience string `json:"relevantExperience"`
	WhyInterested      string `json:"whyInterested"`
}

// IncubatorApplication is the payload of an incubator cohort application.
type IncubatorApplication struct {
	TeamMembers string `json:"teamMembers"`
	Progress    string `json:"progress"`
	Milestones  string `json:"milestones"`
	PitchDeck   string `json:"pitchDeck"`
	Commitment  string `json:"commitment"`
}

// Interest is a lightweight expression of interest in a startup posting.
type Interest struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	UserID    int64     `json:"userId"`
	UserName  string    `json:"userName"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
