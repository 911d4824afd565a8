package models

import (
	"fmt"
	"strings"
)

// Research opportunity types offered by the posting form.
const (
	ResearchTypeUSRA      = "USRA"
	ResearchTypeAROO      = "AROO"
	ResearchTypeCapstone  = "CIS*4900 Project"
	ResearchTypeAssistant = "Research Assistant"
	ResearchTypeVolunteer = "Volunteer"
)

// ResearchPosting is a research opportunity published by a faculty member.
// ApplicationCount is derived from the research applications that target it.
type ResearchPosting struct {
	ID               int64    `json:"id"`
	FacultyID        int64    `json:"facultyId"`
	FacultyName      string   `json:"facultyName"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Type             string   `json:"type"`
	Duration         string   `json:"duration"`
	Skills           []string `json:"skills"`
	Requirements     string   `json:"requirements,omitempty"`
	Compensation     string   `json:"compensation,omitempty"`
	Deadline         string   `json:"deadline,omitempty"`
	PostedDate       string   `json:"posted"`
	ApplicationCount int      `json:"applications"`
}

// Stage is how far along a startup idea is.
type Stage string

const (
	StageIdea      Stage = "idea"
	StagePrototype Stage = "prototype"
	StageMVP       Stage = "mvp"
	StageLaunched  Stage = "launched"
)

// ParseStage maps a form value onto a Stage. Empty means idea.
func ParseStage(raw string) (Stage, error) {
	switch s := Stage(strings.ToLower(strings.TrimSpace(raw))); s {
	case "":
		return StageIdea, nil
	case StageIdea, StagePrototype, StageMVP, StageLaunched:
		return s, nil
	default:
		return "", fmt.Errorf("unknown stage %q", raw)
	}
}

// StartupPosting is a startup idea published by a student. InterestCount is
// derived from the interests recorded against it.
type StartupPosting struct {
	ID            int64    `json:"id"`
	StudentID     int64    `json:"studentId"`
	StudentName   string   `json:"studentName"`
	Title         string   `json:"title"`
	Pitch         string   `json:"pitch"`
	SkillsNeeded  []string `json:"skillsNeeded"`
	Contact       string   `json:"contact"`
	LookingFor    string   `json:"lookingFor,omitempty"`
	PostedDate    string   `json:"posted"`
	InterestCount int      `json:"interested"`
	Stage         Stage    `json:"stage"`
	Commitment    string   `json:"commitment"`
}
