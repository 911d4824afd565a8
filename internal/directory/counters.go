package directory

import (
	"errors"
	"fmt"

	"incubator/internal/models"
)

// CheckCounters verifies that every posting's materialized counter equals its
// seeded baseline plus the number of records that target it.
func CheckCounters(s State) error {
	applications := make(map[int64]int)
	for _, a := range s.Applications {
		if a.Kind == models.KindResearch {
			applications[a.TargetID()]++
		}
	}
	interests := make(map[int64]int)
	for _, in := range s.Interests {
		interests[in.PostID]++
	}

	var errs []error
	for _, p := range s.Research {
		want := s.ResearchBaseline[p.ID] + applications[p.ID]
		if p.ApplicationCount != want {
			errs = append(errs, fmt.Errorf("research posting %d: applicationCount %d, derived %d", p.ID, p.ApplicationCount, want))
		}
	}
	for _, p := range s.Startups {
		want := s.StartupBaseline[p.ID] + interests[p.ID]
		if p.InterestCount != want {
			errs = append(errs, fmt.Errorf("startup posting %d: interestCount %d, derived %d", p.ID, p.InterestCount, want))
		}
	}
	return errors.Join(errs...)
}
