package stats

import (
	"time"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
)

// StaleAfter is how long a connection may go without interaction before it is flagged.
const StaleAfter = 30 * 24 * time.Hour

type NetworkingStats struct {
	Total                int                                `json:"total"`
	ByStatus             map[constants.ConnectionStatus]int `json:"byStatus"`
	Outcomes             int                                `json:"outcomes"`
	OutcomesByType       map[constants.OutcomeType]int      `json:"outcomesByType"`
	AvgRelationshipScore float64                            `json:"avgRelationshipScore"`
	NeedsFollowUp        []string                           `json:"needsFollowUp"`
}

func Networking(st *models.State, now time.Time) NetworkingStats {
	out := NetworkingStats{
		ByStatus:       map[constants.ConnectionStatus]int{},
		OutcomesByType: map[constants.OutcomeType]int{},
		NeedsFollowUp:  []string{},
	}
	score := 0.0
	for i := range st.Networking.Connections {
		c := &st.Networking.Connections[i]
		out.Total++
		out.ByStatus[c.Status]++
		score += c.RelationshipScore()
		for _, o := range c.Outcomes {
			out.Outcomes++
			out.OutcomesByType[o.Type]++
		}
		if c.Status != constants.ConnectionDormant && now.Sub(c.LastInteraction) > StaleAfter {
			out.NeedsFollowUp = append(out.NeedsFollowUp, c.ID)
		}
	}
	if out.Total > 0 {
		out.AvgRelationshipScore = round1(score / float64(out.Total))
	}
	return out
}

type BrandingStats struct {
	ByStatus       map[constants.ContentStatus]int `json:"byStatus"`
	Analyzed       int                             `json:"analyzed"`
	PerPillar      map[string]int                  `json:"perPillar"`
	AvgConsistency float64                         `json:"avgConsistency"`
	LatestScore    *models.BrandConsistencyScore   `json:"latestScore,omitempty"`
}

func Branding(st *models.State) BrandingStats {
	b := &st.Branding
	out := BrandingStats{
		ByStatus:  map[constants.ContentStatus]int{},
		PerPillar: map[string]int{},
	}
	for _, c := range b.ContentItems {
		out.ByStatus[c.Status]++
		if c.Analysis != "" {
			out.Analyzed++
		}
		if c.PillarID != "" {
			out.PerPillar[c.PillarID]++
		}
	}
	total := 0
	for i := range b.ConsistencyScores {
		s := &b.ConsistencyScores[i]
		total += s.VoiceAdherence + s.PostingRhythm + s.RepetitionStrength
		if out.LatestScore == nil || s.Date >= out.LatestScore.Date {
			latest := *s
			out.LatestScore = &latest
		}
	}
	if n := len(b.ConsistencyScores); n > 0 {
		out.AvgConsistency = round1(float64(total) / float64(3*n))
	}
	return out
}
