package models

import (
	"time"

	"github.com/julianstephens/lifetrack/internal/constants"
)

type ConnectionOutcome struct {
	ID          string                `json:"id"`
	Type        constants.OutcomeType `json:"type"`
	Description string                `json:"description"`
	Value       string                `json:"value,omitempty"`
	Date        string                `json:"date"`
}

func (o *ConnectionOutcome) Validate() error {
	if err := requireOneOf("outcome", "type", o.Type,
		constants.OutcomeFreelancingLead, constants.OutcomeJobReferral, constants.OutcomeCollaboration,
		constants.OutcomeAudienceGrowth, constants.OutcomeOther); err != nil {
		return err
	}
	return requireDate("outcome", "date", o.Date)
}

type RelationshipRetrospective struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Worked   string `json:"worked"`
	Forced   string `json:"forced"`
	NextTime string `json:"nextTime"`
}

func (r *RelationshipRetrospective) Validate() error {
	return requireDate("retrospective", "date", r.Date)
}

type NetworkingConnection struct {
	ID                  string                      `json:"id"`
	Name                string                      `json:"name"`
	Platform            string                      `json:"platform,omitempty"`
	Link                string                      `json:"link,omitempty"`
	TrustScore          int                         `json:"trustScore"`
	ResponsivenessScore int                         `json:"responsivenessScore"`
	MutualValueScore    int                         `json:"mutualValueScore"`
	ContextNotes        string                      `json:"contextNotes"`
	Starters            []string                    `json:"starters"`
	DMTemplates         []string                    `json:"dmTemplates"`
	Outcomes            []ConnectionOutcome         `json:"outcomes"`
	Retrospectives      []RelationshipRetrospective `json:"retrospectives"`
	Status              constants.ConnectionStatus  `json:"status"`
	LastInteraction     time.Time                   `json:"lastInteraction"`
	CreatedAt           time.Time                   `json:"createdAt"`
}

func (c *NetworkingConnection) Validate() error {
	if err := requireText("connection", "name", c.Name); err != nil {
		return err
	}
	if err := requireRange("connection", "trustScore", c.TrustScore, 1, 10); err != nil {
		return err
	}
	if err := requireRange("connection", "responsivenessScore", c.ResponsivenessScore, 1, 10); err != nil {
		return err
	}
	if err := requireRange("connection", "mutualValueScore", c.MutualValueScore, 1, 10); err != nil {
		return err
	}
	return requireOneOf("connection", "status", c.Status,
		constants.ConnectionActive, constants.ConnectionNurturing, constants.ConnectionDormant, constants.ConnectionLead)
}

// RelationshipScore is the mean of the three connection scores.
func (c *NetworkingConnection) RelationshipScore() float64 {
	return float64(c.TrustScore+c.ResponsivenessScore+c.MutualValueScore) / 3
}

type ConnectionPatch struct {
	Name                *string
	Platform            *string
	Link                *string
	TrustScore          *int
	ResponsivenessScore *int
	MutualValueScore    *int
	ContextNotes        *string
	Starters            []string
	DMTemplates         []string
	Status              *constants.ConnectionStatus
}

func (p ConnectionPatch) Apply(c *NetworkingConnection) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Platform != nil {
		c.Platform = *p.Platform
	}
	if p.Link != nil {
		c.Link = *p.Link
	}
	if p.TrustScore != nil {
		c.TrustScore = *p.TrustScore
	}
	if p.ResponsivenessScore != nil {
		c.ResponsivenessScore = *p.ResponsivenessScore
	}
	if p.MutualValueScore != nil {
		c.MutualValueScore = *p.MutualValueScore
	}
	if p.ContextNotes != nil {
		c.ContextNotes = *p.ContextNotes
	}
	if p.Starters != nil {
		c.Starters = append([]string(nil), p.Starters...)
	}
	if p.DMTemplates != nil {
		c.DMTemplates = append([]string(nil), p.DMTemplates...)
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
}

type MessageTemplate struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type ReusableAssets struct {
	Starters  []string          `json:"starters"`
	Templates []MessageTemplate `json:"templates"`
}

type NetworkingSystem struct {
	Connections    []NetworkingConnection `json:"connections"`
	ReusableAssets ReusableAssets         `json:"reusableAssets"`
	LastUpdated    time.Time              `json:"lastUpdated"`
}
