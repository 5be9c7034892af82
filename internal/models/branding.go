package models

import (
	"time"

	"github.com/julianstephens/lifetrack/internal/constants"
)

type ExpertisePillar struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type CompetitorMapping struct {
	CompetitorName    string `json:"competitorName"`
	TheirDepth        string `json:"theirDepth"`
	MyDifferentiation string `json:"myDifferentiation"`
}

type BrandingPositioning struct {
	CoreThemes        []ExpertisePillar   `json:"coreThemes"`
	KnownFor          string              `json:"knownFor"`
	AntiThemes        []string            `json:"antiThemes"`
	Intent            string              `json:"intent"`
	ComparisonMapping []CompetitorMapping `json:"comparisonMapping"`
}

type PositioningPatch struct {
	KnownFor          *string
	AntiThemes        []string
	Intent            *string
	ComparisonMapping []CompetitorMapping
}

func (p PositioningPatch) Apply(b *BrandingPositioning) {
	if p.KnownFor != nil {
		b.KnownFor = *p.KnownFor
	}
	if p.AntiThemes != nil {
		b.AntiThemes = append([]string(nil), p.AntiThemes...)
	}
	if p.Intent != nil {
		b.Intent = *p.Intent
	}
	if p.ComparisonMapping != nil {
		b.ComparisonMapping = append([]CompetitorMapping(nil), p.ComparisonMapping...)
	}
}

type AudienceIntelligence struct {
	TopSegments         []string `json:"topSegments"`
	RecurringPainPoints []string `json:"recurringPainPoints"`
	RepeatedQuestions   []string `json:"repeatedQuestions"`
}

type AudiencePatch struct {
	TopSegments         []string
	RecurringPainPoints []string
	RepeatedQuestions   []string
}

func (p AudiencePatch) Apply(a *AudienceIntelligence) {
	if p.TopSegments != nil {
		a.TopSegments = append([]string(nil), p.TopSegments...)
	}
	if p.RecurringPainPoints != nil {
		a.RecurringPainPoints = append([]string(nil), p.RecurringPainPoints...)
	}
	if p.RepeatedQuestions != nil {
		a.RepeatedQuestions = append([]string(nil), p.RepeatedQuestions...)
	}
}

type Platform struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Goal      string `json:"goal"`
	Format    string `json:"format"`
	Frequency string `json:"frequency"`
	Effort    int    `json:"effort"`
}

func (p *Platform) Validate() error {
	if err := requireText("platform", "name", p.Name); err != nil {
		return err
	}
	if p.Effort < 0 {
		return invalid("platform", "effort", "cannot be negative")
	}
	return nil
}

type BrandConsistencyScore struct {
	ID                 string `json:"id"`
	Date               string `json:"date"`
	VoiceAdherence     int    `json:"voiceAdherence"`
	PostingRhythm      int    `json:"postingRhythm"`
	RepetitionStrength int    `json:"repetitionStrength"`
	Notes              string `json:"notes,omitempty"`
}

func (s *BrandConsistencyScore) Validate() error {
	if err := requireDate("consistency score", "date", s.Date); err != nil {
		return err
	}
	if err := requireRange("consistency score", "voiceAdherence", s.VoiceAdherence, 1, 10); err != nil {
		return err
	}
	if err := requireRange("consistency score", "postingRhythm", s.PostingRhythm, 1, 10); err != nil {
		return err
	}
	return requireRange("consistency score", "repetitionStrength", s.RepetitionStrength, 1, 10)
}

type BrandingContentItem struct {
	ID             string                   `json:"id"`
	Title          string                   `json:"title"`
	Body           string                   `json:"body"`
	PlatformIDs    []string                 `json:"platformIds"`
	PillarID       string                   `json:"pillarId"`
	Intent         constants.ContentIntent  `json:"intent"`
	ConversionPath constants.ConversionPath `json:"conversionPath"`
	Status         constants.ContentStatus  `json:"status"`
	Analysis       string                   `json:"analysis,omitempty"`
	CreatedAt      time.Time                `json:"createdAt"`
}

func (c *BrandingContentItem) Validate() error {
	if err := requireText("content", "title", c.Title); err != nil {
		return err
	}
	if err := requireOneOf("content", "intent", c.Intent,
		constants.IntentAuthority, constants.IntentTrust, constants.IntentRelatability,
		constants.IntentTeaching, constants.IntentLeadGeneration); err != nil {
		return err
	}
	if err := requireOneOf("content", "conversionPath", c.ConversionPath,
		constants.PathNewsletter, constants.PathLead, constants.PathTeachingAsset, constants.PathNone); err != nil {
		return err
	}
	return requireOneOf("content", "status", c.Status,
		constants.ContentIdea, constants.ContentDraft, constants.ContentPublished)
}

type ContentPatch struct {
	Title          *string
	Body           *string
	PlatformIDs    []string
	PillarID       *string
	Intent         *constants.ContentIntent
	ConversionPath *constants.ConversionPath
	Status         *constants.ContentStatus
	Analysis       *string
}

func (p ContentPatch) Apply(c *BrandingContentItem) {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Body != nil {
		c.Body = *p.Body
	}
	if p.PlatformIDs != nil {
		c.PlatformIDs = append([]string(nil), p.PlatformIDs...)
	}
	if p.PillarID != nil {
		c.PillarID = *p.PillarID
	}
	if p.Intent != nil {
		c.Intent = *p.Intent
	}
	if p.ConversionPath != nil {
		c.ConversionPath = *p.ConversionPath
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.Analysis != nil {
		c.Analysis = *p.Analysis
	}
}

type PersonalBrandingSystem struct {
	Positioning          BrandingPositioning     `json:"positioning"`
	AudienceIntelligence AudienceIntelligence    `json:"audienceIntelligence"`
	ConsistencyScores    []BrandConsistencyScore `json:"consistencyScores"`
	ContentItems         []BrandingContentItem   `json:"contentItems"`
	Platforms            []Platform              `json:"platforms"`
	LastUpdated          time.Time               `json:"lastUpdated"`
}
