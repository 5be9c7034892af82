package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/lifetrack/internal/constants"
)

// State is the full life-tracker snapshot. It is persisted as one JSON document.
type State struct {
	Revision  int64     `json:"revision"`
	UpdatedAt time.Time `json:"updatedAt"`

	MeditationSessions []MeditationSession `json:"meditationSessions"`
	MeditationStreak   StreakData          `json:"meditationStreak"`

	Books           []Book           `json:"books"`
	Folders         []ReadingFolder  `json:"folders"`
	ReadingSessions []ReadingSession `json:"readingSessions"`
	ReadingStreak   StreakData       `json:"readingStreak"`
	BookInsights    []BookInsight    `json:"bookInsights"`

	DailyTasks  []DailyTask  `json:"dailyTasks"`
	WeeklyGoals []WeeklyGoal `json:"weeklyGoals"`

	Notes []LifeNote `json:"notes"`

	CodingLearningPaths []CodingLearningPath `json:"codingLearningPaths"`
	DSAProblems         []DSAProblem         `json:"dsaProblems"`
	CSNotes             []CSNote             `json:"csNotes"`
	VideoResources      []VideoResource      `json:"videoResources"`
	CodingProjects      []CodingProject      `json:"codingProjects"`
	DebugLogs           []DebugLog           `json:"debugLogs"`
	SkillMastery        []SkillMastery       `json:"skillMastery"`
	CodingStreak        StreakData           `json:"codingStreak"`

	Branding   PersonalBrandingSystem `json:"branding"`
	Networking NetworkingSystem       `json:"networking"`

	Protection ProtectionSettings `json:"contentProtection"`
	Looks      LooksProgress      `json:"looksmaxxing"`
	Workouts   WorkoutLog         `json:"workouts"`

	DailyFocus         string      `json:"dailyFocus"`
	LastDailyFocusDate string      `json:"lastDailyFocusDate"`
	UserProfile        UserProfile `json:"userProfile"`
}

// DefaultState returns the initial state of a fresh install.
func DefaultState(now time.Time) State {
	s := State{
		Branding:   PersonalBrandingSystem{LastUpdated: now},
		Networking: NetworkingSystem{LastUpdated: now},
		Protection: ProtectionSettings{
			ProtectionLevel: constants.ProtectionOff,
			LastModified:    now,
		},
	}
	s.Normalize()
	return s
}

// Normalize fills every collection missing from an older snapshot with an empty one.
func (s *State) Normalize() {
	s.MeditationSessions = nonNil(s.MeditationSessions)
	s.Books = nonNil(s.Books)
	s.Folders = nonNil(s.Folders)
	s.ReadingSessions = nonNil(s.ReadingSessions)
	s.BookInsights = nonNil(s.BookInsights)
	s.DailyTasks = nonNil(s.DailyTasks)
	s.WeeklyGoals = nonNil(s.WeeklyGoals)
	s.Notes = nonNil(s.Notes)
	s.DSAProblems = nonNil(s.DSAProblems)
	s.CSNotes = nonNil(s.CSNotes)
	s.VideoResources = nonNil(s.VideoResources)
	s.CodingProjects = nonNil(s.CodingProjects)
	s.DebugLogs = nonNil(s.DebugLogs)
	s.SkillMastery = nonNil(s.SkillMastery)

	for i := range s.Folders {
		s.Folders[i].BookIDs = nonNil(s.Folders[i].BookIDs)
	}
	for i := range s.BookInsights {
		s.BookInsights[i].Normalize()
	}
	for i := range s.SkillMastery {
		s.SkillMastery[i].ErrorPatterns = nonNil(s.SkillMastery[i].ErrorPatterns)
		s.SkillMastery[i].LinkedProjects = nonNil(s.SkillMastery[i].LinkedProjects)
		s.SkillMastery[i].RevisionHistory = nonNil(s.SkillMastery[i].RevisionHistory)
	}

	if len(s.CodingLearningPaths) == 0 {
		s.CodingLearningPaths = []CodingLearningPath{
			{ID: "fs", Title: "Full Stack"},
			{ID: "ds", Title: "Data Science"},
			{ID: "do", Title: "DevOps"},
		}
	}
	for i := range s.CodingLearningPaths {
		s.CodingLearningPaths[i].Weeks = nonNil(s.CodingLearningPaths[i].Weeks)
	}

	normalizeStreak(&s.MeditationStreak, constants.StreakMeditation)
	normalizeStreak(&s.ReadingStreak, constants.StreakReading)
	normalizeStreak(&s.CodingStreak, constants.StreakCoding)

	b := &s.Branding
	b.Positioning.CoreThemes = nonNil(b.Positioning.CoreThemes)
	b.Positioning.AntiThemes = nonNil(b.Positioning.AntiThemes)
	b.Positioning.ComparisonMapping = nonNil(b.Positioning.ComparisonMapping)
	b.AudienceIntelligence.TopSegments = nonNil(b.AudienceIntelligence.TopSegments)
	b.AudienceIntelligence.RecurringPainPoints = nonNil(b.AudienceIntelligence.RecurringPainPoints)
	b.AudienceIntelligence.RepeatedQuestions = nonNil(b.AudienceIntelligence.RepeatedQuestions)
	b.ConsistencyScores = nonNil(b.ConsistencyScores)
	b.ContentItems = nonNil(b.ContentItems)
	b.Platforms = nonNil(b.Platforms)
	for i := range b.ContentItems {
		b.ContentItems[i].PlatformIDs = nonNil(b.ContentItems[i].PlatformIDs)
	}

	n := &s.Networking
	n.Connections = nonNil(n.Connections)
	n.ReusableAssets.Starters = nonNil(n.ReusableAssets.Starters)
	n.ReusableAssets.Templates = nonNil(n.ReusableAssets.Templates)
	for i := range n.Connections {
		c := &n.Connections[i]
		c.Starters = nonNil(c.Starters)
		c.DMTemplates = nonNil(c.DMTemplates)
		c.Outcomes = nonNil(c.Outcomes)
		c.Retrospectives = nonNil(c.Retrospectives)
	}

	p := &s.Protection
	if p.ProtectionLevel == "" {
		p.ProtectionLevel = constants.ProtectionOff
	}
	p.CustomBlockedDomains = nonNil(p.CustomBlockedDomains)
	p.CustomBlockedKeywords = nonNil(p.CustomBlockedKeywords)
	p.BlockHistory = nonNil(p.BlockHistory)

	l := &s.Looks
	l.CompletedLessons = nonNil(l.CompletedLessons)
	l.CompletedModules = nonNil(l.CompletedModules)
	l.Badges = nonNil(l.Badges)
	l.Habits = nonNil(l.Habits)
	if l.QuizScores == nil {
		l.QuizScores = map[string]int{}
	}
	for i := range l.Habits {
		if l.Habits[i].Habits == nil {
			l.Habits[i].Habits = map[string]bool{}
		}
	}

	s.Workouts.Summaries = nonNil(s.Workouts.Summaries)
	s.Workouts.Injuries = nonNil(s.Workouts.Injuries)

	if s.UserProfile.FirstName == "" {
		s.UserProfile.FirstName = constants.DefaultFirstName
	}
}

// Clone returns a deep copy that shares no memory with s.
func (s State) Clone() State {
	data, err := json.Marshal(s)
	if err != nil {
		panic(fmt.Sprintf("models: state is not serializable: %v", err))
	}
	var out State
	if err := json.Unmarshal(data, &out); err != nil {
		panic(fmt.Sprintf("models: state round-trip failed: %v", err))
	}
	out.Normalize()
	return out
}

// Marshal encodes the state as the persisted JSON document.
func (s State) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// Unmarshal decodes a persisted document. Absent collections are defaulted.
func Unmarshal(data []byte) (State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("failed to parse state: %w", err)
	}
	s.Normalize()
	return s, nil
}

func normalizeStreak(s *StreakData, systemID string) {
	if s.SystemID == "" {
		s.SystemID = systemID
	}
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
