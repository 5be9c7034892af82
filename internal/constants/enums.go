package constants

// TaskCategory is the life area a daily task belongs to
type TaskCategory string

// BookStatus is the reading state of a book
type BookStatus string

// MeditationType is the style of a meditation session
type MeditationType string

// LinkedSystem names the tracker a note is attached to
type LinkedSystem string

// ProblemDifficulty, ProblemCategory and ProblemStatus describe a DSA problem
type (
	ProblemDifficulty string
	ProblemCategory   string
	ProblemStatus     string
)

// CSNoteCategory is the area of a CS note
type CSNoteCategory string

// ProjectStatus is the lifecycle of a coding project
type ProjectStatus string

// LinkType is the kind of link attached to a coding project
type LinkType string

// WeekStatus is the status of a learning-path week
type WeekStatus string

// ProjectDepth is how deeply a skill was exercised in a project
type ProjectDepth string

// Readiness is how well a skill can be presented
type Readiness string

// ContentIntent is the strategic intent of a branding content item
type ContentIntent string

// ConversionPath is where a content item leads its audience
type ConversionPath string

// ContentStatus is the publishing state of a content item
type ContentStatus string

// ConnectionStatus is the relationship state of a networking connection
type ConnectionStatus string

// OutcomeType is the kind of value a connection produced
type OutcomeType string

// ProtectionLevel is the strength of the content filter
type ProtectionLevel string

// FatigueStatus is how tired a workout left the user
type FatigueStatus string

// Recommendation is the direction of the next training session
type Recommendation string

const (
	TaskPhysical TaskCategory = "physical"
	TaskMental   TaskCategory = "mental"
	TaskWork     TaskCategory = "work"
	TaskPersonal TaskCategory = "personal"

	BookReading   BookStatus = "reading"
	BookCompleted BookStatus = "completed"
	BookPaused    BookStatus = "paused"

	MeditationGuided    MeditationType = "guided"
	MeditationUnguided  MeditationType = "unguided"
	MeditationBreathing MeditationType = "breathing"
	MeditationBodyScan  MeditationType = "body-scan"

	SystemWorkout    LinkedSystem = "workout"
	SystemMeditation LinkedSystem = "meditation"
	SystemReading    LinkedSystem = "reading"
	SystemGeneral    LinkedSystem = "general"

	DifficultyEasy   ProblemDifficulty = "easy"
	DifficultyMedium ProblemDifficulty = "medium"
	DifficultyHard   ProblemDifficulty = "hard"

	CategoryDSA          ProblemCategory = "DSA"
	CategoryCSCore       ProblemCategory = "CS Core"
	CategorySystemDesign ProblemCategory = "System Design"

	ProblemPending ProblemStatus = "pending"
	ProblemSolved  ProblemStatus = "solved"
	ProblemReview  ProblemStatus = "review"

	NoteCSCore       CSNoteCategory = "CS Core"
	NoteSystemDesign CSNoteCategory = "System Design"

	ProjectPlanning   ProjectStatus = "planning"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectCompleted  ProjectStatus = "completed"

	LinkGitHub  LinkType = "GitHub"
	LinkBlog    LinkType = "Blog"
	LinkDocs    LinkType = "Docs"
	LinkYouTube LinkType = "YouTube"

	WeekPending    WeekStatus = "pending"
	WeekInProgress WeekStatus = "in-progress"
	WeekCompleted  WeekStatus = "completed"

	DepthToy        ProjectDepth = "toy"
	DepthPartial    ProjectDepth = "partial"
	DepthProduction ProjectDepth = "production"

	ReadinessNotReady   Readiness = "not-ready"
	ReadinessCanExplain Readiness = "can-explain"
	ReadinessCanDefend  Readiness = "can-defend"

	IntentAuthority      ContentIntent = "Authority"
	IntentTrust          ContentIntent = "Trust"
	IntentRelatability   ContentIntent = "Relatability"
	IntentTeaching       ContentIntent = "Teaching"
	IntentLeadGeneration ContentIntent = "Lead Generation"

	PathNewsletter    ConversionPath = "Newsletter"
	PathLead          ConversionPath = "Lead"
	PathTeachingAsset ConversionPath = "Teaching Asset"
	PathNone          ConversionPath = "None"

	ContentIdea      ContentStatus = "idea"
	ContentDraft     ContentStatus = "draft"
	ContentPublished ContentStatus = "published"

	ConnectionActive    ConnectionStatus = "active"
	ConnectionNurturing ConnectionStatus = "nurturing"
	ConnectionDormant   ConnectionStatus = "dormant"
	ConnectionLead      ConnectionStatus = "lead"

	OutcomeFreelancingLead OutcomeType = "Freelancing Lead"
	OutcomeJobReferral     OutcomeType = "Job Referral"
	OutcomeCollaboration   OutcomeType = "Collaboration"
	OutcomeAudienceGrowth  OutcomeType = "Audience Growth"
	OutcomeOther           OutcomeType = "Other"

	ProtectionOff    ProtectionLevel = "off"
	ProtectionLight  ProtectionLevel = "light"
	ProtectionStrong ProtectionLevel = "strong"
	ProtectionStrict ProtectionLevel = "strict"

	FatigueLow      FatigueStatus = "low"
	FatigueModerate FatigueStatus = "moderate"
	FatigueHigh     FatigueStatus = "high"

	RecommendIncrease Recommendation = "increase"
	RecommendMaintain Recommendation = "maintain"
	RecommendDecrease Recommendation = "decrease"

	// Streak system ids
	StreakMeditation = "meditation"
	StreakReading    = "reading"
	StreakCoding     = "coding"
)
