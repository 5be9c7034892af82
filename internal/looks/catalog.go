// Package looks is the self-improvement course: a fixed catalog of pillars and lessons,
// a daily habit checklist and badge rules.
package looks

type LessonType string

const (
	LessonText  LessonType = "text"
	LessonVideo LessonType = "video"
)

type Lesson struct {
	ID          string
	Title       string
	Description string
	Duration    string
	Type        LessonType
}

type Pillar struct {
	ID          string
	Title       string
	Description string
	Lessons     []Lesson
}

type Habit struct {
	ID    string
	Label string
}

type Badge struct {
	ID          string
	Name        string
	Description string
}

const (
	BadgeFirstLesson  = "first-lesson"
	BadgePillarMaster = "pillar-master"
	BadgeStreak7      = "streak-7"
	BadgeHabitKing    = "habit-king"
	BadgeAllPillars   = "all-pillars"
	BadgeXP500        = "xp-500"

	LessonXP    = 15
	HabitKingXP = 50
)

var Pillars = []Pillar{
	{
		ID: "diet", Title: "Diet & Nutrition",
		Description: "100% clean eating - red meat, fruit, eggs, raw dairy",
		Lessons: []Lesson{
			{"d1", "Core Philosophy", "Health is Looks - why clean eating transforms appearance", "5 min", LessonText},
			{"d2", "Allowed Foods", "Red meat, fruit, eggs, honey, raw A2 dairy explained", "6 min", LessonVideo},
			{"d3", "Foods to Avoid", "Seed oils, processed foods, and why they damage you", "5 min", LessonText},
			{"d4", "Cooking Guidelines", "Cast iron, tallow, proper preparation methods", "4 min", LessonVideo},
			{"d5", "Advanced: Organ Meats", "Liver, bone broth, and nutrient density", "5 min", LessonText},
			{"d6", "Meal Timing", "When to eat for optimal hormones and energy", "4 min", LessonText},
		},
	},
	{
		ID: "fitness", Title: "Fitness & Movement",
		Description: "Natural movement patterns - walking, sprinting, sports",
		Lessons: []Lesson{
			{"f1", "Movement Philosophy", "Why natural movement beats gym routines", "4 min", LessonText},
			{"f2", "Daily Walking", "10,000+ steps - the foundation of fitness", "3 min", LessonVideo},
			{"f3", "Sprint Protocol", "10-second all-out sprints, proper recovery", "5 min", LessonVideo},
			{"f4", "Recreational Sports", "Basketball, swimming, climbing for fun fitness", "4 min", LessonText},
			{"f5", "Avoid Long Cardio", "Why marathon running ages you", "3 min", LessonText},
		},
	},
	{
		ID: "hormones", Title: "Hormone Optimization",
		Description: "Avoid endocrine disruptors, optimize thyroid",
		Lessons: []Lesson{
			{"h1", "Endocrine Disruptors", "Fragrances, plastics, polyester - hidden dangers", "5 min", LessonText},
			{"h2", "Thyroid Health", "The master gland for metabolism and appearance", "6 min", LessonVideo},
			{"h3", "Sleep Optimization", "Dark room, cool temp, consistent schedule", "4 min", LessonText},
			{"h4", "Sunlight Exposure", "Morning sun for circadian rhythm and vitamin D", "4 min", LessonText},
		},
	},
	{
		ID: "facial", Title: "Facial Techniques",
		Description: "Mewing, thumb pulling, chin tucking for structure",
		Lessons: []Lesson{
			{"fc1", "Proper Tongue Posture", "Mewing basics - tongue on palate 24/7", "5 min", LessonVideo},
			{"fc2", "Thumb Pulling", "Palate expansion technique for wider face", "6 min", LessonVideo},
			{"fc3", "Chin Tucking", "Correct forward head posture", "4 min", LessonVideo},
			{"fc4", "Chewing Practice", "Hard chewing for masseter development", "4 min", LessonText},
		},
	},
	{
		ID: "habits", Title: "Myofunctional Habits",
		Description: "Breathing, posture, swallowing patterns",
		Lessons: []Lesson{
			{"hb1", "Nasal Breathing", "Mouth closed 24/7, even during exercise", "4 min", LessonText},
			{"hb2", "Proper Swallowing", "Tongue-driven swallow without facial muscles", "5 min", LessonVideo},
			{"hb3", "Posture Correction", "Shoulders back, chin tucked, spine aligned", "5 min", LessonVideo},
			{"hb4", "Lip Seal", "Maintaining closed lips at rest", "3 min", LessonText},
		},
	},
}

var DailyHabits = []Habit{
	{"steps", "10K Steps"},
	{"sprint", "Sprint Session"},
	{"thumbpull", "Thumb Pulling"},
	{"chewing", "Hard Chewing"},
	{"cleaneating", "Clean Eating"},
	{"nasalbreath", "Nasal Breathing"},
}

var Badges = []Badge{
	{BadgeFirstLesson, "First Step", "Complete your first lesson"},
	{BadgePillarMaster, "Pillar Master", "Complete a full pillar"},
	{BadgeStreak7, "Week Warrior", "7-day streak"},
	{BadgeHabitKing, "Habit King", "Complete all daily habits"},
	{BadgeAllPillars, "Ascended", "Complete all 5 pillars"},
	{BadgeXP500, "Dedicated", "Earn 500 XP"},
}

// FindLesson returns the lesson and its pillar.
func FindLesson(id string) (Lesson, Pillar, bool) {
	for _, p := range Pillars {
		for _, l := range p.Lessons {
			if l.ID == id {
				return l, p, true
			}
		}
	}
	return Lesson{}, Pillar{}, false
}

func FindPillar(id string) (Pillar, bool) {
	for _, p := range Pillars {
		if p.ID == id {
			return p, true
		}
	}
	return Pillar{}, false
}

func isHabit(id string) bool {
	for _, h := range DailyHabits {
		if h.ID == id {
			return true
		}
	}
	return false
}

func totalLessons() int {
	n := 0
	for _, p := range Pillars {
		n += len(p.Lessons)
	}
	return n
}
