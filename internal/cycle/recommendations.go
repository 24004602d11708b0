package cycle

// Recommendation is the static advice shown for a phase.
type Recommendation struct {
	BestFor []string `json:"best_for"`
	Avoid   []string `json:"avoid"`
	Tips    string   `json:"tips"`
}

type EnergyLevel string

const (
	EnergyLow       EnergyLevel = "low"
	EnergyRising    EnergyLevel = "rising"
	EnergyPeak      EnergyLevel = "peak"
	EnergyDeclining EnergyLevel = "declining"
)

type TaskCategory string

const (
	TaskDeepWork TaskCategory = "deep_work"
	TaskCreative TaskCategory = "creative"
	TaskSocial   TaskCategory = "social"
	TaskAdmin    TaskCategory = "admin"
)

func (category TaskCategory) Valid() bool {
	switch category {
	case TaskDeepWork, TaskCreative, TaskSocial, TaskAdmin:
		return true
	default:
		return false
	}
}

// PhaseInfo describes a phase for display.
type PhaseInfo struct {
	Phase       Phase          `json:"phase"`
	Name        string         `json:"name"`
	TypicalDays string         `json:"typical_days"`
	EnergyLevel EnergyLevel    `json:"energy_level"`
	BestFor     []TaskCategory `json:"best_for"`
	Description string         `json:"description"`
}

type TaskCategoryInfo struct {
	Category             TaskCategory `json:"category"`
	Name                 string       `json:"name"`
	Icon                 string       `json:"icon"`
	Examples             []string     `json:"examples"`
	CognitiveLoadTypical string       `json:"cognitive_load_typical"`
}

// CognitiveLoad is how demanding a goal is.
type CognitiveLoad string

const (
	LoadDeep      CognitiveLoad = "deep"
	LoadMedium    CognitiveLoad = "medium"
	LoadLight     CognitiveLoad = "light"
	LoadAutopilot CognitiveLoad = "autopilot"
)

func (load CognitiveLoad) Valid() bool {
	switch load {
	case LoadDeep, LoadMedium, LoadLight, LoadAutopilot:
		return true
	default:
		return false
	}
}

// EnergyMultiplier weights expected energy by phase. Unknown phases get 1.
func EnergyMultiplier(phase Phase) float64 {
	switch phase {
	case PhaseMenstrual:
		return 0.7
	case PhaseFollicular:
		return 0.9
	case PhaseOvulation:
		return 1.1
	case PhaseLuteal:
		return 0.8
	default:
		return 1.0
	}
}

// RecommendationsFor returns a fresh copy of the advice for phase.
func RecommendationsFor(phase Phase) Recommendation {
	switch phase {
	case PhaseMenstrual:
		return Recommendation{
			BestFor: []string{"Rest", "Reflection", "Planning", "Light admin"},
			Avoid:   []string{"High-stakes presentations", "Starting new projects", "Intense workouts"},
			Tips:    "Honor your need for rest. This is a great time for introspection and setting intentions for the coming cycle.",
		}
	case PhaseFollicular:
		return Recommendation{
			BestFor: []string{"Starting projects", "Brainstorming", "Learning new skills", "Creative work"},
			Avoid:   []string{"Routine tasks only", "Playing it safe"},
			Tips:    "Your brain is primed for new information. Take on challenges and try new things!",
		}
	case PhaseOvulation:
		return Recommendation{
			BestFor: []string{"Presentations", "Negotiations", "Social events", "Important conversations"},
			Avoid:   []string{"Isolation", "Boring tasks"},
			Tips:    "You're at your most articulate and charismatic. Schedule important meetings now.",
		}
	case PhaseLuteal:
		return Recommendation{
			BestFor: []string{"Detail work", "Editing", "Finishing projects", "Organizing"},
			Avoid:   []string{"Starting new ventures", "Making big decisions late in phase"},
			Tips:    "Your attention to detail is heightened. Great time to review and refine work.",
		}
	default:
		return Recommendation{BestFor: []string{}, Avoid: []string{}}
	}
}

func InfoFor(phase Phase) PhaseInfo {
	switch phase {
	case PhaseMenstrual:
		return PhaseInfo{
			Phase:       phase,
			Name:        "Menstrual",
			TypicalDays: "1-5",
			EnergyLevel: EnergyLow,
			BestFor:     []TaskCategory{TaskAdmin},
			Description: "Rest and reflect. Good for lighter tasks, planning, and self-care.",
		}
	case PhaseFollicular:
		return PhaseInfo{
			Phase:       phase,
			Name:        "Follicular",
			TypicalDays: "6-14",
			EnergyLevel: EnergyRising,
			BestFor:     []TaskCategory{TaskCreative, TaskDeepWork},
			Description: "Energy is building. Great for starting new projects, learning, and brainstorming.",
		}
	case PhaseOvulation:
		return PhaseInfo{
			Phase:       phase,
			Name:        "Ovulation",
			TypicalDays: "14-16",
			EnergyLevel: EnergyPeak,
			BestFor:     []TaskCategory{TaskSocial, TaskDeepWork},
			Description: "Peak energy and communication. Best for presentations, difficult conversations, big tasks.",
		}
	case PhaseLuteal:
		return PhaseInfo{
			Phase:       phase,
			Name:        "Luteal",
			TypicalDays: "17-28",
			EnergyLevel: EnergyDeclining,
			BestFor:     []TaskCategory{TaskAdmin, TaskDeepWork},
			Description: "Focus turns inward. Good for detail work, finishing projects, organizing.",
		}
	default:
		return PhaseInfo{Phase: phase, BestFor: []TaskCategory{}}
	}
}

func TaskCategories() []TaskCategoryInfo {
	return []TaskCategoryInfo{
		{Category: TaskDeepWork, Name: "Deep Work", Icon: "🧠", Examples: []string{"Coding", "Writing", "Analysis", "Problem-solving"}, CognitiveLoadTypical: "high"},
		{Category: TaskCreative, Name: "Creative", Icon: "✨", Examples: []string{"Brainstorming", "Design", "Strategy", "Planning"}, CognitiveLoadTypical: "medium"},
		{Category: TaskSocial, Name: "Social", Icon: "👥", Examples: []string{"Meetings", "Calls", "Collaboration", "Networking"}, CognitiveLoadTypical: "medium"},
		{Category: TaskAdmin, Name: "Admin", Icon: "📋", Examples: []string{"Emails", "Scheduling", "Filing", "Quick tasks"}, CognitiveLoadTypical: "low"},
	}
}

// GoalFitsPhase reports whether a goal of the given load suits the phase.
func GoalFitsPhase(phase Phase, load CognitiveLoad) bool {
	switch phase {
	case PhaseMenstrual:
		return load == LoadLight || load == LoadAutopilot
	case PhaseFollicular, PhaseOvulation:
		return load == LoadDeep || load == LoadMedium
	case PhaseLuteal:
		return load == LoadMedium || load == LoadLight
	default:
		return false
	}
}
