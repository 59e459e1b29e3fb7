package onboarding

import "github.com/gdugdh24/cofound-backend/internal/domain"

// Action is a wizard navigation request.
type Action string

const (
	ActionNext Action = "next"
	ActionBack Action = "back"
	ActionSkip Action = "skip"
)

// Transition is the outcome of an action on a step: the step to persist (if
// any) and the step the wizard moves to.
type Transition struct {
	Persist     bool
	PersistStep int
	Completed   bool
	NextStep    int
}

// Plan computes the transition for action taken on step. It does no I/O.
func Plan(step int, action Action) (Transition, error) {
	step = clampStep(step)

	switch action {
	case ActionBack:
		return Transition{NextStep: max(step-1, domain.OnboardingFirstStep)}, nil
	case ActionSkip:
		if !domain.IsOptionalStep(step) {
			return Transition{}, domain.ErrSkipNotAllowed
		}
		return planAdvance(step), nil
	case ActionNext:
		return planAdvance(step), nil
	default:
		return Transition{}, domain.ErrInvalidInput
	}
}

func planAdvance(step int) Transition {
	if step >= domain.OnboardingTotalSteps {
		return Transition{
			Persist:     true,
			PersistStep: domain.OnboardingTotalSteps,
			Completed:   true,
			NextStep:    domain.OnboardingTotalSteps,
		}
	}
	return Transition{
		Persist:     true,
		PersistStep: step + 1,
		NextStep:    step + 1,
	}
}

// clampStep keeps a stored step inside 1..7.
func clampStep(step int) int {
	if step < domain.OnboardingFirstStep {
		return domain.OnboardingFirstStep
	}
	if step > domain.OnboardingTotalSteps {
		return domain.OnboardingTotalSteps
	}
	return step
}
