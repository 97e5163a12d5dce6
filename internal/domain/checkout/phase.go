package checkout

import "errors"

var ErrIllegalTransition = errors.New("illegal transition of checkout phase")

type Phase string

const (
	PhaseIdle                     Phase = "IDLE"
	PhaseBuilding                 Phase = "BUILDING"
	PhaseProviderRequest          Phase = "PROVIDER_REQUEST"
	PhasePersisting               Phase = "PERSISTING"
	PhaseAborted                  Phase = "ABORTED"
	PhaseNavigatingToConfirmation Phase = "NAVIGATING_TO_CONFIRMATION"
	PhaseOpeningExternalPayment   Phase = "OPENING_EXTERNAL_PAYMENT"
	PhaseTerminal                 Phase = "TERMINAL"
)

// COD bỏ qua ProviderRequest và đi thẳng tới Persisting.
var transitions = map[Phase][]Phase{
	PhaseIdle:                     {PhaseBuilding},
	PhaseBuilding:                 {PhaseProviderRequest, PhasePersisting, PhaseAborted},
	PhaseProviderRequest:          {PhasePersisting, PhaseAborted},
	PhasePersisting:               {PhaseNavigatingToConfirmation, PhaseOpeningExternalPayment, PhaseAborted},
	PhaseNavigatingToConfirmation: {PhaseTerminal},
	PhaseOpeningExternalPayment:   {PhaseTerminal},
}

func CanTransitionTo(from, to Phase) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (p Phase) IsTerminal() bool {
	return p == PhaseTerminal || p == PhaseAborted
}

// String representation (for logging)
func (p Phase) String() string {
	return string(p)
}

// Machine tracks one dispatch attempt. Every move goes through Advance so
// that "external page opened without a persisted order" cannot happen
// silently.
type Machine struct {
	current Phase
	history []Phase
}

func NewMachine() *Machine {
	return &Machine{current: PhaseIdle, history: []Phase{PhaseIdle}}
}

func (m *Machine) Current() Phase {
	return m.current
}

func (m *Machine) History() []Phase {
	out := make([]Phase, len(m.history))
	copy(out, m.history)
	return out
}

// Reached reports whether the attempt ever entered p.
func (m *Machine) Reached(p Phase) bool {
	for _, h := range m.history {
		if h == p {
			return true
		}
	}
	return false
}

func (m *Machine) Advance(to Phase) error {
	if !CanTransitionTo(m.current, to) {
		return ErrIllegalTransition
	}
	m.current = to
	m.history = append(m.history, to)
	return nil
}
