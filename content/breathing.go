package content

// BreathPhase is a phase of the 4-7-8 breathing exercise.
type BreathPhase string

const (
	PhaseReady  BreathPhase = "Ready"
	PhaseInhale BreathPhase = "Inhale"
	PhaseHold   BreathPhase = "Hold"
	PhaseExhale BreathPhase = "Exhale"
)

// Phase durations in seconds. Inhale through the nose, hold, long exhale
// through the mouth.
const (
	InhaleSeconds = 4
	HoldSeconds   = 7
	ExhaleSeconds = 8
)

// PhaseStep describes one phase of the cycle for API consumers.
type PhaseStep struct {
	Phase    BreathPhase `json:"phase"`
	Seconds  int         `json:"seconds"`
	Guidance string      `json:"guidance"`
}

// PhaseTable returns the 4-7-8 cycle description.
func PhaseTable() []PhaseStep {
	return []PhaseStep{
		{Phase: PhaseInhale, Seconds: InhaleSeconds, Guidance: "Inhale (Nose)"},
		{Phase: PhaseHold, Seconds: HoldSeconds, Guidance: "Hold Breath"},
		{Phase: PhaseExhale, Seconds: ExhaleSeconds, Guidance: "Exhale (Mouth)"},
	}
}

// BreathingSession drives the 4-7-8 guide one second at a time. The first
// tick leaves Ready for Inhale; each phase restarts its counter at zero
// and advances once its duration has elapsed, then the cycle repeats from
// Inhale until Reset.
type BreathingSession struct {
	phase   BreathPhase
	elapsed int
}

// NewBreathingSession returns a session in the Ready phase.
func NewBreathingSession() *BreathingSession {
	return &BreathingSession{phase: PhaseReady}
}

// Phase returns the current phase.
func (s *BreathingSession) Phase() BreathPhase {
	return s.phase
}

// Elapsed returns full seconds spent in the current phase.
func (s *BreathingSession) Elapsed() int {
	return s.elapsed
}

// Tick advances the session by one second and returns the resulting
// phase and elapsed counter.
func (s *BreathingSession) Tick() (BreathPhase, int) {
	switch {
	case s.phase == PhaseReady:
		s.phase = PhaseInhale
		s.elapsed = 0
	case s.phase == PhaseInhale && s.elapsed >= InhaleSeconds:
		s.phase = PhaseHold
		s.elapsed = 0
	case s.phase == PhaseHold && s.elapsed >= HoldSeconds:
		s.phase = PhaseExhale
		s.elapsed = 0
	case s.phase == PhaseExhale && s.elapsed >= ExhaleSeconds:
		s.phase = PhaseInhale
		s.elapsed = 0
	default:
		s.elapsed++
	}
	return s.phase, s.elapsed
}

// Reset returns the session to Ready, as stopping the exercise does.
func (s *BreathingSession) Reset() {
	s.phase = PhaseReady
	s.elapsed = 0
}
