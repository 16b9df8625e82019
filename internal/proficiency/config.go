package proficiency

// Config holds the tuning constants for the two proficiency update
// rules. The two rules are deliberately separate: feedback updates are
// relevance-weighted per content piece, quiz outcomes apply a flat
// whole-attempt adjustment.
type Config struct {
	// FeedbackRate scales the relevance-weighted feedback rule.
	FeedbackRate float64
	// QuizSwing is the maximum adjustment a quiz outcome can apply
	// to a linked skill (reached at success rates 0.0 and 1.0).
	QuizSwing float64
}

// DefaultConfig returns the reference tuning: 0.15 feedback learning
// rate and a 20%-max quiz swing.
func DefaultConfig() *Config {
	return &Config{
		FeedbackRate: 0.15,
		QuizSwing:    0.2,
	}
}

// FeedbackAdjustment computes the proficiency change for one skill
// after a normalized feedback score in [0,1]. A neutral score of 0.5
// yields zero change; relevance in [0,1] scales the swing.
func FeedbackAdjustment(score, relevance, rate float64) float64 {
	delta := (score - 0.5) * 2
	return delta * relevance * rate
}

// OutcomeAdjustment computes the flat proficiency change applied to
// every skill a quiz exercises, from the attempt's success rate.
func OutcomeAdjustment(successRate, swing float64) float64 {
	return (successRate - 0.5) * swing
}

// Clamp bounds a proficiency value to [0,1].
func Clamp(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
