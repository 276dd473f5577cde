package trends

// Verdict is the qualitative growth bucket derived from a trend's slope.
type Verdict string

const (
	Skyrocketing  Verdict = "Skyrocketing"
	GrowingSteady Verdict = "GrowingSteady"
	Plateauing    Verdict = "Plateauing"
	Declining     Verdict = "Declining"
)

// SlopeThreshold separates the steep verdicts from the gentle ones, in
// questions per year.
const SlopeThreshold = 500.0

// Classify buckets an unrounded slope. Exactly +500 is GrowingSteady and
// exactly -500 is Declining.
func Classify(slope float64) Verdict {
	switch {
	case slope > SlopeThreshold:
		return Skyrocketing
	case slope > 0:
		return GrowingSteady
	case slope > -SlopeThreshold:
		return Plateauing
	default:
		return Declining
	}
}

// Label returns the human readable form shown on the dashboard.
func (v Verdict) Label() string {
	switch v {
	case Skyrocketing:
		return "Skyrocketing 🚀"
	case GrowingSteady:
		return "Growing Steady 📈"
	case Plateauing:
		return "Plateauing ⚖️"
	case Declining:
		return "Declining 📉"
	default:
		return string(v)
	}
}
