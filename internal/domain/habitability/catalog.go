package habitability

// Class buckets planets by equilibrium temperature regime.
type Class string

// Planet classes.
const (
	ClassHot       Class = "hot"
	ClassHabitable Class = "habitable"
	ClassCold      Class = "cold"
)

// Verdict thresholds on the habitability score.
const (
	excellentThreshold = 0.8
	goodThreshold      = 0.6
	possibleThreshold  = 0.4
)

// Planet describes a known or hypothesized planet in the catalog.
type Planet struct {
	Name   string  `json:"name"`
	Period float64 `json:"period_days"`
	TempC  float64 `json:"temp_c"`
	Class  Class   `json:"class"`
}

// Assessment pairs a planet with its computed score and a verdict label.
type Assessment struct {
	Planet  Planet  `json:"planet"`
	Score   float64 `json:"score"`
	Verdict string  `json:"verdict"`
}

// TRAPPIST1 returns the seven TRAPPIST-1 planets with NASA periods and
// estimated equilibrium temperatures. The slice is a fresh copy; callers
// may reorder or filter it freely.
func TRAPPIST1() []Planet {
	return []Planet{
		{Name: "TRAPPIST-1b", Period: 1.51, TempC: 127, Class: ClassHot},
		{Name: "TRAPPIST-1c", Period: 2.42, TempC: 73, Class: ClassHot},
		{Name: "TRAPPIST-1d", Period: 4.05, TempC: 15, Class: ClassHabitable},
		{Name: "TRAPPIST-1e", Period: 6.10, TempC: -22, Class: ClassHabitable},
		{Name: "TRAPPIST-1f", Period: 9.21, TempC: -54, Class: ClassHabitable},
		{Name: "TRAPPIST-1g", Period: 12.35, TempC: -98, Class: ClassCold},
		{Name: "TRAPPIST-1h", Period: 18.77, TempC: -123, Class: ClassCold},
	}
}

// HabitableZone filters a catalog down to its habitable-zone planets.
func HabitableZone(planets []Planet) []Planet {
	var out []Planet
	for _, p := range planets {
		if p.Class == ClassHabitable {
			out = append(out, p)
		}
	}
	return out
}

// Assess scores a planet's temperature and attaches a verdict label.
func Assess(p Planet) Assessment {
	score := Score(p.TempC)
	return Assessment{Planet: p, Score: score, Verdict: verdict(score)}
}

// AssessAll assesses every planet in a catalog, preserving order.
func AssessAll(planets []Planet) []Assessment {
	out := make([]Assessment, len(planets))
	for i, p := range planets {
		out[i] = Assess(p)
	}
	return out
}

func verdict(score float64) string {
	switch {
	case score > excellentThreshold:
		return "excellent"
	case score > goodThreshold:
		return "good"
	case score > possibleThreshold:
		return "possible"
	default:
		return "marginal"
	}
}
