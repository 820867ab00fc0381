package model

// MatchWeights holds the tunable parameters of the user-to-group planner.
// It is loaded from configuration and passed explicitly into the planner;
// there is no module-level weight state.
type MatchWeights struct {
	PHQWeight         float64 `json:"phq_weight" koanf:"phq_weight"`
	GADWeight         float64 `json:"gad_weight" koanf:"gad_weight"`
	InterestWeight    float64 `json:"interest_weight" koanf:"interest_weight"`
	LifeWeight        float64 `json:"life_weight" koanf:"life_weight"`
	MatchingThreshold float64 `json:"matching_threshold" koanf:"matching_threshold"`
	CutoffDistanceKm  float64 `json:"cutoff_distance_km" koanf:"cutoff_distance_km"`
}

// DefaultMatchWeights provides the deployment defaults for group planning.
var DefaultMatchWeights = MatchWeights{
	PHQWeight:         0.3,
	GADWeight:         0.2,
	InterestWeight:    0.2,
	LifeWeight:        0.3,
	MatchingThreshold: 0.4,
	CutoffDistanceKm:  50,
}

// EventTypeWeights is the weight profile applied when scoring an event
// against a group. Profiles are keyed by event type with a default fallback
// for unrecognized types.
type EventTypeWeights struct {
	Interest   float64 `json:"interest" koanf:"interest"`
	Transition float64 `json:"transition" koanf:"transition"`
	Clinical   float64 `json:"clinical" koanf:"clinical"`
}

// DefaultEventTypeWeights is the fallback profile for unrecognized event
// types.
var DefaultEventTypeWeights = EventTypeWeights{
	Interest:   0.4,
	Transition: 0.3,
	Clinical:   0.3,
}

// DefaultEventWeightProfiles provides per-type profiles for the well-known
// event types. Deployments override these through configuration.
var DefaultEventWeightProfiles = map[string]EventTypeWeights{
	EventTypeVolunteering: {Interest: 0.9, Transition: 0.1, Clinical: 0.0},
	EventTypeSupportGroup: {Interest: 0.2, Transition: 0.3, Clinical: 0.5},
	EventTypeSocial:       {Interest: 0.5, Transition: 0.3, Clinical: 0.2},
	EventTypeOutdoors:     {Interest: 0.6, Transition: 0.2, Clinical: 0.2},
	EventTypeWorkshop:     {Interest: 0.7, Transition: 0.2, Clinical: 0.1},
}

// Event matching constants. The acceptance threshold and operational cutoff
// are fixed, distinct from the planner's configurable threshold and cutoff.
const (
	EventMatchThreshold = 0.40
	EventCutoffKm       = 50.0
)

// ProfileFor returns the weight profile for an event type, falling back to
// the default profile when the type has no entry.
func ProfileFor(profiles map[string]EventTypeWeights, eventType string) EventTypeWeights {
	if p, ok := profiles[eventType]; ok {
		return p
	}
	return DefaultEventTypeWeights
}
