package catalog

import "errors"

// ErrUnknownRegimen indicates a regimen name absent from the catalog.
var ErrUnknownRegimen = errors.New("unknown regimen")

// Step is one prescribed exercise: a machine plus the activity performed on it.
type Step struct {
	Machine   string `json:"machine"`
	Activity  string `json:"activity"`
	WorkoutID string `json:"workout_id"`
}

// Regimen is a named ordered sequence of exercise steps selected by diagnosis.
type Regimen struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Steps []Step `json:"steps"`
}

var regimens = map[string]Regimen{
	"Hormonal Balance & Strength": {
		Name: "Hormonal Balance & Strength",
		URL:  "https://movefitrx.com/regimen/hormonal-strength",
		Steps: []Step{
			{Machine: "Recumbent Bike", Activity: "Low Intensity Cardio 25 min", WorkoutID: "MXW-HRM-01"},
			{Machine: "Leg Press", Activity: "3 Sets x 12 Reps", WorkoutID: "MXW-HRM-02"},
			{Machine: "Diverging Seated Row", Activity: "3 Sets x 10 Reps", WorkoutID: "MXW-HRM-03"},
		},
	},
	"Bone Density & Balance": {
		Name: "Bone Density & Balance",
		URL:  "https://movefitrx.com/regimen/bone-density",
		Steps: []Step{
			{Machine: "Treadmill", Activity: "Brisk Walk w/ Low Incline 30 min", WorkoutID: "MXW-BND-01"},
			{Machine: "Calf Extension", Activity: "3 Sets x 15 Reps (Light)", WorkoutID: "MXW-BND-02"},
			{Machine: "Hip Adductor", Activity: "3 Sets x 12 Reps", WorkoutID: "MXW-BND-03"},
		},
	},
	"Cardio Endurance & Insulin Sensitivity": {
		Name: "Cardio Endurance & Insulin Sensitivity",
		URL:  "https://movefitrx.com/regimen/cardio-insulin",
		Steps: []Step{
			{Machine: "Ascent Trainer", Activity: "Steady State 45 min", WorkoutID: "MXW-CDI-01"},
			{Machine: "Pec Fly", Activity: "3 Sets x 15 Reps (Circuit)", WorkoutID: "MXW-CDI-02"},
		},
	},
	"Zone 2 Cardio + Resistance": {
		Name: "Zone 2 Cardio + Resistance",
		URL:  "https://movefitrx.com/regimen/zone2-resistance",
		Steps: []Step{
			{Machine: "Treadmill", Activity: "Zone 2 Incline Walk 35 min (Target HR: 110-130)", WorkoutID: "MXW-Z2C-01"},
			{Machine: "Chest Press", Activity: "3 Sets x 12 Reps", WorkoutID: "MXW-Z2C-02"},
			{Machine: "Seated Leg Curl", Activity: "2 Sets x 15 Reps (Low Resistance)", WorkoutID: "MXW-Z2C-03"},
		},
	},
}

// RegimenByName resolves a regimen name against the catalog.
func RegimenByName(name string) (Regimen, error) {
	reg, ok := regimens[name]
	if !ok {
		return Regimen{}, ErrUnknownRegimen
	}
	return reg, nil
}

// RegimenSteps returns the ordered exercise steps for a regimen.
func RegimenSteps(name string) ([]Step, error) {
	reg, ok := regimens[name]
	if !ok {
		return nil, ErrUnknownRegimen
	}
	out := make([]Step, len(reg.Steps))
	copy(out, reg.Steps)
	return out, nil
}
