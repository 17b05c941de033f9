package catalog

// ClinicianProfile identifies the referring clinician shown on referral
// paperwork and the patient welcome view.
type ClinicianProfile struct {
	Name   string `json:"name"`
	Clinic string `json:"clinic"`
	Phone  string `json:"phone"`
}

// FacilityProfile identifies the partner gym a credential grants access to.
type FacilityProfile struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Website string `json:"website"`
}

var clinician = ClinicianProfile{
	Name:   "Dr. Jane Foster, MD",
	Clinic: "MoveFitRx Clinical Group",
	Phone:  "(555) 123-4567",
}

var facility = FacilityProfile{
	Name:    "Coronado Fitness Club",
	Address: "875 Orange Ave suite 101, Coronado, CA 92118",
	Website: "https://www.coronadofitnessclub.com/",
}

// Clinician returns the referring clinician profile.
func Clinician() ClinicianProfile { return clinician }

// Facility returns the partner gym profile.
func Facility() FacilityProfile { return facility }
