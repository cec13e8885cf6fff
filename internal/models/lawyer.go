package models

// Lawyer is a directory entry localized to one language.
type Lawyer struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	City            string   `json:"city"`
	CityLabel       string   `json:"city_label"`
	Specializations []string `json:"specializations"`
	SpecLabels      []string `json:"specialization_labels"`
	Phone           string   `json:"phone"`
	Gender          string   `json:"gender"`

	// Profile details, present only for lawyers with a full profile.
	Email      string `json:"email,omitempty"`
	Experience string `json:"experience,omitempty"`
	Education  string `json:"education,omitempty"`
	Languages  string `json:"languages,omitempty"`
	BarCouncil string `json:"bar_council,omitempty"`
	About      string `json:"about,omitempty"`
}

// Option is a selectable value with its localized label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
