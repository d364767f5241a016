package dto

// Request DTOs

// SuggestionRequest is read from the query string of the suggestion endpoint.
type SuggestionRequest struct {
	Name string `json:"name" validate:"max=100"`
}

// Response DTOs

type DoctorResponse struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	NameInitials  string               `json:"name_initials,omitempty"`
	Photo         string               `json:"photo,omitempty"`
	Introduction  string               `json:"doctor_introduction,omitempty"`
	Specialities  []string             `json:"specialities"`
	Fees          string               `json:"fees"`
	Experience    string               `json:"experience"`
	Languages     []string             `json:"languages"`
	Clinic        ClinicResponse       `json:"clinic"`
	Consultations ConsultationResponse `json:"consultations"`
}

type ClinicResponse struct {
	Name         string `json:"name,omitempty"`
	Locality     string `json:"locality,omitempty"`
	City         string `json:"city,omitempty"`
	AddressLine1 string `json:"address_line1,omitempty"`
	Location     string `json:"location,omitempty"`
	LogoURL      string `json:"logo_url,omitempty"`
}

type ConsultationResponse struct {
	Video    bool `json:"video"`
	InClinic bool `json:"in_clinic"`
}

// FilterResponse echoes the hydrated filter. Defaults are omitted.
type FilterResponse struct {
	Name             string   `json:"name,omitempty"`
	ConsultationType string   `json:"consultation_type,omitempty"`
	Specialties      []string `json:"specialties,omitempty"`
	SortBy           string   `json:"sort_by,omitempty"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
	Query   string           `json:"query"`
	Filter  FilterResponse   `json:"filter"`
}

type SuggestionResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Photo        string   `json:"photo,omitempty"`
	Specialities []string `json:"specialities"`
}

type SuggestionListResponse struct {
	Suggestions []SuggestionResponse `json:"suggestions"`
	Total       int                  `json:"total"`
}

// FilterOptionResponse is one selectable control. Query is the canonical query string
// the page moves to when the option is clicked.
type FilterOptionResponse struct {
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
	Query    string `json:"query"`
}

type FilterOptionsResponse struct {
	Specialties       []FilterOptionResponse `json:"specialties"`
	ConsultationTypes []FilterOptionResponse `json:"consultation_types"`
	SortOptions       []FilterOptionResponse `json:"sort_options"`
	Query             string                 `json:"query"`
	ClearQuery        string                 `json:"clear_query"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Store   string `json:"store"`
	Doctors int    `json:"doctors"`
	Version string `json:"version,omitempty"`
}
