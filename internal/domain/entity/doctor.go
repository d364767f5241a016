package entity

import (
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Doctor is a single record of the bundled doctor directory.
// Field names follow the JSON asset the directory is loaded from.
type Doctor struct {
	ID                 string       `json:"id" validate:"required"`
	Name               string       `json:"name" validate:"required"`
	NameInitials       string       `json:"name_initials,omitempty"`
	Photo              string       `json:"photo,omitempty"`
	DoctorIntroduction string       `json:"doctor_introduction,omitempty"`
	Specialities       []Speciality `json:"specialities"`
	Fees               string       `json:"fees"`
	Experience         string       `json:"experience"`
	Languages          []string     `json:"languages"`
	Clinic             Clinic       `json:"clinic"`
	VideoConsult       bool         `json:"video_consult"`
	InClinic           bool         `json:"in_clinic"`
}

type Speciality struct {
	Name string `json:"name"`
}

type Clinic struct {
	Name    string        `json:"name"`
	Address ClinicAddress `json:"address"`
}

type ClinicAddress struct {
	Locality     string `json:"locality"`
	City         string `json:"city"`
	AddressLine1 string `json:"address_line1"`
	Location     string `json:"location"`
	LogoURL      string `json:"logo_url"`
}

// FeeAmount parses Fees. The asset stores fees as plain decimal strings,
// sometimes with a leading currency symbol or thousands separators.
func (d *Doctor) FeeAmount() (decimal.Decimal, bool) {
	raw := strings.TrimSpace(d.Fees)
	raw = strings.TrimLeft(raw, "₹$ ")
	raw = strings.ReplaceAll(raw, ",", "")
	if raw == "" {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// ExperienceYears parses Experience, accepting values like "13" or "13 Years of experience".
func (d *Doctor) ExperienceYears() (int, bool) {
	fields := strings.Fields(d.Experience)
	if len(fields) == 0 {
		return 0, false
	}
	years, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, false
	}
	return years, true
}

// NormalizeSpecialtyName is the single form specialty names take in records, filters and URLs.
func NormalizeSpecialtyName(name string) string {
	return strings.TrimSpace(name)
}

// NormalizeSpecialities rewrites speciality names to their normalized form and drops blank ones.
func (d *Doctor) NormalizeSpecialities() {
	if d.Specialities == nil {
		return
	}
	out := d.Specialities[:0]
	for _, s := range d.Specialities {
		s.Name = NormalizeSpecialtyName(s.Name)
		if s.Name == "" {
			continue
		}
		out = append(out, s)
	}
	d.Specialities = out
}

// Clone returns a copy of d that shares no slices with it.
func (d *Doctor) Clone() Doctor {
	c := *d
	c.Specialities = slices.Clone(d.Specialities)
	c.Languages = slices.Clone(d.Languages)
	return c
}

// SpecialityNames returns the names of the doctor's specialities in record order.
func (d *Doctor) SpecialityNames() []string {
	names := make([]string, 0, len(d.Specialities))
	for _, s := range d.Specialities {
		names = append(names, s.Name)
	}
	return names
}
