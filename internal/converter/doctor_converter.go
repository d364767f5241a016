package converter

import (
	"go-doctor-directory/internal/delivery/dto"
	"go-doctor-directory/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	languages := make([]string, len(doctor.Languages))
	copy(languages, doctor.Languages)

	return &dto.DoctorResponse{
		ID:           doctor.ID,
		Name:         doctor.Name,
		NameInitials: doctor.NameInitials,
		Photo:        doctor.Photo,
		Introduction: doctor.DoctorIntroduction,
		Specialities: doctor.SpecialityNames(),
		Fees:         doctor.Fees,
		Experience:   doctor.Experience,
		Languages:    languages,
		Clinic: dto.ClinicResponse{
			Name:         doctor.Clinic.Name,
			Locality:     doctor.Clinic.Address.Locality,
			City:         doctor.Clinic.Address.City,
			AddressLine1: doctor.Clinic.Address.AddressLine1,
			Location:     doctor.Clinic.Address.Location,
			LogoURL:      doctor.Clinic.Address.LogoURL,
		},
		Consultations: dto.ConsultationResponse{
			Video:    doctor.VideoConsult,
			InClinic: doctor.InClinic,
		},
	}
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}

// DoctorsToSuggestions converts doctors to the compact suggestion DTO
func DoctorsToSuggestions(doctors []entity.Doctor) []dto.SuggestionResponse {
	suggestions := make([]dto.SuggestionResponse, len(doctors))
	for i := range doctors {
		suggestions[i] = dto.SuggestionResponse{
			ID:           doctors[i].ID,
			Name:         doctors[i].Name,
			Photo:        doctors[i].Photo,
			Specialities: doctors[i].SpecialityNames(),
		}
	}
	return suggestions
}
