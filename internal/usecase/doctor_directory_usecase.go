package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"go-doctor-directory/internal/converter"
	"go-doctor-directory/internal/delivery/http/middleware"
	"go-doctor-directory/internal/delivery/dto"
	"go-doctor-directory/internal/domain/entity"
	"go-doctor-directory/internal/domain/repository"
	"go-doctor-directory/internal/domain/view"
	"go-doctor-directory/internal/service"

	"github.com/sirupsen/logrus"
)

var (
	ErrDoctorNotFound       = errors.New("doctor not found")
	ErrDirectoryLoading     = errors.New("doctor directory is still loading")
	ErrDirectoryUnavailable = errors.New("doctor directory is unavailable")
)

const doctorListViewKind = "doctors"

var (
	consultationTypeOptions = []entity.ConsultationType{entity.ConsultationTypeVideo, entity.ConsultationTypeClinic}
	sortKeyOptions          = []entity.SortKey{entity.SortKeyFeesAscending, entity.SortKeyExperienceDescending}
)

type DoctorDirectoryUsecase interface {
	ListDoctors(ctx context.Context, filter entity.DoctorFilter) (*dto.DoctorListResponse, error)
	GetDoctor(ctx context.Context, doctorID string) (*dto.DoctorResponse, error)
	Suggest(ctx context.Context, query string) (*dto.SuggestionListResponse, error)
	GetFilterOptions(ctx context.Context, filter entity.DoctorFilter) (*dto.FilterOptionsResponse, error)
	Health() *dto.HealthResponse
	Version() string
}

type doctorDirectoryUsecase struct {
	log             *logrus.Logger
	doctorRepo      repository.DoctorRepository
	viewCache       service.ViewCache
	suggestionLimit int
}

func NewDoctorDirectoryUsecase(
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	viewCache service.ViewCache,
	suggestionLimit int,
) DoctorDirectoryUsecase {
	if suggestionLimit <= 0 || suggestionLimit > view.DefaultSuggestionLimit {
		suggestionLimit = view.DefaultSuggestionLimit
	}
	return &doctorDirectoryUsecase{
		log:             log,
		doctorRepo:      doctorRepo,
		viewCache:       viewCache,
		suggestionLimit: suggestionLimit,
	}
}

// Version identifies the loaded directory. Empty until the store is ready.
func (u *doctorDirectoryUsecase) Version() string {
	return u.doctorRepo.Version()
}

func (u *doctorDirectoryUsecase) Health() *dto.HealthResponse {
	state := u.doctorRepo.State()
	status := "ok"
	if state == repository.StoreFailed {
		status = "unavailable"
	}
	return &dto.HealthResponse{
		Status:  status,
		Store:   state.String(),
		Doctors: u.doctorRepo.Count(),
		Version: u.doctorRepo.Version(),
	}
}

func (u *doctorDirectoryUsecase) ListDoctors(ctx context.Context, filter entity.DoctorFilter) (*dto.DoctorListResponse, error) {
	if err := u.ready(); err != nil {
		return nil, err
	}

	filter = filter.Normalize()
	query := converter.CanonicalQuery(filter)
	cacheKey := service.ViewCacheKey(doctorListViewKind, u.doctorRepo.Version(), query)

	if cached, ok := u.viewCache.Get(ctx, cacheKey); ok {
		var resp dto.DoctorListResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return &resp, nil
		}
		u.logger(ctx).Warnf("Discarding unreadable cached view %s", cacheKey)
	}

	doctors, err := u.doctorRepo.FindAll(ctx)
	if err != nil {
		u.logger(ctx).Warnf("Failed to find all doctors: %+v", err)
		return nil, storeError(err)
	}

	reduced := view.Reduce(doctors, filter)
	resp := &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(reduced),
		Total:   len(reduced),
		Query:   query,
		Filter:  converter.FilterToResponse(filter),
	}

	if data, err := json.Marshal(resp); err == nil {
		u.viewCache.Set(ctx, cacheKey, data)
	}

	return resp, nil
}

func (u *doctorDirectoryUsecase) GetDoctor(ctx context.Context, doctorID string) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		u.logger(ctx).Warnf("Failed to find doctor: %+v", err)
		return nil, storeError(err)
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorDirectoryUsecase) Suggest(ctx context.Context, query string) (*dto.SuggestionListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(ctx)
	if err != nil {
		u.logger(ctx).Warnf("Failed to find all doctors: %+v", err)
		return nil, storeError(err)
	}

	suggestions := view.Suggest(doctors, query, u.suggestionLimit)

	return &dto.SuggestionListResponse{
		Suggestions: converter.DoctorsToSuggestions(suggestions),
		Total:       len(suggestions),
	}, nil
}

// GetFilterOptions lists every control of the filter panel together with the query string
// that clicking it leads to. Clicking a selected option deselects it. Specialties whose
// names cannot be carried by the query string are not offered.
func (u *doctorDirectoryUsecase) GetFilterOptions(ctx context.Context, filter entity.DoctorFilter) (*dto.FilterOptionsResponse, error) {
	specialties, err := u.doctorRepo.Specialties(ctx)
	if err != nil {
		u.logger(ctx).Warnf("Failed to collect specialties: %+v", err)
		return nil, storeError(err)
	}

	filter = filter.Normalize()

	// Keep selections from the URL that no doctor has, so they can still be deselected.
	known := make(map[string]struct{}, len(specialties))
	for _, name := range specialties {
		known[name] = struct{}{}
	}
	for _, name := range filter.Specialties {
		if _, ok := known[name]; !ok {
			specialties = append(specialties, name)
		}
	}

	resp := &dto.FilterOptionsResponse{
		Specialties:       make([]dto.FilterOptionResponse, 0, len(specialties)),
		ConsultationTypes: make([]dto.FilterOptionResponse, 0, len(consultationTypeOptions)),
		SortOptions:       make([]dto.FilterOptionResponse, 0, len(sortKeyOptions)),
		Query:             converter.CanonicalQuery(filter),
		ClearQuery:        converter.CanonicalQuery(filter.Clear()),
	}

	for _, name := range specialties {
		if !converter.SpecialtyPersistable(name) {
			u.logger(ctx).Debugf("Specialty %q cannot be expressed in a query string, not offered as a filter", name)
			continue
		}
		resp.Specialties = append(resp.Specialties, dto.FilterOptionResponse{
			Value:    name,
			Selected: filter.HasSpecialty(name),
			Query:    converter.CanonicalQuery(filter.ToggleSpecialty(name)),
		})
	}

	for _, t := range consultationTypeOptions {
		selected := filter.ConsultationType == t
		next := filter.WithConsultationType(t)
		if selected {
			next = filter.WithConsultationType(entity.ConsultationTypeUnset)
		}
		resp.ConsultationTypes = append(resp.ConsultationTypes, dto.FilterOptionResponse{
			Value:    string(t),
			Selected: selected,
			Query:    converter.CanonicalQuery(next),
		})
	}

	for _, key := range sortKeyOptions {
		selected := filter.SortBy == key
		next := filter.WithSort(key)
		if selected {
			next = filter.WithSort(entity.SortKeyUnset)
		}
		resp.SortOptions = append(resp.SortOptions, dto.FilterOptionResponse{
			Value:    string(key),
			Selected: selected,
			Query:    converter.CanonicalQuery(next),
		})
	}

	return resp, nil
}

// logger tags entries with the request id, when the request carries one.
func (u *doctorDirectoryUsecase) logger(ctx context.Context) *logrus.Entry {
	if requestID, ok := middleware.GetRequestIDFromContext(ctx); ok {
		return u.log.WithField("request_id", requestID)
	}
	return logrus.NewEntry(u.log)
}

func (u *doctorDirectoryUsecase) ready() error {
	switch u.doctorRepo.State() {
	case repository.StoreReady:
		return nil
	case repository.StoreFailed:
		return ErrDirectoryUnavailable
	default:
		return ErrDirectoryLoading
	}
}

func storeError(err error) error {
	switch {
	case errors.Is(err, repository.ErrStoreLoading):
		return ErrDirectoryLoading
	case errors.Is(err, repository.ErrStoreFailed):
		return ErrDirectoryUnavailable
	default:
		return err
	}
}
