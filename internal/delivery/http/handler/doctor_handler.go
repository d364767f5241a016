package handler

import (
	"fmt"
	"net/http"
	"strings"

	"go-doctor-directory/internal/converter"
	"go-doctor-directory/internal/delivery/dto"
	"go-doctor-directory/internal/domain/entity"
	"go-doctor-directory/internal/usecase"
	"go-doctor-directory/pkg/response"
	"go-doctor-directory/pkg/validator"

	"github.com/cespare/xxhash/v2"
	"github.com/gorilla/mux"
)

const (
	msgDirectoryLoading     = "Doctor directory is still loading"
	msgDirectoryUnavailable = "Failed to load doctors. Please reload the page."

	// Seconds a client should wait before asking again while the directory loads.
	loadingRetryAfter = 1
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorDirectoryUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorDirectoryUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

// ListDoctors hydrates the filter from the query string and returns the reduced list.
// Content-Location carries the canonical URL the page should replace its own URL with.
func (h *DoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	filter := converter.HydrateFilter(r.URL.Query())

	w.Header().Set("Content-Location", converter.CanonicalURL(r.URL.Path, filter))
	if h.notModified(w, r, "doctors", filter) {
		return
	}

	doctors, err := h.doctorUsecase.ListDoctors(r.Context(), filter)
	if err != nil {
		h.writeError(w, err, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID := strings.TrimSpace(vars["id"])
	if doctorID == "" {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	doctor, err := h.doctorUsecase.GetDoctor(r.Context(), doctorID)
	if err != nil {
		h.writeError(w, err, "Failed to get doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

func (h *DoctorHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	req := dto.SuggestionRequest{
		Name: r.URL.Query().Get(converter.ParamName),
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	suggestions, err := h.doctorUsecase.Suggest(r.Context(), req.Name)
	if err != nil {
		h.writeError(w, err, "Failed to get suggestions")
		return
	}

	response.Success(w, http.StatusOK, "Suggestions retrieved successfully", suggestions)
}

func (h *DoctorHandler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	filter := converter.HydrateFilter(r.URL.Query())

	if h.notModified(w, r, "filters", filter) {
		return
	}

	options, err := h.doctorUsecase.GetFilterOptions(r.Context(), filter)
	if err != nil {
		h.writeError(w, err, "Failed to get filter options")
		return
	}

	response.Success(w, http.StatusOK, "Filter options retrieved successfully", options)
}

func (h *DoctorHandler) Health(w http.ResponseWriter, r *http.Request) {
	health := h.doctorUsecase.Health()

	status := http.StatusOK
	if health.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	response.JSON(w, status, health)
}

// notModified sets the ETag of a view and reports whether the client already holds it.
// Views depend only on the loaded directory and the canonical filter.
func (h *DoctorHandler) notModified(w http.ResponseWriter, r *http.Request, kind string, filter entity.DoctorFilter) bool {
	version := h.doctorUsecase.Version()
	if version == "" {
		return false
	}

	etag := fmt.Sprintf(`"%s-%016x"`, version, xxhash.Sum64String(kind+"?"+converter.CanonicalQuery(filter)))
	w.Header().Set("ETag", etag)

	for _, candidate := range strings.Split(r.Header.Get("If-None-Match"), ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == etag || candidate == "*" {
			response.NotModified(w)
			return true
		}
	}
	return false
}

func (h *DoctorHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrDirectoryLoading:
		response.ServiceUnavailable(w, msgDirectoryLoading, loadingRetryAfter)
	case usecase.ErrDirectoryUnavailable:
		response.ServiceUnavailable(w, msgDirectoryUnavailable, 0)
	case usecase.ErrDoctorNotFound:
		response.NotFound(w, "Doctor not found")
	default:
		response.InternalServerError(w, fallback)
	}
}
