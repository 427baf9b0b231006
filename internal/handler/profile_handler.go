package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"connections/internal/models"
)

type PersonalProfileRequest struct {
	FirstName   string  `json:"first_name" validate:"required"`
	LastName    string  `json:"last_name" validate:"required"`
	PhoneNumber *string `json:"phone_number"`
	Gender      *string `json:"gender" validate:"omitempty,oneof=male female other"`
	DateOfBirth *string `json:"date_of_birth"`
	Bio         *string `json:"bio"`
	Location    *string `json:"location"`
	Website     *string `json:"website" validate:"omitempty,url"`
}

type OrganizationProfileRequest struct {
	OrganizationName string  `json:"organization_name" validate:"required"`
	Description      *string `json:"description"`
	Industry         *string `json:"industry"`
	FoundedYear      *int    `json:"founded_year" validate:"omitempty,min=1800,max=2100"`
	Location         *string `json:"location"`
	Website          *string `json:"website" validate:"omitempty,url"`
}

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if userID == "" {
		WriteError(w, "Неверный URL", http.StatusBadRequest)
		return
	}

	view, err := h.ProfileService.GetProfile(r.Context(), userID)
	if err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пользователь не найден", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeSuccess(w, view, http.StatusOK)
}

func (h *Handlers) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r)
	if userID == "" {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	view, err := h.ProfileService.GetProfile(r.Context(), userID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeSuccess(w, view, http.StatusOK)
}

func (h *Handlers) UpdatePersonalProfile(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r)
	targetID := mux.Vars(r)["userId"]

	// only the owner can edit
	if userID == "" || userID != targetID {
		WriteError(w, "Доступ запрещен", http.StatusForbidden)
		return
	}

	var req PersonalProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные профиля", http.StatusBadRequest)
		return
	}

	profile := &models.PersonalProfile{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Gender:      req.Gender,
		Bio:         req.Bio,
		Location:    req.Location,
		Website:     req.Website,
	}

	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			WriteError(w, "Неверный формат даты рождения, ожидается YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		profile.DateOfBirth = &dob
	}

	updated, err := h.ProfileService.UpdatePersonalProfile(r.Context(), userID, profile)
	if err != nil {
		if strings.Contains(err.Error(), "не является персональным") {
			WriteError(w, "Аккаунт не является персональным", http.StatusBadRequest)
		} else if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пользователь не найден", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeSuccess(w, updated, http.StatusOK)
}

func (h *Handlers) UpdateOrganizationProfile(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r)
	targetID := mux.Vars(r)["userId"]

	if userID == "" || userID != targetID {
		WriteError(w, "Доступ запрещен", http.StatusForbidden)
		return
	}

	var req OrganizationProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные профиля", http.StatusBadRequest)
		return
	}

	profile := &models.OrganizationProfile{
		OrganizationName: req.OrganizationName,
		Description:      req.Description,
		Industry:         req.Industry,
		FoundedYear:      req.FoundedYear,
		Location:         req.Location,
		Website:          req.Website,
	}

	updated, err := h.ProfileService.UpdateOrganizationProfile(r.Context(), userID, profile)
	if err != nil {
		if strings.Contains(err.Error(), "не является организацией") {
			WriteError(w, "Аккаунт не является организацией", http.StatusBadRequest)
		} else if strings.Contains(err.Error(), "обязательно") {
			WriteError(w, err.Error(), http.StatusBadRequest)
		} else if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пользователь не найден", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeSuccess(w, updated, http.StatusOK)
}
