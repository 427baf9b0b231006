package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"connections/internal/models"
	"connections/internal/service"
)

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	AccountType string `json:"account_type" validate:"omitempty,oneof=personal organization"`
}

type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

type RegisterResponse struct {
	Message             string `json:"message"`
	PendingVerification bool   `json:"pending_verification"`
}

type SocialAuthResponse struct {
	Token           string            `json:"token"`
	User            *models.User      `json:"user"`
	NeedsCompletion bool              `json:"needs_completion"`
	Prefill         map[string]string `json:"prefill,omitempty"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		if strings.Contains(err.Error(), "Email") {
			WriteError(w, "Неверный формат email", http.StatusBadRequest)
		} else if strings.Contains(err.Error(), "Password") {
			WriteError(w, "Пароль должен быть не менее 6 символов", http.StatusBadRequest)
		} else {
			WriteError(w, "Неверные данные", http.StatusBadRequest)
		}
		return
	}

	// registering a user in the service
	result, err := h.AuthService.RegisterInit(r.Context(), req.Email, req.Password, req.AccountType)
	if err != nil {
		if strings.Contains(err.Error(), "уже существует, войдите через") {
			WriteError(w, err.Error(), http.StatusBadRequest)
		} else if strings.Contains(err.Error(), "уже существует") {
			WriteError(w, "Пользователь с таким email уже существует", http.StatusBadRequest)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	// 201 for a fresh registration, 200 when the code was re-sent to a
	// pending account
	message := "Код подтверждения отправлен на email"
	status := http.StatusCreated
	if result.Resent {
		message = "Код подтверждения отправлен повторно"
		status = http.StatusOK
	}

	writeSuccess(w, RegisterResponse{Message: message, PendingVerification: true}, status)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	user, token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailNotVerified) {
			// a fresh OTP is already on its way
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":                 "Email не подтверждён, код отправлен повторно",
				"requires_verification": true,
				"email":                 req.Email,
			})
			return
		}
		WriteError(w, "Неверный email или пароль", http.StatusUnauthorized)
		return
	}

	writeSuccess(w, AuthResponse{Message: "Вход выполнен", Token: token, User: user}, http.StatusOK)
}

func (h *Handlers) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Отсутствует code", http.StatusBadRequest)
		return
	}

	result, err := h.OAuthService.GoogleLogin(r.Context(), req.Code)
	if err != nil {
		if strings.Contains(err.Error(), "уже существует, войдите через") {
			WriteError(w, err.Error(), http.StatusBadRequest)
		} else {
			WriteError(w, "Ошибка входа через Google", http.StatusUnauthorized)
		}
		return
	}

	writeSuccess(w, SocialAuthResponse{
		Token:           result.Token,
		User:            result.User,
		NeedsCompletion: result.NeedsCompletion,
		Prefill:         result.Prefill,
	}, http.StatusOK)
}

func (h *Handlers) FacebookLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccessToken string `json:"access_token" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Отсутствует access_token", http.StatusBadRequest)
		return
	}

	result, err := h.OAuthService.FacebookLogin(r.Context(), req.AccessToken)
	if err != nil {
		if strings.Contains(err.Error(), "уже существует, войдите через") {
			WriteError(w, err.Error(), http.StatusBadRequest)
		} else {
			WriteError(w, "Ошибка входа через Facebook", http.StatusUnauthorized)
		}
		return
	}

	writeSuccess(w, SocialAuthResponse{
		Token:           result.Token,
		User:            result.User,
		NeedsCompletion: result.NeedsCompletion,
		Prefill:         result.Prefill,
	}, http.StatusOK)
}

func (h *Handlers) CheckEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверный формат email", http.StatusBadRequest)
		return
	}

	available, provider, err := h.AuthService.CheckEmail(r.Context(), req.Email)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{"available": available}
	if !available {
		response["provider"] = provider
	}

	writeSuccess(w, response, http.StatusOK)
}

func (h *Handlers) SendVerificationOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверный формат email", http.StatusBadRequest)
		return
	}

	if err := h.AuthService.SendVerificationOTP(r.Context(), req.Email); err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пользователь не найден", http.StatusNotFound)
		} else if strings.Contains(err.Error(), "использует вход через") {
			WriteError(w, err.Error(), http.StatusBadRequest)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeSuccess(w, MessageResponse{Message: "Код подтверждения отправлен"}, http.StatusOK)
}

func (h *Handlers) VerifyEmailOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
		OTP   string `json:"otp" validate:"required,len=6"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	user, token, err := h.AuthService.VerifyEmailOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		if strings.Contains(err.Error(), "недействительный или просроченный") {
			WriteError(w, "Недействительный или просроченный код", http.StatusBadRequest)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeSuccess(w, AuthResponse{Message: "Email подтверждён", Token: token, User: user}, http.StatusOK)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	tokenString := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if tokenString == "" {
		WriteError(w, "Отсутствует токен", http.StatusBadRequest)
		return
	}

	if err := h.AuthService.Logout(r.Context(), tokenString); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeSuccess(w, MessageResponse{Message: "Выход выполнен"}, http.StatusOK)
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r)
	if userID == "" {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
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

func (h *Handlers) VerifyToken(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r)
	if userID == "" {
		WriteError(w, "Недействительный токен", http.StatusUnauthorized)
		return
	}

	writeSuccess(w, map[string]interface{}{"valid": true, "userId": userID}, http.StatusOK)
}

func (h *Handlers) SendPasswordResetOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверный формат email", http.StatusBadRequest)
		return
	}

	if err := h.AuthService.SendPasswordResetOTP(r.Context(), req.Email); err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пользователь не найден", http.StatusNotFound)
		} else if strings.Contains(err.Error(), "использует вход через") {
			WriteError(w, err.Error(), http.StatusBadRequest)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeSuccess(w, MessageResponse{Message: "Код сброса пароля отправлен"}, http.StatusOK)
}

func (h *Handlers) VerifyPasswordResetOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
		OTP   string `json:"otp" validate:"required,len=6"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	resetToken, err := h.AuthService.VerifyPasswordResetOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		if strings.Contains(err.Error(), "недействительный или просроченный") {
			WriteError(w, "Недействительный или просроченный код", http.StatusBadRequest)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeSuccess(w, map[string]string{"reset_token": resetToken}, http.StatusOK)
}

func (h *Handlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ResetToken  string `json:"reset_token" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=6"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		if strings.Contains(err.Error(), "NewPassword") {
			WriteError(w, "Пароль должен быть не менее 6 символов", http.StatusBadRequest)
		} else {
			WriteError(w, "Неверные данные", http.StatusBadRequest)
		}
		return
	}

	if err := h.AuthService.ResetPassword(r.Context(), req.ResetToken, req.NewPassword); err != nil {
		if strings.Contains(err.Error(), "reset token") {
			WriteError(w, "Недействительный или просроченный reset token", http.StatusBadRequest)
		} else if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пользователь не найден", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeSuccess(w, MessageResponse{Message: "Пароль успешно изменён"}, http.StatusOK)
}
