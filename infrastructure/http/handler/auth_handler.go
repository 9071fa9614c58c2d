package handler

import (
	"encoding/json"
	"net/http"

	"github.com/verdemed/verdemed/application/port/inbound"
	"github.com/verdemed/verdemed/infrastructure/http/middleware"
	"github.com/verdemed/verdemed/infrastructure/http/response"
	"github.com/verdemed/verdemed/infrastructure/http/validator"
	"github.com/verdemed/verdemed/pkg/apperror"
)

type AuthHandler struct {
	userUseCase inbound.UserUseCase
	authUseCase inbound.AuthUseCase
}

func NewAuthHandler(userUseCase inbound.UserUseCase, authUseCase inbound.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		userUseCase: userUseCase,
		authUseCase: authUseCase,
	}
}

type registerRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FullName   string `json:"fullName"`
	Phone      string `json:"phone"`
	Birthdate  string `json:"birthdate"`
	NationalID string `json:"nationalId"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.WriteError(w, apperror.NewValidation("Invalid request body", nil))
		return
	}

	req := inbound.RegisterPatientRequest{
		Email:     body.Email,
		Password:  body.Password,
		FullName:  body.FullName,
		Phone:     body.Phone,
		Birthdate: body.Birthdate,
		CPF:       body.NationalID,
		IPAddress: clientIPOrUnknown(r),
		UserAgent: userAgentOrUnknown(r),
	}

	if fieldErrors := validator.ValidateRegister(&req); len(fieldErrors) > 0 {
		response.WriteError(w, apperror.NewValidation("Validation failed", fieldErrors))
		return
	}

	res, err := h.userUseCase.RegisterPatient(r.Context(), req)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, res)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.WriteError(w, apperror.NewValidation("Invalid request body", nil))
		return
	}

	if fieldErrors := validator.ValidateLogin(body.Email, body.Password); len(fieldErrors) > 0 {
		response.WriteError(w, apperror.NewValidation("Validation failed", fieldErrors))
		return
	}

	session, err := h.authUseCase.Login(r.Context(), inbound.LoginRequest{
		Email:     body.Email,
		Password:  body.Password,
		IPAddress: clientIPOrUnknown(r),
		UserAgent: userAgentOrUnknown(r),
	})
	if err != nil {
		response.WriteError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, session)
}

func clientIPOrUnknown(r *http.Request) string {
	if ip := middleware.ClientIP(r); ip != "" {
		return ip
	}
	return "unknown"
}

func userAgentOrUnknown(r *http.Request) string {
	if ua := r.UserAgent(); ua != "" {
		return ua
	}
	return "unknown"
}
