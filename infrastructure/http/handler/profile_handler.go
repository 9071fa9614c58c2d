package handler

import (
	"net/http"

	"github.com/verdemed/verdemed/application/port/inbound"
	"github.com/verdemed/verdemed/infrastructure/http/middleware"
	"github.com/verdemed/verdemed/infrastructure/http/response"
)

type ProfileHandler struct {
	userUseCase inbound.UserUseCase
}

func NewProfileHandler(userUseCase inbound.UserUseCase) *ProfileHandler {
	return &ProfileHandler{
		userUseCase: userUseCase,
	}
}

// Me returns the assembled profile of the authenticated caller.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	profile, err := h.userUseCase.GetUserProfile(r.Context(), identity.ID)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, profile)
}
