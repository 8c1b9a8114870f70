package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/visit-tracker/internal/auth"
	"github.com/BruksfildServices01/visit-tracker/internal/httperr"
	"github.com/BruksfildServices01/visit-tracker/internal/httpresp"
	"github.com/BruksfildServices01/visit-tracker/internal/middleware"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// --------- Requests ---------

// Credentials are validated by the service so each failure keeps its own
// error code.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --------- Handlers ---------

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	session, err := h.svc.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err, "failed_to_create_user", "Sign up failed. Please try again.")
		return
	}

	httpresp.Created(c, session)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	session, err := h.svc.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err, "failed_to_sign_in", "Sign in failed. Please try again.")
		return
	}

	httpresp.OK(c, session)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.svc.SignOut(c.Request.Context(), middleware.Identity(c))
	httpresp.NoContent(c)
}
