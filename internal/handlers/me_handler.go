package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/visit-tracker/internal/auth"
	"github.com/BruksfildServices01/visit-tracker/internal/httpresp"
	"github.com/BruksfildServices01/visit-tracker/internal/middleware"
)

type MeHandler struct {
	svc *auth.Service
}

func NewMeHandler(svc *auth.Service) *MeHandler {
	return &MeHandler{svc: svc}
}

// GetMe doubles as the client's credential check: a deleted user gets a
// 401 even with an unexpired token.
func (h *MeHandler) GetMe(c *gin.Context) {
	id := middleware.Identity(c)

	me, err := h.svc.Me(c.Request.Context(), id.UserID)
	if err != nil {
		writeError(c, err, "user_lookup_failed", "Could not load the current user.")
		return
	}

	httpresp.OK(c, gin.H{"user": me})
}
