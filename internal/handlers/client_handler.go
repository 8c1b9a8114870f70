package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/visit-tracker/internal/domain/visit"
	"github.com/BruksfildServices01/visit-tracker/internal/httperr"
	"github.com/BruksfildServices01/visit-tracker/internal/httpresp"
	"github.com/BruksfildServices01/visit-tracker/internal/logging"
	"github.com/BruksfildServices01/visit-tracker/internal/middleware"
	ucClient "github.com/BruksfildServices01/visit-tracker/internal/usecase/client"
)

type ClientHandler struct {
	gw     *ucClient.Gateway
	logger logging.Logger
}

func NewClientHandler(gw *ucClient.Gateway, logger logging.Logger) *ClientHandler {
	return &ClientHandler{gw: gw, logger: logger}
}

// ======================================================
// REQUESTS
// ======================================================

type AddClientRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type ReplaceClientRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Visited bool   `json:"visited"`
}

type SetVisitedRequest struct {
	Visited *bool `json:"visited" binding:"required"`
}

// ======================================================
// HELPERS
// ======================================================

// partition resolves the caller and the :day segment; on failure the
// response has been written.
func partition(c *gin.Context) (string, visit.Day, bool) {
	day, err := visit.ParseDay(c.Param("day"))
	if err != nil {
		writeError(c, err, "invalid_day", "Unknown day.")
		return "", "", false
	}
	return middleware.Identity(c).UserID, day, true
}

// ======================================================
// READ
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	userID, day, ok := partition(c)
	if !ok {
		return
	}

	clients, err := h.gw.List(c.Request.Context(), userID, day)
	if err != nil {
		writeError(c, err, "failed_to_list_clients", "Could not load clients.")
		return
	}

	httpresp.List(c, clients)
}

// ======================================================
// WRITE
// ======================================================

func (h *ClientHandler) Add(c *gin.Context) {
	userID, day, ok := partition(c)
	if !ok {
		return
	}

	var req AddClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	err := h.gw.Add(c.Request.Context(), userID, day, visit.ClientData{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		writeError(c, err, "failed_to_add_client", "Could not add the client.")
		return
	}

	httpresp.Accepted(c)
}

func (h *ClientHandler) Replace(c *gin.Context) {
	userID, day, ok := partition(c)
	if !ok {
		return
	}

	var req ReplaceClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	err := h.gw.Update(c.Request.Context(), userID, day, c.Param("id"), visit.ClientData{
		Name:    req.Name,
		Address: req.Address,
		Visited: req.Visited,
	})
	if err != nil {
		writeError(c, err, "failed_to_update_client", "Could not update the client.")
		return
	}

	httpresp.NoContent(c)
}

func (h *ClientHandler) SetVisited(c *gin.Context) {
	userID, day, ok := partition(c)
	if !ok {
		return
	}

	var req SetVisitedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "visited is required")
		return
	}

	if err := h.gw.SetVisited(c.Request.Context(), userID, day, c.Param("id"), *req.Visited); err != nil {
		writeError(c, err, "failed_to_update_client", "Could not change the visit status.")
		return
	}

	httpresp.NoContent(c)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	userID, day, ok := partition(c)
	if !ok {
		return
	}

	if err := h.gw.Delete(c.Request.Context(), userID, day, c.Param("id")); err != nil {
		writeError(c, err, "failed_to_delete_client", "Could not delete the client.")
		return
	}

	httpresp.NoContent(c)
}
