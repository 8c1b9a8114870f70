package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/visit-tracker/internal/domain/account"
	"github.com/BruksfildServices01/visit-tracker/internal/domain/visit"
	"github.com/BruksfildServices01/visit-tracker/internal/httperr"
)

type errorMapping struct {
	status  int
	message string
}

var businessErrors = map[string]errorMapping{
	httperr.CodeOf(account.ErrInvalidCredentials): {http.StatusUnauthorized, "Email or password is incorrect."},
	httperr.CodeOf(account.ErrUnauthorized):       {http.StatusUnauthorized, "Session expired."},
	httperr.CodeOf(account.ErrEmailInUse):         {http.StatusConflict, "Email already in use."},
	httperr.CodeOf(account.ErrWeakPassword):       {http.StatusBadRequest, "Password must be at least 6 characters."},
	httperr.CodeOf(account.ErrPasswordTooLong):    {http.StatusBadRequest, "Password must be at most 72 bytes."},
	httperr.CodeOf(account.ErrInvalidEmail):       {http.StatusBadRequest, "Invalid email address."},
	httperr.CodeOf(visit.ErrInvalidDay):           {http.StatusBadRequest, "Unknown day."},
	httperr.CodeOf(visit.ErrInvalidClient):        {http.StatusBadRequest, "Name and address are required."},
	httperr.CodeOf(visit.ErrClientTooLong):        {http.StatusBadRequest, "Name is limited to 200 characters and address to 300."},
	httperr.CodeOf(visit.ErrInvalidClientID):      {http.StatusBadRequest, "Client id is limited to 36 characters."},
	httperr.CodeOf(visit.ErrInvalidPartition):     {http.StatusBadRequest, "Invalid partition."},
	httperr.CodeOf(visit.ErrClientNotFound):       {http.StatusNotFound, "Client not found."},
}

// writeError maps business codes to their status; anything else is a 500
// carrying the fallback code.
func writeError(c *gin.Context, err error, fallbackCode, fallbackMessage string) {
	code := httperr.CodeOf(err)
	if m, ok := businessErrors[code]; ok {
		httperr.Write(c, m.status, code, m.message)
		return
	}
	_ = c.Error(err)
	httperr.Internal(c, fallbackCode, fallbackMessage)
}
