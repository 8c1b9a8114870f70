// Package apitest runs the full HTTP API against an in-memory database.
package apitest

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/visit-tracker/internal/audit"
	"github.com/BruksfildServices01/visit-tracker/internal/auth"
	"github.com/BruksfildServices01/visit-tracker/internal/logging"
	"github.com/BruksfildServices01/visit-tracker/internal/realtime"
	"github.com/BruksfildServices01/visit-tracker/internal/routes"
	"github.com/BruksfildServices01/visit-tracker/internal/testutil"
)

const Secret = "test-secret"

type Env struct {
	Server *httptest.Server
	Engine *gin.Engine
	DB     *gorm.DB
	Broker *realtime.MemoryBroker
	Tokens *auth.TokenIssuer
}

func (e *Env) URL() string {
	return e.Server.URL
}

// NewServer starts the API. Cleanup ends open streams before closing the
// server, since httptest waits for active requests.
func NewServer(t *testing.T) *Env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	broker := realtime.NewMemoryBroker()
	logger := logging.Discard()
	dispatcher := audit.NewDispatcher(audit.New(db), logger)
	tokens := auth.NewTokenIssuer(Secret, time.Hour)

	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		DB:     db,
		Broker: broker,
		Audit:  dispatcher,
		Tokens: tokens,
		Logger: logger,
	})

	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		_ = broker.Close()
		srv.CloseClientConnections()
		srv.Close()
		dispatcher.Close()
	})

	return &Env{Server: srv, Engine: r, DB: db, Broker: broker, Tokens: tokens}
}
