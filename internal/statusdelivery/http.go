// Package statusdelivery reports whether the service can serve requests.
package statusdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/funds-transfer/pkg/web"
)

// Pinger checks a dependency is reachable. *sql.DB satisfies it.
//
//go:generate mockgen -source http.go -destination http_mock.go -package statusdelivery
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler facilitates status delivery layer logic.
type Handler struct {
	db Pinger
}

// NewHandler returns status handler.
func NewHandler(db Pinger) *Handler {
	return &Handler{db: db}
}

type data struct {
	Status string `json:"status"`
}

// Get handles http request for the service status.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	if err := h.db.PingContext(ctx); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("database ping failed")
		gctx.JSON(http.StatusServiceUnavailable, web.Response{Error: "database unavailable"})

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{Status: "ok"}})
}
