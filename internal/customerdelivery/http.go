// Package customerdelivery manages delivery layer of customers.
package customerdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/funds-transfer/internal/domain"
	"github.com/go-petr/funds-transfer/pkg/web"
)

// Service provides service layer interface needed by customer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package customerdelivery
type Service interface {
	Get(ctx context.Context, externalID string) (domain.Customer, error)
	ListAccounts(ctx context.Context, externalID string) ([]domain.Account, error)
}

// Handler facilitates customer delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns customer handler.
func NewHandler(cs Service) *Handler {
	return &Handler{service: cs}
}

type getRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type data struct {
	Customer domain.Customer `json:"customer"`
}

type response struct {
	Data data `json:"data"`
}

// Get handles http request to get customer.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.BindingErrorMsg(err)})

		return
	}

	customer, err := h.service.Get(ctx, req.ID)
	if err != nil {
		gctx.JSON(web.Fail(err))
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{customer}})
}

type dataAccounts struct {
	Accounts []domain.Account `json:"accounts"`
}

type responseAccounts struct {
	Data dataAccounts `json:"data"`
}

// ListAccounts handles http request to list accounts of the customer.
func (h *Handler) ListAccounts(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.BindingErrorMsg(err)})

		return
	}

	accounts, err := h.service.ListAccounts(ctx, req.ID)
	if err != nil {
		gctx.JSON(web.Fail(err))
		return
	}

	gctx.JSON(http.StatusOK, responseAccounts{Data: dataAccounts{accounts}})
}
