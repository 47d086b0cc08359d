// Package transferdelivery manages delivery layer of transfers.
package transferdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/funds-transfer/internal/domain"
	"github.com/go-petr/funds-transfer/pkg/web"
)

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Transfer(ctx context.Context, debtorExternalID string, req domain.TransferRequest) (domain.TransferResult, error)
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transfer handler.
func NewHandler(ts Service) *Handler {
	return &Handler{
		service: ts,
	}
}

type uriRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type amountRequest struct {
	Value    *decimal.Decimal `json:"value" binding:"required"`
	Currency string           `json:"currency" binding:"required,currency"`
}

type request struct {
	Amount               amountRequest `json:"amount"`
	BeneficiaryAccountID string        `json:"beneficiaryAccountId" binding:"required,uuid"`
}

type data struct {
	Transfer domain.TransferView `json:"transfer"`
}

type response struct {
	Data data `json:"data"`
}

// Create handles http request to transfer money from the account in the path.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.BindingErrorMsg(err)})

		return
	}

	var req request
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.BindingErrorMsg(err)})

		return
	}

	arg := domain.TransferRequest{
		Amount: domain.Amount{
			Value:    *req.Amount.Value,
			Currency: req.Amount.Currency,
		},
		BeneficiaryAccountID: req.BeneficiaryAccountID,
	}

	result, err := h.service.Transfer(ctx, uri.ID, arg)
	if err != nil {
		gctx.JSON(web.Fail(err))
		return
	}

	res := response{
		Data: data{result.Public()},
	}

	gctx.JSON(http.StatusOK, res)
}
