package handlers

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/cardealer/dealership-gateway/internal/model"
	"github.com/cardealer/dealership-gateway/internal/services"
	xhttp "github.com/cardealer/dealership-gateway/pkg/http"
	"github.com/cardealer/dealership-gateway/pkg/logger"
	"github.com/fasthttp/router"
)

type TradeService interface {
	RecordTransaction(ctx context.Context, req model.TradeRequest) (*model.FinancialRecord, error)
	ManufacturerExists(ctx context.Context, name string) (bool, error)
	VehicleExists(ctx context.Context, brand, vmodel, manufacturer string) (bool, error)
	CustomerExists(ctx context.Context, name string) (bool, error)
}

type TradeHandler struct {
	svc TradeService
}

func RegisterTradeRoutes(r *router.Router, h *TradeHandler) {
	// endpoint name kept for compatibility with the original front end
	r.POST("/add_message", h.CreateTrade)
	r.GET("/exists/manufacturer", h.ManufacturerExists)
	r.GET("/exists/vehicle", h.VehicleExists)
	r.GET("/exists/customer", h.CustomerExists)
}

func NewTradeHandler(tradeService TradeService) *TradeHandler {
	return &TradeHandler{
		svc: tradeService,
	}
}

type createTradeRequest struct {
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	Manufacturer string `json:"manufacturer"`
	Operation    string `json:"operation"`
	Quantity     int64  `json:"quantity"`
	CustomerName string `json:"customername"`
}

type existsResponse struct {
	Exists bool `json:"exists"`
}

/* --------------------------------- Routes ----------------------------------- */

func (h *TradeHandler) CreateTrade(ctx *xhttp.RequestCtx) {
	var req createTradeRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	if req.Quantity < 1 {
		writeError(ctx, xhttp.StatusBadRequest, "quantity must be greater than 0")
		return
	}

	tr := model.TradeRequest{
		Operation:    req.Operation,
		Brand:        req.Brand,
		Model:        req.Model,
		Manufacturer: req.Manufacturer,
		Quantity:     uint(req.Quantity),
		CustomerName: req.CustomerName,
	}
	if err := tr.Validate(); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.svc.RecordTransaction(ctx, tr); err != nil {
		writeTradeError(ctx, err)
		return
	}

	writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": "success", "message": "Data received"})
}

func (h *TradeHandler) ManufacturerExists(ctx *xhttp.RequestCtx) {
	name := query(ctx, "name")
	if name == "" {
		writeError(ctx, xhttp.StatusBadRequest, "name is required")
		return
	}
	ok, err := h.svc.ManufacturerExists(ctx, name)
	if err != nil {
		writeInternalError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, existsResponse{Exists: ok})
}

func (h *TradeHandler) VehicleExists(ctx *xhttp.RequestCtx) {
	brand := query(ctx, "brand")
	vmodel := query(ctx, "model")
	manufacturer := query(ctx, "manufacturer")
	if brand == "" || vmodel == "" || manufacturer == "" {
		writeError(ctx, xhttp.StatusBadRequest, "brand, model and manufacturer are required")
		return
	}
	ok, err := h.svc.VehicleExists(ctx, brand, vmodel, manufacturer)
	if err != nil {
		writeInternalError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, existsResponse{Exists: ok})
}

func (h *TradeHandler) CustomerExists(ctx *xhttp.RequestCtx) {
	name := query(ctx, "name")
	if name == "" {
		writeError(ctx, xhttp.StatusBadRequest, "name is required")
		return
	}
	ok, err := h.svc.CustomerExists(ctx, name)
	if err != nil {
		writeInternalError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, existsResponse{Exists: ok})
}

func writeTradeError(ctx *xhttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidOperation):
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrManufacturerNotFound),
		errors.Is(err, services.ErrVehicleNotFound):
		writeError(ctx, xhttp.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInsufficientStock):
		writeError(ctx, xhttp.StatusConflict, err.Error())
	default:
		writeInternalError(ctx, err)
	}
}

func writeInternalError(ctx *xhttp.RequestCtx, err error) {
	logger.Error("trade handler failed", "error", err.Error())
	writeError(ctx, xhttp.StatusInternalServerError, "internal error")
}

func readJSON(ctx *xhttp.RequestCtx, dst any) error {
	body := ctx.PostBody()
	return json.Unmarshal(body, dst)
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, _ := json.Marshal(v)
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"error": msg})
}

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}
