package http

import (
	"encoding/json"
	"net/http"

	"github.com/bayanihr/payroll-backend-go/internal/domain/period"
	"github.com/bayanihr/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayPeriodHandler interface {
	CreatePayPeriod(w http.ResponseWriter, r *http.Request)
	GetPayPeriod(w http.ResponseWriter, r *http.Request)
	ListPayPeriods(w http.ResponseWriter, r *http.Request)
	ClosePayPeriod(w http.ResponseWriter, r *http.Request)
}

type payPeriodHandlerImpl struct {
	periodService period.PayPeriodService
}

func NewPayPeriodHandler(periodService period.PayPeriodService) PayPeriodHandler {
	return &payPeriodHandlerImpl{periodService: periodService}
}

func (h *payPeriodHandlerImpl) CreatePayPeriod(w http.ResponseWriter, r *http.Request) {
	var req period.CreatePayPeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.periodService.CreatePayPeriod(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Pay period created", result)
}

func (h *payPeriodHandlerImpl) GetPayPeriod(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Pay period ID is required", nil)
		return
	}

	result, err := h.periodService.GetPayPeriod(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payPeriodHandlerImpl) ListPayPeriods(w http.ResponseWriter, r *http.Request) {
	result, err := h.periodService.ListPayPeriods(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payPeriodHandlerImpl) ClosePayPeriod(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Pay period ID is required", nil)
		return
	}

	if err := h.periodService.ClosePayPeriod(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay period closed", nil)
}
