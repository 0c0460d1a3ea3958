package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/bayanihr/payroll-backend-go/internal/domain/contribution"
	"github.com/bayanihr/payroll-backend-go/internal/handler/http/response"
)

type ContributionHandler interface {
	GetActiveSchedule(w http.ResponseWriter, r *http.Request)
	CreateSchedule(w http.ResponseWriter, r *http.Request)
}

type contributionHandlerImpl struct {
	scheduleService contribution.ScheduleService
}

func NewContributionHandler(scheduleService contribution.ScheduleService) ContributionHandler {
	return &contributionHandlerImpl{scheduleService: scheduleService}
}

func (h *contributionHandlerImpl) GetActiveSchedule(w http.ResponseWriter, r *http.Request) {
	asOf := time.Now()
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(w, "as_of must be a valid date (YYYY-MM-DD)", nil)
			return
		}
		asOf = parsed
	}

	result, err := h.scheduleService.GetActiveSchedule(r.Context(), asOf)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *contributionHandlerImpl) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req contribution.CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.scheduleService.CreateSchedule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Contribution schedule created", result)
}
