package http

import (
	"encoding/json"
	"net/http"

	"github.com/bayanihr/payroll-backend-go/internal/domain/discipline"
	"github.com/bayanihr/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DisciplineHandler interface {
	IssueNotice(w http.ResponseWriter, r *http.Request)
	GetNotice(w http.ResponseWriter, r *http.Request)
	ListNoticesByEmployee(w http.ResponseWriter, r *http.Request)
	SubmitExplanation(w http.ResponseWriter, r *http.Request)
	GetExplanation(w http.ResponseWriter, r *http.Request)
	ResolveNotice(w http.ResponseWriter, r *http.Request)
}

type disciplineHandlerImpl struct {
	disciplineService discipline.DisciplineService
}

func NewDisciplineHandler(disciplineService discipline.DisciplineService) DisciplineHandler {
	return &disciplineHandlerImpl{disciplineService: disciplineService}
}

func (h *disciplineHandlerImpl) IssueNotice(w http.ResponseWriter, r *http.Request) {
	var req discipline.IssueNoticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.disciplineService.IssueNotice(r.Context(), req, actorID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Disciplinary notice issued", result)
}

func (h *disciplineHandlerImpl) GetNotice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Notice ID is required", nil)
		return
	}

	result, err := h.disciplineService.GetNotice(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *disciplineHandlerImpl) ListNoticesByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	result, err := h.disciplineService.ListNoticesByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *disciplineHandlerImpl) SubmitExplanation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Notice ID is required", nil)
		return
	}

	var req discipline.SubmitExplanationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.disciplineService.SubmitExplanation(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Explanation submitted", result)
}

func (h *disciplineHandlerImpl) GetExplanation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Notice ID is required", nil)
		return
	}

	result, err := h.disciplineService.GetExplanation(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *disciplineHandlerImpl) ResolveNotice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Notice ID is required", nil)
		return
	}

	var req discipline.ResolveNoticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.disciplineService.ResolveNotice(r.Context(), id, req, actorID(r)); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Disciplinary notice resolved", nil)
}
