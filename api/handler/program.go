package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/campusboard/backend/api/transport"
	"github.com/campusboard/backend/domain"
	"github.com/campusboard/backend/pkg/httpcontext"
	dashboardUC "github.com/campusboard/backend/usecase/dashboard"
)

type ProgramHandler struct {
	baseHandler
	uc *dashboardUC.UseCase
}

func NewProgramHandler(uc *dashboardUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ProgramHandler {
	return &ProgramHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List the user's program initiatives
// @Tags programs
// @Router /api/v1/programs [get]
func (h *ProgramHandler) ListPrograms(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	initiatives, err := h.uc.ProgramInitiatives(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, initiatives)
}

// @Summary Resolve the active program view
// @Tags programs
// @Router /api/v1/programs/active [get]
func (h *ProgramHandler) GetActiveProgram(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	initiativeID := string(ctx.QueryArgs().Peek("initiative_id"))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	program, err := h.uc.ActiveProgramData(stdCtx, userID, initiativeID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, program)
}

// @Summary Switch the session's active program
// @Tags programs
// @Router /api/v1/programs/active [put]
func (h *ProgramHandler) SetActiveProgram(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.ActiveProgramRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.InitiativeID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.SetActiveProgram(stdCtx, userID, req.InitiativeID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"active_initiative_id": req.InitiativeID})
}

// @Summary List the user's teams within a program
// @Tags programs
// @Router /api/v1/programs/{id}/teams [get]
func (h *ProgramHandler) GetProgramTeams(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	initiativeID, _ := ctx.UserValue("id").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	teams, err := h.uc.TeamsForProgram(stdCtx, userID, initiativeID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, teams)
}

// @Summary List active-cohort milestones
// @Tags programs
// @Router /api/v1/milestones [get]
func (h *ProgramHandler) GetMilestones(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	milestones, err := h.uc.Milestones(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, milestones)
}
