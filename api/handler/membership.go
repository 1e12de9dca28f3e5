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

type MembershipHandler struct {
	baseHandler
	uc *dashboardUC.UseCase
}

func NewMembershipHandler(uc *dashboardUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *MembershipHandler {
	return &MembershipHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Leave a team
// @Tags membership
// @Router /api/v1/teams/leave [post]
func (h *MembershipHandler) LeaveTeam(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.LeaveTeamRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.LeaveTeam(stdCtx, userID, req.TeamID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}

// @Summary Leave a program participation
// @Tags membership
// @Router /api/v1/participations/leave [post]
func (h *MembershipHandler) LeaveParticipation(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.LeaveParticipationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.LeaveParticipation(stdCtx, userID, req.ParticipationID, req.CohortID, req.InitiativeID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}

// @Summary Delete a pending team invitation
// @Tags membership
// @Router /api/v1/invitations/{memberId} [delete]
func (h *MembershipHandler) DeleteInvitation(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	memberID, _ := ctx.UserValue("memberId").(string)
	teamID := string(ctx.QueryArgs().Peek("team_id"))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.DeleteTeamInvitation(stdCtx, userID, memberID, teamID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}

// @Summary Drop cached dashboard data
// @Tags membership
// @Router /api/v1/data/refresh [post]
func (h *MembershipHandler) RefreshData(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.RefreshDataRequest
	if len(ctx.PostBody()) > 0 {
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
			return
		}
	}

	if err := h.uc.RefreshData(userID, req.Scope); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"scope": req.Scope})
}
