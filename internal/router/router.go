package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/campusboard/backend/api/handler"
)

type Handlers struct {
	Auth       *apiHandler.AuthHandler
	Profile    *apiHandler.ProfileHandler
	Program    *apiHandler.ProgramHandler
	Membership *apiHandler.MembershipHandler
	Health     *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)

	// Protected routes
	r.GET("/api/v1/profile", authMiddleware(handlers.Profile.GetProfile))
	r.PUT("/api/v1/profile", authMiddleware(handlers.Profile.UpdateProfile))

	r.GET("/api/v1/programs", authMiddleware(handlers.Program.ListPrograms))
	r.GET("/api/v1/programs/active", authMiddleware(handlers.Program.GetActiveProgram))
	r.PUT("/api/v1/programs/active", authMiddleware(handlers.Program.SetActiveProgram))
	r.GET("/api/v1/programs/{id}/teams", authMiddleware(handlers.Program.GetProgramTeams))
	r.GET("/api/v1/milestones", authMiddleware(handlers.Program.GetMilestones))

	r.POST("/api/v1/teams/leave", authMiddleware(handlers.Membership.LeaveTeam))
	r.POST("/api/v1/participations/leave", authMiddleware(handlers.Membership.LeaveParticipation))
	r.DELETE("/api/v1/invitations/{memberId}", authMiddleware(handlers.Membership.DeleteInvitation))
	r.POST("/api/v1/data/refresh", authMiddleware(handlers.Membership.RefreshData))

	return r
}
