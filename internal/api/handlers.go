package api

import (
	"github.com/dhruvbhalode/capstone/internal/auth"
	"github.com/dhruvbhalode/capstone/internal/db"
	"github.com/dhruvbhalode/capstone/internal/oracle"
	"github.com/dhruvbhalode/capstone/internal/services"
)

type Server struct {
	UserService           services.UserService
	ProblemService        services.ProblemService
	InteractionService    services.InteractionService
	RecommendationService services.RecommendationService
	AnalyticsService      services.AnalyticsService
	Gateway               oracle.GatewayInterface
	Tokens                *auth.TokenManager
	DB                    *db.DB
}
