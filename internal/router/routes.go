package router

import (
	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/auth"
	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/config"
	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/member"
	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/meta"
	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/database"
	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/middleware"
	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/token"
	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/team"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Setup configures all application-specific routes using dependency injection
func Setup(router *gin.Engine, cfg *config.Config, db *database.DB) {
	// Meta handler (health check)
	metaHandler := meta.NewHandler(cfg, db)
	router.GET("/health", metaHandler.Health)

	// shared services
	tokenManager := token.NewJWTManager(cfg)

	Register(router, cfg, db.DB, tokenManager)
}

// Register wires repositories, services and handlers onto router.
// Read endpoints are public; anything that writes requires an operator token.
func Register(router *gin.Engine, cfg *config.Config, db *gorm.DB, tokenManager token.Manager) {
	// repository
	accountRepository := auth.NewAccountRepository()
	teamRepository := team.NewTeamRepository()
	memberRepository := member.NewMemberRepository()

	// service
	authService := auth.NewAuthService(db, accountRepository, tokenManager)
	teamService := team.NewTeamService(db, teamRepository)
	memberService := member.NewMemberService(db, memberRepository, teamRepository, cfg.Search)

	// handler
	authHandler := auth.NewAuthHandler(authService)
	teamHandler := team.NewTeamHandler(teamService)
	memberHandler := member.NewMemberHandler(memberService)

	requireOperator := middleware.JWT(tokenManager)

	// API v1 routes
	authV1 := router.Group("/api/v1/auth")
	{
		authV1.POST("/signup", authHandler.Signup)
		authV1.POST("/login", authHandler.Login)
	}

	teamV1 := router.Group("/api/v1/teams")
	{
		teamV1.GET("", teamHandler.FindAll)
		teamV1.POST("", requireOperator, teamHandler.Create)
	}

	memberV1 := router.Group("/api/v1/members")
	{
		memberV1.GET("", memberHandler.Search)
		memberV1.GET("/stats", memberHandler.Stats)
		memberV1.GET("/oldest", memberHandler.Oldest)
		memberV1.GET("/above-average", memberHandler.AtLeastAverageAge)
		memberV1.GET("/age-brackets", memberHandler.AgeBrackets)
		memberV1.GET("/:id", memberHandler.GetMember)

		memberV1.POST("", requireOperator, memberHandler.Create)
		memberV1.PATCH("/bulk/rename", requireOperator, memberHandler.BulkRename)
		memberV1.PATCH("/bulk/age", requireOperator, memberHandler.BulkAddAge)
		memberV1.DELETE("/bulk", requireOperator, memberHandler.BulkDelete)
	}

	// API v2 routes (paged search)
	memberV2 := router.Group("/api/v2/members")
	{
		memberV2.GET("", memberHandler.SearchPage)
	}
}
