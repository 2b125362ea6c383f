package handlers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/talkandgrow/referral-portal/internal/auth"
	"github.com/talkandgrow/referral-portal/internal/services"
	"go.uber.org/zap"
)

// Router bundles every handler dependency and builds the gin engine.
type Router struct {
	Logger        *zap.Logger
	Identity      auth.IdentityProvider
	Profiles      *services.ProfileService
	Jobs          *services.JobService
	Applications  *services.ApplicationService
	Achievements  *services.AchievementService
	Authenticator *auth.Authenticator
}

// Engine assembles middleware and the route table. OPTIONS preflights
// answer 200 from the CORS layer; unknown methods on known routes are
// 405.
func (rt *Router) Engine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(rt.Logger))
	r.Use(Metrics())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "X-Amz-Date", "Authorization", "X-Api-Key", "X-Amz-Security-Token"}
	corsConfig.OptionsResponseStatusCode = http.StatusOK
	r.Use(cors.New(corsConfig))

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	profileHandler := NewProfileHandler(rt.Profiles, rt.Logger)
	jobHandler := NewJobHandler(rt.Jobs, rt.Logger)
	applicationHandler := NewApplicationHandler(rt.Applications, rt.Profiles, rt.Logger)
	achievementHandler := NewAchievementHandler(rt.Achievements, rt.Logger)
	authHandler := NewAuthHandler(rt.Authenticator, rt.Logger)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		api.GET("/health", HealthCheck)

		// Auth routes stay public; sign-out and me read the bearer
		// token themselves.
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/signup", authHandler.SignUp)
			authRoutes.POST("/signin", authHandler.SignIn)
			authRoutes.POST("/signout", authHandler.SignOut)
			authRoutes.GET("/me", authHandler.Me)
		}

		resources := api.Group("")
		resources.Use(Identity(rt.Identity))
		{
			resources.GET("/profiles", profileHandler.GetByUser)
			resources.POST("/profiles", profileHandler.Create)
			resources.GET("/profiles/:id", profileHandler.Get)
			resources.PUT("/profiles/:id", profileHandler.Update)

			resources.GET("/jobs", jobHandler.List)
			resources.POST("/jobs", jobHandler.Create)
			resources.GET("/jobs/:id", jobHandler.Get)
			resources.PUT("/jobs/:id", jobHandler.Update)
			resources.DELETE("/jobs/:id", jobHandler.Delete)

			resources.GET("/applications", applicationHandler.List)
			resources.POST("/applications", applicationHandler.Create)
			resources.GET("/applications/:id", applicationHandler.Get)
			resources.PUT("/applications/:id", applicationHandler.Update)
			resources.DELETE("/applications/:id", applicationHandler.Delete)

			resources.GET("/achievements", achievementHandler.List)
			resources.GET("/achievements/user", achievementHandler.ListForUser)
		}
	}

	return r
}

// internalError converts any unexpected failure into a generic 500.
// The real error is only logged, never sent to the client.
func internalError(c *gin.Context, logger *zap.Logger, err error) {
	logger.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
