package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/petrescuehub/rescuehub-api/internal/handler"
	"github.com/petrescuehub/rescuehub-api/internal/middleware"
	"github.com/petrescuehub/rescuehub-api/internal/models"
	"github.com/petrescuehub/rescuehub-api/internal/service"
	"github.com/petrescuehub/rescuehub-api/pkg/config"
	"github.com/petrescuehub/rescuehub-api/pkg/logger"
	corsmiddleware "github.com/petrescuehub/rescuehub-api/pkg/middleware/cors"
	reqidmiddleware "github.com/petrescuehub/rescuehub-api/pkg/middleware/requestid"
)

// Options bundles everything the router needs to build the HTTP surface.
type Options struct {
	Config  *config.Config
	Logger  *zap.Logger
	Auth    *service.AuthService
	Metrics *service.MetricsService

	AuthHandler      *handler.AuthHandler
	UserHandler      *handler.UserHandler
	PetHandler       *handler.PetHandler
	AdoptionHandler  *handler.AdoptionHandler
	ShelterHandler   *handler.ShelterHandler
	LostFoundHandler *handler.LostFoundHandler
	DonationHandler  *handler.DonationHandler
	MetricsHandler   *handler.MetricsHandler
}

// New assembles the gin engine with middleware and every API route.
func New(opts Options) *gin.Engine {
	if opts.Config.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(opts.Logger))
	r.Use(corsmiddleware.New(opts.Config.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(opts.Metrics))

	r.GET("/health", opts.MetricsHandler.Health)
	r.GET("/ready", opts.MetricsHandler.Ready)
	r.GET("/metrics", opts.MetricsHandler.Prometheus)

	if opts.Config.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", opts.AuthHandler.Register)
		auth.POST("/login", opts.AuthHandler.Login)
		auth.POST("/refresh", opts.AuthHandler.Refresh)
		auth.POST("/logout", middleware.JWT(opts.Auth), opts.AuthHandler.Logout)
		auth.POST("/change-password", middleware.JWT(opts.Auth), opts.AuthHandler.ChangePassword)
		auth.GET("/me", middleware.JWT(opts.Auth), opts.AuthHandler.Me)
	}

	users := api.Group("/users", middleware.JWT(opts.Auth))
	{
		users.GET("", middleware.RequireRoles(models.RoleAdmin), opts.UserHandler.List)
		users.GET("/:id", middleware.RequireSelfOr(models.RoleAdmin), opts.UserHandler.Get)
		users.PUT("/:id", middleware.RequireSelfOr(models.RoleAdmin), opts.UserHandler.Update)
	}

	pets := api.Group("/pets")
	{
		pets.GET("", opts.PetHandler.List)
		pets.GET("/:id", opts.PetHandler.Get)

		staff := pets.Group("", middleware.JWT(opts.Auth), middleware.RequireRoles(models.RoleShelterStaff, models.RoleAdmin))
		staff.POST("", opts.PetHandler.Create)
		staff.PUT("/:id", opts.PetHandler.Update)
		staff.DELETE("/:id", opts.PetHandler.Delete)
	}

	adoptions := api.Group("/adoption-requests", middleware.JWT(opts.Auth))
	{
		adoptions.POST("", opts.AdoptionHandler.Submit)
		adoptions.GET("/user", opts.AdoptionHandler.ListMine)
		adoptions.PUT("/:id", middleware.RequireRoles(models.RoleShelterStaff, models.RoleAdmin), opts.AdoptionHandler.Decide)
		adoptions.GET("/pet/:petId", middleware.RequireRoles(models.RoleShelterStaff, models.RoleAdmin), opts.AdoptionHandler.ListForPet)
	}

	shelters := api.Group("/shelters")
	{
		shelters.GET("", opts.ShelterHandler.List)
		shelters.GET("/:id", opts.ShelterHandler.Get)
		shelters.POST("", middleware.JWT(opts.Auth), middleware.RequireRoles(models.RoleAdmin), opts.ShelterHandler.Create)
		shelters.PUT("/:id", middleware.JWT(opts.Auth), middleware.RequireRoles(models.RoleAdmin), opts.ShelterHandler.Update)
	}

	lostFound := api.Group("/lost-found-pets")
	{
		lostFound.GET("", opts.LostFoundHandler.List)
		lostFound.GET("/:id", opts.LostFoundHandler.Get)
		lostFound.POST("", middleware.OptionalJWT(opts.Auth), opts.LostFoundHandler.Create)
		lostFound.PUT("/:id", middleware.JWT(opts.Auth), opts.LostFoundHandler.Update)
	}

	donations := api.Group("/donations")
	{
		donations.POST("", middleware.OptionalJWT(opts.Auth), opts.DonationHandler.Create)
		donations.GET("", middleware.JWT(opts.Auth), middleware.RequireRoles(models.RoleAdmin), opts.DonationHandler.List)
		donations.GET("/export", middleware.JWT(opts.Auth), middleware.RequireRoles(models.RoleAdmin), opts.DonationHandler.Export)
	}

	return r
}
