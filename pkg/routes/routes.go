package routes

import (
	"context"
	"log"
	"os"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"MastoRide/internal/admin"
	"MastoRide/internal/auth"
	"MastoRide/internal/booking"
	"MastoRide/internal/config"
	"MastoRide/internal/guard"
	"MastoRide/internal/profile"
	"MastoRide/internal/rewards"
	"MastoRide/internal/state"
	"MastoRide/internal/student"
	"MastoRide/internal/support"
	"MastoRide/pkg/middleware"
)

var EchoModules = fx.Module("echo",
	fx.Provide(NewEchoServer),
	fx.Provide(config.NewLogger),
	fx.Provide(config.NewMongoDBConfig),
	fx.Provide(config.NewMongoDBClient),
	fx.Provide(config.NewRedisConfig),
	fx.Provide(config.NewRedisClient),
	fx.Provide(NewStateStore),
	fx.Provide(config.NewResendConfig),
	fx.Provide(config.NewMailer),
	fx.Provide(auth.NewUserRepository),
	fx.Provide(auth.NewUserService),
	fx.Provide(auth.NewAuthHandler),
	fx.Provide(profile.NewReconciler),
	fx.Provide(profile.NewProfileHandler),
	fx.Provide(rewards.NewService),
	fx.Provide(rewards.NewRewardsHandler),
	fx.Provide(booking.NewBookingRepository),
	fx.Provide(booking.NewService),
	fx.Provide(booking.NewBookingHandler),
	fx.Provide(student.NewStudentRepository),
	fx.Provide(student.NewService),
	fx.Provide(student.NewStudentHandler),
	fx.Provide(support.NewTicketRepository),
	fx.Provide(support.NewService),
	fx.Provide(support.NewSupportHandler),
	fx.Provide(admin.NewService),
	fx.Provide(admin.NewAdminHandler),
	fx.Invoke(EnsureIndexes),
	fx.Invoke(RegisterRoutes))

// NewStateStore backs the client-state cache with Redis.
func NewStateStore(client *redis.Client) state.Store {
	return state.NewRedisStore(client)
}

// EnsureIndexes creates the store-level constraints at startup. The unique
// email index is what makes concurrent duplicate signups fail instead of
// silently overwriting.
func EnsureIndexes(repo *auth.UserRepository) {
	config.UniqueEmailIndex(repo.Collection())
}

func NewEchoServer(lc fx.Lifecycle) *echo.Echo {
	e := echo.New()
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Println("Server running on http://localhost:" + port)
			go func() {
				if err := e.Start(":" + port); err != nil {
					log.Println("Server stopped:", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("shutting down the server ...")
			return e.Shutdown(ctx)
		},
	})
	return e
}

func RegisterRoutes(
	e *echo.Echo,
	authHandler *auth.AuthHandler,
	profileHandler *profile.ProfileHandler,
	rewardsHandler *rewards.RewardsHandler,
	bookingHandler *booking.BookingHandler,
	studentHandler *student.StudentHandler,
	supportHandler *support.SupportHandler,
	adminHandler *admin.AdminHandler,
) {
	api := e.Group("/api")

	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/forgot-password", authHandler.ForgotPassword)
	api.POST("/auth/reset-password", authHandler.ResetPassword)

	// any authenticated identity
	protected := api.Group("", middleware.JWTMiddleware, middleware.RequireRole(guard.RoleUser))
	protected.GET("/auth/profile", authHandler.Profile)

	protected.GET("/me/profile", profileHandler.GetProfile)
	protected.PUT("/me/profile", profileHandler.SaveProfile)
	protected.GET("/me/settings", profileHandler.GetSettings)
	protected.PUT("/me/settings", profileHandler.SaveSettings)
	protected.GET("/me/ui-state", profileHandler.GetUIState)
	protected.PUT("/me/ui-state", profileHandler.SaveUIState)

	protected.GET("/me/rewards", rewardsHandler.Get)
	protected.POST("/me/rewards/badges/:id/use", rewardsHandler.UseBadge)
	protected.POST("/me/rewards/redeem", rewardsHandler.Redeem)

	protected.GET("/me/ride-draft", bookingHandler.GetDraft)
	protected.PUT("/me/ride-draft", bookingHandler.SaveDraft)
	protected.POST("/me/ride-draft/estimate", bookingHandler.Estimate)
	protected.POST("/bookings", bookingHandler.Confirm)
	protected.GET("/bookings", bookingHandler.History)

	protected.POST("/support", supportHandler.Submit)

	// admin surface; role string must match exactly
	adminGroup := api.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole(guard.RoleAdmin))
	adminGroup.GET("/users", adminHandler.ListUsers)
	adminGroup.DELETE("/users/:id", adminHandler.DeleteUser)
	adminGroup.GET("/stats", adminHandler.Stats)
	adminGroup.GET("/bookings", adminHandler.Bookings)
	adminGroup.GET("/feedback", supportHandler.List)
	adminGroup.PUT("/feedback/:id", supportHandler.UpdateStatus)

	adminGroup.POST("/students", studentHandler.Create)
	adminGroup.GET("/students", studentHandler.List)
	adminGroup.GET("/students/:id", studentHandler.Get)
	adminGroup.PUT("/students/:id", studentHandler.Update)
	adminGroup.DELETE("/students/:id", studentHandler.Delete)
}
