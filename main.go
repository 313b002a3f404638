package main

import (
	"fmt"
	"os"

	"locallytrip-server/routes"
	"locallytrip-server/services"
	"locallytrip-server/storage"
	"locallytrip-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Only load .env in development
	if os.Getenv("APP_ENV") != "production" {
		godotenv.Load()
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// Initialize services
	storage.InitializeDB()
	storage.InitializeRedis()
	storage.InitializeUploads()
	services.InitializeNotifier()

	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)
	app.Use(utils.MetricsMiddleware)

	// JWT Verifiers
	resetTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("EMAIL_TOKEN_SECRET")))
	resetTokenVerifier.WithDefaultBlocklist()
	resetTokenVerifierMiddleware := resetTokenVerifier.Verify(func() interface{} {
		return new(utils.ForgotPasswordToken)
	})

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})
	app.Get("/metrics", iris.FromStd(promhttp.Handler()))

	// Routes
	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Post("/google", routes.GoogleLoginOrSignUp)
		user.Post("/forgotpassword", routes.ForgotPassword)
		user.Post("/resetpassword", resetTokenVerifierMiddleware, routes.ResetPassword)
		user.Get("/profile", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetUserProfile)
		user.Patch("/profile", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.UpdateUserProfile)
		user.Get("/{id}/stories/saved", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.GetUserSavedStories)
		user.Patch("/{id}/stories/saved", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.AlterUserSavedStories)
	}

	stories := app.Party("/api/stories")
	{
		stories.Get("/", routes.GetStories)
		stories.Post("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CreateStory)
		stories.Get("/my-stories", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetMyStories)
		stories.Get("/my-stories/{id}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetMyStory)
		stories.Get("/slug/{slug}", routes.GetStoryBySlug)
		stories.Get("/{id}", routes.GetStory)
		stories.Put("/{id}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.UpdateStory)
		stories.Post("/{id}/submit", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.SubmitStoryForReview)
		stories.Delete("/{id}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.DeleteStory)
		// Engagement
		stories.Post("/{id}/like", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.ToggleStoryLike)
		stories.Get("/{id}/like-status", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetStoryLikeStatus)
		stories.Get("/{id}/comments", routes.ListStoryComments)
		stories.Post("/{id}/comments", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CreateStoryComment)
	}

	experience := app.Party("/api/experiences")
	{
		experience.Get("/public", routes.GetPublicExperiences)
		experience.Post("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CreateExperience)
		experience.Get("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetMyExperiences)
		experience.Put("/{id}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.UpdateExperience)
		experience.Post("/{id}/submit", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.SubmitExperienceForReview)
		experience.Post("/{id}/pause", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.PauseExperience)
		experience.Post("/{id}/resume", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.ResumeExperience)
		experience.Delete("/{id}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.DeleteExperience)
		// Booking
		experience.Post("/book", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CreateBooking)
		experience.Get("/bookings", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetMyBookings)
		experience.Get("/host-bookings", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetHostBookings)
		experience.Patch("/bookings/{id}/mark-read", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.MarkBookingAsRead)
		experience.Delete("/bookings/{id}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CancelBooking)
		experience.Get("/{id}", routes.GetExperienceDetails)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/users", routes.AdminListUsers)
		admin.Get("/users/{id:uint}", routes.AdminGetUser)
		admin.Patch("/users/{id:uint}/role", utils.SuperAdminOnlyMiddleware, routes.AdminChangeUserRole)
		admin.Patch("/users/{id:uint}/trusted", routes.AdminSetUserTrusted)
		admin.Get("/stories", routes.AdminListStories)
		admin.Get("/stories/{id:uint}", routes.AdminGetStory)
		admin.Patch("/stories/{id:uint}/approve", routes.AdminApproveStory)
		admin.Patch("/stories/{id:uint}/reject", routes.AdminRejectStory)
		admin.Patch("/stories/{id:uint}/suspend", routes.AdminSuspendStory)
		admin.Patch("/stories/{id:uint}/reactivate", routes.AdminReactivateStory)
		admin.Get("/experiences", routes.AdminListExperiences)
		admin.Get("/experiences/{id:uint}", routes.AdminGetExperience)
		admin.Patch("/experiences/{id:uint}/approve", routes.AdminApproveExperience)
		admin.Patch("/experiences/{id:uint}/reject", routes.AdminRejectExperience)
		admin.Patch("/experiences/{id:uint}/suspend", routes.AdminSuspendExperience)
		admin.Patch("/experiences/{id:uint}/reactivate", routes.AdminReactivateExperience)
		admin.Get("/featured-hosts", routes.AdminListFeaturedHosts)
		admin.Post("/featured-hosts", routes.AdminCreateFeaturedHost)
		admin.Patch("/featured-hosts/{id:uint}", routes.AdminUpdateFeaturedHost)
		admin.Post("/featured-hosts/{id:uint}/toggle", routes.AdminToggleFeaturedHost)
		admin.Delete("/featured-hosts/{id:uint}", routes.AdminDeleteFeaturedHost)
		admin.Get("/stats", routes.AdminStats)
	}

	featured := app.Party("/api/featured-hosts")
	{
		featured.Get("/", routes.ListFeaturedHosts)
	}

	locations := app.Party("/api/locations")
	{
		locations.Get("/countries", routes.ListCountries)
		locations.Get("/cities", routes.ListCities)
	}

	notifications := app.Party("/api/notifications")
	{
		notifications.Get("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.ListNotifications)
		notifications.Patch("/{id}/read", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.MarkNotificationRead)
	}

	app.Post("/api/upload", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.UploadImage)
	app.Delete("/api/upload/{name}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.DeleteImage)
	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	fmt.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
