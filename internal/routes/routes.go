package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/trektide/trektide/internal/config"
	"github.com/trektide/trektide/internal/handlers"
	"github.com/trektide/trektide/internal/mail"
	"github.com/trektide/trektide/internal/middleware"
	"github.com/trektide/trektide/internal/models"
	"github.com/trektide/trektide/internal/payments"
	"github.com/trektide/trektide/internal/storage"
)

type Deps struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Logger   zerolog.Logger
	Redis    *redis.Client
	Store    *storage.Store
	Mailer   *mail.Mailer
	Dispatch *mail.Dispatcher
	Checkout *payments.Client
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ------------------------------
	// HANDLERS
	// ------------------------------
	authHandler := handlers.NewAuthHandler(d.DB, d.Cfg, d.Mailer, d.Dispatch)
	userHandler := handlers.NewUserHandler(d.DB, d.Store)
	tourHandler := handlers.NewTourHandler(d.DB, d.Store)
	reviewHandler := handlers.NewReviewHandler(d.DB)
	bookingHandler := handlers.NewBookingHandler(d.DB, d.Cfg, d.Checkout)
	viewsHandler := handlers.NewViewsHandler(d.DB)

	protect := middleware.Protect(d.DB, d.Cfg)
	loggedIn := middleware.IsLoggedIn(d.DB, d.Cfg)

	// ------------------------------
	// RENDERED PAGES
	// ------------------------------
	web := r.Group("/", loggedIn)
	{
		web.GET("/", bookingHandler.CreateBookingFromCheckout, viewsHandler.Overview)
		web.GET("/tour/:slug", viewsHandler.TourDetail)
		web.GET("/login", viewsHandler.LoginForm)
		web.GET("/me", protect, viewsHandler.Account)
		web.GET("/my-tours", protect, bookingHandler.CreateBookingFromCheckout, viewsHandler.MyTours)
	}

	// ------------------------------
	// API (JSON)
	// ------------------------------
	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(d.Redis, d.Cfg, d.Logger))

	// ------------------------------
	// USERS / AUTH
	// ------------------------------
	users := api.Group("/users")
	{
		users.POST("/signup", authHandler.Signup)
		users.POST("/login", authHandler.Login)
		users.GET("/logout", authHandler.Logout)
		users.POST("/forgot-password", authHandler.ForgotPassword)
		users.PATCH("/reset-password/:token", authHandler.ResetPassword)

		me := users.Group("/", protect)
		{
			me.PATCH("/update-my-password", authHandler.UpdatePassword)
			me.GET("/me", userHandler.GetMe)
			me.PATCH("/update-me", userHandler.UpdateMe)
			me.DELETE("/delete-me", userHandler.DeleteMe)
		}

		admin := users.Group("/", protect, middleware.RestrictTo(models.RoleAdmin))
		{
			admin.GET("", userHandler.Res.GetAll)
			admin.POST("", userHandler.CreateUser)
			admin.GET("/:id", userHandler.Res.GetOne)
			admin.PATCH("/:id", userHandler.Res.UpdateOne)
			admin.DELETE("/:id", userHandler.Res.DeleteOne)
		}
	}

	// ------------------------------
	// TOURS
	// ------------------------------
	tours := api.Group("/tours")
	{
		tours.GET("/top-5-cheap", tourHandler.AliasTopTours, tourHandler.Res.GetAll)
		tours.GET("/tour-stats", tourHandler.TourStats)
		tours.GET("/monthly-plan/:year",
			protect,
			middleware.RestrictTo(models.RoleAdmin, models.RoleLeadGuide, models.RoleGuide),
			tourHandler.MonthlyPlan,
		)
		tours.GET("/tours-within/:distance/center/:latlng/unit/:unit", tourHandler.ToursWithin)
		tours.GET("/distances/:latlng/unit/:unit", tourHandler.Distances)

		tours.GET("", tourHandler.Res.GetAll)
		tours.GET("/:id", tourHandler.Res.GetOne)

		manage := tours.Group("/", protect, middleware.RestrictTo(models.RoleAdmin, models.RoleLeadGuide))
		{
			manage.POST("", tourHandler.Res.CreateOne)
			manage.PATCH("/:id", tourHandler.UploadTourImages, tourHandler.Res.UpdateOne)
			manage.DELETE("/:id", tourHandler.Res.DeleteOne)
		}

		// Nested reviews for one tour. The wildcard shares the ":id"
		// name with the sibling tour routes; gin requires that.
		nested := tours.Group("/:id/reviews", protect)
		{
			nested.GET("", reviewHandler.Res.GetAll)
			nested.POST("", middleware.RestrictTo(models.RoleUser), reviewHandler.Create)
		}
	}

	// ------------------------------
	// REVIEWS
	// ------------------------------
	reviews := api.Group("/reviews", protect)
	{
		reviews.GET("", reviewHandler.Res.GetAll)
		reviews.POST("", middleware.RestrictTo(models.RoleUser), reviewHandler.Create)
		reviews.GET("/:id", reviewHandler.Res.GetOne)
		reviews.PATCH("/:id", middleware.RestrictTo(models.RoleUser, models.RoleAdmin), reviewHandler.Res.UpdateOne)
		reviews.DELETE("/:id", middleware.RestrictTo(models.RoleUser, models.RoleAdmin), reviewHandler.Res.DeleteOne)
	}

	// ------------------------------
	// BOOKINGS
	// ------------------------------
	bookings := api.Group("/bookings", protect)
	{
		bookings.GET("/checkout-session/:tourID", bookingHandler.GetCheckoutSession)

		admin := bookings.Group("/", middleware.RestrictTo(models.RoleAdmin, models.RoleLeadGuide))
		{
			admin.GET("", bookingHandler.Res.GetAll)
			admin.POST("", bookingHandler.Res.CreateOne)
			admin.GET("/:id", bookingHandler.Res.GetOne)
			admin.PATCH("/:id", bookingHandler.Res.UpdateOne)
			admin.DELETE("/:id", bookingHandler.Res.DeleteOne)
		}
	}
}
