package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/HestiaEstates/listing-api/internal/cache"
	"github.com/HestiaEstates/listing-api/internal/config"
	"github.com/HestiaEstates/listing-api/internal/events"
	"github.com/HestiaEstates/listing-api/internal/handlers"
	infraRepo "github.com/HestiaEstates/listing-api/internal/infra/repository"
	"github.com/HestiaEstates/listing-api/internal/middleware"
	"github.com/HestiaEstates/listing-api/internal/models"
	"github.com/HestiaEstates/listing-api/internal/storage"
	ucAppointment "github.com/HestiaEstates/listing-api/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	recorder := events.New(db)
	dispatcher := events.NewDispatcher(recorder)

	redisCache := cache.New(cfg)
	fileStore := storage.NewS3Store(cfg)

	// ======================================================
	// USE CASES: APPOINTMENTS
	// ======================================================
	requestVisitUC := ucAppointment.NewRequestVisit(appointmentRepo, dispatcher)
	respondVisitUC := ucAppointment.NewRespondToVisit(appointmentRepo, dispatcher)
	cancelVisitUC := ucAppointment.NewCancelVisit(appointmentRepo, dispatcher)
	completeVisitUC := ucAppointment.NewCompleteVisit(appointmentRepo, dispatcher)
	restoreVisitUC := ucAppointment.NewRestoreVisit(appointmentRepo, dispatcher)
	listVisitsUC := ucAppointment.NewListVisits(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	propertyHandler := handlers.NewPropertyHandler(db, dispatcher)
	progressHandler := handlers.NewProgressHandler(db, dispatcher)
	documentHandler := handlers.NewDocumentHandler(db, fileStore, dispatcher)
	lawyerHandler := handlers.NewLawyerHandler(db, dispatcher)
	visitSettingsHandler := handlers.NewVisitSettingsHandler(db, redisCache)
	imageHandler := handlers.NewImageHandler(db, fileStore)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		requestVisitUC,
		respondVisitUC,
		cancelVisitUC,
		completeVisitUC,
		restoreVisitUC,
		listVisitsUC,
	)

	agentHandler := handlers.NewAgentHandler(db, progressHandler, documentHandler, dispatcher)
	eventsHandler := handlers.NewEventsHandler(db)
	publicHandler := handlers.NewPublicHandler(db, redisCache)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/properties", publicHandler.ListProperties)
			publicAPI.GET("/properties/:id", publicHandler.GetProperty)
			publicAPI.GET("/properties/:id/slots", publicHandler.Slots)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/events", eventsHandler.List)

			// ------------------------------
			// SELLER: PROPERTIES & WORKFLOW
			// ------------------------------
			seller := secured.Group("/me/properties")
			seller.Use(middleware.RequireRole(string(models.RoleSeller)))
			{
				seller.POST("", propertyHandler.Create)
				seller.GET("", propertyHandler.List)
				seller.GET("/:id", propertyHandler.Get)
				seller.PATCH("/:id", propertyHandler.Update)

				seller.GET("/:id/progress", progressHandler.Get)
				seller.POST("/:id/progress/advance", progressHandler.Advance)

				seller.POST("/:id/documents", documentHandler.Upload)
				seller.GET("/:id/documents", documentHandler.List)

				seller.GET("/:id/lawyer", lawyerHandler.Get)
				seller.POST("/:id/lawyer", lawyerHandler.Upsert)

				seller.GET("/:id/visit-settings", visitSettingsHandler.Get)
				seller.PUT("/:id/visit-settings", visitSettingsHandler.Update)

				seller.POST("/:id/images", imageHandler.Upload)
				seller.GET("/:id/images", imageHandler.List)
			}

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/me/appointments", appointmentHandler.List)

			buyer := secured.Group("/appointments")
			{
				buyer.POST("", middleware.RequireRole(string(models.RoleBuyer)), appointmentHandler.Request)
				buyer.POST("/restore", middleware.RequireRole(string(models.RoleBuyer)), appointmentHandler.Restore)
				buyer.PATCH("/:id/cancel", middleware.RequireRole(string(models.RoleBuyer)), appointmentHandler.Cancel)
				buyer.PATCH("/:id/respond", middleware.RequireRole(string(models.RoleSeller)), appointmentHandler.Respond)
				buyer.PATCH("/:id/complete", middleware.RequireRole(string(models.RoleSeller)), appointmentHandler.Complete)
			}

			// ------------------------------
			// AGENT (PLATFORM)
			// ------------------------------
			agent := secured.Group("/agent")
			agent.Use(middleware.RequireRole(string(models.RoleAgent)))
			{
				agent.GET("/review-queue", agentHandler.ReviewQueue)
				agent.GET("/properties/:id/documents", agentHandler.ListDocuments)
				agent.POST("/properties/:id/documents/:docId/review", agentHandler.ReviewDocument)
				agent.POST("/properties/:id/review", agentHandler.Review)
				agent.POST("/properties/:id/lawyer/confirm", agentHandler.ConfirmLawyer)
				agent.POST("/properties/:id/assign", agentHandler.Assign)
				agent.POST("/properties/:id/publish", agentHandler.Publish)
			}
		}
	}
}
