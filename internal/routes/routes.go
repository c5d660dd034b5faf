package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jakescarcare/valet-api/internal/audit"
	"github.com/jakescarcare/valet-api/internal/cache"
	"github.com/jakescarcare/valet-api/internal/config"
	"github.com/jakescarcare/valet-api/internal/handlers"
	infraRepo "github.com/jakescarcare/valet-api/internal/infra/repository"
	"github.com/jakescarcare/valet-api/internal/middleware"
	"github.com/jakescarcare/valet-api/internal/notify"
	"github.com/jakescarcare/valet-api/internal/storage"
	ucBooking "github.com/jakescarcare/valet-api/internal/usecase/booking"
	ucReport "github.com/jakescarcare/valet-api/internal/usecase/report"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	store storage.ObjectStore,
	dayCache *cache.DayCache,
	notifyDisp *notify.Dispatcher,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	availabilityUC := ucBooking.NewGetAvailability(bookingRepo, dayCache)

	selectableDatesUC := ucBooking.NewListSelectableDates(bookingRepo)

	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		auditDispatcher,
		notifyDisp,
		dayCache,
	)

	createAdminBookingUC := ucBooking.NewCreateAdminBooking(
		bookingRepo,
		auditDispatcher,
		notifyDisp,
		dayCache,
	)

	setCompletedUC := ucBooking.NewSetCompleted(bookingRepo, auditDispatcher)

	setPriceUC := ucBooking.NewSetPrice(bookingRepo, auditDispatcher)

	deleteBookingUC := ucBooking.NewDeleteBooking(
		bookingRepo,
		auditDispatcher,
		dayCache,
	)

	earningsReportUC := ucReport.NewEarningsReport(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	publicHandler := handlers.NewPublicHandler(
		availabilityUC,
		selectableDatesUC,
		createBookingUC,
	)

	bookingHandler := handlers.NewBookingHandler(
		bookingRepo,
		createAdminBookingUC,
		setCompletedUC,
		setPriceUC,
		deleteBookingUC,
	)

	reportHandler := handlers.NewReportHandler(earningsReportUC)
	reviewHandler := handlers.NewReviewHandler(db, auditDispatcher)
	galleryHandler := handlers.NewGalleryHandler(db, store, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.GET("/availability/dates", publicHandler.SelectableDates)
			publicAPI.POST("/bookings", publicHandler.CreateBooking)

			publicAPI.POST("/reviews", reviewHandler.Create)
			publicAPI.GET("/reviews", reviewHandler.ListApproved)

			publicAPI.GET("/gallery", galleryHandler.List)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// ADMIN API
		// ------------------------------
		secured := api.Group("/admin")
		secured.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole("admin"))
		{
			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.GET("/bookings", bookingHandler.List)
			secured.POST("/bookings", bookingHandler.Create)
			secured.PATCH("/bookings/:id/completed", bookingHandler.SetCompleted)
			secured.PATCH("/bookings/:id/price", bookingHandler.SetPrice)
			secured.DELETE("/bookings/:id", bookingHandler.Delete)

			secured.GET("/reports/calendar", reportHandler.Calendar)

			// ------------------------------
			// REVIEWS
			// ------------------------------
			secured.GET("/reviews", reviewHandler.ListAll)
			secured.PATCH("/reviews/:id/approve", reviewHandler.SetApproved)
			secured.DELETE("/reviews/:id", reviewHandler.Delete)

			// ------------------------------
			// GALLERY
			// ------------------------------
			secured.POST("/gallery", galleryHandler.Upload)
			secured.PATCH("/gallery/:id", galleryHandler.Update)
			secured.PUT("/gallery/order", galleryHandler.Reorder)
			secured.DELETE("/gallery/:id", galleryHandler.Delete)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
