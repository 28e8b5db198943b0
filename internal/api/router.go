package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medtransit/transport-backend-go/internal/config"
	"github.com/medtransit/transport-backend-go/internal/handler"
	"github.com/medtransit/transport-backend-go/internal/middleware"
	"github.com/medtransit/transport-backend-go/internal/repository"
	"github.com/medtransit/transport-backend-go/internal/service"
)

// SetupRouter wires repositories, services and handlers onto the HTTP
// routes
func SetupRouter(cfg *config.Config, db *sql.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.RateLimit(300, time.Minute))

	// CORS for the scheduling UI
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	patientRepo := repository.NewPatientRepository(db)
	driverRepo := repository.NewDriverRepository(db)
	destinationRepo := repository.NewDestinationRepository(db)
	tripRepo := repository.NewTripRepository(db)
	recurringRepo := repository.NewRecurringTripRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)

	patientHandler := handler.NewPatientHandler(service.NewPatientService(patientRepo))
	driverHandler := handler.NewDriverHandler(service.NewDriverService(driverRepo))
	destinationHandler := handler.NewDestinationHandler(service.NewDestinationService(destinationRepo))
	tripHandler := handler.NewTripHandler(service.NewTripService(tripRepo, availabilityRepo))
	recurringHandler := handler.NewRecurringTripHandler(
		service.NewRecurringTripService(recurringRepo, tripRepo, cfg.HorizonDays))
	availabilityHandler := handler.NewAvailabilityHandler(
		service.NewAvailabilityService(availabilityRepo))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		patients := api.Group("/patients")
		{
			patients.GET("", patientHandler.GetPatients)
			patients.POST("", patientHandler.CreatePatient)
			patients.GET("/:id", patientHandler.GetPatient)
			patients.PUT("/:id", patientHandler.UpdatePatient)
			patients.DELETE("/:id", patientHandler.DeletePatient)
		}

		drivers := api.Group("/drivers")
		{
			drivers.GET("", driverHandler.GetDrivers)
			drivers.POST("", driverHandler.CreateDriver)
			drivers.GET("/:id", driverHandler.GetDriver)
			drivers.PUT("/:id", driverHandler.UpdateDriver)
			drivers.DELETE("/:id", driverHandler.DeleteDriver)
		}

		destinations := api.Group("/destinations")
		{
			destinations.GET("", destinationHandler.GetDestinations)
			destinations.POST("", destinationHandler.CreateDestination)
			destinations.GET("/:id", destinationHandler.GetDestination)
			destinations.PUT("/:id", destinationHandler.UpdateDestination)
			destinations.DELETE("/:id", destinationHandler.DeleteDestination)
		}

		trips := api.Group("/trips")
		{
			trips.GET("", tripHandler.GetTrips)
			trips.POST("", tripHandler.CreateTrip)
			trips.GET("/:id", tripHandler.GetTrip)
			trips.PUT("/:id", tripHandler.UpdateTrip)
			trips.PATCH("/:id/status", tripHandler.UpdateTripStatus)
			trips.DELETE("/:id", tripHandler.DeleteTrip)
		}

		recurring := api.Group("/recurring-trips")
		{
			recurring.GET("", recurringHandler.GetRecurringTrips)
			recurring.POST("", recurringHandler.CreateRecurringTrip)
			recurring.GET("/:id", recurringHandler.GetRecurringTrip)
			recurring.PUT("/:id", recurringHandler.UpdateRecurringTrip)
			recurring.PATCH("/:id/deactivate", recurringHandler.DeactivateRecurringTrip)
			recurring.DELETE("/:id", recurringHandler.DeleteRecurringTrip)
			recurring.GET("/:id/trips", recurringHandler.GetInstances)
			recurring.POST("/:id/generate", recurringHandler.GenerateInstances)
		}

		availability := api.Group("/availability")
		{
			availability.GET("/available", availabilityHandler.FindAvailable)
			availability.GET("/slots", availabilityHandler.GetSlots)
			availability.GET("/drivers/:id/patterns", availabilityHandler.GetDriverPatterns)
			availability.POST("/drivers/:id/patterns", availabilityHandler.CreateDriverPatterns)
			availability.DELETE("/drivers/:id/patterns", availabilityHandler.DeleteDriverPatterns)
			availability.DELETE("/patterns/:id", availabilityHandler.DeletePattern)
			availability.GET("/drivers/:id/bookings", availabilityHandler.GetDriverBookings)
			availability.GET("/bookings", availabilityHandler.GetBookingsByDate)
			availability.POST("/bookings", availabilityHandler.CreateBooking)
			availability.DELETE("/bookings/:id", availabilityHandler.DeleteBooking)
			availability.DELETE("/bookings/trip/:tripId", availabilityHandler.DeleteBookingsForTrip)
		}
	}

	return r
}
