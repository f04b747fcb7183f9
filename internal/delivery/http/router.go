package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"cricturf/internal/delivery/http/controllers"
	"cricturf/internal/delivery/http/middleware"
	"cricturf/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	bookingController *controllers.BookingController,
	catalogController *controllers.CatalogController,
	adminController *controllers.AdminController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAdmin := middleware.RequireAdmin(verifier)

	// Catalog and availability
	mux.HandleFunc("GET /venues", catalogController.ListVenues)
	mux.HandleFunc("GET /slots", catalogController.ListSlots)
	mux.HandleFunc("GET /availability", catalogController.GetAvailability)

	// Bookings
	mux.HandleFunc("POST /bookings", bookingController.CreateBooking)

	// Admin
	mux.HandleFunc("POST /admin/login", adminController.Login)
	mux.HandleFunc("GET /admin/bookings", requireAdmin(adminController.ListBookings))
	mux.HandleFunc("DELETE /admin/bookings/{bookingID}", requireAdmin(adminController.CancelBooking))

	// Health
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
