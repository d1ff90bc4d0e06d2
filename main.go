package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"bizbook/bookings"
	"bizbook/db"
	"bizbook/imageproxy"
	"bizbook/mq"
	"bizbook/printout"
	"bizbook/ratelim"
	"bizbook/rdx"
	"bizbook/routes"
	"bizbook/services"
	"bizbook/stores"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		duration := time.Since(start)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, duration)
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func allowedOrigins() []string {
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		parts := strings.Split(raw, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if o := strings.TrimSpace(p); o != "" {
				origins = append(origins, o)
			}
		}
		return origins
	}
	return []string{
		"http://localhost:5173",
		"http://localhost:3000",
		"https://h5.zadn.vn",
	}
}

func setupRouter(database *db.Database, cache *rdx.Cache, rateLimiter *ratelim.RateLimiter) *httprouter.Router {
	serviceStore := stores.NewMongoServiceStore(database.Services)
	appointmentStore := stores.NewMongoAppointmentStore(database.Bookings)

	var emitter *mq.Emitter
	if cache != nil {
		emitter = mq.NewEmitter(cache.Conn)
	}

	serviceHandler := services.NewHandler(serviceStore, cache)
	bookingHandler := bookings.NewHandler(appointmentStore, serviceStore, emitter)
	uploadHandler := imageproxy.NewHandler()
	printHandler := printout.NewHandler(appointmentStore, serviceStore)

	router := httprouter.New()
	router.GET("/health", Index)
	routes.AddServiceRoutes(router, serviceHandler, uploadHandler, rateLimiter)
	routes.AddBookingRoutes(router, bookingHandler, printHandler, rateLimiter)
	return router
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = ":9800"
	} else if port[0] != ':' {
		port = ":" + port
	}

	ctx := context.Background()
	database, err := db.Connect(ctx)
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}

	cache := rdx.New()
	rateLimiter := ratelim.NewRateLimiter()
	router := setupRouter(database, cache, rateLimiter)

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:       allowedOrigins(),
		AllowedMethods:       []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:       []string{"*"},
		AllowCredentials:     true,
		OptionsSuccessStatus: http.StatusOK,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		log.Printf("🚀 Booking service listening on %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe error: %v", err)
		}
	}()

	// wait for interrupt or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("🛑 Shutdown signal received; shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("❌ Graceful shutdown failed: %v", err)
	}
	if err := database.Close(shutdownCtx); err != nil {
		log.Printf("Database disconnect error: %v", err)
	}

	log.Println("✅ Server stopped cleanly")
}
