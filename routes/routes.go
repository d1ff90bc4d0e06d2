package routes

import (
	"bizbook/bookings"
	"bizbook/imageproxy"
	"bizbook/middleware"
	"bizbook/printout"
	"bizbook/ratelim"
	"bizbook/services"

	"github.com/julienschmidt/httprouter"
)

const apiV1 = "/api/v1"

func AddServiceRoutes(router *httprouter.Router, h *services.Handler, up *imageproxy.Handler, rl *ratelim.RateLimiter) {
	router.GET(apiV1+"/biz-services", middleware.RequestID(h.GetServices))
	router.GET(apiV1+"/biz-services/:id", middleware.RequestID(h.GetService))
	router.POST(apiV1+"/biz-services/new", rl.Limit(middleware.RequestID(h.CreateService)))
	router.PUT(apiV1+"/biz-services/:id", rl.Limit(middleware.RequestID(h.UpdateService)))
	router.DELETE(apiV1+"/biz-services/:id", rl.Limit(middleware.RequestID(h.DeleteService)))

	router.POST(apiV1+"/biz-services/image/upload", rl.Limit(middleware.RequestID(up.UploadImages)))
	router.POST(apiV1+"/biz-services/upload/:id", rl.Limit(middleware.RequestID(h.UploadServiceMedia)))
}

func AddBookingRoutes(router *httprouter.Router, h *bookings.Handler, pr *printout.Handler, rl *ratelim.RateLimiter) {
	router.GET(apiV1+"/bookings", middleware.RequestID(h.GetAppointments))
	router.GET(apiV1+"/bookings/:id", middleware.RequestID(h.GetAppointment))
	router.POST(apiV1+"/bookings/new", rl.Limit(middleware.RequestID(h.CreateAppointment)))
	router.PUT(apiV1+"/bookings/:id", rl.Limit(middleware.RequestID(h.UpdateAppointment)))
	router.DELETE(apiV1+"/bookings/:id", rl.Limit(middleware.RequestID(h.DeleteAppointment)))

	router.GET(apiV1+"/bookings/:id/print", middleware.RequestID(pr.PrintBooking))
}
