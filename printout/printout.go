package printout

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"time"

	"bizbook/stores"
	"bizbook/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Handler renders printable booking confirmations.
type Handler struct {
	Store    stores.AppointmentStore
	Services stores.ServiceStore
}

func NewHandler(store stores.AppointmentStore, services stores.ServiceStore) *Handler {
	return &Handler{Store: store, Services: services}
}

// PrintBooking handles GET /api/v1/bookings/:id/print
// Returns a PDF confirmation carrying the booking details and a QR code of
// the booking number. The PDF body is raw, outside the JSON envelope.
func (h *Handler) PrintBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, r, http.StatusBadRequest, "Validation error: Invalid request data")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	appt, err := h.Store.Get(ctx, id)
	if err == stores.ErrNotFound {
		utils.RespondWithError(w, r, http.StatusNotFound, "Appointment not found")
		return
	}
	if err != nil {
		log.Println("Appointment get error:", err)
		utils.RespondWithError(w, r, http.StatusInternalServerError, "Database error")
		return
	}

	// Service may have been hard-deleted after booking; print without a
	// name in that case.
	serviceName := ""
	if svc, err := h.Services.Get(ctx, appt.ServiceID); err == nil {
		serviceName = svc.Name
	}

	qrPNG, err := qrcode.Encode(appt.BookingNumber, qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Booking Confirmation")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, "Booking Number: "+appt.BookingNumber)
	pdf.Ln(8)
	pdf.Cell(0, 10, "Customer: "+appt.CustomerName)
	pdf.Ln(8)
	if serviceName != "" {
		pdf.Cell(0, 10, "Service: "+serviceName)
		pdf.Ln(8)
	}
	pdf.Cell(0, 10, "Time: "+appt.AppointmentTime.Format(time.RFC1123))
	pdf.Ln(8)
	pdf.Cell(0, 10, "Status: "+appt.Status)
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+appt.BookingNumber+`.pdf"`)
	w.Write(buf.Bytes())
}
