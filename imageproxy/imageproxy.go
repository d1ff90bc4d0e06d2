package imageproxy

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bizbook/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

const maxFileSize = 4 << 20 // 4 MiB per file

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
}

// Handler forwards validated image uploads to the external image-storage
// service and relays its response verbatim.
type Handler struct {
	UploadURL string
	Client    *http.Client
}

func NewHandler() *Handler {
	uploadURL := os.Getenv("UPLOAD_SERVICE_URL")
	if uploadURL == "" {
		uploadURL = "http://localhost:6000"
	}
	return &Handler{
		UploadURL: uploadURL,
		Client:    &http.Client{Timeout: 30 * time.Second},
	}
}

func quoteEscape(s string) string {
	return strings.NewReplacer("\\", "\\\\", `"`, "\\\"").Replace(s)
}

// safeFilename keeps the original name when one was sent, falling back to
// a generated one so the upstream service always gets a usable filename.
func safeFilename(original string) string {
	name := strings.TrimSpace(filepath.Base(original))
	if name == "" || name == "." {
		return uuid.New().String()
	}
	return name
}

// UploadImages handles POST /api/v1/biz-services/image/upload
// Validates each file is a PNG/JPEG/JPG of at most 4 MiB, then forwards
// the whole batch to the upload service. Upstream failures (>= 400) are
// propagated to the caller with status and body unmodified.
func (h *Handler) UploadImages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.RespondWithError(w, r, http.StatusBadRequest, "Validation error: Invalid request data")
		return
	}

	category := r.FormValue("category")
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		utils.RespondWithError(w, r, http.StatusBadRequest, "Validation error: Invalid request data")
		return
	}

	log.Printf("Received %d files for category: %s", len(files), category)

	for _, fh := range files {
		contentType := fh.Header.Get("Content-Type")
		if !allowedImageTypes[contentType] {
			utils.RespondWithError(w, r, http.StatusBadRequest,
				fmt.Sprintf("Invalid file type: %s. Only PNG, JPEG, and JPG files are allowed.", contentType))
			return
		}
		if fh.Size > maxFileSize {
			utils.RespondWithError(w, r, http.StatusBadRequest,
				fmt.Sprintf("File size exceeds 4MB limit: %d bytes", fh.Size))
			return
		}
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			utils.RespondWithError(w, r, http.StatusInternalServerError, "Failed to read uploaded file")
			return
		}

		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="imageFiles"; filename="%s"`, quoteEscape(safeFilename(fh.Filename))))
		header.Set("Content-Type", fh.Header.Get("Content-Type"))

		part, err := writer.CreatePart(header)
		if err == nil {
			_, err = io.Copy(part, src)
		}
		src.Close()
		if err != nil {
			utils.RespondWithError(w, r, http.StatusInternalServerError, "Failed to forward uploaded file")
			return
		}
	}

	if err := writer.WriteField("category", category); err != nil {
		utils.RespondWithError(w, r, http.StatusInternalServerError, "Failed to forward uploaded file")
		return
	}
	if err := writer.Close(); err != nil {
		utils.RespondWithError(w, r, http.StatusInternalServerError, "Failed to forward uploaded file")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, h.UploadURL, &body)
	if err != nil {
		utils.RespondWithError(w, r, http.StatusInternalServerError, "Failed to forward uploaded file")
		return
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := h.Client.Do(req)
	if err != nil {
		log.Println("Image service error:", err)
		utils.RespondWithError(w, r, http.StatusBadGateway, "Image service unavailable")
		return
	}
	defer resp.Body.Close()

	// Upstream response, success or failure, goes back verbatim.
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Println("Image service response copy error:", err)
	}
}
