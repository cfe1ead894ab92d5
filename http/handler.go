package http

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/fwojciec/mapsync"
	"github.com/gin-gonic/gin"
)

// DefaultMaxUploadSize caps the size of an uploaded page.
const DefaultMaxUploadSize = 16 << 20

//go:embed index.html
var indexHTML []byte

// allowedExtensions lists the accepted upload file extensions.
var allowedExtensions = map[string]bool{".html": true, ".htm": true}

// TableStatus describes the configured workspace table for GET /status.
type TableStatus struct {
	Backend    string
	DatabaseID string
	Configured bool
}

// Handler serves the upload endpoints.
type Handler struct {
	ImportService mapsync.ImportService
	TableStatus   TableStatus
	Logger        *slog.Logger

	// MaxUploadSize defaults to DefaultMaxUploadSize.
	MaxUploadSize int64
}

// UploadStats is the per-upload summary returned to the browser.
type UploadStats struct {
	Total        int      `json:"total"`
	Created      int      `json:"created"`
	Updated      int      `json:"updated"`
	Failed       int      `json:"failed"`
	Skipped      int      `json:"skipped"`
	Duplicates   int      `json:"duplicates"`
	ErrorDetails []string `json:"error_details"`
}

// UploadResponse is the body of a successful upload.
type UploadResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Stats   UploadStats `json:"stats"`
}

// ErrorResponse is the body of a rejected request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// StatusResponse is the body of GET /status.
type StatusResponse struct {
	Backend          string `json:"backend"`
	TableConfigured  bool   `json:"table_configured"`
	DatabaseIDPrefix string `json:"database_id,omitempty"`
}

func (h *Handler) maxUploadSize() int64 {
	if h.MaxUploadSize > 0 {
		return h.MaxUploadSize
	}
	return DefaultMaxUploadSize
}

func (h *Handler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// Index serves the upload form.
func (h *Handler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

// Status reports whether a workspace table is configured.
func (h *Handler) Status(c *gin.Context) {
	resp := StatusResponse{
		Backend:         h.TableStatus.Backend,
		TableConfigured: h.TableStatus.Configured,
	}
	if id := h.TableStatus.DatabaseID; id != "" {
		resp.DatabaseIDPrefix = truncateID(id)
	}
	c.JSON(http.StatusOK, resp)
}

// Upload imports one saved Maps page sent as the multipart "file" field.
// The optional "default_city" and "default_business_type" fields apply to
// every listing of the page.
func (h *Handler) Upload(c *gin.Context) {
	logger := h.logger().With("request_id", c.GetString(requestIDKey))
	limit := h.maxUploadSize()

	// Leave room for the multipart envelope and the text fields.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+(1<<20))

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fail(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d MiB", limit>>20))
			return
		}
		h.fail(c, http.StatusBadRequest, "no file selected")
		return
	}
	if header.Filename == "" {
		h.fail(c, http.StatusBadRequest, "no file selected")
		return
	}
	if !allowedExtensions[strings.ToLower(filepath.Ext(header.Filename))] {
		h.fail(c, http.StatusBadRequest, "file type not allowed, use .html or .htm")
		return
	}
	if header.Size > limit {
		h.fail(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d MiB", limit>>20))
		return
	}

	f, err := header.Open()
	if err != nil {
		logger.Error("open upload", "error", err)
		h.fail(c, http.StatusInternalServerError, "could not read uploaded file")
		return
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		logger.Error("read upload", "error", err)
		h.fail(c, http.StatusInternalServerError, "could not read uploaded file")
		return
	}
	if len(content) == 0 {
		h.fail(c, http.StatusBadRequest, "file is empty")
		return
	}
	if int64(len(content)) > limit {
		h.fail(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d MiB", limit>>20))
		return
	}

	opts := mapsync.NormalizeOptions{
		CityHint:         strings.TrimSpace(c.PostForm("default_city")),
		CategoryOverride: strings.TrimSpace(c.PostForm("default_business_type")),
	}
	logger.Info("upload received",
		"file", header.Filename,
		"bytes", len(content),
		"default_city", opts.CityHint,
		"default_business_type", opts.CategoryOverride,
	)

	report, err := h.ImportService.Import(c.Request.Context(), string(content), opts)
	if err != nil {
		if mapsync.ErrorCode(err) == mapsync.EINVALID {
			h.fail(c, http.StatusBadRequest, mapsync.ErrorMessage(err))
			return
		}
		logger.Error("import failed", "error", err)
		h.fail(c, http.StatusInternalServerError, "processing failed: "+mapsync.ErrorMessage(err))
		return
	}

	c.JSON(http.StatusOK, UploadResponse{
		Success: true,
		Message: "file processed",
		Stats:   uploadStats(report),
	})
}

func (h *Handler) fail(c *gin.Context, status int, msg string) {
	c.JSON(status, ErrorResponse{Success: false, Error: msg})
}

func uploadStats(report *mapsync.ImportReport) UploadStats {
	summary := report.Summary()
	stats := UploadStats{
		Total:        len(report.Results),
		Created:      summary.Created,
		Updated:      summary.Updated,
		Failed:       summary.Failed,
		Skipped:      report.Skipped,
		Duplicates:   report.Duplicates,
		ErrorDetails: []string{},
	}
	for _, r := range report.Results {
		if r.Status != mapsync.SyncFailed {
			continue
		}
		name := ""
		if r.Prospect != nil {
			name = r.Prospect.Name
		}
		stats.ErrorDetails = append(stats.ErrorDetails, fmt.Sprintf("%s: %s", name, r.Reason))
	}
	return stats
}

// truncateID shortens an identifier for display.
func truncateID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "..."
}
