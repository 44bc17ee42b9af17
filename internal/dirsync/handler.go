package dirsync

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Boateng555/assettrack-harren/internal"
	"github.com/Boateng555/assettrack-harren/internal/directory"
	"github.com/Boateng555/assettrack-harren/internal/transport"
	"github.com/Boateng555/assettrack-harren/pkg/logger"
)

type ServiceAPI interface {
	FullSync(ctx context.Context) (*Report, error)
	SyncEmployees(ctx context.Context) (*Report, error)
	SyncDevices(ctx context.Context) (*Report, error)
	SyncAssignments(ctx context.Context) (*Report, error)
	CleanupOrphans(ctx context.Context) (*Report, error)
	Summary(ctx context.Context) (*Summary, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) FullSync(w http.ResponseWriter, r *http.Request) {
	h.runSync(w, r, h.Service.FullSync)
}

func (h *Handler) SyncEmployees(w http.ResponseWriter, r *http.Request) {
	h.runSync(w, r, h.Service.SyncEmployees)
}

func (h *Handler) SyncDevices(w http.ResponseWriter, r *http.Request) {
	h.runSync(w, r, h.Service.SyncDevices)
}

func (h *Handler) SyncAssignments(w http.ResponseWriter, r *http.Request) {
	h.runSync(w, r, h.Service.SyncAssignments)
}

func (h *Handler) CleanupOrphans(w http.ResponseWriter, r *http.Request) {
	h.runSync(w, r, h.Service.CleanupOrphans)
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Summary(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, summary)
}

// runSync executes one reconciliation pass synchronously. Aborted runs
// still return their partial report so the caller sees how far the run
// got before failing.
func (h *Handler) runSync(w http.ResponseWriter, r *http.Request, pass func(ctx context.Context) (*Report, error)) {
	report, err := pass(r.Context())
	if err != nil {
		if report == nil {
			h.HandleServiceError(w, err)
			return
		}

		status := http.StatusInternalServerError
		code := internal.ErrCodeDirectoryFetch
		switch {
		case directory.IsAuthError(err):
			status = http.StatusBadGateway
			code = internal.ErrCodeDirectoryAuth
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			status = http.StatusServiceUnavailable
		}

		h.Logger.Error("sync run aborted", "error", err)
		h.WriteJSON(w, status, map[string]interface{}{
			"report": report,
			"error":  map[string]string{"code": string(code), "message": err.Error()},
		})
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"report": report})
}
