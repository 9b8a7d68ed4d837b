package httpx

import (
	"context"
	"net/http"

	domainauth "github.com/BeauMercier/drasticClientPortal/internal/domain/auth"
	"github.com/BeauMercier/drasticClientPortal/internal/domain/model"
)

// DashboardServiceInterface builds the dashboard summary.
type DashboardServiceInterface interface {
	Summary(ctx context.Context, identity domainauth.Identity) model.DashboardSummary
}

// DashboardHandlers serves the dashboard API.
type DashboardHandlers struct {
	Svc DashboardServiceInterface
}

// Summary returns the signed-in user's dashboard.
// GET /api/dashboard.
func (h *DashboardHandlers) Summary(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, Message: msgUnauthorized})
		return
	}
	WriteJSON(w, http.StatusOK, h.Svc.Summary(r.Context(), sess.Identity()))
}
