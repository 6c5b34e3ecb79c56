package httpapi

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sean-m-sweeney/nhl-edge-report/internal/platform/logging"
	"github.com/sean-m-sweeney/nhl-edge-report/internal/usecase"
)

type Handler struct {
	playerService  *usecase.PlayerService
	goalieService  *usecase.GoalieService
	teamService    *usecase.TeamService
	refreshService *usecase.RefreshService
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	playerService *usecase.PlayerService,
	goalieService *usecase.GoalieService,
	teamService *usecase.TeamService,
	refreshService *usecase.RefreshService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		playerService:  playerService,
		goalieService:  goalieService,
		teamService:    teamService,
		refreshService: refreshService,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// teamScopeRequest carries the listing filters shared by the skater and
// goalie endpoints. At most one field may be set; the services enforce
// mutual exclusivity and membership against the league table.
type teamScopeRequest struct {
	Team       string `validate:"omitempty,alpha,len=3"`
	Division   string `validate:"omitempty,max=20"`
	Conference string `validate:"omitempty,max=20"`
}

func teamScopeFromQuery(r *http.Request) teamScopeRequest {
	q := r.URL.Query()
	return teamScopeRequest{
		Team:       q.Get("team"),
		Division:   q.Get("division"),
		Conference: q.Get("conference"),
	}
}

func formatTimeUTC(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// pctPtr scales a stored 0-1 share to a percentage with one decimal for
// display. Stored nil stays nil.
func pctPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	scaled := math.Round(*v*1000) / 10
	return &scaled
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
