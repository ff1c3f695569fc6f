package gate

import (
	"sort"
	"time"

	"saas-admin-backend/internal/database/models"
	"saas-admin-backend/internal/logger"
)

// Decision is the outcome of a gate evaluation
type Decision string

const (
	// DecisionAllow lets the request through
	DecisionAllow Decision = "allow"
	// DecisionBlock redirects the caller to the maintenance page
	DecisionBlock Decision = "block"
	// DecisionRedirectHome sends a caller parked on the maintenance page back home
	DecisionRedirectHome Decision = "redirect_home"
	// DecisionMaintenance marks a service instance as under maintenance
	DecisionMaintenance Decision = "maintenance"
	// DecisionUnavailable marks a service type as killed by the operator.
	// Unlike maintenance it is never bypassed, not even by super-admins.
	DecisionUnavailable Decision = "unavailable"
)

// Well-known routes the gate redirects to
const (
	MaintenancePath = "/maintenance"
	HomePath        = "/"
)

// GenericTypeMaintenanceReason is shown when only the type-level flag is set
// and the instance carries no reason of its own.
const GenericTypeMaintenanceReason = "service type is in maintenance for all users"

// GenericInstanceMaintenanceReason is shown when the instance is flagged but
// its metadata carries no reason.
const GenericInstanceMaintenanceReason = "service is temporarily under maintenance"

// WindowStore is the slice of the maintenance window store the gate reads.
// Implementations should already apply the effective-window predicate; the
// gate re-applies it defensively and resolves ties.
type WindowStore interface {
	GetEffectiveWindows(now time.Time) ([]models.MaintenanceWindow, error)
}

// GlobalResult is the outcome of a global route evaluation
type GlobalResult struct {
	Decision   Decision                  `json:"decision"`
	RedirectTo string                    `json:"redirect_to,omitempty"`
	Window     *models.MaintenanceWindow `json:"window,omitempty"`
}

// ServiceResult is the outcome of a per-service evaluation
type ServiceResult struct {
	Decision Decision `json:"decision"`
	Reason   string   `json:"reason,omitempty"`
}

// Gate decides whether the system, or a specific service instance, is under
// an active maintenance window and what the caller should do about it. Each
// evaluation is stateless and idempotent; all three call sites (route guard,
// maintenance page, per-service check) go through the same predicate.
type Gate struct {
	store WindowStore
	log   *logger.Logger
	clock func() time.Time
}

// New creates a gate backed by the given window store
func New(store WindowStore) *Gate {
	return NewWithClock(store, time.Now)
}

// NewWithClock creates a gate with an injectable clock for tests
func NewWithClock(store WindowStore, clock func() time.Time) *Gate {
	return &Gate{
		store: store,
		log:   logger.New(),
		clock: clock,
	}
}

// IsEffective reports whether the window is currently in effect: not
// canceled and containing the instant. This is the single predicate shared
// by every call site.
func IsEffective(w *models.MaintenanceWindow, now time.Time) bool {
	if w == nil || !w.IsActive {
		return false
	}
	return !now.Before(w.StartTime) && !now.After(w.EndTime)
}

// ResolveEffective filters the candidate windows down to the ones effective
// at now and picks the deterministic winner: earliest start time. Returns
// the winner plus the total effective count so callers can log anomalies.
func ResolveEffective(windows []models.MaintenanceWindow, now time.Time) (*models.MaintenanceWindow, int) {
	effective := make([]models.MaintenanceWindow, 0, len(windows))
	for i := range windows {
		if IsEffective(&windows[i], now) {
			effective = append(effective, windows[i])
		}
	}
	if len(effective) == 0 {
		return nil, 0
	}
	sort.SliceStable(effective, func(i, j int) bool {
		return effective[i].StartTime.Before(effective[j].StartTime)
	})
	return &effective[0], len(effective)
}

// ActiveWindow returns the currently effective maintenance window, or nil.
// Store failures fail open: the error is logged and nil is returned, so a
// backend hiccup never locks users out.
func (g *Gate) ActiveWindow() *models.MaintenanceWindow {
	now := g.clock()
	windows, err := g.store.GetEffectiveWindows(now)
	if err != nil {
		g.log.WithField("error", err.Error()).Error("maintenance window query failed, failing open")
		return nil
	}

	winner, count := ResolveEffective(windows, now)
	if count > 1 {
		g.log.WithFields(map[string]interface{}{
			"effective_count": count,
			"window_id":       winner.ID,
		}).Warn("multiple maintenance windows effective at once, picked earliest start")
	}
	return winner
}

// EvaluateGlobalAccess decides what a request for currentPath should do.
// The maintenance page itself is never blocked (no redirect loop); from
// there the only possible transition is back home once no window is
// effective. Super-admins bypass maintenance so they can manage the system
// while it is down for everyone else.
func (g *Gate) EvaluateGlobalAccess(currentPath string, role models.UserRole) GlobalResult {
	window := g.ActiveWindow()

	if currentPath == MaintenancePath {
		if window == nil {
			return GlobalResult{Decision: DecisionRedirectHome, RedirectTo: HomePath}
		}
		// The page manages its own display.
		return GlobalResult{Decision: DecisionAllow, Window: window}
	}

	if window == nil {
		return GlobalResult{Decision: DecisionAllow}
	}

	if role == models.RoleSuperAdmin {
		return GlobalResult{Decision: DecisionAllow, Window: window}
	}

	g.log.WithFields(map[string]interface{}{
		"path":      currentPath,
		"role":      role,
		"window_id": window.ID,
	}).Debug("blocking route during maintenance window")

	return GlobalResult{
		Decision:   DecisionBlock,
		RedirectTo: MaintenancePath,
		Window:     window,
	}
}

// EvaluateServiceAccess applies the dual-scope precedence rule:
//  1. type inactive -> unavailable, for every role (operator kill-switch)
//  2. type or instance in maintenance -> maintenance, downgraded to allow
//     for super-admins
//  3. otherwise -> allow
func (g *Gate) EvaluateServiceAccess(instance *models.ServiceInstance, serviceType *models.ServiceType, role models.UserRole) ServiceResult {
	if serviceType.Status == models.ServiceStatusInactive {
		return ServiceResult{
			Decision: DecisionUnavailable,
			Reason:   "service unavailable",
		}
	}

	typeMaintenance := serviceType.Status == models.ServiceStatusMaintenance
	instanceMaintenance := instance != nil && instance.Status == models.ServiceStatusMaintenance

	if typeMaintenance || instanceMaintenance {
		if role == models.RoleSuperAdmin {
			return ServiceResult{Decision: DecisionAllow}
		}

		reason := ""
		if instance != nil {
			reason = instance.MaintenanceReason()
		}
		if reason == "" {
			if typeMaintenance {
				reason = GenericTypeMaintenanceReason
			} else {
				reason = GenericInstanceMaintenanceReason
			}
		}
		return ServiceResult{Decision: DecisionMaintenance, Reason: reason}
	}

	return ServiceResult{Decision: DecisionAllow}
}
