package gate

import (
	"errors"
	"testing"
	"time"

	"saas-admin-backend/internal/database/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWindowStore struct {
	windows []models.MaintenanceWindow
	err     error
	calls   int
}

func (s *stubWindowStore) GetEffectiveWindows(now time.Time) ([]models.MaintenanceWindow, error) {
	s.calls++
	return s.windows, s.err
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func windowAround(now time.Time) models.MaintenanceWindow {
	return models.MaintenanceWindow{
		BaseModel:   models.BaseModel{ID: uuid.New()},
		StartTime:   now.Add(-time.Hour),
		EndTime:     now.Add(time.Hour),
		MessageTR:   "Sistem bakımda",
		MessageEN:   "System under maintenance",
		IsActive:    true,
		ScheduledBy: uuid.New(),
	}
}

func TestIsEffective(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		window *models.MaintenanceWindow
		want   bool
	}{
		{
			name:   "nil window",
			window: nil,
			want:   false,
		},
		{
			name: "inside window",
			window: &models.MaintenanceWindow{
				StartTime: now.Add(-time.Hour),
				EndTime:   now.Add(time.Hour),
				IsActive:  true,
			},
			want: true,
		},
		{
			name: "exactly at start",
			window: &models.MaintenanceWindow{
				StartTime: now,
				EndTime:   now.Add(time.Hour),
				IsActive:  true,
			},
			want: true,
		},
		{
			name: "exactly at end",
			window: &models.MaintenanceWindow{
				StartTime: now.Add(-time.Hour),
				EndTime:   now,
				IsActive:  true,
			},
			want: true,
		},
		{
			name: "before start",
			window: &models.MaintenanceWindow{
				StartTime: now.Add(time.Minute),
				EndTime:   now.Add(time.Hour),
				IsActive:  true,
			},
			want: false,
		},
		{
			name: "after end",
			window: &models.MaintenanceWindow{
				StartTime: now.Add(-2 * time.Hour),
				EndTime:   now.Add(-time.Minute),
				IsActive:  true,
			},
			want: false,
		},
		{
			name: "canceled window never gates",
			window: &models.MaintenanceWindow{
				StartTime: now.Add(-time.Hour),
				EndTime:   now.Add(time.Hour),
				IsActive:  false,
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEffective(tt.window, now))
		})
	}
}

func TestIsEffective_Idempotent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	w := windowAround(now)

	first := IsEffective(&w, now)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, IsEffective(&w, now))
	}
}

func TestResolveEffective_PicksEarliestStart(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	later := windowAround(now)
	later.StartTime = now.Add(-30 * time.Minute)

	earlier := windowAround(now)
	earlier.StartTime = now.Add(-90 * time.Minute)

	winner, count := ResolveEffective([]models.MaintenanceWindow{later, earlier}, now)
	require.NotNil(t, winner)
	assert.Equal(t, 2, count)
	assert.Equal(t, earlier.ID, winner.ID)
}

func TestResolveEffective_FiltersIneffective(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	canceled := windowAround(now)
	canceled.IsActive = false

	upcoming := windowAround(now)
	upcoming.StartTime = now.Add(time.Hour)
	upcoming.EndTime = now.Add(2 * time.Hour)

	current := windowAround(now)

	winner, count := ResolveEffective([]models.MaintenanceWindow{canceled, upcoming, current}, now)
	require.NotNil(t, winner)
	assert.Equal(t, 1, count)
	assert.Equal(t, current.ID, winner.ID)
}

func TestResolveEffective_NoneEffective(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	winner, count := ResolveEffective(nil, now)
	assert.Nil(t, winner)
	assert.Zero(t, count)
}

func TestActiveWindow_FailsOpenOnStoreError(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &stubWindowStore{err: errors.New("connection refused")}
	g := NewWithClock(store, fixedClock(now))

	assert.Nil(t, g.ActiveWindow())
}

func TestEvaluateGlobalAccess_NoWindowAllows(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	g := NewWithClock(&stubWindowStore{}, fixedClock(now))

	result := g.EvaluateGlobalAccess("/dashboard", models.RoleUser)
	assert.Equal(t, DecisionAllow, result.Decision)
	assert.Nil(t, result.Window)
}

func TestEvaluateGlobalAccess_ActiveWindowBlocks(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	w := windowAround(now)
	g := NewWithClock(&stubWindowStore{windows: []models.MaintenanceWindow{w}}, fixedClock(now))

	result := g.EvaluateGlobalAccess("/dashboard", models.RoleUser)
	assert.Equal(t, DecisionBlock, result.Decision)
	assert.Equal(t, MaintenancePath, result.RedirectTo)
	require.NotNil(t, result.Window)
	assert.Equal(t, w.ID, result.Window.ID)
}

func TestEvaluateGlobalAccess_SuperAdminBypasses(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	w := windowAround(now)
	g := NewWithClock(&stubWindowStore{windows: []models.MaintenanceWindow{w}}, fixedClock(now))

	result := g.EvaluateGlobalAccess("/dashboard", models.RoleSuperAdmin)
	assert.Equal(t, DecisionAllow, result.Decision)
	require.NotNil(t, result.Window)
	assert.Equal(t, w.ID, result.Window.ID)
}

func TestEvaluateGlobalAccess_CompanyAdminDoesNotBypass(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	w := windowAround(now)
	g := NewWithClock(&stubWindowStore{windows: []models.MaintenanceWindow{w}}, fixedClock(now))

	result := g.EvaluateGlobalAccess("/dashboard", models.RoleCompanyAdmin)
	assert.Equal(t, DecisionBlock, result.Decision)
}

func TestEvaluateGlobalAccess_MaintenancePageNeverRedirectsToItself(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	w := windowAround(now)
	g := NewWithClock(&stubWindowStore{windows: []models.MaintenanceWindow{w}}, fixedClock(now))

	result := g.EvaluateGlobalAccess(MaintenancePath, models.RoleUser)
	assert.Equal(t, DecisionAllow, result.Decision)
	assert.Empty(t, result.RedirectTo)
	require.NotNil(t, result.Window)
}

func TestEvaluateGlobalAccess_MaintenancePageRedirectsHomeWhenNoWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	g := NewWithClock(&stubWindowStore{}, fixedClock(now))

	result := g.EvaluateGlobalAccess(MaintenancePath, models.RoleUser)
	assert.Equal(t, DecisionRedirectHome, result.Decision)
	assert.Equal(t, HomePath, result.RedirectTo)
}

func TestEvaluateGlobalAccess_StoreErrorFailsOpen(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &stubWindowStore{err: errors.New("timeout")}
	g := NewWithClock(store, fixedClock(now))

	result := g.EvaluateGlobalAccess("/dashboard", models.RoleUser)
	assert.Equal(t, DecisionAllow, result.Decision)
}

func TestEvaluateServiceAccess_InactiveTypeIsUnavailableForEveryRole(t *testing.T) {
	g := NewWithClock(&stubWindowStore{}, time.Now)
	serviceType := &models.ServiceType{Status: models.ServiceStatusInactive}
	instance := &models.ServiceInstance{Status: models.ServiceStatusActive}

	for _, role := range []models.UserRole{models.RoleUser, models.RoleCompanyAdmin, models.RoleSuperAdmin} {
		result := g.EvaluateServiceAccess(instance, serviceType, role)
		assert.Equal(t, DecisionUnavailable, result.Decision, "role %s", role)
	}
}

func TestEvaluateServiceAccess_InactiveTypeWinsOverInstanceMaintenance(t *testing.T) {
	g := NewWithClock(&stubWindowStore{}, time.Now)
	serviceType := &models.ServiceType{Status: models.ServiceStatusInactive}
	instance := &models.ServiceInstance{Status: models.ServiceStatusMaintenance}

	result := g.EvaluateServiceAccess(instance, serviceType, models.RoleUser)
	assert.Equal(t, DecisionUnavailable, result.Decision)
}

func TestEvaluateServiceAccess_InstanceMaintenanceUsesMetadataReason(t *testing.T) {
	g := NewWithClock(&stubWindowStore{}, time.Now)
	serviceType := &models.ServiceType{Status: models.ServiceStatusActive}
	instance := &models.ServiceInstance{
		Status:   models.ServiceStatusMaintenance,
		Metadata: []byte(`{"maintenance_reason": "migrating bot runtime"}`),
	}

	result := g.EvaluateServiceAccess(instance, serviceType, models.RoleUser)
	assert.Equal(t, DecisionMaintenance, result.Decision)
	assert.Equal(t, "migrating bot runtime", result.Reason)
}

func TestEvaluateServiceAccess_InstanceMaintenanceFallbackReason(t *testing.T) {
	g := NewWithClock(&stubWindowStore{}, time.Now)
	serviceType := &models.ServiceType{Status: models.ServiceStatusActive}
	instance := &models.ServiceInstance{Status: models.ServiceStatusMaintenance}

	result := g.EvaluateServiceAccess(instance, serviceType, models.RoleUser)
	assert.Equal(t, DecisionMaintenance, result.Decision)
	assert.Equal(t, GenericInstanceMaintenanceReason, result.Reason)
}

func TestEvaluateServiceAccess_TypeMaintenanceFallbackReason(t *testing.T) {
	g := NewWithClock(&stubWindowStore{}, time.Now)
	serviceType := &models.ServiceType{Status: models.ServiceStatusMaintenance}
	instance := &models.ServiceInstance{Status: models.ServiceStatusActive}

	result := g.EvaluateServiceAccess(instance, serviceType, models.RoleUser)
	assert.Equal(t, DecisionMaintenance, result.Decision)
	assert.Equal(t, GenericTypeMaintenanceReason, result.Reason)
}

func TestEvaluateServiceAccess_SuperAdminBypassesMaintenance(t *testing.T) {
	g := NewWithClock(&stubWindowStore{}, time.Now)
	serviceType := &models.ServiceType{Status: models.ServiceStatusMaintenance}
	instance := &models.ServiceInstance{Status: models.ServiceStatusMaintenance}

	result := g.EvaluateServiceAccess(instance, serviceType, models.RoleSuperAdmin)
	assert.Equal(t, DecisionAllow, result.Decision)
	assert.Empty(t, result.Reason)
}

func TestEvaluateServiceAccess_BothScopesActiveAllows(t *testing.T) {
	g := NewWithClock(&stubWindowStore{}, time.Now)
	serviceType := &models.ServiceType{Status: models.ServiceStatusActive}
	instance := &models.ServiceInstance{Status: models.ServiceStatusActive}

	result := g.EvaluateServiceAccess(instance, serviceType, models.RoleUser)
	assert.Equal(t, DecisionAllow, result.Decision)
}

func TestEvaluateServiceAccess_NilInstanceChecksTypeOnly(t *testing.T) {
	g := NewWithClock(&stubWindowStore{}, time.Now)
	serviceType := &models.ServiceType{Status: models.ServiceStatusMaintenance}

	result := g.EvaluateServiceAccess(nil, serviceType, models.RoleUser)
	assert.Equal(t, DecisionMaintenance, result.Decision)
	assert.Equal(t, GenericTypeMaintenanceReason, result.Reason)
}
