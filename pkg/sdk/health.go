package storefront

import (
	"context"

	healthuc "github.com/modestbazar/storefront/internal/usecase/health"
)

// Health values. Two components are checked: "database" pings the catalog
// storage and "catalog" requires at least one product in memory.
const (
	// HealthOK means storage answers and products are loaded.
	HealthOK = string(healthuc.Healthy)
	// HealthDegraded means one component failed. Usually storage answers but
	// nothing was seeded, so pages render with no products. It also covers a
	// loaded catalog whose storage went away: reads still work but store
	// edits fail.
	HealthDegraded = string(healthuc.Degraded)
	// HealthError means neither storage nor the catalog is available.
	HealthError = string(healthuc.Unhealthy)
)

// HealthStatus is the aggregated result of Client.Health.
type HealthStatus struct {
	Status string            // HealthOK, HealthDegraded or HealthError
	Checks map[string]string // "database" and "catalog" mapped to "ok" or "error"
}

// Serving reports whether shoppers get products back, which holds for a
// degraded client as long as the catalog check passed.
func (h HealthStatus) Serving() bool {
	return h.Checks["catalog"] == string(healthuc.CheckOK)
}

// Health runs the storage and catalog checks.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for name, result := range report.Checks {
		checks[name] = string(result)
	}
	return HealthStatus{Status: string(report.Status), Checks: checks}
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
