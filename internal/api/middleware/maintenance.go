package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"saas-admin-backend/internal/auth"
	"saas-admin-backend/internal/gate"

	"github.com/gin-gonic/gin"
)

// maintenanceExemptPrefix guards the status and countdown endpoints the
// maintenance page itself polls. Blocking those would strand the page with
// no way to learn the window has ended.
const maintenanceExemptPrefix = "/api/v1/maintenance"

// MaintenanceGuard blocks API traffic while a maintenance window is in
// effect. Requests for the maintenance page's own endpoints are mapped to
// the maintenance route so the gate never redirects the page to itself.
// Super-admin bypass and fail-open behavior live in the gate.
func MaintenanceGuard(g *gate.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := auth.GetUserRole(c)

		currentPath := c.Request.URL.Path
		if strings.HasPrefix(currentPath, maintenanceExemptPrefix) {
			currentPath = gate.MaintenancePath
		}

		result := g.EvaluateGlobalAccess(currentPath, role)

		if result.Decision == gate.DecisionBlock {
			retryAfter := int64(60)
			if result.Window != nil {
				if remaining := time.Until(result.Window.EndTime); remaining > time.Second {
					retryAfter = int64(remaining / time.Second)
				}
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error":       "System is under maintenance",
				"redirect_to": result.RedirectTo,
			})
			return
		}

		// DecisionRedirectHome only reaches maintenance page endpoints; the
		// status payload tells the page to navigate home, nothing to block.
		c.Next()
	}
}
