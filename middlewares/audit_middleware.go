// middlewares/audit_middleware.go
package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/manjiriciklum/WellnessSage-sub000/audit"
)

// demoUserID is the identity attributed to unauthenticated requests. Demo
// posture only: a deployment handling real patient data must require an
// authenticated actor and fail closed instead.
const demoUserID uint = 1

// AuditMiddleware records every inbound API request to the access log. The
// entry is written once the handler chain finishes, so the auth middleware
// further down the chain has already attributed the caller; it never blocks
// or short-circuits the request, whatever happens to the log write.
func AuditMiddleware(logger *audit.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()

		c.Next()

		userID := demoUserID
		if v, ok := c.Get("userID"); ok {
			if id, ok := v.(uint); ok {
				userID = id
			}
		}

		resourceType, resourceID := resourceFromPath(c.Request.URL.Path)
		logger.LogAccess(audit.AccessEntry{
			RequestID:    requestID,
			UserID:       userID,
			Action:       actionForMethod(c.Request.Method),
			ResourceType: resourceType,
			ResourceID:   resourceID,
			Method:       c.Request.Method,
			Path:         c.Request.URL.Path,
			IP:           c.ClientIP(),
			UserAgent:    c.Request.UserAgent(),
		})
	}
}

func actionForMethod(method string) string {
	switch method {
	case "GET":
		return audit.ActionView
	case "POST":
		return audit.ActionCreate
	case "PUT", "PATCH":
		return audit.ActionUpdate
	case "DELETE":
		return audit.ActionDelete
	default:
		return strings.ToLower(method)
	}
}

// resourceFromPath pulls the resource type and id out of /api/<type>/<id>/...
func resourceFromPath(path string) (string, string) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) == 0 || segments[0] != "api" {
		return "", ""
	}
	resourceType := ""
	resourceID := ""
	if len(segments) > 1 {
		resourceType = segments[1]
	}
	if len(segments) > 2 {
		resourceID = segments[2]
	}
	return resourceType, resourceID
}
