package middleware

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/klasstra/klasstra-api/internal/models"
)

const auditedIDsKey = "auditedEntityIDs"

// AuditRecorder persists audit entries. Implementations must not fail the request.
type AuditRecorder interface {
	Record(ctx context.Context, entry models.AuditLog)
}

// MarkAudited names the entities a handler touched. Without it, Audit falls
// back to the :id route parameter.
func MarkAudited(c *gin.Context, ids ...int64) {
	existing, _ := c.Get(auditedIDsKey)
	prev, _ := existing.([]int64)
	c.Set(auditedIDsKey, append(prev, ids...))
}

// Audit records one entry per touched entity after a successful request.
func Audit(recorder AuditRecorder, entityType, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if recorder == nil || c.IsAborted() || c.Writer.Status() >= 400 {
			return
		}

		var performedBy *int64
		if claims := Claims(c); claims != nil {
			id := claims.UserID
			performedBy = &id
		}

		for _, id := range auditedIDs(c) {
			recorder.Record(c.Request.Context(), models.AuditLog{
				EntityType:  entityType,
				EntityID:    id,
				Action:      action,
				PerformedBy: performedBy,
			})
		}
	}
}

func auditedIDs(c *gin.Context) []int64 {
	if value, ok := c.Get(auditedIDsKey); ok {
		if ids, ok := value.([]int64); ok {
			return ids
		}
	}
	if id, err := strconv.ParseInt(c.Param("id"), 10, 64); err == nil {
		return []int64{id}
	}
	return nil
}
