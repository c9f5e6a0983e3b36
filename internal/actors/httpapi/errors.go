package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/podiumlink/podiumlink/internal/core/model"
)

// writeError maps core errors onto HTTP statuses. Unknown errors become an
// opaque 500 so repository details never leak to clients.
func writeError(c *gin.Context, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Reason, "field": verr.Field})
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, model.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, model.ErrAccountPending):
		c.JSON(http.StatusForbidden, gin.H{"error": "account awaiting approval"})
	default:
		log.WithError(err).Error("internal error serving request")
		// store errors mentioning an index usually mean a composite index is
		// missing for the query; surface that as an operator hint
		if strings.Contains(err.Error(), "index") {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "hint": "the query may require a composite index"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
