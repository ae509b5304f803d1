package render

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Success writes the standard response envelope.
func Success(c *gin.Context, status int, message string, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// Paginated writes a list response with paging metadata.
func Paginated(c *gin.Context, message string, items any, page, perPage int, total int64) {
	lastPage := int64(1)
	if perPage > 0 {
		lastPage = int64(math.Ceil(float64(total) / float64(perPage)))
		if lastPage < 1 {
			lastPage = 1
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    items,
		"meta": gin.H{
			"current_page": page,
			"per_page":     perPage,
			"total":        total,
			"last_page":    lastPage,
		},
	})
}
