package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rowcast-simple/utils"
)

// currentOwner resolves the authenticated owner from the request context.
// Its absence on a protected route means the auth collaborator
// misconfigured the request, which is a server-side invariant violation
// rather than a client error.
func currentOwner(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": utils.ErrMissingUser.Error(),
		})
		return "", false
	}
	return userID.(string), true
}
