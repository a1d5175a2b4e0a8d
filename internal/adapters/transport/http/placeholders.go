package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Resource routes that exist in the API surface but are not implemented yet.
// They answer with the shared envelope so clients can already integrate
// against the shapes.
func registerPlaceholders(router *gin.Engine) {
	for _, resource := range []string{"concepts", "projects", "chat", "code"} {
		group := router.Group("/api/" + resource)
		resource := resource

		group.GET("", func(c *gin.Context) {
			placeholder(c, fmt.Sprintf("List %s endpoint - to be implemented", resource))
		})
		group.GET("/:id", func(c *gin.Context) {
			placeholder(c, fmt.Sprintf("Get %s %s endpoint - to be implemented", resource, c.Param("id")))
		})
		group.POST("", func(c *gin.Context) {
			placeholder(c, fmt.Sprintf("Create %s endpoint - to be implemented", resource))
		})
		group.PUT("/:id", func(c *gin.Context) {
			placeholder(c, fmt.Sprintf("Update %s %s endpoint - to be implemented", resource, c.Param("id")))
		})
		group.DELETE("/:id", func(c *gin.Context) {
			placeholder(c, fmt.Sprintf("Delete %s %s endpoint - to be implemented", resource, c.Param("id")))
		})
	}
}

func placeholder(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"version":   apiVersion,
		"timestamp": time.Now().UTC(),
		"data":      gin.H{"message": message},
	})
}
