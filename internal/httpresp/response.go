package httpresp

import "github.com/gin-gonic/gin"

// Envelope shapes shared by every JSON endpoint.

func Data(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"status": "success",
		"data":   data,
	})
}

func List[T any](c *gin.Context, data []T) {
	c.JSON(200, gin.H{
		"status":  "success",
		"results": len(data),
		"data":    data,
	})
}

func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"status":  "success",
		"message": message,
	})
}

func NoContent(c *gin.Context) {
	c.JSON(204, gin.H{
		"status": "success",
		"data":   nil,
	})
}
