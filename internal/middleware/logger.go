package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorLogger logs slow paths and server errors and recovers from panics.
func ErrorLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("%v", recovered)
				log.Printf("level=error msg=panic method=%s path=%s duration=%s err=%v\n%s",
					c.Request.Method, c.Request.URL.Path, time.Since(start), err, debug.Stack())

				c.JSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INTERNAL_SERVER_ERROR",
						"message": "Internal Server Error",
					},
				})
				c.Abort()
				return
			}

			if c.Writer.Status() >= http.StatusInternalServerError {
				log.Printf("level=error msg=http_error method=%s path=%s status=%d duration=%s errors=%v",
					c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start), c.Errors.Errors())
			}
		}()

		c.Next()
	}
}
