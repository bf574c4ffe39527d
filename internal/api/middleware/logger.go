package middleware

import (
	"io"

	"github.com/gin-gonic/gin"
)

// Logger returns gin's request logger writing to out. Health probes are not logged.
func Logger(out io.Writer) gin.HandlerFunc {
	return gin.LoggerWithConfig(gin.LoggerConfig{
		Output:    out,
		SkipPaths: []string{"/health"},
	})
}
