package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/rgehrsitz/sipcalc/internal/api/models"
)

// maxBodyBytes bounds request bodies; a plan is a few hundred bytes
const maxBodyBytes = 1 << 20

// writeJSON encodes v with go-json rather than gin's default encoder
func writeJSON(c *gin.Context, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "ENCODE_ERROR", err.Error(), nil)
		return
	}
	c.Data(status, "application/json; charset=utf-8", data)
}

func writeError(c *gin.Context, status int, code, message string, details interface{}) {
	data, _ := json.Marshal(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
	c.Data(status, "application/json; charset=utf-8", data)
}

// bindJSON decodes the request body into dst. Fields absent from the body keep
// the values dst already holds.
func bindJSON(c *gin.Context, dst interface{}) error {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}
	if len(body) == 0 {
		return fmt.Errorf("request body is empty")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
