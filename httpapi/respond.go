package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondError(c *gin.Context, status int, code string, err error) {
	body := errorBody{Code: code}
	if err != nil {
		body.Message = err.Error()
	}
	c.AbortWithStatusJSON(status, gin.H{"error": body})
}
