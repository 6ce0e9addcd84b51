package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthdocs-backend/internal/shared/server/middleware"
	"healthdocs-backend/internal/shared/server/respond"
)

// registerMeRoutes attaches the /me endpoint.
func registerMeRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", meHandler)
}

func meHandler(c *gin.Context) {
	patientID := middleware.PatientIDFromContext(c)
	if patientID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}

	response := gin.H{
		"patientId": patientID,
	}
	if name := middleware.PatientNameFromContext(c); name != "" {
		response["name"] = name
	}

	respond.JSON(c, http.StatusOK, response)
}
