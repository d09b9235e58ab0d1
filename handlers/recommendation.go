package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type RecommendationRequest struct {
	Latitude  *float64 `form:"latitude" binding:"required"`
	Longitude *float64 `form:"longitude" binding:"required"`
	Type      string   `form:"type" binding:"required"`
}

func RecommendationList(c *gin.Context) {
	getReq := RecommendationRequest{}
	if err := c.ShouldBindWith(&getReq, binding.Query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := Places.Recommendations(c.Request.Context(), *getReq.Latitude, *getReq.Longitude, getReq.Type)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
