package auth

import (
	"net/http"

	"travelog/db"
	"travelog/models"

	"github.com/gin-gonic/gin"
)

// HandlerFunc runs with an authenticated user already loaded
type HandlerFunc func(c *gin.Context, user *models.User)

// Router is a wrapper that adds bearer-token checks + User pre-loading
type Router struct {
	Base *gin.Engine
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc) {
	tokenString, ok := BearerToken(c.GetHeader("Authorization"))
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
		return
	}
	email, err := VerifyToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
		return
	}
	user := models.User{}
	if db.Instance.First(&user, "email = ?", email).Error != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
		return
	}
	handler(c, &user)
}

func (cr *Router) POST(path string, handler HandlerFunc) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}

func (cr *Router) GET(path string, handler HandlerFunc) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}

func (cr *Router) PUT(path string, handler HandlerFunc) {
	cr.Base.PUT(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}
