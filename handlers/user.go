package handlers

import (
	"net/http"

	"travelog/auth"
	"travelog/models"

	"github.com/gin-gonic/gin"
)

type UserRegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type UserLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func UserRegister(c *gin.Context) {
	postReq := UserRegisterRequest{}
	if err := c.ShouldBindJSON(&postReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := models.UserCreate(postReq.Name, postReq.Email, postReq.Password); err != nil {
		// Unique email index makes duplicates a client error
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot create user"})
		return
	}
	c.Status(http.StatusCreated)
}

func UserLogin(c *gin.Context) {
	postReq := UserLoginRequest{}
	if err := c.ShouldBindJSON(&postReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, ok := models.UserLogin(postReq.Email, postReq.Password)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "bad credentials"})
		return
	}
	token, err := auth.IssueToken(user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "name": user.Name, "email": user.Email})
}

func TokenValidate(c *gin.Context) {
	tokenString, ok := auth.BearerToken(c.GetHeader("Authorization"))
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}
	if _, err := auth.VerifyToken(tokenString); err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}
	c.Status(http.StatusOK)
}
