package handlers

import (
	"errors"
	"net/http"
	"strings"

	"travelog/places"

	"github.com/gin-gonic/gin"
)

// PhotoDispatch serves both photo routes from one wildcard, since
// "/photos/all/:placeId" and "/photos/:photoId" cannot coexist in the
// routing tree:
//   - GET /photos/{photoId}      -> payload bytes
//   - GET /photos/all/{placeId}  -> list of photo ids
func PhotoDispatch(c *gin.Context) {
	path := strings.Trim(c.Param("path"), "/")
	if rest, found := strings.CutPrefix(path, "all/"); found {
		photoListByPlace(c, rest)
		return
	}
	if path == "" || strings.Contains(path, "/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad photo path"})
		return
	}
	photoGet(c, path)
}

func photoGet(c *gin.Context, photoID string) {
	data, mimeType, err := Places.GetPhotoByID(photoID)
	if err != nil {
		if errors.Is(err, places.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "photo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	c.Data(http.StatusOK, mimeType, data)
}

func photoListByPlace(c *gin.Context, placeID string) {
	ids, err := Places.GetPhotoIDsByPlaceID(placeID)
	if err != nil {
		if errors.Is(err, places.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "place not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ids)
}
