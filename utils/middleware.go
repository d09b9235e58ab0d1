package utils

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	CacheNoCache = 0
	CacheCustom  = -1
)

// CacheRouter sets a default cache-control header for every response.
// Place payloads change on every resolve, so the default is no-cache;
// end-points serving immutable photo binaries can override it.
type CacheRouter struct {
	CacheTime int // seconds; defaults to CacheNoCache = 0
}

func (cr *CacheRouter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cr.CacheTime != CacheCustom {
			if cr.CacheTime == CacheNoCache {
				c.Header("cache-control", "no-cache")
			} else {
				c.Header("cache-control", "private, max-age="+strconv.Itoa(cr.CacheTime))
			}
		}
		c.Next()
	}
}

type failureLogWriter struct {
	gin.ResponseWriter
	gc *gin.Context
}

func (w failureLogWriter) Write(b []byte) (int, error) {
	if status := w.gc.Writer.Status(); status >= 400 {
		log.Printf("Request failed: %s %s -> %d: %s", w.gc.Request.Method, w.gc.Request.URL.Path, status, string(b))
	}
	return w.ResponseWriter.Write(b)
}

// ErrorLogMiddleware logs the body of every 4xx/5xx response. It reads the
// response stream directly, so it must be installed before compression.
func ErrorLogMiddleware(c *gin.Context) {
	c.Writer = &failureLogWriter{gc: c, ResponseWriter: c.Writer}
	c.Next()
}
