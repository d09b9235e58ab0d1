package main

import (
	"log"
	"strings"
	"time"

	"travelog/auth"
	"travelog/config"
	"travelog/db"
	"travelog/handlers"
	"travelog/models"
	"travelog/places"
	"travelog/storage"
	"travelog/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

func main() {
	if config.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}
	if config.GOOGLE_API_KEY == "" {
		log.Println("Warning: GOOGLE_API_KEY is not set, external place lookups will fail")
	}
	db.Init()
	models.Init()
	storage.Init()

	service := places.NewService(db.Instance, places.NewClient(config.GOOGLE_API_KEY), storage.GetDefaultStorage())
	handlers.Init(service)

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/photos"})))
	}
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()) // No cache by default

	// Requires a valid bearer token
	authRouter := &auth.Router{Base: router}

	// Places
	router.GET("/places", handlers.PlaceList)
	router.GET("/places/:placeId", handlers.PlaceGet)
	authRouter.POST("/places", handlers.PlaceCreate)
	// Photos
	router.GET("/photos/*path", handlers.PhotoDispatch)
	// Recommendations
	router.GET("/recommendations", handlers.RecommendationList)
	// Auth
	router.POST("/auth/register", handlers.UserRegister)
	router.POST("/auth/login", handlers.UserLogin)
	router.GET("/auth/validate", handlers.TokenValidate)

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
