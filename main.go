package main

import (
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"shortlink/auth"
	"shortlink/database"
	"shortlink/handlers"
	"shortlink/services"
	"shortlink/slug"
	"shortlink/store"
)

type CreateLinkRequest struct {
	URL string `json:"url" binding:"required"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	database.Connect()

	var linkStore store.Store = store.NewGormStore(database.DB)
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		linkStore = store.WithCache(linkStore, store.NewRedisClient(addr))
		log.Println("Redis resolve cache enabled at", addr)
	}

	slugs := slug.NewGenerator(rand.NewSource(time.Now().UnixNano()))
	links := services.NewLinkService(linkStore, slugs)

	router := gin.Default()

	router.POST("/api/register", handlers.Register)
	router.POST("/api/login", handlers.Login)
	router.GET("/:slug", redirectToDestination(links))

	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		api.POST("/links", createShortLink(links))
		api.GET("/links", listLinks(links))
		api.GET("/links/:id/analytics", linkAnalytics(links))
		api.GET("/dashboard", getDashboard(links))
	}

	log.Println("Short link service starting on :8080")
	if err := router.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func createShortLink(links *services.LinkService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, exists := auth.GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		var request CreateLinkRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		link, err := links.Allocate(c.Request.Context(), request.URL, ownerID)
		if err != nil {
			respondError(c, err)
			return
		}

		shortURL := requestScheme(c.Request) + "://" + c.Request.Host + "/" + link.Slug

		c.JSON(http.StatusCreated, gin.H{
			"id":              link.ID,
			"slug":            link.Slug,
			"destination_url": link.DestinationURL,
			"short_url":       shortURL,
			"created_at":      link.CreatedAt,
		})
	}
}

func listLinks(links *services.LinkService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, exists := auth.GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		owned, err := links.ListLinks(c.Request.Context(), ownerID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"links": owned,
			"total": len(owned),
		})
	}
}

func linkAnalytics(links *services.LinkService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, exists := auth.GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		payload, err := links.Analytics(c.Request.Context(), c.Param("id"), ownerID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, payload)
	}
}

func getDashboard(links *services.LinkService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, exists := auth.GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		dash, err := links.Dashboard(c.Request.Context(), ownerID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, dash)
	}
}

func redirectToDestination(links *services.LinkService) gin.HandlerFunc {
	return func(c *gin.Context) {
		destination, err := links.Resolve(
			c.Request.Context(),
			c.Param("slug"),
			c.Request.UserAgent(),
			c.Request.Referer(),
		)
		if err != nil {
			if errors.Is(err, services.ErrSlugNotFound) {
				c.String(http.StatusNotFound, "Link not found")
				return
			}
			log.Printf("Failed to resolve %q: %v", c.Param("slug"), err)
			c.String(http.StatusInternalServerError, "Something went wrong")
			return
		}

		c.Redirect(http.StatusMovedPermanently, destination)
	}
}

// requestScheme reports the scheme the client used, honoring the
// X-Forwarded-Proto header set by TLS-terminating proxies.
func requestScheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

// respondError maps service errors to HTTP responses without leaking
// internal store details to the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidDestination):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid destination URL"})
	case errors.Is(err, services.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to view this link"})
	case errors.Is(err, services.ErrSlugNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
	case errors.Is(err, services.ErrAllocationExhausted):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not allocate a short link, please retry"})
	default:
		log.Printf("Request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
