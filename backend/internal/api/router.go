package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"semnet-explorer/backend/internal/services"
)

// sentenceRequest is the body accepted by the analyze and add endpoints
type sentenceRequest struct {
	Sentence string `json:"sentence" binding:"required"`
}

// NewRouter wires the HTTP API around a sentence service
func NewRouter(svc *services.SentenceService, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(requestID())
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())
	router.Use(cors())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		// Analyze without storing
		api.POST("/analyze", func(c *gin.Context) {
			var req sentenceRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			result, err := svc.Analyze(c.Request.Context(), req.Sentence)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			c.JSON(http.StatusOK, result)
		})

		// Analyze and add to the network
		api.POST("/sentences", func(c *gin.Context) {
			var req sentenceRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			saved, err := svc.AddSentence(c.Request.Context(), req.Sentence)
			if err != nil {
				if services.IsUserError(err) {
					c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				if !errors.Is(err, services.ErrSaveFailed) {
					log.Error("Unexpected error adding sentence", zap.Error(err))
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": services.ErrSaveFailed.Error()})
				return
			}

			c.JSON(http.StatusCreated, saved)
		})

		// Recent sentences, newest first
		api.GET("/sentences", func(c *gin.Context) {
			limit, _ := strconv.Atoi(c.Query("limit"))
			c.JSON(http.StatusOK, gin.H{"sentences": svc.Recent(c.Request.Context(), limit)})
		})

		// Force-graph data
		api.GET("/network/similarity", func(c *gin.Context) {
			c.JSON(http.StatusOK, svc.SimilarityNetwork(c.Request.Context()))
		})

		api.GET("/network/grammar", func(c *gin.Context) {
			c.JSON(http.StatusOK, svc.GrammarNetwork(c.Request.Context()))
		})
	}

	return router
}
