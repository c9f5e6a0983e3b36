// Package httpapi is the HTTP transport of the service. It translates JSON
// requests into use-case calls and core errors into statuses; no business
// rules live here.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/podiumlink/podiumlink/internal/actors/realtime"
	"github.com/podiumlink/podiumlink/internal/core/ports"
	"github.com/podiumlink/podiumlink/internal/core/usecase"
)

// ServerArgs contain the mandatory arguments for the Server.
type ServerArgs struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// Profiles handles signup, profile mutation and media upload.
	Profiles *usecase.ProfileService

	// Search handles artist search and the detail view.
	Search *usecase.SearchService

	// Messaging handles conversations and messages.
	Messaging *usecase.MessagingService

	// Recommendations handles testimonials.
	Recommendations *usecase.RecommendationService

	// Sessions resolves session tokens.
	Sessions ports.IdentityStore

	// Realtime serves the conversation websocket. May be nil.
	Realtime *realtime.Handler
}

// Server is the HTTP server of the service.
type Server struct {
	args ServerArgs
	srv  *http.Server
}

// NewServer wires the routes and returns a server ready to Run.
func NewServer(args ServerArgs) *Server {
	s := &Server{args: args}
	s.srv = &http.Server{
		Addr:              args.Addr,
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.POST("/signup/artist", s.signupArtist)
	api.POST("/signup/programmer", s.signupProgrammer)

	authed := api.Group("", sessionMiddleware(s.args.Sessions, s.args.Profiles))
	authed.GET("/artists", s.searchArtists)
	authed.GET("/artists/:id", s.getArtist)
	authed.PATCH("/artists/:id", s.updateArtist)
	authed.POST("/artists/:id/media", s.attachArtistMedia)
	authed.GET("/artists/:id/recommendations", s.listRecommendations)
	authed.POST("/recommendations", s.submitRecommendation)
	authed.DELETE("/recommendations/:id", s.deleteRecommendation)
	authed.GET("/conversations", s.listConversations)
	authed.GET("/conversations/:id/messages", s.listMessages)
	authed.POST("/conversations/:id/read", s.markConversationRead)
	authed.POST("/messages", s.sendMessage)

	if s.args.Realtime != nil {
		// The websocket handler authenticates on its own because browsers
		// cannot set headers on websocket dials.
		router.GET("/ws/conversations", s.args.Realtime.ServeConversations)
	}

	return router
}

// Run serves until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	log.WithField("addr", s.srv.Addr).Info("http server listening")
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("error serving http: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
