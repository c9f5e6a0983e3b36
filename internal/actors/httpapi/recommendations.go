package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/podiumlink/podiumlink/internal/core/model"
)

type submitRecommendationRequest struct {
	ArtistID string `json:"artist_id"`
	Text     string `json:"text"`
}

// submitRecommendation stores a testimonial. Only programmers write them;
// the author's profile and the artist's name are snapshotted into the
// recommendation.
func (s *Server) submitRecommendation(c *gin.Context) {
	var req submitRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	session := currentSession(c)
	if session.Role != model.RoleProgrammer {
		writeError(c, model.ErrUnauthorized)
		return
	}
	programmer, err := s.args.Profiles.GetProgrammer(c.Request.Context(), session.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	artist, err := s.args.Profiles.GetArtist(c.Request.Context(), req.ArtistID)
	if err != nil {
		writeError(c, err)
		return
	}
	resp, err := s.args.Recommendations.SubmitRecommendation(c.Request.Context(), model.SubmitRecommendationArgs{
		ArtistID:    artist.ID,
		ArtistName:  artist.DisplayName(),
		ArtistEmail: artist.Email,
		Programmer:  *programmer,
		Text:        req.Text,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recommendation": resp.Recommendation})
}

func (s *Server) listRecommendations(c *gin.Context) {
	resp, err := s.args.Recommendations.ListRecommendations(c.Request.Context(), model.ListRecommendationsArgs{
		ArtistID: c.Param("id"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": resp.Recommendations})
}

func (s *Server) deleteRecommendation(c *gin.Context) {
	session := currentSession(c)
	err := s.args.Recommendations.DeleteRecommendation(c.Request.Context(), model.DeleteRecommendationArgs{
		ID:          c.Param("id"),
		RequesterID: session.UserID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
