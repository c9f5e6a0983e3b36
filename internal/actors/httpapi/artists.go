package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/podiumlink/podiumlink/internal/core/model"
)

func (s *Server) searchArtists(c *gin.Context) {
	session := currentSession(c)
	ageMin, ok := queryInt(c, "age_min")
	if !ok {
		return
	}
	ageMax, ok := queryInt(c, "age_max")
	if !ok {
		return
	}
	resp, err := s.args.Search.SearchArtists(c.Request.Context(), model.SearchArtistsArgs{
		RequesterID:     session.UserID,
		RequesterStatus: session.Status,
		Name:            c.Query("name"),
		Location:        c.Query("location"),
		Gender:          c.Query("gender"),
		Genres:          queryTags(c, "genres"),
		Languages:       queryTags(c, "languages"),
		PaymentMethods:  queryTags(c, "payment_methods"),
		AgeMin:          ageMin,
		AgeMax:          ageMax,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"artists": resp.Artists})
}

func (s *Server) getArtist(c *gin.Context) {
	session := currentSession(c)
	resp, err := s.args.Search.GetArtist(c.Request.Context(), model.GetArtistArgs{
		ID:              c.Param("id"),
		RequesterStatus: session.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"artist": resp.Artist})
}

// queryTags reads a repeatable query parameter, additionally splitting each
// value on commas so ?genres=a,b and ?genres=a&genres=b are equivalent.
func queryTags(c *gin.Context, key string) []string {
	var tags []string
	for _, value := range c.QueryArray(key) {
		for _, tag := range strings.Split(value, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

func queryInt(c *gin.Context, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "must be a non-negative integer", "field": key})
		return 0, false
	}
	return value, true
}
