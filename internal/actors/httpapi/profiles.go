package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/podiumlink/podiumlink/internal/core/model"
)

// dateOnly is the wire format of date_of_birth fields.
const dateOnly = "2006-01-02"

type signupArtistRequest struct {
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	StageName      string   `json:"stage_name"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email"`
	Password       string   `json:"password"`
	Location       string   `json:"location"`
	DateOfBirth    string   `json:"date_of_birth"`
	Gender         string   `json:"gender"`
	Genres         []string `json:"genres"`
	Languages      []string `json:"languages"`
	PaymentMethods []string `json:"payment_methods"`
	Bio            string   `json:"bio"`
}

func (s *Server) signupArtist(c *gin.Context) {
	var req signupArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	dob, ok := parseDateOfBirth(c, req.DateOfBirth)
	if !ok {
		return
	}
	resp, err := s.args.Profiles.SignupArtist(c.Request.Context(), model.SignupArtistArgs{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		StageName:      req.StageName,
		Phone:          req.Phone,
		Email:          req.Email,
		Password:       req.Password,
		Location:       req.Location,
		DateOfBirth:    dob,
		Gender:         req.Gender,
		Genres:         req.Genres,
		Languages:      req.Languages,
		PaymentMethods: req.PaymentMethods,
		Bio:            req.Bio,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"artist": resp.Artist, "session": resp.Session})
}

type signupProgrammerRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Organization string `json:"organization"`
	About        string `json:"about"`
	Website      string `json:"website"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Password     string `json:"password"`
}

func (s *Server) signupProgrammer(c *gin.Context) {
	var req signupProgrammerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	resp, err := s.args.Profiles.SignupProgrammer(c.Request.Context(), model.SignupProgrammerArgs{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Organization: req.Organization,
		About:        req.About,
		Website:      req.Website,
		Phone:        req.Phone,
		Email:        req.Email,
		Password:     req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"programmer": resp.Programmer, "session": resp.Session})
}

type updateArtistRequest struct {
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	StageName      string   `json:"stage_name"`
	Phone          string   `json:"phone"`
	Location       string   `json:"location"`
	DateOfBirth    string   `json:"date_of_birth"`
	Gender         string   `json:"gender"`
	Genres         []string `json:"genres"`
	Languages      []string `json:"languages"`
	PaymentMethods []string `json:"payment_methods"`
	Bio            string   `json:"bio"`
	EnergyLevel    string   `json:"energy_level"`
	Keywords       []string `json:"keywords"`
	Published      *bool    `json:"published"`
}

func (s *Server) updateArtist(c *gin.Context) {
	var req updateArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	dob, ok := parseDateOfBirth(c, req.DateOfBirth)
	if !ok {
		return
	}
	session := currentSession(c)
	resp, err := s.args.Profiles.UpdateArtist(c.Request.Context(), model.UpdateArtistArgs{
		ID:             c.Param("id"),
		RequesterID:    session.UserID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		StageName:      req.StageName,
		Phone:          req.Phone,
		Location:       req.Location,
		DateOfBirth:    dob,
		Gender:         req.Gender,
		Genres:         req.Genres,
		Languages:      req.Languages,
		PaymentMethods: req.PaymentMethods,
		Bio:            req.Bio,
		EnergyLevel:    req.EnergyLevel,
		Keywords:       req.Keywords,
		Published:      req.Published,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"artist": resp.Artist})
}

// attachArtistMedia streams a multipart upload into blob storage and stores
// the URL on the profile. The media kind comes from the "kind" form field.
func (s *Server) attachArtistMedia(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}
	defer file.Close()

	session := currentSession(c)
	resp, err := s.args.Profiles.AttachArtistMedia(c.Request.Context(), model.AttachArtistMediaArgs{
		ArtistID:    c.Param("id"),
		RequesterID: session.UserID,
		Kind:        c.PostForm("kind"),
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
		Size:        header.Size,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": resp.URL})
}

func parseDateOfBirth(c *gin.Context, raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, true
	}
	dob, err := time.Parse(dateOnly, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date_of_birth must be YYYY-MM-DD", "field": "date_of_birth"})
		return time.Time{}, false
	}
	return dob, true
}
