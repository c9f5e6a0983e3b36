package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/podiumlink/podiumlink/internal/core/model"
)

type sendMessageRequest struct {
	CounterpartID string `json:"counterpart_id"`
	Subject       string `json:"subject"`
	Text          string `json:"text"`
}

// sendMessage appends a message to the thread with the counterpart, creating
// the thread on first contact. The counterpart is always of the opposite
// role; its profile is snapshotted into a new conversation.
func (s *Server) sendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	session := currentSession(c)
	counterpart, err := s.resolveCounterpart(c, session, req.CounterpartID)
	if err != nil {
		writeError(c, err)
		return
	}
	resp, err := s.args.Messaging.SendMessage(c.Request.Context(), model.SendMessageArgs{
		Sender:      session,
		Counterpart: counterpart,
		Subject:     req.Subject,
		Text:        req.Text,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"conversation": resp.Conversation,
		"message":      resp.Message,
		"created":      resp.Created,
	})
}

// resolveCounterpart loads the profile on the other side of the thread. An
// artist always messages a programmer and vice versa.
func (s *Server) resolveCounterpart(c *gin.Context, session model.Session, counterpartID string) (model.Participant, error) {
	if counterpartID == "" {
		return model.Participant{}, model.NewValidationError("counterpart_id", "counterpart id is required")
	}
	if session.Role == model.RoleArtist {
		programmer, err := s.args.Profiles.GetProgrammer(c.Request.Context(), counterpartID)
		if err != nil {
			return model.Participant{}, err
		}
		return model.Participant{
			ID:    programmer.ID,
			Name:  programmer.FirstName + " " + programmer.LastName,
			Role:  model.RoleProgrammer,
			Email: programmer.Email,
		}, nil
	}
	artist, err := s.args.Profiles.GetArtist(c.Request.Context(), counterpartID)
	if err != nil {
		return model.Participant{}, err
	}
	return model.Participant{
		ID:         artist.ID,
		Name:       artist.DisplayName(),
		Role:       model.RoleArtist,
		Email:      artist.Email,
		PictureURL: artist.PictureURL,
	}, nil
}

func (s *Server) listConversations(c *gin.Context) {
	session := currentSession(c)
	resp, err := s.args.Messaging.ListConversations(c.Request.Context(), model.ListConversationsArgs{
		UserID: session.UserID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": resp.Conversations})
}

func (s *Server) listMessages(c *gin.Context) {
	session := currentSession(c)
	resp, err := s.args.Messaging.ListMessages(c.Request.Context(), model.ListMessagesArgs{
		ConversationID: c.Param("id"),
		ViewerID:       session.UserID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"conversation": resp.Conversation,
		"messages":     resp.Messages,
	})
}

func (s *Server) markConversationRead(c *gin.Context) {
	session := currentSession(c)
	if err := s.args.Messaging.MarkConversationAsRead(c.Request.Context(), c.Param("id"), session.UserID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
