package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"accountanta/finassist/internal/dateutils"
	"accountanta/finassist/internal/logging"
	"accountanta/finassist/internal/store"
)

type createMessageRequest struct {
	Message        string `json:"message" binding:"required"`
	ConversationID string `json:"conversation_id"`
}

// createMessage handles POST /api/v1/chat/messages: one orchestration run per
// request. A missing conversation_id starts a new conversation.
func (s *Server) createMessage(c *gin.Context) {
	userID := currentUserID(c)

	var req createMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	allowed, err := s.withinDailyLimit(c, userID)
	if err != nil {
		s.log.WithError(err).WithField(logging.FieldUserID, userID).Error("Rate limit check failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "daily message limit reached"})
		return
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	result := s.processor.ProcessMessage(c.Request.Context(), userID, req.Message, conversationID)
	c.JSON(http.StatusOK, result)
}

// listConversations handles GET /api/v1/chat/conversations.
func (s *Server) listConversations(c *gin.Context) {
	userID := currentUserID(c)

	summaries, err := s.store.ListConversations(c.Request.Context(), userID)
	if err != nil {
		s.log.WithError(err).WithField(logging.FieldUserID, userID).Error("Failed to list conversations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if summaries == nil {
		summaries = []store.ConversationSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"conversations": summaries})
}

// showConversation handles GET /api/v1/chat/conversations/:id. Conversations
// owned by other users look identical to missing ones.
func (s *Server) showConversation(c *gin.Context) {
	userID := currentUserID(c)
	conversationID := c.Param("id")

	turns, err := s.store.ConversationMessages(c.Request.Context(), userID, conversationID)
	if err != nil {
		s.log.WithError(err).WithField(logging.FieldConversationID, conversationID).Error("Failed to load conversation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if len(turns) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conversation_id": conversationID,
		"messages":        turns,
	})
}

// withinDailyLimit checks the user's daily message allowance.
func (s *Server) withinDailyLimit(c *gin.Context, userID string) (bool, error) {
	prefs, err := s.store.GetOrCreatePreferences(c.Request.Context(), userID)
	if err != nil {
		return false, err
	}
	if prefs.MaxDailyMessages <= 0 {
		return true, nil
	}

	count, err := s.store.CountMessagesSince(c.Request.Context(), userID, dateutils.StartOfDay(time.Now().UTC()))
	if err != nil {
		return false, err
	}
	return count < prefs.MaxDailyMessages, nil
}
