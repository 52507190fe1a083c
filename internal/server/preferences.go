package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"accountanta/finassist/internal/logging"
)

type preferencesRequest struct {
	DailySummaryEnabled      *bool   `json:"daily_summary_enabled"`
	BudgetAlertsEnabled      *bool   `json:"budget_alerts_enabled"`
	SpendingRemindersEnabled *bool   `json:"spending_reminders_enabled"`
	NotificationTime         *string `json:"notification_time"`
	Timezone                 *string `json:"timezone"`
	MaxDailyMessages         *int    `json:"max_daily_messages"`
}

// getPreferences handles GET /api/v1/notifications/preferences, creating the
// defaults on first access.
func (s *Server) getPreferences(c *gin.Context) {
	userID := currentUserID(c)

	prefs, err := s.store.GetOrCreatePreferences(c.Request.Context(), userID)
	if err != nil {
		s.log.WithError(err).WithField(logging.FieldUserID, userID).Error("Failed to load preferences")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// updatePreferences handles PUT /api/v1/notifications/preferences. Only the
// fields present in the request change; the rest keep their stored values.
func (s *Server) updatePreferences(c *gin.Context) {
	userID := currentUserID(c)

	var req preferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid preferences payload"})
		return
	}

	prefs, err := s.store.GetOrCreatePreferences(c.Request.Context(), userID)
	if err != nil {
		s.log.WithError(err).WithField(logging.FieldUserID, userID).Error("Failed to load preferences")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if req.DailySummaryEnabled != nil {
		prefs.DailySummaryEnabled = *req.DailySummaryEnabled
	}
	if req.BudgetAlertsEnabled != nil {
		prefs.BudgetAlertsEnabled = *req.BudgetAlertsEnabled
	}
	if req.SpendingRemindersEnabled != nil {
		prefs.SpendingRemindersEnabled = *req.SpendingRemindersEnabled
	}
	if req.NotificationTime != nil {
		prefs.NotificationTime = *req.NotificationTime
	}
	if req.Timezone != nil {
		prefs.Timezone = *req.Timezone
	}
	if req.MaxDailyMessages != nil {
		prefs.MaxDailyMessages = *req.MaxDailyMessages
	}

	if err := s.store.UpdatePreferences(c.Request.Context(), prefs); err != nil {
		s.log.WithError(err).WithField(logging.FieldUserID, userID).Error("Failed to update preferences")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, prefs)
}

type fcmTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// registerFCMToken handles POST /api/v1/webhooks/fcm_token, storing the
// device push token for notification delivery.
func (s *Server) registerFCMToken(c *gin.Context) {
	userID := currentUserID(c)

	var req fcmTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	if err := s.store.SetFCMToken(c.Request.Context(), userID, req.Token); err != nil {
		s.log.WithError(err).WithField(logging.FieldUserID, userID).Error("Failed to store device token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "registered"})
}
