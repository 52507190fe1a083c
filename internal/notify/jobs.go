package notify

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"accountanta/finassist/internal/analytics"
	"accountanta/finassist/internal/dateutils"
	"accountanta/finassist/internal/logging"
	"accountanta/finassist/internal/models"
	"accountanta/finassist/internal/records"
	"accountanta/finassist/internal/store"
)

const (
	// budgetAlertWindow keeps the 80% and 100% alerts close to the moment
	// the threshold is crossed; beyond it the user has already been told.
	budgetAlertWindow = 5.0

	budgetAlertDedup   = 24 * time.Hour
	reminderInactivity = 2
	reminderGapDays    = 3
)

// Jobs bundles the notification jobs over their shared collaborators. Run
// them periodically; each job is idempotent within its deduplication window.
type Jobs struct {
	store    *store.Store
	engine   *analytics.Engine
	provider records.Provider
	sender   Sender
	log      logging.Logger
	clock    func() time.Time
}

// NewJobs builds the job set.
func NewJobs(st *store.Store, engine *analytics.Engine, provider records.Provider, sender Sender, logger logging.Logger) *Jobs {
	return &Jobs{
		store:    st,
		engine:   engine,
		provider: provider,
		sender:   sender,
		log:      logger,
		clock:    time.Now,
	}
}

// SetClock overrides the time source. For tests.
func (j *Jobs) SetClock(clock func() time.Time) {
	j.clock = clock
}

// RunAll executes every job for every user with notifications enabled.
// Per-user failures are logged and do not stop the sweep.
func (j *Jobs) RunAll(ctx context.Context) error {
	userIDs, err := j.store.UsersWithNotificationsEnabled(ctx)
	if err != nil {
		return err
	}

	for _, userID := range userIDs {
		for name, job := range map[string]func(context.Context, string) error{
			"daily_summary":     j.DailySummary,
			"budget_alerts":     j.BudgetAlerts,
			"spending_reminder": j.SpendingReminder,
		} {
			if err := job(ctx, userID); err != nil {
				j.log.WithError(err).WithFields(
					logging.Field{Key: logging.FieldUserID, Value: userID},
					logging.Field{Key: logging.FieldNotification, Value: name},
				).Error("Notification job failed")
			}
		}
	}
	return nil
}

// DailySummary sends one spending recap per day at the user's preferred hour
// in their timezone. Days with no spending are skipped.
func (j *Jobs) DailySummary(ctx context.Context, userID string) error {
	prefs, err := j.store.GetOrCreatePreferences(ctx, userID)
	if err != nil {
		return err
	}
	if !prefs.DailySummaryEnabled {
		return nil
	}

	local := j.clock().In(userLocation(prefs.Timezone))
	if local.Hour() != preferredHour(prefs.NotificationTime) {
		return nil
	}

	sent, err := j.store.RecentNotificationExists(ctx, userID, models.NotificationDailySummary,
		dateutils.StartOfDay(local.UTC()))
	if err != nil {
		return err
	}
	if sent {
		return nil
	}

	summary := j.engine.SpendingSummary(ctx, userID, "today", "")
	if summary.TotalSpending == 0 {
		return nil
	}

	body := fmt.Sprintf("You spent $%.2f today across %d transactions.",
		summary.TotalSpending, summary.TransactionCount)
	if len(summary.TopCategories) > 0 {
		top := summary.TopCategories[0]
		body += fmt.Sprintf(" Top category: %s ($%.2f).", top.Category, top.Spent)
	}

	return j.deliver(ctx, prefs, models.NotificationDailySummary, "Daily Spending Summary 📊", body)
}

// BudgetAlerts notifies on budget threshold crossings: a warning near 80%, an
// over-budget alert near 100%, and an unconditional alert at 110% and beyond.
// Each category deduplicates independently within 24 hours.
func (j *Jobs) BudgetAlerts(ctx context.Context, userID string) error {
	prefs, err := j.store.GetOrCreatePreferences(ctx, userID)
	if err != nil {
		return err
	}
	if !prefs.BudgetAlertsEnabled {
		return nil
	}

	status := j.engine.BudgetStatus(ctx, userID)
	since := j.clock().UTC().Add(-budgetAlertDedup)

	for _, entry := range status.ByCategory {
		title, body, ok := budgetAlertMessage(entry)
		if !ok {
			continue
		}

		alerted, err := j.store.RecentNotificationMatches(ctx, userID,
			models.NotificationBudgetAlert, entry.Category, since)
		if err != nil {
			return err
		}
		if alerted {
			continue
		}

		if err := j.deliver(ctx, prefs, models.NotificationBudgetAlert, title, body); err != nil {
			return err
		}
	}
	return nil
}

// SpendingReminder nudges users who have not recorded a transaction for two
// days, at most once every three days.
func (j *Jobs) SpendingReminder(ctx context.Context, userID string) error {
	prefs, err := j.store.GetOrCreatePreferences(ctx, userID)
	if err != nil {
		return err
	}
	if !prefs.SpendingRemindersEnabled {
		return nil
	}

	now := j.clock().UTC()
	start := now.AddDate(0, 0, -reminderInactivity)
	recent := j.provider.GetTransactions(ctx, userID, records.TransactionFilter{
		StartDate: &start,
		EndDate:   &now,
		Limit:     1,
	})
	if len(recent) > 0 {
		return nil
	}

	last, exists, err := j.store.LastNotificationAt(ctx, userID, models.NotificationSpendingReminder)
	if err != nil {
		return err
	}
	if exists && now.Sub(last) < time.Duration(reminderGapDays)*24*time.Hour {
		return nil
	}

	body := "You haven't recorded any transactions in the last 2 days. " +
		"Keeping your records current makes your insights more accurate! 📝"
	return j.deliver(ctx, prefs, models.NotificationSpendingReminder, "Spending Reminder", body)
}

// deliver logs the attempt, sends, and marks the outcome.
func (j *Jobs) deliver(ctx context.Context, prefs models.UserPreferences, notificationType, title, body string) error {
	method := "log"
	if prefs.FCMToken != "" {
		method = "push"
	}

	rec := &models.NotificationRecord{
		UserID:         prefs.UserID,
		Type:           notificationType,
		DeliveryMethod: method,
		Content:        title + ": " + body,
	}
	if err := j.store.RecordNotification(ctx, rec); err != nil {
		return err
	}

	if err := j.sender.Send(ctx, prefs.UserID, prefs.FCMToken, title, body); err != nil {
		if markErr := j.store.MarkNotificationFailed(ctx, rec.ID, err.Error()); markErr != nil {
			j.log.WithError(markErr).Error("Failed to update notification log")
		}
		return err
	}
	return j.store.MarkNotificationDelivered(ctx, rec.ID)
}

// budgetAlertMessage decides whether a budget entry warrants an alert and
// renders it. Reports false when the entry is comfortably inside a band.
func budgetAlertMessage(entry analytics.BudgetStatusEntry) (title, body string, ok bool) {
	pct := entry.Percentage
	switch {
	case pct >= 110:
		return "Budget Alert ⚠️",
			fmt.Sprintf("You're significantly over your %s budget: $%.2f spent of $%.2f (%.2f%%).",
				entry.Category, entry.Spent, entry.Limit, pct),
			true
	case pct >= 100 && pct < 100+budgetAlertWindow:
		return "Budget Alert ⚠️",
			fmt.Sprintf("You've exceeded your %s budget: $%.2f spent of $%.2f.",
				entry.Category, entry.Spent, entry.Limit),
			true
	case pct >= 80 && pct < 80+budgetAlertWindow:
		return "Budget Warning 💰",
			fmt.Sprintf("You've used %.2f%% of your %s budget ($%.2f of $%.2f).",
				pct, entry.Category, entry.Spent, entry.Limit),
			true
	}
	return "", "", false
}

// preferredHour parses the "HH:MM" preference, defaulting to 18.
func preferredHour(notificationTime string) int {
	parts := strings.SplitN(notificationTime, ":", 2)
	if hour, err := strconv.Atoi(parts[0]); err == nil && hour >= 0 && hour <= 23 {
		return hour
	}
	return 18
}

// userLocation loads the preference timezone, falling back to UTC.
func userLocation(name string) *time.Location {
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return time.UTC
}
