package handler

import (
	"fmt"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID
	h.metrics.EventsTotal.WithLabelValues("start").Inc()

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	h.resetState(userID)

	// Ensure user exists in database
	ctx, cancel := h.requestContext()
	defer cancel()
	if err := h.medicineService.EnsureUser(ctx, userID); err != nil {
		h.storeFailed("ensure_user", userID, err)
		return c.Send(msgGenericError)
	}

	name := c.Sender().FirstName
	if name == "" {
		name = msgDefaultName
	}

	return c.Send(fmt.Sprintf(msgGreeting, name), mainMenuMarkup())
}

// handleBack returns to the main menu and drops any pending prompt
func (h *Handler) handleBack(c tele.Context) error {
	h.metrics.EventsTotal.WithLabelValues("back").Inc()
	h.resetState(c.Sender().ID)
	return c.Send(msgMainMenu, mainMenuMarkup())
}

// handleReminders describes the reminder schedule
func (h *Handler) handleReminders(c tele.Context) error {
	h.metrics.EventsTotal.WithLabelValues("reminders").Inc()
	if h.opts.ReminderSchedule == "" {
		return c.Send(msgRemindersOff)
	}
	return c.Send(fmt.Sprintf(msgRemindersOn, h.opts.ReminderSchedule, h.opts.Location))
}

func (h *Handler) handleSettings(c tele.Context) error {
	h.metrics.EventsTotal.WithLabelValues("settings").Inc()
	return c.Send(msgSettings)
}
