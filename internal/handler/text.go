package handler

import (
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	// Menu labels win over pending input
	if handle, ok := h.routes[text]; ok {
		return handle(c)
	}

	state := h.sessions.Get(userID)
	if !state.IsPending() {
		// Nothing expected from this user, stay silent
		return nil
	}

	// Consume the prompt before touching the store so a failure
	// never leaves the user stuck waiting for input
	h.resetState(userID)
	h.metrics.EventsTotal.WithLabelValues("medicine_name").Inc()

	h.logger.Debug("Medicine name received",
		zap.Int64("user_id", userID),
		zap.String("state", string(state)),
	)

	return h.applyMedicineInput(c, state, text)
}
