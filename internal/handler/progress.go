package handler

import (
	"fmt"

	"caretrack/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// handleConfirm records today's intake
func (h *Handler) handleConfirm(c tele.Context) error {
	userID := c.Sender().ID
	h.metrics.EventsTotal.WithLabelValues("confirm").Inc()

	ctx, cancel := h.requestContext()
	defer cancel()

	result, err := h.progressService.ConfirmToday(ctx, userID)
	if err != nil {
		h.storeFailed("confirm_today", userID, err)
		return c.Send(msgConfirmError)
	}

	h.metrics.ConfirmationsTotal.WithLabelValues(string(result)).Inc()

	if result == domain.AlreadyConfirmed {
		return c.Send(msgAlreadyConfirmed)
	}
	return c.Send(msgConfirmed)
}

// handleProgress reports the current streak and total confirmed days
func (h *Handler) handleProgress(c tele.Context) error {
	userID := c.Sender().ID
	h.metrics.EventsTotal.WithLabelValues("progress").Inc()

	ctx, cancel := h.requestContext()
	defer cancel()

	progress, err := h.progressService.Progress(ctx, userID)
	if err != nil {
		h.storeFailed("progress", userID, err)
		return c.Send(msgProgressError)
	}

	if progress.Total == 0 {
		return c.Send(msgProgressEmpty)
	}
	return c.Send(fmt.Sprintf(msgProgress, progress.Streak, progress.Total))
}
