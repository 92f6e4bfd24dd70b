package handler

import (
	"fmt"
	"strings"

	"caretrack/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// handleMedicines shows the user's medicine list
func (h *Handler) handleMedicines(c tele.Context) error {
	userID := c.Sender().ID
	h.metrics.EventsTotal.WithLabelValues("list").Inc()

	ctx, cancel := h.requestContext()
	defer cancel()

	medicines, err := h.medicineService.List(ctx, userID)
	if err != nil {
		h.storeFailed("list_medicines", userID, err)
		return c.Send(msgMedicineListError)
	}

	list := msgMedicineListEmpty
	if len(medicines) > 0 {
		list = strings.Join(medicines, "\n- ")
	}

	return c.Send(fmt.Sprintf(msgMedicineList, list), medicinesMarkup())
}

func (h *Handler) handleAddPrompt(c tele.Context) error {
	h.metrics.EventsTotal.WithLabelValues("add_prompt").Inc()
	h.setState(c.Sender().ID, domain.StateAwaitingAdd)
	return c.Send(msgAddPrompt)
}

func (h *Handler) handleRemovePrompt(c tele.Context) error {
	h.metrics.EventsTotal.WithLabelValues("remove_prompt").Inc()
	h.setState(c.Sender().ID, domain.StateAwaitingRemove)
	return c.Send(msgRemovePrompt)
}

// applyMedicineInput adds or removes name according to the pending state
func (h *Handler) applyMedicineInput(c tele.Context, state domain.InteractionState, name string) error {
	userID := c.Sender().ID

	ctx, cancel := h.requestContext()
	defer cancel()

	var (
		result domain.MedicineResult
		err    error
		op     string
	)
	switch state {
	case domain.StateAwaitingAdd:
		op = "add_medicine"
		result, err = h.medicineService.Add(ctx, userID, name)
	case domain.StateAwaitingRemove:
		op = "remove_medicine"
		result, err = h.medicineService.Remove(ctx, userID, name)
	default:
		return nil
	}

	if err != nil {
		h.storeFailed(op, userID, err)
		return c.Send(msgMedicineError)
	}

	h.metrics.MedicineChangesTotal.WithLabelValues(string(result)).Inc()

	switch result {
	case domain.MedicineAdded:
		return c.Send(fmt.Sprintf(msgMedicineAdded, name))
	case domain.MedicineAlreadyExists:
		return c.Send(msgMedicineExists)
	case domain.MedicineRemoved:
		return c.Send(fmt.Sprintf(msgMedicineRemoved, name))
	case domain.MedicineNotFound:
		return c.Send(msgMedicineNotFound)
	default:
		return c.Send(msgMedicineNameEmpty)
	}
}
