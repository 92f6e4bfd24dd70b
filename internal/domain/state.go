package domain

// InteractionState describes what free-text input is expected next from a user
type InteractionState string

const (
	StateNone           InteractionState = "none"
	StateAwaitingAdd    InteractionState = "awaiting_add"
	StateAwaitingRemove InteractionState = "awaiting_remove"
)

// IsPending reports whether the next free-text message is a medicine name
func (s InteractionState) IsPending() bool {
	return s == StateAwaitingAdd || s == StateAwaitingRemove
}
