package handler

import (
	"context"
	"time"

	"caretrack/internal/domain"
	"caretrack/internal/metrics"
	"caretrack/internal/service"
	"caretrack/internal/session"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Options tunes handler behaviour
type Options struct {
	// StoreTimeout bounds each store round trip; zero means no deadline
	StoreTimeout time.Duration
	// ReminderSchedule is shown to users; empty when reminders are off
	ReminderSchedule string
	// Location is the zone reminders and calendar days are computed in
	Location *time.Location
}

// Handler manages all bot interactions
type Handler struct {
	bot             *tele.Bot
	medicineService *service.MedicineService
	progressService *service.ProgressService
	sessions        *session.Store
	metrics         *metrics.Metrics
	logger          *zap.Logger
	opts            Options

	// Menu label -> handler, consulted before pending-state input
	routes map[string]tele.HandlerFunc
}

type route struct {
	btn    tele.Btn
	handle tele.HandlerFunc
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	medicineService *service.MedicineService,
	progressService *service.ProgressService,
	sessions *session.Store,
	m *metrics.Metrics,
	logger *zap.Logger,
	opts Options,
) *Handler {
	if opts.Location == nil {
		opts.Location = time.UTC
	}

	h := &Handler{
		bot:             bot,
		medicineService: medicineService,
		progressService: progressService,
		sessions:        sessions,
		metrics:         m,
		logger:          logger,
		opts:            opts,
		routes:          make(map[string]tele.HandlerFunc),
	}
	for _, r := range h.menuRoutes() {
		h.routes[r.btn.Text] = r.handle
	}
	return h
}

func (h *Handler) menuRoutes() []route {
	return []route{
		{btnMedicines, h.handleMedicines},
		{btnReminders, h.handleReminders},
		{btnConfirm, h.handleConfirm},
		{btnProgress, h.handleProgress},
		{btnSettings, h.handleSettings},
		{btnAdd, h.handleAddPrompt},
		{btnRemove, h.handleRemovePrompt},
		{btnBack, h.handleBack},
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)

	// Reply keyboard labels are matched as exact text before OnText
	for _, r := range h.menuRoutes() {
		btn := r.btn
		h.bot.Handle(&btn, r.handle)
	}

	// Free text: medicine names for pending prompts
	h.bot.Handle(tele.OnText, h.handleText)
}

// OnError is the bot's last-resort error hook
func (h *Handler) OnError(err error, c tele.Context) {
	if c == nil {
		h.logger.Error("Bot error", zap.Error(err))
		return
	}

	var userID int64
	if c.Sender() != nil {
		userID = c.Sender().ID
	}
	h.logger.Error("Failed to handle update",
		zap.Error(err),
		zap.Int64("user_id", userID),
	)
	h.metrics.EventsTotal.WithLabelValues("error").Inc()

	if userID != 0 {
		h.resetState(userID)
	}
	if sendErr := c.Send(msgGenericError); sendErr != nil {
		h.logger.Warn("Failed to send error reply", zap.Error(sendErr), zap.Int64("user_id", userID))
	}
}

// Remind sends the daily reminder to one user
func (h *Handler) Remind(userID int64) error {
	_, err := h.bot.Send(&tele.User{ID: userID}, msgReminder, mainMenuMarkup())
	return err
}

// SweepSessions drops expired prompts and refreshes the pending gauge
func (h *Handler) SweepSessions(ctx context.Context) error {
	if removed := h.sessions.Sweep(); removed > 0 {
		h.logger.Debug("Expired sessions removed", zap.Int("count", removed))
	}
	h.metrics.PendingSessions.Set(float64(h.sessions.Len()))
	return nil
}

func (h *Handler) setState(userID int64, state domain.InteractionState) {
	h.sessions.Set(userID, state)
	h.metrics.PendingSessions.Set(float64(h.sessions.Len()))
}

func (h *Handler) resetState(userID int64) {
	h.sessions.Reset(userID)
	h.metrics.PendingSessions.Set(float64(h.sessions.Len()))
}

func (h *Handler) requestContext() (context.Context, context.CancelFunc) {
	if h.opts.StoreTimeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), h.opts.StoreTimeout)
}

// storeFailed logs a store error with the user and operation it belongs to
func (h *Handler) storeFailed(op string, userID int64, err error) {
	h.logger.Error("Store operation failed",
		zap.String("op", op),
		zap.Int64("user_id", userID),
		zap.Error(err),
	)
	h.metrics.StoreErrorsTotal.WithLabelValues(op).Inc()
}

// Reply keyboard buttons
var (
	btnMedicines = tele.Btn{Text: "💊 Мої ліки"}
	btnReminders = tele.Btn{Text: "⏰ Нагадування"}
	btnConfirm   = tele.Btn{Text: "✅ Відмітити прийом"}
	btnProgress  = tele.Btn{Text: "📅 Прогрес"}
	btnSettings  = tele.Btn{Text: "⚙️ Налаштування"}
	btnAdd       = tele.Btn{Text: "Додати ліки"}
	btnRemove    = tele.Btn{Text: "Видалити ліки"}
	btnBack      = tele.Btn{Text: "⬅️ Назад"}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(btnMedicines, btnReminders),
		menu.Row(btnConfirm, btnProgress),
		menu.Row(btnSettings),
	)
	return menu
}

// medicinesMarkup returns the medicine list keyboard
func medicinesMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(btnAdd, btnRemove),
		menu.Row(btnBack),
	)
	return menu
}
