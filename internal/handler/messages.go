package handler

// User-facing replies. Errors never carry internal detail.
const (
	msgGreeting     = "Привіт %s! 👋\nЯ — CareTrack. Допоможу пам'ятати про ліки.\nОбери дію нижче 👇"
	msgDefaultName  = "друже"
	msgMainMenu     = "Головне меню"
	msgGenericError = "❌ Щось пішло не так. Спробуй пізніше."

	msgMedicineList      = "💊 Твої ліки:\n- %s"
	msgMedicineListEmpty = "Список пустий 🕊️"
	msgMedicineListError = "❌ Помилка при отриманні списку ліків. Спробуй пізніше."
	msgAddPrompt         = "Напиши назву ліків, які хочеш додати:"
	msgRemovePrompt      = "Напиши назву ліків, які хочеш видалити:"
	msgMedicineAdded     = "✅ %s додано до списку."
	msgMedicineExists    = "Ці ліки вже є у списку."
	msgMedicineRemoved   = "❌ %s видалено зі списку."
	msgMedicineNotFound  = "Такого ліку у списку немає."
	msgMedicineNameEmpty = "Назва ліків не може бути порожньою."
	msgMedicineError     = "❌ Помилка при обробці запиту. Спробуй пізніше."

	msgConfirmed        = "✅ Прийом зафіксовано. Молодець! ✨"
	msgAlreadyConfirmed = "Ти вже відмітив сьогодні 🌿"
	msgConfirmError     = "❌ Помилка при відмітці прийому. Спробуй пізніше."
	msgProgress         = "📊 Твій прогрес:\n- Серія днів поспіль: %d\n- Всього днів: %d"
	msgProgressEmpty    = "Поки що немає відміток. Натисни \"✅ Відмітити прийом\""
	msgProgressError    = "❌ Помилка при отриманні прогресу. Спробуй пізніше."

	msgRemindersOn  = "⏰ Нагадування приходять за розкладом «%s» (%s), якщо прийом ще не відмічено."
	msgRemindersOff = "⏰ Нагадування поки не налаштовані."
	msgReminder     = "⏰ Не забудь прийняти ліки та відмітити прийом!"
	msgSettings     = "⚙️ Тут будуть налаштування."
)
