package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/avzhuravlev/worktime-bot/internal/config"
	"github.com/avzhuravlev/worktime-bot/internal/domain"
	"github.com/avzhuravlev/worktime-bot/internal/service"
	"github.com/avzhuravlev/worktime-bot/internal/session"
	"github.com/avzhuravlev/worktime-bot/internal/worktime"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const dateLayout = "02-01-2006"

const (
	msgAskStartTime = "Отправьте время начала работы в формате ЧЧ:ММ."
	msgAskEndTime   = "Отправьте время окончания работы в формате ЧЧ:ММ."
	msgBadTime      = "Неверный формат. Введите время в формате ЧЧ:ММ."
	msgNeedReg      = "Сначала зарегистрируйтесь командой /reg."
)

// Bot represents the Telegram bot
type Bot struct {
	api      *tgbotapi.BotAPI
	service  *service.TrackerService
	sessions *session.Store
	config   *config.Config
}

// New creates a new Bot instance
func New(token string, service *service.TrackerService, sessions *session.Store, cfg *config.Config) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:      api,
		service:  service,
		sessions: sessions,
		config:   cfg,
	}, nil
}

// Start starts the bot
func (b *Bot) Start() error {
	b.notifyAdmin()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	// One update at a time keeps every conversation's state
	// transitions serialized per chat.
	for update := range updates {
		if update.Message != nil {
			b.handleMessage(update.Message)
		} else if update.CallbackQuery != nil {
			b.handleCallbackQuery(update.CallbackQuery)
		}
	}

	return nil
}

// notifyAdmin sends the invitation deep link to the admin chat on boot
func (b *Bot) notifyAdmin() {
	if b.config.AdminID == 0 {
		return
	}

	link := fmt.Sprintf("https://t.me/%s?start=%s", b.api.Self.UserName, b.config.AccessKey)
	b.sendMessage(b.config.AdminID, "Бот запущен, приглашение работает по ссылке "+link)
}

// handleMessage handles incoming messages
func (b *Bot) handleMessage(message *tgbotapi.Message) {
	if message.IsCommand() {
		b.handleCommand(message)
		return
	}
	b.handleText(message)
}

// handleCommand handles bot commands
func (b *Bot) handleCommand(message *tgbotapi.Message) {
	// a command supersedes whatever dialog was in flight
	b.sessions.Clear(message.Chat.ID)

	switch message.Command() {
	case "start":
		b.handleStart(message)
	case "help":
		b.handleHelp(message)
	case "reg":
		b.handleReg(message)
	case "write_work_time":
		b.handleWriteWorkTime(message)
	case "show_work_time":
		b.handleShowWorkTime(message)
	default:
		b.sendMessage(message.Chat.ID, "Неизвестная команда. Используйте /help.")
	}
}

// handleStart handles the /start command gated by the invitation key
func (b *Bot) handleStart(message *tgbotapi.Message) {
	if message.CommandArguments() != b.config.AccessKey {
		// activation without a valid invitation is silently ignored
		return
	}

	b.sendMessage(message.Chat.ID,
		"Привет! Я бот для записи и подсчета отработанных часов.\n\n"+
			"Зарегистрируйтесь командой /reg, затем записывайте время командой /write_work_time.\n"+
			"Помощь по командам: /help.")
}

// handleHelp shows help information
func (b *Bot) handleHelp(message *tgbotapi.Message) {
	b.sendMessage(message.Chat.ID,
		"Основные команды для работы:\n"+
			"/reg - регистрация пользователя.\n"+
			"/write_work_time - записать отработанное время.\n"+
			"/show_work_time - показать записанное время за месяц.\n"+
			"/help - показать помощь.")
}

// handleReg starts the registration dialog. A registered user gets an
// idempotent reply and no new state.
func (b *Bot) handleReg(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	_, err := b.service.GetUser(message.From.ID)
	if err == nil {
		b.sendMessage(chatID, "Вы уже зарегистрированы.")
		return
	}
	if !errors.Is(err, service.ErrNotRegistered) {
		b.reportServiceError(chatID, err)
		return
	}

	b.sessions.Begin(chatID, domain.StepAwaitingName)

	msg := tgbotapi.NewMessage(chatID, "Отправьте имя и фамилию через пробел или возьмите их из профиля.")
	msg.ReplyMarkup = nameKeyboard()
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending registration prompt: %v", err)
	}
}

// handleWriteWorkTime starts the time entry dialog
func (b *Bot) handleWriteWorkTime(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if _, err := b.service.GetUser(message.From.ID); err != nil {
		if errors.Is(err, service.ErrNotRegistered) {
			b.sendMessage(chatID, msgNeedReg)
		} else {
			b.reportServiceError(chatID, err)
		}
		return
	}

	now := time.Now()
	conv := b.sessions.Begin(chatID, domain.StepChoosingDay)
	conv.Action = domain.ActionNew
	conv.Year = now.Year()
	conv.Month = int(now.Month())

	msg := tgbotapi.NewMessage(chatID, "За какой день записать время?")
	msg.ReplyMarkup = entryStartKeyboard(conv.Year, conv.Month)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending entry prompt: %v", err)
	}
}

// handleShowWorkTime starts the review dialog with a month picker
func (b *Bot) handleShowWorkTime(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if _, err := b.service.GetUser(message.From.ID); err != nil {
		if errors.Is(err, service.ErrNotRegistered) {
			b.sendMessage(chatID, msgNeedReg)
		} else {
			b.reportServiceError(chatID, err)
		}
		return
	}

	now := time.Now()
	conv := b.sessions.Begin(chatID, domain.StepChoosingMonth)
	conv.Year = now.Year()
	conv.Month = int(now.Month())

	msg := tgbotapi.NewMessage(chatID, "Выберите месяц:")
	msg.ReplyMarkup = monthPickerKeyboard(conv.Year, conv.Month)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending month picker: %v", err)
	}
}

// handleText advances the dialog steps that expect free text
func (b *Bot) handleText(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	conv := b.sessions.Get(chatID)
	if conv == nil {
		return
	}

	switch conv.Step {
	case domain.StepAwaitingName:
		b.handleNameInput(message, conv)
	case domain.StepAwaitingStartTime:
		if !worktime.Valid(message.Text) {
			b.sendMessage(chatID, msgBadTime)
			return
		}
		conv.StartTime = message.Text
		conv.Step = domain.StepAwaitingEndTime
		b.sessions.Touch(conv)
		b.sendMessage(chatID, msgAskEndTime)
	case domain.StepAwaitingEndTime:
		if !worktime.Valid(message.Text) {
			b.sendMessage(chatID, msgBadTime)
			return
		}
		b.finishTimeEntry(message, conv, message.Text)
	}
}

// handleNameInput expects two space-separated tokens; anything else
// re-prompts without advancing the dialog.
func (b *Bot) handleNameInput(message *tgbotapi.Message, conv *domain.Conversation) {
	chatID := message.Chat.ID

	tokens := strings.Fields(message.Text)
	if len(tokens) != 2 {
		b.sendMessage(chatID, "Отправьте имя и фамилию через пробел, например: Иван Петров.")
		return
	}

	b.finishRegistration(chatID, message.From.ID, tokens[0], tokens[1])
}

func (b *Bot) finishRegistration(chatID, userUID int64, firstName, lastName string) {
	b.sessions.Clear(chatID)

	user, err := b.service.RegisterUser(userUID, firstName, lastName)
	if errors.Is(err, service.ErrAlreadyRegistered) {
		b.sendMessage(chatID, "Вы уже зарегистрированы.")
		return
	}
	if err != nil {
		b.reportServiceError(chatID, err)
		return
	}

	b.sendMessage(chatID, fmt.Sprintf("Регистрация завершена: %s %s.", user.FirstName, user.LastName))
}

// finishTimeEntry closes the two-step time collection: it computes the
// total, resolves the target date (an explicitly chosen date wins over
// today) and either creates a new record or overwrites the edited one.
// State is cleared whatever the outcome.
func (b *Bot) finishTimeEntry(message *tgbotapi.Message, conv *domain.Conversation, endTime string) {
	chatID := message.Chat.ID
	startTime := conv.StartTime
	b.sessions.Clear(chatID)

	if conv.Action == domain.ActionEdit {
		day, err := b.service.UpdateWorkDay(conv.RecordID, startTime, endTime)
		if errors.Is(err, service.ErrRecordNotFound) {
			b.sendMessage(chatID, "Запись не найдена. Возможно, она уже удалена.")
			return
		}
		if err != nil {
			b.reportServiceError(chatID, err)
			return
		}
		b.sendMessage(chatID, fmt.Sprintf(
			"Запись за %s обновлена.\nНачало: %s\nОкончание: %s\nВсего отработано: %s",
			day.Date, day.StartTime, day.EndTime, day.Total))
		return
	}

	user, err := b.service.GetUser(message.From.ID)
	if err != nil {
		b.reportServiceError(chatID, err)
		return
	}

	date := conv.Date
	if date == "" {
		date = time.Now().Format(dateLayout)
	}

	day, err := b.service.RecordWorkDay(user.ID, date, startTime, endTime)
	if errors.Is(err, service.ErrDayAlreadyRecorded) {
		b.sendMessage(chatID, fmt.Sprintf("День %s уже записан. Изменить его можно через /show_work_time.", date))
		return
	}
	if err != nil {
		b.reportServiceError(chatID, err)
		return
	}

	b.sendMessage(chatID, fmt.Sprintf(
		"Записано за %s.\nВремя начала работы: %s\nВремя окончания работы: %s\nВсего отработано: %s",
		day.Date, day.StartTime, day.EndTime, day.Total))
}

// showMonthSummary aggregates the month picked in the review flow.
// The external norm is part of both the filled and the empty reply;
// a calendar failure fails the whole request.
func (b *Bot) showMonthSummary(chatID, userUID int64, conv *domain.Conversation) {
	user, err := b.service.GetUser(userUID)
	if err != nil {
		b.reportServiceError(chatID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	summary, err := b.service.MonthSummary(ctx, user.ID, conv.Month, conv.Year)
	if err != nil {
		b.sessions.Clear(chatID)
		log.Printf("Error building month summary: %v", err)
		b.sendMessage(chatID, "Не удалось получить производственный календарь. Попробуйте позже.")
		return
	}

	normText := fmt.Sprintf(
		"Норма за %s: %d раб. дней, %d ч.",
		monthLabel(conv.Year, conv.Month), summary.Norm.WorkDays, summary.Norm.WorkingHours,
	)

	if len(summary.Days) == 0 {
		b.sessions.Clear(chatID)
		b.sendMessage(chatID, "За этот месяц записей нет.\n"+normText)
		return
	}

	conv.Step = domain.StepViewingDay
	b.sessions.Touch(conv)

	text := fmt.Sprintf(
		"Записи за %s:\nИтого отработано: %s ч.\n%s\n\nВыберите день для подробностей:",
		monthLabel(conv.Year, conv.Month), summary.Total, normText,
	)
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = summaryKeyboard(summary.Days)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending month summary: %v", err)
	}
}

// sendMessage sends a plain text message
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message to chat %d: %v", chatID, err)
	}
}

// editMessage replaces a previously sent message's text and buttons
// in place, used by the calendar navigation.
func (b *Bot) editMessage(chatID int64, messageID int, text string, markup tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, markup)
	if _, err := b.api.Send(edit); err != nil {
		log.Printf("Error editing message %d in chat %d: %v", messageID, chatID, err)
	}
}

// answerCallback acknowledges a button press
func (b *Bot) answerCallback(callbackID, text string) {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := b.api.Request(callback); err != nil {
		log.Printf("Error answering callback: %v", err)
	}
}

func (b *Bot) reportServiceError(chatID int64, err error) {
	log.Printf("Service error in chat %d: %v", chatID, err)
	b.sendMessage(chatID, "Что-то пошло не так. Попробуйте ещё раз.")
}
