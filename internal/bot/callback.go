package bot

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/avzhuravlev/worktime-bot/internal/domain"
	"github.com/avzhuravlev/worktime-bot/internal/service"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// callbackKind enumerates the structured button payloads. Decoding
// happens here, at the transport boundary, so the state machine only
// ever sees typed events.
type callbackKind int

const (
	cbUnknown callbackKind = iota
	cbIgnore                // header cells, blanks, the month label
	cbToday                 // "next": record for today
	cbChoice                // "choice": profile name / show picked month
	cbOpenMonth             // "current/<year>/<month>": open the day grid
	cbMonthPrev             // "month_prev/<year>/<month>"
	cbMonthNext             // "month_next_date/<year>/<month>"
	cbPickDate              // "date/<DD-MM-YYYY>"
	cbDayDetails            // "work_day_details/<id>"
	cbDelete                // "delete"
	cbChange                // "change"
)

type callbackEvent struct {
	kind     callbackKind
	year     int
	month    int
	date     string
	recordID int64
}

func parseCallback(data string) callbackEvent {
	switch data {
	case "ignore":
		return callbackEvent{kind: cbIgnore}
	case "next":
		return callbackEvent{kind: cbToday}
	case "choice":
		return callbackEvent{kind: cbChoice}
	case "delete":
		return callbackEvent{kind: cbDelete}
	case "change":
		return callbackEvent{kind: cbChange}
	}

	parts := strings.Split(data, "/")
	switch parts[0] {
	case "date":
		if len(parts) == 2 {
			return callbackEvent{kind: cbPickDate, date: parts[1]}
		}
	case "work_day_details":
		if len(parts) == 2 {
			id, err := strconv.ParseInt(parts[1], 10, 64)
			if err == nil {
				return callbackEvent{kind: cbDayDetails, recordID: id}
			}
		}
	case "current", "month_prev", "month_next_date":
		if len(parts) == 3 {
			year, errY := strconv.Atoi(parts[1])
			month, errM := strconv.Atoi(parts[2])
			if errY == nil && errM == nil {
				kind := cbOpenMonth
				if parts[0] == "month_prev" {
					kind = cbMonthPrev
				} else if parts[0] == "month_next_date" {
					kind = cbMonthNext
				}
				return callbackEvent{kind: kind, year: year, month: month}
			}
		}
	}

	return callbackEvent{kind: cbUnknown}
}

// handleCallbackQuery dispatches decoded button events against the
// chat's conversation state.
func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	b.answerCallback(query.ID, "")

	ev := parseCallback(query.Data)
	if ev.kind == cbIgnore {
		return
	}
	if ev.kind == cbUnknown {
		log.Printf("Unknown callback payload: %q", query.Data)
		return
	}

	chatID := query.Message.Chat.ID
	conv := b.sessions.Get(chatID)
	if conv == nil {
		// a button from a finished or swept conversation
		b.sendMessage(chatID, "Диалог устарел. Начните заново: /write_work_time или /show_work_time")
		return
	}

	switch ev.kind {
	case cbChoice:
		b.handleChoice(query, conv)
	case cbToday:
		b.handleToday(query, conv)
	case cbOpenMonth:
		b.handleOpenMonth(query, conv, ev.year, ev.month)
	case cbMonthPrev:
		year, month := prevMonth(ev.year, ev.month)
		b.handleMonthNav(query, conv, year, month)
	case cbMonthNext:
		year, month := nextMonth(ev.year, ev.month)
		b.handleMonthNav(query, conv, year, month)
	case cbPickDate:
		b.handlePickDate(query, conv, ev.date)
	case cbDayDetails:
		b.handleDayDetails(query, conv, ev.recordID)
	case cbDelete:
		b.handleDelete(query, conv)
	case cbChange:
		b.handleChange(query, conv)
	}
}

// handleChoice serves the two meanings of the bare "choice" payload:
// reuse the profile name while registering, or show the month picked
// in the review flow.
func (b *Bot) handleChoice(query *tgbotapi.CallbackQuery, conv *domain.Conversation) {
	chatID := query.Message.Chat.ID

	switch conv.Step {
	case domain.StepAwaitingName:
		firstName := query.From.FirstName
		lastName := query.From.LastName
		if firstName == "" {
			b.sendMessage(chatID, "В профиле нет имени. Отправьте имя и фамилию текстом.")
			return
		}
		b.finishRegistration(chatID, query.From.ID, firstName, lastName)

	case domain.StepChoosingMonth:
		b.showMonthSummary(chatID, query.From.ID, conv)

	default:
		b.sendMessage(chatID, "Эта кнопка уже не активна.")
	}
}

// handleToday starts time entry for the current date
func (b *Bot) handleToday(query *tgbotapi.CallbackQuery, conv *domain.Conversation) {
	chatID := query.Message.Chat.ID

	if conv.Step != domain.StepChoosingDay {
		b.sendMessage(chatID, "Эта кнопка уже не активна.")
		return
	}

	user, err := b.service.GetUser(query.From.ID)
	if err != nil {
		b.reportServiceError(chatID, err)
		return
	}

	today := time.Now().Format(dateLayout)
	recorded, err := b.service.DayRecorded(user.ID, today)
	if err != nil {
		b.reportServiceError(chatID, err)
		return
	}
	if recorded {
		b.sessions.Clear(chatID)
		b.sendMessage(chatID, "Этот день уже записан. Изменить его можно через /show_work_time.")
		return
	}

	// date stays empty: it resolves to "today" when the entry completes
	conv.Step = domain.StepAwaitingStartTime
	b.sessions.Touch(conv)
	b.sendMessage(chatID, msgAskStartTime)
}

// handleOpenMonth switches the entry flow from the shortcut choice to
// the day grid of the shown month.
func (b *Bot) handleOpenMonth(query *tgbotapi.CallbackQuery, conv *domain.Conversation, year, month int) {
	conv.Step = domain.StepChoosingDay
	conv.Year = year
	conv.Month = month
	b.sessions.Touch(conv)

	b.editMessage(query.Message.Chat.ID, query.Message.MessageID,
		"Выберите день:", monthGridKeyboard(year, month))
}

// handleMonthNav regenerates the current calendar view one month away
func (b *Bot) handleMonthNav(query *tgbotapi.CallbackQuery, conv *domain.Conversation, year, month int) {
	chatID := query.Message.Chat.ID

	conv.Year = year
	conv.Month = month
	b.sessions.Touch(conv)

	switch conv.Step {
	case domain.StepChoosingDay:
		b.editMessage(chatID, query.Message.MessageID,
			"Выберите день:", monthGridKeyboard(year, month))
	case domain.StepChoosingMonth:
		b.editMessage(chatID, query.Message.MessageID,
			"Выберите месяц:", monthPickerKeyboard(year, month))
	default:
		b.sendMessage(chatID, "Эта кнопка уже не активна.")
	}
}

// handlePickDate binds a concrete day from the grid to the entry flow.
// A date already on file short-circuits to a terminal reply.
func (b *Bot) handlePickDate(query *tgbotapi.CallbackQuery, conv *domain.Conversation, date string) {
	chatID := query.Message.Chat.ID

	if conv.Step != domain.StepChoosingDay {
		b.sendMessage(chatID, "Эта кнопка уже не активна.")
		return
	}

	user, err := b.service.GetUser(query.From.ID)
	if err != nil {
		b.reportServiceError(chatID, err)
		return
	}

	recorded, err := b.service.DayRecorded(user.ID, date)
	if err != nil {
		b.reportServiceError(chatID, err)
		return
	}
	if recorded {
		b.sessions.Clear(chatID)
		b.sendMessage(chatID, fmt.Sprintf("День %s уже записан. Изменить его можно через /show_work_time.", date))
		return
	}

	conv.Date = date
	conv.Step = domain.StepAwaitingStartTime
	b.sessions.Touch(conv)
	b.sendMessage(chatID, msgAskStartTime)
}

// handleDayDetails shows one record with delete/edit buttons
func (b *Bot) handleDayDetails(query *tgbotapi.CallbackQuery, conv *domain.Conversation, recordID int64) {
	chatID := query.Message.Chat.ID

	day, err := b.service.GetWorkDay(recordID)
	if errors.Is(err, service.ErrRecordNotFound) {
		b.sessions.Clear(chatID)
		b.sendMessage(chatID, "Запись не найдена. Возможно, она уже удалена.")
		return
	}
	if err != nil {
		b.reportServiceError(chatID, err)
		return
	}

	conv.RecordID = day.ID
	conv.Step = domain.StepViewingDay
	b.sessions.Touch(conv)

	text := fmt.Sprintf(
		"Запись за %s\nНачало: %s\nОкончание: %s\nОтработано: %s ч.",
		day.Date, day.StartTime, day.EndTime, day.Total,
	)
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = dayDetailsKeyboard()
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending day details: %v", err)
	}
}

// handleDelete removes the record shown in the day details view
func (b *Bot) handleDelete(query *tgbotapi.CallbackQuery, conv *domain.Conversation) {
	chatID := query.Message.Chat.ID

	if conv.Step != domain.StepViewingDay {
		b.sendMessage(chatID, "Эта кнопка уже не активна.")
		return
	}

	err := b.service.DeleteWorkDay(conv.RecordID)
	b.sessions.Clear(chatID)

	if errors.Is(err, service.ErrRecordNotFound) {
		b.sendMessage(chatID, "Запись не найдена. Возможно, она уже удалена.")
		return
	}
	if err != nil {
		b.reportServiceError(chatID, err)
		return
	}

	b.sendMessage(chatID, "Запись удалена.")
}

// handleChange re-enters the two-step time collection for the record
// shown in the day details view; completion overwrites the record.
func (b *Bot) handleChange(query *tgbotapi.CallbackQuery, conv *domain.Conversation) {
	chatID := query.Message.Chat.ID

	if conv.Step != domain.StepViewingDay {
		b.sendMessage(chatID, "Эта кнопка уже не активна.")
		return
	}

	conv.Action = domain.ActionEdit
	conv.Step = domain.StepAwaitingStartTime
	b.sessions.Touch(conv)
	b.sendMessage(chatID, msgAskStartTime)
}
