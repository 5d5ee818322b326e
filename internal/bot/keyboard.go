package bot

import (
	"fmt"
	"strconv"
	"time"

	"github.com/avzhuravlev/worktime-bot/internal/domain"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var monthNames = [...]string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

var weekdayNames = [...]string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

// prevMonth steps one month back, rolling past January into December
// of the previous year.
func prevMonth(year, month int) (int, int) {
	month--
	if month < 1 {
		month = 12
		year--
	}
	return year, month
}

// nextMonth steps one month forward, rolling past December into
// January of the next year.
func nextMonth(year, month int) (int, int) {
	month++
	if month > 12 {
		month = 1
		year++
	}
	return year, month
}

func monthLabel(year, month int) string {
	return fmt.Sprintf("%s %d", monthNames[month-1], year)
}

func navRow(year, month int) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("«", fmt.Sprintf("month_prev/%d/%d", year, month)),
		tgbotapi.NewInlineKeyboardButtonData(monthLabel(year, month), "ignore"),
		tgbotapi.NewInlineKeyboardButtonData("»", fmt.Sprintf("month_next_date/%d/%d", year, month)),
	)
}

// monthGridKeyboard builds the day-picker grid of a month: a weekday
// header, week rows with blank placeholders outside the month, and a
// navigation row carrying the year/month for one step away.
func monthGridKeyboard(year, month int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	header := make([]tgbotapi.InlineKeyboardButton, 0, 7)
	for _, wd := range weekdayNames {
		header = append(header, tgbotapi.NewInlineKeyboardButtonData(wd, "ignore"))
	}
	rows = append(rows, header)

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	// Monday-first offset of the 1st within its week
	offset := (int(first.Weekday()) + 6) % 7
	daysInMonth := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()

	blank := tgbotapi.NewInlineKeyboardButtonData(" ", "ignore")

	week := make([]tgbotapi.InlineKeyboardButton, 0, 7)
	for i := 0; i < offset; i++ {
		week = append(week, blank)
	}
	for day := 1; day <= daysInMonth; day++ {
		week = append(week, tgbotapi.NewInlineKeyboardButtonData(
			strconv.Itoa(day),
			fmt.Sprintf("date/%02d-%02d-%d", day, month, year),
		))
		if len(week) == 7 {
			rows = append(rows, week)
			week = make([]tgbotapi.InlineKeyboardButton, 0, 7)
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, blank)
		}
		rows = append(rows, week)
	}

	rows = append(rows, navRow(year, month))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// monthPickerKeyboard is the month-granularity picker of the review
// flow: navigation plus a confirm button for the shown month.
func monthPickerKeyboard(year, month int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		navRow(year, month),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Показать", "choice"),
		),
	)
}

// entryStartKeyboard offers the today shortcut or the calendar browse
func entryStartKeyboard(year, month int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Сегодня", "next"),
			tgbotapi.NewInlineKeyboardButtonData("Выбрать дату", fmt.Sprintf("current/%d/%d", year, month)),
		),
	)
}

// nameKeyboard offers reusing the telegram profile name during registration
func nameKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Взять имя из профиля", "choice"),
		),
	)
}

// summaryKeyboard lists each recorded day of a month as a button
func summaryKeyboard(days []*domain.WorkDay) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(days))
	for _, day := range days {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s — %s ч.", day.Date, day.Total),
				fmt.Sprintf("work_day_details/%d", day.ID),
			),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// dayDetailsKeyboard offers delete or edit for one record
func dayDetailsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Удалить", "delete"),
			tgbotapi.NewInlineKeyboardButtonData("Изменить", "change"),
		),
	)
}
