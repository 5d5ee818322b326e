package bot

import "testing"

func TestParseCallback(t *testing.T) {
	cases := []struct {
		data string
		want callbackEvent
	}{
		{"ignore", callbackEvent{kind: cbIgnore}},
		{"next", callbackEvent{kind: cbToday}},
		{"choice", callbackEvent{kind: cbChoice}},
		{"delete", callbackEvent{kind: cbDelete}},
		{"change", callbackEvent{kind: cbChange}},
		{"date/05-08-2025", callbackEvent{kind: cbPickDate, date: "05-08-2025"}},
		{"work_day_details/17", callbackEvent{kind: cbDayDetails, recordID: 17}},
		{"current/2025/8", callbackEvent{kind: cbOpenMonth, year: 2025, month: 8}},
		{"month_prev/2025/1", callbackEvent{kind: cbMonthPrev, year: 2025, month: 1}},
		{"month_next_date/2025/12", callbackEvent{kind: cbMonthNext, year: 2025, month: 12}},
	}
	for _, c := range cases {
		if got := parseCallback(c.data); got != c.want {
			t.Errorf("parseCallback(%q) = %+v, want %+v", c.data, got, c.want)
		}
	}
}

func TestParseCallbackRejectsMalformedPayloads(t *testing.T) {
	for _, data := range []string{
		"",
		"bogus",
		"date",
		"date/x/y",
		"work_day_details/abc",
		"current/2025",
		"month_prev/year/8",
	} {
		if got := parseCallback(data); got.kind != cbUnknown {
			t.Errorf("parseCallback(%q).kind = %v, want cbUnknown", data, got.kind)
		}
	}
}
