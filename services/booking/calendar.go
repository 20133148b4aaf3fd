package booking

import (
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"eventkompass/models"
)

// display formats a booking date may carry
var dateLayouts = []string{"2006-01-02", "02.01.2006", "2.1.2006", "1/2/2006", "01/02/2006"}

// ParseDisplayDate recognises the date formats bookings are created with.
func ParseDisplayDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ExportCalendar renders bookings as an iCalendar document. Events whose date
// can be parsed become all-day entries; the rest keep the display date in the
// description.
func ExportCalendar(name string, items []models.EventItem, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//EventKompass//Bookings//DE")
	cal.SetXWRCalName(name)

	for _, it := range items {
		ev := cal.AddEvent(it.ID + "@eventkompass.de")
		ev.SetDtStampTime(now)
		ev.SetSummary(it.Title)
		ev.SetLocation(it.Location)
		if it.URL != "" {
			ev.SetURL(it.URL)
		}

		desc := it.Description
		if day, ok := ParseDisplayDate(it.Date); ok {
			ev.SetAllDayStartAt(day)
			ev.SetAllDayEndAt(day.AddDate(0, 0, 1))
		} else if it.Date != "" {
			desc = strings.TrimSpace(it.Date + "\n" + desc)
		}
		ev.SetDescription(desc)
	}
	return cal.Serialize()
}
