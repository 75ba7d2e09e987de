// Package birthday computes upcoming idol birthday occurrences.
package birthday

import (
	"sort"
	"time"

	"github.com/koreality/koreality-go/internal/datastore"
)

// Upcoming annotates an idol with their next birthday occurrence relative to
// a reference date.
type Upcoming struct {
	Idol         datastore.Idol `json:"idol"`
	NextBirthday string         `json:"next_birthday"` // YYYY-MM-DD
	DaysUntil    int            `json:"days_until"`
	IsToday      bool           `json:"is_today"`
}

const dateLayout = "2006-01-02"

// Compute returns, for the given reference date, each idol's next birthday
// occurrence with the day count until it. The birth year is ignored; only the
// month and day recur. Results are ordered with today's birthdays first, then
// ascending by days until, stable by input order. Idols with unparsable
// birthdays are skipped.
func Compute(ref time.Time, idols []datastore.Idol) []Upcoming {
	refDay := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)

	upcoming := make([]Upcoming, 0, len(idols))
	for i := range idols {
		birthday, err := time.Parse(dateLayout, idols[i].Birthday)
		if err != nil {
			continue
		}

		thisYear := occurrenceInYear(refDay.Year(), birthday.Month(), birthday.Day())
		next := thisYear
		if next.Before(refDay) {
			next = occurrenceInYear(refDay.Year()+1, birthday.Month(), birthday.Day())
		}

		daysUntil := int(next.Sub(refDay).Hours() / 24)
		if daysUntil < 0 {
			// cannot occur given the next-year fallback, filtered regardless
			continue
		}

		upcoming = append(upcoming, Upcoming{
			Idol:         idols[i],
			NextBirthday: next.Format(dateLayout),
			DaysUntil:    daysUntil,
			IsToday:      thisYear.Equal(refDay),
		})
	}

	sort.SliceStable(upcoming, func(a, b int) bool {
		if upcoming[a].IsToday != upcoming[b].IsToday {
			return upcoming[a].IsToday
		}
		return upcoming[a].DaysUntil < upcoming[b].DaysUntil
	})

	return upcoming
}

// occurrenceInYear projects a month/day birthday onto a target year.
// A Feb 29 birthday clamps to Feb 28 in non-leap years rather than rolling
// over to Mar 1.
func occurrenceInYear(year int, month time.Month, day int) time.Time {
	if month == time.February && day == 29 && !isLeapYear(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
