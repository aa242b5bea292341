// Package timezone pins date arithmetic to Korea Standard Time.
package timezone

import (
	"regexp"
	"time"

	// The API publishes KST dates; embed tzdata so hosts without zoneinfo still resolve Asia/Seoul.
	_ "time/tzdata"
)

// DateLayout is the fixed-width date format used by the subscription API.
const DateLayout = "2006-01-02"

// StampLayout is used in export file names.
const StampLayout = "20060102"

// Location is Asia/Seoul, the zone every date in the API refers to.
var Location *time.Location

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Seoul")
	if err != nil {
		panic(err)
	}
}

// Now returns the current time in Asia/Seoul. A listing closing "today" in Korea
// must still be admitted when the collector runs on a UTC host late in the day.
func Now() time.Time {
	return time.Now().In(Location)
}

// Today formats t as YYYY-MM-DD in Asia/Seoul.
func Today(t time.Time) string {
	return t.In(Location).Format(DateLayout)
}

// Stamp formats t as YYYYMMDD in Asia/Seoul.
func Stamp(t time.Time) string {
	return t.In(Location).Format(StampLayout)
}

// IsDate reports whether s is a fixed-width YYYY-MM-DD date. Such dates order
// correctly under plain string comparison.
func IsDate(s string) bool {
	return datePattern.MatchString(s)
}
