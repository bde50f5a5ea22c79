// Package schedule converts room start times between India Standard Time
// wall-clock input and epoch seconds.
package schedule

import (
	"time"

	"github.com/imtaco/interview-lobby/rooms"
)

const (
	dateLayout    = "2006-01-02"
	timeLayout    = "15:04"
	displayLayout = "02 Jan 2006, 03:04 PM"

	offsetMinutes = 330
)

var ist = time.FixedZone("IST", offsetMinutes*60)

// Pair is a date ("YYYY-MM-DD") and time ("HH:MM") in IST.
type Pair struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// Empty reports whether no schedule was requested.
func (p Pair) Empty() bool {
	return p.Date == "" && p.Time == ""
}

// Complete reports whether both fields are present.
func (p Pair) Complete() bool {
	return p.Date != "" && p.Time != ""
}

// ToEpochSeconds converts an IST date and time to epoch seconds. ok is false
// with a nil error when either field is empty.
func ToEpochSeconds(date, clock string) (int64, bool, error) {
	if date == "" || clock == "" {
		return 0, false, nil
	}

	t, err := time.ParseInLocation(dateLayout+" "+timeLayout, date+" "+clock, ist)
	if err != nil {
		// browsers may submit seconds
		t, err = time.ParseInLocation(dateLayout+" "+timeLayout+":05", date+" "+clock, ist)
	}
	if err != nil {
		return 0, false, InvalidDateTime()
	}
	return t.Unix(), true, nil
}

// ToDisplayPair renders epoch seconds as the IST pair used to prefill forms.
func ToDisplayPair(seconds int64) Pair {
	t := time.Unix(seconds, 0).UTC().Add(offsetMinutes * time.Minute)
	return Pair{
		Date: t.Format(dateLayout),
		Time: t.Format(timeLayout),
	}
}

// FormatIST renders epoch seconds for messages, e.g. "10 Mar 2025, 09:00 AM IST".
func FormatIST(seconds int64) string {
	return time.Unix(seconds, 0).In(ist).Format(displayLayout) + " IST"
}

func InvalidDateTime() *rooms.FlowError {
	return rooms.NewFlowError(rooms.ErrValidation, "Invalid Date/Time", "Please enter a valid date and time.")
}
