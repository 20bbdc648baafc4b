package normalize

import (
	"math"

	"gopkg.in/guregu/null.v3"

	"github.com/gyeh/attstats/internal/model"
)

const hoursPerDay = 24

// Age returns the whole-year age at attendance: floor(days between / 365).
// Leap years and month lengths are ignored. Invalid if either date is missing.
func Age(attended, birth null.Time) null.Int {
	if !attended.Valid || !birth.Valid {
		return null.Int{}
	}
	days := math.Floor(attended.Time.Sub(birth.Time).Hours() / hoursPerDay)
	return null.IntFrom(int64(math.Floor(days / 365)))
}

// AgeBracket classifies an age; boundaries are inclusive-low.
func AgeBracket(age null.Int) null.String {
	if !age.Valid {
		return null.String{}
	}
	switch a := age.Int64; {
	case a < 12:
		return null.StringFrom(model.AgeChild)
	case a < 18:
		return null.StringFrom(model.AgeTeen)
	case a < 60:
		return null.StringFrom(model.AgeAdult)
	default:
		return null.StringFrom(model.AgeElderly)
	}
}
