package countdown

import (
	"errors"
	"fmt"
	"time"
)

// KST is Korea Standard Time. Korea does not observe daylight saving time, so
// a fixed zone avoids depending on the tz database being installed.
var KST = time.FixedZone("KST", 9*60*60)

// Exams start with the first period at 08:40.
const (
	examHour   = 8
	examMinute = 40
)

const (
	minYear = 1993
	maxYear = 9999
)

var (
	ErrInvalidYear  = errors.New("invalid year")
	ErrInvalidMonth = errors.New("invalid month")
)

type Kind string

const (
	KindCSAT Kind = "csat"
	KindMock Kind = "mock"
)

// ValidateYear reports whether year can hold a CSAT. The first exam was sat in 1993.
func ValidateYear(year int) error {
	if year < minYear || year > maxYear {
		return fmt.Errorf("%w: %d is outside %d-%d", ErrInvalidYear, year, minYear, maxYear)
	}
	return nil
}

// CSATDate returns the start of the CSAT in the given calendar year, which is
// the third Thursday of November.
func CSATDate(year int) time.Time {
	return nthWeekday(year, time.November, time.Thursday, 3)
}

// MockExamDate returns the default date of the mock exam held in month. The
// education office announces the real date every year; until then the first
// Thursday of the month is assumed.
func MockExamDate(year int, month time.Month) time.Time {
	return nthWeekday(year, month, time.Thursday, 1)
}

// AcademicYear returns the admission year named by a CSAT sat in examYear.
// The exam in November 2025 is the "2026학년도" exam.
func AcademicYear(examYear int) int {
	return examYear + 1
}

func nthWeekday(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, KST).Weekday()
	day := 1 + (int(weekday)-int(first)+7)%7 + (n-1)*7
	return time.Date(year, month, day, examHour, examMinute, 0, 0, KST)
}
