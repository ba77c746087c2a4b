package udrf

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var NowFunc = time.Now // mockable

// AcademicYear returns the academic year being evaluated at t.
// From July on it is "Y-(Y+1)"; before July the evaluation still covers "(Y-2)-(Y-1)".
func AcademicYear(t time.Time) string {
	y := t.Year()
	if t.Month() >= time.July {
		return fmt.Sprintf("%d-%d", y, y+1)
	}
	return fmt.Sprintf("%d-%d", y-2, y-1)
}

// CurrentAcademicYear is AcademicYear(NowFunc()).
func CurrentAcademicYear() string {
	return AcademicYear(NowFunc())
}

// ValidAcademicYear reports whether s is "YYYY-YYYY" with consecutive years.
func ValidAcademicYear(s string) bool {
	parts := strings.Split(s, "-")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 4 {
		return false
	}
	from, err := strconv.Atoi(parts[0])
	if err != nil {
		return false
	}
	to, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}
	return from > 0 && to == from+1
}
