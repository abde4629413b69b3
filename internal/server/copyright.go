package server

import (
	"fmt"
	"strconv"
)

// CopyrightYear returns "now" or "start-now" when the project started in an
// earlier year. A zero start means the current year only.
func CopyrightYear(start, now int) string {
	if start <= 0 || start >= now {
		return strconv.Itoa(now)
	}
	return fmt.Sprintf("%d-%d", start, now)
}

// CopyrightText returns the full copyright notice for owner
func CopyrightText(owner string, start, now int) string {
	return fmt.Sprintf("© %s %s. All rights reserved.", CopyrightYear(start, now), owner)
}
