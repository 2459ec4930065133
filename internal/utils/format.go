package utils

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var (
	addressSplit = regexp.MustCompile(`,|\s+`)
	allDigits    = regexp.MustCompile(`^\d+$`)
)

// FormatAddress turns a street address into a spot title, dropping a leading house number.
func FormatAddress(address string) string {
	if address == "" {
		return "Unknown location"
	}
	var parts []string
	for _, p := range addressSplit.Split(address, -1) {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 1 && allDigits.MatchString(parts[0]) {
		parts = parts[1:]
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// RoundToHour truncates an "HH:MM" (or "HH:MM:SS") time to "HH:00".
func RoundToHour(t string) (string, error) {
	t = strings.TrimSpace(t)
	if t == "" {
		return "", nil
	}
	hh, _, ok := strings.Cut(t, ":")
	if !ok {
		return "", fmt.Errorf("invalid time %q", t)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return "", fmt.Errorf("invalid time %q", t)
	}
	return fmt.Sprintf("%02d:00", h), nil
}

// HourOf returns the hour of an "HH:MM" time.
func HourOf(t string) (int, error) {
	hh, _, _ := strings.Cut(t, ":")
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", t)
	}
	return h, nil
}

// FormatDateTimeForAPI builds "2025-03-23T12:00:00Z" from a date and an "HH:MM" time.
func FormatDateTimeForAPI(date, hhmm string) string {
	return fmt.Sprintf("%sT%s:00Z", date, hhmm)
}

// ParseAPIDateTime is the inverse of FormatDateTimeForAPI.
func ParseAPIDateTime(date, hhmm string) (time.Time, error) {
	return time.Parse(time.RFC3339, FormatDateTimeForAPI(date, hhmm))
}

// IsReservationCompleted reports whether date+time lies before now.
func IsReservationCompleted(date, hhmm string, now time.Time) bool {
	end, err := time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+hhmm, now.Location())
	if err != nil {
		return false
	}
	return now.After(end)
}

// DisplayNameFromEmail capitalizes the local part of an email.
func DisplayNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return "User"
	}
	r := []rune(local)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

const earthRadiusMiles = 3958.8

// HaversineMiles is the great-circle distance between two coordinates.
func HaversineMiles(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMiles * math.Asin(math.Sqrt(a))
}

func FormatDistance(miles float64) string {
	return fmt.Sprintf("%.1f miles away", miles)
}
