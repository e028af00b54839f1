package epg

import (
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"ayna-epg/consts"
)

var location = loadLocation()

func loadLocation() *time.Location {
	loc, err := time.LoadLocation(consts.TIMEZONE)
	if err != nil {
		return time.FixedZone(consts.TIMEZONE, 6*60*60)
	}
	return loc
}

func parseUnix(raw string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
}

// FormatTimestamp renders unix seconds as an XMLTV time in the guide's
// zone. The offset comes from the zone rules, not a literal. Returns ""
// when raw is not an integer.
func FormatTimestamp(raw string) string {
	sec, err := parseUnix(raw)
	if err != nil {
		return ""
	}
	return time.Unix(sec, 0).In(location).Format(consts.TIME_FORMAT)
}

// ValidProgramTimes reports whether both values are integers with
// 0 < start < end.
func ValidProgramTimes(start, end string) bool {
	s, err := parseUnix(start)
	if err != nil {
		return false
	}
	e, err := parseUnix(end)
	if err != nil {
		return false
	}
	return s > 0 && e > s
}
