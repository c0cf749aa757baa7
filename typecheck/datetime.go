package typecheck

import (
	"math"
	"strconv"
	"strings"
	"time"
)

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05-0700",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.RFC822Z,
	time.RFC822,
	time.ANSIC,
	time.UnixDate,
}

// toDateTime accepts time.Time at every level and date strings below the
// strict level. Level 0 also reads numbers as Unix seconds.
func toDateTime(v any, level StrictLevel, _ params) (any, error) {
	switch x := normalize(v).(type) {
	case time.Time:
		return x, nil
	case *time.Time:
		if x != nil {
			return *x, nil
		}
	case string:
		if level >= strict {
			break
		}
		s := strings.TrimSpace(x)
		for _, layout := range dateTimeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		if level > StrictMin {
			break
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.Unix(n, 0).UTC(), nil
		}
	case int64:
		if level == StrictMin {
			return time.Unix(x, 0).UTC(), nil
		}
	case float64:
		if level == StrictMin && !math.IsNaN(x) && !math.IsInf(x, 0) {
			sec := int64(x)
			return time.Unix(sec, int64((x-float64(sec))*1e9)).UTC(), nil
		}
	}
	return nil, conversionError(v, DateTime, level)
}
