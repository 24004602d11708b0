package services

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrExportFromDateInvalid = errors.New("export invalid from date")
	ErrExportToDateInvalid   = errors.New("export invalid to date")
	ErrExportRangeInvalid    = errors.New("export invalid range")
)

// ParseExportRange parses optional from/to days. A nil bound is open.
func ParseExportRange(rawFrom string, rawTo string, location *time.Location) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if strings.TrimSpace(rawFrom) != "" {
		parsed, err := ParseDay(rawFrom, location)
		if err != nil {
			return nil, nil, ErrExportFromDateInvalid
		}
		from = &parsed
	}
	if strings.TrimSpace(rawTo) != "" {
		parsed, err := ParseDay(rawTo, location)
		if err != nil {
			return nil, nil, ErrExportToDateInvalid
		}
		to = &parsed
	}

	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, ErrExportRangeInvalid
	}
	return from, to, nil
}

func dayInRange(day time.Time, from *time.Time, to *time.Time) bool {
	if from != nil && day.Before(*from) {
		return false
	}
	if to != nil && day.After(*to) {
		return false
	}
	return true
}
