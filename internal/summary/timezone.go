package summary

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

const (
	localTimezoneNameConstant   = "local"
	timezoneLoadFailureTemplate = "unknown timezone %q: %w"
)

// ResolveLocation maps a configured time zone name to a location. An empty name or
// "local" selects the machine's local time; anything else is an IANA zone name.
func ResolveLocation(timezoneName string) (*time.Location, error) {
	trimmedName := strings.TrimSpace(timezoneName)
	if len(trimmedName) == 0 || strings.EqualFold(trimmedName, localTimezoneNameConstant) {
		return time.Local, nil
	}

	location, loadError := time.LoadLocation(trimmedName)
	if loadError != nil {
		return nil, fmt.Errorf(timezoneLoadFailureTemplate, trimmedName, loadError)
	}
	return location, nil
}
