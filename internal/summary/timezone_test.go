package summary_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/candidates/internal/summary"
)

func TestResolveLocation(testInstance *testing.T) {
	testCases := []struct {
		name         string
		timezoneName string
		expectedName string
	}{
		{name: "iana_zone", timezoneName: "America/Sao_Paulo", expectedName: "America/Sao_Paulo"},
		{name: "trimmed_zone", timezoneName: "  UTC  ", expectedName: "UTC"},
		{name: "empty_means_local", timezoneName: "", expectedName: time.Local.String()},
		{name: "local_keyword", timezoneName: "Local", expectedName: time.Local.String()},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			location, resolveError := summary.ResolveLocation(testCase.timezoneName)
			require.NoError(testInstance, resolveError)
			require.Equal(testInstance, testCase.expectedName, location.String())
		})
	}
}

func TestResolveLocationRejectsUnknownZone(testInstance *testing.T) {
	_, resolveError := summary.ResolveLocation("Mars/Olympus_Mons")
	require.Error(testInstance, resolveError)
	require.Contains(testInstance, resolveError.Error(), "unknown timezone \"Mars/Olympus_Mons\"")
}

func TestSaoPauloTimestamp(testInstance *testing.T) {
	location, resolveError := summary.ResolveLocation("America/Sao_Paulo")
	require.NoError(testInstance, resolveError)

	instant := time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)
	require.Equal(testInstance, "2026-10-15 09:00:00", instant.In(location).Format("2006-01-02 15:04:05"))
}
