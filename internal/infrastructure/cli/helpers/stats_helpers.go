package helpers

import (
	"sort"
	"strings"

	"github.com/doeshing/jarvis-go/internal/domain"
)

// CommandStatistic represents usage statistics for a command
type CommandStatistic struct {
	Command string
	Count   int
}

// HistoryStatistics holds counts derived from the history log
type HistoryStatistics struct {
	Successful  int
	CommandFreq map[string]int
	IntentFreq  map[string]int
}

// AnalyzeHistory counts outcomes, intents and normalized commands
func AnalyzeHistory(entries []domain.HistoryEntry) HistoryStatistics {
	stats := HistoryStatistics{
		CommandFreq: make(map[string]int),
		IntentFreq:  make(map[string]int),
	}
	for _, entry := range entries {
		if entry.Success {
			stats.Successful++
		}
		stats.CommandFreq[strings.ToLower(strings.TrimSpace(entry.Command))]++
		intent := string(entry.Intent)
		if intent == "" {
			intent = "unknown"
		}
		stats.IntentFreq[intent]++
	}
	return stats
}

// CalculateTopCommands returns the top N most frequently used commands
// If limit is 0 or negative, returns all commands
func CalculateTopCommands(commandFrequency map[string]int, limit int) []CommandStatistic {
	stats := convertFrequencyMapToStatistics(commandFrequency)
	sortStatisticsByFrequency(stats)

	if shouldLimitResults(limit, len(stats)) {
		return stats[:limit]
	}
	return stats
}

// convertFrequencyMapToStatistics converts a map to a slice of CommandStatistic
func convertFrequencyMapToStatistics(frequency map[string]int) []CommandStatistic {
	stats := make([]CommandStatistic, 0, len(frequency))
	for cmd, count := range frequency {
		stats = append(stats, CommandStatistic{
			Command: cmd,
			Count:   count,
		})
	}
	return stats
}

// sortStatisticsByFrequency sorts statistics by count (descending) then by command name (ascending)
func sortStatisticsByFrequency(stats []CommandStatistic) {
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count == stats[j].Count {
			return stats[i].Command < stats[j].Command
		}
		return stats[i].Count > stats[j].Count
	})
}

// shouldLimitResults checks if we should limit the results based on the limit and actual length
func shouldLimitResults(limit int, actualLength int) bool {
	return limit > 0 && actualLength > limit
}

// CalculateSuccessRate calculates the success rate as a percentage
func CalculateSuccessRate(successfulCount int, totalCount int) float64 {
	if totalCount == 0 {
		return 0.0
	}
	return float64(successfulCount) / float64(totalCount) * 100.0
}
