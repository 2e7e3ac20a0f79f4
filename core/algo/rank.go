// Package algo provides pure ranking helpers shared by the CLI and the MCP
// server.
package algo

import (
	"sort"

	"github.com/goatarena/goatrank/schema"
)

// RankScores sorts final scores in descending order and returns the top
// 'limit' entries. Equal scores are broken by entity name so the order is
// stable across runs. If limit is greater than the number of scores, all
// scores are returned in sorted order.
func RankScores(scores []schema.FinalScore, limit int) []schema.FinalScore {
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].EntityName < scores[j].EntityName
	})
	if len(scores) > limit {
		return scores[:limit]
	}
	return scores
}

// RankEntries sorts snapshot entries by their frozen rank ascending and
// returns the top 'limit' entries.
func RankEntries(entries []schema.SnapshotEntry, limit int) []schema.SnapshotEntry {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Rank < entries[j].Rank
	})
	if len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
