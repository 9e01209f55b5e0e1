package server

import "time"

// snapshotPayload flattens a game snapshot into the wire shape pushed
// to every visualization client after each mutation.
func snapshotPayload(game Game) map[string]any {
	return map[string]any{
		"game_id":    game.ID,
		"title":      game.Title,
		"day":        game.Day,
		"phase":      string(game.Phase),
		"time_left":  game.TimeLeft,
		"winner":     string(game.Winner),
		"human_id":   game.HumanID,
		"sheriff_id": game.SheriffID,
		"created_at": game.CreatedAt.Format(time.RFC3339),
		"players":    playersPayload(game),
		"logs":       logsPayload(game.Logs),
	}
}

// playersPayload hides living AI roles from clients. Roles become
// visible on death, for the human's own seat, and for everyone once
// the game is over.
func playersPayload(game Game) []map[string]any {
	players := make([]map[string]any, 0, len(game.Players))
	for _, player := range game.Players {
		entry := map[string]any{
			"id":        player.ID,
			"name":      player.Name,
			"alive":     player.Alive,
			"is_human":  player.IsHuman,
			"suspicion": player.Suspicion,
		}
		if roleVisible(game, player) {
			entry["role"] = string(player.Role)
		}
		players = append(players, entry)
	}
	return players
}

func roleVisible(game Game, player Player) bool {
	return game.Winner != "" || !player.Alive || player.IsHuman
}

func logsPayload(logs []LogEntry) []map[string]any {
	entries := make([]map[string]any, 0, len(logs))
	for _, entry := range logs {
		entries = append(entries, map[string]any{
			"day":        entry.Day,
			"phase":      string(entry.Phase),
			"speaker_id": entry.SpeakerID,
			"content":    entry.Content,
			"type":       string(entry.Type),
			"created_at": entry.CreatedAt.Format(time.RFC3339),
		})
	}
	return entries
}

func summariesPayload(summaries []GameSummary) []map[string]any {
	list := make([]map[string]any, 0, len(summaries))
	for _, summary := range summaries {
		entry := map[string]any{
			"game_id":    summary.ID,
			"title":      summary.Title,
			"status":     summary.Status,
			"day":        summary.Day,
			"players":    summary.Players,
			"winner":     string(summary.Winner),
			"created_at": summary.CreatedAt.Format(time.RFC3339),
		}
		if !summary.EndedAt.IsZero() {
			entry["ended_at"] = summary.EndedAt.Format(time.RFC3339)
		}
		list = append(list, entry)
	}
	return list
}
