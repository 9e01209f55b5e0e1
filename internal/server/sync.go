package server

import (
	"fmt"
	"time"
)

// The authoritative backend publishes full snapshots in the same shape
// the subscription API emits; this is the inbound half of that
// contract.
type stateSync struct {
	Day       int          `json:"day"`
	Phase     string       `json:"phase"`
	TimeLeft  int          `json:"time_left"`
	Winner    string       `json:"winner"`
	HumanID   int          `json:"human_id"`
	SheriffID int          `json:"sheriff_id"`
	Players   []playerSync `json:"players"`
	Logs      []logSync    `json:"logs"`
}

type playerSync struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Alive     bool    `json:"alive"`
	Role      string  `json:"role"`
	IsHuman   bool    `json:"is_human"`
	Suspicion float64 `json:"suspicion"`
}

type logSync struct {
	Day       int       `json:"day"`
	Phase     string    `json:"phase"`
	SpeakerID int       `json:"speaker_id"`
	Content   string    `json:"content"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// ApplyStateSync replaces the live state with a backend-published
// snapshot after checking it against the store invariants: day never
// regresses, the log only grows, the winner is never unset.
func (s *Server) ApplyStateSync(gameID string, sync stateSync) (Game, error) {
	return s.store.Update(gameID, func(game *Game) error {
		if err := validateSync(game, sync); err != nil {
			return err
		}
		game.Day = sync.Day
		game.Phase = Phase(sync.Phase)
		game.TimeLeft = sync.TimeLeft
		game.Winner = Faction(sync.Winner)
		game.HumanID = sync.HumanID
		game.SheriffID = sync.SheriffID
		game.Players = syncPlayers(sync.Players)
		game.Logs = syncLogs(sync.Logs)
		game.windowSeq++
		game.submitted = nil
		game.voteTally = nil
		game.killTally = nil
		return nil
	})
}

func validateSync(game *Game, sync stateSync) error {
	if !Phase(sync.Phase).valid() {
		return fmt.Errorf("%w: unknown phase %q", errMalformedSync, sync.Phase)
	}
	if sync.Day < game.Day {
		return fmt.Errorf("%w: day regressed from %d to %d", errMalformedSync, game.Day, sync.Day)
	}
	if len(sync.Logs) < len(game.Logs) {
		return fmt.Errorf("%w: log shrank from %d to %d entries", errMalformedSync, len(game.Logs), len(sync.Logs))
	}
	if game.Winner != "" && Faction(sync.Winner) != game.Winner {
		return fmt.Errorf("%w: winner already fixed", errMalformedSync)
	}
	switch Faction(sync.Winner) {
	case "", factionWerewolves, factionVillagers:
	default:
		return fmt.Errorf("%w: unknown winner %q", errMalformedSync, sync.Winner)
	}
	if len(sync.Players) == 0 {
		return fmt.Errorf("%w: empty roster", errMalformedSync)
	}
	seen := make(map[int]struct{}, len(sync.Players))
	for _, player := range sync.Players {
		if player.ID <= 0 {
			return fmt.Errorf("%w: invalid player id %d", errMalformedSync, player.ID)
		}
		if _, dup := seen[player.ID]; dup {
			return fmt.Errorf("%w: duplicate player id %d", errMalformedSync, player.ID)
		}
		seen[player.ID] = struct{}{}
	}
	return nil
}

func syncPlayers(players []playerSync) []Player {
	out := make([]Player, 0, len(players))
	for _, player := range players {
		out = append(out, Player{
			ID:        player.ID,
			Name:      player.Name,
			Alive:     player.Alive,
			Role:      Role(player.Role),
			IsHuman:   player.IsHuman,
			Suspicion: player.Suspicion,
		})
	}
	return out
}

func syncLogs(logs []logSync) []LogEntry {
	out := make([]LogEntry, 0, len(logs))
	for _, entry := range logs {
		out = append(out, LogEntry{
			Day:       entry.Day,
			Phase:     Phase(entry.Phase),
			SpeakerID: entry.SpeakerID,
			Content:   entry.Content,
			Type:      LogType(entry.Type),
			CreatedAt: entry.CreatedAt,
		})
	}
	return out
}
