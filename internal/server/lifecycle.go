package server

import (
	"log"
	"time"

	"github.com/google/uuid"
)

// ResetGame replaces the live game wholesale with a fresh roster and an
// empty log, stopping any running scheduler first.
func (s *Server) ResetGame(isHuman bool) Game {
	s.StopLoop()
	s.limiter.Reset()
	game := s.newGame(isHuman)
	snapshot := s.store.Replace(game)
	gamesStartedTotal.Inc()
	log.Printf("game reset game_id=%s title=%q human=%t", game.ID, game.Title, isHuman)
	return snapshot
}

func (s *Server) newGame(isHuman bool) *Game {
	now := time.Now().UTC()
	s.rngMu.Lock()
	players, humanID := newRoster(s.rng, isHuman)
	s.rngMu.Unlock()
	game := &Game{
		ID:        uuid.NewString(),
		Title:     "Werewolf Arena " + newRoomCode(),
		Day:       1,
		Phase:     phaseNightWolf,
		TimeLeft:  s.cfg.NightSeconds,
		Players:   players,
		HumanID:   humanID,
		CreatedAt: now,
		windowSeq: 1,
	}
	appendLogAt(game, "A new game begins. Night falls over the village.", logSystem, 0, now)
	return game
}

// AppendLog records one entry stamped with the current day and phase,
// then broadcasts like any other mutation.
func (s *Server) AppendLog(gameID, content string, logType LogType, speakerID int) (Game, error) {
	return s.store.Update(gameID, func(game *Game) error {
		appendLogAt(game, content, logType, speakerID, time.Now().UTC())
		return nil
	})
}

// AdvancePhase applies the transition table out of band, for manual
// control paths; the scheduler normally drives this on expiry.
func (s *Server) AdvancePhase(gameID string) (Game, error) {
	return s.store.Update(gameID, func(game *Game) error {
		if game.Winner != "" {
			return errGameOver
		}
		s.advanceGamePhase(game, time.Now().UTC())
		return nil
	})
}

func (s *Server) ListGames(kind string) []GameSummary {
	return s.store.ListGameSummaries(kind)
}
