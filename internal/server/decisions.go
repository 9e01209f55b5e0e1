package server

import (
	"fmt"
	"strconv"
	"time"
)

// skillWindows maps each role to the night sub-phase in which its
// skill target is legal. Only the werewolf window feeds a tally today;
// the other windows exist for parity with the full night sequence.
var skillWindows = map[Role]Phase{
	roleWerewolf: phaseNightWolf,
	roleWitch:    phaseNightWitch,
	roleSeer:     phaseNightSeer,
	roleHunter:   phaseNightHunter,
}

// SubmitDecision validates a decision against the current window and
// folds it into the game: at most two log entries (speech and a vote
// acknowledgment) plus the hidden window tallies. The decision itself
// is never stored.
func (s *Server) SubmitDecision(gameID string, playerID int, decision Decision) (Game, error) {
	now := time.Now().UTC()
	snapshot, err := s.store.Update(gameID, func(game *Game) error {
		if decision.empty() {
			return errEmptyDecision
		}
		if game.Winner != "" || game.Phase == phaseGameOver {
			return errGameOver
		}
		player, ok := findPlayer(game, playerID)
		if !ok {
			return errUnknownSubmitter
		}
		if !player.Alive {
			return errDeadSubmitter
		}
		if seq, ok := game.submitted[playerID]; ok && seq == game.windowSeq {
			return errDoubleSubmission
		}
		if err := checkDecisionWindow(game, player, decision); err != nil {
			return err
		}

		if decision.NaturalSpeech != "" {
			appendLogAt(game, decision.NaturalSpeech, logSpeech, player.ID, now)
		}
		if decision.VoteTarget != nil {
			target := *decision.VoteTarget
			if game.voteTally == nil {
				game.voteTally = make(map[int]int)
			}
			game.voteTally[target]++
			appendLogAt(game, fmt.Sprintf("%s voted to eliminate %s.", player.Name, playerName(game, target)), logAction, player.ID, now)
		}
		if decision.SkillTarget != nil && player.Role == roleWerewolf {
			if game.killTally == nil {
				game.killTally = make(map[int]int)
			}
			game.killTally[*decision.SkillTarget]++
		}
		applySuspicion(game, decision.SuspicionScores)

		if game.submitted == nil {
			game.submitted = make(map[int]int)
		}
		game.submitted[playerID] = game.windowSeq
		return nil
	})
	if err != nil {
		decisionsRejectedTotal.WithLabelValues(err.Error()).Inc()
		return Game{}, err
	}
	decisionsSubmittedTotal.Inc()
	return snapshot, nil
}

// checkDecisionWindow enforces phase legality: speech belongs to the
// discussion, votes to the day vote, skill targets to the submitter's
// night window. Targets must reference another living player.
func checkDecisionWindow(game *Game, player *Player, decision Decision) error {
	if decision.NaturalSpeech != "" && game.Phase != phaseDayDiscuss {
		return errWrongPhase
	}
	if decision.VoteTarget != nil {
		if game.Phase != phaseDayVote {
			return errWrongPhase
		}
		if err := checkTarget(game, player.ID, *decision.VoteTarget); err != nil {
			return err
		}
	}
	if decision.SkillTarget != nil {
		window, ok := skillWindows[player.Role]
		if !ok || game.Phase != window {
			return errWrongPhase
		}
		if err := checkTarget(game, player.ID, *decision.SkillTarget); err != nil {
			return err
		}
	}
	return nil
}

func checkTarget(game *Game, submitterID, targetID int) error {
	if targetID == submitterID {
		return errInvalidTarget
	}
	target, ok := findPlayer(game, targetID)
	if !ok || !target.Alive {
		return errInvalidTarget
	}
	return nil
}

func applySuspicion(game *Game, scores map[string]float64) {
	for key, score := range scores {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		player, ok := findPlayer(game, id)
		if !ok {
			continue
		}
		if score < 0 {
			score = 0
		}
		if score > 100 {
			score = 100
		}
		player.Suspicion = score
	}
}
