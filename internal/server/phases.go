package server

import (
	"fmt"
	"time"
)

type phaseTransition struct {
	advance func(s *Server, game *Game, now time.Time) Phase
}

// Transition table for the mock arena loop. The witch, seer and hunter
// night sub-phases are reachable only through backend state sync; an
// expired countdown in any phase outside this table returns the game to
// the day announcement.
var phaseTransitions = map[Phase]phaseTransition{
	phaseNightWolf: {
		advance: func(s *Server, game *Game, now time.Time) Phase {
			victim := tallyLeader(game.killTally)
			enterPhase(game, phaseDayAnnounce, s.cfg.AnnounceSeconds)
			if victim == 0 {
				appendLogAt(game, "Dawn breaks. The village wakes unharmed.", logSystem, 0, now)
				return game.Phase
			}
			markDead(game, victim)
			appendLogAt(game, fmt.Sprintf("Dawn breaks. %s was killed in the night.", playerName(game, victim)), logAlert, 0, now)
			resolveWinner(game, now)
			return game.Phase
		},
	},
	phaseDayAnnounce: {
		advance: func(s *Server, game *Game, now time.Time) Phase {
			enterPhase(game, phaseDayDiscuss, s.cfg.DiscussSeconds)
			appendLogAt(game, "Discussion is open. Make your case.", logSystem, 0, now)
			return game.Phase
		},
	},
	phaseDayDiscuss: {
		advance: func(s *Server, game *Game, now time.Time) Phase {
			enterPhase(game, phaseDayVote, s.cfg.VoteSeconds)
			appendLogAt(game, "Discussion is closed. The vote begins now.", logAlert, 0, now)
			return game.Phase
		},
	},
	phaseDayVote: {
		advance: func(s *Server, game *Game, now time.Time) Phase {
			victim := tallyLeader(game.voteTally)
			if victim == 0 {
				victim = s.fallbackVoteVictim(game)
			}
			game.Day++
			enterPhase(game, phaseNightWolf, s.cfg.NightSeconds)
			if victim == 0 {
				appendLogAt(game, "The vote ended with no elimination. Night falls.", logSystem, 0, now)
				return game.Phase
			}
			markDead(game, victim)
			appendLogAt(game, fmt.Sprintf("The village voted out %s. Night falls.", playerName(game, victim)), logAlert, 0, now)
			resolveWinner(game, now)
			return game.Phase
		},
	},
}

func (s *Server) advanceGamePhase(game *Game, now time.Time) Phase {
	from := game.Phase
	transition, ok := phaseTransitions[game.Phase]
	if !ok {
		enterPhase(game, phaseDayAnnounce, s.cfg.AnnounceSeconds)
		appendLogAt(game, "Phase out of sync; returning to the day announcement.", logSystem, 0, now)
	} else {
		transition.advance(s, game, now)
	}
	phasesAdvancedTotal.WithLabelValues(string(from), string(game.Phase)).Inc()
	return game.Phase
}

// enterPhase opens a new decision window: previous tallies and
// submission marks are discarded.
func enterPhase(game *Game, phase Phase, seconds int) {
	game.Phase = phase
	game.TimeLeft = seconds
	game.windowSeq++
	game.submitted = nil
	game.voteTally = nil
	game.killTally = nil
}

func appendLogAt(game *Game, content string, logType LogType, speakerID int, now time.Time) {
	game.Logs = append(game.Logs, LogEntry{
		Day:       game.Day,
		Phase:     game.Phase,
		SpeakerID: speakerID,
		Content:   content,
		Type:      logType,
		CreatedAt: now,
	})
}

func markDead(game *Game, playerID int) {
	if player, ok := findPlayer(game, playerID); ok {
		player.Alive = false
	}
}

// tallyLeader returns the target with a strict plurality, or 0 when
// the tally is empty or tied.
func tallyLeader(tally map[int]int) int {
	leader, best, tied := 0, 0, false
	for target, votes := range tally {
		switch {
		case votes > best:
			leader, best, tied = target, votes, false
		case votes == best:
			tied = true
		}
	}
	if tied || best == 0 {
		return 0
	}
	return leader
}

// fallbackVoteVictim handles windows with no usable ballots: scan the
// living players and probabilistically take the first match, so some
// days end with no elimination at all.
func (s *Server) fallbackVoteVictim(game *Game) int {
	for _, player := range alivePlayers(game) {
		if s.randIntn(3) == 0 {
			return player.ID
		}
	}
	return 0
}

// resolveWinner runs the faction win check after an elimination. The
// winner is fixed at most once; winning moves the game to game-over.
func resolveWinner(game *Game, now time.Time) bool {
	if game.Winner != "" {
		return true
	}
	wolves, others := 0, 0
	for _, player := range game.Players {
		if !player.Alive {
			continue
		}
		if player.Role == roleWerewolf {
			wolves++
		} else {
			others++
		}
	}
	var winner Faction
	switch {
	case wolves == 0:
		winner = factionVillagers
	case wolves >= others:
		winner = factionWerewolves
	default:
		return false
	}
	game.Winner = winner
	enterPhase(game, phaseGameOver, 0)
	appendLogAt(game, fmt.Sprintf("Game over. The %s win.", winner), logAlert, 0, now)
	return true
}
