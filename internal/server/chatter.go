package server

import "time"

// Canned table talk for the demo simulator. Real agent speech arrives
// through decision submission instead.
var chatterPhrases = []string{
	"I was home all night, I swear.",
	"Someone is being awfully quiet today.",
	"The vote yesterday made no sense to me.",
	"I trust the seer, whoever they are.",
	"Think about who benefited from last night.",
	"I'm just a villager, look elsewhere.",
	"That alibi does not hold up.",
	"We cannot afford another wrong vote.",
}

// maybeChatter appends a synthetic speech line from a random living
// non-human player, with the configured per-tick probability.
func (s *Server) maybeChatter(game *Game, now time.Time) {
	if s.cfg.ChatterPercent <= 0 || s.randIntn(100) >= s.cfg.ChatterPercent {
		return
	}
	candidates := make([]*Player, 0, len(game.Players))
	for _, player := range alivePlayers(game) {
		if !player.IsHuman {
			candidates = append(candidates, player)
		}
	}
	if len(candidates) == 0 {
		return
	}
	speaker := candidates[s.randIntn(len(candidates))]
	phrase := chatterPhrases[s.randIntn(len(chatterPhrases))]
	appendLogAt(game, phrase, logSpeech, speaker.ID, now)
}
