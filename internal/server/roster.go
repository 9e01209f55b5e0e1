package server

import "math/rand"

// Standard 9-player table: three werewolves, three villagers, and the
// three god roles.
var rosterRoles = []Role{
	roleWerewolf, roleWerewolf, roleWerewolf,
	roleVillager, roleVillager, roleVillager,
	roleSeer, roleWitch, roleHunter,
}

var rosterNames = []string{
	"Nova", "Orion", "Lyra", "Atlas", "Vega",
	"Rigel", "Mira", "Caster", "Altair",
}

const humanPlayerName = "You"

// newRoster deals a fresh 9-player table. Seat ids are 1-based and
// stable for the life of the game; when isHuman is set, seat 1 is the
// human-controlled player.
func newRoster(rng *rand.Rand, isHuman bool) ([]Player, int) {
	roles := make([]Role, len(rosterRoles))
	copy(roles, rosterRoles)
	rng.Shuffle(len(roles), func(i, j int) {
		roles[i], roles[j] = roles[j], roles[i]
	})

	players := make([]Player, 0, len(roles))
	humanID := 0
	for i, role := range roles {
		player := Player{
			ID:    i + 1,
			Name:  rosterNames[i%len(rosterNames)],
			Alive: true,
			Role:  role,
		}
		if isHuman && i == 0 {
			player.Name = humanPlayerName
			player.IsHuman = true
			humanID = player.ID
		}
		players = append(players, player)
	}
	return players, humanID
}

func findPlayer(game *Game, playerID int) (*Player, bool) {
	for i := range game.Players {
		if game.Players[i].ID == playerID {
			return &game.Players[i], true
		}
	}
	return nil, false
}

func alivePlayers(game *Game) []*Player {
	alive := make([]*Player, 0, len(game.Players))
	for i := range game.Players {
		if game.Players[i].Alive {
			alive = append(alive, &game.Players[i])
		}
	}
	return alive
}

func playerName(game *Game, playerID int) string {
	if player, ok := findPlayer(game, playerID); ok {
		return player.Name
	}
	return "unknown"
}

func extractPlayerNames(players []Player) []string {
	names := make([]string, 0, len(players))
	for _, player := range players {
		names = append(names, player.Name)
	}
	return names
}
