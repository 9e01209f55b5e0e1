package server

import "time"

type Phase string

const (
	phaseNightWolf   Phase = "night-wolf"
	phaseNightWitch  Phase = "night-witch"
	phaseNightSeer   Phase = "night-seer"
	phaseNightHunter Phase = "night-hunter"
	phaseDayAnnounce Phase = "day-announce"
	phaseDayDiscuss  Phase = "day-discuss"
	phaseDayVote     Phase = "day-vote"
	phaseGameOver    Phase = "game-over"
)

type Role string

const (
	roleWerewolf Role = "werewolf"
	roleVillager Role = "villager"
	roleSeer     Role = "seer"
	roleWitch    Role = "witch"
	roleHunter   Role = "hunter"
)

type Faction string

const (
	factionWerewolves Faction = "werewolves"
	factionVillagers  Faction = "villagers"
)

type LogType string

const (
	logSystem LogType = "system"
	logSpeech LogType = "speech"
	logAction LogType = "action"
	logAlert  LogType = "alert"
)

const (
	gameStatusLive     = "live"
	gameStatusFinished = "finished"
)

type GameSummary struct {
	ID        string
	Title     string
	Status    string
	Day       int
	Players   []string
	Winner    Faction
	CreatedAt time.Time
	EndedAt   time.Time
}

type Game struct {
	ID        string
	Title     string
	Day       int
	Phase     Phase
	Players   []Player
	Logs      []LogEntry
	TimeLeft  int
	Winner    Faction
	HumanID   int
	SheriffID int
	CreatedAt time.Time

	// Decision-window bookkeeping. The window sequence increments on
	// every phase change; tallies and submission marks belong to the
	// current window only.
	windowSeq int
	submitted map[int]int
	voteTally map[int]int
	killTally map[int]int
	archived  bool
}

type Player struct {
	ID        int
	Name      string
	Alive     bool
	Role      Role
	IsHuman   bool
	Suspicion float64
}

type LogEntry struct {
	Day       int
	Phase     Phase
	SpeakerID int
	Content   string
	Type      LogType
	CreatedAt time.Time
}

// Decision is the transient payload a human or agent submits for the
// current decision window. It is never stored; it is translated into
// at most two log entries and folded into the window tallies.
type Decision struct {
	NaturalSpeech   string             `json:"natural_speech"`
	VoteTarget      *int               `json:"vote_target,omitempty"`
	SkillTarget     *int               `json:"skill_target,omitempty"`
	ReasoningSteps  []string           `json:"reasoning_steps,omitempty"`
	SuspicionScores map[string]float64 `json:"suspicion_scores,omitempty"`
}

func (d Decision) empty() bool {
	return d.NaturalSpeech == "" && d.VoteTarget == nil && d.SkillTarget == nil
}

func (p Phase) valid() bool {
	switch p {
	case phaseNightWolf, phaseNightWitch, phaseNightSeer, phaseNightHunter,
		phaseDayAnnounce, phaseDayDiscuss, phaseDayVote, phaseGameOver:
		return true
	}
	return false
}

func (p Phase) isNight() bool {
	switch p {
	case phaseNightWolf, phaseNightWitch, phaseNightSeer, phaseNightHunter:
		return true
	}
	return false
}

func (r Role) faction() Faction {
	if r == roleWerewolf {
		return factionWerewolves
	}
	return factionVillagers
}
