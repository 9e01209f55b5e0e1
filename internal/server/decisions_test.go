package server

import (
	"errors"
	"testing"
)

func intPtr(v int) *int {
	return &v
}

func TestSubmitSpeechDuringDiscussion(t *testing.T) {
	srv := newTestArena(t)
	game := setupGame(t, srv, phaseDayDiscuss, 30)
	before := len(game.Logs)

	updated, err := srv.SubmitDecision(game.ID, 1, Decision{NaturalSpeech: "I saw someone near the mill."})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(updated.Logs) != before+1 {
		t.Fatalf("expected one new log, got %d", len(updated.Logs)-before)
	}
	last := updated.Logs[len(updated.Logs)-1]
	if last.Type != logSpeech || last.SpeakerID != 1 {
		t.Fatalf("unexpected log: %+v", last)
	}
}

func TestSubmitVoteProducesAcknowledgment(t *testing.T) {
	srv := newTestArena(t)
	game := setupGame(t, srv, phaseDayVote, 15)
	before := len(game.Logs)

	updated, err := srv.SubmitDecision(game.ID, 1, Decision{VoteTarget: intPtr(2)})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(updated.Logs) != before+1 {
		t.Fatalf("expected one acknowledgment log, got %d", len(updated.Logs)-before)
	}
	last := updated.Logs[len(updated.Logs)-1]
	if last.Type != logAction {
		t.Fatalf("expected action log, got %s", last.Type)
	}
}

func TestSubmitVoteDrivesElimination(t *testing.T) {
	srv := newTestArena(t)
	game := setupGame(t, srv, phaseDayVote, 15)

	for _, voter := range []int{1, 3, 4} {
		if _, err := srv.SubmitDecision(game.ID, voter, Decision{VoteTarget: intPtr(2)}); err != nil {
			t.Fatalf("vote from %d: %v", voter, err)
		}
	}
	updated, err := srv.AdvancePhase(game.ID)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	victim, ok := findGamePlayer(updated, 2)
	if !ok || victim.Alive {
		t.Fatalf("expected voted target eliminated")
	}
}

func TestSubmitEmptyDecision(t *testing.T) {
	srv := newTestArena(t)
	game := setupGame(t, srv, phaseDayDiscuss, 30)

	_, err := srv.SubmitDecision(game.ID, 1, Decision{})
	if !errors.Is(err, errEmptyDecision) {
		t.Fatalf("expected errEmptyDecision, got %v", err)
	}
}

func TestSubmitWrongPhase(t *testing.T) {
	srv := newTestArena(t)
	game := setupGame(t, srv, phaseDayDiscuss, 30)

	_, err := srv.SubmitDecision(game.ID, 1, Decision{VoteTarget: intPtr(2)})
	if !errors.Is(err, errWrongPhase) {
		t.Fatalf("expected errWrongPhase for vote in discussion, got %v", err)
	}

	setupGame(t, srv, phaseDayVote, 15)
	live := srv.ListGames(gameStatusLive)[0]
	_, err = srv.SubmitDecision(live.ID, 1, Decision{NaturalSpeech: "too late for talk"})
	if !errors.Is(err, errWrongPhase) {
		t.Fatalf("expected errWrongPhase for speech in vote, got %v", err)
	}
}

func TestSubmitDeadPlayer(t *testing.T) {
	srv := newTestArena(t)
	game := setupGame(t, srv, phaseDayDiscuss, 30)
	if _, err := srv.store.Update(game.ID, func(g *Game) error {
		markDead(g, 1)
		return nil
	}); err != nil {
		t.Fatalf("setup: %v", err)
	}

	_, err := srv.SubmitDecision(game.ID, 1, Decision{NaturalSpeech: "from beyond"})
	if !errors.Is(err, errDeadSubmitter) {
		t.Fatalf("expected errDeadSubmitter, got %v", err)
	}
}

func TestSubmitUnknownPlayer(t *testing.T) {
	srv := newTestArena(t)
	game := setupGame(t, srv, phaseDayDiscuss, 30)

	_, err := srv.SubmitDecision(game.ID, 42, Decision{NaturalSpeech: "who am I"})
	if !errors.Is(err, errUnknownSubmitter) {
		t.Fatalf("expected errUnknownSubmitter, got %v", err)
	}
}

func TestSubmitInvalidTarget(t *testing.T) {
	srv := newTestArena(t)
	game := setupGame(t, srv, phaseDayVote, 15)

	if _, err := srv.SubmitDecision(game.ID, 1, Decision{VoteTarget: intPtr(1)}); !errors.Is(err, errInvalidTarget) {
		t.Fatalf("expected errInvalidTarget for self-vote, got %v", err)
	}
	if _, err := srv.SubmitDecision(game.ID, 1, Decision{VoteTarget: intPtr(99)}); !errors.Is(err, errInvalidTarget) {
		t.Fatalf("expected errInvalidTarget for unknown target, got %v", err)
	}

	if _, err := srv.store.Update(game.ID, func(g *Game) error {
		markDead(g, 2)
		return nil
	}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := srv.SubmitDecision(game.ID, 1, Decision{VoteTarget: intPtr(2)}); !errors.Is(err, errInvalidTarget) {
		t.Fatalf("expected errInvalidTarget for dead target, got %v", err)
	}
}

func TestDoubleSubmissionRejected(t *testing.T) {
	srv := newTestArena(t)
	game := setupGame(t, srv, phaseDayDiscuss, 30)

	if _, err := srv.SubmitDecision(game.ID, 1, Decision{NaturalSpeech: "first"}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	_, err := srv.SubmitDecision(game.ID, 1, Decision{NaturalSpeech: "second"})
	if !errors.Is(err, errDoubleSubmission) {
		t.Fatalf("expected errDoubleSubmission, got %v", err)
	}

	// A new window opens on phase change and clears the mark.
	if _, err := srv.AdvancePhase(game.ID); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if _, err := srv.SubmitDecision(game.ID, 1, Decision{VoteTarget: intPtr(2)}); err != nil {
		t.Fatalf("expected fresh window to accept, got %v", err)
	}
}

func TestSubmitAfterGameOver(t *testing.T) {
	srv := newTestArena(t)
	game := setupGame(t, srv, phaseDayDiscuss, 30)
	finishGame(t, srv, game.ID)

	_, err := srv.SubmitDecision(game.ID, 1, Decision{NaturalSpeech: "gg"})
	if !errors.Is(err, errGameOver) {
		t.Fatalf("expected errGameOver, got %v", err)
	}
}

func TestWerewolfSkillTargetFeedsNightTally(t *testing.T) {
	srv := newTestArena(t)
	game := setupGame(t, srv, phaseNightWolf, 10)

	wolfID, preyID := 0, 0
	for _, player := range game.Players {
		if player.Role == roleWerewolf && wolfID == 0 {
			wolfID = player.ID
		}
		if player.Role != roleWerewolf && preyID == 0 {
			preyID = player.ID
		}
	}
	if _, err := srv.SubmitDecision(game.ID, wolfID, Decision{SkillTarget: intPtr(preyID)}); err != nil {
		t.Fatalf("wolf skill: %v", err)
	}

	updated, err := srv.AdvancePhase(game.ID)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	victim, ok := findGamePlayer(updated, preyID)
	if !ok || victim.Alive {
		t.Fatalf("expected night target eliminated at dawn")
	}
}

func TestSkillTargetOutsideRoleWindow(t *testing.T) {
	srv := newTestArena(t)
	game := setupGame(t, srv, phaseNightWolf, 10)

	villagerID := 0
	for _, player := range game.Players {
		if player.Role == roleVillager {
			villagerID = player.ID
			break
		}
	}
	_, err := srv.SubmitDecision(game.ID, villagerID, Decision{SkillTarget: intPtr(1)})
	if !errors.Is(err, errWrongPhase) {
		t.Fatalf("expected errWrongPhase for villager night skill, got %v", err)
	}
}

func TestSuspicionScoresClamped(t *testing.T) {
	srv := newTestArena(t)
	game := setupGame(t, srv, phaseDayDiscuss, 30)

	updated, err := srv.SubmitDecision(game.ID, 1, Decision{
		NaturalSpeech: "my read of the table",
		SuspicionScores: map[string]float64{
			"2":   150,
			"3":   -20,
			"4":   55,
			"bad": 10,
		},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	cases := map[int]float64{2: 100, 3: 0, 4: 55}
	for id, want := range cases {
		player, _ := findGamePlayer(updated, id)
		if player.Suspicion != want {
			t.Fatalf("player %d suspicion = %v, want %v", id, player.Suspicion, want)
		}
	}
}

func TestVoteTargetSelfInvalid(t *testing.T) {
	srv := newTestArena(t)
	game := setupGame(t, srv, phaseNightWolf, 10)

	wolfID := 0
	for _, player := range game.Players {
		if player.Role == roleWerewolf {
			wolfID = player.ID
			break
		}
	}
	_, err := srv.SubmitDecision(game.ID, wolfID, Decision{SkillTarget: intPtr(wolfID)})
	if !errors.Is(err, errInvalidTarget) {
		t.Fatalf("expected errInvalidTarget for self-target, got %v", err)
	}
}
