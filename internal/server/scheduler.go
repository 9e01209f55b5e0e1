package server

import (
	"log"
	"time"
)

// TickSource supplies the scheduler's clock so tests can drive the
// loop deterministically. The cancel func releases the source.
type TickSource func() (<-chan time.Time, func())

func tickEverySecond() (<-chan time.Time, func()) {
	ticker := time.NewTicker(time.Second)
	return ticker.C, ticker.Stop
}

type gameLoop struct {
	gameID string
	quit   chan struct{}
}

// StartLoop starts the one-second game loop for the live game. At most
// one loop runs process-wide; restarting cancels any previous loop
// first, so the call is idempotent.
func (s *Server) StartLoop(gameID string) error {
	snapshot, ok := s.store.Snapshot(gameID)
	if !ok {
		return errGameNotFound
	}
	if snapshot.Winner != "" {
		return errGameOver
	}
	s.loopMu.Lock()
	s.stopLoopLocked()
	loop := &gameLoop{gameID: snapshot.ID, quit: make(chan struct{})}
	s.loop = loop
	s.loopMu.Unlock()

	ticks, cancel := s.ticks()
	go s.runLoop(loop, ticks, cancel)
	log.Printf("scheduler started game_id=%s phase=%s", snapshot.ID, snapshot.Phase)
	return nil
}

func (s *Server) StopLoop() {
	s.loopMu.Lock()
	defer s.loopMu.Unlock()
	s.stopLoopLocked()
}

func (s *Server) stopLoopLocked() {
	if s.loop != nil {
		close(s.loop.quit)
		s.loop = nil
	}
}

// clearLoop detaches a loop that exited on its own; its quit channel
// is never closed twice.
func (s *Server) clearLoop(loop *gameLoop) {
	s.loopMu.Lock()
	defer s.loopMu.Unlock()
	if s.loop == loop {
		s.loop = nil
	}
}

func (s *Server) runLoop(loop *gameLoop, ticks <-chan time.Time, cancel func()) {
	defer cancel()
	for {
		select {
		case <-loop.quit:
			return
		case now := <-ticks:
			finished, err := s.tick(loop.gameID, now.UTC())
			if err != nil {
				log.Printf("scheduler stopped game_id=%s error=%v", loop.gameID, err)
				s.clearLoop(loop)
				return
			}
			if finished {
				log.Printf("scheduler finished game_id=%s", loop.gameID)
				s.clearLoop(loop)
				return
			}
		}
	}
}

// tick decrements the countdown, opportunistically injects discussion
// chatter, and advances the phase once the countdown expires. It
// reports whether the loop should self-cancel. A game whose winner is
// already set is left untouched: the closure bails out with an error
// so no broadcast fires for the no-op tick.
func (s *Server) tick(gameID string, now time.Time) (bool, error) {
	finished := false
	_, err := s.store.Update(gameID, func(game *Game) error {
		if game.Winner != "" {
			finished = true
			return errGameOver
		}
		game.TimeLeft--
		if game.Phase == phaseDayDiscuss {
			s.maybeChatter(game, now)
		}
		if game.TimeLeft <= 0 {
			s.advanceGamePhase(game, now)
		}
		finished = game.Winner != ""
		return nil
	})
	if finished {
		return true, nil
	}
	return false, err
}
