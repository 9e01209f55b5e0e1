package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type subscriber struct {
	id uuid.UUID
	fn func(Game)
}

// delivery pairs one post-mutation snapshot with the subscribers
// registered at mutation time.
type delivery struct {
	snapshot Game
	subs     []subscriber
}

// Store owns the single live game plus the archive of finished games.
// All mutations go through Update, which serializes writers and then
// delivers a defensive copy of the state to every subscriber in
// registration order.
//
// Deliveries are queued while the store mutex is still held and drained
// by a single goroutine, so subscribers observe snapshots in mutation
// order even with concurrent writers, and callbacks never run on more
// than one goroutine at a time.
type Store struct {
	mu       sync.Mutex
	game     *Game
	finished []GameSummary
	subs     []subscriber

	queueMu   sync.Mutex
	queueCond *sync.Cond
	queue     []delivery
}

func NewStore() *Store {
	s := &Store{}
	s.queueCond = sync.NewCond(&s.queueMu)
	go s.deliverLoop()
	return s
}

// Replace swaps in a freshly generated game wholesale and broadcasts.
func (s *Store) Replace(game *Game) Game {
	s.mu.Lock()
	s.game = game
	snapshot := cloneGame(game)
	s.enqueueLocked(snapshot)
	s.mu.Unlock()
	return snapshot
}

// Update applies fn to the live game under the store lock. If the game
// finished during the update it is archived exactly once. Subscribers
// receive the post-mutation snapshot.
func (s *Store) Update(id string, fn func(game *Game) error) (Game, error) {
	s.mu.Lock()
	if s.game == nil || (id != "" && s.game.ID != id) {
		s.mu.Unlock()
		return Game{}, errGameNotFound
	}
	if err := fn(s.game); err != nil {
		s.mu.Unlock()
		return Game{}, err
	}
	if s.game.Winner != "" && !s.game.archived {
		s.game.archived = true
		s.finished = append(s.finished, summarize(s.game, time.Now().UTC()))
	}
	snapshot := cloneGame(s.game)
	s.enqueueLocked(snapshot)
	s.mu.Unlock()
	return snapshot, nil
}

// Snapshot returns a copy of the live game; side-effect free.
func (s *Store) Snapshot(id string) (Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game == nil || (id != "" && s.game.ID != id) {
		return Game{}, false
	}
	return cloneGame(s.game), true
}

// Subscribe registers a callback for post-mutation snapshots and
// returns its id plus a cancel func. Each subscription is delivered to
// exactly once per mutation, in registration order.
func (s *Store) Subscribe(fn func(Game)) (uuid.UUID, func()) {
	id := uuid.New()
	s.mu.Lock()
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()
	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := range s.subs {
			if s.subs[i].id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
	return id, cancel
}

func (s *Store) ListGameSummaries(kind string) []GameSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]GameSummary, 0, len(s.finished)+1)
	if kind == "" || kind == gameStatusLive {
		if s.game != nil && s.game.Winner == "" {
			list = append(list, summarize(s.game, time.Time{}))
		}
	}
	if kind == "" || kind == gameStatusFinished {
		list = append(list, s.finished...)
	}
	return list
}

// enqueueLocked appends one delivery while the caller still holds the
// store mutex; queue order is therefore mutation order.
func (s *Store) enqueueLocked(snapshot Game) {
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.queueMu.Lock()
	s.queue = append(s.queue, delivery{snapshot: snapshot, subs: subs})
	s.queueMu.Unlock()
	s.queueCond.Signal()
}

func (s *Store) deliverLoop() {
	for {
		s.queueMu.Lock()
		for len(s.queue) == 0 {
			s.queueCond.Wait()
		}
		pending := s.queue
		s.queue = nil
		s.queueMu.Unlock()
		for _, d := range pending {
			for _, sub := range d.subs {
				sub.fn(d.snapshot)
			}
		}
	}
}

func summarize(game *Game, endedAt time.Time) GameSummary {
	status := gameStatusLive
	if game.Winner != "" {
		status = gameStatusFinished
	}
	return GameSummary{
		ID:        game.ID,
		Title:     game.Title,
		Status:    status,
		Day:       game.Day,
		Players:   extractPlayerNames(game.Players),
		Winner:    game.Winner,
		CreatedAt: game.CreatedAt,
		EndedAt:   endedAt,
	}
}

// cloneGame copies everything a subscriber may read; the private
// window bookkeeping stays behind in the store.
func cloneGame(game *Game) Game {
	snapshot := *game
	snapshot.Players = make([]Player, len(game.Players))
	copy(snapshot.Players, game.Players)
	snapshot.Logs = make([]LogEntry, len(game.Logs))
	copy(snapshot.Logs, game.Logs)
	snapshot.submitted = nil
	snapshot.voteTally = nil
	snapshot.killTally = nil
	return snapshot
}
