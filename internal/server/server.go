package server

import (
	"math/rand"
	"sync"
	"time"

	"wolf-arena/internal/config"
)

type Server struct {
	store   *Store
	ws      *wsHub
	homeWS  *homeHub
	cfg     config.Config
	limiter *limiterPool

	loopMu sync.Mutex
	loop   *gameLoop

	rngMu sync.Mutex
	rng   *rand.Rand

	ticks TickSource
}

func New(cfg config.Config) *Server {
	s := &Server{
		store:   NewStore(),
		ws:      newWSHub(),
		homeWS:  newHomeHub(),
		cfg:     cfg,
		limiter: newLimiterPool(cfg.DecisionRPS, cfg.DecisionBurst),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		ticks:   tickEverySecond,
	}
	s.store.Subscribe(s.relaySnapshot)
	return s
}

func (s *Server) randIntn(n int) int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Intn(n)
}
