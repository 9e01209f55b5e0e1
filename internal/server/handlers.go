package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	qrcode "github.com/skip2/go-qrcode"
)

type createGameRequest struct {
	IsHuman bool `json:"is_human"`
}

type decisionRequest struct {
	PlayerID        int                `json:"player_id" binding:"required,gt=0"`
	NaturalSpeech   string             `json:"natural_speech" binding:"omitempty,speech"`
	VoteTarget      *int               `json:"vote_target"`
	SkillTarget     *int               `json:"skill_target"`
	ReasoningSteps  []string           `json:"reasoning_steps"`
	SuspicionScores map[string]float64 `json:"suspicion_scores"`
}

var decisionMessages = bindMessages{
	"PlayerID": {
		"required": "player_id is required",
		"gt":       "player_id is required",
	},
	"NaturalSpeech": {
		"speech": "speech is too long or contains unsupported characters",
	},
}

func (s *Server) Router() *gin.Engine {
	registerValidators()
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")
	api.POST("/games", s.handleCreateGame)
	api.GET("/games", s.handleListGames)
	api.GET("/games/:id", s.handleGetGame)
	api.POST("/games/:id/start", s.handleStartLoop)
	api.POST("/games/:id/reset", s.handleResetGame)
	api.POST("/games/:id/decisions", s.handleSubmitDecision)
	api.POST("/games/:id/state", s.handleStateSync)
	api.GET("/games/:id/qr", s.handleSpectateQR)

	router.GET("/ws/games/:id", s.handleWebsocket)
	router.GET("/ws/home", s.handleHomeWebsocket)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func (s *Server) handleCreateGame(c *gin.Context) {
	var req createGameRequest
	// The body is optional; an absent or empty body means an all-AI demo game.
	_ = c.ShouldBindJSON(&req)
	game := s.ResetGame(req.IsHuman)
	c.JSON(http.StatusCreated, gin.H{
		"game_id":  game.ID,
		"title":    game.Title,
		"human_id": game.HumanID,
	})
}

func (s *Server) handleResetGame(c *gin.Context) {
	gameID := c.Param("id")
	if _, ok := s.store.Snapshot(gameID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}
	var req createGameRequest
	_ = c.ShouldBindJSON(&req)
	game := s.ResetGame(req.IsHuman)
	c.JSON(http.StatusOK, gin.H{
		"game_id":  game.ID,
		"title":    game.Title,
		"human_id": game.HumanID,
	})
}

func (s *Server) handleStartLoop(c *gin.Context) {
	gameID := c.Param("id")
	if err := s.StartLoop(gameID); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"game_id": gameID, "running": true})
}

func (s *Server) handleListGames(c *gin.Context) {
	kind := c.Query("kind")
	switch kind {
	case "", gameStatusLive, gameStatusFinished:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be live or finished"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"games": summariesPayload(s.ListGames(kind))})
}

func (s *Server) handleGetGame(c *gin.Context) {
	game, ok := s.store.Snapshot(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}
	c.JSON(http.StatusOK, snapshotPayload(game))
}

func (s *Server) handleSubmitDecision(c *gin.Context) {
	gameID := c.Param("id")
	var req decisionRequest
	if !bindJSON(c, &req, decisionMessages, "invalid decision") {
		return
	}
	if !s.limiter.Allow(fmt.Sprintf("%s:%d", gameID, req.PlayerID)) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many submissions"})
		return
	}
	speech, err := validateSpeech(req.NaturalSpeech)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reasoning, err := validateReasoning(req.ReasoningSteps)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	decision := Decision{
		NaturalSpeech:   speech,
		VoteTarget:      req.VoteTarget,
		SkillTarget:     req.SkillTarget,
		ReasoningSteps:  reasoning,
		SuspicionScores: req.SuspicionScores,
	}
	game, err := s.SubmitDecision(gameID, req.PlayerID, decision)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	log.Printf("decision accepted game_id=%s player_id=%d phase=%s", gameID, req.PlayerID, game.Phase)
	c.JSON(http.StatusOK, gin.H{
		"game_id":   game.ID,
		"player_id": req.PlayerID,
		"phase":     string(game.Phase),
		"logs":      len(game.Logs),
	})
}

func (s *Server) handleStateSync(c *gin.Context) {
	gameID := c.Param("id")
	var req stateSync
	if !bindJSON(c, &req, nil, "invalid state payload") {
		return
	}
	game, err := s.ApplyStateSync(gameID, req)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	log.Printf("state sync applied game_id=%s day=%d phase=%s", gameID, game.Day, game.Phase)
	c.JSON(http.StatusOK, snapshotPayload(game))
}

func (s *Server) handleSpectateQR(c *gin.Context) {
	gameID := c.Param("id")
	if _, ok := s.store.Snapshot(gameID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}
	url := fmt.Sprintf("%s/games/%s", s.cfg.PublicBaseURL, gameID)
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render qr code"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, errGameNotFound), errors.Is(err, errUnknownSubmitter):
		return http.StatusNotFound
	case errors.Is(err, errWrongPhase), errors.Is(err, errDeadSubmitter):
		return http.StatusForbidden
	case errors.Is(err, errDoubleSubmission), errors.Is(err, errGameOver):
		return http.StatusConflict
	case errors.Is(err, errMalformedSync):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}
