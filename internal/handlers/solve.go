package handlers

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/avolkova/minesweeper-agent/internal/config"
	"github.com/avolkova/minesweeper-agent/internal/game"
	"github.com/avolkova/minesweeper-agent/internal/middleware"
	"github.com/avolkova/minesweeper-agent/internal/repository"
)

// sessions longer than this are assumed to be stuck
const defaultMaxMoves = 10_000

type Solve struct {
	logger  *slog.Logger
	repo    *repository.Queries
	ws      *config.WebSocket
	newRand func() *rand.Rand
}

func NewSolve(
	logger *slog.Logger,
	repo *repository.Queries,
	ws *config.WebSocket,
	newRand func() *rand.Rand,
) *Solve {
	return &Solve{
		logger:  logger,
		repo:    repo,
		ws:      ws,
		newRand: newRand,
	}
}

// Run creates a board from the query parameters, plays the deductive
// agent to completion and stores the finished session.
func (s Solve) Run(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseSolveRequestDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, s.logger, wrapError(err))
		return
	}

	params := game.Params{
		Width:     dto.Width,
		Height:    dto.Height,
		MineCount: dto.MineCount,
	}
	if err := params.Validate(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, s.logger, wrapError(err))
		return
	}

	rnd := s.newRand()
	if dto.Seed != nil {
		rnd = rand.New(rand.NewPCG(*dto.Seed, 0))
	}

	session, err := game.NewSession(params, rnd)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		s.logger.Error("unable to create session", "error", err)
		return
	}

	maxMoves := dto.MaxMoves
	if maxMoves <= 0 {
		maxMoves = defaultMaxMoves
	}
	outcome, err := session.Play(maxMoves)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		s.logger.Error("agent failed mid-game", "error", err)
		return
	}

	var playerId *int64
	if claims, ok := r.Context().Value(middleware.CtxPlayerClaims).(*config.PlayerClaims); ok {
		playerId = &claims.PlayerId
	}

	run, err := s.repo.CreateSolveRun(
		r.Context(), session, repository.CreateSolveRunParams{PlayerID: playerId},
	)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		s.logger.Error("unable to store solve run", "error", err)
		return
	}

	s.logger.Info("solve run finished",
		slog.Int64("solveRunId", run.SolveRunID),
		slog.String("outcome", outcome.String()),
		slog.Int("moves", len(session.Moves)),
		slog.Int("guesses", session.GuessesTaken),
	)

	sendJSONOrLog(w, s.logger, NewSolveRunDTO(run.SolveRunID, session))
}

func (s Solve) Fetch(w http.ResponseWriter, r *http.Request) {
	solveRunId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	run, err := s.repo.FetchSolveRun(r.Context(), solveRunId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		s.logger.Error("unable to fetch solve run", "error", err)
		return
	}

	session, err := run.Session()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		s.logger.Error("db returned invalid solve_run.state", "error", err)
		return
	}

	sendJSONOrLog(w, s.logger, NewSolveRunDTO(run.SolveRunID, session))
}

func (s Solve) Highscores(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseHighscoreFilterDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, s.logger, wrapError(err))
		return
	}

	scores, err := s.repo.FetchHighscores(r.Context(), dto.Filter(), 50)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		s.logger.Error("unable to fetch highscores", "error", err)
		return
	}

	sendJSONOrLog(w, s.logger, scores)
}
