package app

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/avolkova/minesweeper-agent/internal/config"
	"github.com/avolkova/minesweeper-agent/internal/handlers"
	"github.com/avolkova/minesweeper-agent/internal/repository"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes(
	cookies *config.Cookies, jwt *config.JWT, ws *config.WebSocket,
) {
	repo := repository.New(a.db)

	auth := handlers.NewAuth(a.logger, repo, cookies, jwt)
	a.router.HandleFunc("GET /status", auth.Status)
	a.router.HandleFunc("POST /register", auth.Register)
	a.router.HandleFunc("POST /login", auth.Login)
	a.router.HandleFunc("POST /logout", auth.Logout)

	solve := handlers.NewSolve(a.logger, repo, ws, createRand)
	a.router.HandleFunc("POST /solve", solve.Run)
	a.router.HandleFunc("GET /solve/{id}", solve.Fetch)
	a.router.HandleFunc("/solve/{id}/watch", solve.Watch)
	a.router.HandleFunc("GET /highscores", solve.Highscores)
}
