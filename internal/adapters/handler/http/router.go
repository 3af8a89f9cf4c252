package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/syncup/api/internal/core/ports"
)

func NewHandler(
	authService ports.AuthService,
	authHandler *AuthHandler,
	userHandler *UserHandler,
	pollHandler *PollHandler,
	voteHandler *VoteHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/polls", func(r chi.Router) {
			r.Get("/", pollHandler.ListPolls)
			r.Get("/{id}", pollHandler.GetPoll)
			r.Get("/{id}/winner", pollHandler.Winner)

			r.Group(func(r chi.Router) {
				r.Use(AuthMiddleware(authService))
				r.Post("/", pollHandler.CreatePoll)
				r.Post("/{id}/close", pollHandler.ClosePoll)
				r.Delete("/{id}", pollHandler.DeletePoll)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(authService))
			r.Get("/me", userHandler.GetMe)
			r.Route("/votes", func(r chi.Router) {
				r.Post("/", voteHandler.CastVote)
				r.Delete("/{id}", voteHandler.RetractVote)
			})
		})
	})

	return r
}
