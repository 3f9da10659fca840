package api

import (
	"net/http"
	"time"

	handlers "server/src/api/handlers"
	"server/src/config"
	"server/src/database"
	"server/src/repositories"
	"server/src/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router    *chi.Mux
	Handler   *handlers.Handler
	TokenAuth *jwtauth.JWTAuth
	Port      string
}

func NewServer(cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	db, err := database.SetupDB(cfg)
	if err != nil {
		return nil, err
	}
	return NewServerWithRepository(cfg, repositories.NewUserRepository(db), logger), nil
}

// NewServerWithRepository wires the router against any UserRepository; tests
// pass the in-memory implementation.
func NewServerWithRepository(cfg *config.Config, users repositories.UserRepository, logger *logrus.Logger) *Server {
	tokenAuth := utils.NewTokenAuth(cfg.Auth.Secret)
	server := &Server{
		Router:    chi.NewRouter(),
		Handler:   handlers.NewHandler(users, tokenAuth, cfg.Service.StartingCash, logger),
		TokenAuth: tokenAuth,
		Port:      cfg.Service.Port,
	}
	server.InitRoutes()
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Route("/api/users", func(r chi.Router) {
		r.Post("/", s.Handler.CreateUser)
		r.Post("/login", s.Handler.Login)

		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(s.TokenAuth))
			r.Use(jwtauth.Authenticator)
			r.Put("/", s.Handler.UpdateUser)
			r.Delete("/", s.Handler.DeleteUser)
			r.Post("/stocks", s.Handler.AddStock)
		})
	})
}

func NewHTTPServer(server *Server) *http.Server {
	port := server.Port
	if port == "" {
		port = "8000"
	}
	httpServer := &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
	return httpServer
}
