package main

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"github.com/urfave/cli/v2"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1 << 10,
	WriteBufferSize: 1 << 10,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func (s *srv) startGame(c *cli.Context) error {
	if err := s.loadConfig(c); err != nil {
		return err
	}
	if err := s.loadDatabase(); err != nil {
		return err
	}
	s.loadRepos()
	s.loadLeaderboard()
	s.loadGame()
	s.loadDomains()

	go s.broadcaster.Run(s.ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/register", s.handleRegister)
	mux.HandleFunc("/auth/login", s.handleLogin)
	mux.HandleFunc("/game", s.handleGame)

	handler := cors.New(cors.Options{
		AllowedOrigins:   s.configs.Server.AllowCORS,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowCredentials: true,
	}).Handler(mux)

	httpSrv := &http.Server{
		Addr:    s.configs.Server.Address(),
		Handler: handler,
	}

	s.logger.Infof("Starting game server on %s", s.configs.Server.Address())
	return httpSrv.ListenAndServe()
}

// handleGame upgrades the connection and hands it to the session domain
// for the rest of its lifetime. The access token travels as a query
// parameter because browsers cannot set websocket headers.
func (s *srv) handleGame(w http.ResponseWriter, r *http.Request) {
	token, err := s.tokenEngine.Verify(r.URL.Query().Get("token"))
	if err != nil || token.Username == "" {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Errorf("Cannot upgrade connection: %v", err)
		return
	}

	s.sessionDomain.ServeClient(s.ctx, token.Username, conn)
}
