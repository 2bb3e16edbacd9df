// Package server is the HTTP status API.
package server

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/ledgerbot/ledger/activity"
	"github.com/ledgerbot/ledger/common/log"
	"github.com/ledgerbot/ledger/store"
)

// ActivitySource runs server activity scans.
type ActivitySource interface {
	ServerActivity(ctx context.Context, guildID discord.GuildID, month time.Month) (activity.ServerActivity, error)
}

type Server struct {
	Router chi.Router

	token    string
	guilds   store.GuildStore
	activity ActivitySource
}

// New returns a server authenticating /v1 requests with token.
func New(token string, guilds store.GuildStore, src ActivitySource) *Server {
	s := &Server{
		Router:   chi.NewRouter(),
		token:    token,
		guilds:   guilds,
		activity: src,
	}

	s.Router.Use(middleware.RealIP, middleware.Recoverer, requestLogger)

	s.Router.Get("/health", s.health)

	s.Router.Route("/v1", func(r chi.Router) {
		r.Use(s.auth)

		r.Get("/status", s.status)
		r.Get("/guilds/{id}/activity", s.guildActivity)
	})

	return s
}

// Run listens on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			log.Errorf("shutting down web server: %v", err)
		}
	}()

	log.Infof("Web server listening on %v", addr)

	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.token)) != 1 {
			writeError(w, r, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		t := time.Now()

		next.ServeHTTP(ww, r)

		log.Debugf("%v %v: %v in %v", r.Method, r.URL.Path, ww.Status(), time.Since(t).Round(time.Millisecond))
	})
}

type apiError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, apiError{Status: status, Message: msg})
}
