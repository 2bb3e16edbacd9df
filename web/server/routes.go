package server

import (
	"net/http"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/ledgerbot/ledger/activity"
	"github.com/ledgerbot/ledger/bot"
	"github.com/ledgerbot/ledger/common"
	"github.com/ledgerbot/ledger/common/log"
	"github.com/ledgerbot/ledger/store"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

type statusResponse struct {
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
	Guilds  int    `json:"guilds"`
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	guilds, err := s.guilds.Guilds(r.Context())
	if err != nil {
		log.Errorf("getting guilds: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	render.JSON(w, r, statusResponse{
		Version: common.Version(),
		Uptime:  common.Uptime().String(),
		Guilds:  len(guilds),
	})
}

type activityResponse struct {
	GuildID discord.GuildID `json:"guild_id"`
	Month   string          `json:"month,omitempty"`
	*activity.ServerActivity
}

func (s *Server) guildActivity(w http.ResponseWriter, r *http.Request) {
	sf, err := discord.ParseSnowflake(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, "guild not found")
		return
	}
	guildID := discord.GuildID(sf)

	var month time.Month
	if tok := r.URL.Query().Get("month"); tok != "" {
		month, err = activity.ParseMonth(tok)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, userMessage(err))
			return
		}
	}

	if _, err := s.guilds.Guild(r.Context(), guildID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "guild not found")
			return
		}
		log.Errorf("getting guild %v: %v", guildID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res, err := s.activity.ServerActivity(r.Context(), guildID, month)
	if err != nil {
		switch {
		case errors.Is(err, bot.ErrScanRunning):
			writeError(w, r, http.StatusConflict, "a scan is already running in this server")
		case errors.Is(err, activity.ErrInvalidFilter):
			writeError(w, r, http.StatusBadRequest, userMessage(err))
		default:
			log.Errorf("scanning guild %v: %v", guildID, err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	resp := activityResponse{GuildID: guildID, ServerActivity: &res}
	if month != 0 {
		resp.Month = activity.MonthName(month)
	}
	render.JSON(w, r, resp)
}

func userMessage(err error) string {
	var ife *activity.InvalidFilterError
	if errors.As(err, &ife) {
		return ife.Message()
	}
	return err.Error()
}
