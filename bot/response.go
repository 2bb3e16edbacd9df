package bot

import (
	"net/http"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/utils/httputil/httpdriver"

	"github.com/ledgerbot/ledger/bot/metrics"
	"github.com/ledgerbot/ledger/common/log"
)

// newRest returns a REST client that passes every response to onResponse.
func (bot *Bot) newRest(token string) *api.Client {
	c := api.NewClient("Bot " + token)
	c.Client.OnResponse = append(c.Client.OnResponse, bot.onResponse)
	return c
}

// onResponse logs a REST response's status code and adds it to metrics.
func (bot *Bot) onResponse(req httpdriver.Request, resp httpdriver.Response) error {
	if resp == nil {
		return nil
	}
	if _, ok := resp.(*httpdriver.DefaultResponse); !ok {
		return nil
	}

	method := http.MethodGet
	if v, ok := req.(*httpdriver.DefaultRequest); ok && v.Method != "" {
		method = v.Method
	}

	path, status := req.GetPath(), resp.GetStatus()
	if status == http.StatusTooManyRequests {
		log.Warnf("rate limited on %v %v", method, metrics.LoggingName(path))
	} else {
		log.Debugf("%v %v => %v", method, metrics.LoggingName(path), status)
	}

	go bot.Metrics.IncRequests(method, path, status)
	return nil
}
