package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/felipemarinho97/webshare-stremio/consts"
	"github.com/felipemarinho97/webshare-stremio/logging"
)

func HandlerIndex(w http.ResponseWriter, r *http.Request) {
	currentTime := time.Now().Format(time.RFC850)
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(map[string]interface{}{
		"time":      currentTime,
		"build":     consts.GetBuildInfo(),
		"endpoints": []string{"POST /resolve", "GET /getUrl/{ident}?token="},
	})
	if err != nil {
		logging.ErrorWithRequest(r).Err(err).Msg("Failed to encode response")
	}
}
