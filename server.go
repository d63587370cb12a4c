package main

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/skip2/go-qrcode"
)

const qrSize = 256

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true // Non-browser clients don't send Origin
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == r.Host
	},
}

func extractIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("feed: encode error: %v", err)
	}
}

// watchURL is the spectator link for a battle
func watchURL(publicURL, battleID, token string) string {
	q := url.Values{}
	q.Set("token", token)
	return publicURL + "/ws?" + q.Encode() + "#" + battleID
}

// battleConfigFromQuery overrides the hub defaults with query parameters
func battleConfigFromQuery(defaults BattleConfig, q url.Values) (BattleConfig, error) {
	cfg := defaults
	if d := q.Get("difficulty"); d != "" {
		diff, err := ParseDifficulty(d)
		if err != nil {
			return cfg, err
		}
		cfg.Difficulty = diff
	}
	if s := q.Get("seed"); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return cfg, err
		}
		cfg.Seed = seed
	}
	return cfg, nil
}

// SetupRoutes configures HTTP routes
func SetupRoutes(hub *Hub, publicURL string) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /battles", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, hub.battles.ListBattles())
	})

	mux.HandleFunc("POST /battles", func(w http.ResponseWriter, r *http.Request) {
		if !hub.auth.AllowIssue(extractIP(r)) {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		cfg, err := battleConfigFromQuery(hub.defaults, r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		g := hub.battles.CreateBattle(cfg)
		if g == nil {
			http.Error(w, "too many active battles", http.StatusServiceUnavailable)
			return
		}
		token, err := hub.auth.IssueToken(g.ID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, CreatedMsg{ID: g.ID, Token: token, Watch: watchURL(publicURL, g.ID, token)})
	})

	mux.HandleFunc("GET /battles/{id}", func(w http.ResponseWriter, r *http.Request) {
		g := hub.battles.GetBattle(r.PathValue("id"))
		if g == nil {
			http.Error(w, "battle not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, g.Summary())
	})

	mux.HandleFunc("GET /battles/{id}/stats", func(w http.ResponseWriter, r *http.Request) {
		if hub.store == nil {
			http.Error(w, "no ledger configured", http.StatusNotFound)
			return
		}
		id := r.PathValue("id")
		hub.store.Flush()
		sum, err := hub.store.Summary(id)
		if err != nil {
			log.Printf("ledger: summary %s: %v", id, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if sum == nil {
			http.Error(w, "battle not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, sum)
	})

	mux.HandleFunc("GET /battles/{id}/token", func(w http.ResponseWriter, r *http.Request) {
		if !hub.auth.AllowIssue(extractIP(r)) {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		g := hub.battles.GetBattle(r.PathValue("id"))
		if g == nil {
			http.Error(w, "battle not found", http.StatusNotFound)
			return
		}
		token, err := hub.auth.IssueToken(g.ID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, TokenMsg{Token: token})
	})

	mux.HandleFunc("GET /battles/{id}/qr", func(w http.ResponseWriter, r *http.Request) {
		if !hub.auth.AllowIssue(extractIP(r)) {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		g := hub.battles.GetBattle(r.PathValue("id"))
		if g == nil {
			http.Error(w, "battle not found", http.StatusNotFound)
			return
		}
		token, err := hub.auth.IssueToken(g.ID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		png, err := qrcode.Encode(watchURL(publicURL, g.ID, token), qrcode.Medium, qrSize)
		if err != nil {
			log.Printf("feed: qr encode error: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		w.Write(png)
	})

	// WebSocket endpoint, gated by a spectator token
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		battleID, err := hub.auth.ValidateToken(r.URL.Query().Get("token"))
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		g := hub.battles.GetBattle(battleID)
		if g == nil {
			http.Error(w, "battle not found", http.StatusNotFound)
			return
		}

		ip := extractIP(r)
		if !hub.Admit(ip) {
			http.Error(w, "too many connections", http.StatusServiceUnavailable)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			hub.Release(ip)
			log.Printf("feed: upgrade error: %v", err)
			return
		}

		client := NewClient(hub, conn, ip)
		hub.register <- client

		// subscribe before the pumps so a failed read always unsubscribes
		if !client.watch(g) {
			client.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: "battle full"}})
		}

		go client.WritePump()
		go client.ReadPump()
	})

	return mux
}
