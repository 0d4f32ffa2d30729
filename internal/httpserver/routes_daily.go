// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's game (creates or reuses session)
//   - POST /daily/guess       → submit a guess for today's game
//   - GET  /daily/leaderboard → fetch top 20 results for today (or a given date)
//
// Everyone gets the same secret on a given date (colors, 4 pegs, 10 attempts),
// drawn from a source seeded by HMAC(DAILY_SALT, date). Each player gets one
// game per day. Every outcome is recorded in daily_results: wins rank, losses
// and forfeits (a session pruned before it finished) only close the day.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/mastermind/internal/daily"
	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/palette"
	"github.com/robalobadob/mastermind/internal/store"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv     *Server
	results *daily.Store
	salt    string
	mu      sync.Mutex           // guards games and day
	games   map[string]dailyGame // keyed by userID|date
	day     string               // date of the newest entry in games
}

// dailyGame links a player's day to a session in the store.
type dailyGame struct {
	ID    string
	Date  string
	Start time.Time
}

// rollover drops entries from earlier days once the date changes.
// Callers hold d.mu.
func (d *dailyServer) rollover(date string) {
	if date == d.day {
		return
	}
	for k, g := range d.games {
		if g.Date != date {
			delete(d.games, k)
		}
	}
	d.day = date
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:     s,
		results: daily.NewStore(s.db),
		salt:    getEnv("DAILY_SALT", "local_dev_salt"),
		games:   make(map[string]dailyGame),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// userID returns the authenticated user ID if logged in, otherwise an
// anonymous ID kept in a cookie.
func (d *dailyServer) userID(w http.ResponseWriter, r *http.Request) string {
	if me := currentUser(r); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	Date   string         `json:"date"`
	Played bool           `json:"played"`
	Game   *game.Snapshot `json:"game,omitempty"`
}

// handleNew creates or reuses today's session.
//   - A recorded result for today → Played=true, no game.
//   - A session started today but since pruned → recorded as a forfeit.
//   - Otherwise the existing in-memory session, or a new one.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid := d.userID(w, r)
	now := d.srv.now()
	date := daily.DateKey(now)

	key := uid + "|" + date
	// held across the result lookup so a game ending concurrently is seen
	// either as a live link or as a recorded result
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rollover(date)

	played, err := d.results.AlreadyPlayed(r.Context(), uid, date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if played {
		writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Played: true})
		return
	}

	if dg, ok := d.games[key]; ok {
		var snap game.Snapshot
		err := d.srv.store.Update(r.Context(), dg.ID, func(g *game.Session) error {
			snap = g.Snapshot()
			return nil
		})
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Game: &snap})
		case errors.Is(err, store.ErrNotFound):
			// the same secret again would be a free retry
			res := daily.Result{UserID: uid, Date: date, ElapsedMs: int(now.Sub(dg.Start).Milliseconds())}
			if err := d.results.InsertResult(r.Context(), res); err != nil {
				writeError(w, r, err)
				return
			}
			delete(d.games, key)
			writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Played: true})
		default:
			writeError(w, r, err)
		}
		return
	}

	colors, ok := d.srv.palette.Lookup(palette.Colors)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorRes{Error: "no_colors"})
		return
	}
	g, err := game.New(game.Config{
		Alphabet: colors,
		Mode:     game.ModeSolver,
		Rand:     daily.Source(now, d.salt),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := d.srv.store.Save(r.Context(), g); err != nil {
		writeError(w, r, err)
		return
	}
	d.games[key] = dailyGame{ID: g.ID(), Date: date, Start: now}
	snap := g.Snapshot()
	writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Game: &snap})
}

// handleGuess applies a guess to today's session and records the outcome
// once the game ends.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	uid := d.userID(w, r)
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badJSON(w, err)
		return
	}

	now := d.srv.now()
	date := daily.DateKey(now)
	key := uid + "|" + date
	d.mu.Lock()
	d.rollover(date)
	dg, ok := d.games[key]
	d.mu.Unlock()
	if !ok || dg.ID != req.GameID {
		writeJSON(w, http.StatusConflict, errorRes{Error: "no_session"})
		return
	}

	res, err := d.srv.submit(r, dg.ID, game.Code(req.Guess))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if res.Status.Terminal() {
		d.mu.Lock()
		defer d.mu.Unlock()
		err := d.results.InsertResult(r.Context(), daily.Result{
			UserID:    uid,
			Date:      date,
			Won:       res.Status == game.StatusWon,
			Guesses:   res.Attempt.Turn,
			ElapsedMs: int(now.Sub(dg.Start).Milliseconds()),
		})
		if err != nil {
			// the entry stays; a pruned session then closes the day as a forfeit
			hlog.FromRequest(r).Warn().Err(err).Str("user", uid).Msg("insert daily result")
		} else {
			delete(d.games, key)
		}
	}
	writeJSON(w, http.StatusOK, res)
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(d.srv.now())
	}
	rows, err := d.results.Leaderboard(r.Context(), date, 20)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
