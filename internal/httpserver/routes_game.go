package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/mastermind/internal/game"
)

// wireCode accepts a code as a JSON array of strings or numbers:
// ["Red","Blue",...] and [1,3,2,6] both decode.
type wireCode game.Code

func (c *wireCode) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("code must be an array: %w", err)
	}
	out := make(wireCode, len(raw))
	for i, item := range raw {
		item = bytes.TrimSpace(item)
		if len(item) > 0 && item[0] == '"' {
			var s string
			if err := json.Unmarshal(item, &s); err != nil {
				return err
			}
			out[i] = game.Symbol(s)
			continue
		}
		var n json.Number
		if err := json.Unmarshal(item, &n); err != nil {
			return fmt.Errorf("code element %d must be a string or number", i+1)
		}
		out[i] = game.Symbol(n.String())
	}
	*c = out
	return nil
}

// newGameReq payload for POST /game/new.
type newGameReq struct {
	Alphabet    string    `json:"alphabet"`    // "numeric" (default) | "colors"
	Length      int       `json:"length"`      // default 4
	MaxAttempts int       `json:"maxAttempts"` // default 10
	Mode        game.Mode `json:"mode"`        // "solver" (default) | "setter"
}

// handleNewGame creates a session and registers it in the store.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	// An empty body starts a default game.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		badJSON(w, err)
		return
	}
	if req.Mode == "" {
		req.Mode = game.ModeSolver
	}
	alpha, ok := s.palette.Lookup(req.Alphabet)
	if !ok {
		writeError(w, r, fmt.Errorf("%w: unknown alphabet %q", game.ErrInvalidInput, req.Alphabet))
		return
	}

	g, err := game.New(game.Config{
		Alphabet:    alpha,
		Length:      req.Length,
		MaxAttempts: req.MaxAttempts,
		Mode:        req.Mode,
		Rand:        s.source(),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		writeError(w, r, err)
		return
	}
	hlog.FromRequest(r).Info().Str("gameId", g.ID()).Str("mode", string(g.Mode())).Msg("game created")
	writeJSON(w, http.StatusCreated, g.Snapshot())
}

// secretReq payload for POST /game/secret.
type secretReq struct {
	GameID string   `json:"gameId"`
	Code   wireCode `json:"code"`
}

// handleSetSecret installs the secret of a setter-mode game.
func (s *Server) handleSetSecret(w http.ResponseWriter, r *http.Request) {
	var req secretReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badJSON(w, err)
		return
	}
	var snap game.Snapshot
	err := s.store.Update(r.Context(), req.GameID, func(g *game.Session) error {
		if _, err := g.SetSecret(game.Code(req.Code)); err != nil {
			return err
		}
		snap = g.Snapshot()
		return nil
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string   `json:"gameId"`
	Guess  wireCode `json:"guess"`
}
type guessRes struct {
	Attempt   game.Attempt `json:"attempt"`
	Status    game.Status  `json:"status"`
	Remaining int          `json:"remaining"`
	Secret    game.Code    `json:"secret,omitempty"` // only once won/lost

	mode game.Mode
}

// handleGuess applies a guess and, when a solver game ends, bumps the caller's
// stats. Setter games are hot seat: the player knows the secret.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badJSON(w, err)
		return
	}
	res, err := s.submit(r, req.GameID, game.Code(req.Guess))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if res.Status.Terminal() && res.mode == game.ModeSolver {
		if me := currentUser(r); me != nil && s.db != nil {
			if err := s.bumpStats(r.Context(), me.ID, res.Status == game.StatusWon); err != nil {
				hlog.FromRequest(r).Warn().Err(err).Str("user", me.ID).Msg("bump stats")
			}
		}
	}
	writeJSON(w, http.StatusOK, res)
}

// submit applies one guess under the session lock.
func (s *Server) submit(r *http.Request, id string, guess game.Code) (guessRes, error) {
	var res guessRes
	err := s.store.Update(r.Context(), id, func(g *game.Session) error {
		a, st, err := g.SubmitGuess(guess)
		if err != nil {
			return err
		}
		res = guessRes{Attempt: a, Status: st, Remaining: g.RemainingAttempts(), mode: g.Mode()}
		if st.Terminal() {
			res.Secret = g.RevealSecret()
		}
		return nil
	})
	return res, err
}

// handleGetGame returns the session snapshot.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	var snap game.Snapshot
	err := s.store.Update(r.Context(), chi.URLParam(r, "id"), func(g *game.Session) error {
		snap = g.Snapshot()
		return nil
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleDeleteGame discards a session.
func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.store.Get(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
