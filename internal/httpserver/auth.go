package httpserver

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/hlog"
	"golang.org/x/crypto/bcrypt"
)

var (
	errUsernameTaken = errors.New("username taken")
	errInvalidSignup = errors.New("invalid signup")
)

// credentials is the signup/login payload.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// authUser is placed into request context by auth middleware.
type authUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ctxUserKey is the context key type for storing authUser.
type ctxUserKey struct{}

func currentUser(r *http.Request) *authUser {
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	return me
}

// mountAuthRoutes registers authentication + gated routes (/auth/*, /stats/me).
func (s *Server) mountAuthRoutes() {
	s.r.Post("/auth/signup", s.handleSignup)
	s.r.Post("/auth/login", s.handleLogin)
	s.r.Post("/auth/logout", s.handleLogout)

	s.r.With(s.requireAuth()).Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, currentUser(r))
	})

	s.r.With(s.requireAuth()).Get("/stats/me", func(w http.ResponseWriter, r *http.Request) {
		u, err := s.findUserByID(r.Context(), currentUser(r).ID)
		if err != nil {
			writeError(w, r, fmt.Errorf("load user: %w", err))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"id":          u.ID,
			"gamesPlayed": u.GamesPlayed,
			"wins":        u.Wins,
			"streak":      u.Streak,
		})
	})
}

// handleSignup creates a new user, signs a JWT and sets the auth cookie.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badJSON(w, err)
		return
	}
	u, err := s.createUser(r.Context(), body.Username, body.Password)
	switch {
	case errors.Is(err, errUsernameTaken):
		writeJSON(w, http.StatusConflict, errorRes{Error: "username_taken"})
		return
	case errors.Is(err, errInvalidSignup):
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "invalid_signup", Detail: err.Error()})
		return
	case err != nil:
		writeError(w, r, err)
		return
	}
	if !s.issueToken(w, r, u) {
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": u.ID, "username": u.Username, "createdAt": u.CreatedAt})
}

// handleLogin authenticates a user and sets the auth cookie.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badJSON(w, err)
		return
	}
	u, err := s.findUserByUsername(r.Context(), strings.TrimSpace(body.Username))
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		writeError(w, r, fmt.Errorf("load user: %w", err))
		return
	}
	if err != nil || !checkPassword(u.PasswordHash, body.Password) {
		writeJSON(w, http.StatusUnauthorized, errorRes{Error: "invalid_credentials"})
		return
	}
	if !s.issueToken(w, r, u) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": u.ID, "username": u.Username})
}

// handleLogout clears the auth cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearAuthCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) issueToken(w http.ResponseWriter, r *http.Request, u *userRow) bool {
	tok, exp, err := s.signJWT(u.ID, u.Username)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("sign jwt")
		writeJSON(w, http.StatusInternalServerError, errorRes{Error: "sign_failed"})
		return false
	}
	s.setAuthCookie(w, tok, exp)
	w.Header().Set("Authorization", "Bearer "+tok)
	return true
}

// --------------------------- auth middleware --------------------------------

// withOptionalAuth decorates requests with user context if a valid JWT is present.
// It never 401s; used for routes where guests are allowed.
func (s *Server) withOptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s.db != nil {
				if u, err := s.userFromToken(r); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, u))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requireAuth enforces a valid JWT and injects authUser into request context.
func (s *Server) requireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, err := s.userFromToken(r)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorRes{Error: "unauthorized"})
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, u)))
		})
	}
}

// userFromToken validates the bearer/cookie JWT and checks the user still exists.
func (s *Server) userFromToken(r *http.Request) (*authUser, error) {
	tokenStr := bearerOrCookie(r)
	if tokenStr == "" {
		return nil, errors.New("no token")
	}
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	id, _ := claims["id"].(string)
	username, _ := claims["username"].(string)
	if id == "" || username == "" {
		return nil, errors.New("invalid token")
	}
	if _, err := s.findUserByID(r.Context(), id); err != nil {
		return nil, err
	}
	return &authUser{ID: id, Username: username}, nil
}

const anonCookieName = "mastermind_anon"

// ensureAnonID returns an existing anon cookie or sets a new one.
// Used to give guests a stable identity for the daily challenge.
func (s *Server) ensureAnonID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := genID()
	secure, sameSite := cookiePolicy()
	http.SetCookie(w, &http.Cookie{
		Name:     anonCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  s.now().Add(180 * 24 * time.Hour),
	})
	return id
}

// ------------------------ users -----------------------------

// userRow matches the users table shape.
type userRow struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	GamesPlayed  int
	Wins         int
	Streak       int
}

// createUser validates input, checks uniqueness, hashes password, and inserts a new user.
func (s *Server) createUser(ctx context.Context, username, pw string) (*userRow, error) {
	username = strings.TrimSpace(username)
	if err := validateSignup(username, pw); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidSignup, err)
	}
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE lower(username)=lower(?)`, username).Scan(&exists)
	switch {
	case err == nil:
		return nil, errUsernameTaken
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("check username: %w", err)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC().Truncate(time.Second)
	id := genID()
	if _, err := s.db.ExecContext(ctx, `INSERT INTO users (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		id, username, string(h), now.Format(time.RFC3339)); err != nil {
		if isUniqueViolation(err) {
			// lost a race with a concurrent signup
			return nil, errUsernameTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &userRow{ID: id, Username: username, PasswordHash: string(h), CreatedAt: now}, nil
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique
}

func (s *Server) findUserByUsername(ctx context.Context, username string) (*userRow, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, username, password_hash, created_at, games_played, wins, streak
	                      FROM users WHERE lower(username)=lower(?)`, username)
	return scanUser(row)
}

func (s *Server) findUserByID(ctx context.Context, id string) (*userRow, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, username, password_hash, created_at, games_played, wins, streak
	                      FROM users WHERE id=?`, id)
	return scanUser(row)
}

// scanUser converts a *sql.Row into a userRow.
func scanUser(row *sql.Row) (*userRow, error) {
	var u userRow
	var created string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &created, &u.GamesPlayed, &u.Wins, &u.Streak); err != nil {
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &u, nil
}

// bumpStats increments games played; updates wins and streak based on result.
func (s *Server) bumpStats(ctx context.Context, userID string, won bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var gp, wins, streak int
	row := tx.QueryRowContext(ctx, `SELECT games_played, wins, streak FROM users WHERE id=?`, userID)
	if err := row.Scan(&gp, &wins, &streak); err != nil {
		return err
	}
	gp++
	if won {
		wins++
		streak++
	} else {
		streak = 0
	}
	if _, err := tx.ExecContext(ctx, `UPDATE users SET games_played=?, wins=?, streak=? WHERE id=?`, gp, wins, streak, userID); err != nil {
		return err
	}
	return tx.Commit()
}

// checkPassword is a bcrypt verifier.
func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// validateSignup enforces basic username/password rules.
func validateSignup(u, p string) error {
	if len(u) < 3 || len(u) > 24 {
		return errors.New("username must be 3–24 chars")
	}
	for _, r := range u {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return errors.New("username: letters, numbers, underscore only")
		}
	}
	if len(p) < 8 || len(p) > 72 {
		return errors.New("password must be 8–72 chars")
	}
	return nil
}

// genID creates a 22-char URL-safe, crypto-random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ------------------------------ JWT & cookies ------------------------------

func jwtSecret() []byte {
	return []byte(getEnv("JWT_SECRET", "dev_secret_change_me"))
}

// signJWT creates an HS256 JWT with id/username and a configurable expiry (JWT_EXPIRES_DAYS; default 14).
func (s *Server) signJWT(id, username string) (string, time.Time, error) {
	days := 14
	if v := os.Getenv("JWT_EXPIRES_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			days = n
		}
	}
	now := s.now()
	exp := now.Add(time.Duration(days) * 24 * time.Hour)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       id,
		"username": username,
		"exp":      exp.Unix(),
		"iat":      now.Unix(),
	})
	ss, err := t.SignedString(jwtSecret())
	return ss, exp, err
}

// cookiePolicy returns Secure/SameSite for the current environment.
func cookiePolicy() (bool, http.SameSite) {
	if getEnv("APP_ENV", "development") == "production" {
		return true, http.SameSiteNoneMode
	}
	return false, http.SameSiteLaxMode
}

func cookieName() string { return getEnv("COOKIE_NAME", "mastermind_token") }

// setAuthCookie writes the auth token cookie with appropriate security attributes.
func (s *Server) setAuthCookie(w http.ResponseWriter, token string, exp time.Time) {
	secure, sameSite := cookiePolicy()
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName(),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// clearAuthCookie deletes the auth token cookie.
func (s *Server) clearAuthCookie(w http.ResponseWriter) {
	secure, sameSite := cookiePolicy()
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName(),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		MaxAge:   -1,
	})
}

// bearerOrCookie extracts a bearer token from Authorization header or auth cookie.
func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(cookieName()); err == nil {
		return c.Value
	}
	return ""
}
