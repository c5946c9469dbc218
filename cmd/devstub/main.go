// Command devstub runs a throwaway in-memory auth service for local client
// development. Verification codes are not emailed, they are printed to
// stdout. Nothing survives a restart. Do not expose it anywhere.
package main

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/avoronin/otpgate/internal/client/api"
	"github.com/avoronin/otpgate/internal/common"
	"github.com/avoronin/otpgate/internal/logging"
)

const tokenTTL = 7 * 24 * time.Hour

type account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash []byte
	Verified     bool
}

type pendingOtp struct {
	Code    string
	Purpose string
	Expires time.Time
}

type server struct {
	mu       sync.Mutex
	accounts map[string]*account    // keyed by email
	otps     map[string]*pendingOtp // keyed by email
	tokens   map[string]string      // token -> email
	log      logging.Logger
}

func newServer(log logging.Logger) *server {
	return &server{
		accounts: make(map[string]*account),
		otps:     make(map[string]*pendingOtp),
		tokens:   make(map[string]string),
		log:      log,
	}
}

func randomOtp() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64())
}

// issueOtp stores a fresh code for the email and prints it instead of
// sending mail.
func (s *server) issueOtp(email, purpose string) {
	code := randomOtp()
	s.otps[email] = &pendingOtp{Code: code, Purpose: purpose, Expires: time.Now().Add(5 * time.Minute)}
	fmt.Printf(">>> OTP for %s (%s): %s\n", email, purpose, code)
	s.log.Info(context.Background(), "otp issued", "email", email, "purpose", purpose)
}

func (s *server) takeOtp(email, purpose, code string) bool {
	p, ok := s.otps[email]
	if !ok || p.Purpose != purpose || time.Now().After(p.Expires) || p.Code != code {
		return false
	}
	delete(s.otps, email)
	return true
}

func writeEnvelope[T any](w http.ResponseWriter, status int, msg string, data *T) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	env := api.Envelope[T]{Success: status < 400, Message: api.NewMessage(msg), Data: data}
	_ = json.NewEncoder(w).Encode(env)
}

func writeOK[T any](w http.ResponseWriter, msg string, data *T) {
	writeEnvelope(w, http.StatusOK, msg, data)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeEnvelope[struct{}](w, status, msg, nil)
}

func decode[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		writeErr(w, http.StatusBadRequest, "Malformed request body")
		return nil, false
	}
	return &v, true
}

func (s *server) register(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[api.RegisterRequest](w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if acc, exists := s.accounts[req.Email]; exists && acc.Verified {
		writeErr(w, http.StatusConflict, "Email already registered")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, common.ErrorInternal.Error())
		return
	}
	s.accounts[req.Email] = &account{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	s.issueOtp(req.Email, "register")
	writeOK(w, "OTP sent to your email", &api.OtpSent{Email: req.Email})
}

func (s *server) verifyRegisterOtp(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[api.VerifyOtpRequest](w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, exists := s.accounts[req.Email]
	if !exists || !s.takeOtp(req.Email, "register", req.OtpCode) {
		writeErr(w, http.StatusBadRequest, "Invalid or expired OTP")
		return
	}
	acc.Verified = true
	writeOK(w, "Registration verified, please log in", &struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}{acc.ID, acc.Username, acc.Email})
}

func (s *server) login(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[api.LoginRequest](w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, exists := s.accounts[req.Email]
	if !exists || !acc.Verified ||
		bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(req.Password)) != nil {
		writeErr(w, http.StatusUnauthorized, common.ErrorUnauthorized.Error())
		return
	}
	s.issueOtp(req.Email, "login")
	writeOK(w, "OTP sent to your email", &api.OtpSent{Email: req.Email})
}

func (s *server) verifyOtp(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[api.VerifyOtpRequest](w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, exists := s.accounts[req.Email]
	if !exists || !s.takeOtp(req.Email, "login", req.OtpCode) {
		writeErr(w, http.StatusBadRequest, "Invalid or expired OTP")
		return
	}

	token, err := common.MakeRandHexString(32)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, common.ErrorInternal.Error())
		return
	}
	s.tokens[token] = acc.Email

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(tokenTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeOK(w, "Login successful", &api.LoginVerify{
		Token:    token,
		ID:       acc.ID,
		Username: acc.Username,
		Email:    acc.Email,
	})
}

func (s *server) forgotPassword(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[struct {
		Email string `json:"email"`
	}](w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// Same answer whether or not the account exists, to avoid leaking
	// which emails are registered.
	if _, exists := s.accounts[req.Email]; exists {
		s.issueOtp(req.Email, "reset")
	}
	writeOK[struct{}](w, "If the email exists, a reset code was sent", nil)
}

func (s *server) resetPassword(w http.ResponseWriter, r *http.Request) {
	req, ok := decode[api.ResetPasswordRequest](w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, exists := s.accounts[req.Email]
	if !exists || !s.takeOtp(req.Email, "reset", req.OtpCode) {
		writeErr(w, http.StatusBadRequest, "Invalid or expired OTP")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, common.ErrorInternal.Error())
		return
	}
	acc.PasswordHash = hash
	writeOK[struct{}](w, "Password updated, please log in", nil)
}

func (s *server) logout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	auth := r.Header.Get(common.AuthorizationHeader)
	if token, found := strings.CutPrefix(auth, common.BearerPrefix); found {
		delete(s.tokens, token)
	} else if c, err := r.Cookie("token"); err == nil {
		delete(s.tokens, c.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeOK[struct{}](w, "Logged out", nil)
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", s.register)
	mux.HandleFunc("POST /api/auth/verify-register-otp", s.verifyRegisterOtp)
	mux.HandleFunc("POST /api/auth/login", s.login)
	mux.HandleFunc("POST /api/auth/verify-otp", s.verifyOtp)
	mux.HandleFunc("POST /api/auth/forgot-password", s.forgotPassword)
	mux.HandleFunc("POST /api/auth/reset-password", s.resetPassword)
	mux.HandleFunc("POST /api/auth/logout", s.logout)
	return mux
}

func main() {
	addr := flag.String("a", "localhost:5000", "listen address")
	flag.Parse()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	srv := newServer(logger)

	logger.Info(context.Background(), "devstub auth service listening", "addr", *addr)
	if err := http.ListenAndServe(*addr, srv.routes()); err != nil {
		logger.Error(context.Background(), "server stopped", "err", err)
		os.Exit(1)
	}
}
