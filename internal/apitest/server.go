// Package apitest runs an in-process fake of the chat service for tests.
// It speaks the same routes and payloads as the real service and records
// how often each route was hit.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var signingKey = []byte("apitest-signing-key")

type user struct {
	ID       int64
	Username string
	Email    string
	Password string
	IsOnline bool
}

type message struct {
	ID        int64     `json:"id"`
	Chat      int64     `json:"chat"`
	Sender    userJSON  `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type userJSON struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsOnline bool   `json:"is_online,omitempty"`
}

type Server struct {
	*httptest.Server

	mu            sync.Mutex
	users         map[string]*user
	nextUserID    int64
	access        map[string]int64 // valid access token -> user id
	refresh       map[string]int64 // valid refresh token -> user id
	threads       map[[2]int64]int64
	nextThreadID  int64
	messages      map[int64][]message
	nextMessageID int64

	refreshDelay         time.Duration
	refreshIssuesInvalid bool
	sendDelay            func(content string) time.Duration

	refreshCalls atomic.Int64
	hits         sync.Map // route -> *atomic.Int64
}

// New starts the fake service. Callers own Close (usually via t.Cleanup).
func New() *Server {
	s := &Server{
		users:         make(map[string]*user),
		nextUserID:    1,
		access:        make(map[string]int64),
		refresh:       make(map[string]int64),
		threads:       make(map[[2]int64]int64),
		nextThreadID:  1,
		messages:      make(map[int64][]message),
		nextMessageID: 1,
	}

	r := chi.NewRouter()
	r.Post("/api/auth/token/", s.count("login", s.handleLogin))
	r.Post("/api/auth/register/", s.count("register", s.handleRegister))
	r.Post("/api/auth/token/refresh/", s.count("refresh", s.handleRefresh))
	r.Post("/api/auth/token/verify/", s.count("verify", s.handleVerify))
	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)
		r.Get("/users/", s.count("users", s.handleUsers))
		r.Get("/chats/", s.count("chats", s.handleListChats))
		r.Post("/chats/", s.count("create_chat", s.handleCreateChat))
		r.Get("/chats/{id}/messages/", s.count("messages", s.handleMessages))
		r.Post("/chats/{id}/send_message/", s.count("send_message", s.handleSend))
	})

	s.Server = httptest.NewServer(r)
	return s
}

// AddUser registers an account and returns its id.
func (s *Server) AddUser(username, password string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(username, fmt.Sprintf("%s@example.com", username), password)
}

func (s *Server) addUserLocked(username, email, password string) int64 {
	id := s.nextUserID
	s.nextUserID++
	s.users[username] = &user{ID: id, Username: username, Email: email, Password: password}
	return id
}

// SetOnline flags a user as online in the participant list.
func (s *Server) SetOnline(username string, online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[username]; ok {
		u.IsOnline = online
	}
}

// SetRefreshDelay holds every refresh call for d before answering.
func (s *Server) SetRefreshDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshDelay = d
}

// SetRefreshIssuesInvalidTokens makes refresh hand out tokens the service then rejects.
func (s *Server) SetRefreshIssuesInvalidTokens(invalid bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshIssuesInvalid = invalid
}

// SetSendDelay decides how long a send_message call is held, per content.
func (s *Server) SetSendDelay(delay func(content string) time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sendDelay = delay
}

// SetNextMessageID forces the id of the next stored message.
func (s *Server) SetNextMessageID(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextMessageID = id
}

// ExpireAccessTokens invalidates every access token issued so far.
func (s *Server) ExpireAccessTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = make(map[string]int64)
}

// RevokeRefreshTokens invalidates every refresh token issued so far.
func (s *Server) RevokeRefreshTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh = make(map[string]int64)
}

// IssueTokens mints a valid pair for username without going through login.
func (s *Server) IssueTokens(username string) (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.users[username]
	return s.issueAccessLocked(u), s.issueRefreshLocked(u.ID)
}

func (s *Server) RefreshCalls() int64 {
	return s.refreshCalls.Load()
}

// Hits returns how many times a route was called ("users", "send_message"...).
func (s *Server) Hits(route string) int64 {
	if counter, ok := s.hits.Load(route); ok {
		return counter.(*atomic.Int64).Load()
	}
	return 0
}

func (s *Server) count(route string, next http.HandlerFunc) http.HandlerFunc {
	counter, _ := s.hits.LoadOrStore(route, &atomic.Int64{})
	return func(w http.ResponseWriter, r *http.Request) {
		counter.(*atomic.Int64).Add(1)
		next(w, r)
	}
}

func (s *Server) issueAccessLocked(u *user) string {
	claims := jwt.MapClaims{
		"user_id":    u.ID,
		"username":   u.Username,
		"token_type": "access",
		"jti":        uuid.NewString(),
		"exp":        time.Now().Add(5 * time.Minute).Unix(),
	}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	s.access[token] = u.ID
	return token
}

func (s *Server) issueRefreshLocked(userID int64) string {
	token := uuid.NewString()
	s.refresh[token] = userID
	return token
}

type ctxUserKey struct{}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		userID, valid := s.access[token]
		s.mu.Unlock()
		if !ok || !valid {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"detail": "Given token not valid for any token type",
				"code":   "token_not_valid",
			})
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), userID)))
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[body.Username]
	if !ok || u.Password != body.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "No active account found with the given credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"access":  s.issueAccessLocked(u),
		"refresh": s.issueRefreshLocked(u.ID),
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[body.Username]; exists {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "A user with that username already exists."})
		return
	}
	s.addUserLocked(body.Username, body.Email, body.Password)
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.refreshCalls.Add(1)
	var body struct {
		Refresh string `json:"refresh"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	s.mu.Lock()
	delay := s.refreshDelay
	s.mu.Unlock()
	time.Sleep(delay)

	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.refresh[body.Refresh]
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token is invalid or expired", "code": "token_not_valid"})
		return
	}
	if s.refreshIssuesInvalid {
		writeJSON(w, http.StatusOK, map[string]string{"access": "not-a-valid-token"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"access": s.issueAccessLocked(s.userByIDLocked(userID))})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token string `json:"token"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	s.mu.Lock()
	_, ok := s.access[body.Token]
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token is invalid or expired", "code": "token_not_valid"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{})
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	self := userFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]userJSON, 0, len(s.users))
	for _, u := range s.users {
		if u.ID == self {
			continue
		}
		users = append(users, userJSON{ID: u.ID, Username: u.Username, IsOnline: u.IsOnline})
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleListChats(w http.ResponseWriter, r *http.Request) {
	self := userFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	chats := make([]map[string]any, 0)
	for pair, id := range s.threads {
		if pair[0] != self && pair[1] != self {
			continue
		}
		chats = append(chats, s.threadJSONLocked(id, pair))
	}
	sort.Slice(chats, func(i, j int) bool { return chats[i]["id"].(int64) < chats[j]["id"].(int64) })
	writeJSON(w, http.StatusOK, chats)
}

func (s *Server) handleCreateChat(w http.ResponseWriter, r *http.Request) {
	self := userFrom(r.Context())
	var body struct {
		OtherUserID int64 `json:"other_user_id"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userByIDLocked(body.OtherUserID) == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "User not found"})
		return
	}
	if body.OtherUserID == self {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Cannot chat with yourself"})
		return
	}
	pair := [2]int64{min(self, body.OtherUserID), max(self, body.OtherUserID)}
	id, exists := s.threads[pair]
	if !exists {
		id = s.nextThreadID
		s.nextThreadID++
		s.threads[pair] = id
	}
	status := http.StatusOK
	if !exists {
		status = http.StatusCreated
	}
	writeJSON(w, status, s.threadJSONLocked(id, pair))
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	threadID, ok := s.threadOf(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	messages := append([]message{}, s.messages[threadID]...)
	writeJSON(w, http.StatusOK, messages)
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	threadID, ok := s.threadOf(w, r)
	if !ok {
		return
	}
	var body struct {
		Content string `json:"content"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	s.mu.Lock()
	delay := s.sendDelay
	s.mu.Unlock()
	if delay != nil {
		time.Sleep(delay(body.Content))
	}

	self := userFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	sender := s.userByIDLocked(self)
	msg := message{
		ID:        s.nextMessageID,
		Chat:      threadID,
		Sender:    userJSON{ID: sender.ID, Username: sender.Username},
		Content:   body.Content,
		Timestamp: time.Now().UTC(),
	}
	s.nextMessageID++
	s.messages[threadID] = append(s.messages[threadID], msg)
	writeJSON(w, http.StatusCreated, msg)
}

func (s *Server) threadOf(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	self := userFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		for pair, threadID := range s.threads {
			if threadID == id && (pair[0] == self || pair[1] == self) {
				return id, true
			}
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
	return 0, false
}

func (s *Server) threadJSONLocked(id int64, pair [2]int64) map[string]any {
	u1, u2 := s.userByIDLocked(pair[0]), s.userByIDLocked(pair[1])
	return map[string]any{
		"id":        id,
		"user1":     userJSON{ID: u1.ID, Username: u1.Username},
		"user2":     userJSON{ID: u2.ID, Username: u2.Username},
		"is_active": true,
	}
}

func (s *Server) userByIDLocked(id int64) *user {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
