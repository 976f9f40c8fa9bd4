// Package incentivetest runs an in-process fake of the incentive API for tests.
package incentivetest

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/assr-bot/assr/internal/signer"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var tokenSecret = []byte("incentivetest")

// User is the fake's view of one account
type User struct {
	Wallet     string
	Username   string
	Points     int64
	CheckedIn  bool
	CheckIns   int
	ForcedCode int // non-zero makes daily_points answer with this status
}

// Server is a fake incentive API backed by a Fiber app
type Server struct {
	URL string

	mu         sync.Mutex
	srv        *httptest.Server
	users      map[string]*User
	tokens     map[string]string // token -> wallet
	challenges map[string]bool   // issued, unused challenges
	calls      []string
	TokenTTL   time.Duration
}

// NewServer starts the fake; callers must Close it.
func NewServer() *Server {
	s := &Server{
		users:      make(map[string]*User),
		tokens:     make(map[string]string),
		challenges: make(map[string]bool),
		TokenTTL:   24 * time.Hour,
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(func(c *fiber.Ctx) error {
		s.record(c.Method() + " " + c.Path())
		return c.Next()
	})

	api := app.Group("/incentive")
	api.Get("/auth/login/get_message/", s.getMessage)
	api.Post("/auth/login/", s.login)
	api.Get("/users/me/", s.me)
	api.Post("/users/me/daily_points/", s.dailyPoints)
	api.Post("/users/me/set_info/", s.setInfo)

	s.srv = httptest.NewServer(adaptor.FiberApp(app))
	s.URL = s.srv.URL
	return s
}

func (s *Server) Close() {
	s.srv.Close()
}

// AddUser registers a wallet the fake will accept logins for
func (s *Server) AddUser(u User) *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := u
	s.users[u.Wallet] = &user
	return &user
}

// User returns a snapshot of the wallet's state
func (s *Server) User(wallet string) User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[wallet]; ok {
		return *u
	}
	return User{}
}

// SetForcedCode makes daily_points answer with code for wallet (0 clears it)
func (s *Server) SetForcedCode(wallet string, code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[wallet]; ok {
		u.ForcedCode = code
	}
}

// NewDay clears every user's daily check-in flag
func (s *Server) NewDay() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		u.CheckedIn = false
	}
}

// Calls returns the "METHOD /path" log of received requests
func (s *Server) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// CountCalls counts received requests whose "METHOD /path" has the given suffix
func (s *Server) CountCalls(suffix string) int {
	n := 0
	for _, c := range s.Calls() {
		if strings.HasSuffix(c, suffix) {
			n++
		}
	}
	return n
}

// IssueToken mints a token for wallet with the given expiry
func (s *Server) IssueToken(wallet string, exp time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueLocked(wallet, exp)
}

func (s *Server) issueLocked(wallet string, exp time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": wallet,
		"jti": uuid.NewString(),
		"exp": exp.Unix(),
	})
	signed, _ := token.SignedString(tokenSecret)
	s.tokens[signed] = wallet
	return signed
}

func (s *Server) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}

func (s *Server) getMessage(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := fmt.Sprintf("Sign in to Assisterr. Nonce: %s", uuid.NewString())
	s.challenges[msg] = true
	return c.JSON(msg)
}

func (s *Server) login(c *fiber.Ctx) error {
	var req struct {
		Key       string `json:"key"`
		Message   string `json:"message"`
		Signature string `json:"signature"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid body"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.challenges[req.Message] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "unknown or used message"})
	}
	delete(s.challenges, req.Message)

	if _, ok := s.users[req.Key]; !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "unknown wallet"})
	}
	if !signer.Verify(req.Key, req.Message, req.Signature) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "bad signature"})
	}

	token := s.issueLocked(req.Key, time.Now().Add(s.TokenTTL))
	return c.JSON(fiber.Map{"access_token": token, "refresh_token": uuid.NewString()})
}

func (s *Server) userFor(c *fiber.Ctx) (*User, bool) {
	token := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
	wallet, ok := s.tokens[token]
	if !ok {
		return nil, false
	}
	u, ok := s.users[wallet]
	return u, ok
}

func (s *Server) profile(u *User) fiber.Map {
	var username interface{}
	if u.Username != "" {
		username = u.Username
	}
	return fiber.Map{"username": username, "points": u.Points, "wallet": u.Wallet}
}

func (s *Server) me(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.userFor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "not authenticated"})
	}
	return c.JSON(s.profile(u))
}

func (s *Server) dailyPoints(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.userFor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "not authenticated"})
	}
	if u.ForcedCode != 0 {
		return c.Status(u.ForcedCode).JSON(fiber.Map{"detail": "forced"})
	}
	if u.CheckedIn {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "already claimed today"})
	}
	u.CheckedIn = true
	u.CheckIns++
	u.Points += 100
	return c.JSON(fiber.Map{"points": u.Points})
}

func (s *Server) setInfo(c *fiber.Ctx) error {
	var req struct {
		Avatar   string `json:"avatar"`
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Username) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "username required"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.userFor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "not authenticated"})
	}
	u.Username = req.Username
	return c.JSON(s.profile(u))
}
