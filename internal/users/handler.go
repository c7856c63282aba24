package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prtracker/prtracker/internal/telemetry/metrics"
	"github.com/prtracker/prtracker/internal/telemetry/tracing"
	"github.com/prtracker/prtracker/pkg"

	log "github.com/sirupsen/logrus"
)

type usersRepo interface {
	Create(ctx context.Context, user User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type tokenIssuer interface {
	Issue(userID int) (string, error)
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type Handler struct {
	repo    usersRepo
	tokens  tokenIssuer
	metrics *metrics.Manager
}

func NewHandler(repo usersRepo, tokens tokenIssuer, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		tokens:  tokens,
		metrics: metrics,
	}
}

func (handler *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.register")
	defer span.End()

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("register, unmarshal json params: %s", err)
		pkg.SendJsonMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		pkg.SendJsonMessage(w, http.StatusBadRequest, "missing fields")
		return
	}

	passwordHash, err := pkg.HashPassword(req.Password)
	if err != nil {
		log.Errorf("register, hash password: %s", err)
		pkg.SendJsonMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	user, err := handler.repo.Create(ctx, User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			pkg.SendJsonMessage(w, http.StatusConflict, "email already in use")
			return
		}
		log.Errorf("register, create user: %s", err)
		pkg.SendJsonMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	handler.metrics.CounterRegisteredUsers.Inc()

	log.Debugf("new user registered: %d", user.ID)
	pkg.SendJsonMessage(w, http.StatusCreated, "user created")
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.login")
	defer span.End()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("login, unmarshal json params: %s", err)
		pkg.SendJsonMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		pkg.SendJsonMessage(w, http.StatusBadRequest, "missing fields")
		return
	}

	user, err := handler.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		// same response for unknown email and bad password
		log.Tracef("login, get user by email: %s", err)
		pkg.SendJsonMessage(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if !pkg.CheckPasswordHash(req.Password, user.PasswordHash) {
		pkg.SendJsonMessage(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := handler.tokens.Issue(user.ID)
	if err != nil {
		log.Errorf("login, issue token for user %d: %s", user.ID, err)
		pkg.SendJsonMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	pkg.SendJsonResponse(w, http.StatusOK, LoginResponse{Token: token})
}
