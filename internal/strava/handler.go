package strava

import (
	"context"
	"errors"
	"net/http"

	"github.com/prtracker/prtracker/internal/auth"
	"github.com/prtracker/prtracker/internal/telemetry/tracing"
	"github.com/prtracker/prtracker/pkg"

	log "github.com/sirupsen/logrus"
)

type tokenExchanger interface {
	AuthCodeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*TokenData, error)
}

type activitySyncer interface {
	Sync(ctx context.Context, userID int) (*SyncResult, error)
}

type tokenStore interface {
	UpsertToken(ctx context.Context, token Token) error
	ListActivityIDs(ctx context.Context, userID int) ([]int64, error)
}

type stateStore interface {
	Save(ctx context.Context, state string, userID int) error
	Consume(ctx context.Context, state string) (int, error)
}

type Handler struct {
	client             tokenExchanger
	syncer             activitySyncer
	repo               tokenStore
	states             stateStore
	randStateGenerator func() string
}

func NewHandler(
	client tokenExchanger,
	syncer activitySyncer,
	repo tokenStore,
	states stateStore,
	randStateGenerator func() string,
) *Handler {
	return &Handler{
		client:             client,
		syncer:             syncer,
		repo:               repo,
		states:             states,
		randStateGenerator: randStateGenerator,
	}
}

func GenerateStateString() string {
	state, err := pkg.GenerateRandomString(24)
	if err != nil {
		log.Errorf("generate state string: %s", err)
		return "fallback-state"
	}
	return state
}

// HandleLogin starts the authorization flow for the calling user. The state
// parameter carries the user through the strava redirect and back.
func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var err error
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "strava.handler.login")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user, ok := auth.UserFromContext(ctx)
	if !ok {
		pkg.SendJsonMessage(w, http.StatusUnauthorized, "no user")
		return
	}

	state := handler.randStateGenerator()
	if err = handler.states.Save(ctx, state, user.ID); err != nil {
		log.Errorf("strava login, save state: %s", err)
		pkg.SendJsonMessage(w, http.StatusInternalServerError, "failed to start authorization")
		return
	}

	http.Redirect(w, r, handler.client.AuthCodeURL(state), http.StatusFound)
}

// HandleCallback receives the strava redirect, exchanges the code and stores
// the credential for the user who started the flow.
func (handler *Handler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	var err error
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "strava.handler.callback")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	code := r.URL.Query().Get("code")
	if code == "" {
		pkg.SendJsonMessage(w, http.StatusBadRequest, "missing code")
		return
	}

	state := r.URL.Query().Get("state")
	userID, err := handler.states.Consume(ctx, state)
	if err != nil {
		if errors.Is(err, ErrStateNotFound) {
			log.Errorf("strava callback: state mismatch [%s]", state)
			pkg.SendJsonMessage(w, http.StatusForbidden, "state mismatch")
			return
		}
		log.Errorf("strava callback, consume state: %s", err)
		pkg.SendJsonMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	tokenData, err := handler.client.ExchangeCode(ctx, code)
	if err != nil {
		log.Errorf("strava callback, exchange code: %s", err)
		pkg.SendJsonMessage(w, http.StatusBadRequest, "failed to exchange authorization code")
		return
	}

	if err = handler.repo.UpsertToken(ctx, Token{
		UserID:          userID,
		AccessToken:     tokenData.AccessToken,
		RefreshToken:    tokenData.RefreshToken,
		ExpiresAt:       tokenData.ExpiresAt,
		StravaAthleteID: tokenData.Athlete.ID,
	}); err != nil {
		log.Errorf("strava callback, store token: %s", err)
		pkg.SendJsonMessage(w, http.StatusInternalServerError, "failed to store token")
		return
	}

	log.Debugf("strava account connected for user %d", userID)
	http.Redirect(w, r, "/", http.StatusFound)
}

// HandleSync mirrors the activities of the calling user.
func (handler *Handler) HandleSync(w http.ResponseWriter, r *http.Request) {
	var err error
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "strava.handler.sync")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user, ok := auth.UserFromContext(ctx)
	if !ok {
		pkg.SendJsonMessage(w, http.StatusUnauthorized, "no user")
		return
	}

	result, err := handler.syncer.Sync(ctx, user.ID)
	if err != nil {
		if errors.Is(err, ErrNoToken) {
			pkg.SendJsonMessage(w, http.StatusBadRequest, "strava account not connected")
			return
		}
		log.Errorf("strava sync for user %d: %s", user.ID, err)
		pkg.SendJsonMessage(w, http.StatusBadRequest, "sync failed")
		return
	}

	pkg.SendJsonResponse(w, http.StatusOK, result)
}

// HandleActivities lists the mirrored strava activity ids of the caller.
func (handler *Handler) HandleActivities(w http.ResponseWriter, r *http.Request) {
	var err error
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "strava.handler.activities")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user, ok := auth.UserFromContext(ctx)
	if !ok {
		pkg.SendJsonMessage(w, http.StatusUnauthorized, "no user")
		return
	}

	ids, err := handler.repo.ListActivityIDs(ctx, user.ID)
	if err != nil {
		log.Errorf("list strava activities for user %d: %s", user.ID, err)
		pkg.SendJsonMessage(w, http.StatusInternalServerError, "failed to get activities")
		return
	}

	pkg.SendJsonResponse(w, http.StatusOK, ids)
}
