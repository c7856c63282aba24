package exercises

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/prtracker/prtracker/internal/telemetry/tracing"
	"github.com/prtracker/prtracker/pkg"

	log "github.com/sirupsen/logrus"
)

type exercisesRepo interface {
	Add(ctx context.Context, name string) (*Exercise, error)
	List(ctx context.Context) ([]Exercise, error)
	GetByID(ctx context.Context, id int) (*Exercise, error)
}

type AddExerciseRequest struct {
	Name string `json:"name"`
}

type Handler struct {
	repo exercisesRepo
}

func NewHandler(repo exercisesRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.list")
	defer span.End()

	exercises, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list exercises: %s", err)
		pkg.SendJsonMessage(w, http.StatusInternalServerError, "failed to get exercises")
		return
	}

	pkg.SendJsonResponse(w, http.StatusOK, exercises)
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.add")
	defer span.End()

	var req AddExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("add exercise, unmarshal json params: %s", err)
		pkg.SendJsonMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		pkg.SendJsonMessage(w, http.StatusBadRequest, "exercise name empty")
		return
	}

	exercise, err := handler.repo.Add(ctx, req.Name)
	if err != nil {
		log.Errorf("add exercise [%s]: %s", req.Name, err)
		pkg.SendJsonMessage(w, http.StatusInternalServerError, "failed to add exercise")
		return
	}

	log.Debugf("new exercise added: %d [%s]", exercise.ID, exercise.Name)
	pkg.SendJsonResponse(w, http.StatusCreated, exercise)
}
