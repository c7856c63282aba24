package records

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/prtracker/prtracker/internal/auth"
	"github.com/prtracker/prtracker/internal/telemetry/metrics"
	"github.com/prtracker/prtracker/internal/telemetry/tracing"
	"github.com/prtracker/prtracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=records_test

type recordsRepo interface {
	Add(ctx context.Context, record PersonalRecord) (*PersonalRecord, error)
	ListAll(ctx context.Context, userID int) ([]PersonalRecord, error)
	ListByType(ctx context.Context, userID int, recordType, exerciseName string) ([]PersonalRecord, error)
	Delete(ctx context.Context, userID, recordID int) error
	DistinctTypes(ctx context.Context, userID int) ([]TypeInfo, error)
}

type AddRecordRequest struct {
	ExerciseID  *int     `json:"exo_id"`
	Type        string   `json:"pr"`
	Quantity    *int     `json:"quantity"`
	Time        string   `json:"time"`
	AddedWeight *float64 `json:"added_weight"`
	Date        string   `json:"date"`
	Weight      *int     `json:"weight"`
}

type DeleteRecordRequest struct {
	ID *int `json:"id"`
}

type Handler struct {
	repo    recordsRepo
	metrics *metrics.Manager
}

func NewHandler(repo recordsRepo, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metrics,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.records.list")
	defer span.End()

	user, ok := auth.UserFromContext(ctx)
	if !ok {
		pkg.SendJsonMessage(w, http.StatusUnauthorized, "no user")
		return
	}

	records, err := handler.repo.ListAll(ctx, user.ID)
	if err != nil {
		log.Errorf("list personal records for user %d: %s", user.ID, err)
		pkg.SendJsonMessage(w, http.StatusInternalServerError, "failed to get personal records")
		return
	}

	pkg.SendJsonResponse(w, http.StatusOK, records)
}

func (handler *Handler) HandleListByType(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.records.listByType")
	defer span.End()

	user, ok := auth.UserFromContext(ctx)
	if !ok {
		pkg.SendJsonMessage(w, http.StatusUnauthorized, "no user")
		return
	}

	vars := mux.Vars(r)
	recordType := vars["pr_type"]
	exerciseName := vars["exo_name"]
	if recordType == "" || exerciseName == "" {
		pkg.SendJsonMessage(w, http.StatusBadRequest, "missing record type or exercise name")
		return
	}

	records, err := handler.repo.ListByType(ctx, user.ID, recordType, exerciseName)
	if err != nil {
		log.Errorf("list personal records [%s/%s] for user %d: %s", recordType, exerciseName, user.ID, err)
		pkg.SendJsonMessage(w, http.StatusInternalServerError, "failed to get personal records")
		return
	}

	pkg.SendJsonResponse(w, http.StatusOK, records)
}

func (handler *Handler) HandleDistinctTypes(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.records.distinctTypes")
	defer span.End()

	user, ok := auth.UserFromContext(ctx)
	if !ok {
		pkg.SendJsonMessage(w, http.StatusUnauthorized, "no user")
		return
	}

	types, err := handler.repo.DistinctTypes(ctx, user.ID)
	if err != nil {
		log.Errorf("list record types for user %d: %s", user.ID, err)
		pkg.SendJsonMessage(w, http.StatusInternalServerError, "failed to get record types")
		return
	}

	pkg.SendJsonResponse(w, http.StatusOK, types)
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.records.add")
	defer span.End()

	user, ok := auth.UserFromContext(ctx)
	if !ok {
		pkg.SendJsonMessage(w, http.StatusUnauthorized, "no user")
		return
	}

	var req AddRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("add personal record, unmarshal json params: %s", err)
		pkg.SendJsonMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// weight and added weight are optional, the rest is not
	if req.ExerciseID == nil || req.Type == "" || req.Quantity == nil || req.Time == "" || req.Date == "" {
		pkg.SendJsonMessage(w, http.StatusBadRequest, "missing fields")
		return
	}

	record, err := handler.repo.Add(ctx, PersonalRecord{
		UserID:      user.ID,
		ExerciseID:  *req.ExerciseID,
		Type:        req.Type,
		Quantity:    *req.Quantity,
		Time:        req.Time,
		AddedWeight: req.AddedWeight,
		Date:        req.Date,
		Weight:      req.Weight,
	})
	if err != nil {
		log.Errorf("add personal record for user %d: %s", user.ID, err)
		pkg.SendJsonMessage(w, http.StatusInternalServerError, "failed to add personal record")
		return
	}

	handler.metrics.CounterPersonalRecords.Inc()

	log.Debugf("new personal record %d [%s] for user %d", record.ID, record.Type, user.ID)
	pkg.SendJsonResponse(w, http.StatusCreated, record)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.records.delete")
	defer span.End()

	user, ok := auth.UserFromContext(ctx)
	if !ok {
		pkg.SendJsonMessage(w, http.StatusUnauthorized, "no user")
		return
	}

	var req DeleteRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("delete personal record, unmarshal json params: %s", err)
		pkg.SendJsonMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ID == nil {
		pkg.SendJsonMessage(w, http.StatusBadRequest, "missing record id")
		return
	}

	// deleting an id that does not exist, or is owned by someone else,
	// is a no-op and still a success
	if err := handler.repo.Delete(ctx, user.ID, *req.ID); err != nil {
		log.Errorf("delete personal record %d for user %d: %s", *req.ID, user.ID, err)
		pkg.SendJsonMessage(w, http.StatusInternalServerError, "failed to delete personal record")
		return
	}

	pkg.SendJsonMessage(w, http.StatusCreated, "personal record deleted")
}
