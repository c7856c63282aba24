package exercises_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/prtracker/prtracker/internal/exercises"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func addReq(t *testing.T, payload any) *http.Request {
	t.Helper()
	reqJson, err := json.Marshal(payload)
	require.NoError(t, err)
	req, err := http.NewRequest("POST", "/exo", bytes.NewReader(reqJson))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHandler_AddAndList(t *testing.T) {
	handler := exercises.NewHandler(exercises.NewMockExercisesRepo())

	rec := httptest.NewRecorder()
	handler.HandleList(rec, httptest.NewRequest("GET", "/exo", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())

	for _, name := range []string{"deadlift", "bench press", "squat"} {
		rec = httptest.NewRecorder()
		handler.HandleAdd(rec, addReq(t, exercises.AddExerciseRequest{Name: name}))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.HandleList(rec, httptest.NewRequest("GET", "/exo", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var list []exercises.Exercise
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 3)
	assert.Equal(t, exercises.Exercise{ID: 1, Name: "deadlift"}, list[0])
	assert.Equal(t, exercises.Exercise{ID: 3, Name: "squat"}, list[2])
}

func TestHandler_Add_InvalidRequests(t *testing.T) {
	handler := exercises.NewHandler(exercises.NewMockExercisesRepo())

	rec := httptest.NewRecorder()
	handler.HandleAdd(rec, addReq(t, exercises.AddExerciseRequest{}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req, err := http.NewRequest("POST", "/exo", bytes.NewReader([]byte("not json")))
	require.NoError(t, err)
	rec = httptest.NewRecorder()
	handler.HandleAdd(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
