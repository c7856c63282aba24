package exercises

import (
	"context"
	"sync"
)

type repoMock struct {
	mutex     sync.Mutex
	nextID    int
	exercises []Exercise
}

func NewMockExercisesRepo() *repoMock {
	return &repoMock{
		nextID: 1,
	}
}

func (r *repoMock) Add(_ context.Context, name string) (*Exercise, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	e := Exercise{ID: r.nextID, Name: name}
	r.nextID++
	r.exercises = append(r.exercises, e)
	return &e, nil
}

func (r *repoMock) List(context.Context) ([]Exercise, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	list := make([]Exercise, len(r.exercises))
	copy(list, r.exercises)
	return list, nil
}

func (r *repoMock) GetByID(_ context.Context, id int) (*Exercise, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, e := range r.exercises {
		if e.ID == id {
			exercise := e
			return &exercise, nil
		}
	}
	return nil, ErrExerciseNotFound
}
