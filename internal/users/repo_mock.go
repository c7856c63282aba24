package users

import (
	"context"
	"sync"
)

type repoMock struct {
	mutex  sync.Mutex
	nextID int
	users  map[int]*User
}

func NewMockUsersRepo() *repoMock {
	return &repoMock{
		nextID: 1,
		users:  make(map[int]*User),
	}
}

func (r *repoMock) Create(_ context.Context, user User) (*User, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, ErrEmailTaken
		}
	}

	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = &user
	return &user, nil
}

func (r *repoMock) GetByEmail(_ context.Context, email string) (*User, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *repoMock) GetByID(_ context.Context, id int) (*User, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (r *repoMock) Delete(_ context.Context, id int) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	delete(r.users, id)
}
