package telegram

import (
	"sync"

	"github.com/colleaguesnet/colleagues-bot/internal/domain/profile"
)

// step is the explicit conversation state. Each editing step accepts exactly
// one input shape and transitions to done on success; the social-link step
// re-prompts in place on a bad URL.
type step int

const (
	stepNone step = iota
	stepEditMenu
	stepEditPhoto
	stepEditName
	stepEditProfession
	stepEditSkills
	stepEditBio
	stepEditSocial

	// first-time profile creation walks the fields in order
	stepCreateName
	stepCreateProfession
	stepCreateSkills
	stepCreateBio

	// premium portfolio entry
	stepWorkTitle
	stepWorkDescription
)

type conversation struct {
	step      step
	draft     profile.Profile
	workTitle string
}

// stateStore keeps the per-user conversation cursor in process memory.
// A restart drops unfinished conversations.
type stateStore struct {
	mu sync.Mutex
	m  map[int64]*conversation
}

func newStateStore() *stateStore {
	return &stateStore{m: make(map[int64]*conversation)}
}

func (s *stateStore) Get(userID int64) *conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m[userID]
}

func (s *stateStore) Set(userID int64, c *conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[userID] = c
}

func (s *stateStore) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, userID)
}
