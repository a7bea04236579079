// Package collection holds the user's named groups of saved resources.
//
// A Store is not safe for concurrent use; the owning session serializes access.
package collection

import (
	"errors"
	"time"

	"eduease-be/internal/entity"
)

var (
	ErrDuplicateName        = errors.New("a collection with this name already exists")
	ErrCollectionNotFound   = errors.New("the specified collection does not exist")
	ErrDuplicateResource    = errors.New("this resource is already in the collection")
	ErrConfirmationRequired = errors.New("collection not found, confirmation required to create it")
)

// Confirmer answers "create this new collection?" when a save targets an unknown name.
// A nil Confirmer means the caller has not decided yet.
type Confirmer func(name string) bool

// Always and Never are fixed answers for callers that decided up front.
var (
	Always Confirmer = func(string) bool { return true }
	Never  Confirmer = func(string) bool { return false }
)

type SaveOutcome int

const (
	SavedToExisting SaveOutcome = iota
	SavedBootstrap
	SavedAfterConfirm
)

type Store struct {
	collections []*entity.Collection
	now         func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

func (s *Store) Len() int {
	return len(s.collections)
}

func (s *Store) index(name string) int {
	for i, c := range s.collections {
		if c.Name == name {
			return i
		}
	}
	return -1
}

func (s *Store) Exists(name string) bool {
	return s.index(name) >= 0
}

func (s *Store) Create(name string) error {
	if s.Exists(name) {
		return ErrDuplicateName
	}
	s.collections = append(s.collections, &entity.Collection{
		Name:      name,
		Resources: []entity.Resource{},
		CreatedAt: s.now(),
	})
	return nil
}

// Delete removes the collection and everything in it. It reports whether
// anything was removed.
func (s *Store) Delete(name string) bool {
	i := s.index(name)
	if i < 0 {
		return false
	}
	s.collections = append(s.collections[:i], s.collections[i+1:]...)
	return true
}

func (s *Store) AddResource(name string, resource entity.Resource) error {
	i := s.index(name)
	if i < 0 {
		return ErrCollectionNotFound
	}
	c := s.collections[i]
	if c.HasResource(resource.Id) {
		return ErrDuplicateResource
	}
	c.Resources = append(c.Resources, resource)
	return nil
}

// Save is the "save resource" flow. With no collections at all the target is
// created silently. An unknown target with existing collections is only
// created when confirm agrees; a nil confirm yields ErrConfirmationRequired.
func (s *Store) Save(resource entity.Resource, target string, confirm Confirmer) (SaveOutcome, error) {
	if len(s.collections) == 0 {
		if err := s.Create(target); err != nil {
			return SavedBootstrap, err
		}
		return SavedBootstrap, s.AddResource(target, resource)
	}

	if !s.Exists(target) {
		if confirm == nil {
			return SavedAfterConfirm, ErrConfirmationRequired
		}
		if !confirm(target) {
			return SavedAfterConfirm, ErrCollectionNotFound
		}
		if err := s.Create(target); err != nil {
			return SavedAfterConfirm, err
		}
		return SavedAfterConfirm, s.AddResource(target, resource)
	}

	return SavedToExisting, s.AddResource(target, resource)
}

func (s *Store) Get(name string) (entity.Collection, bool) {
	i := s.index(name)
	if i < 0 {
		return entity.Collection{}, false
	}
	return s.collections[i].Clone(), true
}

// List returns copies of all collections in creation order.
func (s *Store) List() []entity.Collection {
	out := make([]entity.Collection, 0, len(s.collections))
	for _, c := range s.collections {
		out = append(out, c.Clone())
	}
	return out
}

func (s *Store) Names() []string {
	names := make([]string, 0, len(s.collections))
	for _, c := range s.collections {
		names = append(names, c.Name)
	}
	return names
}
