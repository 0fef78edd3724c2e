package service

import (
	"context"
	"sort"
	"strings"

	"notevault-be/internal/dto"
	"notevault-be/internal/entity"
	"notevault-be/internal/repository/contract"
	"notevault-be/internal/repository/specification"
	"notevault-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// In-memory repositories that interpret the same specifications the GORM
// implementations translate to SQL, so service behavior is testable without
// a database.

type fakeNotebookRepo struct {
	items map[uuid.UUID]*entity.Notebook
}

func newFakeNotebookRepo() *fakeNotebookRepo {
	return &fakeNotebookRepo{items: make(map[uuid.UUID]*entity.Notebook)}
}

func (r *fakeNotebookRepo) Create(_ context.Context, n *entity.Notebook) error {
	cp := *n
	r.items[n.Id] = &cp
	return nil
}

func (r *fakeNotebookRepo) Update(_ context.Context, n *entity.Notebook) error {
	cp := *n
	r.items[n.Id] = &cp
	return nil
}

func (r *fakeNotebookRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *fakeNotebookRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Notebook, error) {
	for _, n := range r.items {
		if notebookMatches(n, specs) {
			cp := *n
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeNotebookRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Notebook, error) {
	var result []*entity.Notebook
	for _, n := range r.items {
		if notebookMatches(n, specs) {
			cp := *n
			result = append(result, &cp)
		}
	}
	sortNotebooks(result, specs)
	return result, nil
}

func (r *fakeNotebookRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func notebookMatches(n *entity.Notebook, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if n.Id != s.ID {
				return false
			}
		case specification.OwnedBy:
			if n.UserId != s.UserID {
				return false
			}
		case specification.ByLifecycleState:
			if n.State != s.State {
				return false
			}
		}
	}
	return true
}

func sortNotebooks(list []*entity.Notebook, specs []specification.Specification) {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.OrderBySortOrderAndTitle:
			sort.SliceStable(list, func(i, j int) bool {
				if list[i].SortOrder != list[j].SortOrder {
					return list[i].SortOrder < list[j].SortOrder
				}
				return strings.ToLower(list[i].Title) < strings.ToLower(list[j].Title)
			})
		case specification.OrderBy:
			sort.SliceStable(list, func(i, j int) bool {
				a, b := notebookField(list[i], s.Field), notebookField(list[j], s.Field)
				if s.Desc {
					return a > b
				}
				return a < b
			})
		}
	}
}

func notebookField(n *entity.Notebook, field string) int64 {
	switch field {
	case "updated_at":
		if n.UpdatedAt != nil {
			return n.UpdatedAt.UnixNano()
		}
		return n.CreatedAt.UnixNano()
	case "trashed_at":
		if n.TrashedAt != nil {
			return n.TrashedAt.UnixNano()
		}
		return 0
	}
	return 0
}

type fakeNoteRepo struct {
	items map[uuid.UUID]*entity.Note
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{items: make(map[uuid.UUID]*entity.Note)}
}

func (r *fakeNoteRepo) Create(_ context.Context, n *entity.Note) error {
	cp := *n
	r.items[n.Id] = &cp
	return nil
}

func (r *fakeNoteRepo) Update(_ context.Context, n *entity.Note) error {
	cp := *n
	r.items[n.Id] = &cp
	return nil
}

func (r *fakeNoteRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *fakeNoteRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Note, error) {
	for _, n := range r.items {
		if noteMatches(n, specs) {
			cp := *n
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeNoteRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	var result []*entity.Note
	for _, n := range r.items {
		if noteMatches(n, specs) {
			cp := *n
			result = append(result, &cp)
		}
	}
	sortNotes(result, specs)
	return result, nil
}

func (r *fakeNoteRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func (r *fakeNoteRepo) ArchiveAllByIds(_ context.Context, userId uuid.UUID, ids []uuid.UUID) error {
	for _, id := range ids {
		if n, ok := r.items[id]; ok && n.UserId == userId {
			n.State = entity.LifecycleArchived
		}
	}
	return nil
}

func (r *fakeNoteRepo) DeleteAllByIds(_ context.Context, userId uuid.UUID, ids []uuid.UUID) error {
	for _, id := range ids {
		if n, ok := r.items[id]; ok && n.UserId == userId {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *fakeNoteRepo) DeleteAllByNotebookId(_ context.Context, notebookId uuid.UUID) error {
	for id, n := range r.items {
		if n.NotebookId == notebookId {
			delete(r.items, id)
		}
	}
	return nil
}

func noteMatches(n *entity.Note, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if n.Id != s.ID {
				return false
			}
		case specification.ByIDs:
			found := false
			for _, id := range s.IDs {
				if n.Id == id {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case specification.OwnedBy:
			if n.UserId != s.UserID {
				return false
			}
		case specification.ByNotebookID:
			if n.NotebookId != s.NotebookID {
				return false
			}
		case specification.ByLifecycleState:
			if n.State != s.State {
				return false
			}
		}
	}
	return true
}

func sortNotes(list []*entity.Note, specs []specification.Specification) {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.OrderBySortOrderAndTitle:
			sort.SliceStable(list, func(i, j int) bool {
				if list[i].SortOrder != list[j].SortOrder {
					return list[i].SortOrder < list[j].SortOrder
				}
				return strings.ToLower(list[i].Title) < strings.ToLower(list[j].Title)
			})
		case specification.OrderBy:
			sort.SliceStable(list, func(i, j int) bool {
				a, b := noteField(list[i], s.Field), noteField(list[j], s.Field)
				if s.Desc {
					return a > b
				}
				return a < b
			})
		}
	}
}

func noteField(n *entity.Note, field string) int64 {
	if field == "updated_at" {
		if n.UpdatedAt != nil {
			return n.UpdatedAt.UnixNano()
		}
		return n.CreatedAt.UnixNano()
	}
	return 0
}

type fakeUserRepo struct {
	live    map[string]*entity.User
	deleted map[string]*entity.User
	created int

	// Restore arms findErr with this value, simulating a store that dies
	// between reactivating the row and reading it back.
	failFindAfterRestore error
	findErr              error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		live:    make(map[string]*entity.User),
		deleted: make(map[string]*entity.User),
	}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	cp := *u
	r.live[u.Email] = &cp
	r.created++
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	cp := *u
	r.live[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	for email, u := range r.live {
		if u.Id == id {
			r.deleted[email] = u
			delete(r.live, email)
		}
	}
	return nil
}

func (r *fakeUserRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.live {
		if userMatches(u, specs) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindOneUnscoped(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	if u, err := r.FindOne(ctx, specs...); u != nil || err != nil {
		return u, err
	}
	for _, u := range r.deleted {
		if userMatches(u, specs) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Restore(_ context.Context, id uuid.UUID) error {
	for email, u := range r.deleted {
		if u.Id == id {
			r.live[email] = u
			delete(r.deleted, email)
		}
	}
	r.findErr = r.failFindAfterRestore
	return nil
}

func (r *fakeUserRepo) UpdateAvatar(_ context.Context, userId uuid.UUID, avatarURL string) error {
	for _, u := range r.live {
		if u.Id == userId {
			url := avatarURL
			u.AvatarURL = &url
		}
	}
	return nil
}

func (r *fakeUserRepo) SaveUserProvider(_ context.Context, _ *entity.UserProvider) error {
	return nil
}

func userMatches(u *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if u.Id != s.ID {
				return false
			}
		case specification.ByEmail:
			if u.Email != s.Email {
				return false
			}
		}
	}
	return true
}

type fakeUnitOfWork struct {
	notebooks *fakeNotebookRepo
	notes     *fakeNoteRepo
	users     *fakeUserRepo
}

func (u *fakeUnitOfWork) Begin(context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error               { return nil }
func (u *fakeUnitOfWork) Rollback() error             { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository         { return u.users }
func (u *fakeUnitOfWork) NotebookRepository() contract.NotebookRepository { return u.notebooks }
func (u *fakeUnitOfWork) NoteRepository() contract.NoteRepository         { return u.notes }

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

// capturePublisher records lifecycle events instead of pushing them to the
// bus.
type capturePublisher struct {
	events []dto.LifecycleEventMessage
}

func (p *capturePublisher) PublishLifecycle(_ context.Context, msg dto.LifecycleEventMessage) error {
	p.events = append(p.events, msg)
	return nil
}

func (p *capturePublisher) eventTypes() []string {
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.EventType
	}
	return types
}

// eventEntityIds collects the entity ids of every captured event of one type.
func eventEntityIds(p *capturePublisher, eventType string) []uuid.UUID {
	var ids []uuid.UUID
	for _, e := range p.events {
		if e.EventType == eventType {
			ids = append(ids, e.EntityId)
		}
	}
	return ids
}

type fixture struct {
	notebooks *fakeNotebookRepo
	notes     *fakeNoteRepo
	publisher *capturePublisher

	notebookService INotebookService
	noteService     INoteService
}

func newFixture() *fixture {
	notebooks := newFakeNotebookRepo()
	notes := newFakeNoteRepo()
	publisher := &capturePublisher{}
	factory := &fakeFactory{uow: &fakeUnitOfWork{notebooks: notebooks, notes: notes}}

	return &fixture{
		notebooks:       notebooks,
		notes:           notes,
		publisher:       publisher,
		notebookService: NewNotebookService(factory, publisher, noopLogger{}),
		noteService:     NewNoteService(factory, publisher, noopLogger{}),
	}
}
