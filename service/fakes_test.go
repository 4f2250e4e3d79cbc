package service

import (
	"context"
	"database/sql"
	"sort"

	"github.com/questlog/quest-service/data"
	"github.com/questlog/quest-service/data/repository"
	"github.com/questlog/quest-service/logging/logger"
	"github.com/questlog/quest-service/structs"
)

// In-memory repositories mirroring the store contracts, including the
// owner scoping and sql.ErrNoRows signalling of the real ones.

type fakeQuestRepo struct {
	quests map[string]*structs.Quest
	tags   map[string][]string
}

func newFakeQuestRepo() *fakeQuestRepo {
	return &fakeQuestRepo{
		quests: map[string]*structs.Quest{},
		tags:   map[string][]string{},
	}
}

func (r *fakeQuestRepo) Create(_ context.Context, q *structs.Quest, tags []string) error {
	cp := *q
	r.quests[q.ID] = &cp
	r.tags[q.ID] = append([]string{}, tags...)
	return nil
}

func (r *fakeQuestRepo) FindByOwner(_ context.Context, id, userID string) (*structs.Quest, error) {
	q, ok := r.quests[id]
	if !ok || q.UserID != userID {
		return nil, sql.ErrNoRows
	}
	cp := *q
	cp.Tags = []*structs.QuestTag{}
	for _, name := range r.tags[id] {
		cp.Tags = append(cp.Tags, &structs.QuestTag{QuestID: id, TagName: name})
	}
	cp.Steps = []*structs.QuestStep{}
	return &cp, nil
}

func (r *fakeQuestRepo) List(_ context.Context, f repository.QuestFilter) ([]*structs.Quest, int, error) {
	var matched []*structs.Quest
	for _, q := range r.quests {
		if q.UserID != f.UserID {
			continue
		}
		if f.Status != "" && string(q.Status) != f.Status {
			continue
		}
		if f.Priority != "" && string(q.Priority) != f.Priority {
			continue
		}
		if f.Difficulty != "" && string(q.Difficulty) != f.Difficulty {
			continue
		}
		cp := *q
		cp.Tags = []*structs.QuestTag{}
		cp.Steps = []*structs.QuestStep{}
		matched = append(matched, &cp)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if f.Offset >= total {
		return []*structs.Quest{}, total, nil
	}
	end := f.Offset + f.Limit
	if end > total {
		end = total
	}
	return matched[f.Offset:end], total, nil
}

func (r *fakeQuestRepo) Update(_ context.Context, q *structs.Quest, tags []string, replaceTags bool) error {
	stored, ok := r.quests[q.ID]
	if !ok || stored.UserID != q.UserID {
		return sql.ErrNoRows
	}
	cp := *q
	r.quests[q.ID] = &cp
	if replaceTags {
		r.tags[q.ID] = append([]string{}, tags...)
	}
	return nil
}

func (r *fakeQuestRepo) Delete(_ context.Context, id, userID string) error {
	q, ok := r.quests[id]
	if !ok || q.UserID != userID {
		return sql.ErrNoRows
	}
	delete(r.quests, id)
	delete(r.tags, id)
	return nil
}

func (r *fakeQuestRepo) TagsByQuest(_ context.Context, questID string) ([]*structs.QuestTag, error) {
	tags := []*structs.QuestTag{}
	for _, name := range r.tags[questID] {
		tags = append(tags, &structs.QuestTag{QuestID: questID, TagName: name})
	}
	return tags, nil
}

type fakeCategoryRepo struct {
	// category id -> owning user id
	owners map[string]string
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{owners: map[string]string{}}
}

func (r *fakeCategoryRepo) ExistsForUser(_ context.Context, id, userID string) (bool, error) {
	owner, ok := r.owners[id]
	return ok && owner == userID, nil
}

type fakeUserRepo struct {
	users map[string]*structs.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*structs.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *structs.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

func (r *fakeUserRepo) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

type testEnv struct {
	svc        *Service
	questRepo  *fakeQuestRepo
	catRepo    *fakeCategoryRepo
	userRepo   *fakeUserRepo
	userID     string
	categoryID string
}

func newTestEnv() *testEnv {
	env := &testEnv{
		questRepo:  newFakeQuestRepo(),
		catRepo:    newFakeCategoryRepo(),
		userRepo:   newFakeUserRepo(),
		userID:     "11111111-1111-4111-8111-111111111111",
		categoryID: "22222222-2222-4222-8222-222222222222",
	}
	env.userRepo.users[env.userID] = &structs.User{ID: env.userID, Email: "hero@example.com", Username: "hero"}
	env.catRepo.owners[env.categoryID] = env.userID

	d := &data.Data{
		QuestRepo:    env.questRepo,
		CategoryRepo: env.catRepo,
		UserRepo:     env.userRepo,
	}
	env.svc = New(d, logger.Discard())
	return env
}
