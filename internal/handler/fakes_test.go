package handler

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"campaign/backend/internal/models"
	"campaign/backend/internal/repository"
)

type fakeUsers struct {
	mu     sync.Mutex
	rows   map[uint]models.User
	nextID uint
	err    error
}

func newFakeUsers() *fakeUsers { return &fakeUsers{rows: map[uint]models.User{}} }

func (f *fakeUsers) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(f.rows)), nil
}

func (f *fakeUsers) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.rows {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) List(ctx context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.User, 0, len(f.rows))
	for _, u := range f.rows {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (f *fakeUsers) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, u := range f.rows {
		if u.Username == user.Username {
			return repository.ErrUsernameTaken
		}
	}
	f.nextID++
	user.ID = f.nextID
	f.rows[user.ID] = *user
	return nil
}

func (f *fakeUsers) UpdateRole(ctx context.Context, id uint, role models.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Role = role
	f.rows[id] = u
	return nil
}

func (f *fakeUsers) UpdatePassword(ctx context.Context, id uint, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Password = hash
	f.rows[id] = u
	return nil
}

func (f *fakeUsers) Delete(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

type fakeTeams struct {
	mu     sync.Mutex
	rows   []models.Team
	nextID uint
	err    error
}

func (f *fakeTeams) List(ctx context.Context) ([]models.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Team(nil), f.rows...), nil
}

func (f *fakeTeams) Create(ctx context.Context, team *models.Team) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.nextID++
	team.ID = f.nextID
	team.CreatedAt = time.Now()
	f.rows = append(f.rows, *team)
	return nil
}

func (f *fakeTeams) Rename(ctx context.Context, id uint, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].Name = name
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeTeams) Delete(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeRegistrations struct {
	mu     sync.Mutex
	rows   map[uint]models.Registration
	nextID uint
	clock  time.Time
	err    error
}

func newFakeRegistrations() *fakeRegistrations {
	return &fakeRegistrations{rows: map[uint]models.Registration{}, clock: time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)}
}

func (f *fakeRegistrations) Create(ctx context.Context, reg *models.Registration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.nextID++
	f.clock = f.clock.Add(time.Minute)
	reg.ID = f.nextID
	reg.CreatedAt = f.clock
	f.rows[reg.ID] = *reg
	return nil
}

func (f *fakeRegistrations) List(ctx context.Context, opts repository.ListOptions) ([]models.Registration, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, 0, f.err
	}
	q := strings.ToLower(strings.TrimSpace(opts.Query))
	var out []models.Registration
	for _, r := range f.rows {
		if q != "" && !strings.Contains(strings.ToLower(r.Team+" "+r.InGameName+" "+r.Tanks), q) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if opts.SortByTeam && out[i].Team != out[j].Team {
			return out[i].Team < out[j].Team
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	total := int64(len(out))
	if opts.Page.Limit > 0 {
		start := (opts.Page.Number - 1) * opts.Page.Limit
		if start > len(out) {
			start = len(out)
		}
		end := start + opts.Page.Limit
		if end > len(out) {
			end = len(out)
		}
		out = out[start:end]
	}
	return out, total, nil
}

func (f *fakeRegistrations) Update(ctx context.Context, id uint, fields repository.RegistrationFields) (*models.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	r, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	r.Team, r.InGameName, r.Tanks = fields.Team, fields.InGameName, fields.Tanks
	f.rows[id] = r
	return &r, nil
}

func (f *fakeRegistrations) Delete(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeRegistrations) get(id uint) (models.Registration, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[id]
	return r, ok
}
