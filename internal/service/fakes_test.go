package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/aliskhannn/lingua-progress/internal/domain/entities"
)

var errStorage = errors.New("storage unavailable")

type fakeProgressRepo struct {
	mu      sync.Mutex
	records map[int64]*entities.Progress
	incrErr error
	creates int
	saves   int
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{records: map[int64]*entities.Progress{}}
}

func clone(p *entities.Progress) *entities.Progress {
	c := *p
	for _, cat := range entities.Categories {
		b := c.Bucket(cat)
		b.Data = append([]string{}, b.Data...)
	}
	return &c
}

func (r *fakeProgressRepo) Get(_ context.Context, userID int64) (*entities.Progress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.records[userID]
	if !ok {
		return nil, entities.ErrProgressNotFound
	}
	return clone(p), nil
}

func (r *fakeProgressRepo) Create(_ context.Context, p *entities.Progress) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[p.UserID]; !ok {
		r.records[p.UserID] = clone(p)
		r.creates++
	}
	return nil
}

func (r *fakeProgressRepo) Save(_ context.Context, p *entities.Progress) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.records[p.UserID]
	if !ok {
		return entities.ErrProgressNotFound
	}
	next := clone(p)
	next.AchievementsUnlocked = cur.AchievementsUnlocked
	r.records[p.UserID] = next
	r.saves++
	return nil
}

func (r *fakeProgressRepo) IncrementAchievementsUnlocked(_ context.Context, userID int64, n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.incrErr != nil {
		return r.incrErr
	}
	p, ok := r.records[userID]
	if !ok {
		return entities.ErrProgressNotFound
	}
	p.AchievementsUnlocked += n
	return nil
}

func (r *fakeProgressRepo) counter(userID int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.records[userID].AchievementsUnlocked
}

type fakeAchievementRepo struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]*entities.Achievement
	clock  time.Time
}

func newFakeAchievementRepo() *fakeAchievementRepo {
	return &fakeAchievementRepo{items: map[int64]*entities.Achievement{}, clock: testNow.Add(-24 * time.Hour)}
}

func (r *fakeAchievementRepo) Create(_ context.Context, a *entities.Achievement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.Code == a.Code {
			return entities.ErrAchievementCodeExists
		}
	}
	r.nextID++
	r.clock = r.clock.Add(time.Second)
	a.ID = r.nextID
	a.CreatedAt, a.UpdatedAt = r.clock, r.clock
	c := *a
	r.items[a.ID] = &c
	return nil
}

func (r *fakeAchievementRepo) Update(_ context.Context, a *entities.Achievement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.items[a.ID]
	if !ok {
		return entities.ErrAchievementNotFound
	}
	a.CreatedAt = cur.CreatedAt
	a.UpdatedAt = r.clock
	c := *a
	r.items[a.ID] = &c
	return nil
}

func (r *fakeAchievementRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return entities.ErrAchievementNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeAchievementRepo) Get(_ context.Context, id int64) (*entities.Achievement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return nil, entities.ErrAchievementNotFound
	}
	c := *a
	return &c, nil
}

// List returns entries in id order; the services sort them themselves.
func (r *fakeAchievementRepo) List(_ context.Context) ([]*entities.Achievement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entities.Achievement, 0, len(r.items))
	for _, a := range r.items {
		c := *a
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type unlockKey struct{ user, achievement int64 }

// fakeUnlockRepo enforces (user, achievement) uniqueness like the real table.
type fakeUnlockRepo struct {
	mu        sync.Mutex
	rows      map[unlockKey]*entities.Unlock
	catalog   *fakeAchievementRepo
	insertErr error
	// staleIDs makes UnlockedIDs return an empty set, simulating a sweep
	// that read the ledger before a concurrent sweep wrote to it.
	staleIDs bool
}

func newFakeUnlockRepo(catalog *fakeAchievementRepo) *fakeUnlockRepo {
	return &fakeUnlockRepo{rows: map[unlockKey]*entities.Unlock{}, catalog: catalog}
}

func (r *fakeUnlockRepo) Insert(_ context.Context, userID, achievementID int64, at time.Time) (*entities.Unlock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	k := unlockKey{userID, achievementID}
	if _, ok := r.rows[k]; ok {
		return nil, entities.ErrAlreadyUnlocked
	}
	u := &entities.Unlock{UserID: userID, AchievementID: achievementID, UnlockedAt: at}
	r.rows[k] = u
	c := *u
	return &c, nil
}

func (r *fakeUnlockRepo) UnlockedIDs(_ context.Context, userID int64) (map[int64]struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := map[int64]struct{}{}
	if r.staleIDs {
		return ids, nil
	}
	for k := range r.rows {
		if k.user == userID {
			ids[k.achievement] = struct{}{}
		}
	}
	return ids, nil
}

func (r *fakeUnlockRepo) ListByUser(ctx context.Context, userID int64) ([]entities.UnlockWithAchievement, error) {
	r.mu.Lock()
	var rows []entities.Unlock
	for k, u := range r.rows {
		if k.user == userID {
			rows = append(rows, *u)
		}
	}
	r.mu.Unlock()

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].UnlockedAt.Equal(rows[j].UnlockedAt) {
			return rows[i].UnlockedAt.After(rows[j].UnlockedAt)
		}
		return rows[i].AchievementID > rows[j].AchievementID
	})

	out := make([]entities.UnlockWithAchievement, 0, len(rows))
	for _, u := range rows {
		a, err := r.catalog.Get(ctx, u.AchievementID)
		if err != nil {
			return nil, err
		}
		out = append(out, entities.UnlockWithAchievement{Unlock: u, Achievement: *a})
	}
	return out, nil
}

func (r *fakeUnlockRepo) DeleteByAchievement(_ context.Context, achievementID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k := range r.rows {
		if k.achievement == achievementID {
			delete(r.rows, k)
			n++
		}
	}
	return n, nil
}

func (r *fakeUnlockRepo) MarkNotified(_ context.Context, userID, achievementID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[unlockKey{userID, achievementID}]
	if !ok {
		return entities.ErrUnlockNotFound
	}
	u.Notified = true
	return nil
}

func (r *fakeUnlockRepo) count(userID int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for k := range r.rows {
		if k.user == userID {
			n++
		}
	}
	return n
}

type fakeLessons struct {
	counts map[entities.Category]int
	err    error
}

func (l fakeLessons) CountByCategory(_ context.Context, c entities.Category) (int, error) {
	if l.err != nil {
		return 0, l.err
	}
	return l.counts[c], nil
}

type fakeTx struct {
	calls int
}

func (t *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type fakeResyncer struct {
	fixed int64
	err   error
	calls int
}

func (r *fakeResyncer) ResyncAchievementCounters(context.Context) (int64, error) {
	r.calls++
	return r.fixed, r.err
}
