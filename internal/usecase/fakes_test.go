package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/voicecart/search-backend/internal/domain"
	"github.com/voicecart/search-backend/pkg/e"
)

// Транзакционные фейки: репозитории в тестах хранят всё в памяти,
// поэтому Commit/Rollback ничего не делают.

type fakeTx struct{ pgx.Tx }

func (fakeTx) Commit(_ context.Context) error   { return nil }
func (fakeTx) Rollback(_ context.Context) error { return nil }

type fakeDB struct{}

func (fakeDB) BeginTx(_ context.Context, _ pgx.TxOptions) (pgx.Tx, error) {
	return fakeTx{}, nil
}

type noopLogger struct{}

func (noopLogger) Debugf(_ string, _ ...any)          {}
func (noopLogger) Infof(_ string, _ ...any)           {}
func (noopLogger) Warnf(_ string, _ ...any)           {}
func (noopLogger) Errorf(_ error, _ string, _ ...any) {}

type fakeQueryRepo struct {
	mu      sync.Mutex
	queries map[string]*domain.Query
}

func newFakeQueryRepo() *fakeQueryRepo {
	return &fakeQueryRepo{queries: make(map[string]*domain.Query)}
}

func (r *fakeQueryRepo) put(q *domain.Query) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *q
	r.queries[q.ID] = &cp
}

func (r *fakeQueryRepo) Create(_ context.Context, query *domain.Query) (*domain.Query, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *query
	cp.Status = domain.QueryPending
	cp.CreatedAt = time.Now().UTC()
	r.queries[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (r *fakeQueryRepo) GetByID(_ context.Context, id string) (*domain.Query, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.queries[id]
	if !ok {
		return nil, e.ErrQueryNotFound
	}

	cp := *q
	return &cp, nil
}

func (r *fakeQueryRepo) ListByOwner(_ context.Context, ownerID string, status *domain.QueryStatus, limit int) ([]*domain.Query, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.Query
	for _, q := range r.queries {
		if q.OwnerID != ownerID {
			continue
		}
		if status != nil && q.Status != *status {
			continue
		}
		cp := *q
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *fakeQueryRepo) ClaimPending(_ context.Context, limit int) ([]*domain.Query, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var pending []*domain.Query
	for _, q := range r.queries {
		if q.Status == domain.QueryPending {
			pending = append(pending, q)
		}
	}

	sort.Slice(pending, func(i, j int) bool { return pending[i].CreatedAt.Before(pending[j].CreatedAt) })
	if len(pending) > limit {
		pending = pending[:limit]
	}

	out := make([]*domain.Query, 0, len(pending))
	for _, q := range pending {
		q.Status = domain.QuerySearching
		cp := *q
		out = append(out, &cp)
	}

	return out, nil
}

func (r *fakeQueryRepo) UpdateStatus(_ context.Context, id string, from, to domain.QueryStatus, failureReason *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.queries[id]
	if !ok {
		return e.ErrQueryNotFound
	}
	if q.Status != from || !from.CanTransitionTo(to) {
		return e.ErrInvalidStateTransition
	}

	q.Status = to
	q.FailureReason = failureReason
	return nil
}

func (r *fakeQueryRepo) ResetForRefresh(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.queries[id]
	if !ok {
		return e.ErrQueryNotFound
	}
	if !q.Status.IsTerminal() {
		return e.ErrQueryNotTerminal
	}

	q.Status = domain.QueryPending
	q.FailureReason = nil
	return nil
}

func (r *fakeQueryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.queries[id]; !ok {
		return e.ErrQueryNotFound
	}

	delete(r.queries, id)
	return nil
}

type fakeResultRepo struct {
	mu        sync.Mutex
	results   map[string][]*domain.Result // по query_id, в порядке system_rank
	upsertErr error
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{results: make(map[string][]*domain.Result)}
}

func (r *fakeResultRepo) put(result *domain.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *result
	r.results[result.QueryID] = append(r.results[result.QueryID], &cp)
}

func (r *fakeResultRepo) UpsertBatch(_ context.Context, queryID string, results []*domain.Result) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.upsertErr != nil {
		return 0, r.upsertErr
	}

	byURL := make(map[string]int)
	for i, existing := range r.results[queryID] {
		byURL[existing.ProductURL] = i
	}

	var touched int64
	for _, result := range results {
		cp := *result
		if idx, ok := byURL[cp.ProductURL]; ok {
			cp.ID = r.results[queryID][idx].ID
			r.results[queryID][idx] = &cp
		} else {
			byURL[cp.ProductURL] = len(r.results[queryID])
			r.results[queryID] = append(r.results[queryID], &cp)
		}
		touched++
	}

	return touched, nil
}

func (r *fakeResultRepo) GetByID(_ context.Context, id string) (*domain.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, results := range r.results {
		for _, result := range results {
			if result.ID == id {
				cp := *result
				return &cp, nil
			}
		}
	}

	return nil, e.ErrResultNotFound
}

func (r *fakeResultRepo) ListByQuery(_ context.Context, queryID string, filter *ResultFilter) ([]*domain.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.Result
	for _, result := range r.results[queryID] {
		if filter != nil {
			if filter.MinPriceCents != nil && result.PriceCents < *filter.MinPriceCents {
				continue
			}
			if filter.MaxPriceCents != nil && result.PriceCents > *filter.MaxPriceCents {
				continue
			}
			if filter.MinRating != nil && (result.Rating == nil || *result.Rating < *filter.MinRating) {
				continue
			}
			if filter.Source != nil && result.Source != *filter.Source {
				continue
			}
		}
		cp := *result
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].SystemRank < out[j].SystemRank })
	if filter != nil && filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}

	return out, nil
}

func (r *fakeResultRepo) UpdateSystemRanks(_ context.Context, queryID string, results []*domain.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ranks := make(map[string]int32, len(results))
	for _, result := range results {
		ranks[result.ID] = result.SystemRank
	}

	for _, stored := range r.results[queryID] {
		if rank, ok := ranks[stored.ID]; ok {
			stored.SystemRank = rank
		}
	}

	return nil
}

func (r *fakeResultRepo) UpdateImageObjectKey(_ context.Context, resultID string, objectKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, results := range r.results {
		for _, result := range results {
			if result.ID == resultID {
				key := objectKey
				result.ImageObjectKey = &key
				return nil
			}
		}
	}

	return e.ErrResultNotFound
}

func (r *fakeResultRepo) DeleteByQuery(_ context.Context, queryID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := int64(len(r.results[queryID]))
	delete(r.results, queryID)
	return deleted, nil
}

type fakeSavedItemRepo struct {
	mu    sync.Mutex
	items map[string]*domain.SavedItem
}

func newFakeSavedItemRepo() *fakeSavedItemRepo {
	return &fakeSavedItemRepo{items: make(map[string]*domain.SavedItem)}
}

func (r *fakeSavedItemRepo) Save(_ context.Context, item *domain.SavedItem) (*domain.SavedItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.OwnerID == item.OwnerID && existing.ResultID == item.ResultID {
			cp := *existing
			return &cp, nil
		}
	}

	cp := *item
	cp.CreatedAt = time.Now().UTC()
	r.items[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (r *fakeSavedItemRepo) GetByID(_ context.Context, id string) (*domain.SavedItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, e.ErrSavedItemNotFound
	}

	cp := *item
	return &cp, nil
}

func (r *fakeSavedItemRepo) ListByOwner(_ context.Context, ownerID string, limit int) ([]*domain.SavedItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.SavedItem
	for _, item := range r.items {
		if item.OwnerID == ownerID {
			cp := *item
			out = append(out, &cp)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *fakeSavedItemRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return e.ErrSavedItemNotFound
	}

	delete(r.items, id)
	return nil
}

type fakeCacheRepo struct {
	mu      sync.Mutex
	entries map[string]*QueryStatusInfo
	deleted []string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{entries: make(map[string]*QueryStatusInfo)}
}

func (r *fakeCacheRepo) GetQueryStatus(_ context.Context, queryID string) (*QueryStatusInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	info, ok := r.entries[queryID]
	if !ok {
		return nil, nil
	}

	cp := *info
	return &cp, nil
}

func (r *fakeCacheRepo) SetQueryStatus(_ context.Context, info *QueryStatusInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *info
	r.entries[info.ID] = &cp
	return nil
}

func (r *fakeCacheRepo) DeleteQueryStatus(_ context.Context, queryIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range queryIDs {
		delete(r.entries, id)
		r.deleted = append(r.deleted, id)
	}

	return nil
}

func (r *fakeCacheRepo) deletedIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.deleted...)
}

type fakeNotifier struct {
	mu      sync.Mutex
	updates []QueryUpdate
}

func (n *fakeNotifier) PublishQueryUpdate(_ context.Context, update *QueryUpdate) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.updates = append(n.updates, *update)
	return nil
}

func (n *fakeNotifier) SubscribeQueryUpdates(_ context.Context, _ string) (<-chan QueryUpdate, func(), error) {
	ch := make(chan QueryUpdate)
	var once sync.Once
	return ch, func() { once.Do(func() { close(ch) }) }, nil
}

func (n *fakeNotifier) published() []QueryUpdate {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]QueryUpdate(nil), n.updates...)
}

type fakeProducer struct {
	mu     sync.Mutex
	events []LifecycleEvent
}

func (p *fakeProducer) PublishLifecycleEvent(_ context.Context, event *LifecycleEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, *event)
	return nil
}

func (p *fakeProducer) produced() []LifecycleEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]LifecycleEvent(nil), p.events...)
}

type fakeMirror struct {
	mu       sync.Mutex
	mirrored map[string]int
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{mirrored: make(map[string]int)}
}

func (m *fakeMirror) MirrorImages(queryID string, results []*domain.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.mirrored[queryID] += len(results)
}

func (m *fakeMirror) WaitForCleanup(_ context.Context) error { return nil }

func (m *fakeMirror) mirroredCount(queryID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.mirrored[queryID]
}

type fakeProvider struct {
	items []ProviderItem
	err   error
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Search(_ context.Context, _ *ProviderSearchReq) ([]ProviderItem, error) {
	if p.err != nil {
		return nil, p.err
	}

	return p.items, nil
}
