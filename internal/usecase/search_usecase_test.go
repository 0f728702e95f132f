package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/voicecart/search-backend/internal/domain"
	"github.com/voicecart/search-backend/pkg/e"
)

type ucFixture struct {
	uc       *SearchUseCase
	queries  *fakeQueryRepo
	results  *fakeResultRepo
	saved    *fakeSavedItemRepo
	cache    *fakeCacheRepo
	notifier *fakeNotifier
}

func newUCFixture() *ucFixture {
	queries := newFakeQueryRepo()
	results := newFakeResultRepo()
	saved := newFakeSavedItemRepo()
	cache := newFakeCacheRepo()
	notifier := &fakeNotifier{}

	uc := NewSearchUC(queries, results, saved, cache, notifier, fakeDB{}, noopLogger{})

	return &ucFixture{
		uc:       uc,
		queries:  queries,
		results:  results,
		saved:    saved,
		cache:    cache,
		notifier: notifier,
	}
}

func int64Ptr(v int64) *int64       { return &v }
func float64Ptr(v float64) *float64 { return &v }

func seedQuery(f *ucFixture, id, owner string, status domain.QueryStatus) {
	q := domain.NewQuery(id, owner, "usb microphone", domain.Preferences{})
	q.Status = status
	f.queries.put(q)
}

func seedResult(f *ucFixture, id, queryID string, price int64) {
	f.results.put(&domain.Result{
		ID:         id,
		QueryID:    queryID,
		Title:      "item " + id,
		ProductURL: "https://shop.example.com/" + id,
		PriceCents: price,
		Currency:   "USD",
		Source:     "shopmart",
		SearchRank: 1,
		SystemRank: 1,
	})
}

func TestSubmitSearchValidation(t *testing.T) {
	f := newUCFixture()
	ctx := context.Background()

	cases := []struct {
		name string
		req  *SubmitSearchReq
		want error
	}{
		{
			name: "empty search text",
			req:  NewSubmitSearchReq("user-1", "   ", domain.Preferences{}),
			want: e.ErrEmptySearchText,
		},
		{
			name: "missing caller",
			req:  NewSubmitSearchReq("", "headphones", domain.Preferences{}),
			want: e.ErrUnauthenticated,
		},
		{
			name: "negative min price",
			req: NewSubmitSearchReq("user-1", "headphones", domain.Preferences{
				MinPriceCents: int64Ptr(-100),
			}),
			want: e.ErrInvalidPrice,
		},
		{
			name: "min price above max price",
			req: NewSubmitSearchReq("user-1", "headphones", domain.Preferences{
				MinPriceCents: int64Ptr(5000),
				MaxPriceCents: int64Ptr(1000),
			}),
			want: e.ErrInvalidPriceRange,
		},
		{
			name: "rating out of range",
			req: NewSubmitSearchReq("user-1", "headphones", domain.Preferences{
				MinRating: float64Ptr(5.5),
			}),
			want: e.ErrInvalidRating,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.SubmitSearch(ctx, tc.req)
			if !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestSubmitSearchCreatesPendingQuery(t *testing.T) {
	f := newUCFixture()

	res, err := f.uc.SubmitSearch(context.Background(), NewSubmitSearchReq("user-1", "usb microphone", domain.Preferences{}))
	if err != nil {
		t.Fatalf("SubmitSearch: %v", err)
	}

	if res.Status != domain.QueryPending {
		t.Errorf("status = %s, want %s", res.Status, domain.QueryPending)
	}

	stored, err := f.queries.GetByID(context.Background(), res.QueryID)
	if err != nil {
		t.Fatalf("query not stored: %v", err)
	}
	if stored.OwnerID != "user-1" || stored.Status != domain.QueryPending {
		t.Errorf("stored query = %+v", stored)
	}
}

func TestGetQueryStatusChecksOwnerOnCacheHit(t *testing.T) {
	f := newUCFixture()
	seedQuery(f, "q-1", "user-1", domain.QueryCompleted)

	f.cache.SetQueryStatus(context.Background(), &QueryStatusInfo{
		ID:      "q-1",
		OwnerID: "user-1",
		Status:  domain.QueryCompleted,
	})

	if _, err := f.uc.GetQueryStatus(context.Background(), "q-1", "intruder"); !errors.Is(err, e.ErrForbidden) {
		t.Errorf("foreign caller on cache hit: got %v, want %v", err, e.ErrForbidden)
	}

	info, err := f.uc.GetQueryStatus(context.Background(), "q-1", "user-1")
	if err != nil {
		t.Fatalf("owner read: %v", err)
	}
	if info.Status != domain.QueryCompleted {
		t.Errorf("status = %s, want %s", info.Status, domain.QueryCompleted)
	}
}

func TestGetQueryStatusUnknownQuery(t *testing.T) {
	f := newUCFixture()

	if _, err := f.uc.GetQueryStatus(context.Background(), "missing", "user-1"); !errors.Is(err, e.ErrQueryNotFound) {
		t.Errorf("got %v, want %v", err, e.ErrQueryNotFound)
	}
}

func TestListQueriesIsolatedByOwner(t *testing.T) {
	f := newUCFixture()
	seedQuery(f, "q-1", "user-1", domain.QueryCompleted)
	seedQuery(f, "q-2", "user-1", domain.QueryPending)
	seedQuery(f, "q-3", "user-2", domain.QueryCompleted)

	infos, err := f.uc.ListQueries(context.Background(), &ListQueriesReq{CallerID: "user-1", Limit: 10})
	if err != nil {
		t.Fatalf("ListQueries: %v", err)
	}

	if len(infos) != 2 {
		t.Fatalf("got %d queries, want 2", len(infos))
	}
	for _, info := range infos {
		if info.OwnerID != "user-1" {
			t.Errorf("leaked query of %s", info.OwnerID)
		}
	}
}

func TestListQueriesStatusFilter(t *testing.T) {
	f := newUCFixture()
	seedQuery(f, "q-1", "user-1", domain.QueryCompleted)
	seedQuery(f, "q-2", "user-1", domain.QueryPending)

	pending := domain.QueryPending
	infos, err := f.uc.ListQueries(context.Background(), &ListQueriesReq{CallerID: "user-1", Status: &pending, Limit: 10})
	if err != nil {
		t.Fatalf("ListQueries: %v", err)
	}

	if len(infos) != 1 || infos[0].ID != "q-2" {
		t.Errorf("got %+v, want only q-2", infos)
	}
}

func TestDeleteQueryCascadesResults(t *testing.T) {
	f := newUCFixture()
	seedQuery(f, "q-1", "user-1", domain.QueryCompleted)
	seedResult(f, "r-1", "q-1", 1000)
	seedResult(f, "r-2", "q-1", 2000)
	seedResult(f, "r-3", "q-1", 3000)

	res, err := f.uc.DeleteQuery(context.Background(), "q-1", "user-1")
	if err != nil {
		t.Fatalf("DeleteQuery: %v", err)
	}
	if res.DeletedResultCount != 3 {
		t.Errorf("deleted = %d, want 3", res.DeletedResultCount)
	}

	if _, err := f.queries.GetByID(context.Background(), "q-1"); !errors.Is(err, e.ErrQueryNotFound) {
		t.Errorf("query still present: %v", err)
	}

	found := false
	for _, id := range f.cache.deletedIDs() {
		if id == "q-1" {
			found = true
		}
	}
	if !found {
		t.Error("query status cache was not invalidated")
	}
}

func TestDeleteQueryForbiddenForForeignCaller(t *testing.T) {
	f := newUCFixture()
	seedQuery(f, "q-1", "user-1", domain.QueryCompleted)
	seedResult(f, "r-1", "q-1", 1000)

	if _, err := f.uc.DeleteQuery(context.Background(), "q-1", "intruder"); !errors.Is(err, e.ErrForbidden) {
		t.Fatalf("got %v, want %v", err, e.ErrForbidden)
	}

	if _, err := f.queries.GetByID(context.Background(), "q-1"); err != nil {
		t.Error("query must survive a forbidden delete")
	}
}

func TestRefreshQueryRequiresTerminalStatus(t *testing.T) {
	f := newUCFixture()
	seedQuery(f, "q-1", "user-1", domain.QuerySearching)

	if err := f.uc.RefreshQuery(context.Background(), "q-1", "user-1"); !errors.Is(err, e.ErrQueryNotTerminal) {
		t.Errorf("got %v, want %v", err, e.ErrQueryNotTerminal)
	}
}

func TestRefreshQueryResetsTerminalQuery(t *testing.T) {
	f := newUCFixture()
	seedQuery(f, "q-1", "user-1", domain.QueryFailed)

	if err := f.uc.RefreshQuery(context.Background(), "q-1", "user-1"); err != nil {
		t.Fatalf("RefreshQuery: %v", err)
	}

	stored, _ := f.queries.GetByID(context.Background(), "q-1")
	if stored.Status != domain.QueryPending {
		t.Errorf("status = %s, want %s", stored.Status, domain.QueryPending)
	}
	if stored.FailureReason != nil {
		t.Error("failure reason must be cleared on refresh")
	}

	updates := f.notifier.published()
	if len(updates) != 1 || updates[0].Status != domain.QueryPending {
		t.Errorf("published updates = %+v, want single pending update", updates)
	}
}

func TestListResultsOwnership(t *testing.T) {
	f := newUCFixture()
	seedQuery(f, "q-1", "user-1", domain.QueryCompleted)
	seedResult(f, "r-1", "q-1", 1000)

	if _, err := f.uc.ListResults(context.Background(), &ListResultsReq{CallerID: "intruder", QueryID: "q-1"}); !errors.Is(err, e.ErrForbidden) {
		t.Errorf("got %v, want %v", err, e.ErrForbidden)
	}

	results, err := f.uc.ListResults(context.Background(), &ListResultsReq{CallerID: "user-1", QueryID: "q-1"})
	if err != nil {
		t.Fatalf("ListResults: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("got %d results, want 1", len(results))
	}
}

func TestRerankPersistsNewOrder(t *testing.T) {
	f := newUCFixture()
	seedQuery(f, "q-1", "user-1", domain.QueryCompleted)
	f.results.put(&domain.Result{ID: "r-1", QueryID: "q-1", ProductURL: "u1", PriceCents: 3000, SystemRank: 1})
	f.results.put(&domain.Result{ID: "r-2", QueryID: "q-1", ProductURL: "u2", PriceCents: 1000, SystemRank: 2})

	reranked, err := f.uc.Rerank(context.Background(), &RerankReq{
		CallerID: "user-1",
		QueryID:  "q-1",
		Strategy: domain.RankPriceAsc,
	})
	if err != nil {
		t.Fatalf("Rerank: %v", err)
	}

	if reranked[0].ID != "r-2" || reranked[0].SystemRank != 1 {
		t.Errorf("cheapest result must rank first, got %+v", reranked[0])
	}

	stored, _ := f.results.ListByQuery(context.Background(), "q-1", nil)
	if stored[0].ID != "r-2" {
		t.Errorf("new order was not persisted, got %s first", stored[0].ID)
	}
}

func TestSaveResultOwnershipAndIdempotency(t *testing.T) {
	f := newUCFixture()
	seedQuery(f, "q-1", "user-1", domain.QueryCompleted)
	seedResult(f, "r-1", "q-1", 1500)

	if _, err := f.uc.SaveResult(context.Background(), "intruder", "r-1"); !errors.Is(err, e.ErrForbidden) {
		t.Fatalf("foreign save: got %v, want %v", err, e.ErrForbidden)
	}

	first, err := f.uc.SaveResult(context.Background(), "user-1", "r-1")
	if err != nil {
		t.Fatalf("SaveResult: %v", err)
	}
	if first.ResultID != "r-1" || first.PriceCents != 1500 {
		t.Errorf("snapshot = %+v", first)
	}

	second, err := f.uc.SaveResult(context.Background(), "user-1", "r-1")
	if err != nil {
		t.Fatalf("repeated SaveResult: %v", err)
	}
	if second.ID != first.ID {
		t.Error("repeated save must return the existing item")
	}
}

func TestDeleteSavedItemForbidden(t *testing.T) {
	f := newUCFixture()
	seedQuery(f, "q-1", "user-1", domain.QueryCompleted)
	seedResult(f, "r-1", "q-1", 1500)

	item, err := f.uc.SaveResult(context.Background(), "user-1", "r-1")
	if err != nil {
		t.Fatalf("SaveResult: %v", err)
	}

	if err := f.uc.DeleteSavedItem(context.Background(), "intruder", item.ID); !errors.Is(err, e.ErrForbidden) {
		t.Errorf("got %v, want %v", err, e.ErrForbidden)
	}

	if err := f.uc.DeleteSavedItem(context.Background(), "user-1", item.ID); err != nil {
		t.Errorf("owner delete: %v", err)
	}
}

func TestWatchQueryChecksOwnership(t *testing.T) {
	f := newUCFixture()
	seedQuery(f, "q-1", "user-1", domain.QuerySearching)

	if _, _, err := f.uc.WatchQuery(context.Background(), "q-1", "intruder"); !errors.Is(err, e.ErrForbidden) {
		t.Errorf("got %v, want %v", err, e.ErrForbidden)
	}

	ch, unsubscribe, err := f.uc.WatchQuery(context.Background(), "q-1", "user-1")
	if err != nil {
		t.Fatalf("WatchQuery: %v", err)
	}
	unsubscribe()

	if _, open := <-ch; open {
		t.Error("channel must be closed after unsubscribe")
	}
}
