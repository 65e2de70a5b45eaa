package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"skillreel/internal/core/moderation"
	"skillreel/internal/modkit/repokit"
	perr "skillreel/internal/platform/errors"
	"skillreel/internal/platform/store"
	"skillreel/internal/services/moderation/domain"
	"skillreel/internal/services/moderation/repo"
)

type fakeSafety struct {
	flags map[string]bool
	err   error
	delay time.Duration
	calls int
	input string
}

func (f *fakeSafety) Name() string { return "fake-safety" }

func (f *fakeSafety) Moderate(ctx context.Context, text string) (map[string]bool, json.RawMessage, error) {
	f.calls++
	f.input = text
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		case <-time.After(f.delay):
		}
	}
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.flags, json.RawMessage(`{"results":[{"flagged":false}]}`), nil
}

type fakeText struct {
	out    string
	err    error
	calls  int
	system string
	user   string
	temp   float64
	max    int
}

func (f *fakeText) Name() string { return "fake-text" }

func (f *fakeText) CompleteJSON(_ context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	f.calls++
	f.system, f.user, f.temp, f.max = system, user, temperature, maxTokens
	if f.err != nil {
		return "", f.err
	}
	return f.out, nil
}

type fakePipe struct {
	res moderation.Result
	err error
}

func (f *fakePipe) Moderate(_ context.Context, req moderation.Request) (moderation.Result, error) {
	if f.err != nil {
		return moderation.Result{}, f.err
	}
	r := f.res
	r.VideoURL = req.VideoURL
	return r, nil
}

type fakeAudit struct {
	mu   sync.Mutex
	recs []domain.Record
	err  error
}

func (f *fakeAudit) Append(_ context.Context, rec domain.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recs = append(f.recs, rec)
	return f.err
}

// memRepo is an in-memory repo.Repo
type memRepo struct {
	mu        sync.Mutex
	recs      map[string]domain.Record
	jobs      []domain.Job
	done      map[string]bool
	failed    map[string]string
	upsertErr   error
	completeErr error
	leased      bool
}

func newMemRepo() *memRepo {
	return &memRepo{recs: map[string]domain.Record{}, done: map[string]bool{}, failed: map[string]string{}}
}

func (m *memRepo) Upsert(_ context.Context, rec domain.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.recs[rec.VideoID] = rec
	return nil
}

func (m *memRepo) Get(_ context.Context, id string) (domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recs[id]
	if !ok {
		return domain.Record{}, perr.ErrNotFound
	}
	return r, nil
}

func (m *memRepo) ListReview(_ context.Context, limit int) ([]domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Record
	for _, r := range m.recs {
		if r.NeedsReview {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ModeratedAt.After(out[j].ModeratedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memRepo) EnqueueJob(_ context.Context, in domain.ModerateInput) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := "job-" + in.VideoID
	m.jobs = append(m.jobs, domain.Job{JobID: id, VideoID: in.VideoID, VideoURL: in.VideoURL, Title: in.Title, Description: in.Description})
	return id, nil
}

func (m *memRepo) LeaseJobs(_ context.Context, workerID string, limit int, _ time.Duration) ([]domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.leased {
		return nil, nil
	}
	m.leased = true
	out := m.jobs
	if len(out) > limit {
		out = out[:limit]
	}
	for i := range out {
		out[i].LeasedBy = workerID
	}
	return out, nil
}

func (m *memRepo) CompleteJob(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.completeErr != nil {
		return m.completeErr
	}
	m.done[id] = true
	return nil
}

func (m *memRepo) FailJob(_ context.Context, id, lastErr string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed[id] = lastErr
	return nil
}

func (m *memRepo) finished() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.done) + len(m.failed)
}

func binderFor(r *memRepo) repokit.Binder[repo.Repo] {
	return repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return r })
}

// nopTx satisfies repokit.TxRunner; memRepo never touches it
type nopTx struct{}

func (nopTx) Exec(context.Context, string, ...any) (store.CommandTag, error) {
	return nil, errors.New("nopTx")
}

func (nopTx) Query(context.Context, string, ...any) (store.Rows, error) {
	return nil, errors.New("nopTx")
}

func (nopTx) QueryRow(context.Context, string, ...any) store.Row { return nil }

func (nopTx) Tx(ctx context.Context, fn func(q store.RowQuerier) error) error {
	return fn(nopTx{})
}

// txSpy counts transactions and how many ended in rollback
type txSpy struct {
	nopTx
	mu         sync.Mutex
	opened     int
	rolledBack int
}

func (t *txSpy) Tx(ctx context.Context, fn func(q store.RowQuerier) error) error {
	err := fn(nopTx{})
	t.mu.Lock()
	defer t.mu.Unlock()
	t.opened++
	if err != nil {
		t.rolledBack++
	}
	return err
}

func strp(s string) *string { return &s }
