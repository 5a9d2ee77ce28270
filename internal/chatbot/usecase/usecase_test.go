package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/upasthit/upasthit-api/internal/chatbot/entity"
	"github.com/upasthit/upasthit-api/internal/pkg/config"
	"github.com/upasthit/upasthit-api/internal/pkg/goerror"
	"github.com/upasthit/upasthit-api/internal/pkg/instrument"
	"github.com/upasthit/upasthit-api/internal/pkg/jwt"
	"github.com/upasthit/upasthit-api/internal/pkg/validator"
)

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

// fakeCache mirrors the Redis admission semantics against the fake clock so
// cooldown expiry can be driven by advancing time.
type fakeCache struct {
	clock *fakeClock

	counters map[string]int64
	cooldown map[int64]time.Time

	failIncr error
}

func newFakeCache(clk *fakeClock) *fakeCache {
	return &fakeCache{
		clock:    clk,
		counters: map[string]int64{},
		cooldown: map[int64]time.Time{},
	}
}

func (f *fakeCache) IncrDailyUsage(_ context.Context, subjectID int64, day string, _ time.Time) (int64, error) {
	if f.failIncr != nil {
		return 0, f.failIncr
	}
	f.counters[day]++
	return f.counters[day], nil
}

func (f *fakeCache) DecrDailyUsage(_ context.Context, subjectID int64, day string) error {
	f.counters[day]--
	return nil
}

func (f *fakeCache) GetDailyUsage(_ context.Context, subjectID int64, day string) (int64, error) {
	return f.counters[day], nil
}

func (f *fakeCache) AcquireCooldown(_ context.Context, subjectID int64, width time.Duration) (bool, error) {
	if until, ok := f.cooldown[subjectID]; ok && until.After(f.clock.now) {
		return false, nil
	}
	f.cooldown[subjectID] = f.clock.now.Add(width)
	return true, nil
}

func (f *fakeCache) CooldownTTL(_ context.Context, subjectID int64) (time.Duration, error) {
	until, ok := f.cooldown[subjectID]
	if !ok || !until.After(f.clock.now) {
		return 0, nil
	}
	return until.Sub(f.clock.now), nil
}

func (f *fakeCache) ReleaseCooldown(_ context.Context, subjectID int64) error {
	delete(f.cooldown, subjectID)
	return nil
}

type fakeDB struct {
	usage []entity.UsageEvent
	stats map[string]int64
}

func newFakeChatbotDB() *fakeDB {
	return &fakeDB{stats: map[string]int64{}}
}

func (f *fakeDB) InsertUsage(_ context.Context, usage entity.UsageEvent) error {
	f.usage = append(f.usage, usage)
	return nil
}

func (f *fakeDB) UpsertDailyStat(_ context.Context, day time.Time, tokens int64) error {
	f.stats[day.Format("2006-01-02")] += tokens
	return nil
}

func (f *fakeDB) CountUsageSince(_ context.Context, subjectID int64, since time.Time) (int64, error) {
	var n int64
	for _, u := range f.usage {
		if u.SubjectID == subjectID && !u.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (f *fakeDB) CountUsageTotal(_ context.Context, subjectID int64) (int64, error) {
	var n int64
	for _, u := range f.usage {
		if u.SubjectID == subjectID {
			n++
		}
	}
	return n, nil
}

func (f *fakeDB) GetUsagePage(_ context.Context, subjectID int64, limit, offset int32) ([]entity.UsageEvent, error) {
	items := make([]entity.UsageEvent, 0)
	for i := len(f.usage) - 1; i >= 0; i-- {
		if f.usage[i].SubjectID == subjectID {
			items = append(items, f.usage[i])
		}
	}
	if int(offset) >= len(items) {
		return nil, nil
	}
	items = items[offset:]
	if int(limit) < len(items) {
		items = items[:limit]
	}
	return items, nil
}

func (f *fakeDB) GetRecentQuestions(_ context.Context, subjectID int64, limit int32) ([]string, error) {
	page, err := f.GetUsagePage(context.Background(), subjectID, limit, 0)
	if err != nil {
		return nil, err
	}
	questions := make([]string, 0, len(page))
	for _, u := range page {
		questions = append(questions, u.Question)
	}
	return questions, nil
}

type fakeAnswering struct {
	answer Answer
	fail   error
	calls  int
}

func (f *fakeAnswering) Ask(_ context.Context, question string) (*Answer, error) {
	f.calls++
	if f.fail != nil {
		return nil, f.fail
	}
	a := f.answer
	return &a, nil
}

type fakeUID struct{ next int64 }

func (f *fakeUID) Generate() int64 {
	f.next++
	return f.next
}

type testPack struct {
	uc    *Usecase
	db    *fakeDB
	cache *fakeCache
	rag   *fakeAnswering
	clock *fakeClock
}

func newTestUsecase(t *testing.T) *testPack {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	cfg, err := config.NewViperFromBytes("yaml", []byte(
		"modules:\n  chatbot:\n    daily_quota: 10\n    cooldown_seconds: 120\n    answer_timeout_seconds: 30\n"))
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}

	clk := &fakeClock{now: time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)}
	db := newFakeChatbotDB()
	cache := newFakeCache(clk)
	rag := &fakeAnswering{answer: Answer{Text: "ohm's law relates voltage and current", TokensUsed: 42}}

	uc := New(Dependency{
		RepoDB:        db,
		RepoCache:     cache,
		RepoAnswering: rag,
		Validator:     v,
		Config:        cfg,
		UID:           &fakeUID{},
		Clock:         clk,
		Instrument:    instrument.NewNoop(),
	})

	return &testPack{uc: uc, db: db, cache: cache, rag: rag, clock: clk}
}

func studentCtx() context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{SubjectID: 101, Role: "student"})
}

func asGoError(t *testing.T, err error) *goerror.Error {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *goerror.Error, got %T: %v", err, err)
	}
	return gerr
}
