package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/upasthit/upasthit-api/internal/academic/entity"
	"github.com/upasthit/upasthit-api/internal/pkg/config"
	"github.com/upasthit/upasthit-api/internal/pkg/goerror"
	"github.com/upasthit/upasthit-api/internal/pkg/goroutine"
	"github.com/upasthit/upasthit-api/internal/pkg/idempotency"
	"github.com/upasthit/upasthit-api/internal/pkg/instrument"
	"github.com/upasthit/upasthit-api/internal/pkg/jwt"
	"github.com/upasthit/upasthit-api/internal/pkg/storage"
	"github.com/upasthit/upasthit-api/internal/pkg/validator"
)

type fakeDB struct {
	overall  *entity.OverallAttendance
	monthly  []entity.MonthlyAttendance
	subjects []entity.SubjectAttendance
	absent   []entity.AbsentStudent

	advisorClassID   int64
	advisorRows      []entity.AdvisorStudentAttendance
	advisorMonthSeen time.Time

	classID  int64
	batchIDs []int64
	noClass  bool

	studentRows []entity.TimetableRow
	teacherRows []entity.TimetableRow

	studentHome *entity.HomeProfile
	teacherHome *entity.HomeProfile

	announcements []entity.Announcement

	upserted       []entity.RosterRow
	upsertedIDs    map[string]int64
	upsertedHashes map[string]string
	createdCount   int
	updatedCount   int
	failUpsert     error

	timetableCalls int
}

func (f *fakeDB) GetOverallAttendance(context.Context, int64) (*entity.OverallAttendance, error) {
	return f.overall, nil
}

func (f *fakeDB) GetMonthlyAttendance(context.Context, int64) ([]entity.MonthlyAttendance, error) {
	return f.monthly, nil
}

func (f *fakeDB) GetSubjectAttendance(context.Context, int64) ([]entity.SubjectAttendance, error) {
	return f.subjects, nil
}

func (f *fakeDB) GetAbsentStudents(context.Context, int64, time.Time) ([]entity.AbsentStudent, error) {
	return f.absent, nil
}

func (f *fakeDB) GetAdvisorClassID(context.Context, int64) (int64, error) {
	if f.advisorClassID == 0 {
		return 0, goerror.ErrNotFound
	}
	return f.advisorClassID, nil
}

func (f *fakeDB) GetAdvisorClassAttendance(_ context.Context, _ int64, month time.Time) ([]entity.AdvisorStudentAttendance, error) {
	f.advisorMonthSeen = month
	return f.advisorRows, nil
}

func (f *fakeDB) GetStudentClassAndBatches(context.Context, int64) (int64, []int64, error) {
	if f.noClass {
		return 0, nil, goerror.ErrNotFound
	}
	return f.classID, f.batchIDs, nil
}

func (f *fakeDB) GetStudentTimetable(context.Context, int64, []int64) ([]entity.TimetableRow, error) {
	f.timetableCalls++
	return f.studentRows, nil
}

func (f *fakeDB) GetTeacherTimetable(context.Context, int64) ([]entity.TimetableRow, error) {
	f.timetableCalls++
	return f.teacherRows, nil
}

func (f *fakeDB) GetStudentHome(context.Context, int64) (*entity.HomeProfile, error) {
	if f.studentHome == nil {
		return nil, goerror.ErrNotFound
	}
	return f.studentHome, nil
}

func (f *fakeDB) GetTeacherHome(context.Context, int64) (*entity.HomeProfile, error) {
	if f.teacherHome == nil {
		return nil, goerror.ErrNotFound
	}
	return f.teacherHome, nil
}

func (f *fakeDB) InsertAnnouncement(_ context.Context, a entity.Announcement) error {
	f.announcements = append(f.announcements, a)
	return nil
}

func (f *fakeDB) ListAnnouncementsForStudent(_ context.Context, classID int64, batchIDs []int64, limit, offset int32) ([]entity.Announcement, error) {
	var out []entity.Announcement
	for _, a := range f.announcements {
		switch a.Audience {
		case entity.AudienceAll:
			out = append(out, a)
		case entity.AudienceClass:
			if a.ClassID != nil && *a.ClassID == classID {
				out = append(out, a)
			}
		case entity.AudienceBatch:
			for _, id := range batchIDs {
				if a.BatchID != nil && *a.BatchID == id {
					out = append(out, a)
					break
				}
			}
		}
	}
	return out, nil
}

func (f *fakeDB) ListAnnouncementsForTeacher(_ context.Context, teacherID int64, limit, offset int32) ([]entity.Announcement, error) {
	var out []entity.Announcement
	for _, a := range f.announcements {
		if a.Audience == entity.AudienceAll || (a.AuthorID == teacherID && a.AuthorRole == "teacher") {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeDB) DeleteAnnouncement(_ context.Context, id, authorID int64, authorRole string) error {
	for i, a := range f.announcements {
		if a.ID == id && a.AuthorID == authorID && a.AuthorRole == authorRole {
			f.announcements = append(f.announcements[:i], f.announcements[i+1:]...)
			return nil
		}
	}
	return goerror.ErrNotFound
}

func (f *fakeDB) UpsertStudents(_ context.Context, rows []entity.RosterRow, ids map[string]int64, passwordHashes map[string]string) (int, int, error) {
	if f.failUpsert != nil {
		return 0, 0, f.failUpsert
	}
	f.upserted = rows
	f.upsertedIDs = ids
	f.upsertedHashes = passwordHashes
	return f.createdCount, f.updatedCount, nil
}

// fakeCache is a plain in-memory JSON store so cache-aside paths are
// observable in tests.
type fakeCache struct {
	data map[string][]byte
	ttls map[string]time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeCache) GetJSON(_ context.Context, key string, dest any) bool {
	raw, ok := f.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value any, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	f.data[key] = raw
	f.ttls[key] = ttl
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) {
	for _, key := range keys {
		delete(f.data, key)
	}
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (f *fakeStorage) PutObject(_ context.Context, bucket, key string, r io.Reader, _ storage.PutOptions) (storage.ObjectInfo, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return storage.ObjectInfo{}, err
	}

	f.mu.Lock()
	f.objects[bucket+"/"+key] = raw
	f.mu.Unlock()

	return storage.ObjectInfo{Bucket: bucket, Key: key, Size: int64(len(raw))}, nil
}

func (f *fakeStorage) GetObject(context.Context, string, string) (io.ReadCloser, storage.ObjectInfo, error) {
	return nil, storage.ObjectInfo{}, errors.New("not used")
}

func (f *fakeStorage) DeleteObject(context.Context, string, string) error { return nil }

func (f *fakeStorage) PresignGet(context.Context, string, string, time.Duration) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeStorage) Close() error { return nil }

func (f *fakeStorage) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

// fakeIdemp remembers terminal states in memory, mirroring the Redis tracker.
type fakeIdemp struct {
	states map[string]idempotency.State
}

func newFakeIdemp() *fakeIdemp {
	return &fakeIdemp{states: map[string]idempotency.State{}}
}

func (f *fakeIdemp) Acquire(_ context.Context, key string, _ time.Duration) (idempotency.State, error) {
	state, ok := f.states[key]
	if !ok {
		f.states[key] = idempotency.StateInProgress
		return idempotency.StateNone, nil
	}
	return state, nil
}

func (f *fakeIdemp) MarkCompleted(_ context.Context, key string, _ time.Duration) error {
	f.states[key] = idempotency.StateCompleted
	return nil
}

func (f *fakeIdemp) MarkFailed(_ context.Context, key string, _ time.Duration) error {
	f.states[key] = idempotency.StateFailed
	return nil
}

func (f *fakeIdemp) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	state, err := f.Acquire(ctx, key, 0)
	if err != nil {
		return err
	}

	switch state {
	case idempotency.StateInProgress:
		return idempotency.ErrAlreadyInProgress
	case idempotency.StateCompleted:
		return idempotency.ErrAlreadyCompleted
	case idempotency.StateFailed:
		return idempotency.ErrAlreadyFailed
	}

	if err := fn(ctx); err != nil {
		f.MarkFailed(ctx, key, 0)
		return err
	}

	return f.MarkCompleted(ctx, key, 0)
}

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

type fakeHash struct{}

func (fakeHash) Hash(plaintext string) ([]byte, error) { return []byte("hashed:" + plaintext), nil }
func (fakeHash) Verify(hashed, plaintext string) bool  { return hashed == "hashed:"+plaintext }

type fakeUID struct{ next int64 }

func (f *fakeUID) Generate() int64 {
	f.next++
	return f.next
}

type testPack struct {
	uc        *Usecase
	db        *fakeDB
	cache     *fakeCache
	storage   *fakeStorage
	idemp     *fakeIdemp
	goroutine *goroutine.Manager
	clock     *fakeClock
}

func newTestUsecase(t *testing.T) *testPack {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	cfg, err := config.NewViperFromBytes("yaml", []byte(
		"storage:\n"+
			"  bucket: upasthit\n"+
			"modules:\n"+
			"  academic:\n"+
			"    timetable_cache_ttl_days: 7\n"+
			"    home_cache_ttl_days: 30\n"))
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}

	db := &fakeDB{}
	cch := newFakeCache()
	store := newFakeStorage()
	idemp := newFakeIdemp()
	mgr := goroutine.NewManager(4)
	clk := &fakeClock{now: time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)}

	uc := New(Dependency{
		RepoDB:      db,
		Cache:       cch,
		Storage:     store,
		Idempotency: idemp,
		Goroutine:   mgr,
		Validator:   v,
		Config:      cfg,
		Bcrypt:      fakeHash{},
		UID:         &fakeUID{},
		Clock:       clk,
		Instrument:  instrument.NewNoop(),
	})

	return &testPack{uc: uc, db: db, cache: cch, storage: store, idemp: idemp, goroutine: mgr, clock: clk}
}

func studentCtx() context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{SubjectID: 101, Role: "student", Email: "aisha@college.test"})
}

func teacherCtx() context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{SubjectID: 201, Role: "teacher", Email: "rao@college.test"})
}

func asGoError(t *testing.T, err error) *goerror.Error {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *goerror.Error, got %T: %v", err, err)
	}
	return gerr
}

func rosterCSV(rows ...string) io.Reader {
	var buf bytes.Buffer
	buf.WriteString("roll_no,name,email,class\n")
	for _, row := range rows {
		buf.WriteString(row + "\n")
	}
	return &buf
}
