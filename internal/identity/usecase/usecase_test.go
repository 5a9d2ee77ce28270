package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/upasthit/upasthit-api/internal/identity/entity"
	"github.com/upasthit/upasthit-api/internal/pkg/config"
	"github.com/upasthit/upasthit-api/internal/pkg/goerror"
	"github.com/upasthit/upasthit-api/internal/pkg/instrument"
	"github.com/upasthit/upasthit-api/internal/pkg/jwt"
	"github.com/upasthit/upasthit-api/internal/pkg/validator"
)

type fakeDB struct {
	students map[string]*entity.Subject
	teachers map[string]*entity.Subject
	byID     map[int64]*entity.Subject

	challenge *entity.OtpChallenge

	passwords map[int64]string

	failUpsert error
	failUpdate error
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		students:  map[string]*entity.Subject{},
		teachers:  map[string]*entity.Subject{},
		byID:      map[int64]*entity.Subject{},
		passwords: map[int64]string{},
	}
}

func (f *fakeDB) addSubject(s *entity.Subject) {
	switch s.Role {
	case entity.RoleStudent:
		f.students[s.RollNo] = s
	case entity.RoleTeacher:
		f.teachers[s.Email] = s
	}
	f.byID[s.ID] = s
}

func (f *fakeDB) GetStudentByRollNo(_ context.Context, rollNo string) (*entity.Subject, error) {
	if s, ok := f.students[rollNo]; ok {
		return s, nil
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) GetTeacherByEmail(_ context.Context, email string) (*entity.Subject, error) {
	if s, ok := f.teachers[email]; ok {
		return s, nil
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) GetSubjectByID(_ context.Context, id int64, role entity.Role) (*entity.Subject, error) {
	if s, ok := f.byID[id]; ok && s.Role == role {
		return s, nil
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) GetOtpChallenge(_ context.Context, subjectID int64, role entity.Role) (*entity.OtpChallenge, error) {
	if f.challenge == nil || f.challenge.SubjectID != subjectID || f.challenge.Role != role {
		return nil, goerror.ErrNotFound
	}
	c := *f.challenge
	return &c, nil
}

func (f *fakeDB) UpsertOtpChallenge(_ context.Context, challenge entity.OtpChallenge) error {
	if f.failUpsert != nil {
		return f.failUpsert
	}
	f.challenge = &challenge
	return nil
}

func (f *fakeDB) UpdatePassword(_ context.Context, id int64, role entity.Role, passwordHash string) error {
	if f.failUpdate != nil {
		return f.failUpdate
	}
	f.passwords[id] = passwordHash
	if s, ok := f.byID[id]; ok {
		s.PasswordHash = passwordHash
	}
	return nil
}

func (f *fakeDB) DeleteOtpChallenge(_ context.Context, id int64) error {
	if f.challenge != nil && f.challenge.ID == id {
		f.challenge = nil
	}
	return nil
}

type fakeMessaging struct {
	published []OtpIssuedEvent
	fail      error
}

func (f *fakeMessaging) PublishOtpIssued(_ context.Context, msg OtpIssuedEvent) error {
	if f.fail != nil {
		return f.fail
	}
	f.published = append(f.published, msg)
	return nil
}

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

// fakeHash is deterministic so tests can assert what got persisted.
type fakeHash struct{}

func (fakeHash) Hash(plaintext string) ([]byte, error) { return []byte("hashed:" + plaintext), nil }
func (fakeHash) Verify(hashed, plaintext string) bool  { return hashed == "hashed:"+plaintext }

type fakeOtp struct{ code string }

func (f *fakeOtp) Generate() (string, error) { return f.code, nil }

type fakeUID struct{ next int64 }

func (f *fakeUID) Generate() int64 {
	f.next++
	return f.next
}

type fakeJWT struct{ fail error }

func (f *fakeJWT) Generate(subjectID int64, role, email string) (string, error) {
	if f.fail != nil {
		return "", f.fail
	}
	return "token", nil
}

func (f *fakeJWT) Verify(string) (jwt.Claims, error) { return jwt.Claims{}, errors.New("not used") }

type testPack struct {
	uc    *Usecase
	db    *fakeDB
	mq    *fakeMessaging
	clock *fakeClock
}

func newTestUsecase(t *testing.T) *testPack {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	cfg, err := config.NewViperFromBytes("yaml", []byte("modules:\n  identity:\n    otp_ttl_minutes: 5\n"))
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}

	db := newFakeDB()
	mq := &fakeMessaging{}
	clk := &fakeClock{now: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)}

	uc := New(Dependency{
		RepoDB:        db,
		RepoMessaging: mq,
		Validator:     v,
		Config:        cfg,
		Bcrypt:        fakeHash{},
		OtpHash:       fakeHash{},
		Otp:           &fakeOtp{code: "482915"},
		UID:           &fakeUID{},
		Clock:         clk,
		JWT:           &fakeJWT{},
		Instrument:    instrument.NewNoop(),
	})

	return &testPack{uc: uc, db: db, mq: mq, clock: clk}
}

func asGoError(t *testing.T, err error) *goerror.Error {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *goerror.Error, got %T: %v", err, err)
	}
	return gerr
}

func studentFixture() *entity.Subject {
	return &entity.Subject{
		ID:           101,
		Role:         entity.RoleStudent,
		RollNo:       "22BCS1042",
		Email:        "aisha@college.test",
		Name:         "Aisha",
		PasswordHash: "hashed:OldSecret1!",
	}
}

func teacherFixture() *entity.Subject {
	return &entity.Subject{
		ID:           201,
		Role:         entity.RoleTeacher,
		Email:        "rao@college.test",
		Name:         "Prof. Rao",
		PasswordHash: "hashed:TeachPass9!",
	}
}
