package service

import (
	"context"
	"io"

	"github.com/gyansetu/gyansetu-backend/internal/domain"
	"github.com/gyansetu/gyansetu-backend/internal/ws"
	"github.com/gyansetu/gyansetu-backend/pkg/storage"
	"github.com/stretchr/testify/mock"
)

// --- Mock ProfileRepository ---

type mockProfileRepo struct {
	mock.Mock
}

func (m *mockProfileRepo) FindByID(id uint64) (*domain.Profile, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *mockProfileRepo) FindByEmail(email string) (*domain.Profile, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *mockProfileRepo) FindByIDs(ids []uint64) (map[uint64]*domain.Profile, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint64]*domain.Profile), args.Error(1)
}

func (m *mockProfileRepo) Create(profile *domain.Profile) error {
	return m.Called(profile).Error(0)
}

func (m *mockProfileRepo) UpdateProfile(id uint64, displayName string, bio *string) error {
	return m.Called(id, displayName, bio).Error(0)
}

func (m *mockProfileRepo) UpdateRole(id uint64, role domain.Role) error {
	return m.Called(id, role).Error(0)
}

func (m *mockProfileRepo) Leaderboard(limit int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}

// --- Mock CourseRepository ---

type mockCourseRepo struct {
	mock.Mock
}

func (m *mockCourseRepo) Create(course *domain.Course) error {
	return m.Called(course).Error(0)
}

func (m *mockCourseRepo) FindByID(id uint64) (*domain.Course, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *mockCourseRepo) List(page, limit int, keyword string) ([]domain.Course, int64, error) {
	args := m.Called(page, limit, keyword)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Course), args.Get(1).(int64), args.Error(2)
}

func (m *mockCourseRepo) Update(course *domain.Course) error {
	return m.Called(course).Error(0)
}

func (m *mockCourseRepo) Delete(id uint64) error {
	return m.Called(id).Error(0)
}

func (m *mockCourseRepo) Assign(courseID uint64, adminID *uint64) error {
	return m.Called(courseID, adminID).Error(0)
}

func (m *mockCourseRepo) Enroll(studentID, courseID uint64) error {
	return m.Called(studentID, courseID).Error(0)
}

func (m *mockCourseRepo) Unenroll(studentID, courseID uint64) error {
	return m.Called(studentID, courseID).Error(0)
}

func (m *mockCourseRepo) IsEnrolled(studentID, courseID uint64) (bool, error) {
	args := m.Called(studentID, courseID)
	return args.Bool(0), args.Error(1)
}

func (m *mockCourseRepo) EnrolledCourses(studentID uint64) ([]domain.Course, error) {
	args := m.Called(studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Course), args.Error(1)
}

func (m *mockCourseRepo) AccessibleCourseIDs(userID uint64) ([]uint64, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint64), args.Error(1)
}

// --- Mock QuestionRepository ---

type mockQuestionRepo struct {
	mock.Mock
}

func (m *mockQuestionRepo) Create(q *domain.Question) error {
	args := m.Called(q)
	if q.ID == 0 {
		q.ID = 100
	}
	return args.Error(0)
}

func (m *mockQuestionRepo) FindByID(id uint64) (*domain.Question, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// copy so callers can mutate freely
	q := *args.Get(0).(*domain.Question)
	return &q, args.Error(1)
}

func (m *mockQuestionRepo) List(filter domain.QuestionFilter, page, limit int) ([]domain.Question, int64, error) {
	args := m.Called(filter, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Question), args.Get(1).(int64), args.Error(2)
}

func (m *mockQuestionRepo) Update(q *domain.Question) error {
	return m.Called(q).Error(0)
}

func (m *mockQuestionRepo) IncrementViewCount(id uint64) error {
	return m.Called(id).Error(0)
}

func (m *mockQuestionRepo) Resolve(id uint64) error {
	return m.Called(id).Error(0)
}

func (m *mockQuestionRepo) SetBestAnswer(id uint64, answerID *uint64) error {
	return m.Called(id, answerID).Error(0)
}

func (m *mockQuestionRepo) Delete(id uint64) ([]string, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock AnswerRepository ---

type mockAnswerRepo struct {
	mock.Mock
}

func (m *mockAnswerRepo) Create(a *domain.Answer) error {
	args := m.Called(a)
	if a.ID == 0 {
		a.ID = 200
	}
	return args.Error(0)
}

func (m *mockAnswerRepo) FindByID(id uint64) (*domain.Answer, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	a := *args.Get(0).(*domain.Answer)
	return &a, args.Error(1)
}

func (m *mockAnswerRepo) ListByQuestion(questionID uint64) ([]domain.Answer, error) {
	args := m.Called(questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Answer), args.Error(1)
}

func (m *mockAnswerRepo) Update(a *domain.Answer) error {
	return m.Called(a).Error(0)
}

func (m *mockAnswerRepo) Delete(id uint64) ([]string, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockAnswerRepo) ToggleAccept(id uint64, bonus int) (*domain.AcceptResult, error) {
	args := m.Called(id, bonus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AcceptResult), args.Error(1)
}

// --- Mock ReplyRepository ---

type mockReplyRepo struct {
	mock.Mock
}

func (m *mockReplyRepo) Create(reply *domain.Reply) error {
	return m.Called(reply).Error(0)
}

func (m *mockReplyRepo) FindByID(id uint64) (*domain.Reply, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reply), args.Error(1)
}

func (m *mockReplyRepo) ListByAnswer(answerID uint64) ([]domain.Reply, error) {
	args := m.Called(answerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reply), args.Error(1)
}

func (m *mockReplyRepo) Update(reply *domain.Reply) error {
	return m.Called(reply).Error(0)
}

func (m *mockReplyRepo) Delete(id uint64) error {
	return m.Called(id).Error(0)
}

// --- Mock VoteRepository ---

type mockVoteRepo struct {
	mock.Mock
}

func (m *mockVoteRepo) Apply(cmd domain.VoteCommand) (*domain.VoteResult, error) {
	args := m.Called(cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VoteResult), args.Error(1)
}

func (m *mockVoteRepo) Scores(target domain.VoteTarget, ids []uint64) (map[uint64]int, error) {
	args := m.Called(target, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint64]int), args.Error(1)
}

func (m *mockVoteRepo) UserVotes(target domain.VoteTarget, userID uint64, ids []uint64) (map[uint64]int, error) {
	args := m.Called(target, userID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint64]int), args.Error(1)
}

func (m *mockVoteRepo) Upvoters(target domain.VoteTarget, ids []uint64) (map[uint64][]uint64, error) {
	args := m.Called(target, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint64][]uint64), args.Error(1)
}

// --- Mock KarmaRepository ---

type mockKarmaRepo struct {
	mock.Mock
}

func (m *mockKarmaRepo) History(userID uint64, page, limit int) ([]domain.KarmaLog, int64, error) {
	args := m.Called(userID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.KarmaLog), args.Get(1).(int64), args.Error(2)
}

// --- Mock ReportRepository ---

type mockReportRepo struct {
	mock.Mock
}

func (m *mockReportRepo) Create(report *domain.ModerationReport) error {
	return m.Called(report).Error(0)
}

func (m *mockReportRepo) FindByID(id uint64) (*domain.ModerationReport, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModerationReport), args.Error(1)
}

func (m *mockReportRepo) List(status domain.ReportStatus, page, limit int) ([]domain.ModerationReport, int64, error) {
	args := m.Called(status, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.ModerationReport), args.Get(1).(int64), args.Error(2)
}

func (m *mockReportRepo) Delete(id uint64) error {
	return m.Called(id).Error(0)
}

func (m *mockReportRepo) ResolveQuestion(questionID uint64) error {
	return m.Called(questionID).Error(0)
}

// --- Mock NotificationRepository ---

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) Create(n *domain.Notification) error {
	return m.Called(n).Error(0)
}

func (m *mockNotificationRepo) FindByID(id uint64) (*domain.Notification, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *mockNotificationRepo) List(userID uint64, offset, limit int) ([]domain.Notification, int64, error) {
	args := m.Called(userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *mockNotificationRepo) UnreadCount(userID uint64) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) MarkSeen(id uint64) error {
	return m.Called(id).Error(0)
}

func (m *mockNotificationRepo) MarkAllSeen(userID uint64) error {
	return m.Called(userID).Error(0)
}

func (m *mockNotificationRepo) Delete(id uint64) error {
	return m.Called(id).Error(0)
}

// --- Mock NotificationService ---

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ev domain.NotificationEvent) {
	m.Called(ev)
}

func (m *mockNotifier) List(userID uint64, page, limit int) (*domain.NotificationList, error) {
	args := m.Called(userID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationList), args.Error(1)
}

func (m *mockNotifier) UnreadCount(userID uint64) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotifier) MarkSeen(userID, id uint64) error {
	return m.Called(userID, id).Error(0)
}

func (m *mockNotifier) MarkAllSeen(userID uint64) error {
	return m.Called(userID).Error(0)
}

func (m *mockNotifier) Delete(userID, id uint64) error {
	return m.Called(userID, id).Error(0)
}

// --- Mock Pusher ---

type mockPusher struct {
	mock.Mock
}

func (m *mockPusher) SendToUser(userID uint64, event *ws.Event) {
	m.Called(userID, event)
}

// --- Mock BlobStore ---

type mockBlobStore struct {
	mock.Mock
}

func (m *mockBlobStore) Upload(ctx context.Context, key string, body io.Reader, contentType string, size int64) (*storage.UploadResult, error) {
	args := m.Called(ctx, key, body, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.UploadResult), args.Error(1)
}

func (m *mockBlobStore) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func (m *mockBlobStore) Remove(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}
