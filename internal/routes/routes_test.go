package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gyansetu/gyansetu-backend/internal/domain"
	"github.com/gyansetu/gyansetu-backend/internal/handler"
	"github.com/gyansetu/gyansetu-backend/internal/migration"
	"github.com/gyansetu/gyansetu-backend/internal/repository"
	"github.com/gyansetu/gyansetu-backend/internal/service"
	"github.com/gyansetu/gyansetu-backend/pkg/jwt"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type session struct {
	ID    uint64
	Token string
}

// APISuite drives the full router against in-memory SQLite
type APISuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	s.Require().NoError(err)
	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	s.Require().NoError(db.Exec("PRAGMA foreign_keys = ON").Error)
	s.Require().NoError(migration.Run(db))
	s.db = db

	profileRepo := repository.NewProfileRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	replyRepo := repository.NewReplyRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	karmaRepo := repository.NewKarmaRepository(db)
	reportRepo := repository.NewReportRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	jwtManager := jwt.NewManager("test-secret", 900, 3600)

	notifications := service.NewNotificationService(notificationRepo, nil)
	identity := service.NewIdentityService(profileRepo)
	auth := service.NewAuthService(profileRepo, jwtManager, notifications)
	courses := service.NewCourseService(courseRepo, profileRepo)
	questions := service.NewQuestionService(questionRepo, answerRepo, profileRepo, voteRepo, courses, notifications, nil)
	answers := service.NewAnswerService(questionRepo, answerRepo, profileRepo, voteRepo, courses, notifications, nil)
	replies := service.NewReplyService(questionRepo, answerRepo, replyRepo, profileRepo, courses, notifications, nil)
	votes := service.NewVoteService(voteRepo, questionRepo, answerRepo, profileRepo, karmaRepo, courses, notifications, service.DefaultKarmaSettings)
	moderation := service.NewModerationService(reportRepo, questionRepo, answerRepo, replyRepo, profileRepo, notifications, nil)
	uploads := service.NewUploadService(nil, 5)

	s.router = gin.New()
	Setup(s.router, Handlers{
		Auth:         handler.NewAuthHandler(auth),
		Profile:      handler.NewProfileHandler(identity, votes),
		Course:       handler.NewCourseHandler(courses),
		Question:     handler.NewQuestionHandler(questions, votes),
		Answer:       handler.NewAnswerHandler(answers, questions, votes),
		Reply:        handler.NewReplyHandler(replies),
		Report:       handler.NewReportHandler(moderation),
		Admin:        handler.NewAdminHandler(moderation),
		Notification: handler.NewNotificationHandler(notifications),
		Upload:       handler.NewUploadHandler(uploads),
	}, Options{
		JWT:            jwtManager,
		Roles:          identity,
		MaxUploadBytes: 5 << 20,
	})
}

func (s *APISuite) TearDownTest() {
	if sqlDB, err := s.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func (s *APISuite) do(method, path, token string, body interface{}) (int, envelope) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func (s *APISuite) decode(env envelope, v interface{}) {
	s.Require().NoError(json.Unmarshal(env.Data, v))
}

func (s *APISuite) register(email string) session {
	code, env := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": email, "password": "password123", "display_name": email,
	})
	s.Require().Equal(http.StatusCreated, code)

	var res struct {
		User        domain.Profile `json:"user"`
		AccessToken string         `json:"access_token"`
	}
	s.decode(env, &res)
	s.Require().NotEmpty(res.AccessToken)
	return session{ID: res.User.ID, Token: res.AccessToken}
}

func (s *APISuite) promote(id uint64, role domain.Role) {
	s.Require().NoError(s.db.Model(&domain.Profile{}).Where("id = ?", id).Update("role", role).Error)
}

func (s *APISuite) karmaOf(id uint64) int {
	code, env := s.do(http.MethodGet, fmt.Sprintf("/api/v1/profiles/%d", id), "", nil)
	s.Require().Equal(http.StatusOK, code)
	var p struct {
		KarmaPoints int `json:"karma_points"`
	}
	s.decode(env, &p)
	return p.KarmaPoints
}

func (s *APISuite) ask(token string, body map[string]interface{}) (int, uint64) {
	code, env := s.do(http.MethodPost, "/api/v1/questions", token, body)
	if code != http.StatusCreated {
		return code, 0
	}
	var q struct {
		ID uint64 `json:"id"`
	}
	s.decode(env, &q)
	return code, q.ID
}

func (s *APISuite) answer(token string, questionID uint64) uint64 {
	code, env := s.do(http.MethodPost, fmt.Sprintf("/api/v1/questions/%d/answers", questionID), token, map[string]string{
		"content": "Use a pointer receiver",
	})
	s.Require().Equal(http.StatusCreated, code)
	var a struct {
		ID uint64 `json:"id"`
	}
	s.decode(env, &a)
	return a.ID
}

func (s *APISuite) TestHealth() {
	code, _ := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, code)
}

func (s *APISuite) TestAuthFlow() {
	alice := s.register("alice@example.com")

	code, _ := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": "alice@example.com", "password": "password123", "display_name": "again",
	})
	s.Equal(http.StatusConflict, code)

	code, env := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "wrong-password",
	})
	s.Equal(http.StatusUnauthorized, code)
	s.False(env.Success)

	code, env = s.do(http.MethodGet, "/api/v1/auth/me", alice.Token, nil)
	s.Require().Equal(http.StatusOK, code)
	var me struct {
		ID   uint64      `json:"id"`
		Role domain.Role `json:"role"`
	}
	s.decode(env, &me)
	s.Equal(alice.ID, me.ID)
	s.Equal(domain.RoleStudent, me.Role)

	code, _ = s.do(http.MethodGet, "/api/v1/auth/me", "", nil)
	s.Equal(http.StatusUnauthorized, code)
}

func (s *APISuite) TestWritesRequireLogin() {
	code, _ := s.ask("", map[string]interface{}{"title": "t", "content": "c"})
	s.Equal(http.StatusUnauthorized, code)

	code, _ = s.do(http.MethodGet, "/api/v1/notifications", "", nil)
	s.Equal(http.StatusUnauthorized, code)
}

func (s *APISuite) TestQuestionValidation() {
	alice := s.register("alice@example.com")

	code, _ := s.ask(alice.Token, map[string]interface{}{"content": "no title"})
	s.Equal(http.StatusBadRequest, code)
}

func (s *APISuite) TestAnswerAcceptAwardsKarma() {
	alice := s.register("alice@example.com")
	bob := s.register("bob@example.com")

	code, qid := s.ask(alice.Token, map[string]interface{}{"title": "Pointers?", "content": "How do they work"})
	s.Require().Equal(http.StatusCreated, code)

	aid := s.answer(bob.Token, qid)

	// welcome + new answer
	code, env := s.do(http.MethodGet, "/api/v1/notifications/unread-count", alice.Token, nil)
	s.Require().Equal(http.StatusOK, code)
	var unread struct {
		UnreadCount int64 `json:"unread_count"`
	}
	s.decode(env, &unread)
	s.Equal(int64(2), unread.UnreadCount)

	// only the asker may accept
	code, _ = s.do(http.MethodPost, fmt.Sprintf("/api/v1/answers/%d/accept", aid), bob.Token, nil)
	s.Equal(http.StatusForbidden, code)

	code, env = s.do(http.MethodPost, fmt.Sprintf("/api/v1/answers/%d/accept", aid), alice.Token, nil)
	s.Require().Equal(http.StatusOK, code)
	var res domain.AcceptResult
	s.decode(env, &res)
	s.True(res.Accepted)
	s.Equal(20, s.karmaOf(bob.ID))

	// toggling off takes the bonus back
	code, env = s.do(http.MethodPost, fmt.Sprintf("/api/v1/answers/%d/accept", aid), alice.Token, nil)
	s.Require().Equal(http.StatusOK, code)
	s.decode(env, &res)
	s.False(res.Accepted)
	s.Equal(0, s.karmaOf(bob.ID))
}

func (s *APISuite) TestVoting() {
	alice := s.register("alice@example.com")
	bob := s.register("bob@example.com")

	_, qid := s.ask(alice.Token, map[string]interface{}{"title": "Recursion", "content": "Base case?"})
	path := fmt.Sprintf("/api/v1/questions/%d/vote", qid)

	code, _ := s.do(http.MethodPost, path, alice.Token, map[string]int{"value": 1})
	s.Equal(http.StatusForbidden, code)

	code, _ = s.do(http.MethodPost, path, bob.Token, map[string]int{"value": 3})
	s.Equal(http.StatusBadRequest, code)

	code, env := s.do(http.MethodPost, path, bob.Token, map[string]int{"value": 1})
	s.Require().Equal(http.StatusOK, code)
	var res domain.VoteResult
	s.decode(env, &res)
	s.Equal(1, res.Score)
	s.Equal(1, res.UserVote)
	s.Equal(2, s.karmaOf(alice.ID))

	code, env = s.do(http.MethodGet, fmt.Sprintf("/api/v1/questions/%d", qid), bob.Token, nil)
	s.Require().Equal(http.StatusOK, code)
	var view struct {
		Score    int `json:"score"`
		UserVote int `json:"user_vote"`
	}
	s.decode(env, &view)
	s.Equal(1, view.Score)
	s.Equal(1, view.UserVote)
}

func (s *APISuite) TestCourseScoping() {
	root := s.register("root@example.com")
	s.promote(root.ID, domain.RoleSuperAdmin)
	alice := s.register("alice@example.com")
	bob := s.register("bob@example.com")

	// students cannot reach the admin API
	code, _ := s.do(http.MethodPost, "/api/admin/courses", alice.Token, map[string]string{"name": "Algorithms", "code": "CS201"})
	s.Equal(http.StatusForbidden, code)

	code, env := s.do(http.MethodPost, "/api/admin/courses", root.Token, map[string]string{"name": "Algorithms", "code": "CS201"})
	s.Require().Equal(http.StatusCreated, code)
	var course struct {
		ID uint64 `json:"id"`
	}
	s.decode(env, &course)

	body := map[string]interface{}{"title": "Dijkstra", "content": "Negative edges?", "course_id": course.ID}
	code, _ = s.ask(alice.Token, body)
	s.Equal(http.StatusForbidden, code)

	code, _ = s.do(http.MethodPost, fmt.Sprintf("/api/v1/courses/%d/enroll", course.ID), alice.Token, nil)
	s.Require().Equal(http.StatusOK, code)

	code, qid := s.ask(alice.Token, body)
	s.Require().Equal(http.StatusCreated, code)

	// not enrolled: gated on read, absent from lists
	code, _ = s.do(http.MethodGet, fmt.Sprintf("/api/v1/questions/%d", qid), bob.Token, nil)
	s.Equal(http.StatusForbidden, code)

	code, _ = s.do(http.MethodGet, fmt.Sprintf("/api/v1/questions/%d", qid), alice.Token, nil)
	s.Equal(http.StatusOK, code)

	code, env = s.do(http.MethodGet, "/api/v1/questions", bob.Token, nil)
	s.Require().Equal(http.StatusOK, code)
	var list []struct {
		ID uint64 `json:"id"`
	}
	s.decode(env, &list)
	s.Empty(list)
}

func (s *APISuite) TestReportAndModeration() {
	root := s.register("root@example.com")
	s.promote(root.ID, domain.RoleSuperAdmin)
	alice := s.register("alice@example.com")
	bob := s.register("bob@example.com")

	_, qid := s.ask(alice.Token, map[string]interface{}{"title": "Spam", "content": "Buy now"})

	report := map[string]interface{}{"question_id": qid, "reason": "spam"}
	code, _ := s.do(http.MethodPost, "/api/v1/reports", bob.Token, report)
	s.Require().Equal(http.StatusCreated, code)

	code, _ = s.do(http.MethodPost, "/api/v1/reports", bob.Token, report)
	s.Equal(http.StatusConflict, code)

	code, _ = s.do(http.MethodGet, "/api/admin/reports", bob.Token, nil)
	s.Equal(http.StatusForbidden, code)

	code, env := s.do(http.MethodGet, "/api/admin/reports", root.Token, nil)
	s.Require().Equal(http.StatusOK, code)
	var reports []domain.ModerationReport
	s.decode(env, &reports)
	s.Len(reports, 1)

	code, _ = s.do(http.MethodPost, fmt.Sprintf("/api/admin/questions/%d/delete", qid), root.Token, nil)
	s.Require().Equal(http.StatusOK, code)

	code, _ = s.do(http.MethodGet, fmt.Sprintf("/api/v1/questions/%d", qid), alice.Token, nil)
	s.Equal(http.StatusNotFound, code)
}

func (s *APISuite) TestRoleChangeIsSuperAdminOnly() {
	root := s.register("root@example.com")
	s.promote(root.ID, domain.RoleSuperAdmin)
	staff := s.register("staff@example.com")
	s.promote(staff.ID, domain.RoleAdmin)
	alice := s.register("alice@example.com")

	path := fmt.Sprintf("/api/admin/profiles/%d/role", alice.ID)

	code, _ := s.do(http.MethodPut, path, staff.Token, map[string]string{"role": "admin"})
	s.Equal(http.StatusForbidden, code)

	code, _ = s.do(http.MethodPut, path, root.Token, map[string]string{"role": "admin"})
	s.Require().Equal(http.StatusOK, code)

	// the new role applies to the existing token
	code, env := s.do(http.MethodGet, "/api/v1/auth/me", alice.Token, nil)
	s.Require().Equal(http.StatusOK, code)
	var me struct {
		Role domain.Role `json:"role"`
	}
	s.decode(env, &me)
	s.Equal(domain.RoleAdmin, me.Role)
}
