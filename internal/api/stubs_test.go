package api

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/live_lessons/internal/model"
	"github.com/Freeeeeet/live_lessons/internal/service"
)

var testSecret = []byte("secret")

type stubCourses struct {
	published []*model.Course
	detail    *service.CourseDetail
	saved     *service.CourseInput
	saveErr   error
	err       error
}

func (s *stubCourses) ListPublished(context.Context) ([]*model.Course, error) {
	return s.published, s.err
}

func (s *stubCourses) GetDetail(_ context.Context, id uuid.UUID) (*service.CourseDetail, error) {
	if s.detail == nil || s.detail.Course.ID != id {
		return nil, service.ErrCourseNotFound
	}
	return s.detail, s.err
}

func (s *stubCourses) List(context.Context) ([]*model.Course, error) {
	return s.published, s.err
}

func (s *stubCourses) Get(_ context.Context, id uuid.UUID) (*model.Course, error) {
	if s.detail == nil || s.detail.Course.ID != id {
		return nil, service.ErrCourseNotFound
	}
	return s.detail.Course, nil
}

func (s *stubCourses) Save(_ context.Context, input *service.CourseInput) (*model.Course, error) {
	s.saved = input
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	id := input.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &model.Course{ID: id, Title: input.Title, ButtonText: model.DefaultButtonText}, nil
}

func (s *stubCourses) Delete(context.Context, uuid.UUID) error {
	return s.err
}

type stubBooking struct {
	slot time.Time
	err  error
}

func (s *stubBooking) BookLesson(_ context.Context, userID, lessonID uuid.UUID, slot time.Time) (*model.Schedule, error) {
	s.slot = slot
	if s.err != nil {
		return nil, s.err
	}
	if slot.IsZero() {
		return nil, nil
	}
	return &model.Schedule{ID: uuid.New(), UserID: userID, LessonID: lessonID, ScheduledAt: slot, Status: model.ScheduleStatusScheduled}, nil
}

type stubAccess struct {
	lesson  *model.Lesson
	access  *service.LessonAccess
	updates []*service.LessonAccess
}

func (s *stubAccess) GetLesson(context.Context, uuid.UUID) (*model.Lesson, error) {
	if s.lesson == nil {
		return nil, service.ErrLessonNotFound
	}
	return s.lesson, nil
}

func (s *stubAccess) Access(context.Context, uuid.UUID, uuid.UUID) (*service.LessonAccess, error) {
	if s.lesson == nil {
		return nil, service.ErrLessonNotFound
	}
	return s.access, nil
}

func (s *stubAccess) Watch(context.Context, uuid.UUID, uuid.UUID) (<-chan *service.LessonAccess, error) {
	if s.lesson == nil {
		return nil, service.ErrLessonNotFound
	}
	ch := make(chan *service.LessonAccess, len(s.updates))
	for _, u := range s.updates {
		ch <- u
	}
	close(ch)
	return ch, nil
}

type stubMarketing struct {
	templates map[model.EmailTemplateType]*model.EmailTemplate
	sent      []*service.SendRequest
	sendErr   error
}

func (s *stubMarketing) Kinds() []model.EmailTemplateKind {
	return model.EmailTemplateKinds
}

func (s *stubMarketing) GetTemplate(_ context.Context, t model.EmailTemplateType) (*model.EmailTemplate, error) {
	if !t.IsKnown() {
		return nil, &service.ValidationError{Message: "invalid template type"}
	}
	if tmpl, ok := s.templates[t]; ok {
		return tmpl, nil
	}
	return &model.EmailTemplate{Type: t}, nil
}

func (s *stubMarketing) SaveTemplate(_ context.Context, tmpl *model.EmailTemplate) error {
	if s.templates == nil {
		s.templates = make(map[model.EmailTemplateType]*model.EmailTemplate)
	}
	s.templates[tmpl.Type] = tmpl
	return nil
}

func (s *stubMarketing) Send(_ context.Context, req *service.SendRequest) error {
	s.sent = append(s.sent, req)
	return s.sendErr
}

type stubUsers struct {
	admins map[uuid.UUID]bool
}

func (s *stubUsers) IsAdmin(_ context.Context, id uuid.UUID) (bool, error) {
	isAdmin, ok := s.admins[id]
	if !ok {
		return false, service.ErrUserNotFound
	}
	return isAdmin, nil
}

type testEnv struct {
	server    *Server
	courses   *stubCourses
	booking   *stubBooking
	access    *stubAccess
	marketing *stubMarketing
	userID    uuid.UUID
	adminID   uuid.UUID
}

func newTestEnv() *testEnv {
	env := &testEnv{
		courses:   &stubCourses{},
		booking:   &stubBooking{},
		access:    &stubAccess{},
		marketing: &stubMarketing{},
		userID:    uuid.New(),
		adminID:   uuid.New(),
	}
	users := &stubUsers{admins: map[uuid.UUID]bool{env.userID: false, env.adminID: true}}
	env.server = NewServer(&Options{
		DisableReqLogs: true,
		JWTSecret:      testSecret,
		Courses:        env.courses,
		Lessons:        env.access,
		Booking:        env.booking,
		Marketing:      env.marketing,
		Users:          users,
	})
	return env
}

func getToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	return signToken(t, testSecret, jwt.StandardClaims{
		Subject:   userID.String(),
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	})
}

func signToken(t *testing.T, secret []byte, std jwt.StandardClaims) string {
	t.Helper()
	claims := &Claims{StandardClaims: std, Role: "authenticated"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func (env *testEnv) do(method, path, token string, body ...[]byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if len(body) > 0 {
		buf.Write(body[0])
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)
	return rec
}

// httpTest табличный тест одного запроса
type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantBody string
}

func (env *testEnv) run(t *testing.T, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(tt.method, tt.path, tt.token, tt.body)
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			if tt.wantBody != "" {
				require.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

