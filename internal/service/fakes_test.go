package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Freeeeeet/live_lessons/internal/model"
	"github.com/Freeeeeet/live_lessons/internal/notify"
	"github.com/Freeeeeet/live_lessons/internal/repository"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// After никогда не срабатывает, пересчёт только по SetSchedule
func (c fixedClock) After(time.Duration) <-chan time.Time { return nil }

type fakeLessons struct {
	byID map[uuid.UUID]*model.Lesson
	err  error
}

func newFakeLessons(lessons ...*model.Lesson) *fakeLessons {
	f := &fakeLessons{byID: make(map[uuid.UUID]*model.Lesson)}
	for _, l := range lessons {
		f.byID[l.ID] = l
	}
	return f
}

func (f *fakeLessons) GetByID(_ context.Context, id uuid.UUID) (*model.Lesson, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

func (f *fakeLessons) GetByCourseID(_ context.Context, courseID uuid.UUID) ([]*model.Lesson, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.Lesson
	for _, l := range f.byID {
		if l.CourseID == courseID {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeSchedules struct {
	mu        sync.Mutex
	created   []*model.Schedule
	latest    *model.Schedule
	createErr error
	getErr    error
	// block задерживает GetLatest до закрытия канала
	block chan struct{}
}

func (f *fakeSchedules) Create(_ context.Context, s *model.Schedule) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	f.created = append(f.created, s)
	return nil
}

func (f *fakeSchedules) GetLatest(ctx context.Context, _, _ uuid.UUID) (*model.Schedule, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.latest, nil
}

type fakeTemplates struct {
	byType map[model.EmailTemplateType]*model.EmailTemplate
	err    error
}

func newFakeTemplates(templates ...*model.EmailTemplate) *fakeTemplates {
	f := &fakeTemplates{byType: make(map[model.EmailTemplateType]*model.EmailTemplate)}
	for _, t := range templates {
		f.byType[t.Type] = t
	}
	return f
}

func (f *fakeTemplates) GetByType(_ context.Context, t model.EmailTemplateType) (*model.EmailTemplate, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byType[t], nil
}

func (f *fakeTemplates) Upsert(_ context.Context, t *model.EmailTemplate) error {
	if f.err != nil {
		return f.err
	}
	now := time.Now()
	t.UpdatedAt = &now
	f.byType[t.Type] = t
	return nil
}

type fakeProfiles struct {
	byID map[uuid.UUID]*model.Profile
}

func newFakeProfiles(profiles ...*model.Profile) *fakeProfiles {
	f := &fakeProfiles{byID: make(map[uuid.UUID]*model.Profile)}
	for _, p := range profiles {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProfiles) GetByID(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	return f.byID[id], nil
}

type fakeCourses struct {
	byID    map[uuid.UUID]*model.Course
	saved   []*model.Lesson
	saveErr error
}

func newFakeCourses(courses ...*model.Course) *fakeCourses {
	f := &fakeCourses{byID: make(map[uuid.UUID]*model.Course)}
	for _, c := range courses {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeCourses) List(context.Context) ([]*model.Course, error) {
	out := make([]*model.Course, 0, len(f.byID))
	for _, c := range f.byID {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCourses) ListPublished(ctx context.Context) ([]*model.Course, error) {
	all, _ := f.List(ctx)
	var out []*model.Course
	for _, c := range all {
		if c.IsPublished {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCourses) GetByID(_ context.Context, id uuid.UUID) (*model.Course, error) {
	return f.byID[id], nil
}

func (f *fakeCourses) SaveWithLessons(_ context.Context, c *model.Course, lessons []*model.Lesson) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
		c.CreatedAt = time.Now()
	} else if _, ok := f.byID[c.ID]; !ok {
		return repository.ErrCourseNotFound
	}
	for _, l := range lessons {
		l.ID = uuid.New()
		l.CourseID = c.ID
	}
	f.byID[c.ID] = c
	f.saved = lessons
	return nil
}

func (f *fakeCourses) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrCourseNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeVideos struct {
	err error
}

func (f fakeVideos) Playback(_ context.Context, v model.VideoSource) (model.VideoSource, error) {
	if f.err != nil {
		return v, f.err
	}
	if v.IsStorageObject() {
		v.PlaybackURL = "https://signed.example/" + v.StorageKey()
	}
	return v, nil
}

// recordingNotifier запоминает запросы на отправку
type recordingNotifier struct {
	mu   sync.Mutex
	reqs []*SendRequest
	err  error
}

func (n *recordingNotifier) Send(_ context.Context, req *SendRequest) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reqs = append(n.reqs, req)
	return n.err
}

func (n *recordingNotifier) requests() []*SendRequest {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]*SendRequest(nil), n.reqs...)
}

type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
	events []any
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type failingSender struct{}

func (failingSender) Send(context.Context, *notify.Message) error {
	return errors.New("smtp unavailable")
}
