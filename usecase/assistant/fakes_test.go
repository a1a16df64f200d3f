package assistant

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/lifedesk/backend/domain"
	"github.com/lifedesk/backend/internal/infrastructure/llm"
	"github.com/lifedesk/backend/repository"
)

// In-memory repository fakes. Each one mirrors the ownership and ordering
// contract of its Postgres counterpart closely enough for handler tests.

type memTasks struct {
	mu    sync.Mutex
	items map[string]*domain.Task
}

func newMemTasks() *memTasks { return &memTasks{items: map[string]*domain.Task{}} }

func (m *memTasks) GetByID(_ context.Context, userID, id string) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.items[id]
	if !ok || t.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memTasks) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Task
	for _, t := range m.items {
		if t.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && t.Priority != filter.Priority {
			continue
		}
		if filter.ProjectID != "" && (t.ProjectID == nil || *t.ProjectID != filter.ProjectID) {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *memTasks) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *task
	cp.ID = uuid.NewString()
	m.items[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memTasks) Update(_ context.Context, task *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.items[task.ID]
	if !ok || existing.UserID != task.UserID {
		return domain.ErrTaskNotFound
	}
	cp := *task
	m.items[task.ID] = &cp
	return nil
}

func (m *memTasks) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.items[id]
	if !ok || existing.UserID != userID {
		return domain.ErrTaskNotFound
	}
	delete(m.items, id)
	return nil
}

type memProjects struct {
	mu    sync.Mutex
	items map[string]*domain.Project
}

func newMemProjects() *memProjects { return &memProjects{items: map[string]*domain.Project{}} }

func (m *memProjects) GetByID(_ context.Context, userID, id string) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok || p.UserID != userID {
		return nil, domain.ErrProjectNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProjects) List(_ context.Context, filter repository.ProjectFilter) ([]domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Project
	for _, p := range m.items {
		if p.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *memProjects) SearchByTitle(_ context.Context, userID, fragment string, limit int) ([]domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Project
	for _, p := range m.items {
		if p.UserID != userID {
			continue
		}
		if strings.Contains(strings.ToLower(p.Title), strings.ToLower(fragment)) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memProjects) Create(_ context.Context, project *domain.Project) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *project
	cp.ID = uuid.NewString()
	m.items[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memProjects) Update(_ context.Context, project *domain.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.items[project.ID]
	if !ok || existing.UserID != project.UserID {
		return domain.ErrProjectNotFound
	}
	cp := *project
	m.items[project.ID] = &cp
	return nil
}

func (m *memProjects) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.items[id]
	if !ok || existing.UserID != userID {
		return domain.ErrProjectNotFound
	}
	delete(m.items, id)
	return nil
}

type memNotes struct {
	mu    sync.Mutex
	items map[string]*domain.Note
}

func newMemNotes() *memNotes { return &memNotes{items: map[string]*domain.Note{}} }

func (m *memNotes) GetByID(_ context.Context, userID, id string) (*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.items[id]
	if !ok || n.UserID != userID {
		return nil, domain.ErrNoteNotFound
	}
	cp := *n
	return &cp, nil
}

func (m *memNotes) List(_ context.Context, filter repository.NoteFilter) ([]domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Note
	for _, n := range m.items {
		if n.UserID != filter.UserID {
			continue
		}
		if filter.Folder != "" && n.Folder != filter.Folder {
			continue
		}
		out = append(out, *n)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsPinned != out[j].IsPinned {
			return out[i].IsPinned
		}
		return out[i].ID < out[j].ID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *memNotes) Create(_ context.Context, note *domain.Note) (*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *note
	cp.ID = uuid.NewString()
	m.items[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memNotes) Update(_ context.Context, note *domain.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.items[note.ID]
	if !ok || existing.UserID != note.UserID {
		return domain.ErrNoteNotFound
	}
	cp := *note
	m.items[note.ID] = &cp
	return nil
}

func (m *memNotes) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.items[id]
	if !ok || existing.UserID != userID {
		return domain.ErrNoteNotFound
	}
	delete(m.items, id)
	return nil
}

type memHabits struct {
	mu          sync.Mutex
	items       map[string]*domain.Habit
	completions map[string]*domain.HabitCompletion // habitID|date
}

func newMemHabits() *memHabits {
	return &memHabits{
		items:       map[string]*domain.Habit{},
		completions: map[string]*domain.HabitCompletion{},
	}
}

func completionKey(habitID, date string) string { return habitID + "|" + date }

func (m *memHabits) GetByID(_ context.Context, userID, id string) (*domain.Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.items[id]
	if !ok || h.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}
	cp := *h
	return &cp, nil
}

func (m *memHabits) List(_ context.Context, userID string) ([]domain.Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Habit
	for _, h := range m.items {
		if h.UserID == userID {
			out = append(out, *h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memHabits) Create(_ context.Context, habit *domain.Habit) (*domain.Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *habit
	cp.ID = uuid.NewString()
	m.items[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memHabits) Update(_ context.Context, habit *domain.Habit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.items[habit.ID]
	if !ok || existing.UserID != habit.UserID {
		return domain.ErrHabitNotFound
	}
	cp := *habit
	m.items[habit.ID] = &cp
	return nil
}

func (m *memHabits) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.items[id]
	if !ok || existing.UserID != userID {
		return domain.ErrHabitNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memHabits) GetCompletion(_ context.Context, userID, habitID, date string) (*domain.HabitCompletion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.completions[completionKey(habitID, date)]
	if !ok || c.UserID != userID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memHabits) CreateCompletion(_ context.Context, completion *domain.HabitCompletion) (*domain.HabitCompletion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *completion
	cp.ID = uuid.NewString()
	m.completions[completionKey(cp.HabitID, cp.Date)] = &cp
	out := cp
	return &out, nil
}

func (m *memHabits) DeleteCompletion(_ context.Context, userID, habitID, date string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.completions, completionKey(habitID, date))
	return nil
}

func (m *memHabits) ListCompletions(_ context.Context, userID, date string) ([]domain.HabitCompletion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.HabitCompletion
	for _, c := range m.completions {
		if c.UserID == userID && c.Date == date {
			out = append(out, *c)
		}
	}
	return out, nil
}

type memTransactions struct {
	mu    sync.Mutex
	items map[string]*domain.Transaction
}

func newMemTransactions() *memTransactions {
	return &memTransactions{items: map[string]*domain.Transaction{}}
}

func (m *memTransactions) GetByID(_ context.Context, userID, id string) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.items[id]
	if !ok || t.UserID != userID {
		return nil, domain.ErrTransactionNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memTransactions) List(_ context.Context, filter repository.TransactionFilter) ([]domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Transaction
	for _, t := range m.items {
		if t.UserID != filter.UserID {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if filter.Category != "" && t.Category != filter.Category {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *memTransactions) Create(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *tx
	cp.ID = uuid.NewString()
	m.items[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memTransactions) Update(_ context.Context, tx *domain.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.items[tx.ID]
	if !ok || existing.UserID != tx.UserID {
		return domain.ErrTransactionNotFound
	}
	cp := *tx
	m.items[tx.ID] = &cp
	return nil
}

func (m *memTransactions) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.items[id]
	if !ok || existing.UserID != userID {
		return domain.ErrTransactionNotFound
	}
	delete(m.items, id)
	return nil
}

type memCourses struct {
	mu    sync.Mutex
	items map[string]*domain.Course
}

func newMemCourses() *memCourses { return &memCourses{items: map[string]*domain.Course{}} }

func (m *memCourses) GetByID(_ context.Context, userID, id string) (*domain.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[id]
	if !ok || c.UserID != userID {
		return nil, domain.ErrCourseNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCourses) List(_ context.Context, userID, status string) ([]domain.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Course
	for _, c := range m.items {
		if c.UserID != userID {
			continue
		}
		if status != "" && c.Status != status {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memCourses) SearchByTitle(_ context.Context, userID, fragment string, limit int) ([]domain.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Course
	for _, c := range m.items {
		if c.UserID != userID {
			continue
		}
		if strings.Contains(strings.ToLower(c.Title), strings.ToLower(fragment)) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memCourses) Create(_ context.Context, course *domain.Course) (*domain.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *course
	cp.ID = uuid.NewString()
	m.items[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memCourses) Update(_ context.Context, course *domain.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.items[course.ID]
	if !ok || existing.UserID != course.UserID {
		return domain.ErrCourseNotFound
	}
	cp := *course
	m.items[course.ID] = &cp
	return nil
}

func (m *memCourses) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.items[id]
	if !ok || existing.UserID != userID {
		return domain.ErrCourseNotFound
	}
	delete(m.items, id)
	return nil
}

type memLessons struct {
	mu    sync.Mutex
	items map[string]*domain.Lesson
}

func newMemLessons() *memLessons { return &memLessons{items: map[string]*domain.Lesson{}} }

func (m *memLessons) GetByID(_ context.Context, userID, id string) (*domain.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.items[id]
	if !ok || l.UserID != userID {
		return nil, domain.ErrLessonNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *memLessons) ListByCourse(_ context.Context, userID, courseID string) ([]domain.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Lesson
	for _, l := range m.items {
		if l.UserID == userID && l.CourseID == courseID {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (m *memLessons) MaxSortOrder(_ context.Context, userID, courseID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	max := 0
	for _, l := range m.items {
		if l.UserID == userID && l.CourseID == courseID && l.SortOrder > max {
			max = l.SortOrder
		}
	}
	return max, nil
}

func (m *memLessons) Create(_ context.Context, lesson *domain.Lesson) (*domain.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *lesson
	cp.ID = uuid.NewString()
	m.items[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memLessons) Update(_ context.Context, lesson *domain.Lesson) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.items[lesson.ID]
	if !ok || existing.UserID != lesson.UserID {
		return domain.ErrLessonNotFound
	}
	cp := *lesson
	m.items[lesson.ID] = &cp
	return nil
}

func (m *memLessons) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.items[id]
	if !ok || existing.UserID != userID {
		return domain.ErrLessonNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memLessons) DeleteByCourse(_ context.Context, userID, courseID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, l := range m.items {
		if l.UserID == userID && l.CourseID == courseID {
			delete(m.items, id)
		}
	}
	return nil
}

type memMoviesSeries struct {
	mu    sync.Mutex
	items map[string]*domain.MovieSeries
}

func newMemMoviesSeries() *memMoviesSeries {
	return &memMoviesSeries{items: map[string]*domain.MovieSeries{}}
}

func (m *memMoviesSeries) GetByID(_ context.Context, userID, id string) (*domain.MovieSeries, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[id]
	if !ok || v.UserID != userID {
		return nil, domain.ErrMediaNotFound
	}
	cp := *v
	return &cp, nil
}

func (m *memMoviesSeries) List(_ context.Context, filter repository.MediaFilter) ([]domain.MovieSeries, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.MovieSeries
	for _, v := range m.items {
		if v.UserID != filter.UserID {
			continue
		}
		if filter.Type != "" && v.Type != filter.Type {
			continue
		}
		if filter.Status != "" && v.Status != filter.Status {
			continue
		}
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memMoviesSeries) Create(_ context.Context, item *domain.MovieSeries) (*domain.MovieSeries, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *item
	cp.ID = uuid.NewString()
	m.items[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memMoviesSeries) Update(_ context.Context, item *domain.MovieSeries) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.items[item.ID]
	if !ok || existing.UserID != item.UserID {
		return domain.ErrMediaNotFound
	}
	cp := *item
	m.items[item.ID] = &cp
	return nil
}

func (m *memMoviesSeries) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.items[id]
	if !ok || existing.UserID != userID {
		return domain.ErrMediaNotFound
	}
	delete(m.items, id)
	return nil
}

type memBooksPodcasts struct {
	mu    sync.Mutex
	items map[string]*domain.BookPodcast
}

func newMemBooksPodcasts() *memBooksPodcasts {
	return &memBooksPodcasts{items: map[string]*domain.BookPodcast{}}
}

func (m *memBooksPodcasts) GetByID(_ context.Context, userID, id string) (*domain.BookPodcast, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[id]
	if !ok || v.UserID != userID {
		return nil, domain.ErrMediaNotFound
	}
	cp := *v
	return &cp, nil
}

func (m *memBooksPodcasts) List(_ context.Context, filter repository.MediaFilter) ([]domain.BookPodcast, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.BookPodcast
	for _, v := range m.items {
		if v.UserID != filter.UserID {
			continue
		}
		if filter.Type != "" && v.Type != filter.Type {
			continue
		}
		if filter.Status != "" && v.Status != filter.Status {
			continue
		}
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memBooksPodcasts) Create(_ context.Context, item *domain.BookPodcast) (*domain.BookPodcast, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *item
	cp.ID = uuid.NewString()
	m.items[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memBooksPodcasts) Update(_ context.Context, item *domain.BookPodcast) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.items[item.ID]
	if !ok || existing.UserID != item.UserID {
		return domain.ErrMediaNotFound
	}
	cp := *item
	m.items[item.ID] = &cp
	return nil
}

func (m *memBooksPodcasts) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.items[id]
	if !ok || existing.UserID != userID {
		return domain.ErrMediaNotFound
	}
	delete(m.items, id)
	return nil
}

type memClients struct {
	mu    sync.Mutex
	items map[string]*domain.Client
}

func newMemClients() *memClients { return &memClients{items: map[string]*domain.Client{}} }

func (m *memClients) GetByID(_ context.Context, userID, id string) (*domain.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[id]
	if !ok || c.UserID != userID {
		return nil, domain.ErrClientNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memClients) List(_ context.Context, userID, status string) ([]domain.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Client
	for _, c := range m.items {
		if c.UserID != userID {
			continue
		}
		if status != "" && c.Status != status {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memClients) Create(_ context.Context, client *domain.Client) (*domain.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *client
	cp.ID = uuid.NewString()
	m.items[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memClients) Update(_ context.Context, client *domain.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.items[client.ID]
	if !ok || existing.UserID != client.UserID {
		return domain.ErrClientNotFound
	}
	cp := *client
	m.items[client.ID] = &cp
	return nil
}

func (m *memClients) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.items[id]
	if !ok || existing.UserID != userID {
		return domain.ErrClientNotFound
	}
	delete(m.items, id)
	return nil
}

type memFocus struct {
	mu    sync.Mutex
	items map[string]*domain.FocusSession
}

func newMemFocus() *memFocus { return &memFocus{items: map[string]*domain.FocusSession{}} }

func (m *memFocus) GetActive(_ context.Context, userID string) (*domain.FocusSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.items {
		if s.UserID == userID && s.EndTime == nil {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memFocus) ListRecent(_ context.Context, userID string, limit int) ([]domain.FocusSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.FocusSession
	for _, s := range m.items {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memFocus) Create(_ context.Context, session *domain.FocusSession) (*domain.FocusSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *session
	cp.ID = uuid.NewString()
	m.items[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memFocus) Update(_ context.Context, session *domain.FocusSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.items[session.ID]
	if !ok || existing.UserID != session.UserID {
		return domain.ErrSessionNotFound
	}
	cp := *session
	m.items[session.ID] = &cp
	return nil
}

func newTestRepos() Repositories {
	return Repositories{
		Tasks:         newMemTasks(),
		Projects:      newMemProjects(),
		Notes:         newMemNotes(),
		Habits:        newMemHabits(),
		Transactions:  newMemTransactions(),
		Courses:       newMemCourses(),
		Lessons:       newMemLessons(),
		MoviesSeries:  newMemMoviesSeries(),
		BooksPodcasts: newMemBooksPodcasts(),
		Clients:       newMemClients(),
		Focus:         newMemFocus(),
	}
}

// memUsers backs the engine tests.
type memUsers struct {
	mu    sync.Mutex
	items map[string]*domain.User
}

func newMemUsers(users ...*domain.User) *memUsers {
	m := &memUsers{items: map[string]*domain.User{}}
	for _, u := range users {
		m.items[u.ID] = u
	}
	return m
}

func (m *memUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.items[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByTelegramChatID(_ context.Context, chatID int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.items {
		if u.TelegramChatID == chatID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUsers) Upsert(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *user
	m.items[user.ID] = &cp
	return nil
}

// memConversations records lock traffic so tests can assert on it.
type memConversations struct {
	mu      sync.Mutex
	locked  map[string]bool
	history map[string][]domain.ChatMessage
}

func newMemConversations() *memConversations {
	return &memConversations{
		locked:  map[string]bool{},
		history: map[string][]domain.ChatMessage{},
	}
}

func (m *memConversations) AcquireLock(_ context.Context, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locked[userID] {
		return false, nil
	}
	m.locked[userID] = true
	return true, nil
}

func (m *memConversations) ReleaseLock(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locked[userID] = false
	return nil
}

func (m *memConversations) History(_ context.Context, userID string) ([]domain.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ChatMessage(nil), m.history[userID]...), nil
}

func (m *memConversations) AppendHistory(_ context.Context, userID string, messages ...domain.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history[userID] = append(m.history[userID], messages...)
	return nil
}

func (m *memConversations) ClearHistory(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.history, userID)
	return nil
}

// memJournal collects journaled turns in memory.
type memJournal struct {
	mu      sync.Mutex
	records []domain.TurnRecord
}

func (m *memJournal) Append(record domain.TurnRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return nil
}

func (m *memJournal) Recent(userID string, limit int) ([]domain.TurnRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.TurnRecord
	for i := len(m.records) - 1; i >= 0 && len(out) < limit; i-- {
		if m.records[i].UserID == userID {
			out = append(out, m.records[i])
		}
	}
	return out, nil
}

// scriptedCompleter replays a fixed sequence of assistant messages. A step
// may inspect the transcript to compute its reply.
type scriptedCompleter struct {
	mu    sync.Mutex
	steps []func(messages []llm.Message) *llm.Message
	calls int
	seen  [][]llm.Message
	err   error
}

func (s *scriptedCompleter) ChatCompletion(_ context.Context, _ string, messages []llm.Message, _ []llm.Tool) (*llm.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.seen = append(s.seen, append([]llm.Message(nil), messages...))
	if s.calls >= len(s.steps) {
		return &llm.Message{Role: domain.RoleAssistant, Content: "Done."}, nil
	}
	step := s.steps[s.calls]
	s.calls++
	return step(messages), nil
}

func textReply(content string) func([]llm.Message) *llm.Message {
	return func([]llm.Message) *llm.Message {
		return &llm.Message{Role: domain.RoleAssistant, Content: content}
	}
}

func toolCallReply(calls ...llm.ToolCall) func([]llm.Message) *llm.Message {
	return func([]llm.Message) *llm.Message {
		return &llm.Message{Role: domain.RoleAssistant, ToolCalls: calls}
	}
}

func call(id, name, args string) llm.ToolCall {
	return llm.ToolCall{
		ID:   id,
		Type: "function",
		Function: llm.FunctionCall{
			Name:      name,
			Arguments: args,
		},
	}
}
