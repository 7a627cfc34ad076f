package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/taskdesk/taskdesk/data"
	"github.com/taskdesk/taskdesk/data/repository"
	"github.com/taskdesk/taskdesk/logger"
	"github.com/taskdesk/taskdesk/models"
	"github.com/taskdesk/taskdesk/paging"
	"github.com/taskdesk/taskdesk/query"
)

// ErrConflict is returned when an optimistic update collided with a
// concurrent change. The request fails; retrying automatically could
// overwrite a legitimate edit.
var ErrConflict = errors.New("task was modified concurrently")

const (
	maxTitleLen       = 50
	maxDescriptionLen = 200
	dateLayout        = "2006-01-02"
)

// TaskService handles task-related business logic.
type TaskService struct {
	data   *data.Data
	logger *logger.Logger
}

// NewTaskService creates a new task service.
func NewTaskService(d *data.Data, logger *logger.Logger) *TaskService {
	return &TaskService{
		data:   d,
		logger: logger,
	}
}

// TaskInput carries the user-editable task fields for create and edit.
// DueDate is a YYYY-MM-DD string; Validate parses it.
type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	IsCompleted bool   `json:"is_completed"`
}

// Validate checks the field constraints and returns a field → message map.
// An empty map means the input is valid.
func (in *TaskInput) Validate() map[string]string {
	errs := map[string]string{}

	if in.Title == "" {
		errs["title"] = "Title is required"
	} else if utf8.RuneCountInString(in.Title) > maxTitleLen {
		errs["title"] = fmt.Sprintf("Title cannot be longer than %d characters", maxTitleLen)
	}

	if utf8.RuneCountInString(in.Description) > maxDescriptionLen {
		errs["description"] = fmt.Sprintf("Description cannot be longer than %d characters", maxDescriptionLen)
	}

	if in.DueDate == "" {
		errs["due_date"] = "Due date is required"
	} else if _, err := time.Parse(dateLayout, in.DueDate); err != nil {
		errs["due_date"] = "Due date must be a valid date (YYYY-MM-DD)"
	}

	return errs
}

// dueDate parses the due date. Only meaningful after Validate passed.
func (in *TaskInput) dueDate() time.Time {
	t, _ := time.Parse(dateLayout, in.DueDate)
	return t
}

// ValidationError reports per-field constraint violations.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// ListParams are the raw listing parameters as supplied by the transport.
// SearchSupplied and StatusSupplied report whether the parameters were
// present in the request at all, which drives the page reset rule.
type ListParams struct {
	SortOrder      string
	CurrentFilter  string
	SearchString   string
	StatusFilter   string
	PageNumber     int
	SearchSupplied bool
	StatusSupplied bool
}

// ListResult is one page of tasks plus the echoed filter and sort state the
// presentation needs to rebuild its links.
type ListResult struct {
	Page *paging.Page[*models.Task]

	CurrentSort   string
	CurrentFilter string
	CurrentStatus string
	TitleSort     string
	DateSort      string
}

// List composes the filtered, sorted query and materializes one page.
//
// When a search string or status filter arrives with the request the page
// number resets to 1; otherwise the previously remembered filter is reused
// and the page number is taken as given.
func (s *TaskService) List(ctx context.Context, p ListParams) (*ListResult, error) {
	search := p.SearchString
	page := p.PageNumber
	if p.SearchSupplied || p.StatusSupplied {
		page = 1
	} else {
		search = p.CurrentFilter
	}

	crit := query.Parse(search, p.StatusFilter, p.SortOrder)

	pg, err := paging.Paginate(ctx, page, paging.DefaultPageSize,
		func(ctx context.Context) (int, error) {
			return s.data.TaskRepo.Count(ctx, crit)
		},
		func(ctx context.Context, offset, limit int) ([]*models.Task, error) {
			return s.data.TaskRepo.List(ctx, crit, offset, limit)
		})
	if err != nil {
		return nil, err
	}

	res := &ListResult{
		Page:          pg,
		CurrentSort:   p.SortOrder,
		CurrentFilter: search,
		CurrentStatus: p.StatusFilter,
		TitleSort:     string(query.SortTitleAsc),
		DateSort:      string(query.SortDateAsc),
	}
	// Sort link targets: the title link sorts descending only from the
	// default order; the date link flips its direction when active.
	if p.SortOrder == "" {
		res.TitleSort = string(query.SortTitleDesc)
	}
	if p.SortOrder == string(query.SortDateAsc) {
		res.DateSort = string(query.SortDateDesc)
	}

	return res, nil
}

// Get retrieves a task by ID, consulting the cache first when one is
// configured. Cache failures are logged and ignored.
func (s *TaskService) Get(ctx context.Context, id int) (*models.Task, error) {
	if cache := s.data.TaskCache; cache != nil {
		t, err := cache.GetTask(ctx, id)
		if err != nil {
			s.logger.Warn(ctx, "task cache read failed", "id", id, "error", err)
		} else if t != nil {
			return t, nil
		}
	}

	t, err := s.data.TaskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cache := s.data.TaskCache; cache != nil {
		if err := cache.SetTask(ctx, t, s.data.CacheTTL); err != nil {
			s.logger.Warn(ctx, "task cache write failed", "id", id, "error", err)
		}
	}

	return t, nil
}

// Create validates the input and inserts a new task.
func (s *TaskService) Create(ctx context.Context, in *TaskInput) (*models.Task, error) {
	if errs := in.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	t := &models.Task{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.dueDate(),
		IsCompleted: in.IsCompleted,
	}

	return s.data.TaskRepo.Create(ctx, t)
}

// Update validates the input and replaces the task's fields under
// optimistic concurrency. Returns repository.ErrNotFound when the task is
// missing or vanished, ErrConflict when a concurrent change is detected.
func (s *TaskService) Update(ctx context.Context, id int, in *TaskInput) (*models.Task, error) {
	if errs := in.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	existing, err := s.data.TaskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Title = in.Title
	existing.Description = in.Description
	existing.DueDate = in.dueDate()
	existing.IsCompleted = in.IsCompleted

	return s.saveGuarded(ctx, existing)
}

// ToggleComplete flips the task's completion flag under optimistic
// concurrency.
func (s *TaskService) ToggleComplete(ctx context.Context, id int) (*models.Task, error) {
	existing, err := s.data.TaskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.IsCompleted = !existing.IsCompleted

	return s.saveGuarded(ctx, existing)
}

// Delete removes a task by ID.
func (s *TaskService) Delete(ctx context.Context, id int) error {
	if err := s.data.TaskRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// saveGuarded runs the versioned update and maps its outcome onto the
// service error taxonomy.
func (s *TaskService) saveGuarded(ctx context.Context, t *models.Task) (*models.Task, error) {
	updated, outcome, err := s.data.TaskRepo.Update(ctx, t)
	if err != nil {
		return nil, err
	}

	switch outcome {
	case repository.UpdateConflict:
		s.logger.Warn(ctx, "optimistic update conflict", "id", t.ID, "version", t.Version)
		return nil, ErrConflict
	case repository.UpdateGone:
		return nil, repository.ErrNotFound
	}

	s.invalidate(ctx, t.ID)
	return updated, nil
}

// invalidate drops the cached copy after a write. Failures are logged; the
// entry expires by TTL anyway.
func (s *TaskService) invalidate(ctx context.Context, id int) {
	if cache := s.data.TaskCache; cache != nil {
		if err := cache.DeleteTask(ctx, id); err != nil {
			s.logger.Warn(ctx, "task cache invalidation failed", "id", id, "error", err)
		}
	}
}
