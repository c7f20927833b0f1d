// Package domain defines the business logic for the activity service.
package domain

import (
	"context"
	"log/slog"
	"time"
)

// Envelope messages returned by Service operations.
const (
	MessageSearchSuccess = "Success in the search for the activity"
	MessageCreated       = "Successfully created activity"
	MessageUpdated       = "Activity updated successfully"
	MessageDeleted       = "Activity deleted successfully"
)

// Operation names reported to the Observer.
const (
	OpSearch = "search"
	OpSave   = "save"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Outcomes reported to the Observer.
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// ActivityRepository captures persistence operations.
//
// FindByID returns (nil, nil) when no record matches. Any returned error is a store failure.
type ActivityRepository interface {
	FindByID(ctx context.Context, id int64) (*Activity, error)
	Create(ctx context.Context, fields NewActivity) (*Activity, error)
	Update(ctx context.Context, id int64, patch ActivityPatch) error
	Remove(ctx context.Context, activity Activity) error
}

// Observer receives one call per completed Service operation.
type Observer interface {
	ObserveOperation(operation, outcome string, elapsed time.Duration)
}

// Result is the envelope shared by every operation.
type Result struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// SearchResult wraps the activity found by SearchActivityByID.
type SearchResult struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Data       Activity `json:"data"`
}

// SaveResult carries the identifier assigned on create.
type SaveResult struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	ID         int64  `json:"id"`
}

// SaveActivityInput captures the payload from the API layer.
type SaveActivityInput struct {
	Title    string
	Subtitle string
	Pending  bool
}

// UpdateActivityInput carries the target id and the fields the caller supplied.
// A nil field was not supplied; an empty string is a supplied value.
type UpdateActivityInput struct {
	ID       int64
	Title    *string
	Subtitle *string
	Pending  *bool
}

// Patch returns the sparse set of changes described by the input.
func (in UpdateActivityInput) Patch() ActivityPatch {
	return ActivityPatch{
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Pending:  in.Pending,
	}
}

// Option configures optional behaviour for the Service.
type Option func(*Service)

// WithLogger overrides the logger used to report store failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithObserver registers an Observer for operation outcomes.
func WithObserver(observer Observer) Option {
	return func(s *Service) {
		s.observer = observer
	}
}

// Service orchestrates activity workflows.
//
// Service holds no mutable state and is safe for concurrent use. UpdateActivity and DeleteActivity
// read and then write without holding a lock, so concurrent calls for the same id race and the
// last write wins per field.
type Service struct {
	repo     ActivityRepository
	logger   *slog.Logger
	observer Observer
}

// NewService constructs a Service.
func NewService(repo ActivityRepository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SearchActivityByID fetches by ID.
func (s *Service) SearchActivityByID(ctx context.Context, id int64) (result SearchResult, err error) {
	defer s.observe(OpSearch, time.Now(), &err)

	activity, err := s.find(ctx, OpSearch, id)
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{
		StatusCode: 200,
		Message:    MessageSearchSuccess,
		Data:       *activity,
	}, nil
}

// SaveActivity creates a new activity and returns the store-assigned id.
func (s *Service) SaveActivity(ctx context.Context, input SaveActivityInput) (result SaveResult, err error) {
	defer s.observe(OpSave, time.Now(), &err)

	created, err := s.repo.Create(ctx, NewActivity{
		Title:    input.Title,
		Subtitle: input.Subtitle,
		Pending:  input.Pending,
	})
	if err != nil {
		return SaveResult{}, s.storeFailure(OpSave, 0, err)
	}
	return SaveResult{
		StatusCode: 200,
		Message:    MessageCreated,
		ID:         created.ID,
	}, nil
}

// UpdateActivity applies the supplied fields to an existing activity.
func (s *Service) UpdateActivity(ctx context.Context, input UpdateActivityInput) (result Result, err error) {
	defer s.observe(OpUpdate, time.Now(), &err)

	if _, err := s.find(ctx, OpUpdate, input.ID); err != nil {
		return Result{}, err
	}

	patch := input.Patch()
	if !patch.Empty() {
		if err := s.repo.Update(ctx, input.ID, patch); err != nil {
			return Result{}, s.storeFailure(OpUpdate, input.ID, err)
		}
	}
	return Result{StatusCode: 200, Message: MessageUpdated}, nil
}

// DeleteActivity permanently removes an existing activity.
func (s *Service) DeleteActivity(ctx context.Context, id int64) (result Result, err error) {
	defer s.observe(OpDelete, time.Now(), &err)

	activity, err := s.find(ctx, OpDelete, id)
	if err != nil {
		return Result{}, err
	}
	if err := s.repo.Remove(ctx, *activity); err != nil {
		return Result{}, s.storeFailure(OpDelete, id, err)
	}
	return Result{StatusCode: 200, Message: MessageDeleted}, nil
}

// find is the existence check shared by every operation that needs a stored record.
func (s *Service) find(ctx context.Context, op string, id int64) (*Activity, error) {
	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.storeFailure(op, id, err)
	}
	if activity == nil {
		return nil, &NotFoundError{ID: id}
	}
	return activity, nil
}

func (s *Service) storeFailure(op string, id int64, err error) error {
	s.logger.Error("activity store failure", slog.String("operation", op), slog.Int64("id", id), slog.Any("error", err))
	return internal(op, err)
}

func (s *Service) observe(op string, start time.Time, errp *error) {
	if s.observer == nil {
		return
	}
	outcome := OutcomeSuccess
	switch {
	case *errp == nil:
	case IsNotFound(*errp):
		outcome = OutcomeNotFound
	default:
		outcome = OutcomeError
	}
	s.observer.ObserveOperation(op, outcome, time.Since(start))
}
