package student

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/trezcool/classease/core"
)

var (
	// errors
	ErrNotFound      = errors.New("student not found")
	ErrAlreadyExists = errors.New("a student with this id already exists")
	ErrFeedClosed    = errors.New("student feed closed")
)

type (
	// Repository persists students. Implementations store Scores.GradeGroup() on every write,
	// never the GradeGroup field they are handed.
	Repository interface {
		// CreateStudent assigns an ID unless one is set. A duplicate ID writes nothing and returns ErrAlreadyExists.
		CreateStudent(ctx context.Context, stu Student) (Student, error)
		UpdateStudent(ctx context.Context, stu Student) (Student, error)
		// UpdateStudents replaces all given students at once, or none.
		UpdateStudents(ctx context.Context, students ...Student) error
		GetStudentByID(ctx context.Context, id int64) (Student, error)
		QueryStudents(ctx context.Context, st SortType) ([]Student, error)
		DeleteStudentsByID(ctx context.Context, ids ...int64) (int64, error)
		DeleteAllStudents(ctx context.Context) (int64, error)
	}

	Service struct {
		repo   Repository
		feed   *Feed
		logger core.Logger

		mu       sync.RWMutex
		sortType SortType
	}
)

func NewService(repo Repository, logger core.Logger) *Service {
	return &Service{
		repo:     repo,
		feed:     NewFeed(repo, logger),
		logger:   logger,
		sortType: DefaultSortType,
	}
}

func now() time.Time { return time.Now().UTC() }

// changed pushes fresh snapshots to live views after a successful write.
func (svc *Service) changed(ctx context.Context) {
	_ = svc.feed.Notify(ctx) // logged by the feed
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	if err := ns.Validate(); err != nil {
		return Student{}, err
	}
	tstamp := now()
	stu := ns.Student()
	stu.CreatedAt = tstamp
	stu.UpdatedAt = tstamp

	stu, err := svc.repo.CreateStudent(ctx, stu)
	if err != nil {
		svc.logger.Error(fmt.Sprintf("inserting %s failed: %v", ns.Name, err), err)
		return Student{}, err
	}
	svc.logger.Info(fmt.Sprintf("inserted %s (#%d)", stu.Name, stu.ID), stu)
	svc.changed(ctx)
	return stu, nil
}

func (svc *Service) Update(ctx context.Context, us UpdateStudent) (Student, error) {
	if err := us.Validate(); err != nil {
		return Student{}, err
	}
	orig, err := svc.repo.GetStudentByID(ctx, us.StudentID())
	if err != nil {
		return Student{}, err
	}
	stu := us.apply(orig)
	stu.UpdatedAt = now()
	return svc.save(ctx, stu)
}

// UpdateScore sets one score and persists the recomputed grade group with it.
func (svc *Service) UpdateScore(ctx context.Context, su ScoreUpdate) (Student, error) {
	if err := su.Validate(); err != nil {
		return Student{}, err
	}
	id, subject, score := su.Parsed()
	orig, err := svc.repo.GetStudentByID(ctx, id)
	if err != nil {
		return Student{}, err
	}
	stu := orig.WithScore(subject, score)
	stu.UpdatedAt = now()
	return svc.save(ctx, stu)
}

func (svc *Service) save(ctx context.Context, stu Student) (Student, error) {
	saved, err := svc.repo.UpdateStudent(ctx, stu)
	if err != nil {
		svc.logger.Error(fmt.Sprintf("updating %s failed: %v", stu.Name, err), err, stu)
		return Student{}, err
	}
	svc.logger.Info(fmt.Sprintf("updated %s (#%d)", saved.Name, saved.ID), saved)
	svc.changed(ctx)
	return saved, nil
}

// ClearScores resets every score of every student in a single batch.
func (svc *Service) ClearScores(ctx context.Context) error {
	students, err := svc.repo.QueryStudents(ctx, SortByID)
	if err != nil {
		return err
	}
	tstamp := now()
	cleared := make([]Student, 0, len(students))
	for _, stu := range students {
		stu = stu.WithoutScores()
		stu.UpdatedAt = tstamp
		cleared = append(cleared, stu)
	}
	if err = svc.repo.UpdateStudents(ctx, cleared...); err != nil {
		svc.logger.Error(fmt.Sprintf("clearing scores failed: %v", err), err)
		return err
	}
	svc.logger.Info(fmt.Sprintf("cleared scores of %d students", len(cleared)))
	svc.changed(ctx)
	return nil
}

func (svc *Service) Delete(ctx context.Context, ids ...int64) (int64, error) {
	n, err := svc.repo.DeleteStudentsByID(ctx, ids...)
	if err != nil {
		svc.logger.Error(fmt.Sprintf("deleting students %v failed: %v", ids, err), err)
		return 0, err
	}
	svc.logger.Info(fmt.Sprintf("deleted %d students", n))
	if n > 0 {
		svc.changed(ctx)
	}
	return n, nil
}

func (svc *Service) DeleteAll(ctx context.Context) (int64, error) {
	n, err := svc.repo.DeleteAllStudents(ctx)
	if err != nil {
		svc.logger.Error(fmt.Sprintf("deleting all students failed: %v", err), err)
		return 0, err
	}
	svc.logger.Info(fmt.Sprintf("deleted all %d students", n))
	svc.changed(ctx)
	return n, nil
}

func (svc *Service) GetByID(ctx context.Context, id int64) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *Service) Query(ctx context.Context, st SortType) ([]Student, error) {
	return svc.repo.QueryStudents(ctx, ParseSortType(string(st)))
}

// Progress returns the roster ranked by the active sort type.
func (svc *Service) Progress(ctx context.Context) ([]Student, error) {
	return svc.Query(ctx, svc.SortType())
}

func (svc *Service) Cohort(ctx context.Context) (Cohort, error) {
	students, err := svc.repo.QueryStudents(ctx, SortByID)
	if err != nil {
		return Cohort{}, err
	}
	return NewCohort(students), nil
}

// Watch subscribes to live ranked snapshots until ctx is done.
func (svc *Service) Watch(ctx context.Context, st SortType) (<-chan []Student, error) {
	return svc.feed.Subscribe(ctx, st)
}

// Refresh pushes fresh snapshots to watchers, e.g. after another process wrote to the store.
func (svc *Service) Refresh(ctx context.Context) error {
	return svc.feed.Notify(ctx)
}

func (svc *Service) SortType() SortType {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return svc.sortType
}

func (svc *Service) SetSortType(st SortType) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.sortType = ParseSortType(string(st))
}

func (svc *Service) Feed() *Feed { return svc.feed }

// Close ends all live views.
func (svc *Service) Close() {
	svc.feed.Close()
}
