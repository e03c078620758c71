package dummydb

import (
	"context"

	"github.com/trezcool/classease/core/student"
)

type studentRepository struct {
	db *studentTable
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.student}
}

func (repo *studentRepository) query() []student.Student {
	students := make([]student.Student, 0, len(repo.db.table))
	for _, stu := range repo.db.table {
		students = append(students, *stu)
	}
	return students
}

func (repo *studentRepository) CreateStudent(_ context.Context, stu student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if stu.ID > 0 {
		if _, ok := repo.db.table[stu.ID]; ok {
			return student.Student{}, student.ErrAlreadyExists
		}
	} else {
		stu.ID = repo.db.pkLast + 1
		for repo.db.table[stu.ID] != nil {
			stu.ID++
		}
	}
	if stu.ID > repo.db.pkLast {
		repo.db.pkLast = stu.ID
	}
	stu.GradeGroup = stu.Scores.GradeGroup()
	repo.db.table[stu.ID] = &stu
	return stu, nil
}

func (repo *studentRepository) UpdateStudent(_ context.Context, stu student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[stu.ID]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	stu.CreatedAt = orig.CreatedAt
	stu.GradeGroup = stu.Scores.GradeGroup()
	repo.db.table[stu.ID] = &stu
	return stu, nil
}

func (repo *studentRepository) UpdateStudents(_ context.Context, students ...student.Student) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	// all or nothing
	for _, stu := range students {
		if _, ok := repo.db.table[stu.ID]; !ok {
			return student.ErrNotFound
		}
	}
	for _, stu := range students {
		stu := stu
		stu.CreatedAt = repo.db.table[stu.ID].CreatedAt
		stu.GradeGroup = stu.Scores.GradeGroup()
		repo.db.table[stu.ID] = &stu
	}
	return nil
}

func (repo *studentRepository) GetStudentByID(_ context.Context, id int64) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if stu, ok := repo.db.table[id]; ok {
		return *stu, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) QueryStudents(_ context.Context, st student.SortType) ([]student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return student.Sort(repo.query(), st), nil
}

func (repo *studentRepository) DeleteStudentsByID(_ context.Context, ids ...int64) (int64, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	var n int64
	for _, id := range ids {
		if _, ok := repo.db.table[id]; ok {
			delete(repo.db.table, id)
			n++
		}
	}
	return n, nil
}

func (repo *studentRepository) DeleteAllStudents(_ context.Context) (int64, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	n := int64(len(repo.db.table))
	repo.db.table = make(map[int64]*student.Student)
	return n, nil
}
