package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/classease/core"
	"github.com/trezcool/classease/core/student"
)

const studentTable = "students"

// realignIDSeq moves the id sequence up to the highest stored id after an explicit id insert.
// It never moves it down, so ids freed by deletes are not handed out again.
const realignIDSeq = `SELECT setval(pg_get_serial_sequence('students', 'id'), ` +
	`GREATEST((SELECT MAX(id) FROM students), (SELECT last_value FROM students_id_seq)))`

var studentColumns = []string{
	"id", "name", "gender",
	"arts", "chichewa", "english", "maths", "science", "social",
	"grade_group", "created_at", "updated_at",
}

var returning = strings.Join(studentColumns, ", ")

type studentRepository struct {
	db *sqlx.DB
	sb squirrel.StatementBuilderType
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) student.Repository {
	return &studentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// values maps the writable columns; the grade group is always derived from the scores.
func values(stu student.Student) map[string]interface{} {
	return map[string]interface{}{
		"name":        stu.Name,
		"gender":      string(stu.Gender),
		"arts":        stu.Arts,
		"chichewa":    stu.Chichewa,
		"english":     stu.English,
		"maths":       stu.Maths,
		"science":     stu.Science,
		"social":      stu.Social,
		"grade_group": stu.Scores.GradeGroup(),
		"updated_at":  stu.UpdatedAt.UTC(),
	}
}

func (repo *studentRepository) insertQuery(stu student.Student) squirrel.InsertBuilder {
	vals := values(stu)
	vals["created_at"] = stu.CreatedAt.UTC()
	if stu.ID > 0 {
		vals["id"] = stu.ID
	}
	return repo.sb.Insert(studentTable).
		SetMap(vals).
		Suffix("ON CONFLICT (id) DO NOTHING RETURNING " + returning)
}

func (repo *studentRepository) updateQuery(stu student.Student) squirrel.UpdateBuilder {
	return repo.sb.Update(studentTable).
		SetMap(values(stu)).
		Where(squirrel.Eq{"id": stu.ID})
}

func (repo *studentRepository) selectQuery(st student.SortType) squirrel.SelectBuilder {
	return repo.sb.Select(studentColumns...).
		From(studentTable).
		OrderBy(core.OrderBy(st.Ordering()...)...)
}

func (repo *studentRepository) CreateStudent(ctx context.Context, stu student.Student) (student.Student, error) {
	q, args, err := repo.insertQuery(stu).ToSql()
	if err != nil {
		return student.Student{}, errors.Wrap(err, "building insert")
	}

	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	var created student.Student
	if err = tx.QueryRowxContext(ctx, q, args...).StructScan(&created); err != nil {
		if err == sql.ErrNoRows {
			return student.Student{}, student.ErrAlreadyExists
		}
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	if stu.ID > 0 {
		if _, err = tx.ExecContext(ctx, realignIDSeq); err != nil {
			return student.Student{}, errors.Wrap(err, "realigning id sequence")
		}
	}
	if err = tx.Commit(); err != nil {
		return student.Student{}, errors.Wrap(err, "committing insert")
	}
	return created, nil
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, stu student.Student) (student.Student, error) {
	q, args, err := repo.updateQuery(stu).Suffix("RETURNING " + returning).ToSql()
	if err != nil {
		return student.Student{}, errors.Wrap(err, "building update")
	}

	var updated student.Student
	if err = repo.db.QueryRowxContext(ctx, q, args...).StructScan(&updated); err != nil {
		if err == sql.ErrNoRows {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	return updated, nil
}

func (repo *studentRepository) UpdateStudents(ctx context.Context, students ...student.Student) error {
	if len(students) == 0 {
		return nil
	}

	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	for _, stu := range students {
		q, args, err := repo.updateQuery(stu).ToSql()
		if err != nil {
			return errors.Wrap(err, "building update")
		}
		res, err := tx.ExecContext(ctx, q, args...)
		if err != nil {
			return errors.Wrapf(err, "updating student %d", stu.ID)
		}
		if n, err := res.RowsAffected(); err != nil {
			return errors.Wrap(err, "counting updated rows")
		} else if n == 0 {
			return student.ErrNotFound
		}
	}
	return errors.Wrap(tx.Commit(), "committing updates")
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id int64) (student.Student, error) {
	q, args, err := repo.sb.Select(studentColumns...).
		From(studentTable).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return student.Student{}, errors.Wrap(err, "building select")
	}

	var stu student.Student
	if err = repo.db.GetContext(ctx, &stu, q, args...); err != nil {
		if err == sql.ErrNoRows {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "selecting student")
	}
	return stu, nil
}

func (repo *studentRepository) QueryStudents(ctx context.Context, st student.SortType) ([]student.Student, error) {
	q, args, err := repo.selectQuery(st).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building select")
	}

	students := make([]student.Student, 0)
	if err = repo.db.SelectContext(ctx, &students, q, args...); err != nil {
		return nil, errors.Wrap(err, "selecting students")
	}
	return students, nil
}

func (repo *studentRepository) DeleteStudentsByID(ctx context.Context, ids ...int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	q, args, err := repo.sb.Delete(studentTable).Where(squirrel.Eq{"id": ids}).ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "building delete")
	}
	return repo.exec(ctx, q, args...)
}

func (repo *studentRepository) DeleteAllStudents(ctx context.Context) (int64, error) {
	q, args, err := repo.sb.Delete(studentTable).ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "building delete")
	}
	return repo.exec(ctx, q, args...)
}

func (repo *studentRepository) exec(ctx context.Context, q string, args ...interface{}) (int64, error) {
	res, err := repo.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting students")
	}
	n, err := res.RowsAffected()
	return n, errors.Wrap(err, "counting deleted rows")
}
