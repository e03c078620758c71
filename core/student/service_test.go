package student_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/classease/core"
	"github.com/trezcool/classease/core/student"
	"github.com/trezcool/classease/tests"
)

func setup(t *testing.T) (*student.Service, student.Repository) {
	repo := testutil.NewRepository(t)
	svc := student.NewService(repo, testutil.NewLogger())
	t.Cleanup(svc.Close)
	return svc, repo
}

func TestService_Create(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	stu, err := svc.Create(ctx, student.NewStudent{Name: " jane ", Gender: "f"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), stu.ID)
	assert.Equal(t, "JANE", stu.Name)
	assert.Equal(t, student.GenderFemale, stu.Gender)
	assert.Equal(t, 0, stu.Total())
	assert.Equal(t, 0, stu.GradeGroup)
	assert.False(t, stu.CreatedAt.IsZero())

	got, err := repo.GetStudentByID(ctx, stu.ID)
	require.NoError(t, err)
	assert.Equal(t, stu, got)

	t.Run("explicit id", func(t *testing.T) {
		stu, err := svc.Create(ctx, student.NewStudent{ID: "10", Name: "john", Gender: "M"})
		require.NoError(t, err)
		assert.Equal(t, int64(10), stu.ID)

		next, err := svc.Create(ctx, student.NewStudent{Name: "jim", Gender: "M"})
		require.NoError(t, err)
		assert.Equal(t, int64(11), next.ID)
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := svc.Create(ctx, student.NewStudent{ID: "10", Name: "other", Gender: "O"})
		assert.Equal(t, student.ErrAlreadyExists, err)

		got, err := svc.GetByID(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, "JOHN", got.Name, "existing row untouched")
	})

	t.Run("id out of range", func(t *testing.T) {
		students, err := svc.Query(ctx, student.SortByID)
		require.NoError(t, err)
		n := len(students)

		_, err = svc.Create(ctx, student.NewStudent{ID: "99999999999999999999", Name: "jane", Gender: "F"})
		fields, ok := core.FieldErrors(err)
		require.True(t, ok, "validation error expected, got %v", err)
		assert.Contains(t, fields, "id")

		students, err = svc.Query(ctx, student.SortByID)
		require.NoError(t, err)
		assert.Len(t, students, n, "nothing stored")
	})

	t.Run("invalid", func(t *testing.T) {
		students, err := svc.Query(ctx, student.SortByID)
		require.NoError(t, err)
		n := len(students)

		_, err = svc.Create(ctx, student.NewStudent{Name: "", Gender: "Z"})
		assert.Error(t, err)

		students, err = svc.Query(ctx, student.SortByID)
		require.NoError(t, err)
		assert.Len(t, students, n)
	})
}

func TestService_UpdateScore(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()
	stu := testutil.CreateStudent(t, repo, "JANE", student.GenderFemale)

	var err error
	for _, subj := range student.Subjects {
		stu, err = svc.UpdateScore(ctx, student.ScoreUpdate{ID: "1", Subject: string(subj), Score: "100"})
		require.NoError(t, err)
	}
	assert.Equal(t, 600, stu.Total())
	assert.Equal(t, 24, stu.GradeGroup)

	stored, err := repo.GetStudentByID(ctx, stu.ID)
	require.NoError(t, err)
	assert.Equal(t, 24, stored.GradeGroup)
	assert.Equal(t, stored.Scores.GradeGroup(), stored.GradeGroup)

	t.Run("unknown student", func(t *testing.T) {
		_, err := svc.UpdateScore(ctx, student.ScoreUpdate{ID: "99", Subject: "arts", Score: "50"})
		assert.Equal(t, student.ErrNotFound, err)
		_, err = repo.GetStudentByID(ctx, 99)
		assert.Equal(t, student.ErrNotFound, err)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := svc.UpdateScore(ctx, student.ScoreUpdate{ID: "1", Subject: "arts", Score: "101"})
		assert.Error(t, err)
		stored, err := repo.GetStudentByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 100, stored.Arts)
	})
}

func TestService_allFailing(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()
	testutil.CreateStudent(t, repo, "JOHN", student.GenderMale)

	var stu student.Student
	var err error
	for _, subj := range student.Subjects {
		stu, err = svc.UpdateScore(ctx, student.ScoreUpdate{ID: "1", Subject: string(subj), Score: "39"})
		require.NoError(t, err)
	}
	assert.Equal(t, 234, stu.Total())
	assert.Equal(t, 0, stu.GradeGroup)

	c, err := svc.Cohort(ctx)
	require.NoError(t, err)
	for _, subj := range student.Subjects {
		assert.Equal(t, 0, c.PassFail(subj).Passed, subj)
		assert.Equal(t, 1, c.PassFail(subj).Failed, subj)
	}
}

func TestService_Update(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()
	orig := testutil.CreateStudent(t, repo, "JANE", student.GenderFemale, 70, 80)

	stu, err := svc.Update(ctx, student.UpdateStudent{ID: "1", Name: "jane doe"})
	require.NoError(t, err)
	assert.Equal(t, "JANE DOE", stu.Name)
	assert.Equal(t, student.GenderFemale, stu.Gender)
	assert.Equal(t, orig.Scores, stu.Scores)
	assert.Equal(t, orig.CreatedAt, stu.CreatedAt)

	_, err = svc.Update(ctx, student.UpdateStudent{ID: "42", Name: "ghost"})
	assert.Equal(t, student.ErrNotFound, err)
}

func TestService_ClearScores(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()
	testutil.CreateStudent(t, repo, "JANE", student.GenderFemale, 100, 100, 100, 100, 100, 100)
	testutil.CreateStudent(t, repo, "JOHN", student.GenderMale, 50, 60, 70)

	require.NoError(t, svc.ClearScores(ctx))

	students, err := svc.Query(ctx, student.SortByID)
	require.NoError(t, err)
	require.Len(t, students, 2)
	for _, stu := range students {
		assert.Equal(t, 0, stu.Total(), stu.Name)
		assert.Equal(t, 0, stu.GradeGroup, stu.Name)
	}
}

func TestService_Delete(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()
	for _, name := range []string{"A", "B", "C"} {
		testutil.CreateStudent(t, repo, name, student.GenderOther)
	}

	n, err := svc.Delete(ctx, 1, 3, 99)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	students, err := svc.Query(ctx, student.SortByID)
	require.NoError(t, err)
	if assert.Len(t, students, 1) {
		assert.Equal(t, "B", students[0].Name)
	}

	n, err = svc.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	students, err = svc.Query(ctx, student.SortByID)
	require.NoError(t, err)
	assert.Empty(t, students)
}

func TestService_Progress(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()
	testutil.CreateStudent(t, repo, "A", student.GenderMale, 99, 100, 100, 100, 100, 100)
	testutil.CreateStudent(t, repo, "B", student.GenderFemale, 100, 100, 100, 100, 100, 100)

	assert.Equal(t, student.SortByScore, svc.SortType())
	students, err := svc.Progress(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, names(students))

	svc.SetSortType(student.SortByID)
	students, err = svc.Progress(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, names(students))

	svc.SetSortType("lol")
	assert.Equal(t, student.SortByScore, svc.SortType())
}

func names(students []student.Student) []string {
	out := make([]string, 0, len(students))
	for _, stu := range students {
		out = append(out, stu.Name)
	}
	return out
}
