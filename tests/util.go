package testutil

import (
	"context"
	"database/sql"
	"io/ioutil"
	"log"
	"os"
	"testing"
	"time"

	"github.com/trezcool/classease/core"
	"github.com/trezcool/classease/core/student"
	"github.com/trezcool/classease/services/logger"
	"github.com/trezcool/classease/storage/database"
	"github.com/trezcool/classease/storage/database/dummy"
)

// NewLogger returns a logger that reports nowhere.
func NewLogger() core.Logger {
	return logsvc.NewRollbarLogger(log.New(ioutil.Discard, "", 0), &core.Config{Env: "TEST", TestMode: true})
}

// NewRepository returns an empty in-memory student repository.
func NewRepository(t *testing.T) student.Repository {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("NewRepository() failed: %v", err)
	}
	return dummydb.NewStudentRepository(db)
}

// PrepareDB returns the migrated Postgres test database with an empty students table.
// The test is skipped unless TEST_DATABASE_HOST is set.
func PrepareDB(t *testing.T) *sql.DB {
	if os.Getenv("TEST_DATABASE_HOST") == "" {
		t.Skip("TEST_DATABASE_HOST not set")
	}
	t.Setenv("ENV", "TEST")
	conf := core.NewConfig()
	conf.Database.Engine = "postgres"

	if err := database.CreateIfNotExist(conf); err != nil {
		t.Fatalf("database.CreateIfNotExist() failed: %v", err)
	}
	db, err := database.Open(conf)
	if err != nil {
		t.Fatalf("database.Open() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = database.Migrate(db); err != nil {
		t.Fatalf("database.Migrate() failed: %v", err)
	}
	if _, err = db.Exec("TRUNCATE students RESTART IDENTITY"); err != nil {
		t.Fatalf("truncating students failed: %v", err)
	}
	return db
}

// CreateStudent stores a student with the given scores, in student.Subjects order.
func CreateStudent(
	t *testing.T,
	repo student.Repository,
	name string,
	gender student.Gender,
	scores ...int,
) student.Student {
	tstamp := time.Now().UTC()
	stu := student.Student{
		Name:      name,
		Gender:    gender,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	for i, score := range scores {
		if i >= len(student.Subjects) {
			break
		}
		stu = stu.WithScore(student.Subjects[i], score)
	}
	stu, err := repo.CreateStudent(context.Background(), stu)
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return stu
}
