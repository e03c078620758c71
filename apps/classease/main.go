package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"sort"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/gommon/color"
	"github.com/pkg/errors"

	"github.com/trezcool/classease/core"
	"github.com/trezcool/classease/core/student"
	"github.com/trezcool/classease/services/logger"
	"github.com/trezcool/classease/services/prefs"
	"github.com/trezcool/classease/storage/database"
	"github.com/trezcool/classease/storage/database/dummy"
	"github.com/trezcool/classease/storage/database/sqlx"
)

var logger core.Logger

func main() {
	conf := core.NewConfig()

	var logOut io.Writer = ioutil.Discard
	if conf.Debug {
		logOut = os.Stderr
	}
	logger = logsvc.NewRollbarLogger(log.New(logOut, "CLASSEASE : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)

	// set up DB
	var db *sql.DB
	var repo student.Repository
	var listen func(ctx context.Context, notify func()) error
	switch conf.Database.Engine {
	case "memory":
		mem, err := dummydb.Open()
		errAndDie(err)
		repo = dummydb.NewStudentRepository(mem)
	default:
		errAndDie(database.CreateIfNotExist(conf))
		var err error
		db, err = database.Open(conf)
		errAndDie(err)
		defer func() { _ = db.Close() }()
		if len(os.Args) < 2 || os.Args[1] != "migrate" {
			errAndDie(database.Migrate(db))
		}
		repo = sqlxrepos.NewStudentRepository(sqlx.NewDb(db, "postgres"))
		listen = func(ctx context.Context, notify func()) error {
			return database.Listen(ctx, conf, logger, notify)
		}
	}

	store, err := prefs.Open(conf.PrefsFile)
	errAndDie(err)

	svc := student.NewService(repo, logger)
	defer svc.Close()
	svc.SetSortType(store.SortType())

	clr := color.New()
	if !isTerminalFunc(int(os.Stdout.Fd())) {
		clr.Disable()
	}

	// start CLI
	cli := commandLine{
		svc:    svc,
		prefs:  store,
		db:     db,
		listen: listen,
		in:     os.Stdin,
		out:    os.Stdout,
		clr:    clr,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			report(os.Stderr, err)
		}
		svc.Close()
		os.Exit(1)
	}
}

// report prints err, one line per invalid field for validation failures.
func report(w io.Writer, err error) {
	fields, ok := core.FieldErrors(err)
	if !ok {
		_, _ = fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	_, _ = fmt.Fprintln(w, "error: invalid input")
	for _, name := range names {
		_, _ = fmt.Fprintf(w, "  %s: %s\n", name, fields[name])
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(errors.Wrap(err, "startup").Error(), err)
	}
}
