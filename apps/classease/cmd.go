package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/labstack/gommon/color"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/term"

	"github.com/trezcool/classease/core/student"
	"github.com/trezcool/classease/services/prefs"
	"github.com/trezcool/classease/storage/database"
)

var (
	readConfirmFunc = readConfirm     // mockable
	isTerminalFunc  = term.IsTerminal // mockable
	gooseRunFunc    = database.Run    // mockable

	stdinFd = int(os.Stdin.Fd())

	errHelp     = errors.New("help provided")
	errAborted  = errors.New("aborted")
	errNoDB     = errors.New("migrations need a postgres database")
	errNotATerm = errors.New("not a terminal: pass -yes to confirm")
)

var commands = []string{
	"add", "edit", "delete", "show", "score", "clear-scores", "delete-all",
	"progress", "sort", "stats", "watch", "migrate",
}

type commandLine struct {
	svc   *student.Service
	prefs *prefs.Store
	db    *sql.DB // nil with the memory engine
	// listen reports changes made by other processes; nil with the memory engine
	listen func(ctx context.Context, notify func()) error

	in  io.Reader
	out io.Writer
	clr *color.Color
}

func (cli *commandLine) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cli.out, format, args...)
}

func (cli *commandLine) printUsage() {
	cli.printf("Usage:\n")
	cli.printf("  add -name NAME -gender M|F|O [-id ID]              - add a student\n")
	cli.printf("  edit -id ID [-name NAME] [-gender M|F|O]           - edit a student's details\n")
	cli.printf("  delete ID...                                       - delete students\n")
	cli.printf("  show -id ID                                        - show a student's scores & grades\n")
	cli.printf("  score -id ID -subject SUBJECT -score SCORE         - record a score (0-100)\n")
	cli.printf("  clear-scores [-yes]                                - reset every score to 0\n")
	cli.printf("  delete-all [-yes]                                  - delete every student\n")
	cli.printf("  progress [-sort id|score|grade]                    - rank the class\n")
	cli.printf("  sort [id|score|grade]                              - show or set the default ranking\n")
	cli.printf("  stats [-subject SUBJECT]                           - class statistics\n")
	cli.printf("  watch [-sort id|score|grade]                       - live ranking until interrupted\n")
	cli.printf("  migrate COMMAND [ARGS]                             - run database migrations (goose commands)\n")
	cli.printf("\nSubjects: %s\n", strings.Join(subjectNames(), ", "))
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	switch cmd, cmdArgs := args[1], args[2:]; cmd {
	case "add":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		fs.SetOutput(cli.out)
		id := fs.String("id", "", "Optional student number. Assigned automatically when omitted.")
		name := fs.String("name", "", "The student's full name.")
		gender := fs.String("gender", "", "M (male), F (female) or O (other).")
		if err := parse(fs, cmdArgs); err != nil {
			return err
		}
		return cli.add(ctx, student.NewStudent{ID: *id, Name: *name, Gender: *gender})

	case "edit":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		fs.SetOutput(cli.out)
		id := fs.String("id", "", "The student's number.")
		name := fs.String("name", "", "The new name.")
		gender := fs.String("gender", "", "The new gender: M, F or O.")
		if err := parse(fs, cmdArgs); err != nil {
			return err
		}
		if *id == "" || (*name == "" && *gender == "") {
			fs.Usage()
			return errHelp
		}
		return cli.edit(ctx, student.UpdateStudent{ID: *id, Name: *name, Gender: *gender})

	case "delete":
		if len(cmdArgs) == 0 {
			cli.printf("Usage: delete ID...\n")
			return errHelp
		}
		return cli.delete(ctx, cmdArgs)

	case "show":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		fs.SetOutput(cli.out)
		id := fs.Int64("id", 0, "The student's number.")
		if err := parse(fs, cmdArgs); err != nil {
			return err
		}
		if *id <= 0 {
			fs.Usage()
			return errHelp
		}
		return cli.show(ctx, *id)

	case "score":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		fs.SetOutput(cli.out)
		id := fs.String("id", "", "The student's number.")
		subject := fs.String("subject", "", "One of: "+strings.Join(subjectNames(), ", ")+".")
		score := fs.String("score", "", "The score, 0 to 100.")
		if err := parse(fs, cmdArgs); err != nil {
			return err
		}
		return cli.score(ctx, student.ScoreUpdate{ID: *id, Subject: *subject, Score: *score})

	case "clear-scores", "delete-all":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		fs.SetOutput(cli.out)
		yes := fs.Bool("yes", false, "Do not ask for confirmation.")
		if err := parse(fs, cmdArgs); err != nil {
			return err
		}
		if cmd == "clear-scores" {
			return cli.clearScores(ctx, *yes)
		}
		return cli.deleteAll(ctx, *yes)

	case "progress", "watch":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		fs.SetOutput(cli.out)
		sortType := fs.String("sort", "", "Ranking: id, score or grade. Defaults to the saved ranking.")
		if err := parse(fs, cmdArgs); err != nil {
			return err
		}
		st := cli.svc.SortType()
		if *sortType != "" {
			if st = student.SortType(strings.ToLower(*sortType)); !st.Valid() {
				fs.Usage()
				return errHelp
			}
		}
		if cmd == "progress" {
			return cli.progress(ctx, st)
		}
		return cli.watch(ctx, st)

	case "sort":
		if len(cmdArgs) == 0 {
			cli.printf("%s\n", cli.svc.SortType())
			return nil
		}
		return cli.setSort(cmdArgs[0])

	case "stats":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		fs.SetOutput(cli.out)
		subject := fs.String("subject", "", "Show the pass/fail split and grade breakdown of one subject.")
		if err := parse(fs, cmdArgs); err != nil {
			return err
		}
		return cli.stats(ctx, *subject)

	case "migrate":
		if len(cmdArgs) == 0 {
			cli.printf("Usage: migrate up|up-by-one|up-to|down|down-to|redo|reset|status|version|create|fix [ARGS]\n")
			return errHelp
		}
		return cli.migrate(cmdArgs)

	default:
		if suggestion := suggest(cmd); suggestion != "" {
			cli.printf("unknown command %q, did you mean %q?\n\n", cmd, suggestion)
		}
		cli.printUsage()
		return errHelp
	}
}

// parse parses flags; asking for help is not an error.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return errHelp
		}
		return err
	}
	return nil
}

// confirm asks before destructive commands unless yes is set.
func (cli *commandLine) confirm(question string, yes bool) error {
	if yes {
		return nil
	}
	if !isTerminalFunc(stdinFd) {
		return errNotATerm
	}
	cli.printf("%s [y/N] ", question)
	ok, err := readConfirmFunc(cli.in)
	if err != nil {
		return err
	}
	if !ok {
		return errAborted
	}
	return nil
}

func readConfirm(in io.Reader) (bool, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// suggest returns the command closest to a mistyped one, if any is close enough.
func suggest(cmd string) string {
	var best string
	var bestRatio float64
	for _, c := range commands {
		m := difflib.NewMatcher(strings.Split(cmd, ""), strings.Split(c, ""))
		if r := m.Ratio(); r > bestRatio {
			best, bestRatio = c, r
		}
	}
	if bestRatio < 0.6 {
		return ""
	}
	return best
}

func subjectNames() []string {
	names := make([]string, 0, len(student.Subjects))
	for _, subj := range student.Subjects {
		names = append(names, string(subj))
	}
	return names
}
