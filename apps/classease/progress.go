package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/trezcool/classease/core"
	"github.com/trezcool/classease/core/student"
)

const clearScreen = "\x1b[H\x1b[2J"

func (cli *commandLine) progress(ctx context.Context, st student.SortType) error {
	students, err := cli.svc.Query(ctx, st)
	if err != nil {
		return err
	}
	cli.renderProgress(students, st)
	return nil
}

// watch re-renders the ranking after every change until interrupted.
func (cli *commandLine) watch(ctx context.Context, st student.SortType) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	snapshots, err := cli.svc.Watch(ctx, st)
	if err != nil {
		return err
	}
	// only this loop writes to cli.out
	listenErr := make(chan error, 1)
	if cli.listen != nil {
		go func() {
			err := cli.listen(ctx, func() { _ = cli.svc.Refresh(ctx) })
			if err != nil && ctx.Err() == nil {
				listenErr <- err
			}
		}()
	}

	redraw := isTerminalFunc(int(os.Stdout.Fd()))
	for {
		select {
		case students, ok := <-snapshots:
			if !ok {
				return nil
			}
			if redraw {
				cli.printf("%s", clearScreen)
			}
			cli.renderProgress(students, st)
			cli.printf("\n")
		case err := <-listenErr:
			cli.printf("no longer listening for changes: %v\n", err)
		}
	}
}

func (cli *commandLine) setSort(raw string) error {
	st := student.SortType(core.CleanString(raw, true /* lower */))
	if !st.Valid() {
		cli.printf("Usage: sort id|score|grade\n")
		return errHelp
	}
	cli.svc.SetSortType(st)
	if err := cli.prefs.SetSortType(st); err != nil {
		return err
	}
	cli.printf("ranking by %s\n", st)
	return nil
}
