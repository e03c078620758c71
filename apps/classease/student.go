package main

import (
	"context"
	"fmt"

	"github.com/trezcool/classease/core"
	"github.com/trezcool/classease/core/student"
)

func (cli *commandLine) add(ctx context.Context, ns student.NewStudent) error {
	stu, err := cli.svc.Create(ctx, ns)
	if err != nil {
		return err
	}
	cli.printf("added %s (#%d)\n", stu.Name, stu.ID)
	return nil
}

func (cli *commandLine) edit(ctx context.Context, us student.UpdateStudent) error {
	stu, err := cli.svc.Update(ctx, us)
	if err != nil {
		return err
	}
	cli.printf("updated #%d: %s (%s)\n", stu.ID, stu.Name, stu.Gender)
	return nil
}

func (cli *commandLine) delete(ctx context.Context, rawIDs []string) error {
	ids := make([]int64, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, ok := core.ParseID(raw)
		if !ok {
			return core.NewValidationError(
				fmt.Errorf("invalid id %q", raw),
				core.FieldError{Field: "id", Error: fmt.Sprintf("%q is not a student number", raw)},
			)
		}
		ids = append(ids, id)
	}
	n, err := cli.svc.Delete(ctx, ids...)
	if err != nil {
		return err
	}
	cli.printf("deleted %d student(s)\n", n)
	return nil
}

func (cli *commandLine) show(ctx context.Context, id int64) error {
	stu, err := cli.svc.GetByID(ctx, id)
	if err != nil {
		return err
	}
	cli.renderStudent(stu)
	return nil
}

func (cli *commandLine) score(ctx context.Context, su student.ScoreUpdate) error {
	stu, err := cli.svc.UpdateScore(ctx, su)
	if err != nil {
		return err
	}
	subject, _ := student.ParseSubject(su.Subject)
	cli.printf("%s: %s %s (total %d, grade group %d)\n",
		stu.Name, subject.Title(), cli.band(stu.Get(subject)), stu.Total(), stu.GradeGroup)
	return nil
}

func (cli *commandLine) clearScores(ctx context.Context, yes bool) error {
	if err := cli.confirm("Clear the scores of every student?", yes); err != nil {
		return err
	}
	if err := cli.svc.ClearScores(ctx); err != nil {
		return err
	}
	cli.printf("scores cleared\n")
	return nil
}

func (cli *commandLine) deleteAll(ctx context.Context, yes bool) error {
	if err := cli.confirm("Delete every student and their scores?", yes); err != nil {
		return err
	}
	n, err := cli.svc.DeleteAll(ctx)
	if err != nil {
		return err
	}
	cli.printf("deleted %d student(s)\n", n)
	return nil
}
