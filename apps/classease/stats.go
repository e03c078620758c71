package main

import (
	"context"
	"fmt"

	"github.com/trezcool/classease/core"
	"github.com/trezcool/classease/core/student"
)

func (cli *commandLine) stats(ctx context.Context, rawSubject string) error {
	var subject student.Subject
	if rawSubject != "" {
		var ok bool
		if subject, ok = student.ParseSubject(rawSubject); !ok {
			return core.NewValidationError(
				fmt.Errorf("unknown subject %q", rawSubject),
				core.FieldError{Field: "subject", Error: "unknown subject"},
			)
		}
	}
	c, err := cli.svc.Cohort(ctx)
	if err != nil {
		return err
	}
	cli.renderStats(c, subject)
	return nil
}
