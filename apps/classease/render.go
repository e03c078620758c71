package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/trezcool/classease/core/student"
)

var subjectAbbrevs = map[student.Subject]string{
	student.Arts:     "ART",
	student.Chichewa: "CHI",
	student.English:  "ENG",
	student.Maths:    "MAT",
	student.Science:  "SCI",
	student.Social:   "SOC",
}

// band colours a score by its grade band.
func (cli *commandLine) band(score int) string {
	s := fmt.Sprintf("%3d", score)
	switch student.Grade(score) {
	case student.BandExcellent:
		return cli.clr.Green(s)
	case student.BandVeryGood:
		return cli.clr.Cyan(s)
	case student.BandGood:
		return cli.clr.Blue(s)
	case student.BandPass:
		return cli.clr.Yellow(s)
	default:
		return cli.clr.Red(s)
	}
}

func (cli *commandLine) table() *tabwriter.Writer {
	return tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
}

func (cli *commandLine) renderProgress(students []student.Student, st student.SortType) {
	cli.printf("%s (by %s)\n", cli.clr.Bold("Progress record"), st)
	if len(students) == 0 {
		cli.printf("no students yet\n")
		return
	}

	w := cli.table()
	header := []string{"#", "ID", "NAME", "G"}
	for _, subj := range student.Subjects {
		header = append(header, subjectAbbrevs[subj])
	}
	header = append(header, "TOTAL", "GROUP")
	_, _ = fmt.Fprintln(w, strings.Join(header, "\t"))

	for rank, stu := range students {
		row := []string{fmt.Sprint(rank + 1), fmt.Sprint(stu.ID), stu.Name, string(stu.Gender)}
		for _, subj := range student.Subjects {
			row = append(row, cli.band(stu.Get(subj)))
		}
		row = append(row, fmt.Sprint(stu.Total()), fmt.Sprint(stu.GradeGroup))
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

func (cli *commandLine) renderStudent(stu student.Student) {
	cli.printf("%s (#%d, %s)\n", cli.clr.Bold(stu.Name), stu.ID, stu.Gender)

	w := cli.table()
	for _, subj := range student.Subjects {
		score := stu.Get(subj)
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", subj.Title(), cli.band(score), student.Grade(score))
	}
	_, _ = fmt.Fprintf(w, "Total\t%3d\t\n", stu.Total())
	_, _ = fmt.Fprintf(w, "Grade group\t%3d\t\n", stu.GradeGroup)
	_ = w.Flush()
}

func (cli *commandLine) renderStats(c student.Cohort, subject student.Subject) {
	e := c.Enrollment()
	cli.printf("%s\n", cli.clr.Bold("Enrollment"))
	cli.printf("  male %d, female %d, other %d, total %d\n", e.Male, e.Female, e.Other, e.Total())
	if c.Size() == 0 {
		return
	}

	cli.printf("%s\n", cli.clr.Bold("Passed per subject"))
	w := cli.table()
	for _, perf := range c.Performance() {
		_, _ = fmt.Fprintf(w, "  %s\t%d/%d\t%d%%\n", perf.Subject.Title(), perf.Count, c.Size(), perf.Count*100/c.Size())
	}
	_ = w.Flush()

	if subject == "" {
		return
	}
	pf := c.PassFail(subject)
	cli.printf("%s\n", cli.clr.Bold(subject.Title()))
	cli.printf("  passed %d, failed %d\n", pf.Passed, pf.Failed)
	b := c.Breakdown(subject)
	w = cli.table()
	for _, band := range student.Bands {
		_, _ = fmt.Fprintf(w, "  %s\t%d\n", band, b.Count(band))
	}
	_ = w.Flush()
}
