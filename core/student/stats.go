package student

type (
	// Enrollment counts students per gender.
	Enrollment struct {
		Male   int `json:"male"`
		Female int `json:"female"`
		Other  int `json:"other"`
	}

	PassFail struct {
		Subject Subject `json:"subject"`
		Passed  int     `json:"passed"`
		Failed  int     `json:"failed"`
	}

	// Breakdown counts the students of a subject per grade band, indexed by GradeBand.
	Breakdown struct {
		Subject Subject       `json:"subject"`
		Counts  [numBands]int `json:"counts"`
	}

	SubjectCount struct {
		Subject Subject `json:"subject"`
		Count   int     `json:"count"`
	}

	// Cohort computes class statistics over a snapshot of students.
	Cohort struct {
		students []Student
	}
)

func (e Enrollment) Total() int { return e.Male + e.Female + e.Other }

func (b Breakdown) Count(band GradeBand) int { return b.Counts[band] }

func NewCohort(students []Student) Cohort {
	return Cohort{students: students}
}

func (c Cohort) Size() int { return len(c.students) }

func (c Cohort) Enrollment() Enrollment {
	var e Enrollment
	for _, stu := range c.students {
		switch stu.Gender {
		case GenderMale:
			e.Male++
		case GenderFemale:
			e.Female++
		case GenderOther:
			e.Other++
		}
	}
	return e
}

func (c Cohort) PassFail(subject Subject) PassFail {
	pf := PassFail{Subject: subject}
	for _, stu := range c.students {
		if Passed(stu.Get(subject)) {
			pf.Passed++
		} else {
			pf.Failed++
		}
	}
	return pf
}

func (c Cohort) Breakdown(subject Subject) Breakdown {
	b := Breakdown{Subject: subject}
	for _, stu := range c.students {
		b.Counts[Grade(stu.Get(subject))]++
	}
	return b
}

// Performance returns how many students passed each subject, in Subjects order.
func (c Cohort) Performance() []SubjectCount {
	perf := make([]SubjectCount, 0, len(Subjects))
	for _, subj := range Subjects {
		perf = append(perf, SubjectCount{Subject: subj, Count: c.PassFail(subj).Passed})
	}
	return perf
}
