package student

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func cohort() Cohort {
	return NewCohort([]Student{
		{ID: 1, Gender: GenderMale, Scores: Scores{English: 90, Maths: 40}},
		{ID: 2, Gender: GenderFemale, Scores: Scores{English: 50, Maths: 39}},
		{ID: 3, Gender: GenderFemale, Scores: Scores{English: 10, Maths: 66}},
		{ID: 4, Gender: GenderOther},
	})
}

func TestCohort_Enrollment(t *testing.T) {
	e := cohort().Enrollment()
	assert.Equal(t, Enrollment{Male: 1, Female: 2, Other: 1}, e)
	assert.Equal(t, 4, e.Total())
	assert.Equal(t, Enrollment{}, NewCohort(nil).Enrollment())
}

func TestCohort_PassFail(t *testing.T) {
	c := NewCohort([]Student{
		{ID: 1, Scores: Scores{English: 90}},
		{ID: 2, Scores: Scores{English: 50}},
		{ID: 3, Scores: Scores{English: 10}},
	})
	assert.Equal(t, PassFail{Subject: English, Passed: 2, Failed: 1}, c.PassFail(English))
	assert.Equal(t, PassFail{Subject: Arts, Passed: 0, Failed: 3}, c.PassFail(Arts))

	full := cohort()
	for _, subj := range Subjects {
		pf := full.PassFail(subj)
		assert.Equal(t, full.Size(), pf.Passed+pf.Failed, subj)
	}
}

func TestCohort_Breakdown(t *testing.T) {
	b := cohort().Breakdown(Maths)
	assert.Equal(t, Maths, b.Subject)
	assert.Equal(t, 2, b.Count(BandFail))
	assert.Equal(t, 1, b.Count(BandPass))
	assert.Equal(t, 0, b.Count(BandGood))
	assert.Equal(t, 1, b.Count(BandVeryGood))
	assert.Equal(t, 0, b.Count(BandExcellent))

	var sum int
	for _, band := range Bands {
		sum += b.Count(band)
	}
	assert.Equal(t, 4, sum)
}

func TestCohort_Performance(t *testing.T) {
	perf := cohort().Performance()
	assert.Equal(t, []SubjectCount{
		{Subject: Arts, Count: 0},
		{Subject: Chichewa, Count: 0},
		{Subject: English, Count: 2},
		{Subject: Maths, Count: 2},
		{Subject: Science, Count: 0},
		{Subject: Social, Count: 0},
	}, perf)
}
