package student

import (
	"strconv"
	"strings"
	"time"

	"github.com/trezcool/classease/core"
)

// Gender
const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

type Gender string

var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Subjects
const (
	Arts     Subject = "arts"
	Chichewa Subject = "chichewa"
	English  Subject = "english"
	Maths    Subject = "maths"
	Science  Subject = "science"
	Social   Subject = "social"
)

type Subject string

// Subjects lists every subject in display order.
var Subjects = []Subject{Arts, Chichewa, English, Maths, Science, Social}

var subjectAliases = map[string]Subject{
	"mathematics":    Maths,
	"math":           Maths,
	"social studies": Social,
}

// ParseSubject maps user input (case-insensitive) to a Subject.
func ParseSubject(s string) (Subject, bool) {
	s = core.CleanString(s, true /* lower */)
	for _, subj := range Subjects {
		if string(subj) == s {
			return subj, true
		}
	}
	subj, ok := subjectAliases[s]
	return subj, ok
}

func (s Subject) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// Student is a roster entry.
// GradeGroup always equals Scores.GradeGroup(); only WithScore and WithoutScores change scores.
type Student struct {
	ID     int64  `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	Gender Gender `json:"gender" db:"gender"`
	Scores
	GradeGroup int       `json:"grade_group" db:"grade_group"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// WithScore returns a copy of stu with subject's score set and the grade group recomputed.
func (stu Student) WithScore(subject Subject, score int) Student {
	stu.Scores = stu.Scores.with(subject, score)
	stu.GradeGroup = stu.Scores.GradeGroup()
	return stu
}

// WithoutScores returns a copy of stu with every score (and so the grade group) reset to 0.
func (stu Student) WithoutScores() Student {
	stu.Scores = Scores{}
	stu.GradeGroup = 0
	return stu
}

// NewStudent contains the raw input needed to create a new Student.
type NewStudent struct {
	ID     string `json:"id" validate:"omitempty,digits,recordid"`
	Name   string `json:"name" validate:"notblank"`
	Gender string `json:"gender" validate:"notblank,gender"`
}

func (ns *NewStudent) Validate() error {
	ns.ID = core.CleanString(ns.ID)
	ns.Name = cleanName(ns.Name)
	ns.Gender = cleanGender(ns.Gender)
	return core.Validate.Struct(ns)
}

// Student converts validated input; call Validate first.
func (ns NewStudent) Student() Student {
	id, _ := core.ParseID(ns.ID)
	return Student{
		ID:     id,
		Name:   ns.Name,
		Gender: Gender(ns.Gender),
	}
}

// UpdateStudent defines what information may be provided to modify an existing Student.
// Blank fields keep their current value. Scores are changed through ScoreUpdate only.
type UpdateStudent struct {
	ID     string `json:"id" validate:"required,digits,recordid"`
	Name   string `json:"name"`
	Gender string `json:"gender" validate:"omitempty,gender"`
}

func (us *UpdateStudent) Validate() error {
	us.ID = core.CleanString(us.ID)
	us.Name = cleanName(us.Name)
	us.Gender = cleanGender(us.Gender)
	return core.Validate.Struct(us)
}

func (us UpdateStudent) StudentID() int64 {
	id, _ := core.ParseID(us.ID)
	return id
}

// apply returns orig with the set fields replaced.
func (us UpdateStudent) apply(orig Student) Student {
	if us.Name != "" {
		orig.Name = us.Name
	}
	if us.Gender != "" {
		orig.Gender = Gender(us.Gender)
	}
	return orig
}

// ScoreUpdate sets one subject score of one Student.
type ScoreUpdate struct {
	ID      string `json:"id" validate:"required,digits,recordid"`
	Subject string `json:"subject" validate:"required,subject"`
	Score   string `json:"score" validate:"required,digits,score"`
}

func (su *ScoreUpdate) Validate() error {
	su.ID = core.CleanString(su.ID)
	su.Subject = core.CleanString(su.Subject, true /* lower */)
	su.Score = core.CleanString(su.Score)
	return core.Validate.Struct(su)
}

// Parsed returns the typed values; call Validate first.
func (su ScoreUpdate) Parsed() (id int64, subject Subject, score int) {
	id, _ = core.ParseID(su.ID)
	subject, _ = ParseSubject(su.Subject)
	score, _ = strconv.Atoi(su.Score)
	return id, subject, score
}

func cleanName(name string) string {
	return strings.ToUpper(core.CleanString(name))
}

func cleanGender(gender string) string {
	return strings.ToUpper(core.CleanString(gender))
}
