package student

import (
	"sort"

	"github.com/trezcool/classease/core"
)

// SortType selects how the progress record is ranked.
type SortType string

const (
	SortByID    SortType = "id"
	SortByScore SortType = "score"
	SortByGrade SortType = "grade"

	DefaultSortType = SortByScore
)

var SortTypes = []SortType{SortByGrade, SortByScore, SortByID}

// ParseSortType maps a stored or typed value to a SortType, falling back to DefaultSortType.
func ParseSortType(s string) SortType {
	switch st := SortType(core.CleanString(s, true /* lower */)); st {
	case SortByID, SortByScore, SortByGrade:
		return st
	}
	return DefaultSortType
}

func (st SortType) Valid() bool {
	switch st {
	case SortByID, SortByScore, SortByGrade:
		return true
	}
	return false
}

// tie-breaks shared by the score and grade rankings, highest first
var tieBreakers = []Subject{English, Maths, Science}

// Ordering returns the ranking as ORDER BY terms, for repositories that sort in the database.
// The trailing id term makes every ranking a total order.
func (st SortType) Ordering() []core.DBOrdering {
	byID := core.DBOrdering{Field: "id", Ascending: true}
	var ord []core.DBOrdering
	switch ParseSortType(string(st)) {
	case SortByID:
		return []core.DBOrdering{byID}
	case SortByGrade:
		ord = append(ord, core.DBOrdering{Field: "grade_group"})
	default:
		ord = append(ord, core.DBOrdering{Field: "(arts + chichewa + english + maths + science + social)"})
	}
	for _, subj := range tieBreakers {
		ord = append(ord, core.DBOrdering{Field: string(subj)})
	}
	return append(ord, byID)
}

// Less reports whether a ranks before b.
func (st SortType) Less(a, b Student) bool {
	switch ParseSortType(string(st)) {
	case SortByID:
		return a.ID < b.ID
	case SortByGrade:
		if ga, gb := a.Scores.GradeGroup(), b.Scores.GradeGroup(); ga != gb {
			return ga > gb
		}
	default:
		if ta, tb := a.Total(), b.Total(); ta != tb {
			return ta > tb
		}
	}
	for _, subj := range tieBreakers {
		if sa, sb := a.Get(subj), b.Get(subj); sa != sb {
			return sa > sb
		}
	}
	return a.ID < b.ID
}

// Sort returns a ranked copy of students; the input is left untouched.
func Sort(students []Student, st SortType) []Student {
	sorted := make([]Student, len(students))
	copy(sorted, students)
	sort.SliceStable(sorted, func(i, j int) bool { return st.Less(sorted[i], sorted[j]) })
	return sorted
}
