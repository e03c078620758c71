package student

// GradeBand is the performance band of a single subject score.
type GradeBand int

const (
	BandFail GradeBand = iota
	BandPass
	BandGood
	BandVeryGood
	BandExcellent

	numBands = int(BandExcellent) + 1
)

// Bands lists all grade bands from lowest to highest.
var Bands = []GradeBand{BandFail, BandPass, BandGood, BandVeryGood, BandExcellent}

// PassMark is the lowest score that is not a fail.
const PassMark = 40

func (b GradeBand) String() string {
	switch b {
	case BandExcellent:
		return "Excellent"
	case BandVeryGood:
		return "Very good"
	case BandGood:
		return "Good"
	case BandPass:
		return "Pass"
	default:
		return "Fail"
	}
}

// Grade classifies a score. Out of range scores land in the nearest band.
func Grade(score int) GradeBand {
	switch {
	case score >= 80:
		return BandExcellent
	case score >= 66:
		return BandVeryGood
	case score >= 56:
		return BandGood
	case score >= PassMark:
		return BandPass
	default:
		return BandFail
	}
}

// Passed reports whether score clears the pass mark (anything above 39).
func Passed(score int) bool {
	return score >= PassMark
}

// Scores holds one score per subject.
type Scores struct {
	Arts     int `json:"arts" db:"arts"`
	Chichewa int `json:"chichewa" db:"chichewa"`
	English  int `json:"english" db:"english"`
	Maths    int `json:"maths" db:"maths"`
	Science  int `json:"science" db:"science"`
	Social   int `json:"social" db:"social"`
}

// Get returns the score for subject, 0 for an unknown subject.
func (s Scores) Get(subject Subject) int {
	switch subject {
	case Arts:
		return s.Arts
	case Chichewa:
		return s.Chichewa
	case English:
		return s.English
	case Maths:
		return s.Maths
	case Science:
		return s.Science
	case Social:
		return s.Social
	}
	return 0
}

// with returns a copy of s with subject's score replaced.
func (s Scores) with(subject Subject, score int) Scores {
	switch subject {
	case Arts:
		s.Arts = score
	case Chichewa:
		s.Chichewa = score
	case English:
		s.English = score
	case Maths:
		s.Maths = score
	case Science:
		s.Science = score
	case Social:
		s.Social = score
	}
	return s
}

// Total sums the six scores (0..600 for in-range scores).
func (s Scores) Total() int {
	return s.Arts + s.Chichewa + s.English + s.Maths + s.Science + s.Social
}

// GradeGroup sums the grade bands of the six scores (0..24).
func (s Scores) GradeGroup() int {
	var group int
	for _, subj := range Subjects {
		group += int(Grade(s.Get(subj)))
	}
	return group
}
