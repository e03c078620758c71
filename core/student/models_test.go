package student

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/classease/core"
)

func TestStudent_WithScore(t *testing.T) {
	orig := Student{ID: 1, Name: "JANE", Gender: GenderFemale}

	stu := orig
	for _, subj := range Subjects {
		stu = stu.WithScore(subj, 100)
	}
	assert.Equal(t, 600, stu.Total())
	assert.Equal(t, 24, stu.GradeGroup)
	assert.Equal(t, stu.Scores.GradeGroup(), stu.GradeGroup)
	assert.Equal(t, 0, orig.Total(), "original snapshot untouched")

	stu = stu.WithScore(Science, 10)
	assert.Equal(t, 20, stu.GradeGroup)

	cleared := stu.WithoutScores()
	assert.Equal(t, 0, cleared.Total())
	assert.Equal(t, 0, cleared.GradeGroup)
	assert.Equal(t, "JANE", cleared.Name)
}

func TestParseSubject(t *testing.T) {
	tests := []struct {
		in     string
		want   Subject
		wantOK bool
	}{
		{"english", English, true},
		{" Maths ", Maths, true},
		{"Mathematics", Maths, true},
		{"social studies", Social, true},
		{"history", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseSubject(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
	}
	assert.Equal(t, "Chichewa", Chichewa.Title())
}

func TestNewStudent_Validate(t *testing.T) {
	tests := []struct {
		name       string
		ns         NewStudent
		wantFields map[string]string
	}{
		{name: "valid", ns: NewStudent{Name: " jane doe ", Gender: "f"}},
		{name: "valid with id", ns: NewStudent{ID: "42", Name: "jane", Gender: "O"}},
		{
			name:       "blank",
			ns:         NewStudent{Name: "  ", Gender: ""},
			wantFields: map[string]string{"name": "this field cannot be blank", "gender": "this field cannot be blank"},
		},
		{
			name:       "bad gender & id",
			ns:         NewStudent{ID: "-1", Name: "jane", Gender: "x"},
			wantFields: map[string]string{"id": "id must contain digits only", "gender": "gender must be one of M, F or O"},
		},
		{
			name:       "id overflows int64",
			ns:         NewStudent{ID: "99999999999999999999", Name: "jane", Gender: "F"},
			wantFields: map[string]string{"id": "id must be a number between 1 and 9223372036854775807"},
		},
		{
			name:       "zero id",
			ns:         NewStudent{ID: "0", Name: "jane", Gender: "F"},
			wantFields: map[string]string{"id": "id must be a number between 1 and 9223372036854775807"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ns.Validate()
			if tt.wantFields == nil {
				require.NoError(t, err)
				return
			}
			fields, ok := core.FieldErrors(err)
			require.True(t, ok, "validation error expected, got %v", err)
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestNewStudent_Student(t *testing.T) {
	ns := NewStudent{ID: "42", Name: " jane doe ", Gender: "f"}
	require.NoError(t, ns.Validate())

	stu := ns.Student()
	assert.Equal(t, int64(42), stu.ID)
	assert.Equal(t, "JANE DOE", stu.Name)
	assert.Equal(t, GenderFemale, stu.Gender)
	assert.Equal(t, 0, stu.Total())
}

func TestUpdateStudent(t *testing.T) {
	us := UpdateStudent{ID: "3", Gender: "m"}
	require.NoError(t, us.Validate())
	assert.Equal(t, int64(3), us.StudentID())

	orig := Student{ID: 3, Name: "JANE", Gender: GenderFemale}.WithScore(Arts, 70)
	got := us.apply(orig)
	assert.Equal(t, "JANE", got.Name)
	assert.Equal(t, GenderMale, got.Gender)
	assert.Equal(t, 70, got.Arts)

	bad := UpdateStudent{ID: ""}
	fields, ok := core.FieldErrors(bad.Validate())
	require.True(t, ok)
	assert.Equal(t, "this field is required", fields["id"])
}

func TestScoreUpdate_Validate(t *testing.T) {
	tests := []struct {
		name      string
		su        ScoreUpdate
		wantField string
	}{
		{name: "valid", su: ScoreUpdate{ID: "1", Subject: "English", Score: "85"}},
		{name: "zero", su: ScoreUpdate{ID: "1", Subject: "arts", Score: "0"}},
		{name: "max", su: ScoreUpdate{ID: "1", Subject: "mathematics", Score: "100"}},
		{name: "too high", su: ScoreUpdate{ID: "1", Subject: "arts", Score: "101"}, wantField: "score"},
		{name: "negative", su: ScoreUpdate{ID: "1", Subject: "arts", Score: "-5"}, wantField: "score"},
		{name: "decimal", su: ScoreUpdate{ID: "1", Subject: "arts", Score: "5.5"}, wantField: "score"},
		{name: "empty", su: ScoreUpdate{ID: "1", Subject: "arts", Score: ""}, wantField: "score"},
		{name: "unknown subject", su: ScoreUpdate{ID: "1", Subject: "history", Score: "5"}, wantField: "subject"},
		{name: "bad id", su: ScoreUpdate{ID: "x", Subject: "arts", Score: "5"}, wantField: "id"},
		{name: "id overflows int64", su: ScoreUpdate{ID: "99999999999999999999", Subject: "arts", Score: "5"}, wantField: "id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.su.Validate()
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}
			fields, ok := core.FieldErrors(err)
			require.True(t, ok, "validation error expected, got %v", err)
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestScoreUpdate_Parsed(t *testing.T) {
	su := ScoreUpdate{ID: " 7 ", Subject: " Mathematics ", Score: " 85 "}
	require.NoError(t, su.Validate())
	id, subj, score := su.Parsed()
	assert.Equal(t, int64(7), id)
	assert.Equal(t, Maths, subj)
	assert.Equal(t, 85, score)
}
