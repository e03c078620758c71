package student

import (
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/classease/core"
)

// MaxScore is the highest score a subject accepts.
const MaxScore = 100

var (
	genderTag  = "gender"
	genderText = "gender must be one of M, F or O"

	subjectTag  = "subject"
	subjectText = "unknown subject"

	scoreTag  = "score"
	scoreText = "score must be between 0 and 100"
)

// register custom validators
func init() {
	_ = core.Validate.RegisterValidation(genderTag, genderValidation)
	core.RegisterCustomTranslation(genderTag, genderText)

	_ = core.Validate.RegisterValidation(subjectTag, subjectValidation)
	core.RegisterCustomTranslation(subjectTag, subjectText)

	_ = core.Validate.RegisterValidation(scoreTag, scoreValidation)
	core.RegisterCustomTranslation(scoreTag, scoreText)
}

// Custom Validators

// genderValidation checks that the gender is one of Genders
func genderValidation(fl validator.FieldLevel) bool {
	return Gender(fl.Field().String()).Valid()
}

func subjectValidation(fl validator.FieldLevel) bool {
	_, ok := ParseSubject(fl.Field().String())
	return ok
}

func scoreValidation(fl validator.FieldLevel) bool {
	score, err := strconv.Atoi(fl.Field().String())
	return err == nil && score >= 0 && score <= MaxScore
}
