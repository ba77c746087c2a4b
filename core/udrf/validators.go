package udrf

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/Swapnil27012000/uomdcs-sub003/core"
)

var (
	sectionMaxTag  = "sectionmax"
	sectionMaxText = "score exceeds the section maximum"

	validSectionTag  = "validsection"
	validSectionText = "unknown section"
)

// InitValidators registers the validations of the UDRF inputs.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	validate.RegisterStructValidation(sectionReviewStructValidation, SectionReview{})
	core.RegisterCustomTranslation(validate, translator, sectionMaxTag, sectionMaxText)
	core.RegisterCustomTranslation(validate, translator, validSectionTag, validSectionText)
}

// sectionReviewStructValidation bounds the score by the maximum of the reviewed section.
func sectionReviewStructValidation(sl validator.StructLevel) {
	sr, ok := sl.Current().Interface().(SectionReview)
	if !ok {
		return
	}
	if !sr.Section.Valid() {
		sl.ReportError(sr.Section, "section", "Section", validSectionTag, "")
		return
	}
	if sr.Score != nil && *sr.Score > sr.Section.Max() {
		sl.ReportError(*sr.Score, "score", "Score", sectionMaxTag, fmt.Sprint(sr.Section.Max()))
	}
}

func cleanRemarks(s string) string {
	return strings.TrimSpace(s)
}
