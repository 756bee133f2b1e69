package validator

import (
	"log"
	"regexp"

	"nautikos_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

var hhmmPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// registerCustomRules registers every custom tag on v.
func registerCustomRules(v *validator.Validate) {
	// A tag that fails to register is a startup bug.
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// Profile enumerations
	mustRegister("is-skill", oneOf(models.Skills))
	mustRegister("is-sea-rank", oneOf(models.SeaRanks))
	mustRegister("is-emirate", oneOf(models.Emirates))
	mustRegister("is-day", oneOf(models.Days))
	mustRegister("is-people-mgmt", oneOf(models.PeopleManagementExperiences))
	mustRegister("is-education-level", oneOf(models.EducationLevels))
	mustRegister("is-job-type", oneOf(models.JobTypes))
	mustRegister("is-work-environment", oneOf(models.WorkEnvironmentOptions))
	mustRegister("is-job-value", oneOf(models.JobValueOptions))

	// Moderation
	mustRegister("is-rating", oneOf(models.Ratings))
	mustRegister("is-placement-area", oneOf(models.PlacementAreas))
	mustRegister("is-review-section", oneOf(models.ReviewSections))

	mustRegister("is-user-role", oneOf(models.UserRoles))

	// 'hhmm': 24h clock time, e.g. 09:30
	mustRegister("hhmm", validateHHMM)
}

// oneOf accepts the empty string (left to 'required') or one of values.
func oneOf[T ~string](values []T) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		return models.Contains(values, T(value))
	}
}

func validateHHMM(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return hhmmPattern.MatchString(value)
}
