package validator

import (
	"log"

	"careercraft_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs the model-enum validation tags.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A broken rule is a startup error, not a request error.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-document-kind", validateDocumentKind)
	mustRegister("is-operation-kind", validateOperationKind)
	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-plan-type", validatePlanType)
}

// Empty values pass: 'required' handles presence separately.

func validateDocumentKind(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.DocumentKind(value).Valid()
}

func validateOperationKind(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.OperationKind(value).Valid()
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.UserRole(value) {
	case models.UserRoleUser, models.UserRoleAdmin:
		return true
	default:
		return false
	}
}

func validatePlanType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.PlanType(value) {
	case models.PlanFree, models.PlanPro, models.PlanTeam, models.PlanEnterprise:
		return true
	default:
		return false
	}
}
