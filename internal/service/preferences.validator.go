package service

import (
	"aistrategy/internal/domain"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// step tags mirror the questionnaire's slider increments
var preferenceSteps = map[string]float64{
	"investmentAmount":  1000,
	"maxDrawdown":       5,
	"stopLoss":          5,
	"maxSinglePosition": 5,
}

type PreferencesValidator struct {
	validate *validator.Validate
}

func NewPreferencesValidator() PreferencesValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return PreferencesValidator{validate: v}
}

// Warnings lists everything about the preferences that falls outside the
// questionnaire's limits. None of it blocks a request; the backend gets the
// values as entered.
func (p PreferencesValidator) Warnings(prefs domain.InvestmentPreferences) []string {
	out := []string{}

	err := p.validate.Struct(prefs)
	validationErrors := validator.ValidationErrors{}
	if errors.As(err, &validationErrors) {
		for _, fe := range validationErrors {
			out = append(out, describeFieldError(fe))
		}
	} else if err != nil {
		out = append(out, err.Error())
	}

	values := map[string]float64{
		"investmentAmount":  prefs.InvestmentAmount,
		"maxDrawdown":       prefs.MaxDrawdown,
		"stopLoss":          prefs.StopLoss,
		"maxSinglePosition": prefs.MaxSinglePosition,
	}
	for _, field := range []string{"investmentAmount", "maxDrawdown", "stopLoss", "maxSinglePosition"} {
		step := preferenceSteps[field]
		if !isMultiple(values[field], step) {
			out = append(out, fmt.Sprintf("%s should be a multiple of %s", field, formatFloat(step)))
		}
	}

	return out
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("%s should be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s should be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s should be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return fmt.Sprintf("%s failed %s check", fe.Field(), fe.Tag())
}

func isMultiple(v, step float64) bool {
	if step == 0 {
		return true
	}
	q := v / step
	return math.Abs(q-math.Round(q)) < 1e-9
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
