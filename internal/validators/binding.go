package validators

import (
	"regexp"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/agenda-scheduler/internal/timezone"
)

var hhmmPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$|^24:00$`)

// HHMM validates a "HH:MM" wall-clock time.
func HHMM(fl validator.FieldLevel) bool {
	return hhmmPattern.MatchString(fl.Field().String())
}

// YMD validates a "YYYY-MM-DD" calendar date.
func YMD(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

// Weekday validates an ISO weekday, 1 (Monday) to 7 (Sunday).
func Weekday(fl validator.FieldLevel) bool {
	d := fl.Field().Int()
	return d >= 1 && d <= 7
}

// TZ validates an IANA timezone name.
func TZ(fl validator.FieldLevel) bool {
	return timezone.IsValid(fl.Field().String())
}

// Register installs the custom tags on gin's validator.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return RegisterOn(v)
}

func RegisterOn(v *validator.Validate) error {
	for tag, fn := range map[string]validator.Func{
		"hhmm":    HHMM,
		"ymd":     YMD,
		"weekday": Weekday,
		"tz":      TZ,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}
