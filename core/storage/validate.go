package storage

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"storage-gateway/core/errs"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the settings of the selected driver. Settings of other
// drivers are ignored.
func (c Config) Validate() error {
	var target any
	switch c.Driver {
	case DriverLocal:
		target = c.Local()
	case DriverS3:
		target = c.S3()
	case DriverGCS:
		target = c.GCS()
	default:
		return errs.New(errs.KindInvalidConfig,
			fmt.Sprintf("unsupported storage driver %q (want %s, %s or %s)", c.Driver, DriverLocal, DriverS3, DriverGCS))
	}

	if err := getValidator().Struct(target); err != nil {
		return errs.Wrap(errs.KindInvalidConfig, "invalid "+c.Driver+" storage config", describe(err))
	}
	return nil
}

// describe turns validator errors into one readable error.
func describe(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			messages = append(messages, e.Field()+" is required")
		case "required_with":
			messages = append(messages, e.Field()+" is required when "+e.Param()+" is set")
		default:
			messages = append(messages, e.Field()+" is invalid")
		}
	}
	return errors.New(strings.Join(messages, "; "))
}
