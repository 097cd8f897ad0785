// Package validation validates configuration sections and harness recipes.
//
// It supports struct tag validation (go-playground/validator) and
// programmatic validation with error collection. Both report failures as an
// *errors.AppError with code INVALID_INPUT and a "fields" detail.
//
// # Struct Tag Validation
//
//	type Config struct {
//	    ChannelBuffer int `mapstructure:"channel_buffer" validate:"gte=0"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("name", r.Name).MinItems("inputs", len(r.Inputs), 1)
//	err := v.Err()
package validation
