// Package validation checks configuration structs with go-playground/validator.
//
//	type Config struct {
//	    Audio   string `mapstructure:"audio" validate:"required,file"`
//	    Workers int    `mapstructure:"workers" validate:"gte=1"`
//	}
//	err := validation.Validate(cfg)
//
// Errors name fields by their mapstructure key so they match what the user
// wrote in the config file or on the command line.
package validation
