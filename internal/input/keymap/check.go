package keymap

import (
	"errors"

	"github.com/dshills/pyide/internal/config"
)

// Check returns a configuration check that validates the [keymap] table
// against the default keymap and the set of known actions.
func Check(known func(action string) bool) config.Check {
	return func(cfg *config.Config) error {
		err := Default().Apply(cfg.Keymap, known)
		if err == nil {
			return nil
		}

		var errs []error
		for _, e := range unjoin(err) {
			var be *BindingError
			if !errors.As(e, &be) {
				errs = append(errs, e)
				continue
			}
			code := config.ErrCodeInvalidValue
			if errors.Is(be.Err, ErrUnknownAction) {
				code = config.ErrCodeInvalidEnum
			}
			errs = append(errs, &config.ValidationError{
				Path:    "keymap." + be.Keys,
				Message: be.Err.Error(),
				Value:   be.Action,
				Code:    code,
			})
		}
		return errors.Join(errs...)
	}
}

// FromConfig builds the keymap in effect for a configuration.
func FromConfig(cfg *config.Config, known func(action string) bool) (*Keymap, error) {
	km := Default()
	if err := km.Apply(cfg.Keymap, known); err != nil {
		return km, err
	}
	return km, nil
}

func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
