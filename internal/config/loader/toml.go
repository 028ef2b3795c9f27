package loader

import (
	"bytes"
	"errors"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// decodeTOML parses TOML data into v, rejecting keys v has no field for.
func decodeTOML(source string, data []byte, v any) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	err := dec.Decode(v)
	if err == nil {
		return nil
	}

	perr := &ParseError{Path: source, Message: err.Error(), Err: err}

	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		perr.Line, perr.Column = decodeErr.Position()
		perr.Message = decodeErr.Error()
		return perr
	}

	var strictErr *toml.StrictMissingError
	if errors.As(err, &strictErr) && len(strictErr.Errors) > 0 {
		first := strictErr.Errors[0]
		perr.Line, perr.Column = first.Position()
		perr.Message = "unknown key " + strings.Join(first.Key(), ".")
		if n := len(strictErr.Errors) - 1; n > 0 {
			perr.Message += " (and more)"
		}
	}
	return perr
}
