package loader

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var yamlLine = regexp.MustCompile(`line (\d+)`)

// decodeYAML parses YAML data into v, rejecting keys v has no field for.
// An empty document leaves v unchanged.
func decodeYAML(source string, data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	perr := &ParseError{Path: source, Err: err}

	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) && len(typeErr.Errors) > 0 {
		perr.Message = typeErr.Errors[0]
	} else {
		perr.Message = strings.TrimPrefix(err.Error(), "yaml: ")
	}

	if m := yamlLine.FindStringSubmatch(perr.Message); m != nil {
		perr.Line, _ = strconv.Atoi(m[1])
	}
	return perr
}
