package config

import (
	"strings"

	"github.com/contiv/staticd/errors"

	gojson "github.com/xeipuuv/gojsonschema"
)

// Combines array of errors into a single error
func combineErrors(resultErrors []gojson.ResultError) error {
	var errs []string
	for _, err := range resultErrors {
		errs = append(errs, err.String())
	}
	return errors.New(strings.Join(errs, "\n"))
}

// ValidateJSON validates the global configuration against its defined schema
func (g *Global) ValidateJSON() error {
	schema := gojson.NewStringLoader(GlobalSchema)
	doc := gojson.NewGoLoader(g)

	if result, err := gojson.Validate(schema, doc); err != nil {
		return err
	} else if !result.Valid() {
		return combineErrors(result.Errors())
	}

	return nil
}
