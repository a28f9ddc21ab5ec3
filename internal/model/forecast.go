package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Forecast holds the four report sections of one forecast response.
type Forecast struct {
	Currently Record
	Minutely  Record
	Hourly    Record
	Daily     Record
}

// DecodeForecast parses a forecast body. Numbers are kept as json.Number so
// they print exactly as the provider sent them.
func DecodeForecast(body []byte) (*Forecast, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var root Record
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if root == nil {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}

	var f Forecast
	sections := []struct {
		name string
		dst  *Record
	}{
		{"currently", &f.Currently},
		{"minutely", &f.Minutely},
		{"hourly", &f.Hourly},
		{"daily", &f.Daily},
	}
	for _, s := range sections {
		rec, err := root.Section(s.name)
		if err != nil {
			return nil, err
		}
		*s.dst = rec
	}
	return &f, nil
}
