// Package generator produces forecast records, either from the embedded sample set or by
// running the external AI generator once per country/topic pair.
package generator

import (
	_ "embed"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

//go:embed forecasts.toml
var catalogData []byte

// Sample is a hand written forecast.
type Sample struct {
	Country    string   `toml:"country"`
	Topic      string   `toml:"topic"`
	Value      string   `toml:"value"`
	Detail     string   `toml:"detail"`
	Confidence int      `toml:"confidence"`
	KeyDrivers []string `toml:"key_drivers"`
}

// Result renders the sample as if the generator had produced it for year.
func (s Sample) Result(year int) Result {
	return Result{
		Title:      Title(s.Topic, year),
		Country:    s.Country,
		Value:      s.Value,
		Detail:     s.Detail,
		Confidence: s.Confidence,
		KeyDrivers: s.KeyDrivers,
	}
}

// Spec names one forecast to request from the generator.
type Spec struct {
	Country string `toml:"country"`
	Topic   string `toml:"topic"`
}

func (s Spec) String() string {
	return s.Country + " " + s.Topic
}

type Catalog struct {
	Samples []Sample `toml:"sample"`
	Specs   []Spec   `toml:"spec"`
}

// LoadCatalog parses the catalogue compiled into the binary.
func LoadCatalog() (*Catalog, error) {
	return ParseCatalog(catalogData)
}

func ParseCatalog(data []byte) (*Catalog, error) {
	catalog := &Catalog{}
	if err := toml.Unmarshal(data, catalog); err != nil {
		return nil, fmt.Errorf("failed to parse forecast catalogue: %w", err)
	}
	for i, s := range catalog.Samples {
		if s.Country == "" || s.Topic == "" {
			return nil, fmt.Errorf("sample %d is missing country or topic", i)
		}
	}
	for i, s := range catalog.Specs {
		if s.Country == "" || s.Topic == "" {
			return nil, fmt.Errorf("spec %d is missing country or topic", i)
		}
	}
	return catalog, nil
}

// Title is the display title of a forecast, e.g. "GDP Growth 2026".
func Title(topic string, year int) string {
	return fmt.Sprintf("%s %d", topic, year)
}
