// Package seed reads the initial roster from a YAML file:
//
//	members:
//	  - Kim
//	  - Arthur
//	locations:
//	  - boulderbar Seestadt
package seed

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Roster struct {
	Members   []string `yaml:"members"`
	Locations []string `yaml:"locations"`
}

func Load(path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode trims every name and drops blank entries.
func Decode(r io.Reader) (*Roster, error) {
	var roster Roster
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&roster); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}

	roster.Members = clean(roster.Members)
	roster.Locations = clean(roster.Locations)
	return &roster, nil
}

func clean(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
