package profile

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Encode serializes a single profile as TOML, the same shape it has as
// one entry of the profile store. Used by export.
func (p *Profile) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(p); err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a single profile from TOML. Used by import.
func Decode(data []byte) (Profile, error) {
	var p Profile
	if err := toml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parse profile: %w", err)
	}
	return p, nil
}
