/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package size

import (
	"encoding/json"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// MarshalText returns the human-readable text encoding of the size (its
// String form), used by mapstructure/viper text-unmarshalling paths.
func (s Size) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a human-readable size ("5MB", "100") into the
// receiver.
func (s *Size) UnmarshalText(p []byte) error {
	v, err := Parse(string(p))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalJSON returns the size as a quoted human-readable string.
func (s Size) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts either a quoted human-readable string or a bare
// numeric byte count.
func (s *Size) UnmarshalJSON(p []byte) error {
	var asString string
	if err := json.Unmarshal(p, &asString); err == nil {
		return s.UnmarshalText([]byte(asString))
	}

	var asNumber uint64
	if err := json.Unmarshal(p, &asNumber); err != nil {
		return err
	}
	*s = Size(asNumber)
	return nil
}

// MarshalYAML returns the size's human-readable string form.
func (s Size) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// UnmarshalYAML parses a YAML scalar the same way UnmarshalText does.
func (s *Size) UnmarshalYAML(value *yaml.Node) error {
	return s.UnmarshalText([]byte(value.Value))
}

// MarshalCBOR returns the CBOR encoding of the size's human-readable
// string form.
func (s Size) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(s.String())
}

// UnmarshalCBOR parses a CBOR-encoded human-readable string.
func (s *Size) UnmarshalCBOR(p []byte) error {
	var str string
	if err := cbor.Unmarshal(p, &str); err != nil {
		return err
	}
	return s.UnmarshalText([]byte(str))
}
