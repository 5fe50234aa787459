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
 *
 */

package protocol

import "gopkg.in/yaml.v3"

// UnmarshalJSON accepts both a properly quoted JSON string and the bare,
// quote-stripped forms config files tend to leak through templating. An
// unrecognized value decodes to NetworkEmpty rather than erroring, matching
// Parse's tolerant behavior.
func (p *NetworkProtocol) UnmarshalJSON(data []byte) error {
	*p = ParseBytes(data)
	return nil
}

// UnmarshalYAML implements yaml.v3's Unmarshaler over the node's scalar
// value.
func (p *NetworkProtocol) UnmarshalYAML(node *yaml.Node) error {
	*p = Parse(node.Value)
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *NetworkProtocol) UnmarshalText(data []byte) error {
	*p = ParseBytes(data)
	return nil
}
