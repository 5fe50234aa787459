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

import (
	"fmt"
	"reflect"
)

var protocolType = reflect.TypeOf(NetworkEmpty)

// ViperDecoderHook returns a mapstructure.DecodeHookFunc (viper's config
// decoder uses mapstructure under the hood) that converts strings and
// integers into NetworkProtocol values. Any other source/target type pair
// passes the data through unchanged so it composes with the rest of a
// viper.Unmarshal DecodeHook chain.
func ViperDecoderHook() func(reflect.Type, reflect.Type, interface{}) (interface{}, error) {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != protocolType {
			return data, nil
		}

		switch from.Kind() {
		case reflect.String:
			return Parse(data.(string)), nil
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			v := reflect.ValueOf(data).Int()
			return decodeNumeric(v)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			v := reflect.ValueOf(data).Uint()
			if v > uint64(^uint16(0)) {
				return nil, fmt.Errorf("protocol: value %d exceeds uint16 range", v)
			}
			return decodeNumeric(int64(v))
		default:
			return data, nil
		}
	}
}

func decodeNumeric(v int64) (interface{}, error) {
	p := ParseInt64(v)
	if p == NetworkEmpty {
		return nil, fmt.Errorf("protocol: %d is not a valid network protocol", v)
	}
	return p, nil
}
