// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package datastore

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	gerrors "github.com/tochemey/audience/errors"
)

func encodeString(value string) ([]byte, error) {
	return proto.Marshal(structpb.NewStringValue(value))
}

func encodeMap(value map[string]string) ([]byte, error) {
	fields := make(map[string]*structpb.Value, len(value))
	for k, v := range value {
		fields[k] = structpb.NewStringValue(v)
	}
	return proto.Marshal(structpb.NewStructValue(&structpb.Struct{Fields: fields}))
}

func decodeString(data []byte) (string, error) {
	value := new(structpb.Value)
	if err := proto.Unmarshal(data, value); err != nil {
		return "", err
	}

	kind, ok := value.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", gerrors.ErrTypeMismatch
	}
	return kind.StringValue, nil
}

func decodeMap(data []byte) (map[string]string, error) {
	value := new(structpb.Value)
	if err := proto.Unmarshal(data, value); err != nil {
		return nil, err
	}

	kind, ok := value.GetKind().(*structpb.Value_StructValue)
	if !ok {
		return nil, gerrors.ErrTypeMismatch
	}

	fields := kind.StructValue.GetFields()
	out := make(map[string]string, len(fields))
	for k, field := range fields {
		str, ok := field.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, gerrors.ErrTypeMismatch
		}
		out[k] = str.StringValue
	}
	return out, nil
}
