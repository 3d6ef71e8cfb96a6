// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serializer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies a serialization output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// IsUnknown reports whether the format is not one of the supported values.
func (f Format) IsUnknown() bool {
	switch Format(strings.ToLower(string(f))) {
	case FormatJSON, FormatYAML:
		return false
	default:
		return true
	}
}

// Writer serializes values to an io.Writer in a fixed format.
type Writer struct {
	format Format
	out    io.Writer
}

// NewWriter creates a Writer for the given format and destination.
func NewWriter(format Format, out io.Writer) *Writer {
	return &Writer{format: Format(strings.ToLower(string(format))), out: out}
}

// Serialize writes v to the underlying writer in the configured format.
func (w *Writer) Serialize(v any) error {
	switch w.format {
	case FormatJSON:
		enc := json.NewEncoder(w.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w.out)
		defer enc.Close()
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %q", w.format)
	}
}
