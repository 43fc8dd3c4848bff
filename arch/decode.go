// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arch

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/iox/jsonx"
	"github.com/Masterminds/semver/v3"
	"github.com/h2non/filetype"
	"gopkg.in/yaml.v3"
)

// MaxSize is the largest document that [Decode] accepts.
const MaxSize = 16 << 20

// ErrUnsupportedVersion is returned for documents written by a newer,
// incompatible format version.
var ErrUnsupportedVersion = errors.New("unsupported document version")

// Format is an encoding of a document.
type Format int

const (
	// JSON is the standard encoding.
	JSON Format = iota

	// YAML is accepted for documents written by hand.
	YAML
)

// FormatFromPath returns the format for the extension of the given path.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	}
	return JSON
}

var (
	supportedVersions = errors.Must1(semver.NewConstraint(">= 1.0.0-0, < 2.0.0-0"))
	legacyVersions    = errors.Must1(semver.NewConstraint("< 1.0.0-0"))
)

// Decode decodes a document in the given format. Binary content is
// rejected before parsing, documents in the legacy layout (top-level
// applications) are migrated, and documents with a newer major version
// return [ErrUnsupportedVersion].
func Decode(data []byte, format Format) (*Document, error) {
	if len(data) > MaxSize {
		return nil, fmt.Errorf("document is too large: %d bytes", len(data))
	}
	if kind, _ := filetype.Match(data); kind != filetype.Unknown {
		return nil, fmt.Errorf("cannot decode %s content as a document", kind.MIME.Value)
	}
	if format == YAML {
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decoding yaml document: %w", err)
		}
		jd, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("converting yaml document: %w", err)
		}
		data = jd
	}

	var head struct {
		Info struct {
			Version string `json:"version"`
		} `json:"info"`
		Applications json.RawMessage `json:"applications"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	legacy := head.Applications != nil
	if v := head.Info.Version; v != "" {
		sv, err := semver.NewVersion(v)
		if err != nil {
			return nil, fmt.Errorf("invalid document version %q: %w", v, err)
		}
		switch {
		case legacyVersions.Check(sv):
			legacy = true
		case !supportedVersions.Check(sv):
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, v)
		}
	}
	if legacy {
		return decodeLegacy(data)
	}

	doc := &Document{}
	if err := jsonx.ReadBytes(doc, data); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return doc, nil
}

// Read decodes a JSON document from the given reader.
func Read(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return nil, err
	}
	return Decode(data, JSON)
}

// Open decodes the document in the given file, choosing the format
// from the file extension.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Decode(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Encode returns the indented JSON encoding of the document.
func (d *Document) Encode() ([]byte, error) {
	return jsonx.WriteBytesIndent(d)
}

// Save writes the document as indented JSON to the given file.
func (d *Document) Save(path string) error {
	b, err := d.Encode()
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
