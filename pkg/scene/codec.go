package scene

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	apperr "github.com/matzehuels/claimviz/pkg/errors"
)

// Format is a scene file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", apperr.New(apperr.ErrCodeInvalidFormat, "unsupported scene extension %q (want .toml, .yaml or .yml)", filepath.Ext(path))
}

// Decode parses scene data.
func Decode(data []byte, f Format) (*File, error) {
	var file File
	switch f {
	case FormatTOML:
		md, err := toml.Decode(string(data), &file)
		if err != nil {
			return nil, apperr.Wrap(apperr.ErrCodeInvalidScene, err, "decode toml")
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			return nil, apperr.New(apperr.ErrCodeInvalidScene, "unknown key %q", keys[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil {
			return nil, apperr.Wrap(apperr.ErrCodeInvalidScene, err, "decode yaml")
		}
	default:
		return nil, apperr.New(apperr.ErrCodeInvalidFormat, "unsupported scene format %q", f)
	}
	return &file, nil
}

// Encode serializes a scene file.
func Encode(file *File, f Format) ([]byte, error) {
	var buf bytes.Buffer
	switch f {
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(file); err != nil {
			return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "encode toml")
		}
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(file); err != nil {
			return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "encode yaml")
		}
		if err := enc.Close(); err != nil {
			return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "encode yaml")
		}
	default:
		return nil, apperr.New(apperr.ErrCodeInvalidFormat, "unsupported scene format %q", f)
	}
	return buf.Bytes(), nil
}

// ReadFile reads and decodes the scene at path.
func ReadFile(path string) (*File, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, apperr.Wrap(apperr.ErrCodeSceneNotFound, err, "scene %s not found", path)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "read %s", path)
	}
	return Decode(data, f)
}

// WriteFile encodes file in the format implied by path.
func WriteFile(path string, file *File) error {
	if err := apperr.ValidateOutputPath(path); err != nil {
		return err
	}
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Encode(file, f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
