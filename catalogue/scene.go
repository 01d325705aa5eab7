package catalogue

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScene wraps every scene file decoding failure
var ErrInvalidScene = errors.New("invalid scene")

// Scene is the document form of a catalogue
type Scene struct {
	Bodies []BodySpec `yaml:"bodies"`
}

// LoadScene reads a YAML scene file
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}
	scene, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return scene, nil
}

// ParseScene decodes YAML through a generic map so numeric strings and ints are accepted
// where floats are expected, while unknown keys are still rejected
func ParseScene(data []byte) (*Scene, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidScene)
	}

	var scene Scene
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "yaml",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &scene,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	if len(scene.Bodies) == 0 {
		return nil, fmt.Errorf("%w: no bodies", ErrInvalidScene)
	}
	return &scene, nil
}

// Encode writes the scene as YAML
func (s *Scene) Encode(w io.Writer) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
