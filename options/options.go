// Package options holds the demo's command-line configuration.
package options

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MaxIndexedVertices is the most vertices a 16-bit indexed batch can
// address.
const MaxIndexedVertices = 1 << 16

type BatchOptions struct {
	Width          *int
	Height         *int
	MaxQuads       *int
	Title          *string
	GLES           *bool
	Translate      *bool // sources are WebGL2 and are translated before compiling
	VertexShader   *string
	FragmentShader *string
	Headless       *int    // frames to render offscreen; 0 opens a window
	Config         *string // YAML file filling flags not given on the command line
	Help           *bool
}

// Register defines the flags on fs.
func Register(fs *flag.FlagSet) *BatchOptions {
	return &BatchOptions{
		Width:          fs.Int("width", 1280, "Window width"),
		Height:         fs.Int("height", 720, "Window height"),
		MaxQuads:       fs.Int("max-quads", 1024, "Quads per batch"),
		Title:          fs.String("title", "glbatch", "Window title"),
		GLES:           fs.Bool("gles", false, "Use the GLSL ES built-in shaders"),
		Translate:      fs.Bool("translate", false, "Translate WebGL2 shader sources before compiling"),
		VertexShader:   fs.String("vertex", "", "Vertex shader file (built-in if empty)"),
		FragmentShader: fs.String("fragment", "", "Fragment shader file (built-in if empty)"),
		Headless:       fs.Int("headless", 0, "Render this many frames offscreen with EGL (Linux) instead of opening a window"),
		Config:         fs.String("config", "", "YAML file with flag values"),
		Help:           fs.Bool("help", false, "Show help message"),
	}
}

// Parse registers the flags on fs, parses args and applies the config file
// named by -config.
func Parse(fs *flag.FlagSet, args []string) (*BatchOptions, error) {
	o := Register(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *o.Config != "" {
		if err := o.applyConfig(fs, *o.Config); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// applyConfig sets every flag named in the file that was not set on the
// command line. Keys are flag names.
func (o *BatchOptions) applyConfig(fs *flag.FlagSet, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	for name, value := range values {
		if fs.Lookup(name) == nil || name == "config" {
			return fmt.Errorf("config %s: unknown option %q", path, name)
		}
		if explicit[name] {
			continue
		}
		switch value.(type) {
		case string, int, float64, bool:
		default:
			return fmt.Errorf("config %s: option %q must be a scalar", path, name)
		}
		if err := fs.Set(name, fmt.Sprint(value)); err != nil {
			return fmt.Errorf("config %s: option %q: %w", path, name, err)
		}
	}
	return nil
}

// Validate checks that the sizes are usable.
func (o *BatchOptions) Validate() error {
	var errs []error
	if *o.Width <= 0 || *o.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", *o.Width, *o.Height))
	}
	// Each quad takes two triangles of three vertices.
	if *o.MaxQuads <= 0 || 6*(*o.MaxQuads) > MaxIndexedVertices {
		errs = append(errs, fmt.Errorf("max-quads %d must be between 1 and %d", *o.MaxQuads, MaxIndexedVertices/6))
	}
	if *o.Headless < 0 {
		errs = append(errs, fmt.Errorf("headless frame count %d must not be negative", *o.Headless))
	}
	return errors.Join(errs...)
}
