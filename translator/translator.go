// Package translator converts WebGL2 (GLSL ES 3.00) shader sources to the
// dialect of the current context before they are compiled.
package translator

import (
	"context"
	"fmt"
	"sync"

	"github.com/richinsley/glbatch/graphics"
	gst "github.com/richinsley/goshadertranslator"
)

var (
	translatorOnce sync.Once
	translator     *gst.ShaderTranslator
	translatorErr  error
)

// GetTranslator returns the process-wide translator, creating it on first
// use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	translatorOnce.Do(func() {
		translator, translatorErr = gst.NewShaderTranslator(context.Background())
	})
	if translatorErr != nil {
		return nil, fmt.Errorf("failed to create shader translator: %w", translatorErr)
	}
	return translator, nil
}

// Result is a translated shader stage.
type Result struct {
	Code      string
	Variables map[string]gst.ShaderVariable
}

// Name returns the name the translator gave a declared attribute or
// uniform. Names it did not report are returned unchanged.
func (r *Result) Name(original string) string {
	if v, ok := r.Variables[original]; ok && v.MappedName != "" {
		return v.MappedName
	}
	return original
}

// Translate converts one WebGL2 stage to GLSL 4.10, or to GLSL ES when
// isGLES is set.
func Translate(source string, stage graphics.Enum, isGLES bool) (*Result, error) {
	var stageName string
	switch stage {
	case graphics.VERTEX_SHADER:
		stageName = "vertex"
	case graphics.FRAGMENT_SHADER:
		stageName = "fragment"
	default:
		return nil, fmt.Errorf("unsupported shader stage %s", stage)
	}

	t, err := GetTranslator()
	if err != nil {
		return nil, err
	}

	outputFormat := gst.OutputFormatGLSL410
	if isGLES {
		outputFormat = gst.OutputFormatESSL
	}
	out, err := t.TranslateShader(source, stageName, gst.ShaderSpecWebGL2, outputFormat)
	if err != nil {
		return nil, fmt.Errorf("%s shader translation failed: %w", stageName, err)
	}
	return &Result{Code: out.Code, Variables: out.Variables}, nil
}
