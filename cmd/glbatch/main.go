package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/glbatch/batch"
	"github.com/richinsley/glbatch/glcore"
	"github.com/richinsley/glbatch/glfwcontext"
	"github.com/richinsley/glbatch/graphics"
	"github.com/richinsley/glbatch/headless"
	"github.com/richinsley/glbatch/options"
	"github.com/richinsley/glbatch/renderer"
	"github.com/richinsley/glbatch/shader"
	"github.com/richinsley/glbatch/translator"
)

func init() {
	runtime.LockOSThread()
}

// loadSource reads path, or returns fallback when path is empty.
func loadSource(path, fallback string) (string, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read shader: %w", err)
	}
	return string(data), nil
}

// grid lays out up to n quads in rows that sway with time.
func grid(attrs renderer.QuadAttributes, n, width, height int) renderer.FrameFunc {
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	return func(b *batch.IndexedVertexBatch, t float64) {
		cell := float32(min(width, height)) / float32(cols)
		size := cell * 0.8
		for i := 0; i < n; i++ {
			row, col := i/cols, i%cols
			phase := float64(i) * 0.37
			x := float32(col)*cell + float32(math.Sin(t+phase))*cell*0.1
			y := float32(row)*cell + float32(math.Cos(t+phase))*cell*0.1
			color := mgl32.Vec4{
				float32(col) / float32(cols),
				float32(row) / float32(cols),
				0.5 + 0.5*float32(math.Sin(t*0.5+phase)),
				1,
			}
			if err := attrs.Add(b, x, y, size, size, color); err != nil {
				log.Printf("Batch full after %d quads: %v", i, err)
				return
			}
		}
	}
}

func main() {
	opts, err := options.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("Error parsing options: %v", err)
	}
	if *opts.Help {
		fmt.Println("glbatch: batched quad renderer")
		flag.PrintDefaults()
		return
	}
	if err := opts.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	// The EGL context is GLES 3. Translation input is WebGL2, which the ES
	// built-ins already are.
	isGLES := *opts.GLES || *opts.Headless > 0
	builtinES := isGLES || *opts.Translate

	vertexSource, err := loadSource(*opts.VertexShader, shader.BatchVertexShader(builtinES))
	if err != nil {
		log.Fatalf("Error loading vertex shader: %v", err)
	}
	fragmentSource, err := loadSource(*opts.FragmentShader, shader.BatchFragmentShader(builtinES))
	if err != nil {
		log.Fatalf("Error loading fragment shader: %v", err)
	}

	attrs := renderer.DefaultQuadAttributes
	uniforms := renderer.UniformNames{Projection: "u_projection", Time: "u_time"}
	if *opts.Translate {
		vs, err := translator.Translate(vertexSource, graphics.VERTEX_SHADER, isGLES)
		if err != nil {
			log.Fatalf("Error translating vertex shader: %v", err)
		}
		fs, err := translator.Translate(fragmentSource, graphics.FRAGMENT_SHADER, isGLES)
		if err != nil {
			log.Fatalf("Error translating fragment shader: %v", err)
		}
		vertexSource, fragmentSource = vs.Code, fs.Code
		attrs = renderer.QuadAttributes{
			Position: vs.Name(attrs.Position),
			TexCoord: vs.Name(attrs.TexCoord),
			Color:    vs.Name(attrs.Color),
		}
		uniforms = renderer.UniformNames{
			Projection: vs.Name(uniforms.Projection),
			Time:       fs.Name(uniforms.Time),
		}
		log.Printf("Translated shaders to %s", map[bool]string{false: "GLSL 410", true: "ESSL"}[isGLES])
	}

	var ctx graphics.Context
	var window *glfwcontext.Context
	if *opts.Headless > 0 {
		ctx, err = headless.NewHeadless(*opts.Width, *opts.Height, *opts.Headless)
		if err != nil {
			log.Fatalf("Failed to create headless context: %v", err)
		}
	} else {
		if err := glfwcontext.InitGraphics(); err != nil {
			log.Fatalf("Failed to initialize graphics: %v", err)
		}
		defer glfwcontext.TerminateGraphics()

		window, err = glfwcontext.New(opts, true)
		if err != nil {
			log.Fatalf("Failed to create window: %v", err)
		}
		ctx = window
	}
	ctx.MakeCurrent()

	gl, err := glcore.New()
	if err != nil {
		log.Fatalf("Failed to initialize OpenGL: %v", err)
	}

	r, err := renderer.NewRenderer(ctx, gl, vertexSource, fragmentSource, *opts.MaxQuads)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer r.Shutdown()
	r.SetUniformNames(uniforms)

	if window != nil {
		window.RegisterKeyCallback(glfw.KeyR, func() {
			if err := r.Rebuild(); err != nil {
				log.Printf("Rebuild failed: %v", err)
			}
		})
	}

	log.Println("Starting render loop...")
	err = r.Run(grid(attrs, *opts.MaxQuads, *opts.Width, *opts.Height))
	if err != nil {
		log.Fatalf("Render loop failed: %v", err)
	}
	log.Printf("Rendered %d frames", r.FrameCount())
}
