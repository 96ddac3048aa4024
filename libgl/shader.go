package libgl

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
)

var shaderMetaPattern = regexp.MustCompile(`(?m)^\/\/meta:(\w+)(.+)$`)
var shaderDefinePattern = regexp.MustCompile(`(?m)^\s*(\/\/)?\s*#define ([\w\d]+) ?(.*)$`)
var shaderVersionPattern = regexp.MustCompile(`(?m)^\s*#version.+$`)

var (
	ErrCompile = errors.New("shader compilation failed")
	ErrLink    = errors.New("program linking failed")
)

type glslDef struct {
	marker  string
	name    string
	value   string
	boolean bool
}

// ShaderSource is a GLSL source template. Its #define lines can be overridden
// when the source is rendered.
type ShaderSource struct {
	Name  string
	Stage int
	// Defines are rendered into this stage only and take precedence over
	// the program wide definitions passed to BuildProgram.
	Defines        map[string]string
	definitions    map[string]glslDef
	sourceTemplate string
	versionEnd     int
}

func NewShaderSource(source string, stage int) *ShaderSource {
	name := "untitled"

	metaMatches := shaderMetaPattern.FindAllStringSubmatch(source, -1)
	for _, match := range metaMatches {
		key, value := match[1], strings.TrimSpace(match[2])
		if strings.EqualFold(key, "name") {
			name = value
		}
	}

	defineMatches := shaderDefinePattern.FindAllStringSubmatch(source, -1)
	definitions := make(map[string]glslDef, len(defineMatches))
	defineMarkers := make(map[string]string, len(defineMatches))
	for i, match := range defineMatches {
		value := strings.TrimSpace(match[3])
		marker := fmt.Sprintf("$def_%v$", i)
		boolean := value == ""
		if boolean && match[1] == "//" {
			value = "false"
		}
		definitions[strings.ToLower(match[2])] = glslDef{
			marker:  marker,
			name:    match[2],
			value:   value,
			boolean: boolean,
		}
		defineMarkers[match[0]] = marker
	}
	source = shaderDefinePattern.ReplaceAllStringFunc(source, func(s string) string {
		return defineMarkers[s]
	})

	versionEnd := 0
	if loc := shaderVersionPattern.FindStringIndex(source); loc != nil {
		versionEnd = loc[1]
	}

	return &ShaderSource{
		Name:           name,
		Stage:          stage,
		definitions:    definitions,
		sourceTemplate: source,
		versionEnd:     versionEnd,
	}
}

// Render substitutes defs into the template. Unknown names are inserted after #version.
func (src *ShaderSource) Render(defs map[string]string) string {
	source := src.sourceTemplate
	used := map[string]bool{}

	for n, v := range defs {
		k := strings.ToLower(n)
		if def, ok := src.definitions[k]; ok {
			source = strings.Replace(source, def.marker, def.line(v), 1)
			used[k] = true
		} else {
			source = source[:src.versionEnd] + fmt.Sprintf("\n#define %v %v", n, v) + source[src.versionEnd:]
		}
	}

	for k, def := range src.definitions {
		if used[k] {
			continue
		}
		source = strings.Replace(source, def.marker, def.line(def.value), 1)
	}

	return source
}

func (def glslDef) line(value string) string {
	sub := fmt.Sprintf("#define %v %v", def.name, value)
	if def.boolean {
		sub = fmt.Sprintf("#define %v", def.name)
	}
	if def.boolean && value == "false" {
		return "// " + sub
	}
	return sub
}

func StageName(stage int) string {
	switch stage {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	case gl.GEOMETRY_SHADER:
		return "geometry"
	}
	return fmt.Sprintf("stage 0x%04x", stage)
}

// BuildError collects every compile and link failure of one program build.
type BuildError struct {
	Program  string
	Failures []error
}

func (err *BuildError) Error() string {
	msgs := make([]string, len(err.Failures))
	for i, f := range err.Failures {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("building %v program: %v", err.Program, strings.Join(msgs, "; "))
}

func (err *BuildError) Unwrap() []error {
	return err.Failures
}

type Program struct {
	glId uint32
	name string
}

func (prog *Program) Id() uint32 {
	return prog.glId
}

func (prog *Program) Name() string {
	return prog.name
}

func (prog *Program) Use() {
	GlState.UseProgram(prog.glId)
}

func (prog *Program) Delete() {
	if prog.glId == 0 {
		return
	}
	GlState.forgetProgram(prog.glId)
	gl.DeleteProgram(prog.glId)
	prog.glId = 0
}

// BuildProgram compiles every stage and links them into one program. The
// shader objects are deleted after linking. A failed stage does not stop the
// build: the program is always returned, together with a *BuildError when
// anything failed, and the caller decides whether that is fatal.
func BuildProgram(name string, defs map[string]string, sources ...*ShaderSource) (*Program, error) {
	var failures []error
	shaders := make([]uint32, 0, len(sources))

	for _, src := range sources {
		id, err := compileShader(src, src.Render(mergeDefines(defs, src.Defines)))
		if err != nil {
			log.Println(err)
			failures = append(failures, err)
		}
		shaders = append(shaders, id)
	}

	id := gl.CreateProgram()
	for _, shader := range shaders {
		gl.AttachShader(id, shader)
	}
	gl.LinkProgram(id)

	var ok int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE {
		err := fmt.Errorf("%w: %v program, log: %v", ErrLink, name, readProgramInfoLog(id))
		log.Println(err)
		failures = append(failures, err)
	}

	for _, shader := range shaders {
		gl.DetachShader(id, shader)
		gl.DeleteShader(shader)
	}

	prog := &Program{glId: id, name: name}
	if len(failures) > 0 {
		return prog, &BuildError{Program: name, Failures: failures}
	}
	return prog, nil
}

func mergeDefines(program, stage map[string]string) map[string]string {
	if len(stage) == 0 {
		return program
	}
	merged := make(map[string]string, len(program)+len(stage))
	for k, v := range program {
		merged[k] = v
	}
	// names match case insensitively, as in Render
	for k, v := range stage {
		for prev := range merged {
			if strings.EqualFold(prev, k) {
				delete(merged, prev)
			}
		}
		merged[k] = v
	}
	return merged
}

func compileShader(src *ShaderSource, source string) (uint32, error) {
	id := gl.CreateShader(uint32(src.Stage))
	cStrs, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, cStrs, nil)
	free()
	gl.CompileShader(id)

	var ok int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &ok)
	if ok == gl.FALSE {
		return id, fmt.Errorf("%w: %v %v shader, log: %v", ErrCompile, src.Name, StageName(src.Stage), readShaderInfoLog(id))
	}
	return id, nil
}

func readShaderInfoLog(id uint32) string {
	var logLength int32
	gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	buf := make([]uint8, logLength+1)
	gl.GetShaderInfoLog(id, logLength, nil, &buf[0])
	return strings.TrimRight(string(buf), "\x00\n")
}

func readProgramInfoLog(id uint32) string {
	var logLength int32
	gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	buf := make([]uint8, logLength+1)
	gl.GetProgramInfoLog(id, logLength, nil, &buf[0])
	return strings.TrimRight(string(buf), "\x00\n")
}
