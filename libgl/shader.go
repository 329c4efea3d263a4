package libgl

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"bloom-gl/log"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

var logger = log.New("libgl")

var shaderMetaPattern = regexp.MustCompile(`(?m)^\/\/meta:(\w+)(.+)$`)
var shaderDefinePattern = regexp.MustCompile(`(?m)^\s*(\/\/)?\s*#define ([\w\d]+) ?(.*)$`)
var shaderVersionPattern = regexp.MustCompile(`(?m)^\s*#version.+$`)

type shaderPipeline struct {
	glId      uint32
	vertStage ShaderProgram
	fragStage ShaderProgram
}

type UnboundShaderPipeline interface {
	LabeledGlObject
	Id() uint32
	Bind() BoundShaderPipeline
	Attach(program ShaderProgram, stages int)
	Get(stage int) ShaderProgram
	Delete()
}

type BoundShaderPipeline interface {
	UnboundShaderPipeline
}

func NewPipeline() UnboundShaderPipeline {
	var id uint32
	gl.CreateProgramPipelines(1, &id)
	return &shaderPipeline{
		glId: id,
	}
}

func (p *shaderPipeline) Id() uint32 {
	return p.glId
}

func (p *shaderPipeline) SetDebugLabel(label string) {
	setObjectLabel(gl.PROGRAM_PIPELINE, p.glId, label)
}

func (p *shaderPipeline) Attach(program ShaderProgram, stages int) {
	gl.UseProgramStages(p.glId, uint32(stages), program.Id())
	if stages&gl.VERTEX_SHADER_BIT != 0 {
		p.vertStage = program
	}
	if stages&gl.FRAGMENT_SHADER_BIT != 0 {
		p.fragStage = program
	}
}

func (p *shaderPipeline) Get(stage int) ShaderProgram {
	switch stage {
	case gl.VERTEX_SHADER:
		return p.vertStage
	case gl.FRAGMENT_SHADER:
		return p.fragStage
	}
	panic(fmt.Errorf("%d is not a supported shader stage", stage))
}

func (p *shaderPipeline) Bind() BoundShaderPipeline {
	State.BindProgramPipeline(p.glId)
	return BoundShaderPipeline(p)
}

// Delete frees the pipeline object. Attached programs are owned by the caller.
func (p *shaderPipeline) Delete() {
	gl.DeleteProgramPipelines(1, &p.glId)
	p.glId = 0
}

type glslDef struct {
	marker  string
	name    string
	value   string
	boolean bool
}

type program struct {
	uniformLocations map[string]int32
	definitions      map[string]glslDef
	versionEnd       int
	glId             uint32
	name             string
	sourceTemplate   string
	sourceLive       string
	stage            int
}

type ShaderProgram interface {
	Id() uint32
	Name() string
	Compile() error
	CompileWith(defs map[string]string) error
	Delete()
	GetUniformLocation(name string) int32
	SetUniform(name string, value any)
	SetUniformIndexed(name string, index int, value any)
	Source() string
}

// NewShader parses source without compiling it. A `//meta:name` line sets the
// name used in error messages; `#define` lines can be overridden by CompileWith.
func NewShader(source string, stage int) ShaderProgram {
	name := "untitled"

	for _, match := range shaderMetaPattern.FindAllStringSubmatch(source, -1) {
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

	return &program{
		definitions:    definitions,
		name:           name,
		stage:          stage,
		sourceTemplate: source,
		versionEnd:     versionEnd,
	}
}

func (prog *program) Name() string {
	return prog.name
}

func (prog *program) Compile() error {
	return prog.CompileWith(nil)
}

func (prog *program) CompileWith(defs map[string]string) error {
	source := prog.sourceTemplate

	for n, v := range defs {
		if def, ok := prog.definitions[strings.ToLower(n)]; ok {
			source = strings.Replace(source, def.marker, formatDefine(def.name, v, def.boolean), 1)
		} else {
			source = source[:prog.versionEnd] + fmt.Sprintf("\n#define %v %v", n, v) + source[prog.versionEnd:]
		}
	}

	for _, def := range prog.definitions {
		source = strings.Replace(source, def.marker, formatDefine(def.name, def.value, def.boolean), 1)
	}

	cStrs, free := gl.Strs(source + "\x00")
	id := gl.CreateShaderProgramv(uint32(prog.stage), 1, cStrs)
	free()

	var ok int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE {
		info := readProgramInfoLog(id)
		gl.DeleteProgram(id)
		return fmt.Errorf("failed to link %v shader, log: %v", prog.name, info)
	}

	if prog.glId != 0 {
		gl.DeleteProgram(prog.glId)
	}
	prog.glId = id
	prog.sourceLive = source
	prog.uniformLocations = map[string]int32{}
	setObjectLabel(gl.PROGRAM, id, prog.name)

	return nil
}

func formatDefine(name, value string, boolean bool) string {
	if !boolean {
		return fmt.Sprintf("#define %v %v", name, value)
	}
	if value == "false" {
		return "// #define " + name
	}
	return "#define " + name
}

func (prog *program) Source() string {
	return prog.sourceLive
}

func (prog *program) Id() uint32 {
	return prog.glId
}

func (prog *program) Delete() {
	gl.DeleteProgram(prog.glId)
	prog.glId = 0
}

func readProgramInfoLog(id uint32) string {
	var logLength int32
	gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)

	info := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(id, logLength, nil, gl.Str(info))
	return strings.TrimRight(info, "\x00")
}

func (prog *program) GetUniformLocation(name string) int32 {
	if location, ok := prog.uniformLocations[name]; ok {
		return location
	}

	location := gl.GetUniformLocation(prog.glId, gl.Str(name+"\x00"))
	prog.uniformLocations[name] = location

	if location == -1 {
		logger.Warningf("%v shader: could not get location of %q", prog.name, name)
	}

	return location
}

func (prog *program) SetUniformIndexed(name string, index int, value any) {
	location := prog.GetUniformLocation(name)
	if location == -1 {
		return
	}
	setProgramUniformAny(prog.glId, location+int32(index), value)
}

func (prog *program) SetUniform(name string, value any) {
	location := prog.GetUniformLocation(name)
	if location == -1 {
		return
	}
	setProgramUniformAny(prog.glId, location, value)
}

func setProgramUniformAny(prog uint32, location int32, value any) {
	for refVal := reflect.ValueOf(value); refVal.Kind() == reflect.Ptr; refVal = reflect.ValueOf(value) {
		value = refVal.Elem().Interface()
	}

	switch v := value.(type) {
	case bool:
		var i int32
		if v {
			i = 1
		}
		gl.ProgramUniform1i(prog, location, i)
	case float32:
		gl.ProgramUniform1f(prog, location, v)
	case float64:
		gl.ProgramUniform1f(prog, location, float32(v))
	case int:
		gl.ProgramUniform1i(prog, location, int32(v))
	case int32:
		gl.ProgramUniform1i(prog, location, v)
	case uint32:
		gl.ProgramUniform1ui(prog, location, v)
	case mgl32.Vec2:
		gl.ProgramUniform2f(prog, location, v.X(), v.Y())
	case mgl32.Vec3:
		gl.ProgramUniform3f(prog, location, v.X(), v.Y(), v.Z())
	case mgl32.Vec4:
		gl.ProgramUniform4f(prog, location, v.X(), v.Y(), v.Z(), v.W())
	case mgl32.Mat3:
		gl.ProgramUniformMatrix3fv(prog, location, 1, false, &v[0])
	case mgl32.Mat4:
		gl.ProgramUniformMatrix4fv(prog, location, 1, false, &v[0])
	case []float32:
		if len(v) > 0 {
			gl.ProgramUniform1fv(prog, location, int32(len(v)), &v[0])
		}
	default:
		panic(fmt.Errorf("unsupported uniform type %T", value))
	}
}
