package libgl

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.5-core/gl"
)

type LabeledGlObject interface {
	SetDebugLabel(string)
}

func setObjectLabel(namespace, id uint32, label string) {
	if label == "" {
		return
	}
	bytes := []byte(label)
	gl.ObjectLabel(namespace, id, int32(len(bytes)), (*uint8)(unsafe.Pointer(&bytes[0])))
}

// PushGroup opens a named debug group; the returned func closes it.
//
//	defer libgl.PushGroup("Blur")()
func PushGroup(name string) func() {
	gl.PushDebugGroup(gl.DEBUG_SOURCE_APPLICATION, 999, -1, gl.Str(name+"\x00"))
	return gl.PopDebugGroup
}

var debugSeverities = map[uint32]string{
	gl.DEBUG_SEVERITY_HIGH:         "CRITICAL_ERROR",
	gl.DEBUG_SEVERITY_MEDIUM:       "ERROR",
	gl.DEBUG_SEVERITY_LOW:          "WARNING",
	gl.DEBUG_SEVERITY_NOTIFICATION: "INFO",
}

var debugTypes = map[uint32]string{
	gl.DEBUG_TYPE_ERROR:               "ERROR",
	gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR: "DEPRECATED_BEHAVIOR",
	gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:  "UNDEFINED_BEHAVIOR",
	gl.DEBUG_TYPE_PERFORMANCE:         "PERFORMANCE",
	gl.DEBUG_TYPE_PORTABILITY:         "PORTABILITY",
	gl.DEBUG_TYPE_OTHER:               "OTHER",
	gl.DEBUG_TYPE_MARKER:              "MARKER",
}

var debugSources = map[uint32]string{
	gl.DEBUG_SOURCE_API:             "GRAPHICS_LIBRARY",
	gl.DEBUG_SOURCE_SHADER_COMPILER: "SHADER_COMPILER",
	gl.DEBUG_SOURCE_WINDOW_SYSTEM:   "WINDOW_SYSTEM",
	gl.DEBUG_SOURCE_THIRD_PARTY:     "THIRD_PARTY",
	gl.DEBUG_SOURCE_APPLICATION:     "APPLICATION",
	gl.DEBUG_SOURCE_OTHER:           "OTHER",
}

// EnableDebugOutput routes GL debug messages to the libgl logger.
// High severity messages panic with the current debug group stack.
func EnableDebugOutput() {
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	groupStack := []string{"top"}
	gl.DebugMessageCallback(func(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
		switch gltype {
		case gl.DEBUG_TYPE_PUSH_GROUP:
			groupStack = append(groupStack, message)
			return
		case gl.DEBUG_TYPE_POP_GROUP:
			if len(groupStack) > 1 {
				groupStack = groupStack[:len(groupStack)-1]
			}
			return
		}

		msg := fmt.Sprintf("[%v] %v #%v from %v: %v", debugSeverities[severity], debugTypes[gltype], id, debugSources[source], message)
		switch severity {
		case gl.DEBUG_SEVERITY_HIGH:
			logger.Errorf("%v\ndebug stack: %v", msg, strings.Join(groupStack, " > "))
			panic(msg)
		case gl.DEBUG_SEVERITY_MEDIUM:
			logger.Error(msg)
		case gl.DEBUG_SEVERITY_LOW:
			logger.Warning(msg)
		default:
			logger.Debug(msg)
		}
	}, nil)

	// buffer detailed info and usage hints from nvidia drivers
	disabledMessages := []uint32{131185}
	gl.DebugMessageControl(gl.DEBUG_SOURCE_API, gl.DEBUG_TYPE_OTHER, gl.DONT_CARE, int32(len(disabledMessages)), &disabledMessages[0], false)
	disabledMessages = []uint32{131222}
	gl.DebugMessageControl(gl.DEBUG_SOURCE_API, gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR, gl.DONT_CARE, int32(len(disabledMessages)), &disabledMessages[0], false)
}

// InitContext loads the GL function pointers through getProcAddress and
// sets up the tracked state. It must run on the thread owning the context.
func InitContext(getProcAddress func(name string) unsafe.Pointer) error {
	err := gl.InitWithProcAddrFunc(func(name string) unsafe.Pointer {
		addr := getProcAddress(name)
		if addr == nil {
			return unsafe.Pointer(uintptr(0xffff_ffff_ffff_ffff))
		}
		return addr
	})
	if err != nil {
		return fmt.Errorf("could not load OpenGL: %w", err)
	}
	Env = GetEnvironment()
	State = NewStateManager()
	logger.Infof("OpenGL %s on %s (%s)", Env.Version, Env.Renderer, Env.Vendor)
	return nil
}
