package effects

import (
	"fmt"
	"os"
	"runtime"
	"testing"
	"unsafe"

	"bloom-gl/libgl"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var onMain chan func()
var onMainDone chan struct{}

var glContextErr error

func TestMain(m *testing.M) {
	runtime.LockOSThread()

	if glContextErr = createContext(); glContextErr != nil {
		os.Exit(m.Run())
	}
	defer glfw.Terminate()

	onMain = make(chan func())
	onMainDone = make(chan struct{})

	go func() {
		os.Exit(m.Run())
	}()

	for fn := range onMain {
		fn()
		onMainDone <- struct{}{}
	}
}

func createContext() error {
	if err := glfw.Init(); err != nil {
		return err
	}
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 5)
	glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	ctx, err := glfw.CreateWindow(64, 64, "Testing Window", nil, nil)
	if err != nil {
		glfw.Terminate()
		return err
	}
	ctx.MakeContextCurrent()

	if err := libgl.InitContext(glfw.GetProcAddress); err != nil {
		glfw.Terminate()
		return err
	}

	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	gl.DebugMessageCallback(func(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
		if severity == gl.DEBUG_SEVERITY_HIGH || gltype == gl.DEBUG_TYPE_ERROR {
			fmt.Printf("GL: %v\n", message)
		}
	}, nil)
	return nil
}

// runOnMain executes fn on the thread owning the context, skipping t without one.
func runOnMain(t *testing.T, fn func()) {
	t.Helper()
	if glContextErr != nil {
		t.Skipf("no OpenGL 4.5 context: %v", glContextErr)
	}
	onMain <- fn
	<-onMainDone
}
