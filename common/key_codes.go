package common

// Virtual key codes passed to window key callbacks.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeySpace = 32 // Spacebar (ASCII)
	KeyC     = 67 // C key (ASCII)
	KeyL     = 76 // L key (ASCII)
	KeyR     = 82 // R key (ASCII)
	KeyEsc   = 256

	Key1 = 49 // 1 key (ASCII)
	Key2 = 50 // 2 key (ASCII)
	Key3 = 51 // 3 key (ASCII)
)
