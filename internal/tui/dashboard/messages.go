package dashboard

import "github.com/elsanchez/bakraload/internal/controller"

// Message types for async operations

type intentDoneMsg struct {
	intent  controller.Intent
	outcome controller.Outcome
	err     error
}
