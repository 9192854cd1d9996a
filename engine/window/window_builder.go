package window

// windowConfig collects the settings applied when the window is opened.
type windowConfig struct {
	title     string
	width     int
	height    int
	fixedSize bool
}

// WindowBuilderOption is a functional option for configuring a window.
// Use the With* functions to create options.
type WindowBuilderOption func(*windowConfig)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text (default "halcyon")
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(c *windowConfig) {
		c.title = title
	}
}

// WithSize sets the initial window size.
//
// Parameters:
//   - width: initial width in pixels (default 1280)
//   - height: initial height in pixels (default 720)
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(c *windowConfig) {
		if width > 0 {
			c.width = width
		}
		if height > 0 {
			c.height = height
		}
	}
}

// WithFixedSize disables window resizing by the user.
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithFixedSize() WindowBuilderOption {
	return func(c *windowConfig) {
		c.fixedSize = true
	}
}
