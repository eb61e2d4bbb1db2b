package ports

// Display is a fixed-size character-cell surface.
type Display interface {
	// Render draws one frame. text, fg, and bg have the same length; line i of fg and bg
	// holds one color code per cell of text line i. The display positions the cursor
	// for each line itself.
	Render(text, fg, bg []string) error

	// Message replaces the surface with a single terminal status message.
	Message(text string) error

	// Clear blanks the surface.
	Clear() error
}
