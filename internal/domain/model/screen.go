package model

// Button is a single pressable control. Action carries the encoded action
// identifier delivered back as a button-press event.
type Button struct {
	Label  string
	Action string
}

// Screen is a renderable unit of content: a text body plus zero or more rows
// of buttons. The structure is opaque to the navigation router; the transport
// layer decides how to display it.
type Screen struct {
	Text    string
	Buttons [][]Button
}
