package mcp

// PickColorInput is the input for the pick_color tool.
type PickColorInput struct {
	Format         string `json:"format,omitempty" jsonschema:"Notation for the text field: hex (default), rgb, rgba or hsl"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" jsonschema:"How long to wait for the click in seconds (default: config timeout_seconds, else 60; max 600)"`
	AtPointer      bool   `json:"at_pointer,omitempty" jsonschema:"When true, sample the pixel under the current pointer immediately instead of waiting for a click"`
	Copy           *bool  `json:"copy,omitempty" jsonschema:"Copy the text to the clipboard (default: config clipboard.enabled)"`
}

// PickColorOutput is the output for the pick_color tool.
type PickColorOutput struct {
	Text    string `json:"text"`
	Hex     string `json:"hex"`
	RGB     string `json:"rgb"`
	RGBA    string `json:"rgba"`
	HSL     string `json:"hsl"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Monitor string `json:"monitor,omitempty"`
	Copied  bool   `json:"copied"`
}

// ConvertColorInput is the input for the convert_color tool.
type ConvertColorInput struct {
	Color  string `json:"color" jsonschema:"Color to convert: #RRGGBB, RRGGBB, #RGB, r,g,b or rgb(r, g, b)"`
	Format string `json:"format,omitempty" jsonschema:"Notation for the text field: hex (default), rgb, rgba or hsl"`
}

// ConvertColorOutput is the output for the convert_color tool.
type ConvertColorOutput struct {
	Text string `json:"text"`
	Hex  string `json:"hex"`
	RGB  string `json:"rgb"`
	RGBA string `json:"rgba"`
	HSL  string `json:"hsl"`
}
