package domain

// Transition describes one row of the parser transition table.
// It is descriptive data (for introspection and diagrams); the parser itself
// dispatches with a switch.
type Transition struct {
	From ParseState `json:"from" yaml:"from"`
	To   ParseState `json:"to" yaml:"to"`

	// On is a human readable label for the accepted character class, e.g. "digit" or "x".
	On string `json:"on" yaml:"on"`

	// Closes is true when taking this transition appends a finished term.
	Closes bool `json:"closes,omitempty" yaml:"closes,omitempty"`
}
