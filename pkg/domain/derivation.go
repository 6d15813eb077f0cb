package domain

import "time"

// Derivation is the record of one parse and differentiate run.
// It is what stores persist and what adapters return.
type Derivation struct {
	ID         string     `json:"id" yaml:"id"`
	Expression string     `json:"expression" yaml:"expression"`
	Key        string     `json:"key" yaml:"key"`
	Terms      Polynomial `json:"terms" yaml:"terms"`
	Derivative Polynomial `json:"derivative" yaml:"derivative"`
	Text       string     `json:"text" yaml:"text"`
	CreatedAt  time.Time  `json:"created_at" yaml:"created_at"`
}
