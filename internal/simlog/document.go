// Package simlog models the recorded print-simulation log and decodes it.
//
// The log is a JSON document:
//
//	{ "init":   { "machines": [ {"n": 0, "v": [x, y, z], "r": yaw}, ... ] },
//	  "frames": [ { "machines": [ ... ], "printeds": [ [[x, y, z], ...], ... ] }, ... ] }
//
// Coordinates are in simulator units with Z up; ToWorld converts them to the
// Y-up world space used for playback.
package simlog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidDocument reports a log that is not well-formed JSON of the expected shape.
var ErrInvalidDocument = errors.New("invalid simulation document")

// Document is a decoded simulation log. Nil slices mean the key was absent or null.
type Document struct {
	Init   *Init   `json:"init"`
	Frames []Frame `json:"frames"`
}

// Init holds the starting pose of every machine.
type Init struct {
	Machines []Machine `json:"machines"`
}

// Machine is one actor pose record.
type Machine struct {
	N int       `json:"n"` // Actor index
	V []float64 `json:"v"` // Position, simulator units
	R float64   `json:"r"` // Yaw, radians
}

// Frame is one simulated step: machine poses plus newly printed polylines.
type Frame struct {
	Machines []Machine     `json:"machines"`
	Printeds [][][]float64 `json:"printeds"`
}

// Decode reads one JSON document from r. A literal null yields a nil Document
// and no error; the caller decides whether that is acceptable.
func Decode(r io.Reader) (*Document, error) {
	var doc *Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return doc, nil
}

// Unmarshal decodes a document held in memory.
func Unmarshal(data []byte) (*Document, error) {
	var doc *Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return doc, nil
}
