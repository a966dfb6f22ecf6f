package recognizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/npillmayer/hanzi"
	"github.com/npillmayer/hanzi/matcher"
)

// ErrMalformedRequest is returned for request data which cannot be decoded.
var ErrMalformedRequest = errors.New("malformed recognition request")

// Request is a written character as captured by an input surface: strokes in
// writing order, each a sequence of pen positions. Options, if not nil,
// replace the recognizer's options for this request.
type Request struct {
	Strokes [][]hanzi.Point
	Options *matcher.Options
}

// wire format:
//
//	{
//	  "strokes": [ {"x": [10, 20, 30], "y": [50, 50, 51]}, … ],
//	  "options": {"looseness": 0.25, "maxResults": 15, "simplified": true, "traditional": true}
//	}
type wireRequest struct {
	Strokes []wireStroke `json:"strokes"`
	Options *wireOptions `json:"options,omitempty"`
}

type wireStroke struct {
	X []int `json:"x"`
	Y []int `json:"y"`
}

type wireOptions struct {
	Looseness   *float64 `json:"looseness,omitempty"`
	MaxResults  *int     `json:"maxResults,omitempty"`
	Simplified  *bool    `json:"simplified,omitempty"`
	Traditional *bool    `json:"traditional,omitempty"`
}

// ParseRequest decodes a JSON request. Options missing from an "options"
// object take their default values.
func ParseRequest(r io.Reader) (Request, error) {
	var wire wireRequest
	dec := json.NewDecoder(r)
	if err := dec.Decode(&wire); err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	req := Request{Strokes: make([][]hanzi.Point, 0, len(wire.Strokes))}
	for i, s := range wire.Strokes {
		if len(s.X) != len(s.Y) {
			return Request{}, fmt.Errorf("%w: stroke %d has %d x and %d y coordinates",
				ErrMalformedRequest, i, len(s.X), len(s.Y))
		}
		points := make([]hanzi.Point, len(s.X))
		for j := range s.X {
			points[j] = hanzi.Pt(s.X[j], s.Y[j])
		}
		req.Strokes = append(req.Strokes, points)
	}
	if o := wire.Options; o != nil {
		opts := matcher.DefaultOptions()
		if o.Looseness != nil {
			opts.Looseness = *o.Looseness
		}
		if o.MaxResults != nil {
			opts.MaxResults = *o.MaxResults
		}
		if o.Simplified != nil {
			opts.Simplified = *o.Simplified
		}
		if o.Traditional != nil {
			opts.Traditional = *o.Traditional
		}
		req.Options = &opts
	}
	return req, nil
}

// MarshalJSON encodes a request in the format read by ParseRequest.
func (req Request) MarshalJSON() ([]byte, error) {
	wire := wireRequest{Strokes: make([]wireStroke, len(req.Strokes))}
	for i, s := range req.Strokes {
		wire.Strokes[i].X = make([]int, len(s))
		wire.Strokes[i].Y = make([]int, len(s))
		for j, p := range s {
			wire.Strokes[i].X[j], wire.Strokes[i].Y[j] = p.X, p.Y
		}
	}
	if o := req.Options; o != nil {
		wire.Options = &wireOptions{
			Looseness:   &o.Looseness,
			MaxResults:  &o.MaxResults,
			Simplified:  &o.Simplified,
			Traditional: &o.Traditional,
		}
	}
	return json.Marshal(wire)
}

// Character builds the written character of a request. Strokes with fewer
// than two points cannot be segmented and are dropped.
func (req Request) Character() *hanzi.WrittenCharacter {
	c := hanzi.NewWrittenCharacter()
	for i, points := range req.Strokes {
		s, err := hanzi.NewStroke(points)
		if err != nil {
			tracer().Debugf("dropping stroke %d: %v", i, err)
			continue
		}
		c.AddStroke(s)
	}
	c.Analyze()
	return c
}
