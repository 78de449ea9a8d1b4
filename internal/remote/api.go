package remote

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/Faultbox/creature-poser/internal/interaction"
)

// Request is one client input: either a key name or a command.
//
//	{"key": "Enter"}
//	{"op": "rotate", "delta": 1}
type Request struct {
	Key string `json:"key,omitempty"`
	interaction.Command
}

// Reply answers a request with the resulting state.
type Reply struct {
	State interaction.Snapshot `json:"state"`
	Error string               `json:"error,omitempty"`
}

// ErrEmptyRequest is returned for a request with neither key nor op.
var ErrEmptyRequest = errors.New("request needs a key or an op")

// DecodeRequest reads a JSON request.
func DecodeRequest(r io.Reader) (Request, error) {
	var req Request
	if err := json.NewDecoder(io.LimitReader(r, 1<<16)).Decode(&req); err != nil {
		return Request{}, errors.Wrap(err, "decode request")
	}
	return req, req.validate()
}

func (r Request) validate() error {
	if r.Key == "" && r.Op == interaction.OpNone {
		return ErrEmptyRequest
	}
	if r.Key != "" {
		if _, err := interaction.ParseKey(r.Key); err != nil {
			return errors.Wrap(err, "decode request")
		}
	}
	return nil
}

// Apply runs the request against c.
func (r Request) Apply(c *interaction.Controller) error {
	if r.Key != "" {
		k, err := interaction.ParseKey(r.Key)
		if err != nil {
			return err
		}
		return c.HandleKey(k)
	}
	return c.Handle(r.Command)
}
