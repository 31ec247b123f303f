package form

import (
	"fmt"

	"github.com/alexberriman/react-jedi-sub020/internal/encoding"
	"github.com/alexberriman/react-jedi-sub020/pkg/spec"
)

// Codec signs and verifies snapshot tokens.
type Codec = encoding.Codec

// NewCodec builds a token codec from a signing key. Hosts must use the same
// key for the render that embeds a token and the request that restores it.
func NewCodec(key []byte) (*Codec, error) {
	return encoding.NewCodec(key)
}

// Snapshot serialises the form's identity, values, and errors into a signed
// token. Stateless hosts embed the token in the rendered page and rebuild the
// form instance from it on the next request.
func (s *State) Snapshot(codec *encoding.Codec, formID string) (string, error) {
	if codec == nil {
		return "", fmt.Errorf("form: codec is required")
	}

	s.mu.Lock()
	payload := map[string]any{
		"id":     formID,
		"values": s.values,
		"errors": s.errors,
	}
	token, err := codec.Encode(payload)
	s.mu.Unlock()

	if err != nil {
		return "", fmt.Errorf("form: snapshot: %w", err)
	}
	return token, nil
}

// RestoreState verifies a snapshot token and returns the form identity plus a
// state seed equivalent to the spec node's `state` block.
func RestoreState(codec *encoding.Codec, token string) (string, *spec.NodeState, error) {
	if codec == nil {
		return "", nil, fmt.Errorf("form: codec is required")
	}

	payload, err := codec.Decode(token)
	if err != nil {
		return "", nil, fmt.Errorf("form: restore: %w", err)
	}

	formID, _ := payload["id"].(string)
	seed := &spec.NodeState{
		FormData: make(map[string]any),
		Errors:   make(map[string]string),
	}
	if values, ok := payload["values"].(map[string]any); ok {
		for field, value := range values {
			seed.FormData[field] = value
		}
	}
	if errs, ok := payload["errors"].(map[string]any); ok {
		for field, message := range errs {
			if text, ok := message.(string); ok {
				seed.Errors[field] = text
			}
		}
	}
	return formID, seed, nil
}
