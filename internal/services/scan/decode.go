package scan

import (
	"encoding/json"
	"strings"

	"github.com/qrally/qrally/internal/model"
)

// detection is the normalized shape of one decode result from the
// scanning widget. Different widget versions emit either a text field
// or a rawValue field.
type detection struct {
	Text     string `json:"text"`
	RawValue string `json:"rawValue"`
}

func (d detection) value() string {
	if d.Text != "" {
		return d.Text
	}
	return d.RawValue
}

// DecodePayload normalizes a scanning widget event payload into a single
// decoded string.
//
// Three upstream shapes are tolerated: a collection of detections (the
// first one wins), a single object with a text field, and a single object
// with a rawValue field. Anything else yields ErrNoDecodedText and the
// event is discarded without user-visible effect.
func DecodePayload(raw json.RawMessage) (string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return "", model.ErrNoDecodedText
	}

	if strings.HasPrefix(trimmed, "[") {
		var many []detection
		if err := json.Unmarshal(raw, &many); err != nil || len(many) == 0 {
			return "", model.ErrNoDecodedText
		}
		if text := strings.TrimSpace(many[0].value()); text != "" {
			return text, nil
		}
		return "", model.ErrNoDecodedText
	}

	var one detection
	if err := json.Unmarshal(raw, &one); err != nil {
		return "", model.ErrNoDecodedText
	}
	if text := strings.TrimSpace(one.value()); text != "" {
		return text, nil
	}
	return "", model.ErrNoDecodedText
}
