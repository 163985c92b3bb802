package scan

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qrally/qrally/internal/model"
)

func TestDecodePayloadShapes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
		wantErr bool
	}{
		{
			name:    "single object with text field",
			payload: `{"text":"CP01"}`,
			want:    "CP01",
		},
		{
			name:    "single object with rawValue field",
			payload: `{"rawValue":"CP02"}`,
			want:    "CP02",
		},
		{
			name:    "text wins over rawValue",
			payload: `{"text":"CP01","rawValue":"CP02"}`,
			want:    "CP01",
		},
		{
			name:    "collection of detections takes the first",
			payload: `[{"text":"CP03"},{"text":"CP04"}]`,
			want:    "CP03",
		},
		{
			name:    "collection with rawValue detections",
			payload: `[{"rawValue":"CP05"}]`,
			want:    "CP05",
		},
		{
			name:    "surrounding whitespace trimmed",
			payload: `{"text":"  CP01  "}`,
			want:    "CP01",
		},
		{
			name:    "empty object discarded",
			payload: `{}`,
			wantErr: true,
		},
		{
			name:    "empty collection discarded",
			payload: `[]`,
			wantErr: true,
		},
		{
			name:    "collection with no text discarded",
			payload: `[{"format":"qr"}]`,
			wantErr: true,
		},
		{
			name:    "unrelated fields discarded",
			payload: `{"format":"qr","corners":[1,2]}`,
			wantErr: true,
		},
		{
			name:    "invalid json discarded",
			payload: `not json at all`,
			wantErr: true,
		},
		{
			name:    "empty payload discarded",
			payload: ``,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodePayload(json.RawMessage(tt.payload))
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrNoDecodedText)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
