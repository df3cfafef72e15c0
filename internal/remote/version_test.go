package remote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type versionStub struct{ min, max int }

func (s versionStub) VersionRange() (int, int) { return s.min, s.max }

func TestValidateVersion(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
		wantErr  bool
	}{
		{name: "exact match", min: ProtocolVersion, max: ProtocolVersion},
		{name: "inside range", min: ProtocolVersion - 1, max: ProtocolVersion + 1},
		{name: "below range", min: ProtocolVersion + 1, max: ProtocolVersion + 2, wantErr: true},
		{name: "above range", min: ProtocolVersion - 2, max: ProtocolVersion - 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVersion(versionStub{tt.min, tt.max}, ErrInvalidDriverVersion)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDriverVersion)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
