package validator

import (
	"testing"

	domainerrors "trail/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	Lat *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng *float64 `json:"lng" validate:"required,gte=-180,lte=180"`
}

type walkBody struct {
	Origin      *point `json:"origin" validate:"omitempty"`
	Destination *point `json:"destination" validate:"required"`
}

func ptr(v float64) *float64 { return &v }

func TestValidator_Validate(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		input   any
		wantErr string
	}{
		{
			name:  "valid",
			input: &walkBody{Destination: &point{Lat: ptr(12.97), Lng: ptr(77.59)}},
		},
		{
			name:    "missing destination",
			input:   &walkBody{},
			wantErr: "destination is required",
		},
		{
			name:    "missing longitude",
			input:   &walkBody{Destination: &point{Lat: ptr(12.97)}},
			wantErr: "destination.lng is required",
		},
		{
			name:    "latitude out of range",
			input:   &walkBody{Destination: &point{Lat: ptr(91), Lng: ptr(0)}},
			wantErr: "destination.lat must be at most 90",
		},
		{
			name: "origin longitude out of range",
			input: &walkBody{
				Origin:      &point{Lat: ptr(0), Lng: ptr(-181)},
				Destination: &point{Lat: ptr(0), Lng: ptr(0)},
			},
			wantErr: "origin.lng must be at least -180",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
