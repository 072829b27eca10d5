package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "telcli/internal/errors"
)

type testRequest struct {
	SourceDir string `json:"source_dir" validate:"required"`
	Year      int    `json:"year" validate:"year_range"`
	Month     int    `json:"month" validate:"month_range"`
	Mode      string `json:"mode" validate:"omitempty,oneof=sum concat"`
}

func TestStructValidator_ValidateStruct(t *testing.T) {
	tests := []struct {
		name          string
		request       testRequest
		wantErr       bool
		errorContains string
	}{
		{
			name: "valid request",
			request: testRequest{
				SourceDir: "/data/incoming",
				Year:      2024,
				Month:     3,
				Mode:      "sum",
			},
			wantErr: false,
		},
		{
			name: "zero year and month mean infer",
			request: testRequest{
				SourceDir: "/data/incoming",
				Year:      0,
				Month:     0,
			},
			wantErr: false,
		},
		{
			name: "missing source dir",
			request: testRequest{
				Year:  2024,
				Month: 3,
			},
			wantErr:       true,
			errorContains: "source_dir is required",
		},
		{
			name: "year before range",
			request: testRequest{
				SourceDir: "/data/incoming",
				Year:      1999,
			},
			wantErr:       true,
			errorContains: "year must be between 2000 and 2100",
		},
		{
			name: "year after range",
			request: testRequest{
				SourceDir: "/data/incoming",
				Year:      9999,
			},
			wantErr:       true,
			errorContains: "year must be between 2000 and 2100",
		},
		{
			name: "month out of range",
			request: testRequest{
				SourceDir: "/data/incoming",
				Year:      2024,
				Month:     13,
			},
			wantErr:       true,
			errorContains: "month must be between 1 and 12",
		},
		{
			name: "invalid mode",
			request: testRequest{
				SourceDir: "/data/incoming",
				Year:      2024,
				Mode:      "average",
			},
			wantErr:       true,
			errorContains: "mode must be one of: sum, concat",
		},
		{
			name: "multiple failures joined",
			request: testRequest{
				Year:  1850,
				Month: 42,
			},
			wantErr:       true,
			errorContains: "; ",
		},
	}

	validator := NewStructValidator()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.request)

			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
