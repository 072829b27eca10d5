package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveProfile(t *testing.T) {
	tests := []struct {
		name          string
		header        []string
		opts          Options
		wantValues    []string
		wantTimestamp string
		wantUsable    bool
	}{
		{
			name:   "explicit timestamp with all columns present",
			header: []string{"Timestamp", "Temp", "Humidity"},
			opts: Options{
				ValueColumns:    []string{"Temp", "Humidity"},
				TimestampColumn: "Timestamp",
			},
			wantValues:    []string{"Temp", "Humidity"},
			wantTimestamp: "Timestamp",
			wantUsable:    true,
		},
		{
			name:   "explicit timestamp missing makes sheet unusable",
			header: []string{"Clock", "Temp"},
			opts: Options{
				ValueColumns:    []string{"Temp"},
				TimestampColumn: "Timestamp",
			},
			wantValues: []string{"Temp"},
			wantUsable: false,
		},
		{
			name:   "auto mode picks first date or time column",
			header: []string{"Sensor", "Reading Date", "Sample Time", "Raw"},
			opts: Options{
				ValueColumns:  []string{"Raw"},
				AutoTimestamp: true,
			},
			wantValues:    []string{"Raw"},
			wantTimestamp: "Reading Date",
			wantUsable:    true,
		},
		{
			name:   "auto mode is case insensitive",
			header: []string{"TIMESTAMP", "Raw"},
			opts: Options{
				ValueColumns:  []string{"Raw"},
				AutoTimestamp: true,
			},
			wantValues:    []string{"Raw"},
			wantTimestamp: "TIMESTAMP",
			wantUsable:    true,
		},
		{
			name:   "auto mode without a candidate is unusable",
			header: []string{"Sensor", "Raw"},
			opts: Options{
				ValueColumns:  []string{"Raw"},
				AutoTimestamp: true,
			},
			wantValues: []string{"Raw"},
			wantUsable: false,
		},
		{
			name:   "no timestamp wanted needs values only",
			header: []string{"Sensor", "Raw"},
			opts: Options{
				ValueColumns: []string{"Raw"},
			},
			wantValues: []string{"Raw"},
			wantUsable: true,
		},
		{
			name:   "request order preserved over header order",
			header: []string{"Timestamp", "Humidity", "Temp"},
			opts: Options{
				ValueColumns:    []string{"Temp", "Humidity", "Pressure"},
				TimestampColumn: "Timestamp",
			},
			wantValues:    []string{"Temp", "Humidity"},
			wantTimestamp: "Timestamp",
			wantUsable:    true,
		},
		{
			name:   "no value columns present is unusable",
			header: []string{"Timestamp", "Voltage"},
			opts: Options{
				ValueColumns:    []string{"Temp"},
				TimestampColumn: "Timestamp",
			},
			wantUsable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := ResolveProfile("sheet1", tt.header, tt.opts)

			assert.Equal(t, tt.wantValues, profile.PresentValueColumns)
			assert.Equal(t, tt.wantTimestamp, profile.TimestampColumn)
			assert.Equal(t, tt.wantUsable, profile.Usable)
			assert.Equal(t, "sheet1", profile.SheetName)
		})
	}
}
