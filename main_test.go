package main

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/pthm-cable/pathwalker/game"
)

func TestReportError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"plain", errors.New("screen init failed"), "pathwalker: screen init failed\n"},
		{"wrapped", fmt.Errorf("restarting: %w", game.ErrTickLimit), "pathwalker: restarting: session exceeded its tick limit\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			reportError(&buf, tt.err)
			if got := buf.String(); got != tt.want {
				t.Errorf("reportError() wrote %q, want %q", got, tt.want)
			}
		})
	}
}
