package handlers

import (
	"testing"
	"time"
)

func TestTokenExpired(t *testing.T) {
	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(15 * time.Minute)

	tests := []struct {
		name      string
		expiresAt *time.Time
		want      bool
	}{
		{"nil expiry", nil, true},
		{"past expiry", &past, true},
		{"future expiry", &future, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tokenExpired(tt.expiresAt); got != tt.want {
				t.Fatalf("tokenExpired(%v) = %v, want %v", tt.expiresAt, got, tt.want)
			}
		})
	}
}
