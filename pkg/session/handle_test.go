package session

import "testing"

func TestHandle_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		handle Handle
		want   bool
	}{
		{"zero value", Handle{}, false},
		{"unsecured session id", Handle{Type: SessionTypeCASE}, false},
		{"unknown type", Handle{LocalSessionID: 10}, false},
		{"established CASE", Handle{Type: SessionTypeCASE, LocalSessionID: 10, PeerSessionID: 20}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.handle.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSessionType_String(t *testing.T) {
	if SessionTypeCASE.String() != "CASE" || SessionTypePASE.String() != "PASE" || SessionType(9).String() != "Unknown" {
		t.Error("unexpected session type names")
	}
}
