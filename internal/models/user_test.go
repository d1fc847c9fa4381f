package models

import "testing"

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Sarah Connor", "Sarah C."},
		{"Cher", "Cher"},
		{"  Ada   Lovelace  ", "Ada L."},
		{"Jean-Luc Picard", "Jean-Luc P."},
		{"María Ñúñez", "María Ñ."},
		{"", ""},
	}
	for _, tt := range tests {
		u := User{Name: tt.name}
		if got := u.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
