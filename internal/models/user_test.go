package models

import "testing"

// TestUserNeeds2FASetup verifies 2FA setup detection based on
// TOTPEnabled and TOTPSecret fields.
func TestUserNeeds2FASetup(t *testing.T) {
	secret := "JBSWY3DPEHPK3PXP"

	tests := []struct {
		name        string
		totpSecret  *string
		totpEnabled bool
		want        bool
	}{
		{
			name:        "no secret and not enabled",
			totpSecret:  nil,
			totpEnabled: false,
			want:        true,
		},
		{
			name:        "secret set but not enabled",
			totpSecret:  &secret,
			totpEnabled: false,
			want:        true,
		},
		{
			name:        "secret set and enabled",
			totpSecret:  &secret,
			totpEnabled: true,
			want:        false,
		},
		{
			name:        "nil secret but enabled (edge case)",
			totpSecret:  nil,
			totpEnabled: true,
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{
				TOTPSecret:  tt.totpSecret,
				TOTPEnabled: tt.totpEnabled,
			}
			got := u.Needs2FASetup()
			if got != tt.want {
				t.Errorf("Needs2FASetup() = %v, want %v (secret=%v, enabled=%v)",
					got, tt.want, tt.totpSecret != nil, tt.totpEnabled)
			}
		})
	}
}
