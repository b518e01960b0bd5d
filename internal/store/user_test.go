package store

import (
	"testing"

	"github.com/google/uuid"
)

func TestUserStoreCreateAndAuth(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	email := "test-" + uuid.NewString()[:8] + "@example.com"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	u, err := s.Create(email, "correct horse", "Owner")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.PasswordHash == "correct horse" {
		t.Error("password stored in plaintext")
	}

	found, err := s.FindByEmail(email)
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found == nil {
		t.Fatal("expected user")
	}

	if !s.CheckPassword(found, "correct horse") {
		t.Error("correct password rejected")
	}
	if s.CheckPassword(found, "wrong") {
		t.Error("wrong password accepted")
	}
}

func TestUserStoreTOTPLifecycle(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	email := "test-totp-" + uuid.NewString()[:8] + "@example.com"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	u, err := s.Create(email, "pw", "Owner")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !u.Needs2FASetup() {
		t.Error("fresh user must need 2FA setup")
	}

	if err := s.SetTOTPSecret(u.ID, "JBSWY3DPEHPK3PXP"); err != nil {
		t.Fatalf("SetTOTPSecret: %v", err)
	}
	if err := s.EnableTOTP(u.ID); err != nil {
		t.Fatalf("EnableTOTP: %v", err)
	}

	found, err := s.FindByID(u.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !found.TOTPEnabled || found.TOTPSecret == nil || *found.TOTPSecret != "JBSWY3DPEHPK3PXP" {
		t.Errorf("totp state: %+v", found)
	}
	if found.Needs2FASetup() {
		t.Error("enabled user must not need setup")
	}
}
