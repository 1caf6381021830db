package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("pass1234")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "pass1234" {
		t.Fatal("hash equals plaintext")
	}

	if !CheckPassword("pass1234", hash) {
		t.Error("correct password rejected")
	}
	if CheckPassword("wrong-password", hash) {
		t.Error("wrong password accepted")
	}
}

func TestCheckPassword_InvalidHash(t *testing.T) {
	if CheckPassword("pass1234", "not-a-bcrypt-hash") {
		t.Error("garbage hash accepted")
	}
}
