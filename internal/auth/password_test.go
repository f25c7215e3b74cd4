package auth

import "testing"

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	second, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same password should differ")
	}
	if first == "hunter2" || second == "hunter2" {
		t.Fatal("hash must not equal the plaintext")
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if !VerifyPassword("hunter2", hash) {
		t.Fatal("correct password should verify")
	}
	if VerifyPassword("wrong", hash) {
		t.Fatal("wrong password should not verify")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	if VerifyPassword("hunter2", "not-a-bcrypt-hash") {
		t.Fatal("malformed hash should verify as false")
	}
	if VerifyPassword("hunter2", "") {
		t.Fatal("empty hash should verify as false")
	}
}
