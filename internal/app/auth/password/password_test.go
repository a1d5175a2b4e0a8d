package password

import (
	"testing"
)

func TestHashVerify_RoundTrip(t *testing.T) {
	hash, err := Hash("longpassword1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !Verify("longpassword1", hash) {
		t.Fatal("correct password must verify")
	}
	if Verify("longpassword2", hash) {
		t.Fatal("wrong password must not verify")
	}
}

func TestHash_SaltedPerCall(t *testing.T) {
	h1, err := Hash("longpassword1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	h2, err := Hash("longpassword1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password must differ (fresh salt)")
	}
	if !Verify("longpassword1", h1) || !Verify("longpassword1", h2) {
		t.Fatal("both salted hashes must verify")
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	if Verify("whatever", "not-an-argon2id-hash") {
		t.Fatal("malformed hash must verify as false")
	}
	if Verify("whatever", "") {
		t.Fatal("empty hash must verify as false")
	}
}
