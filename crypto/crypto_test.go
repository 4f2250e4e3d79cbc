package crypto

import "testing"

func TestHashAndCompare(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "Sup3rSecret" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !ComparePassword(hash, "Sup3rSecret") {
		t.Fatal("hash must verify against the original password")
	}
	if ComparePassword(hash, "Sup3rSecre") {
		t.Fatal("hash must reject a wrong password")
	}
	if ComparePassword("not-a-hash", "Sup3rSecret") {
		t.Fatal("garbage hash must never verify")
	}
}

func TestHashesAreSalted(t *testing.T) {
	a, err := HashPassword("Sup3rSecret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := HashPassword("Sup3rSecret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a == b {
		t.Fatal("two hashes of the same password must differ")
	}
}
