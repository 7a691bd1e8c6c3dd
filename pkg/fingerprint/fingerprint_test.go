package fingerprint

import "testing"

func TestComputeBytesDeterministic(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")

	a, err := ComputeBytes(data, LegacyNone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := ComputeBytes(data, LegacyNone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.Prefilter != b.Prefilter || a.Identity != b.Identity || a.Fuzzy != b.Fuzzy {
		t.Errorf("ComputeBytes not deterministic: %+v vs %+v", a, b)
	}
	if a.Legacy != "" {
		t.Errorf("LegacyNone produced a legacy digest: %q", a.Legacy)
	}
}

func TestComputeBytesDiffersOnContent(t *testing.T) {
	a, err := ComputeBytes([]byte("content one"), LegacyNone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := ComputeBytes([]byte("content two"), LegacyNone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.SameIdentity(b) {
		t.Errorf("distinct content produced the same identity digest")
	}
}

func TestComputeBytesLegacyDigests(t *testing.T) {
	data := []byte("legacy digest coverage")

	sha3Bundle, err := ComputeBytes(data, LegacySHA3256)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sha3Bundle.Legacy) != 64 { // 32 bytes hex-encoded
		t.Errorf("sha3-256 legacy digest length = %d, want 64", len(sha3Bundle.Legacy))
	}

	k12Bundle, err := ComputeBytes(data, LegacyKangarooTwelve)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(k12Bundle.Legacy) != kangarooTwelveOutputLen*2 {
		t.Errorf("kangaroo12 legacy digest length = %d, want %d", len(k12Bundle.Legacy), kangarooTwelveOutputLen*2)
	}

	if sha3Bundle.Fuzzy != k12Bundle.Fuzzy {
		t.Errorf("legacy digest choice changed the ssdeep digest: %q vs %q", sha3Bundle.Fuzzy, k12Bundle.Fuzzy)
	}
}
