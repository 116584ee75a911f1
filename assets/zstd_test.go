package assets

import "testing"

func TestZstdRoundTrip(t *testing.T) {
	payload := []byte("the quick brown fox jumps over the lazy dog, repeated for compressibility: " +
		"the quick brown fox jumps over the lazy dog")
	compressed, err := compressZstd(payload, DefaultCompressionLevel)
	if err != nil {
		t.Fatalf("compressZstd: %v", err)
	}
	if len(compressed) == 0 {
		t.Fatalf("expected non-empty compressed output")
	}
	decompressed, err := decompressZstd(compressed)
	if err != nil {
		t.Fatalf("decompressZstd: %v", err)
	}
	if string(decompressed) != string(payload) {
		t.Fatalf("round-tripped payload differs")
	}
}
