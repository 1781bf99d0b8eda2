package vault

import (
	"strings"
	"testing"
	"time"
)

func TestMarshalRecipients_SortedKeys(t *testing.T) {
	doc := RecipientsDocument{
		DEKVersion: 3,
		Recipients: map[string]RecipientRecord{
			"bbbb000000000000": {Label: "b", PublicKey: "x", WrappedDEK: "y", AddedAt: time.Unix(0, 0).UTC()},
			"aaaa000000000000": {Label: "a", PublicKey: "x", WrappedDEK: "y", AddedAt: time.Unix(0, 0).UTC()},
		},
	}

	first, err := marshalRecipients(doc)
	if err != nil {
		t.Fatalf("marshalRecipients: %v", err)
	}
	second, err := marshalRecipients(doc)
	if err != nil {
		t.Fatalf("marshalRecipients: %v", err)
	}
	if string(first) != string(second) {
		t.Fatal("marshalRecipients is not deterministic across repeated calls")
	}
	if strings.Index(string(first), "aaaa000000000000") > strings.Index(string(first), "bbbb000000000000") {
		t.Fatalf("marshalRecipients output is not in ascending fingerprint order: %s", first)
	}

	fingerprints := sortedFingerprints(doc)
	if fingerprints[0] != "aaaa000000000000" || fingerprints[1] != "bbbb000000000000" {
		t.Fatalf("sortedFingerprints = %v, want ascending order", fingerprints)
	}
}

func TestDecodeKey_RejectsWrongLength(t *testing.T) {
	if _, err := decodeKey("not-base64!!!"); err == nil {
		t.Fatal("expected error for invalid base64")
	}
	if _, err := decodeKey("aGVsbG8="); err == nil {
		t.Fatal("expected error for a decoded value shorter than 32 bytes")
	}
}

func TestUnmarshalRecipients_RoundTrip(t *testing.T) {
	doc := RecipientsDocument{
		DEKVersion: 1,
		Recipients: map[string]RecipientRecord{
			"aaaa000000000000": {Label: "owner", PublicKey: "x", WrappedDEK: "y", AddedAt: time.Now().UTC()},
		},
	}
	data, err := marshalRecipients(doc)
	if err != nil {
		t.Fatalf("marshalRecipients: %v", err)
	}
	got, err := unmarshalRecipients(data)
	if err != nil {
		t.Fatalf("unmarshalRecipients: %v", err)
	}
	if got.DEKVersion != doc.DEKVersion {
		t.Fatalf("DEKVersion = %d, want %d", got.DEKVersion, doc.DEKVersion)
	}
	if len(got.Recipients) != 1 {
		t.Fatalf("Recipients = %v, want 1 entry", got.Recipients)
	}
}
