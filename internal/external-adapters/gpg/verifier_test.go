package gpg

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
)

// newSigner generates a throwaway key and writes its armored public half to dir
func newSigner(t *testing.T, dir string) (*openpgp.Entity, string) {
	t.Helper()

	entity, err := openpgp.NewEntity("Test Signer", "", "signer@example.com", nil)
	if err != nil {
		t.Fatalf("NewEntity() error = %v", err)
	}

	var buf bytes.Buffer
	w, err := armor.Encode(&buf, openpgp.PublicKeyType, nil)
	if err != nil {
		t.Fatalf("armor.Encode() error = %v", err)
	}
	if err := entity.Serialize(w); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	keyPath := filepath.Join(dir, "keyring.asc")
	if err := os.WriteFile(keyPath, buf.Bytes(), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return entity, keyPath
}

func sign(t *testing.T, signer *openpgp.Entity, data []byte) []byte {
	t.Helper()
	var sig bytes.Buffer
	if err := openpgp.ArmoredDetachSign(&sig, signer, bytes.NewReader(data), nil); err != nil {
		t.Fatalf("ArmoredDetachSign() error = %v", err)
	}
	return sig.Bytes()
}

func TestVerifier_ImportKeyFromFile_NonexistentFile(t *testing.T) {
	v := NewVerifier(nil)

	err := v.ImportKeyFromFile("/nonexistent/key.asc")
	if err == nil {
		t.Fatal("Expected error for nonexistent file, got nil")
	}
	if !strings.Contains(err.Error(), "failed to open key file") {
		t.Errorf("Expected 'failed to open key file' error, got: %v", err)
	}
}

func TestVerifier_ImportKeyFromFile_Garbage(t *testing.T) {
	v := NewVerifier(nil)
	keyPath := filepath.Join(t.TempDir(), "bad.asc")
	if err := os.WriteFile(keyPath, []byte("not a key"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := v.ImportKeyFromFile(keyPath); err == nil {
		t.Fatal("Expected error for garbage keyring")
	}
	if v.KeyCount() != 0 {
		t.Errorf("KeyCount() = %d, want 0", v.KeyCount())
	}
}

func TestVerifier_VerifySignature(t *testing.T) {
	dir := t.TempDir()
	signer, keyPath := newSigner(t, dir)

	payload := []byte("installer jar contents")
	artifact := filepath.Join(dir, "forge-installer.jar")
	if err := os.WriteFile(artifact, payload, 0600); err != nil {
		t.Fatal(err)
	}

	goodSig := sign(t, signer, payload)
	badSig := sign(t, signer, []byte("something else"))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/good.asc":
			_, _ = w.Write(goodSig)
		case "/bad.asc":
			_, _ = w.Write(badSig)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	v := NewVerifier(server.Client())
	if err := v.ImportKeyFromFile(keyPath); err != nil {
		t.Fatalf("ImportKeyFromFile() error = %v", err)
	}
	if v.KeyCount() != 1 {
		t.Fatalf("KeyCount() = %d, want 1", v.KeyCount())
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "valid signature", path: "/good.asc", wantErr: false},
		{name: "signature over other data", path: "/bad.asc", wantErr: true},
		{name: "missing signature", path: "/missing.asc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.VerifySignature(context.Background(), artifact, server.URL+tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("VerifySignature() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestVerifier_VerifySignature_NoKeys(t *testing.T) {
	v := NewVerifier(nil)

	err := v.VerifySignature(context.Background(), "/tmp/file", "http://127.0.0.1:1/file.asc")
	if err == nil || !strings.Contains(err.Error(), "no keys loaded") {
		t.Errorf("VerifySignature() error = %v, want no keys loaded", err)
	}
}
