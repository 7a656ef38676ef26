package commands

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAPIKey(t *testing.T) {
	file := filepath.Join(t.TempDir(), "apikey.json")
	if err := os.WriteFile(file, []byte(`{"apikey":"  AIzaSyqwertyuiop  "}`), 0600); err != nil {
		t.Fatalf("Error creating API key file (%v)", err)
	}

	key, err := loadAPIKey(file)
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if key != "AIzaSyqwertyuiop" {
		t.Errorf("Incorrect API key - expected:%v, got:%v", "AIzaSyqwertyuiop", key)
	}
}

func TestLoadAPIKeyWithMissingFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "apikey.json")

	if _, err := loadAPIKey(file); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("Expected ErrNoAPIKey, got:%v", err)
	}
}

func TestLoadAPIKeyWithMissingKey(t *testing.T) {
	file := filepath.Join(t.TempDir(), "apikey.json")
	if err := os.WriteFile(file, []byte(`{"key":"AIzaSyqwertyuiop"}`), 0600); err != nil {
		t.Fatalf("Error creating API key file (%v)", err)
	}

	if _, err := loadAPIKey(file); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("Expected ErrNoAPIKey, got:%v", err)
	}
}

func TestLoadAPIKeyWithInvalidJSON(t *testing.T) {
	file := filepath.Join(t.TempDir(), "apikey.json")
	if err := os.WriteFile(file, []byte(`apikey=AIzaSyqwertyuiop`), 0600); err != nil {
		t.Fatalf("Error creating API key file (%v)", err)
	}

	if _, err := loadAPIKey(file); err == nil || errors.Is(err, ErrNoAPIKey) {
		t.Errorf("Expected JSON error, got:%v", err)
	}
}
