package i18n

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func createTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
		t.Fatalf("could not write locale file: %v", err)
	}
}

func TestNewTranslations(t *testing.T) {
	t.Run("should create translations with embedded defaults only", func(t *testing.T) {
		trans, err := NewTranslations("en", "")
		if err != nil {
			t.Fatalf("NewTranslations() error = %v", err)
		}

		msg := trans.GetMessage("analyzing_changes", 0, nil)
		if msg != "Analyzing changes..." {
			t.Errorf("GetMessage() = %q, want embedded default", msg)
		}
	})

	t.Run("should load locale files from a directory", func(t *testing.T) {
		tmpDir := t.TempDir()
		createTestFile(t, tmpDir, "es.toml", `
		[analyzing_changes]
		other = "Analizando cambios..."
		`)

		trans, err := NewTranslations("es", tmpDir)
		if err != nil {
			t.Fatalf("NewTranslations() error = %v", err)
		}

		msg := trans.GetMessage("analyzing_changes", 0, nil)
		if msg != "Analizando cambios..." {
			t.Errorf("GetMessage() = %q, want Spanish translation", msg)
		}
	})

	t.Run("should fail on malformed locale file", func(t *testing.T) {
		tmpDir := t.TempDir()
		createTestFile(t, tmpDir, "en.toml", `not [valid toml`)

		if _, err := NewTranslations("en", tmpDir); err == nil {
			t.Error("NewTranslations() should fail on malformed locale file")
		}
	})
}

func TestSetLanguage(t *testing.T) {
	t.Run("should switch to a loaded language", func(t *testing.T) {
		tmpDir := t.TempDir()
		createTestFile(t, tmpDir, "es.toml", `
		[commit_created]
		other = "Commit creado exitosamente"
		`)

		trans, err := NewTranslations("en", tmpDir)
		if err != nil {
			t.Fatal(err)
		}

		if err := trans.SetLanguage("es"); err != nil {
			t.Errorf("SetLanguage() error = %v", err)
		}

		msg := trans.GetMessage("commit_created", 0, nil)
		if msg != "Commit creado exitosamente" {
			t.Errorf("GetMessage() = %q after switching to es", msg)
		}
	})

	t.Run("should reject an unknown language", func(t *testing.T) {
		trans, err := NewTranslations("en", "")
		if err != nil {
			t.Fatal(err)
		}

		if err := trans.SetLanguage("fr"); err == nil {
			t.Error("SetLanguage() should fail for a language without messages")
		}
	})
}

func TestGetMessage(t *testing.T) {
	trans, err := NewTranslations("en", "")
	if err != nil {
		t.Fatal(err)
	}

	t.Run("should render template data", func(t *testing.T) {
		msg := trans.GetMessage("retrying_generation", 0, struct{ Attempt int }{2})
		if !strings.Contains(msg, "attempt 2") {
			t.Errorf("GetMessage() = %q, want attempt number rendered", msg)
		}
	})

	t.Run("should pluralize counts", func(t *testing.T) {
		one := trans.GetMessage("staged_files_count", 1, struct{ Count int }{1})
		many := trans.GetMessage("staged_files_count", 3, struct{ Count int }{3})

		if !strings.Contains(one, "1 staged file") || strings.Contains(one, "files") {
			t.Errorf("singular form wrong: %q", one)
		}
		if !strings.Contains(many, "3 staged files") {
			t.Errorf("plural form wrong: %q", many)
		}
	})

	t.Run("should flag missing ids", func(t *testing.T) {
		msg := trans.GetMessage("definitely_not_a_message", 0, nil)
		if !strings.Contains(msg, "Translation missing") {
			t.Errorf("GetMessage() = %q, want missing marker", msg)
		}
	})
}
