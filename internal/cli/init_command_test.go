package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/codedigest/internal/config"
)

func TestInitCommand(t *testing.T) {
	fixture := newCommandFixture(t, nil)
	localPath := filepath.Join(fixture.projectDirectory, config.LocalConfigFileName)

	if err := fixture.execute("init"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fixture.standardOutput.String() != "configuration written to "+localPath+"\n" {
		t.Fatalf("unexpected output %q", fixture.standardOutput.String())
	}
	if _, statError := os.Stat(localPath); statError != nil {
		t.Fatalf("expected local configuration: %v", statError)
	}

	if err := fixture.execute("init"); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected existing file error, got %v", err)
	}
	if err := fixture.execute("init", "--force"); err != nil {
		t.Fatalf("unexpected error with --force: %v", err)
	}

	if err := fixture.execute("init", "--global"); err != nil {
		t.Fatalf("unexpected error with --global: %v", err)
	}
	globalPath := filepath.Join(os.Getenv("HOME"), config.GlobalConfigDirectoryName, config.GlobalConfigFileName)
	if _, statError := os.Stat(globalPath); statError != nil {
		t.Fatalf("expected global configuration: %v", statError)
	}
}
