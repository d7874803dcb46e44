package main

import (
	"testing"

	"az-group-manager/cmd"
)

func TestVersion(t *testing.T) {
	if version != "dev" {
		t.Errorf("Expected default version to be 'dev', got %s", version)
	}
}

func TestSetVersionFromMain(t *testing.T) {
	cmd.SetVersion(version)

	if cmd.GetVersion() != version {
		t.Errorf("Expected cmd version %s, got %s", version, cmd.GetVersion())
	}
}
