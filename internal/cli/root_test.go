package cli

import (
	"testing"

	"github.com/mkessler/deckplan/pkg/buildinfo"
)

func TestRootCommandSubcommands(t *testing.T) {
	root := rootCommand()

	want := []string{"plan", "inspect", "render", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

func TestRootCommandVersion(t *testing.T) {
	root := rootCommand()
	if root.Version != buildinfo.Version {
		t.Errorf("root version = %q, want %q", root.Version, buildinfo.Version)
	}
}

func TestCacheSubcommands(t *testing.T) {
	cacheCmd := newCacheCmd()

	for _, name := range []string{"clear", "path"} {
		found := false
		for _, cmd := range cacheCmd.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("cache command is missing subcommand %q", name)
		}
	}
}
