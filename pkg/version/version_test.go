package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestVersionString(t *testing.T) {
	v := Version{Major: "1", Minor: "2", Patch: "3", Metadata: "dev", Build: "abc"}
	expected := "Version: 1.2.3-dev\nProtocol: " + ProtocolVersion + "\nBuild: abc"
	if s := v.String(); s != expected {
		t.Fatalf("expected %q got %q", expected, s)
	}
	if s := JdwpdumpVersion.String(); !strings.HasPrefix(s, "Version: ") {
		t.Fatalf("unexpected version string %q", s)
	}
}

func TestBuildInfo(t *testing.T) {
	if s := BuildInfo(); !strings.HasPrefix(s, "go") && !strings.HasPrefix(s, "devel") {
		t.Fatalf("expected build info to start with the Go version got %q", s)
	}
}

func TestFormatBuildInfo(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/go-delve/jdwp", Version: "(devel)"},
		Deps: []*debug.Module{
			{Path: "github.com/sirupsen/logrus", Version: "v1.6.0"},
			{Path: "gopkg.in/yaml.v2", Version: "v2.4.0", Replace: &debug.Module{Path: "../yaml", Version: ""}},
		},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "GOARCH", Value: "amd64"},
			{Key: "vcs.modified", Value: "false"},
		},
	}
	expected := "module github.com/go-delve/jdwp (devel)\n" +
		"vcs.revision abc123\n" +
		"vcs.modified false\n" +
		"dep github.com/sirupsen/logrus v1.6.0\n" +
		"dep gopkg.in/yaml.v2 v2.4.0 => ../yaml\n"
	if s := formatBuildInfo(info); s != expected {
		t.Fatalf("expected %q got %q", expected, s)
	}
}
