package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Version represents the current version of jdwpdump.
type Version struct {
	Major    string
	Minor    string
	Patch    string
	Metadata string
	Build    string
}

// JdwpdumpVersion is the current version of jdwpdump.
var JdwpdumpVersion = Version{
	Major: "0", Minor: "3", Patch: "0", Metadata: "",
	Build: "$Id$",
}

// ProtocolVersion is the newest JDWP revision whose commands are in the
// catalog.
const ProtocolVersion = "JDWP 1.8"

func (v Version) String() string {
	fixBuild(&v)
	ver := fmt.Sprintf("Version: %s.%s.%s", v.Major, v.Minor, v.Patch)
	if v.Metadata != "" {
		ver += "-" + v.Metadata
	}
	return fmt.Sprintf("%s\nProtocol: %s\nBuild: %s", ver, ProtocolVersion, v.Build)
}

// BuildInfo returns the Go version, the VCS state and the module
// dependencies of the binary.
func BuildInfo() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return runtime.Version() + "\nnot built in module mode\n"
	}
	return runtime.Version() + "\n" + formatBuildInfo(info)
}

func formatBuildInfo(info *debug.BuildInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "module %s %s\n", info.Main.Path, info.Main.Version)
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision", "vcs.time", "vcs.modified":
			fmt.Fprintf(&b, "%s %s\n", setting.Key, setting.Value)
		}
	}
	for _, dep := range info.Deps {
		fmt.Fprintf(&b, "dep %s %s", dep.Path, dep.Version)
		if dep.Replace != nil {
			fmt.Fprintf(&b, " => %s", dep.Replace.Path)
			if dep.Replace.Version != "" {
				fmt.Fprintf(&b, " %s", dep.Replace.Version)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// fixBuild replaces an unexpanded Git ident with the VCS revision
// recorded by the go tool.
func fixBuild(v *Version) {
	if !strings.HasPrefix(v.Build, "$Id") {
		return
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			v.Build = setting.Value
			return
		}
	}
}
