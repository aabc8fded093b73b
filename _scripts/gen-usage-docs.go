//go:build ignore

package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra/doc"

	"github.com/go-delve/jdwp/cmd/jdwpdump/cmds"
)

const defaultUsageDir = "./Documentation/usage"

func main() {
	usageDir := defaultUsageDir
	if len(os.Args) > 1 {
		usageDir = os.Args[1]
	}
	if err := os.MkdirAll(usageDir, 0755); err != nil {
		log.Fatalf("creating %s: %v", usageDir, err)
	}
	root := cmds.New()
	root.DisableAutoGenTag = true
	if err := doc.GenMarkdownTree(root, usageDir); err != nil {
		log.Fatalf("generating usage docs: %v", err)
	}
	// GenMarkdownTree ignores additional help topic commands, so we have to do this manually
	fh, err := os.OpenFile(filepath.Join(usageDir, "jdwpdump.md"), os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		log.Fatalf("appending to jdwpdump.md: %v", err)
	}
	defer fh.Close()
	fmt.Fprintln(fh, "* [jdwpdump log](jdwpdump_log.md)\t - Help about logging flags")
}
