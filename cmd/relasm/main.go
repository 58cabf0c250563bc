package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/intuitionamiga/relasm/assembler"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "relasm",
		Short: "Directive assembler with load-address relocation",
		Long: `Relasm assembles the line-based directive language (.byte, .hword,
.word, .equ, .global, .include, ...) into a flat little-endian binary.

Label references are bound in a single pass. Every slot that was filled
from a label is remembered so the binary can be rebased to a different
load address after assembly with --rebase.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// glog registers -v, -logtostderr and friends on the go flag set.
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	root.AddCommand(newBuildCmd(), newSymbolsCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the relasm version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "relasm %s\n", version)
		},
	}
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// parseAddress parses a base address flag with the assembler's literal rules.
func parseAddress(s string) (uint32, error) {
	v, ok := assembler.ParseLiteral(s)
	if !ok || v < 0 || v > 0xFFFFFFFF {
		return 0, fmt.Errorf("invalid address %q: want 0x hex or decimal in 32-bit range", s)
	}
	return uint32(v), nil
}

func main() {
	// Mark the go flag set parsed; cobra parses the values itself.
	_ = flag.CommandLine.Parse(nil)
	defer glog.Flush()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		glog.Flush()
		os.Exit(1)
	}
}
