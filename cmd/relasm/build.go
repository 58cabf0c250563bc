package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/intuitionamiga/relasm/assembler"
)

// sessionOptions are the flags shared by every command that assembles.
type sessionOptions struct {
	base        string
	definesFile string
	defines     []string
	strict      bool
}

func (o *sessionOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.base, "base", "0", "base address the source is assembled for (0x hex or decimal)")
	cmd.Flags().StringVar(&o.definesFile, "defines", "", "Lua script whose global numbers pre-seed the constant table")
	cmd.Flags().StringArrayVarP(&o.defines, "define", "D", nil, "pre-seed a constant, NAME=VALUE (repeatable)")
	cmd.Flags().BoolVar(&o.strict, "strict-relocs", false, "record relocations only for .word/.int values")
}

// newSession builds the constructor inputs once so that concurrent
// sessions only read them.
func (o *sessionOptions) newSession() (func() *assembler.Assembler, error) {
	base, err := parseAddress(o.base)
	if err != nil {
		return nil, err
	}
	defines := make(map[string]int64)
	if o.definesFile != "" {
		if defines, err = loadDefinesScript(o.definesFile); err != nil {
			return nil, err
		}
	}
	if err := parseDefineFlags(defines, o.defines); err != nil {
		return nil, err
	}
	return func() *assembler.Assembler {
		a := assembler.NewAssembler(base, defines)
		a.SetStrictRelocations(o.strict)
		return a
	}, nil
}

type buildOptions struct {
	sessionOptions
	output  string
	rebase  string
	listing bool
	hexdump bool
}

func newBuildCmd() *cobra.Command {
	o := &buildOptions{}
	cmd := &cobra.Command{
		Use:   "build sourceFile...",
		Short: "Assemble source files into flat binaries",
		Long: `Build assembles each source file in its own session and writes
<name>.bin next to it, or the path given with -o when there is exactly one
input. "-o -" writes to standard output; a terminal gets a hex dump instead
of raw bytes.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, o, args)
		},
	}
	o.register(cmd)
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (single input only, - for stdout)")
	cmd.Flags().StringVar(&o.rebase, "rebase", "", "rebase the assembled binary to this load address")
	cmd.Flags().BoolVar(&o.listing, "listing", false, "print an assembly listing")
	cmd.Flags().BoolVar(&o.hexdump, "hexdump", false, "print a hex dump of each binary")
	return cmd
}

func runBuild(cmd *cobra.Command, o *buildOptions, args []string) error {
	if o.output != "" && len(args) > 1 {
		return fmt.Errorf("-o needs exactly one input, got %d", len(args))
	}
	newSession, err := o.newSession()
	if err != nil {
		return err
	}
	var rebase *uint32
	if o.rebase != "" {
		addr, err := parseAddress(o.rebase)
		if err != nil {
			return err
		}
		rebase = &addr
	}

	sessions := make([]*assembler.Assembler, len(args))
	var g errgroup.Group
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			a := newSession()
			a.SetListingMode(o.listing)
			if _, err := a.Load(path); err != nil {
				return err
			}
			if rebase != nil {
				if err := a.Rebase(*rebase); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			sessions[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, path := range args {
		a := sessions[i]
		if o.output != "-" {
			for _, s := range a.Statuses() {
				fmt.Fprintln(out, s)
			}
		}
		for _, w := range a.GetWarnings() {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
		}
		if o.listing {
			fmt.Fprintln(out, strings.Join(a.GetListing(), "\n"))
		}

		dest := o.output
		if dest == "" {
			dest = strings.TrimSuffix(path, filepath.Ext(path)) + ".bin"
		}
		if err := writeBinary(out, dest, a.Bytes(), o.hexdump); err != nil {
			return err
		}
		if dest != "-" {
			fmt.Fprintf(out, "Successfully assembled to %s (%d bytes, base 0x%x)\n", dest, a.Len(), a.Base())
		}
	}
	return nil
}

// writeBinary writes data to dest, or to out when dest is "-". Raw bytes
// are never sent to a terminal.
func writeBinary(out io.Writer, dest string, data []byte, dump bool) error {
	if dest == "-" {
		if dump || isTerminal(out) {
			_, err := io.WriteString(out, hex.Dump(data))
			return err
		}
		_, err := out.Write(data)
		return err
	}
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", dest, err)
	}
	if dump {
		_, err := io.WriteString(out, hex.Dump(data))
		return err
	}
	return nil
}
