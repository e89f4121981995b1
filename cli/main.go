package main

import (
	"fmt"
	"io"
	"os"

	"github.com/BertoldVdb/trw450-tools/fwpatch"
	"github.com/alecthomas/kong"
)

const version = "1.0"

type CLI struct {
	Firmware string `arg:"" name:"firmware" help:"Path to the SGO file to patch."`

	Checksums  string `optional:"" help:"Path to the checksums file." default:"checksums.txt"`
	Patches    string `optional:"" help:"Path to the patches file." default:"patches.txt"`
	Force      bool   `optional:"" help:"Keep the bad file if patching fails."`
	ScratchDir string `optional:"" help:"Directory for the temporary working copy, defaults to the firmware directory."`

	NoColor     bool `optional:"" help:"Disable colored output."`
	Quiet       bool `optional:"" help:"Do not print the banner."`
	ShowDiff    bool `optional:"" help:"Dump the patched ranges of the output file."`
	DiffContext int  `optional:"" name:"context" type:"int" help:"Bytes of context around each patched range." default:"16"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout io.Writer, stderr io.Writer) int {
	var cli CLI
	k, err := kong.New(&cli,
		kong.Name("trw450-patch"),
		kong.Description("Apply TRW450-Unlock patch to a provided SGO file."),
		kong.Writers(stdout, stderr),
		kong.NamedMapper("int", intMapper{}))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if _, err := k.Parse(args); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	colors := !cli.NoColor && isTerminal(stderr)
	log := newLogger(colorWriter(stderr, colors), colors)

	if !cli.Quiet {
		printBanner(colorWriter(stdout, colors), colors)
	}
	log.Warning("Off-road and test use only. Proceed at your own risk.")

	if cli.Force {
		log.Error("DANGER: Force command used, be very careful with output")
		log.Warning("Partially patched file will not be removed if patching fails.")
	}

	if st, err := os.Stat(cli.Firmware); err != nil || !st.Mode().IsRegular() {
		log.Error("Firmware file not found: %s", cli.Firmware)
		return 1
	}

	checksums, patches, err := fwpatch.Load(cli.Checksums, cli.Patches, log)
	if err != nil {
		log.Error("%v", err)
		return 1
	}

	p := fwpatch.New(checksums, patches, fwpatch.Config{
		KeepOnFailure: cli.Force,
		ScratchDir:    cli.ScratchDir,
		Log:           log,
	})

	r, err := p.Apply(cli.Firmware)
	if err != nil {
		return 1
	}

	if cli.ShowDiff {
		if cli.DiffContext < 0 {
			cli.DiffContext = 0
		}
		err := dumpChanges(colorWriter(stdout, colors), cli.Firmware, r.Output, r.Applied, cli.DiffContext, colors)
		if err != nil {
			log.Warning("Failed to dump changes: %v", err)
		}
	}

	return 0
}
