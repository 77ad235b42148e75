package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"

	"github.com/chronos-tachyon/huffzip"
	"github.com/chronos-tachyon/huffzip/archive"
	"github.com/chronos-tachyon/huffzip/internal/bench"
)

var log = logging.MustGetLogger("huffzip")

const progName = "huffzip"
const suffix = ".hz"
const usageMessageRaw = `
Usage: huffzip [-d|--debug] SUBCOMMAND...

Subcommands:
  compress [-o OUT] IN
	Compress the file IN with a static Huffman code and write the code
	table and packed data to OUT (default: IN.hz).

  decompress [-o OUT] IN
	Restore the original contents of the archive IN and write them to
	OUT (default: IN without its .hz suffix).

  table IN
	Print the code table of the archive IN.  If IN is not an archive,
	print the code table that compressing IN would produce.

  bench [-codecs LIST] [-sizes LIST] FILE...
	Compare the compression ratio and speed of the Huffman codec with
	other codecs.  LIST is comma-separated; sizes accept prefixes such
	as 1e4 or 64Ki and resize each FILE before compressing it.
`

type nullWriter struct{}

func (n *nullWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

func usageMessage() string {
	return strings.TrimLeft(usageMessageRaw, "\n")
}

func usageErrorf(detailFmt string, detailArgs ...interface{}) {
	detail := fmt.Sprintf(detailFmt, detailArgs...)
	fmt.Fprintf(os.Stderr, "%s: %s\n%s", progName, detail, usageMessage())
	os.Exit(64)
}

func exitError(err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", progName, err.Error())
	os.Exit(1)
}

var leveledLogBackend logging.LeveledBackend

func startLogging() {
	backend := logging.NewLogBackend(os.Stderr, progName+": ", 0)
	formatSpec := "%{level:8s} %{module:-20s} | %{message}"
	formatter := logging.MustStringFormatter(formatSpec)
	formatted := logging.NewBackendFormatter(backend, formatter)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.INFO, "")
	logging.SetBackend(leveled)
	leveledLogBackend = leveled
}

// newFlagSet returns a FlagSet that reports errors instead of printing its
// own usage text.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(&nullWriter{})
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) {
	err := fs.Parse(args)
	if err == flag.ErrHelp {
		io.WriteString(os.Stdout, usageMessage())
		os.Exit(0)
	} else if err != nil {
		usageErrorf("%s", err.Error())
	}
}

func main() {
	startLogging()

	var debugLogging bool
	ourFlags := newFlagSet(progName)
	ourFlags.BoolVar(&debugLogging, "debug", false, "")
	ourFlags.BoolVar(&debugLogging, "d", false, "")
	parseFlags(ourFlags, os.Args[1:])

	if debugLogging {
		leveledLogBackend.SetLevel(logging.DEBUG, "")
	}

	args := ourFlags.Args()
	if len(args) == 0 {
		usageErrorf("missing SUBCOMMAND")
	}

	var err error
	switch args[0] {
	default:
		usageErrorf("unknown subcommand \"%s\"", args[0])
	case "compress":
		err = compressCommand(args[1:])
	case "decompress":
		err = decompressCommand(args[1:])
	case "table":
		err = tableCommand(args[1:])
	case "bench":
		err = benchCommand(args[1:])
	}

	if err != nil {
		exitError(err)
	}
}

func compressCommand(args []string) error {
	var outPath string
	fs := newFlagSet("compress")
	fs.StringVar(&outPath, "o", "", "")
	parseFlags(fs, args)
	if fs.NArg() != 1 {
		usageErrorf("compress takes exactly one input file")
	}
	inPath := fs.Arg(0)
	if outPath == "" {
		outPath = inPath + suffix
	}

	src, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if _, err := archive.Compress(&buf, src); err != nil {
		return err
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0666); err != nil {
		return err
	}

	log.Infof("%s: %s -> %s (%s)", inPath, bench.FormatSize(len(src)), bench.FormatSize(buf.Len()), outPath)
	return nil
}

func decompressCommand(args []string) error {
	var outPath string
	fs := newFlagSet("decompress")
	fs.StringVar(&outPath, "o", "", "")
	parseFlags(fs, args)
	if fs.NArg() != 1 {
		usageErrorf("decompress takes exactly one input file")
	}
	inPath := fs.Arg(0)
	if outPath == "" {
		if !strings.HasSuffix(inPath, suffix) || len(inPath) == len(suffix) {
			usageErrorf("cannot derive output name from \"%s\"; use -o", inPath)
		}
		outPath = strings.TrimSuffix(inPath, suffix)
	}

	f, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer f.Close()

	out, err := archive.Decompress(f)
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}
	if err := os.WriteFile(outPath, out, 0666); err != nil {
		return err
	}

	log.Infof("%s: restored %s to %s", inPath, bench.FormatSize(len(out)), outPath)
	return nil
}

func tableCommand(args []string) error {
	fs := newFlagSet("table")
	parseFlags(fs, args)
	if fs.NArg() != 1 {
		usageErrorf("table takes exactly one input file")
	}
	inPath := fs.Arg(0)

	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}

	var table *huffzip.Table
	if bytes.HasPrefix(data, []byte(archive.Magic)) {
		a, err := archive.Read(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("%s: %w", inPath, err)
		}
		table = a.Table
	} else {
		log.Debugf("%s is not an archive; deriving its table", inPath)
		table = huffzip.GenerateTable(huffzip.BuildTree(huffzip.CountFrequencies(data)))
	}

	fmt.Fprintln(os.Stdout, table)
	_, err = table.Dump(os.Stdout)
	return err
}

func benchCommand(args []string) error {
	var codecList, sizeList string
	fs := newFlagSet("bench")
	fs.StringVar(&codecList, "codecs", strings.Join(bench.Names(), ","), "")
	fs.StringVar(&sizeList, "sizes", "", "")
	parseFlags(fs, args)
	if fs.NArg() == 0 {
		usageErrorf("bench needs at least one input file")
	}

	var codecs []string
	for _, name := range strings.Split(codecList, ",") {
		if name = strings.TrimSpace(name); name != "" {
			codecs = append(codecs, name)
		}
	}

	sizes := []int{-1}
	if sizeList != "" {
		var err error
		if sizes, err = bench.ParseSizes(sizeList); err != nil {
			usageErrorf("%s", err.Error())
		}
	}

	for _, path := range fs.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, size := range sizes {
			if size > 0 && len(data) == 0 {
				log.Warningf("%s is empty; skipping size %d", path, size)
				continue
			}
			input := bench.Resize(data, size)
			results, err := bench.Run(input, codecs)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("%s:%s", path, bench.FormatSize(len(input)))
			if err := bench.WriteResults(os.Stdout, title, results); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout)
		}
	}
	return nil
}
