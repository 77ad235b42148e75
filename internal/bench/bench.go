// Package bench compares the Huffman codec against general-purpose
// compression implementations with respect to ratio, encode speed, and
// decode speed.  Individual implementations are referred to as codecs.
package bench

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	strconv "github.com/dsnet/golib/unitconv"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("huffzip/bench")

type Encoder func(io.Writer) (io.WriteCloser, error)
type Decoder func(io.Reader) (io.ReadCloser, error)

type codec struct {
	enc Encoder
	dec Decoder
}

var codecs map[string]codec

// Register makes a codec available to Run under the given name.
func Register(name string, enc Encoder, dec Decoder) {
	if codecs == nil {
		codecs = make(map[string]codec)
	}
	codecs[name] = codec{enc, dec}
}

// Names returns the names of all registered codecs, sorted.
func Names() []string {
	var out []string
	for name := range codecs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

type Result struct {
	Codec      string
	RawSize    int
	CompSize   int
	Ratio      float64 // rawSize/compSize
	EncodeRate float64 // MB/s
	DecodeRate float64 // MB/s
}

// Run compresses and decompresses input once with each named codec and
// reports the results in the same order.  It fails if a codec is unknown or
// does not reproduce the input.
func Run(input []byte, names []string) ([]Result, error) {
	results := make([]Result, 0, len(names))
	for _, name := range names {
		c, ok := codecs[name]
		if !ok {
			return nil, fmt.Errorf("bench: unknown codec %q", name)
		}
		r, err := runOne(input, name, c)
		if err != nil {
			return nil, fmt.Errorf("bench: codec %s: %w", name, err)
		}
		log.Debugf("%s: %d -> %d bytes", name, r.RawSize, r.CompSize)
		results = append(results, r)
	}
	return results, nil
}

func runOne(input []byte, name string, c codec) (Result, error) {
	var comp bytes.Buffer
	start := time.Now()
	wr, err := c.enc(&comp)
	if err != nil {
		return Result{}, err
	}
	if _, err := io.Copy(wr, bytes.NewReader(input)); err != nil {
		return Result{}, err
	}
	if err := wr.Close(); err != nil {
		return Result{}, err
	}
	encTime := time.Since(start)

	start = time.Now()
	rd, err := c.dec(bytes.NewReader(comp.Bytes()))
	if err != nil {
		return Result{}, err
	}
	output, err := io.ReadAll(rd)
	if err != nil {
		return Result{}, err
	}
	if err := rd.Close(); err != nil {
		return Result{}, err
	}
	decTime := time.Since(start)

	if !bytes.Equal(input, output) {
		return Result{}, fmt.Errorf("round trip mismatch: %d bytes in, %d bytes out", len(input), len(output))
	}

	r := Result{
		Codec:      name,
		RawSize:    len(input),
		CompSize:   comp.Len(),
		EncodeRate: rate(len(input), encTime),
		DecodeRate: rate(len(input), decTime),
	}
	if r.CompSize > 0 {
		r.Ratio = float64(r.RawSize) / float64(r.CompSize)
	}
	return r, nil
}

func rate(n int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / 1e6 / d.Seconds()
}

// WriteResults prints one benchmark's results as an aligned table.
func WriteResults(w io.Writer, title string, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "BENCHMARK: %s\t\t\t\t\t\n", title)
	fmt.Fprintf(tw, "codec\traw\tcompressed\tratio\tenc MB/s\tdec MB/s\t\n")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2fx\t%.2f\t%.2f\t\n",
			r.Codec, FormatSize(r.RawSize), FormatSize(r.CompSize),
			r.Ratio, r.EncodeRate, r.DecodeRate)
	}
	return tw.Flush()
}

// FormatSize formats a byte count with a base-1024 prefix.
func FormatSize(n int) string {
	s := strconv.FormatPrefix(float64(n), strconv.Base1024, 2)
	return strings.TrimSpace(s) + "B"
}

// ParseSizes parses a comma-separated list of sizes such as "1e4,64Ki".
func ParseSizes(list string) ([]int, error) {
	var out []int
	for _, s := range strings.Split(list, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		f, err := strconv.ParsePrefix(s, strconv.AutoParse)
		if err != nil {
			return nil, fmt.Errorf("bench: invalid size %q: %w", s, err)
		}
		if f < 0 || f != float64(int(f)) {
			return nil, fmt.Errorf("bench: invalid size %q", s)
		}
		out = append(out, int(f))
	}
	return out, nil
}

// Resize returns input stretched or cut to n bytes; a negative n returns
// input unchanged.  Each repeated copy of input has every byte XORed with the
// copy number, so the symbol statistics drift as the result grows.  Growing
// an empty input panics.
func Resize(input []byte, n int) []byte {
	switch {
	case n < 0:
		return input
	case n <= len(input):
		return input[:n]
	case len(input) == 0:
		panic("bench: cannot grow an empty input")
	}

	out := make([]byte, 0, n)
	for round := 0; len(out) < n; round++ {
		chunk := input
		if rest := n - len(out); rest < len(chunk) {
			chunk = chunk[:rest]
		}
		for _, b := range chunk {
			out = append(out, b^byte(round))
		}
	}
	return out
}
