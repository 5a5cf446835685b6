package main

// chip-sim simulates ChIP-seq read start positions for every sequence of a
// reference FASTA file.
//
// Example: simulate two replicates of 1e6 reads per strand over chr21,
// pinning binding sites listed in sites.bed:
//
//	chip-sim -fasta ref.fa -seq chr21 -replicates 2 -reads 1000000 \
//	    -binding-sites sites.bed -output-prefix out/chr21.
//
// Each sequence x replicate run writes <prefix><seq>.rep<N>.tsv(.gz) with
// one "#CHROM POS STRAND" row per read. Positions are 0-based within the
// simulation; following the usual convention they are written 1-based in
// the text output.

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"
	"github.com/seqsim/chipsim/encoding/fasta"
	"github.com/seqsim/chipsim/sim"
)

// Collection of options set via cmdline flags.
type simFlags struct {
	fastaPath    string
	indexPath    string
	seqs         string
	sitesPath    string
	outputPrefix string
	replicates   int
	gzipOutput   bool
}

func main() {
	opts := sim.DefaultOpts
	var flags simFlags
	flag.StringVar(&flags.fastaPath, "fasta", "", "Reference FASTA file (possibly gzipped). Only sequence lengths are used.")
	flag.StringVar(&flags.indexPath, "index", "", "samtools .fai index to read sequence lengths from instead of -fasta.")
	flag.StringVar(&flags.seqs, "seq", "", "Comma-separated list of sequence names to simulate. Default: all.")
	flag.StringVar(&flags.sitesPath, "binding-sites", "", "Optional BED file (possibly gzipped) pinning binding sites instead of placing them by the Markov chain.")
	flag.StringVar(&flags.outputPrefix, "output-prefix", "./chipsim.", "Prefix of the per-sequence, per-replicate output files.")
	flag.IntVar(&flags.replicates, "replicates", 1, "Number of replicates per sequence, each with a seed derived from -seed.")
	flag.BoolVar(&flags.gzipOutput, "gzip", false, "gzip-compress the output files.")

	flag.Uint64Var(&opts.Seed, "seed", sim.DefaultOpts.Seed, "Random seed. A single seed determines the whole experiment.")
	flag.Float64Var(&opts.BindingProb, "binding-prob", sim.DefaultOpts.BindingProb, "Background->Binding transition probability of the region chain.")
	flag.Float64Var(&opts.BackgroundShape, "background-shape", sim.DefaultOpts.BackgroundShape, "Gamma shape of background region weights.")
	flag.Float64Var(&opts.BackgroundScale, "background-scale", sim.DefaultOpts.BackgroundScale, "Gamma scale of background region weights.")
	flag.IntVar(&opts.BackgroundLength, "background-length", sim.DefaultOpts.BackgroundLength, "Background region length in bases.")
	flag.IntVar(&opts.BindingLength, "binding-length", sim.DefaultOpts.BindingLength, "Binding region length in bases.")
	flag.Float64Var(&opts.ParetoShape, "pareto-shape", sim.DefaultOpts.ParetoShape, "Pareto shape of binding region weights. Must be > 1.")
	flag.Float64Var(&opts.Enrichment, "enrichment", sim.DefaultOpts.Enrichment, "Mean binding weight as a multiple of the mean background weight.")
	flag.IntVar(&opts.FragmentMin, "fragment-min", sim.DefaultOpts.FragmentMin, "Minimum fragment length in bases.")
	flag.IntVar(&opts.FragmentMean, "fragment-mean", sim.DefaultOpts.FragmentMean, "Mean fragment length in bases.")
	flag.IntVar(&opts.FragmentMax, "fragment-max", sim.DefaultOpts.FragmentMax, "Maximum fragment length in bases.")
	flag.IntVar(&opts.KernelSamples, "kernel-samples", sim.DefaultOpts.KernelSamples, "Monte Carlo draws used to estimate the fragment kernel.")
	flag.IntVar(&opts.NReads, "reads", sim.DefaultOpts.NReads, "Read positions drawn per strand.")
	flag.IntVar(&opts.ReadLength, "read-length", sim.DefaultOpts.ReadLength, "Downstream read length; positions too close to the reference ends are excluded.")
	flag.IntVar(&opts.MaxAttempts, "max-attempts", sim.DefaultOpts.MaxAttempts, "Retry budget for realizations without any binding region.")

	cleanup := grail.Init()
	defer cleanup()
	ctx := vcontext.Background()

	if flags.fastaPath == "" && flags.indexPath == "" {
		log.Fatal("one of -fasta or -index is required")
	}
	if err := run(ctx, flags, opts); err != nil {
		log.Fatalf("chip-sim: %v", err)
	}
	log.Printf("All done")
}

func run(ctx context.Context, flags simFlags, opts sim.Opts) error {
	lengths, names, err := refLengths(ctx, flags)
	if err != nil {
		return err
	}
	names, err = selectSeqs(names, flags.seqs)
	if err != nil {
		return err
	}
	var sites map[string][]sim.BindingSite
	if flags.sitesPath != "" {
		if sites, err = readBindingSites(ctx, flags.sitesPath, opts.BindingLength); err != nil {
			return err
		}
	}

	baseSeed := opts.Seed
	var total sim.Stats
	runIdx := 0
	for _, name := range names {
		refLength := int(lengths[name])
		for rep := 1; rep <= flags.replicates; rep++ {
			if runIdx > 0 {
				opts.Seed = sim.DeriveSeed(baseSeed, runIdx)
			}
			runIdx++
			res, err := simulateOne(refLength, sites[name], opts)
			if err != nil {
				return fmt.Errorf("%s rep%d: %v", name, rep, err)
			}
			path := outputPath(flags, name, rep)
			if err := writePositions(ctx, path, name, res, flags.gzipOutput); err != nil {
				return fmt.Errorf("%s rep%d: %v", name, rep, err)
			}
			log.Printf("%s rep%d: %d regions (%d binding), %d+%d reads, %d attempt(s) -> %s",
				name, rep, res.Stats.Regions, res.Stats.BindingRegions,
				res.Stats.ForwardReads, res.Stats.ReverseReads, res.Stats.Attempts, path)
			total = total.Merge(res.Stats)
		}
	}
	log.Printf("total: %d regions (%d binding), %d+%d reads",
		total.Regions, total.BindingRegions, total.ForwardReads, total.ReverseReads)
	return nil
}

func simulateOne(refLength int, sites []sim.BindingSite, opts sim.Opts) (*sim.Result, error) {
	if len(sites) > 0 {
		return sim.SimulateWithSites(refLength, sites, opts)
	}
	return sim.Simulate(refLength, opts)
}

// refLengths returns sequence lengths keyed by name, plus names in file
// order, from the .fai index if given, else from the FASTA itself.
func refLengths(ctx context.Context, flags simFlags) (map[string]uint64, []string, error) {
	if flags.indexPath != "" {
		in, err := file.Open(ctx, flags.indexPath)
		if err != nil {
			return nil, nil, err
		}
		defer in.Close(ctx) // nolint: errcheck
		return fasta.ReadIndexLengths(in.Reader(ctx))
	}
	in, err := file.Open(ctx, flags.fastaPath)
	if err != nil {
		return nil, nil, err
	}
	defer in.Close(ctx) // nolint: errcheck
	reader, _ := compress.NewReader(in.Reader(ctx))
	defer reader.Close() // nolint: errcheck
	fa, err := fasta.New(reader)
	if err != nil {
		return nil, nil, err
	}
	names := fa.SeqNames()
	lengths := make(map[string]uint64, len(names))
	for _, name := range names {
		n, err := fa.Len(name)
		if err != nil {
			return nil, nil, err
		}
		lengths[name] = n
	}
	return lengths, names, nil
}

// selectSeqs filters names down to the comma-separated list in spec,
// preserving file order. An empty spec selects everything.
func selectSeqs(names []string, spec string) ([]string, error) {
	if spec == "" {
		return names, nil
	}
	wanted := make(map[string]bool)
	for _, s := range strings.Split(spec, ",") {
		if s = strings.TrimSpace(s); s != "" {
			wanted[s] = true
		}
	}
	var out []string
	for _, name := range names {
		if wanted[name] {
			out = append(out, name)
			delete(wanted, name)
		}
	}
	if len(wanted) > 0 {
		var missing []string
		for name := range wanted {
			missing = append(missing, name)
		}
		return nil, fmt.Errorf("sequence(s) not in reference: %s", strings.Join(missing, ","))
	}
	return out, nil
}

func outputPath(flags simFlags, seqName string, rep int) string {
	path := fmt.Sprintf("%s%s.rep%d.tsv", flags.outputPrefix, seqName, rep)
	if flags.gzipOutput {
		path += ".gz"
	}
	return path
}

// writePositions writes one TSV row per read: sequence name, 1-based
// position, strand.
func writePositions(ctx context.Context, path, seqName string, res *sim.Result, gzipOutput bool) (err error) {
	dst, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, dst, &err)

	w := io.Writer(dst.Writer(ctx))
	if gzipOutput {
		gz := gzip.NewWriter(w)
		defer func() {
			if e := gz.Close(); e != nil && err == nil {
				err = e
			}
		}()
		w = gz
	}
	out := tsv.NewWriter(w)
	out.WriteString("#CHROM\tPOS\tSTRAND")
	if err = out.EndLine(); err != nil {
		return err
	}
	writeStrand := func(positions []int, strand byte) error {
		for _, p := range positions {
			out.WriteString(seqName)
			out.WriteUint32(uint32(p + 1))
			out.WriteByte(strand)
			if err := out.EndLine(); err != nil {
				return err
			}
		}
		return nil
	}
	if err = writeStrand(res.Forward, '+'); err != nil {
		return err
	}
	if err = writeStrand(res.Reverse, '-'); err != nil {
		return err
	}
	return out.Flush()
}
