// Package sim simulates ChIP-seq read positions over a linear reference.
//
// The simulation runs as a four-stage pipeline with no feedback:
//
//   1. A two-state Markov chain over {Binding, Background} tiles the
//      reference with contiguous weighted regions.
//   2. The regions are flattened into a per-position binding-site density.
//   3. The binding-site density is convolved with a fragment kernel,
//      yielding forward- and reverse-strand DNA-fragment densities.
//   4. Read start positions are drawn from each strand's density.
//
// The overall design follows the ChIPsim Bioconductor package, but with an
// explicitly owned random generator threaded through every stage so that a
// single seed reproduces the full realization.
//
// The pipeline stops at read positions. Converting positions into base-level
// reads with qualities and sequencing errors is the job of a downstream
// consumer; the only contract is that every emitted position leaves room for
// a read of Opts.ReadLength within the reference.
package sim
