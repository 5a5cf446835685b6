// Package fasta reads FASTA-formatted reference data. FASTA files consist
// of named sequences whose bases may be wrapped over multiple lines:
//
//	>chrM some free-form description
//	GATCACAGGT
//	CTATCACCCT
//
// A sequence name is the text between '>' and the first space; anything
// after the space is ignored.
//
// The simulator only needs sequence names and lengths, so this package also
// parses samtools .fai index files, which provide lengths without reading
// any base data.
package fasta

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Fasta provides access to a set of named sequences.
type Fasta interface {
	// Get returns the bases of the named sequence in the 0-based
	// half-open interval [start, end).
	Get(name string, start, end uint64) (string, error)

	// Len returns the length of the named sequence.
	Len(name string) (uint64, error)

	// SeqNames returns all sequence names, in file order.
	SeqNames() []string
}

type memFasta struct {
	seqs  map[string]string
	names []string
}

// New reads all FASTA data from r into memory.
func New(r io.Reader) (Fasta, error) {
	f := &memFasta{seqs: make(map[string]string)}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, 1<<28)
	var name string
	var seq strings.Builder
	flush := func() error {
		if name == "" {
			if seq.Len() > 0 {
				return errors.New("fasta: sequence data before the first header")
			}
			return nil
		}
		if _, ok := f.seqs[name]; ok {
			return errors.Errorf("fasta: duplicate sequence %s", name)
		}
		f.seqs[name] = seq.String()
		f.names = append(f.names, name)
		seq.Reset()
		return nil
	}
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return nil, err
			}
			name = line[1:]
			if i := strings.IndexByte(name, ' '); i >= 0 {
				name = name[:i]
			}
			if name == "" {
				return nil, errors.New("fasta: empty sequence name")
			}
			continue
		}
		seq.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "fasta: read failed")
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(f.names) == 0 {
		return nil, errors.New("fasta: no sequences found")
	}
	return f, nil
}

func (f *memFasta) Get(name string, start, end uint64) (string, error) {
	s, ok := f.seqs[name]
	if !ok {
		return "", errors.Errorf("fasta: sequence not found: %s", name)
	}
	if end <= start {
		return "", errors.Errorf("fasta: start %d must be less than end %d", start, end)
	}
	if end > uint64(len(s)) {
		return "", errors.Errorf("fasta: range [%d, %d) out of bounds for %s (length %d)", start, end, name, len(s))
	}
	return s[start:end], nil
}

func (f *memFasta) Len(name string) (uint64, error) {
	s, ok := f.seqs[name]
	if !ok {
		return 0, errors.Errorf("fasta: sequence not found: %s", name)
	}
	return uint64(len(s)), nil
}

func (f *memFasta) SeqNames() []string {
	return f.names
}

// ReadIndexLengths parses a samtools .fai index and returns sequence
// lengths keyed by name, plus the names in index order. Only the first two
// of the five index columns are consumed.
func ReadIndexLengths(r io.Reader) (map[string]uint64, []string, error) {
	lengths := make(map[string]uint64)
	var names []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, nil, errors.Errorf("fasta: malformed index line: %q", line)
		}
		length, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "fasta: bad length in index line %q", line)
		}
		if _, ok := lengths[fields[0]]; ok {
			return nil, nil, errors.Errorf("fasta: duplicate sequence %s in index", fields[0])
		}
		lengths[fields[0]] = length
		names = append(names, fields[0])
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "fasta: index read failed")
	}
	return lengths, names, nil
}
