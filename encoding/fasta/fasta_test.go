package fasta_test

import (
	"strings"
	"testing"

	"github.com/seqsim/chipsim/encoding/fasta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fastaData = ">seq1\n" +
	"ACGTA\nCGTAC\nGT\n" +
	">seq2 a viral sequence\n" +
	"ACGT\nACGT\n"

func TestNew(t *testing.T) {
	fa, err := fasta.New(strings.NewReader(fastaData))
	require.NoError(t, err)
	assert.Equal(t, []string{"seq1", "seq2"}, fa.SeqNames())

	n, err := fa.Len("seq1")
	require.NoError(t, err)
	assert.Equal(t, uint64(12), n)
	n, err = fa.Len("seq2")
	require.NoError(t, err)
	assert.Equal(t, uint64(8), n)
	_, err = fa.Len("seq3")
	assert.Error(t, err)
}

func TestGet(t *testing.T) {
	fa, err := fasta.New(strings.NewReader(fastaData))
	require.NoError(t, err)
	tests := []struct {
		seq        string
		start, end uint64
		want       string
		wantErr    bool
	}{
		{"seq1", 0, 12, "ACGTACGTACGT", false},
		{"seq1", 1, 6, "CGTAC", false},
		{"seq1", 10, 12, "GT", false},
		{"seq2", 2, 5, "GTA", false},
		{"seq0", 0, 1, "", true},
		{"seq1", 10, 13, "", true},
		{"seq1", 4, 3, "", true},
	}
	for _, tt := range tests {
		got, err := fa.Get(tt.seq, tt.start, tt.end)
		if tt.wantErr {
			assert.Error(t, err, "Get(%s, %d, %d)", tt.seq, tt.start, tt.end)
			continue
		}
		require.NoError(t, err, "Get(%s, %d, %d)", tt.seq, tt.start, tt.end)
		assert.Equal(t, tt.want, got)
	}
}

func TestNewMalformed(t *testing.T) {
	for _, data := range []string{
		"",
		"ACGT\n",
		">seq1\nAC\n>seq1\nGT\n",
		"> \nACGT\n",
	} {
		_, err := fasta.New(strings.NewReader(data))
		assert.Error(t, err, "input %q", data)
	}
}

func TestReadIndexLengths(t *testing.T) {
	index := "seq1\t12\t6\t5\t6\n" + "seq2\t8\t44\t4\t5\n"
	lengths, names, err := fasta.ReadIndexLengths(strings.NewReader(index))
	require.NoError(t, err)
	assert.Equal(t, []string{"seq1", "seq2"}, names)
	assert.Equal(t, map[string]uint64{"seq1": 12, "seq2": 8}, lengths)

	_, _, err = fasta.ReadIndexLengths(strings.NewReader("seq1\n"))
	assert.Error(t, err)
	_, _, err = fasta.ReadIndexLengths(strings.NewReader("seq1\tx\t1\t1\t1\n"))
	assert.Error(t, err)
	_, _, err = fasta.ReadIndexLengths(strings.NewReader("seq1\t5\nseq1\t6\n"))
	assert.Error(t, err)
}
