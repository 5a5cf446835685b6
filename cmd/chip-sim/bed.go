package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/klauspost/compress/gzip"
	"github.com/seqsim/chipsim/sim"
)

// parseBindingSites reads a BED-like site list: chrom, start, end, then
// optionally a name (ignored) and a score used as the binding weight. The
// fixed-length binding region is centered on the BED interval; a missing or
// zero score means "draw the weight as usual". Lines starting with '#',
// "track" or "browser" are skipped.
func parseBindingSites(r io.Reader, bindingLength int) (map[string][]sim.BindingSite, error) {
	sites := make(map[string][]sim.BindingSite)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' ||
			strings.HasPrefix(line, "track") || strings.HasPrefix(line, "browser") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("bed line %d: want at least 3 columns, got %d", lineNo, len(fields))
		}
		start, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("bed line %d: bad start %q", lineNo, fields[1])
		}
		end, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("bed line %d: bad end %q", lineNo, fields[2])
		}
		if start < 0 || end <= start {
			return nil, fmt.Errorf("bed line %d: bad interval [%d, %d)", lineNo, start, end)
		}
		site := sim.BindingSite{Start: (start+end)/2 - bindingLength/2}
		if site.Start < 0 {
			site.Start = 0
		}
		if len(fields) >= 5 {
			if site.Weight, err = strconv.ParseFloat(fields[4], 64); err != nil {
				return nil, fmt.Errorf("bed line %d: bad score %q", lineNo, fields[4])
			}
			if site.Weight < 0 {
				return nil, fmt.Errorf("bed line %d: negative score %g", lineNo, site.Weight)
			}
		}
		sites[fields[0]] = append(sites[fields[0]], site)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return sites, nil
}

// readBindingSites is a wrapper around parseBindingSites that takes a local
// or S3 path, transparently decompressing .gz files.
func readBindingSites(ctx context.Context, path string, bindingLength int) (sites map[string][]sim.BindingSite, err error) {
	var infile file.File
	if infile, err = file.Open(ctx, path); err != nil {
		return nil, err
	}
	defer func() {
		if cerr := infile.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	reader := io.Reader(infile.Reader(ctx))
	if fileio.DetermineType(path) == fileio.Gzip {
		var gz *gzip.Reader
		if gz, err = gzip.NewReader(reader); err != nil {
			return nil, err
		}
		reader = gz
	}
	return parseBindingSites(reader, bindingLength)
}
