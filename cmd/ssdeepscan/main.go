// Command ssdeepscan is a small triage tool built on top of pkg/ssdeep: it
// fingerprints files, maintains a flat-file catalog of signatures, and
// answers near-duplicate queries against that catalog. Positional
// arguments are file paths, optionally scoped to a byte or percentage
// range with "path#start-end" or "path#start%-end%" (see
// common.FileAndRangeSpec).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/ctph-go/ssdeep/pkg/catalog"
	"github.com/ctph-go/ssdeep/pkg/common"
	"github.com/ctph-go/ssdeep/pkg/fingerprint"
	ggpg "github.com/ctph-go/ssdeep/pkg/gpg"
	"github.com/ctph-go/ssdeep/pkg/lifecycle"
	"github.com/ctph-go/ssdeep/pkg/log"
	"github.com/ctph-go/ssdeep/pkg/ssdeep"
)

var logger = log.NewLogger()

type config struct {
	compareA, compareB string
	catalogFile        string
	query              string
	legacyDigest       string
	gpg                string
	verifyGPG          bool
	workers            int
	progress           bool
	args               []string
}

func main() {
	cfg := parseArgs()

	switch {
	case cfg.compareA != "" || cfg.compareB != "":
		runCompare(cfg)
	case cfg.query != "":
		runQuery(cfg)
	default:
		runScan(cfg)
	}
}

func parseArgs() *config {
	compareA := flag.String("compare-a", "", "First signature for -compare-b comparison")
	compareB := flag.String("compare-b", "", "Second signature for -compare-a comparison")
	catalogFile := flag.String("catalog", "", "Catalog file to append scan results to, or read for -query")
	query := flag.String("query", "", "Signature to look up against -catalog")
	legacyDigest := flag.String("legacy-digest", "none", "Companion digest: none, sha3-256, kangaroo12")
	gpgFile := flag.String("gpg", "", "GPG signature file to generate alongside -catalog")
	verifyGPG := flag.Bool("verify-gpg", false, "Verify -gpg against -catalog instead of generating it")
	workers := flag.Int("workers", runtime.NumCPU(), "Worker goroutines for batch fingerprinting")
	progress := flag.Bool("progress", false, "Show progress bars while fingerprinting")
	flag.Parse()

	return &config{
		compareA:     *compareA,
		compareB:     *compareB,
		catalogFile:  *catalogFile,
		query:        *query,
		legacyDigest: *legacyDigest,
		gpg:          *gpgFile,
		verifyGPG:    *verifyGPG,
		workers:      *workers,
		progress:     *progress,
		args:         flag.Args(),
	}
}

func runCompare(cfg *config) {
	if cfg.compareA == "" || cfg.compareB == "" {
		logger.Errorf("Both -compare-a and -compare-b are required")
		os.Exit(1)
	}
	score := ssdeep.Compare(cfg.compareA, cfg.compareB)
	if score < 0 {
		logger.Errorf("Malformed signature")
		os.Exit(1)
	}
	fmt.Println(score)
}

func legacyDigestFromFlag(s string) fingerprint.LegacyDigest {
	switch strings.ToLower(s) {
	case "sha3-256":
		return fingerprint.LegacySHA3256
	case "kangaroo12":
		return fingerprint.LegacyKangarooTwelve
	default:
		return fingerprint.LegacyNone
	}
}

type fingerprintJob struct {
	rs common.FileAndRangeSpec
	lc common.FileLifecycle
}

type fingerprintResult struct {
	bundle fingerprint.Bundle
	err    error
}

// runScan fingerprints every argument given on the command line and, when
// -catalog is set, appends each resulting signature to it. An argument may
// be a plain file path or a "path#start-end"/"path#start%-end%" range
// (common.FileAndRangeSpec.Parse), in which case only that byte range is
// fingerprinted. Arguments are distributed across cfg.workers goroutines by
// catalog.Distribute, so the same argument set and worker count always
// produces the same assignment.
func runScan(cfg *config) {
	if len(cfg.args) == 0 {
		logger.Errorf("No input files provided")
		os.Exit(1)
	}

	legacy := legacyDigestFromFlag(cfg.legacyDigest)
	var progressFunc common.ProgressFunc = lifecycle.MakeDefaultLifecycle
	if cfg.progress {
		progressFunc = lifecycle.MakeProgressBars
	}

	buckets := catalog.Distribute(cfg.args, cfg.workers)

	jobs := make([]chan fingerprintJob, len(buckets))
	results := make(chan fingerprintResult, len(cfg.args))
	var wg sync.WaitGroup

	for w := 0; w < len(buckets); w++ {
		jobs[w] = make(chan fingerprintJob, len(buckets[w]))
		wg.Add(1)
		go func(workerJobs <-chan fingerprintJob) {
			defer wg.Done()
			for job := range workerJobs {
				bundle, err := fingerprintFile(job.rs, job.lc, legacy)
				results <- fingerprintResult{bundle: bundle, err: err}
			}
		}(jobs[w])
	}

	for w, bucket := range buckets {
		for _, arg := range bucket {
			var rs common.FileAndRangeSpec
			if err := rs.Parse(arg); err != nil {
				logger.Errorf("Invalid file argument: arg=%s, error=%v", arg, err)
				os.Exit(1)
			}
			start, end, err := rs.ToBytes()
			if err != nil {
				logger.Errorf("Error resolving range: arg=%s, error=%v", arg, err)
				os.Exit(1)
			}
			lc := progressFunc(rs.String(), end-start, start, end)
			jobs[w] <- fingerprintJob{rs: rs, lc: lc}
		}
		close(jobs[w])
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var catalogLines []string
	for result := range results {
		if result.err != nil {
			logger.Errorf("Error fingerprinting file: error=%v", result.err)
			os.Exit(1)
		}
		b := result.bundle
		line := fmt.Sprintf("%s %s %s %s", b.Fuzzy, b.Prefilter, b.Identity, b.Path)
		if b.Legacy != "" {
			line += " " + b.Legacy
		}
		fmt.Println(line)
		catalogLines = append(catalogLines, fmt.Sprintf("%s %s", b.Fuzzy, b.Path))
	}

	if cfg.catalogFile == "" {
		return
	}

	f, err := os.OpenFile(cfg.catalogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Errorf("Error opening catalog file: file=%s, error=%v", cfg.catalogFile, err)
		os.Exit(1)
	}
	for _, line := range catalogLines {
		fmt.Fprintln(f, line)
	}
	f.Close()

	if cfg.gpg != "" {
		if cfg.verifyGPG {
			ggpg.VerifyGPG(cfg.catalogFile, cfg.gpg)
		} else {
			ggpg.GenerateGPG([]string{cfg.catalogFile}, cfg.gpg)
		}
	}
}

func fingerprintFile(rs common.FileAndRangeSpec, lc common.FileLifecycle, legacy fingerprint.LegacyDigest) (fingerprint.Bundle, error) {
	file, err := os.Open(rs.FilePath)
	if err != nil {
		return fingerprint.Bundle{}, err
	}
	defer file.Close()

	reader, err := common.PrepareRangeReader(file, rs)
	if err != nil {
		return fingerprint.Bundle{}, err
	}

	lc.OnStart(0, -1)
	lcReader := &common.LifecycleReader{Reader: reader, Lifecycle: lc}
	defer lc.OnEnd()

	return fingerprint.Compute(lcReader, rs.String(), legacy)
}

// runQuery loads cfg.catalogFile as a flat "signature path" list and
// reports the entries catalog.Index.Lookup finds for cfg.query, scored
// against it.
func runQuery(cfg *config) {
	if cfg.catalogFile == "" {
		logger.Errorf("-catalog is required with -query")
		os.Exit(1)
	}

	query, err := ssdeep.ParseSignature(cfg.query)
	if err != nil {
		logger.Errorf("Invalid query signature: value=%s, error=%v", cfg.query, err)
		os.Exit(1)
	}

	idx, err := catalog.NewIndex()
	if err != nil {
		logger.Errorf("Error building catalog index: error=%v", err)
		os.Exit(1)
	}

	f, err := os.Open(cfg.catalogFile)
	if err != nil {
		logger.Errorf("Error opening catalog file: file=%s, error=%v", cfg.catalogFile, err)
		os.Exit(1)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 2 {
			logger.Errorf("Invalid catalog line: line=%s", line)
			continue
		}
		sig, err := ssdeep.ParseSignature(parts[0])
		if err != nil {
			logger.Errorf("Invalid catalog signature: line=%s, error=%v", line, err)
			continue
		}
		idx.Add(catalog.Entry{Path: strings.Join(parts[1:], " "), Signature: sig})
	}
	if err := scanner.Err(); err != nil {
		logger.Errorf("Error reading catalog file: file=%s, error=%v", cfg.catalogFile, err)
		os.Exit(1)
	}

	matches := idx.Lookup(query)
	if len(matches) == 0 {
		fmt.Println("No matches")
		return
	}
	for _, m := range matches {
		fmt.Printf("%d %s\n", m.Score, m.Entry.Path)
	}
}
