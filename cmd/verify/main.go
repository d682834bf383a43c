// Command verify replays provably-fair bets against revealed seeds, either
// one bet from flags or a batch from a CSV file, and renders the report as
// text, JSON, or CSV.
//
// Batch input CSV columns: nonce,server_seed,client_seed,claimed_outcome
// (a header row is skipped when present).
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dicemate/dicemate/internal/domain"
	"github.com/dicemate/dicemate/internal/fairness"
)

func main() {
	var (
		serverSeed = flag.String("server-seed", "", "revealed server seed")
		clientSeed = flag.String("client-seed", "", "client seed")
		nonce      = flag.Int64("nonce", 0, "bet nonce")
		outcome    = flag.Float64("outcome", -1, "outcome the site claimed")
		csvPath    = flag.String("csv", "", "batch input CSV (overrides single-bet flags)")
		format     = flag.String("format", "text", "output format: text, json, csv")
	)
	flag.Parse()

	if err := run(*serverSeed, *clientSeed, *nonce, *outcome, *csvPath, fairness.ReportFormat(*format)); err != nil {
		fmt.Fprintf(os.Stderr, "verify: %v\n", err)
		os.Exit(1)
	}
}

func run(serverSeed, clientSeed string, nonce int64, outcome float64, csvPath string, format fairness.ReportFormat) error {
	var inputs []domain.VerificationInput

	if csvPath != "" {
		var err error
		inputs, err = readInputs(csvPath)
		if err != nil {
			return err
		}
	} else {
		if serverSeed == "" && clientSeed == "" {
			flag.Usage()
			return fmt.Errorf("either -csv or -server-seed/-client-seed/-nonce/-outcome is required")
		}
		inputs = []domain.VerificationInput{{
			ServerSeed:     serverSeed,
			ClientSeed:     clientSeed,
			Nonce:          nonce,
			ClaimedOutcome: outcome,
		}}
	}

	verifier := fairness.NewVerifier()
	report := verifier.VerifyBatch(inputs)

	if err := fairness.WriteReport(os.Stdout, report, format); err != nil {
		return err
	}
	if !report.AllValid() {
		os.Exit(2)
	}
	return nil
}

func readInputs(path string) ([]domain.VerificationInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 4

	var inputs []domain.VerificationInput
	line := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		line++

		n, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			if line == 1 {
				// Header row
				continue
			}
			return nil, fmt.Errorf("%s line %d: bad nonce %q", path, line, row[0])
		}
		claimed, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: bad outcome %q", path, line, row[3])
		}

		inputs = append(inputs, domain.VerificationInput{
			Nonce:          n,
			ServerSeed:     row[1],
			ClientSeed:     row[2],
			ClaimedOutcome: claimed,
		})
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%s: no verification inputs", path)
	}
	return inputs, nil
}
