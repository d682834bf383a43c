package fairness

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/dicemate/dicemate/internal/domain"
)

// ReportFormat selects how a batch report is rendered.
type ReportFormat string

const (
	FormatText ReportFormat = "text"
	FormatJSON ReportFormat = "json"
	FormatCSV  ReportFormat = "csv"
)

// csvHeader is the export column layout consumed by external audit tooling.
var csvHeader = []string{"Nonce", "ServerSeed", "ClientSeed", "Hash", "CalculatedOutcome", "ActualOutcome", "Status", "Error"}

// WriteReport renders a batch report to w in the requested format.
func WriteReport(w io.Writer, report *domain.BatchReport, format ReportFormat) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case FormatCSV:
		return writeCSV(w, report)
	case FormatText, "":
		return writeText(w, report)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func writeCSV(w io.Writer, report *domain.BatchReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range report.Results {
		row := []string{
			strconv.FormatInt(r.Input.Nonce, 10),
			r.Input.ServerSeed,
			r.Input.ClientSeed,
			r.Digest,
			strconv.FormatFloat(r.Recomputed, 'f', 3, 64),
			strconv.FormatFloat(r.Input.ClaimedOutcome, 'f', 3, 64),
			string(r.Status),
			r.Err,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeText(w io.Writer, report *domain.BatchReport) error {
	for _, r := range report.Results {
		switch r.Status {
		case domain.VerificationError:
			fmt.Fprintf(w, "nonce %-8d ERROR    %s\n", r.Input.Nonce, r.Err)
		case domain.VerificationValid:
			fmt.Fprintf(w, "nonce %-8d ok       outcome=%.3f digest=%s\n", r.Input.Nonce, r.Recomputed, r.Digest)
		default:
			fmt.Fprintf(w, "nonce %-8d MISMATCH claimed=%.3f recomputed=%.3f digest=%s\n",
				r.Input.Nonce, r.Input.ClaimedOutcome, r.Recomputed, r.Digest)
		}
	}
	_, err := fmt.Fprintf(w, "checked %d: %d valid, %d invalid, %d errors\n",
		len(report.Results), report.Valid, report.Invalid, report.Errors)
	return err
}
