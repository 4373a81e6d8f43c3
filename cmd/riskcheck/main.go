package main

// Evaluate a metrics record locally:
//   go run ./cmd/riskcheck --sample moderate
//   go run ./cmd/riskcheck --age 52 --bp 150/95 --cholesterol 250 --json

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"healthrisk-backend/internal/risk"
)

const (
	exitInvalidRecord = 1
	exitUsage         = 2
)

type options struct {
	record    risk.MetricsRecord
	file      string
	sample    string
	asJSON    bool
	breakdown bool
}

func main() {
	cmd := newRootCmd(os.Stdout, time.Now)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if risk.IsValidationError(err) {
		return exitInvalidRecord
	}
	return exitUsage
}

func newRootCmd(out io.Writer, now func() time.Time) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "riskcheck",
		Short: "Score a health metrics record and print the risk report",
		Long: `riskcheck runs the additive risk score over a metrics record taken from
flags, a JSON file, or one of the built-in sample patients.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := opts.resolve()
			if err != nil {
				return err
			}
			report, err := risk.NewAssessor(now).Assess(record)
			if err != nil {
				return err
			}
			if opts.asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			var contributions []risk.Contribution
			if opts.breakdown {
				if contributions, err = risk.Breakdown(record); err != nil {
					return err
				}
			}
			return writeText(out, report, contributions)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.record.Age, "age", 0, "age in years")
	flags.StringVar(&opts.record.BloodPressure, "bp", "", `blood pressure as "systolic/diastolic"`)
	flags.IntVar(&opts.record.Cholesterol, "cholesterol", 0, "total cholesterol (mg/dL)")
	flags.IntVar(&opts.record.BloodSugar, "blood-sugar", 0, "fasting blood sugar (mg/dL)")
	flags.Float64Var(&opts.record.BMI, "bmi", 0, "body mass index")
	flags.BoolVar(&opts.record.Smoking, "smoking", false, "current smoker")
	flags.BoolVar(&opts.record.FamilyHistory, "family-history", false, "family history of heart disease")
	flags.StringVar(&opts.file, "file", "", "read the record from a JSON file")
	flags.StringVar(&opts.sample, "sample", "", "use a built-in sample (low|moderate|high)")
	flags.BoolVar(&opts.asJSON, "json", false, "print the report as JSON")
	flags.BoolVar(&opts.breakdown, "breakdown", false, "list the points each factor added")
	cmd.MarkFlagsMutuallyExclusive("file", "sample")

	return cmd
}

func (o *options) resolve() (risk.MetricsRecord, error) {
	switch {
	case o.sample != "":
		record, ok := risk.Sample(o.sample)
		if !ok {
			return risk.MetricsRecord{}, fmt.Errorf("unknown sample %q (want one of %s)", o.sample, strings.Join(risk.SampleNames, ", "))
		}
		return record, nil
	case o.file != "":
		return readRecord(o.file)
	default:
		if strings.TrimSpace(o.record.BloodPressure) == "" {
			return risk.MetricsRecord{}, errors.New("--bp is required unless --file or --sample is given")
		}
		return o.record, nil
	}
}

func readRecord(path string) (risk.MetricsRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return risk.MetricsRecord{}, fmt.Errorf("read record: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var record risk.MetricsRecord
	if err := dec.Decode(&record); err != nil {
		return risk.MetricsRecord{}, fmt.Errorf("decode record: %w", err)
	}
	return record, nil
}

func writeText(out io.Writer, report risk.Report, contributions []risk.Contribution) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Score: %d/%d\n", report.Score, risk.MaxScore)
	fmt.Fprintf(&b, "Level: %s\n", report.Level)
	if len(contributions) > 0 {
		b.WriteString("Breakdown:\n")
		for _, c := range contributions {
			fmt.Fprintf(&b, "  %-14s %3d\n", c.Factor, c.Points)
		}
	}
	b.WriteString("Recommendations:\n")
	for _, rec := range report.Recommendations {
		fmt.Fprintf(&b, "  - %s\n", rec)
	}
	_, err := io.WriteString(out, b.String())
	return err
}
