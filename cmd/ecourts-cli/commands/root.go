package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"ecourts-backend/lib/fileout"
	"ecourts-backend/lib/scrapers/ecourts"
	"ecourts-backend/lib/timezone"
	"ecourts-backend/services/casedata"

	"github.com/spf13/cobra"
)

var flags struct {
	cnr         string
	caseType    string
	caseNumber  string
	year        string
	today       bool
	tomorrow    bool
	causelist   bool
	courtCode   string
	downloadPdf bool
	outputDir   string
	format      string
	config      string
	demo        bool
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flags.cnr, "cnr", "", "Case Number Record (CNR) to search")
	f.StringVar(&flags.caseType, "case-type", "", "Case type")
	f.StringVar(&flags.caseNumber, "case-number", "", "Case number")
	f.StringVar(&flags.year, "year", "", "Case year")
	f.BoolVar(&flags.today, "today", false, "Use today's date for the cause list")
	f.BoolVar(&flags.tomorrow, "tomorrow", false, "Use tomorrow's date for the cause list")
	f.BoolVar(&flags.causelist, "causelist", false, "Download the cause list")
	f.StringVar(&flags.courtCode, "court-code", "01", "Court code for the cause list")
	f.BoolVar(&flags.downloadPdf, "download-pdf", false, "Download the case PDF if available")
	f.StringVar(&flags.outputDir, "output-dir", "", "Output directory for files")
	f.StringVar(&flags.format, "format", "json", "Output file format: json, csv or text")
	f.StringVar(&flags.config, "config", "config.json5", "Path to the configuration file")
	f.BoolVar(&flags.demo, "demo", false, "Serve the offline demo catalog instead of the portal")
}

var rootCmd = &cobra.Command{
	Use:   "ecourts-cli",
	Short: "ecourts-cli looks up case records and cause lists on the eCourts portal.",
	RunE:  run,
	// errors are printed by ExecuteContext, not by cobra itself
	SilenceUsage:  true,
	SilenceErrors: true,
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	haveTriple := flags.caseType != "" && flags.caseNumber != "" && flags.year != ""
	if flags.cnr == "" && !haveTriple && !flags.causelist {
		return fmt.Errorf("nothing to do: pass --cnr, a complete --case-type/--case-number/--year, or --causelist")
	}

	format, err := fileout.ParseFormat(flags.format)
	if err != nil {
		return err
	}

	cfg, err := casedata.LoadConfig(flags.config)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if flags.outputDir != "" {
		cfg.OutputDir = flags.outputDir
	}
	if flags.demo {
		cfg.Demo = true
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return err
	}

	client, err := ecourts.NewClient(cfg.ClientOptions())
	if err != nil {
		return err
	}

	var queries *casedata.QueryLog
	if cfg.DatabasePath != "" {
		queries, err = casedata.OpenQueryLog(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("open query log: %w", err)
		}
		defer queries.Close()
	}

	svc := casedata.NewService(client, queries, cfg.Demo)
	ctx := cmd.Context()

	var rec *ecourts.CaseRecord
	switch {
	case flags.cnr != "":
		rec, err = svc.SearchByCnr(ctx, flags.cnr)
	case haveTriple:
		rec, err = svc.SearchByCase(ctx, flags.caseType, flags.caseNumber, flags.year)
	}
	if err != nil {
		return err
	}

	if flags.cnr != "" || haveTriple {
		if rec == nil {
			fmt.Println("Case not found")
		} else {
			fmt.Println()
			fmt.Print(casedata.RenderRecordText(rec))

			dest := filepath.Join(cfg.OutputDir, "case."+string(format))
			if err := casedata.WriteRecord(rec, format, dest); err != nil {
				return err
			}
			fmt.Printf("\nRecord saved to: %s\n", dest)

			if flags.downloadPdf {
				pdfPath, err := svc.DownloadCasePdf(ctx, rec, cfg.OutputDir)
				if err != nil {
					return err
				}
				fmt.Printf("PDF downloaded to: %s\n", pdfPath)
			}
		}
	}

	if flags.causelist {
		date := timezone.Now()
		if flags.tomorrow {
			date = date.AddDate(0, 0, 1)
		}

		list, err := svc.CauseList(ctx, flags.courtCode, date)
		if err != nil {
			return err
		}
		fmt.Printf("\nCause list for court %s on %s: %d cases\n",
			list.CourtCode, date.Format("02-01-2006"), len(list.Entries))
		fmt.Print(casedata.RenderCauseListText(list))

		dest := filepath.Join(cfg.OutputDir, "cause_list."+string(format))
		if err := casedata.WriteCauseList(list, format, dest); err != nil {
			return err
		}
		fmt.Printf("Cause list saved to: %s\n", dest)
	}

	return nil
}
