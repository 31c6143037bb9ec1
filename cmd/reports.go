package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lddscreen/internal/export"
	"github.com/abhisek/lddscreen/internal/store"
	"github.com/abhisek/lddscreen/internal/viewer"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived reports, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		reports, err := s.ReportRepo().List(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("list reports: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(reports) == 0 {
			fmt.Fprintln(out, "No reports found.")
			return nil
		}

		fmt.Fprintf(out, "%-22s  %-19s  %-20s  %7s  %-8s  %s\n",
			"ID", "Generated", "Name", "Score", "Risk", "Conf")
		fmt.Fprintln(out, strings.Repeat("─", 90))
		for _, r := range reports {
			score := export.NotAvailable
			if r.CombinedScore != nil {
				score = strconv.FormatFloat(*r.CombinedScore, 'f', 1, 64)
			}
			risk := r.RiskLevel
			if risk == "" {
				risk = export.NotAvailable
			}
			name := r.SubjectName
			if len(name) > 20 {
				name = name[:20]
			}
			fmt.Fprintf(out, "%-22s  %-19s  %-20s  %7s  %-8s  %d%%\n",
				r.ID,
				r.GeneratedAt.Local().Format("2006-01-02 15:04:05"),
				name,
				score,
				risk,
				r.Confidence,
			)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print an archived report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, err := getReport(cmd, args[0])
		if err != nil {
			return err
		}
		if _, err := cmd.OutOrStdout().Write(export.Text(export.Layout(rep.Document))); err != nil {
			return err
		}
		printNarrative(cmd, rep.Narrative)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export an archived report",
	Long: `Export an archived report as json, csv, txt or pdf.

Without --out the artifact is written to stdout. With --out naming a
directory, the file gets its conventional download name.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("out")

		format, err := export.ParseFormat(name)
		if err != nil {
			return err
		}
		rep, err := getReport(cmd, args[0])
		if err != nil {
			return err
		}
		data, err := export.Render(rep.Document, format)
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}

		if outPath == "" {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}
		if info, err := os.Stat(outPath); err == nil && info.IsDir() {
			outPath = filepath.Join(outPath, export.FileName(rep.Document, format))
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "wrote", outPath)
		return nil
	},
}

var viewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Page through an archived report in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, err := getReport(cmd, args[0])
		if err != nil {
			return err
		}
		return viewer.Run(rep.Document, rep.Narrative)
	},
}

var narrateCmd = &cobra.Command{
	Use:   "narrate <id>",
	Short: "Write or rewrite the plain-language summary of an archived report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		rep, err := s.ReportRepo().Get(ctx, args[0])
		if err != nil {
			return fmt.Errorf("get report %s: %w", args[0], err)
		}
		svc, err := newScreening(ctx, s, true)
		if err != nil {
			return err
		}
		text, err := svc.Narrate(ctx, rep.Document)
		if err != nil {
			return fmt.Errorf("narrate: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	listCmd.Flags().Int("limit", 20, "Maximum number of reports to list")

	exportCmd.Flags().String("format", string(export.FormatPDF), "Export format: json, csv, txt or pdf")
	exportCmd.Flags().String("out", "", "Output file or directory (default stdout)")
}

func getReport(cmd *cobra.Command, id string) (*store.StoredReport, error) {
	s, err := openStore(cmd)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	rep, err := s.ReportRepo().Get(cmd.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("get report %s: %w", id, err)
	}
	return rep, nil
}
