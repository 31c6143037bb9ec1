package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/lddscreen/internal/analyzer"
	"github.com/abhisek/lddscreen/internal/assessment"
	"github.com/abhisek/lddscreen/internal/export"
	"github.com/abhisek/lddscreen/internal/report"
	"github.com/abhisek/lddscreen/internal/screening"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and archive a screening report",
	Long: `Generate a report from analyzer results or raw samples.

Each modality is given either as a result JSON file (--handwriting, --speech)
or as a sample sent to its analysis service (--image, --audio). Omitted
modalities are reported as not assessed.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.String("handwriting", "", "Handwriting analyzer result JSON file")
	f.String("speech", "", "Speech analyzer result JSON file")
	f.String("image", "", "Handwriting image to analyze (jpg, png)")
	f.String("audio", "", "Speech recording to analyze (wav, mp3, ogg, m4a, webm)")
	f.String("reference-text", "", "Passage the audio recording reads aloud")

	f.String("name", "", "Student name")
	f.Int("age", 0, "Student age in years")
	f.String("grade", "", "Student grade")
	f.String("school", "", "School")
	f.String("teacher", "", "Teacher")
	f.String("test-date", "", "Test date (YYYY-MM-DD)")

	f.String("out", "", "Directory to write the report in every export format")
	f.Bool("narrate", false, "Attach an LLM-written plain-language summary")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	f := cmd.Flags()

	var in screening.Input
	in.Subject.Name, _ = f.GetString("name")
	in.Subject.Age, _ = f.GetInt("age")
	in.Subject.Grade, _ = f.GetString("grade")
	in.Subject.School, _ = f.GetString("school")
	in.Subject.Teacher, _ = f.GetString("teacher")
	in.Subject.TestDate, _ = f.GetString("test-date")
	in.ReferenceText, _ = f.GetString("reference-text")
	in.Narrate, _ = f.GetBool("narrate")

	var err error
	if in.Handwriting, err = readResult(cmd, "handwriting"); err != nil {
		return err
	}
	if in.Speech, err = readResult(cmd, "speech"); err != nil {
		return err
	}

	var closers []*os.File
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()
	openSample := func(flag string) (*screening.Sample, error) {
		path, _ := f.GetString(flag)
		if path == "" {
			return nil, nil
		}
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", flag, err)
		}
		closers = append(closers, file)
		info, err := file.Stat()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", flag, err)
		}
		return &screening.Sample{Filename: filepath.Base(path), Size: info.Size(), Body: file}, nil
	}
	if in.Image, err = openSample("image"); err != nil {
		return err
	}
	if in.Audio, err = openSample("audio"); err != nil {
		return err
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	svc, err := newScreening(ctx, st, in.Narrate)
	if err != nil {
		return err
	}
	res, err := svc.Run(ctx, in)
	if err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Report ID:", res.Document.Metadata.ReportID)
	out := cmd.OutOrStdout()
	if _, err := out.Write(export.Text(export.Layout(res.Document))); err != nil {
		return err
	}
	printNarrative(cmd, res.Narrative)
	if res.NarrativeErr != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Narrative unavailable:", res.NarrativeErr)
	}

	if dir, _ := f.GetString("out"); dir != "" {
		paths, err := writeAll(res.Document, dir)
		for _, p := range paths {
			fmt.Fprintln(cmd.ErrOrStderr(), "wrote", p)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func readResult(cmd *cobra.Command, flag string) (*assessment.ModalityResult, error) {
	path, _ := cmd.Flags().GetString(flag)
	if path == "" {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s result: %w", flag, err)
	}
	defer file.Close()

	res, err := analyzer.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s result %s: %w", flag, path, err)
	}
	return res, nil
}

// writeAll writes doc into dir once per export format. A format that
// fails is reported and the others are still written.
func writeAll(doc *report.Document, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	var (
		paths []string
		errs  []error
	)
	for _, format := range export.Formats {
		data, err := export.Render(doc, format)
		if err != nil {
			errs = append(errs, fmt.Errorf("render %s: %w", format, err))
			continue
		}
		p := filepath.Join(dir, export.FileName(doc, format))
		if err := os.WriteFile(p, data, 0o644); err != nil {
			errs = append(errs, fmt.Errorf("write %s: %w", p, err))
			continue
		}
		paths = append(paths, p)
	}
	return paths, errors.Join(errs...)
}

func printNarrative(cmd *cobra.Command, text string) {
	if text == "" {
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Summary")
	fmt.Fprintln(out, text)
}
