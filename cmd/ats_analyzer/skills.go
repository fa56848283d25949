package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-analyzer/internal/analysis"
	"github.com/jonathan/ats-analyzer/internal/observability"
)

type skillsOptions struct {
	file string
	job  string
}

func newSkillsCmd(a *app) *cobra.Command {
	opts := &skillsOptions{}

	cmd := &cobra.Command{
		Use:   "skills",
		Short: "List catalog skills detected in a document",
		Long: `Without --file, print the skill catalog. With --file, print the catalog skills
the document mentions. With --file and --job, compare the two documents.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSkills(cmd, a, opts)
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "", "Document source to scan")
	cmd.Flags().StringVarP(&opts.job, "job", "j", "", "Job description source to compare against")

	return cmd
}

func runSkills(cmd *cobra.Command, a *app, opts *skillsOptions) error {
	ctx := cmd.Context()

	if opts.file == "" {
		if opts.job != "" {
			return fmt.Errorf("--job requires --file")
		}
		return writeLines(a, analysis.SkillCatalog())
	}

	text, err := a.load(ctx, opts.file)
	if err != nil {
		return err
	}

	if opts.job == "" {
		detected := analysis.DetectSkills(text)
		if len(detected) == 0 {
			_, err := fmt.Fprintln(a.stdout, "No catalog skills detected.")
			return err
		}
		return writeLines(a, detected)
	}

	jobText, err := a.load(ctx, opts.job)
	if err != nil {
		return err
	}
	observability.NewPrinter(a.stdout).PrintSkills(analysis.CompareSkills(text, jobText))
	return nil
}

func writeLines(a *app, lines []string) error {
	_, err := fmt.Fprintln(a.stdout, strings.Join(lines, "\n"))
	return err
}
