package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vaultenv/vaultenv/internal/doctor"
	"github.com/vaultenv/vaultenv/internal/ui"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check identity and vault file permissions and configuration",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		_, identityRoot, err := identityStore()
		if err != nil {
			dieWithCodes(err, nil)
		}

		cwd, err := os.Getwd()
		if err != nil {
			dieWithCodes(err, nil)
		}

		report, err := doctor.Check(identityRoot, cwd)
		if err != nil {
			dieWithCodes(err, nil)
		}

		if doctorFix {
			result, err := doctor.Fix(report)
			if err != nil {
				dieWithCodes(err, nil)
			}
			for _, issue := range result.Applied {
				fmt.Println(ui.Success.Sprint("✓ ") + "fixed " + issue.Path)
			}
			for _, issue := range result.Failed {
				fmt.Println(ui.Error.Sprint("✗ ") + "could not fix " + issue.Path)
			}
			report, err = doctor.Check(identityRoot, cwd)
			if err != nil {
				dieWithCodes(err, nil)
			}
		}

		if report.KDFInEffect != "" {
			fmt.Println("kdf: " + report.KDFInEffect)
		}
		for _, issue := range report.Issues {
			fmt.Println(ui.Error.Sprint("✗ ") + issue.Path + ": " + issue.Message)
		}
		for _, warning := range report.Warnings {
			fmt.Println(ui.Info.Sprint("• ") + warning)
		}

		if len(report.Issues) == 0 && len(report.Warnings) == 0 {
			fmt.Println(ui.Success.Sprint("✓ ") + "no issues found")
			return
		}
		if len(report.Issues) > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "tighten permissions that doctor can safely fix")
}
