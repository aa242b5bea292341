package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"applyhome/internal/timezone"
	"applyhome/internal/validator"
)

// ErrVerifyFailed is returned when at least one document fails verification.
var ErrVerifyFailed = errors.New("verification failed")

var verifyCmd = &cobra.Command{
	Use:   "verify <file.md>...",
	Short: "Checks the metadata hash and table layout of exported Markdown documents.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		v := validator.NewMarkdownValidator()
		failed := 0

		for _, path := range args {
			content, err := os.ReadFile(path)
			if err != nil {
				fmt.Fprintf(out, "❌ %s: %v\n", path, err)

				failed++

				continue
			}

			res := v.ValidateIntegrity(string(content))
			fmt.Fprintf(out, "%s  %s\n", res.String(), path)

			if res.Metadata != nil {
				fmt.Fprintf(out, "   run %s, generated %s\n",
					res.Metadata.RunID,
					res.Metadata.GeneratedAt.In(timezone.Location).Format("2006-01-02 15:04"),
				)
			}

			for _, e := range res.Errors {
				fmt.Fprintf(out, "   ❌ %s\n", e.Error())
			}

			for _, w := range res.Warnings {
				fmt.Fprintf(out, "   ⚠️  %s\n", w)
			}

			if !res.IsValid {
				failed++
			}
		}

		if failed > 0 {
			return fmt.Errorf("%w: %d of %d files", ErrVerifyFailed, failed, len(args))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
