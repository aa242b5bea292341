package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"applyhome/internal/formatter"
)

// ErrUnformatted is returned in dry-run mode when a file would change.
var ErrUnformatted = errors.New("files need formatting")

var formatWrite bool

var formatCmd = &cobra.Command{
	Use:   "format [--write] [path]",
	Short: "Aligns Markdown tables by display width and re-signs exported documents.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := "."
		if len(args) == 1 {
			target = args[0]
		}

		return formatPath(cmd.OutOrStdout(), target, formatWrite)
	},
}

func init() {
	formatCmd.Flags().BoolVarP(&formatWrite, "write", "w", false, "Write changes to files (default: dry-run)")
	rootCmd.AddCommand(formatCmd)
}

func formatPath(out io.Writer, target string, write bool) error {
	fmt.Fprintf(out, "📂 Scanning path: %s\n", target)

	if write {
		fmt.Fprintln(out, "✍️  Write mode ENABLED (files will be modified)")
	} else {
		fmt.Fprintln(out, "👀 Dry-run mode (no changes will be written)")
	}

	fmt.Fprintln(out)

	var count, changed, failed int

	err := filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			fmt.Fprintf(out, "❌ Error accessing path %s: %v\n", path, err)

			failed++

			return nil
		}

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != target {
				return filepath.SkipDir
			}

			return nil
		}

		if strings.ToLower(filepath.Ext(path)) != ".md" {
			return nil
		}

		count++

		wasChanged, procErr := formatFile(path, write)

		switch {
		case procErr != nil:
			fmt.Fprintf(out, "❌ Failed to process %s: %v\n", path, procErr)

			failed++
		case wasChanged && write:
			changed++

			fmt.Fprintf(out, "✅ Formatted: %s\n", path)
		case wasChanged:
			changed++

			fmt.Fprintf(out, "📝 Would format: %s\n", path)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", target, err)
	}

	fmt.Fprintln(out, "\n----------------------------------------------------------------")
	fmt.Fprintln(out, "📈 Summary:")
	fmt.Fprintf(out, "  Scanned: %d files\n", count)
	fmt.Fprintf(out, "  Changed: %d files\n", changed)
	fmt.Fprintf(out, "  Errors:  %d\n", failed)

	if failed > 0 {
		return fmt.Errorf("format: %d files failed", failed)
	}

	if changed > 0 && !write {
		fmt.Fprintln(out, "\n💡 Run with --write to apply changes.")

		return ErrUnformatted
	}

	return nil
}

func formatFile(path string, write bool) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	original := string(content)

	formatted, err := formatter.FormatMarkdown(original)
	if err != nil {
		return false, err
	}

	if formatted == original {
		return false, nil
	}

	if write {
		if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
			return false, err
		}
	}

	return true, nil
}
