package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/maeartistry/internal/imageformat"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

type convertSummary struct {
	Converted int
	Skipped   int
	Failed    int
}

func newConvertImagesCommand() *cobra.Command {
	var src, dst string
	var maxWidth int
	var force bool

	cmd := &cobra.Command{
		Use:   "convert-images",
		Short: "Convert JPEG and PNG images to WebP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dst == "" {
				dst = src
			}
			files, err := findConvertible(src)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no images to convert")
				return nil
			}

			bar := progressbar.NewOptions(len(files),
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionSetDescription("converting"),
				progressbar.OptionShowCount(),
			)
			summary := convertAll(src, dst, files, maxWidth, force, func() { _ = bar.Add(1) })
			_ = bar.Finish()

			fmt.Fprintf(cmd.OutOrStdout(), "\nconverted %d, skipped %d, failed %d\n", summary.Converted, summary.Skipped, summary.Failed)
			if summary.Failed > 0 {
				return fmt.Errorf("%d images failed to convert", summary.Failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&src, "src", "web/static/images", "directory with source images")
	cmd.Flags().StringVar(&dst, "dst", "", "output directory (defaults to --src)")
	cmd.Flags().IntVar(&maxWidth, "max-width", 1920, "scale images wider than this")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing .webp files")
	return cmd
}

// findConvertible returns the JPEG and PNG files below root, relative to it.
func findConvertible(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(p)) {
		case ".jpg", ".jpeg", ".png":
			rel, err := filepath.Rel(root, p)
			if err != nil {
				return err
			}
			files = append(files, rel)
		}
		return nil
	})
	return files, err
}

func convertAll(src, dst string, files []string, maxWidth int, force bool, tick func()) convertSummary {
	var summary convertSummary
	for _, rel := range files {
		target := filepath.Join(dst, strings.TrimSuffix(rel, filepath.Ext(rel))+imageformat.WebP.Extension())
		err := convertOne(filepath.Join(src, rel), target, maxWidth, force)
		switch {
		case errors.Is(err, fs.ErrExist):
			summary.Skipped++
		case err != nil:
			summary.Failed++
			slog.Warn("convert failed", "file", rel, "error", err)
		default:
			summary.Converted++
		}
		tick()
	}
	return summary
}

func convertOne(source, target string, maxWidth int, force bool) error {
	if !force {
		if _, err := os.Stat(target); err == nil {
			return fs.ErrExist
		}
	}
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	out, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := imageformat.Convert(in, out, imageformat.ConvertOptions{Target: imageformat.WebP, MaxWidth: maxWidth}); err != nil {
		out.Close()
		os.Remove(target)
		return err
	}
	return out.Close()
}
