package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path"
	"path/filepath"

	"github.com/maeartistry/internal/store"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func newUploadCommand() *cobra.Command {
	var dir, prefix string

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload a directory of images to the media bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, bucket, err := openStore()
			if err != nil {
				return err
			}
			files, err := listFiles(dir)
			if err != nil {
				return err
			}

			bar := progressbar.NewOptions(len(files),
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionSetDescription("uploading"),
				progressbar.OptionShowCount(),
			)
			failed := uploadFiles(cmd.Context(), bucket, dir, prefix, files, func() { _ = bar.Add(1) })
			_ = bar.Finish()

			fmt.Fprintf(cmd.OutOrStdout(), "\nuploaded %d of %d files\n", len(files)-failed, len(files))
			if failed > 0 {
				return fmt.Errorf("%d uploads failed", failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "local directory to upload")
	cmd.Flags().StringVar(&prefix, "prefix", "", "object prefix inside the bucket")
	cmd.MarkFlagRequired("dir") // nolint:errcheck
	return cmd
}

func listFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("no files found in " + root)
	}
	return files, nil
}

// uploadFiles uploads every file and returns how many failed.
func uploadFiles(ctx context.Context, bucket store.Bucket, root, prefix string, files []string, tick func()) int {
	failed := 0
	for _, rel := range files {
		objectPath := path.Join(prefix, filepath.ToSlash(rel))
		if err := uploadFile(ctx, bucket, filepath.Join(root, rel), objectPath); err != nil {
			failed++
			slog.Warn("upload failed", "file", rel, "error", err)
		}
		tick()
	}
	return failed
}

func uploadFile(ctx context.Context, bucket store.Bucket, source, objectPath string) error {
	f, err := os.Open(source)
	if err != nil {
		return err
	}
	defer f.Close()

	contentType := mime.TypeByExtension(filepath.Ext(source))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err = bucket.Upload(ctx, objectPath, f, contentType)
	return err
}
