package cli

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// UploadOptions holds flags for the upload command.
type UploadOptions struct {
	*RootOptions
	Name        string
	ContentType string
}

// UploadResult is the JSON payload of the upload command.
type UploadResult struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Bytes int    `json:"bytes"`
}

// NewUploadCommand creates the upload command.
func NewUploadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UploadOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a file to Parse",
		Long: `Upload a file and print the name and URL Parse assigns to it. The
returned name is what a File field of an object refers to.

Example:
  parsemapper upload ./avatar.png
  parsemapper upload --name profile.png --content-type image/png ./avatar.bin`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpload(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "file name on Parse (default: base name of <file>)")
	cmd.Flags().StringVar(&opts.ContentType, "content-type", "", "content type (default: detected)")

	return cmd
}

func runUpload(opts *UploadOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	content, err := os.ReadFile(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeReadFailed, err, map[string]string{"path": path})
	}

	name := opts.Name
	if name == "" {
		name = filepath.Base(path)
	}
	contentType := opts.ContentType
	if contentType == "" {
		contentType = detectContentType(name, content)
	}
	formatter.VerboseLog("uploading %s (%s, %s)", name, contentType, humanize.Bytes(uint64(len(content))))

	ctx := cmd.Context()
	s, err := openSession(ctx, opts.RootOptions, cmd, formatter)
	if err != nil {
		return err
	}
	defer s.Close()

	file, err := s.adapter.UploadFile(ctx, name, contentType, content)
	if err != nil {
		return remoteFailure(formatter, err)
	}

	result := UploadResult{Name: file.Name, URL: file.URL, Bytes: len(content)}
	return formatter.Result(result, func(w io.Writer) error {
		fmt.Fprintf(w, "name: %s\n", file.Name)
		fmt.Fprintf(w, "url:  %s\n", file.URL)
		fmt.Fprintf(w, "size: %s\n", humanize.Bytes(uint64(len(content))))
		return nil
	})
}

// detectContentType prefers the extension and falls back to sniffing.
func detectContentType(name string, content []byte) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return http.DetectContentType(content)
}
