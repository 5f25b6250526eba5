package main

import (
	"context"
	"fmt"
	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/nxscript/formatter"
	"github.com/viant/nxscript/highlight"
	"github.com/viant/nxscript/lexer"
	"io"
)

type formatOptions struct {
	indent    int
	highlight bool
	html      bool
	light     bool
	style     string
}

func newFormatCmd(fs afs.Service) *cobra.Command {
	opts := &formatOptions{}
	cmd := &cobra.Command{
		Use:   "format <script-file>",
		Short: "Format a Ninox script, optionally with syntax highlighting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := download(cmd.Context(), fs, args[0])
			if err != nil {
				return err
			}
			return runFormat(cmd.OutOrStdout(), source, opts)
		},
	}
	cmd.Flags().IntVar(&opts.indent, "indent", formatter.DefaultIndent, "spaces per indentation level")
	cmd.Flags().BoolVar(&opts.highlight, "highlight", false, "colorize output for terminals")
	cmd.Flags().BoolVar(&opts.html, "html", false, "render output as a standalone HTML document with line numbers")
	cmd.Flags().BoolVar(&opts.light, "light", false, "use colors for light terminal backgrounds")
	cmd.Flags().StringVar(&opts.style, "style", "", "chroma style name, e.g. dracula")
	return cmd
}

func runFormat(w io.Writer, source string, opts *formatOptions) error {
	formatted := formatter.New(formatter.WithIndent(opts.indent)).Format(lexer.Tokenize(source))
	var theme highlight.Theme
	switch {
	case opts.html:
		theme = highlight.HTMLTheme()
		theme.Standalone = true
	case opts.highlight:
		theme = highlight.ANSITheme(!opts.light)
	default:
		_, err := fmt.Fprintln(w, formatted)
		return err
	}
	if opts.style != "" {
		theme.Style = opts.style
	}
	return render(w, formatted, theme)
}

func render(w io.Writer, formatted string, theme highlight.Theme) error {
	if err := highlight.Render(w, highlight.Classify(lexer.Tokenize(formatted)), theme); err != nil {
		return err
	}
	if theme.Formatter == highlight.HTML {
		return nil
	}
	_, err := fmt.Fprintln(w)
	return err
}

func download(ctx context.Context, fs afs.Service, URL string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return "", fmt.Errorf("failed to read %v: %w", URL, err)
	}
	return string(data), nil
}
