package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/fbui/font"
	"github.com/gogpu/fbui/internal/fontcache"
)

type fontConvOpts struct {
	output   string
	size     float64
	bpp      uint8
	charset  string
	compress bool
}

func newFontConvCmd() *cobra.Command {
	opts := fontConvOpts{size: 16, bpp: 4, charset: "ascii"}
	cmd := &cobra.Command{
		Use:   "fontconv [face]",
		Short: "Convert a font face to the fbui bitmap format",
		Long: `Convert a TrueType or OpenType file, or one of the built-in faces
(basic, goregular, gobold, gomono), to a bitmap font file.

The charset is a comma separated list of "ascii", "latin1", Unicode script
or category names, code points (U+20AC) and ranges (0x30-0x39).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			key := fontcache.Key{
				Face:     args[0],
				Size:     opts.size,
				BPP:      opts.bpp,
				Charset:  opts.charset,
				Compress: opts.compress,
			}
			out := opts.output
			if out == "" {
				out = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0])) + ".fnt"
			}
			f, n, err := convertFont(key, out)
			if err != nil {
				return err
			}
			logger.Info("font written", "file", out, "glyphs", len(f.Glyphs),
				"ranges", len(f.Ranges), "height", f.Height, "bytes", n)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <face>.fnt)")
	cmd.Flags().Float64Var(&opts.size, "size", opts.size, "pixel size (ignored by the basic face)")
	cmd.Flags().Uint8Var(&opts.bpp, "bpp", opts.bpp, "coverage bits per pixel, 2 or 4")
	cmd.Flags().StringVar(&opts.charset, "charset", opts.charset, "code points to include")
	cmd.Flags().BoolVar(&opts.compress, "compress", false, "run-length code the glyph bitmaps")
	return cmd
}

// convertFont builds the font for key, writes it to out and returns it with
// the file size.
func convertFont(key fontcache.Key, out string) (*font.Font, int, error) {
	f, err := fontcache.Build(key)
	if err != nil {
		return nil, 0, err
	}
	data, err := f.MarshalBinary()
	if err != nil {
		return nil, 0, err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return nil, 0, fmt.Errorf("write font: %w", err)
	}
	return f, len(data), nil
}
