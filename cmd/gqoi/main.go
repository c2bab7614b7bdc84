// Command gqoi encodes and decodes QOI images from the command line.
package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Borketh/qoivec"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gqoi: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gqoi",
		Short: "Encode and decode QOI images",
	}
	root.AddCommand(newEncCmd(), newDecCmd(), newInfoCmd())
	return root
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func newEncCmd() *cobra.Command {
	var output string
	var tier string
	var forceTier bool

	cmd := &cobra.Command{
		Use:   "enc <input>",
		Short: "Encode a PNG/JPEG/GIF image to QOI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if tier != "" {
				if err := qoivec.SetFeatureTier(tier, forceTier); err != nil {
					return err
				}
			}

			inputPath := args[0]
			in, err := openInput(inputPath)
			if err != nil {
				return err
			}
			defer in.Close()

			img, _, err := image.Decode(in)
			if err != nil {
				return fmt.Errorf("enc: decoding input: %w", err)
			}

			if output == "" {
				if inputPath == "-" {
					output = "output.qoi"
				} else {
					output = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".qoi"
				}
			}
			out, err := openOutput(output)
			if err != nil {
				return err
			}
			defer out.Close()

			return qoivec.ImageEncode(out, img)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", `output path (default: <input>.qoi, "-" for stdout)`)
	cmd.Flags().StringVar(&tier, "tier", "", "force hashing kernel tier: scalar, x4, x8, x16")
	cmd.Flags().BoolVar(&forceTier, "force-tier", false, "allow --tier to exceed the detected hardware tier")
	return cmd
}

func newDecCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "dec <input.qoi>",
		Short: "Decode a QOI image to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]
			in, err := openInput(inputPath)
			if err != nil {
				return err
			}
			defer in.Close()

			img, err := qoivec.ImageDecode(in)
			if err != nil {
				return fmt.Errorf("dec: decoding input: %w", err)
			}

			if output == "" {
				if inputPath == "-" {
					output = "output.png"
				} else {
					output = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".png"
				}
			}
			out, err := openOutput(output)
			if err != nil {
				return err
			}
			defer out.Close()

			return png.Encode(out, img)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", `output path (default: <input>.png, "-" for stdout)`)
	return cmd
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <input.qoi>",
		Short: "Display a QOI file's header fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]
			in, err := openInput(inputPath)
			if err != nil {
				return err
			}
			defer in.Close()

			cfg, err := qoivec.DecodeConfig(in)
			if err != nil {
				return fmt.Errorf("info: %w", err)
			}

			name := inputPath
			if inputPath == "-" {
				name = "<stdin>"
			}
			fmt.Printf("File:       %s\n", name)
			fmt.Printf("Dimensions: %d x %d\n", cfg.Width, cfg.Height)
			fmt.Printf("Tier:       %s\n", qoivec.ActiveFeatureTier())
			return nil
		},
	}
}
