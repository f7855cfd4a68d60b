package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/streambook/streambook/internal/log"
	"github.com/streambook/streambook/pkg/notebook"
	"github.com/streambook/streambook/pkg/stream"
)

func materializeCmd() *cobra.Command {
	var (
		jsonOutput bool
		rawText    bool
	)

	cmd := cobra.Command{
		Use:   "materialize [file]",
		Short: "Turn a recorded chunk stream into notebook cells",
		Long: `Reads a stream of JSON chunks (text-start, text-delta, text-end,
finish), one per line, from a file or stdin, materializes the fenced
code blocks into cells, and prints the resulting notebook.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return errors.Wrapf(err, "failed to open %q", args[0])
				}
				defer func() { _ = f.Close() }()
				in = f
			}

			nb := notebook.New()
			editor := notebook.NewEditor(nb, notebook.NewLedger(), log.Get())
			dispatcher := stream.NewDispatcher(editor, log.Get())

			if rawText {
				if err := feedRaw(dispatcher, in); err != nil {
					return err
				}
			} else if err := feedChunks(dispatcher, in); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				data, err := json.MarshalIndent(nb.Cells(), "", "  ")
				if err != nil {
					return err
				}
				data = append(data, '\n')
				if _, err := out.Write(data); err != nil {
					return err
				}
			} else if _, err := out.Write(nb.MarshalMarkdown()); err != nil {
				return err
			}

			summary := color.New(color.FgGreen)
			_, _ = summary.Fprintf(cmd.ErrOrStderr(), "materialized %d cell(s)\n", len(nb.Cells()))

			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print cells as JSON instead of markdown.")
	cmd.Flags().BoolVar(&rawText, "raw", false, "Treat input as plain assistant text rather than JSON chunks.")

	return &cmd
}

func feedChunks(dispatcher *stream.Dispatcher, in io.Reader) error {
	dec := stream.NewDecoder(in)
	for {
		chunk, err := dec.Decode()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := dispatcher.OnChunk(chunk); err != nil {
			return err
		}
	}
}

// feedRaw wraps a plain text body in a single-delta stream.
func feedRaw(dispatcher *stream.Dispatcher, in io.Reader) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return errors.Wrap(err, "failed to read input")
	}

	for _, chunk := range []stream.Chunk{
		{Type: stream.ChunkTextStart, ID: "raw"},
		{Type: stream.ChunkTextDelta, ID: "raw", Delta: string(data)},
		{Type: stream.ChunkTextEnd, ID: "raw"},
	} {
		if err := dispatcher.OnChunk(chunk); err != nil {
			return err
		}
	}

	return nil
}
