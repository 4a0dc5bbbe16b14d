package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/yieldpath/pkg/errors"
	yio "github.com/matzehuels/yieldpath/pkg/io"
	"github.com/matzehuels/yieldpath/pkg/network"
)

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var to, output string

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a network to another input format",
		Long: `Convert validates a network and writes it back out in canonical form:
locations in input order, neighbors symmetric and de-duplicated. Without
--output the result goes to stdout.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: inputFileCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := yio.ParseFormat(to)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidFormat, err, "--to")
			}
			return runConvert(cmd.Context(), cmd.OutOrStdout(), args[0], output, format)
		},
	}

	cmd.Flags().StringVar(&to, "to", string(yio.FormatJSON), "output format: json, toml, text")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	_ = cmd.RegisterFlagCompletionFunc("to", completeInputFormats)

	return cmd
}

func runConvert(ctx context.Context, stdout io.Writer, input, output string, format yio.Format) error {
	logger := loggerFromContext(ctx)

	records, err := loadRecords(input)
	if err != nil {
		return err
	}
	net, err := network.Build(records)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidNetwork, err, "invalid network")
	}
	logger.Debugf("Converting %d locations to %s", net.Len(), format)

	if output == "" {
		return yio.Write(stdout, net.Records(), format)
	}
	if err := yio.ExportFile(output, net.Records(), format); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "convert")
	}
	printSuccess("Converted %d locations to %s", net.Len(), format)
	printFile(output)
	printNextStep("Solve it", "yieldpath solve "+output)
	return nil
}
