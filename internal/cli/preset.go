package cli

import (
	"bytes"

	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v3"
)

// PresetInfo is the JSON payload of the preset command.
type PresetInfo struct {
	Source string `json:"source"`
	Digest string `json:"digest"`
	Preset any    `json:"preset"`
}

// NewPresetCommand creates the preset command.
func NewPresetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "preset",
		Short: "Print the effective preset",
		Long: `Print the preset in effect after applying --preset (and its extends)
to the embedded default, as YAML. The output is itself a valid preset
file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreset(rootOpts, cmd)
		},
	}
}

func runPreset(opts *RootOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	preset := opts.Tables.Preset()

	if formatter.Format == "json" {
		return formatter.Success(PresetInfo{
			Source: opts.presetName(),
			Digest: opts.Tables.Digest(),
			Preset: preset.Value(),
		})
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(preset); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}
	if err := enc.Close(); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}
	_, err := formatter.Writer.Write(buf.Bytes())
	return err
}
