package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

type ProfilesCmd struct {
	profilesPath string
	profiles     ProfilesFunc
	output       io.Writer
}

func NewProfilesCmd(profiles ProfilesFunc, output io.Writer, defaultPath string) *cobra.Command {
	pc := &ProfilesCmd{profiles: profiles, output: output}
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List scoring profiles and their extra rules",
		Args:  cobra.NoArgs,
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.profilesPath, "profiles-file", defaultPath, "Path to the scoring profiles ini file")

	return cmd
}

func (pc *ProfilesCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	registry, err := pc.profiles(pc.profilesPath)
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	names, err := registry.GetProfiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}

	for _, name := range names {
		settings, err := registry.GetSettings(ctx, name)
		if err != nil {
			return err
		}

		ruleIDs := make([]string, 0, settings.Rules.Len())
		for _, r := range settings.Rules.Rules() {
			ruleIDs = append(ruleIDs, r.ID)
		}
		rules := "none"
		if len(ruleIDs) > 0 {
			rules = strings.Join(ruleIDs, ", ")
		}

		fmt.Fprintf(pc.output, "%s\n  margins: low < %v%%, strong > %v%%\n  rules: %s\n",
			name, settings.LowMarginPercent, settings.StrongMarginPercent, rules)
	}

	return nil
}
