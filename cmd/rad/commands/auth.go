package commands

import (
	"github.com/spf13/cobra"

	"rad/internal/services/auth"
)

func authCmd() *cobra.Command {
	var opts auth.Options
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Create a profile or unlock one into the ssh-agent",
		Long: "Without profiles, or with --init, create a new identity. Otherwise pick a\n" +
			"profile, load its key into the ssh-agent and make it active.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.Auth.Run(cmd.Context(), opts)
			return err
		},
	}
	cmd.Flags().BoolVar(&opts.Init, "init", false, "initialize a new identity")
	return cmd
}
