package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func selfCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "self",
		Short: "Show the active profile's identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			self, err := wire.Identity.Self(cmd.Context())
			if err != nil {
				return err
			}
			status := "not loaded"
			if self.Ready {
				status = "loaded"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:     %s\n", self.Person.Doc.Name)
			fmt.Fprintf(out, "Profile:  %s\n", self.Profile.ID)
			fmt.Fprintf(out, "URN:      %s\n", self.Person.URN)
			fmt.Fprintf(out, "Peer ID:  %s\n", self.Person.Signer)
			fmt.Fprintf(out, "Key:      %s (%s)\n", self.SigningKey, status)
			return nil
		},
	}
}
