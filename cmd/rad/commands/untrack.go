package commands

import (
	"github.com/spf13/cobra"
)

func untrackCmd() *cobra.Command {
	var peer string
	cmd := &cobra.Command{
		Use:   "untrack <urn>",
		Short: "Stop tracking a remote identity",
		Long: "Remove the tracking relationship with <urn>. With --peer only the edge to\n" +
			"that peer is removed and it must exist; otherwise every edge is removed.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			urn, peerID, err := parseTarget(args[0], peer)
			if err != nil {
				return err
			}
			if peerID != "" {
				if err := wire.Tracking.Untrack(cmd.Context(), urn, peerID); err != nil {
					return err
				}
				console.Success("Tracking relationship " + console.Highlight(peerID.String()) +
					" removed for " + console.Highlight(urn.String()))
				return nil
			}
			if _, err := wire.Tracking.UntrackAll(cmd.Context(), urn); err != nil {
				return err
			}
			console.Success("Tracking relationships for " + console.Highlight(urn.String()) + " removed")
			return nil
		},
	}
	cmd.Flags().StringVar(&peer, "peer", "", "only untrack this peer")
	return cmd
}
