package commands

import (
	"github.com/spf13/cobra"

	"rad/internal/crypto"
	"rad/internal/domain"
)

// parseTarget validates the urn argument and the optional --peer flag.
func parseTarget(urnArg, peerFlag string) (domain.URN, domain.PeerID, error) {
	urn, err := crypto.ParseURN(urnArg)
	if err != nil {
		return "", "", err
	}
	if peerFlag == "" {
		return urn, "", nil
	}
	peer, err := crypto.ParsePeerID(peerFlag)
	if err != nil {
		return "", "", err
	}
	return urn, peer, nil
}

func trackCmd() *cobra.Command {
	var peer string
	cmd := &cobra.Command{
		Use:   "track <urn>",
		Short: "Track a remote identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			urn, peerID, err := parseTarget(args[0], peer)
			if err != nil {
				return err
			}
			added, err := wire.Tracking.Track(cmd.Context(), urn, peerID)
			if err != nil {
				return err
			}
			target := console.Highlight(urn.String())
			if peerID != "" {
				target += " via " + console.Highlight(peerID.String())
			}
			if !added {
				console.Info("Already tracking " + target)
				return nil
			}
			console.Success("Tracking relationship " + target + " established")
			return nil
		},
	}
	cmd.Flags().StringVar(&peer, "peer", "", "only track this peer of the identity")
	return cmd
}
