package main

import (
	"github.com/spf13/cobra"

	"github.com/safarshare/safar/internal/flow"
)

func journeyCmd() *cobra.Command {
	def := mustFlow(flow.NameJourney)
	cmd := &cobra.Command{
		Use:   "journey",
		Short: "Post a journey with seats and delivery space",
	}
	cmd.AddCommand(wizardCmd("post", "Post a journey", def))
	cmd.AddCommand(listCmd(def))
	return cmd
}
