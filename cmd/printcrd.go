package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	groupsv1 "az-group-manager/pkg/apis/groups/v1"
)

func newPrintCRDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print-crd",
		Short: "Print the AzureGroupManager and AzureGroup CRDs as YAML",
		Long: `Prints the CustomResourceDefinitions of AzureGroupManager and AzureGroup
as a multi-document YAML stream, ready for kubectl apply -f -.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := groupsv1.MarshalCRDs()
			if err != nil {
				return fmt.Errorf("failed to render CRDs: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
