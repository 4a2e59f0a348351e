package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validatePolicyCmd = &cobra.Command{
	Use:   "validate-policy",
	Short: "Bind a policy document against a schema and report errors, without running the engine",
	RunE:  runValidatePolicy,
}

func init() {
	validatePolicyCmd.Flags().StringVar(&schemaPath, "schema", "", "field schema JSON file (required)")
	validatePolicyCmd.Flags().StringVar(&policyPath, "policy", "", "policy JSON or YAML file (required)")
	_ = validatePolicyCmd.MarkFlagRequired("schema")
	_ = validatePolicyCmd.MarkFlagRequired("policy")

	rootCmd.AddCommand(validatePolicyCmd)
}

func runValidatePolicy(cmd *cobra.Command, args []string) error {
	_, pol, err := loadSchemaAndPolicy(schemaPath, policyPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "policy valid: group_size=%d min=%d max=%d policy_hash=%s\n",
		pol.GroupSize, pol.Fallback.MinGroupSize, pol.Fallback.MaxGroupSize, pol.PolicyHash)
	return nil
}
