package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bloomgroup/engine/featuretable"
	"github.com/bloomgroup/engine/field"
	"github.com/bloomgroup/engine/normalize"
	"github.com/bloomgroup/engine/policy"
	"github.com/bloomgroup/engine/rundriver"
)

var (
	schemaPath   string
	policyPath   string
	featuresPath string
	parallelRun  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the group-formation engine over a schema, policy, and features file",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&schemaPath, "schema", "", "field schema JSON file (required)")
	runCmd.Flags().StringVar(&policyPath, "policy", "", "policy JSON or YAML file (required)")
	runCmd.Flags().StringVar(&featuresPath, "features", "", "features CSV or JSON file (required)")
	runCmd.Flags().BoolVar(&parallelRun, "parallel", false, "process subspaces concurrently")
	_ = runCmd.MarkFlagRequired("schema")
	_ = runCmd.MarkFlagRequired("policy")
	_ = runCmd.MarkFlagRequired("features")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	schema, pol, err := loadSchemaAndPolicy(schemaPath, policyPath)
	if err != nil {
		return err
	}

	table, err := loadFeatures(featuresPath, schema, pol)
	if err != nil {
		return err
	}
	for _, e := range table.Errors {
		log.Warn().Int("row", e.RowIndex).Err(e.Err).Msg("dropped row: normalization failed")
	}

	opts := []rundriver.Option{}
	if parallelRun {
		opts = append(opts, rundriver.WithParallel())
	}

	result := rundriver.Run(context.Background(), table.Records, pol, opts...)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func loadSchemaAndPolicy(schemaPath, policyPath string) (field.Schema, *policy.Policy, error) {
	schemaData, err := os.ReadFile(schemaPath)
	if err != nil {
		return field.Schema{}, nil, fmt.Errorf("read schema: %w", err)
	}
	schema, err := field.DecodeSchemaJSON(schemaData)
	if err != nil {
		return field.Schema{}, nil, fmt.Errorf("decode schema: %w", err)
	}
	if err := schema.Validate(); err != nil {
		return field.Schema{}, nil, fmt.Errorf("validate schema: %w", err)
	}

	policyData, err := os.ReadFile(policyPath)
	if err != nil {
		return field.Schema{}, nil, fmt.Errorf("read policy: %w", err)
	}
	doc, err := decodePolicyDoc(policyPath, policyData)
	if err != nil {
		return field.Schema{}, nil, fmt.Errorf("decode policy: %w", err)
	}

	pol, err := policy.Bind(schema, doc)
	if err != nil {
		return field.Schema{}, nil, fmt.Errorf("bind policy: %w", err)
	}
	return schema, pol, nil
}

func decodePolicyDoc(path string, data []byte) (policy.Doc, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".yaml" || ext == ".yml" {
		return policy.DecodeYAML(data)
	}
	return policy.DecodeJSON(data)
}

func loadFeatures(path string, schema field.Schema, pol *policy.Policy) (featuretable.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return featuretable.Table{}, fmt.Errorf("open features: %w", err)
	}
	defer f.Close()

	flexible := normalize.NewFlexibleSet(pol.FlexibleAnswers)
	ageConfig := featuretable.AgeConfigFromPolicy(pol.AgeRules)
	normalizer := normalize.New(schema, flexible, ageConfig)

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return featuretable.LoadJSONRows(f, normalizer)
	}
	return featuretable.LoadCSV(f, normalizer)
}
