// Package featuretable loads raw survey responses from CSV or JSON into
// normalized FeatureRecords, collecting per-row DataErrors without
// aborting the load.
package featuretable
