// Package normalize turns raw survey responses into FeatureRecords:
// per-field parsing, wildcard/synonym expansion, and age-band
// computation, producing one FeatureRecord per response.
package normalize
