// Package policy parses and validates a PolicyDoc into the frozen
// Policy/AgeRules the rest of the engine is built against, including the
// policy_hash used to tag Explanations.
package policy
