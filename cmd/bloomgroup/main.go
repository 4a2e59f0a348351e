// Command bloomgroup runs the group-formation engine against a schema,
// policy, and features file, printing the resulting RunResult as JSON.
package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := Execute(); err != nil {
		log.Error().Err(err).Msg("bloomgroup failed")
		os.Exit(1)
	}
}
