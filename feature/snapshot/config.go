package snapshot

// Config holds the default snapshot input locations.
type Config struct {
	// Path1 is the path to the first snapshot CSV.
	Path1 string `mapstructure:"path_1" default:"data/snapshot_1.csv"`
	// Path2 is the path to the second snapshot CSV.
	Path2 string `mapstructure:"path_2" default:"data/snapshot_2.csv"`
}
