package domain

// Config is the contents of embedcache.yaml.
type Config struct {
	Version  string        `yaml:"version"`
	CacheDir string        `yaml:"cache_dir"`
	Topology string        `yaml:"topology"`
	Search   SearchOptions `yaml:"search"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Version:  "1",
		CacheDir: CacheDirName,
		Topology: DefaultTopology,
		Search:   DefaultSearchOptions(),
	}
}
