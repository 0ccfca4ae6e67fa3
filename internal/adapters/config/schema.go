package config

// Configfile represents the structure of the embedcache.yaml configuration file.
// Unset fields keep their defaults.
type Configfile struct {
	Version  string     `yaml:"version"`
	CacheDir *string    `yaml:"cache_dir"`
	Topology *string    `yaml:"topology"`
	Search   *SearchDTO `yaml:"search"`
}

// SearchDTO represents the embedding search budget in the configuration.
type SearchDTO struct {
	Timeout       *string `yaml:"timeout"`
	RasterBreadth *int    `yaml:"raster_breadth"`
	MaxNumEmb     *int    `yaml:"max_num_emb"`
}
