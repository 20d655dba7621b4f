package domain

// Config is the subset of settings the request layer needs at runtime.
type Config struct {
	PageSize    int    `yaml:"pageSize"`
	MaxPageSize int    `yaml:"maxPageSize"`
	MediaURL    string `yaml:"mediaURL"`
}
