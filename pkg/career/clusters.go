package career

import (
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Cluster is one curated career cluster shown on the exploration page.
type Cluster struct {
	Name string `json:"name" yaml:"name"`
	Code string `json:"code" yaml:"code"`
}

// DefaultClusters is the built-in curated list used when no clusters file
// is configured or readable.
func DefaultClusters() []Cluster {
	return []Cluster{
		{Name: "Healthcare", Code: "08"},
		{Name: "Information Technology", Code: "11"},
		{Name: "Business & Finance", Code: "04"},
		{Name: "Engineering", Code: "21"},
	}
}

// LoadClusters reads the curated cluster list from a YAML file, degrading
// to the built-in defaults on any problem.
func LoadClusters(path string) []Cluster {
	if path == "" {
		return DefaultClusters()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warnf("Failed to read clusters file %s: %v. Using built-in clusters.", path, err)
		return DefaultClusters()
	}
	var clusters []Cluster
	if err := yaml.Unmarshal(data, &clusters); err != nil {
		log.Warnf("Failed to parse clusters file %s: %v. Using built-in clusters.", path, err)
		return DefaultClusters()
	}
	if len(clusters) == 0 {
		return DefaultClusters()
	}
	return clusters
}
