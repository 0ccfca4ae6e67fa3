package topology

import (
	"os"

	"github.com/anneal-lab/embedcache/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Topologyfile is the on-disk description of a processor graph.
type Topologyfile struct {
	ID     string         `yaml:"id"`
	Tiling *domain.Tiling `yaml:"tiling"`
	Nodes  []int          `yaml:"nodes"`
	Edges  [][2]int       `yaml:"edges"`
}

// LoadFile reads a YAML topology file.
func LoadFile(path string) (*domain.Topology, error) {
	//nolint:gosec // path is user supplied on purpose
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrTopologyReadFailed.Error()), "path", path)
	}

	topo, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return topo, nil
}

// Parse decodes a YAML topology document.
func Parse(data []byte) (*domain.Topology, error) {
	var file Topologyfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, domain.ErrTopologyParseFailed.Error())
	}

	g := domain.NewGraph()
	for _, n := range file.Nodes {
		if n < 0 {
			return nil, zerr.With(domain.ErrTopologyParseFailed, "node", n)
		}
		g.AddNode(n)
	}
	for _, e := range file.Edges {
		if e[0] < 0 || e[1] < 0 || e[0] == e[1] {
			return nil, zerr.With(domain.ErrTopologyParseFailed, "edge", e)
		}
		g.AddEdge(e[0], e[1])
	}

	return domain.NewTopology(file.ID, g, file.Tiling)
}
