// Package parser turns positional args, environment and cluster file into model.Config and validates it
package parser

import (
	"os"
	"strings"

	"github.com/UnendingLoop/minigrep/internal/model"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// LookupEnvFunc has the signature of os.LookupEnv.
type LookupEnvFunc func(key string) (string, bool)

// Build resolves query and file path from positional args. Nothing is read from disk here.
func Build(args []string, lookupEnv LookupEnvFunc) (*model.Config, error) {
	if len(args) < 2 {
		return nil, model.ErrNotEnoughArgs
	}
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}

	cfg := &model.Config{
		Query:         args[0],
		FilePath:      args[1],
		CaseSensitive: true,
		Color:         model.ColorNever,
	}

	// важен только факт наличия переменной, значение игнорируется
	if _, ignoreCase := lookupEnv(model.IgnoreCaseEnv); ignoreCase {
		cfg.CaseSensitive = false
	}

	return cfg, nil
}

func ParseColorMode(value string) (model.ColorMode, error) {
	switch mode := model.ColorMode(strings.ToLower(value)); mode {
	case model.ColorNever, model.ColorAlways, model.ColorAuto:
		return mode, nil
	default:
		return "", errors.Errorf("unknown color mode %q: use 'never', 'always' or 'auto'", value)
	}
}

// LoadCluster reads nodes and quorum from a YAML file.
func LoadCluster(path string) (*model.Cluster, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading cluster file %q: %w", path, err)
	}

	var cluster model.Cluster
	if err := yaml.Unmarshal(raw, &cluster); err != nil {
		return nil, errors.Errorf("parsing cluster file %q: %w", path, err)
	}
	return &cluster, nil
}

// MergeCluster adds nodes from src to dst (dropping duplicates); quorum from flags wins if set.
func MergeCluster(dst *model.Cluster, src *model.Cluster) {
	if src == nil {
		return
	}
	for _, node := range src.Nodes {
		_ = dst.Nodes.Set(node)
	}
	if dst.Quorum == 0 {
		dst.Quorum = src.Quorum
	}
}

// ValidateCluster checks quorum against the node list. A cluster without nodes means local search.
func ValidateCluster(c *model.Cluster) error {
	nodes := model.NodesList{}
	for _, node := range c.Nodes {
		_ = nodes.Set(strings.TrimSuffix(strings.TrimSpace(node), "/"))
	}
	c.Nodes = nodes

	if !c.Distributed() {
		if c.Quorum != 0 {
			return errors.Errorf("%w: %d set without any node", model.ErrBadQuorum, c.Quorum)
		}
		return nil
	}

	// кворум по умолчанию - простое большинство
	if c.Quorum == 0 {
		c.Quorum = len(c.Nodes)/2 + 1
	}
	if c.Quorum < 0 || c.Quorum > len(c.Nodes) {
		return errors.Errorf("%w: %d for %d node(s)", model.ErrBadQuorum, c.Quorum, len(c.Nodes))
	}
	return nil
}

// ValidateNodeAddress checks the listen address of a search node.
func ValidateNodeAddress(addr string) error {
	if strings.TrimSpace(addr) == "" {
		return errors.New("empty node address")
	}
	return nil
}
