package persist

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/gastrodon/ctrneat/neat/genetics"
)

// manifest records the metadata a bare directory of genome files can't
// carry on its own: the innovation head to resume reproduction from.
type manifest struct {
	InnoHead int `yaml:"inno_head"`
}

const manifestName = "manifest.yaml"

// ToFiles writes one genome per file into dir (created if absent), named
// genome-<index>.yaml, alongside a manifest.yaml recording innoHead.
func ToFiles(dir string, genomes []*genetics.Genome, innoHead int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "persist: create population directory %q", dir)
	}

	for i, g := range genomes {
		data, err := EncodeGenome(g)
		if err != nil {
			return errors.Wrapf(err, "persist: encode genome %d", i)
		}
		path := filepath.Join(dir, fmt.Sprintf("genome-%d.yaml", i))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return errors.Wrapf(err, "persist: write %q", path)
		}
	}

	manifestData, err := yaml.Marshal(manifest{InnoHead: innoHead})
	if err != nil {
		return errors.Wrap(ErrSerialization, err.Error())
	}
	if err := os.WriteFile(filepath.Join(dir, manifestName), manifestData, 0o644); err != nil {
		return errors.Wrapf(err, "persist: write manifest in %q", dir)
	}
	return nil
}

// genomeFileIndex extracts the numeric index from a "genome-<index>.yaml"
// filename, so files sort numerically rather than lexically (genome-2
// before genome-10).
func genomeFileIndex(name string) int {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(name, "genome-"), ".yaml")
	idx, err := strconv.Atoi(trimmed)
	if err != nil {
		return -1
	}
	return idx
}

// FromFiles reads a population directory written by ToFiles, returning the
// genomes (in filename order) and the recorded innovation head. Returns an
// error if the directory holds no genome files.
func FromFiles(dir string) ([]*genetics.Genome, int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "persist: read population directory %q", dir)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || e.Name() == manifestName {
			continue
		}
		if !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Slice(names, func(i, j int) bool {
		return genomeFileIndex(names[i]) < genomeFileIndex(names[j])
	})

	if len(names) == 0 {
		return nil, 0, errors.Errorf("persist: no genome files in %q", dir)
	}

	genomes := make([]*genetics.Genome, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, 0, errors.Wrapf(err, "persist: read %q", name)
		}
		g, err := DecodeGenome(data)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "persist: decode %q", name)
		}
		genomes = append(genomes, g)
	}

	innoHead := 0
	manifestPath := filepath.Join(dir, manifestName)
	if data, err := os.ReadFile(manifestPath); err == nil {
		var m manifest
		if err := yaml.Unmarshal(data, &m); err == nil {
			innoHead = m.InnoHead
		}
	}

	return genomes, innoHead, nil
}
