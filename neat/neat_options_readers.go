package neat

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	"github.com/gastrodon/ctrneat/neat/math"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// LoadYAMLOptions is to load NEAT options encoded as YAML file
func LoadYAMLOptions(r io.Reader) (*Options, error) {
	content, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	// read options
	opts := *DefaultOptions()
	if err = yaml.Unmarshal(content, &opts); err != nil {
		return nil, errors.Wrap(err, "failed to decode NEAT options from YAML")
	}

	// initialize logger
	if err = InitLogger(opts.LogLevel); err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}

	// read node activators
	if err = opts.initNodeActivators(); err != nil {
		return nil, errors.Wrap(err, "failed to read node activators")
	}

	if err = opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid NEAT options")
	}

	return &opts, nil
}

// LoadNeatOptions Loads NEAT options configuration from provided reader encoded in the legacy plain text format (.neat)
func LoadNeatOptions(r io.Reader) (*Options, error) {
	c := DefaultOptions()
	// read configuration
	var name string
	var param string
	for {
		_, err := fmt.Fscanf(r, "%s %v\n", &name, &param)
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		switch name {
		case "mutate_connection_prob":
			c.MutateConnection = cast.ToFloat64(param)
		case "mutate_bisection_prob":
			c.MutateBisection = cast.ToFloat64(param)
		case "mutate_weight_prob":
			c.MutateWeight = cast.ToFloat64(param)
		case "perturb_weight_prob":
			c.PerturbWeight = cast.ToFloat64(param)
		case "new_weight_prob":
			c.NewWeight = cast.ToFloat64(param)
		case "new_disabled_prob":
			c.NewDisabled = cast.ToFloat64(param)
		case "keep_disabled_prob":
			c.KeepDisabled = cast.ToFloat64(param)
		case "pick_l_eq_prob":
			c.PickLEq = cast.ToFloat64(param)
		case "pick_l_ne_prob":
			c.PickLNEq = cast.ToFloat64(param)
		case "disjoint_coeff":
			c.DisjointCoeff = cast.ToFloat64(param)
		case "excess_coeff":
			c.ExcessCoeff = cast.ToFloat64(param)
		case "mutdiff_coeff":
			c.MutdiffCoeff = cast.ToFloat64(param)
		case "compat_threshold":
			c.CompatThreshold = cast.ToFloat64(param)
		case "survival_thresh":
			c.SurvivalThresh = cast.ToFloat64(param)
		case "pop_size":
			c.PopSize = cast.ToInt(param)
		case "newlink_tries":
			c.NewLinkTries = cast.ToInt(param)
		case "print_every":
			c.PrintEvery = cast.ToInt(param)
		case "num_runs":
			c.NumRuns = cast.ToInt(param)
		case "num_generations":
			c.NumGenerations = cast.ToInt(param)
		case "epoch_executor":
			c.EpochExecutorType = EpochExecutorType(param)
		case "genome_compat_method":
			c.GenCompatMethod = GenomeCompatibilityMethod(param)
		case "log_level":
			c.LogLevel = param
		default:
			return nil, errors.Errorf("unknown configuration parameter found: %s = %s", name, param)
		}
	}
	// initialize logger
	if err := InitLogger(c.LogLevel); err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}

	if err := c.initNodeActivators(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// ReadNeatOptionsFromFile reads NEAT options from specified configFilePath automatically resolving config file encoding.
func ReadNeatOptionsFromFile(configFilePath string) (*Options, error) {
	configFile, err := os.Open(configFilePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open config file")
	}
	defer func() { _ = configFile.Close() }()
	fileName := configFile.Name()
	if strings.HasSuffix(fileName, "yml") || strings.HasSuffix(fileName, "yaml") {
		return LoadYAMLOptions(configFile)
	}
	return LoadNeatOptions(configFile)
}

// set default values for activator type and its probability of selection
func (o *Options) initNodeActivators() (err error) {
	if len(o.NodeActivatorsWithProbs) == 0 {
		o.NodeActivators = []math.NodeActivationType{math.SigmoidSteepenedActivation}
		o.NodeActivatorsProb = []float64{1.0}
		return nil
	}
	// create activators
	actFns := o.NodeActivatorsWithProbs
	o.NodeActivators = make([]math.NodeActivationType, len(actFns))
	o.NodeActivatorsProb = make([]float64, len(actFns))
	for i, line := range actFns {
		fields := strings.Fields(line)
		if o.NodeActivators[i], err = math.NodeActivators.ActivationTypeFromName(fields[0]); err != nil {
			return err
		}
		if o.NodeActivatorsProb[i], err = strconv.ParseFloat(fields[1], 64); err != nil {
			return err
		}
	}
	return nil
}
