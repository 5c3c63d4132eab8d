package ossim

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Imanue001/Os-simulator/logging"
	"github.com/Imanue001/Os-simulator/service/producer"
	"github.com/Imanue001/Os-simulator/service/worker"
)

// Config is a serialisable representation of the simulator configuration. It
// can be populated from YAML or JSON; the zero-value of any omitted section
// inherits the package defaults. Durations are expressed in milliseconds so
// that plain integers round-trip through config files.
type Config struct {
	Buffer    BufferConfig    `json:"buffer" yaml:"buffer"`
	Resources ResourcesConfig `json:"resources" yaml:"resources"`
	Scheduler SchedulerConfig `json:"scheduler" yaml:"scheduler"`
	Producer  ProducerConfig  `json:"producer" yaml:"producer"`
	Worker    WorkerConfig    `json:"worker" yaml:"worker"`
	Logging   logging.Config  `json:"logging" yaml:"logging"`
}

// BufferConfig configures the bounded process queue.
type BufferConfig struct {
	// Capacity is the fixed queue size; producers stall once it is reached.
	Capacity int `json:"capacity" yaml:"capacity"`

	// RetryDelayMs is the backoff before a rejected process is requeued.
	RetryDelayMs int `json:"retryDelayMs" yaml:"retryDelayMs"`
}

// ResourcesConfig configures the admission controller.
type ResourcesConfig struct {
	// Totals is the fixed capacity per resource class.
	Totals []int `json:"totals" yaml:"totals"`
}

// SchedulerConfig configures the Round-Robin scheduler.
type SchedulerConfig struct {
	Quantum int `json:"quantum" yaml:"quantum"`
}

// ProducerConfig configures the process generator loop.
type ProducerConfig struct {
	IntervalMs int `json:"intervalMs" yaml:"intervalMs"`
	IdlePollMs int `json:"idlePollMs" yaml:"idlePollMs"`
	BurstMin   int `json:"burstMin" yaml:"burstMin"`
	BurstMax   int `json:"burstMax" yaml:"burstMax"`
	DemandMin  int `json:"demandMin" yaml:"demandMin"`
	DemandMax  int `json:"demandMax" yaml:"demandMax"`
}

// WorkerConfig configures the virtual CPU loop.
type WorkerConfig struct {
	IdlePollMs int `json:"idlePollMs" yaml:"idlePollMs"`
}

// DefaultConfig returns a Config populated with the simulator defaults:
// a capacity-10 buffer, three resource classes of 10 units each, quantum 2,
// a 2 second inter-arrival interval and a 200 ms pause poll.
func DefaultConfig() *Config {
	return &Config{
		Buffer:    BufferConfig{Capacity: 10, RetryDelayMs: 500},
		Resources: ResourcesConfig{Totals: []int{10, 10, 10}},
		Scheduler: SchedulerConfig{Quantum: 2},
		Producer: ProducerConfig{
			IntervalMs: 2000,
			IdlePollMs: 200,
			BurstMin:   2,
			BurstMax:   6,
			DemandMin:  1,
			DemandMax:  2,
		},
		Worker:  WorkerConfig{IdlePollMs: 200},
		Logging: logging.Config{Level: "info"},
	}
}

// Validate returns an aggregated error describing invalid settings or nil.
// These are the only fatal conditions in the simulator; everything at run
// time is a policy outcome, not an error.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Buffer.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("buffer.capacity must be > 0, got %d", c.Buffer.Capacity))
	}
	if c.Buffer.RetryDelayMs <= 0 {
		errs = append(errs, fmt.Errorf("buffer.retryDelayMs must be > 0, got %d", c.Buffer.RetryDelayMs))
	}
	if len(c.Resources.Totals) == 0 {
		errs = append(errs, errors.New("resources.totals requires at least one class"))
	}
	for i, total := range c.Resources.Totals {
		if total < 0 {
			errs = append(errs, fmt.Errorf("resources.totals[%d] must not be negative, got %d", i, total))
		}
	}
	if c.Scheduler.Quantum <= 0 {
		errs = append(errs, fmt.Errorf("scheduler.quantum must be > 0, got %d", c.Scheduler.Quantum))
	}
	if c.Producer.IntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("producer.intervalMs must be > 0, got %d", c.Producer.IntervalMs))
	}
	if c.Producer.IdlePollMs <= 0 {
		errs = append(errs, fmt.Errorf("producer.idlePollMs must be > 0, got %d", c.Producer.IdlePollMs))
	}
	if c.Producer.BurstMin <= 0 || c.Producer.BurstMax < c.Producer.BurstMin {
		errs = append(errs, fmt.Errorf("producer burst range [%d,%d] is invalid", c.Producer.BurstMin, c.Producer.BurstMax))
	}
	if c.Producer.DemandMin < 0 || c.Producer.DemandMax < c.Producer.DemandMin {
		errs = append(errs, fmt.Errorf("producer demand range [%d,%d] is invalid", c.Producer.DemandMin, c.Producer.DemandMax))
	}
	if c.Worker.IdlePollMs <= 0 {
		errs = append(errs, fmt.Errorf("worker.idlePollMs must be > 0, got %d", c.Worker.IdlePollMs))
	}
	return errors.Join(errs...)
}

// LoadConfig reads a YAML config file, overlaying the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// producerConfig maps the serialisable section onto the producer service
// config; the demand vector length always matches the resource class count.
func (c *Config) producerConfig() producer.Config {
	return producer.Config{
		Interval:  time.Duration(c.Producer.IntervalMs) * time.Millisecond,
		IdlePoll:  time.Duration(c.Producer.IdlePollMs) * time.Millisecond,
		BurstMin:  c.Producer.BurstMin,
		BurstMax:  c.Producer.BurstMax,
		DemandMin: c.Producer.DemandMin,
		DemandMax: c.Producer.DemandMax,
		Classes:   len(c.Resources.Totals),
	}
}

func (c *Config) workerConfig() worker.Config {
	return worker.Config{
		IdlePoll: time.Duration(c.Worker.IdlePollMs) * time.Millisecond,
	}
}
