package replay

import (
	"bytes"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Repeat  int           `yaml:"repeat"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	Steps   []StepConfig  `yaml:"steps"`
}

type LogConfig struct {
	Steps bool `yaml:"steps"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type StepConfig struct {
	Op     string        `yaml:"op"`
	List   string        `yaml:"list"`
	From   string        `yaml:"from,omitempty"`   // append only
	Values []string      `yaml:"values,omitempty"` // push_back/push_front only
	Expect *ExpectConfig `yaml:"expect,omitempty"`
}

type ExpectConfig struct {
	Value  *string  `yaml:"value,omitempty"`
	Absent bool     `yaml:"absent,omitempty"`
	Len    *int     `yaml:"len,omitempty"`
	Values []string `yaml:"values,omitempty"`
}

const (
	opPushBack  = "push_back"
	opPushFront = "push_front"
	opPopFront  = "pop_front"
	opPopBack   = "pop_back"
	opFront     = "front"
	opBack      = "back"
	opAppend    = "append"
	opClear     = "clear"
	opLen       = "len"
	opDump      = "dump"
	opDrain     = "drain"
)

// ops that return a single optional value
func isValueOp(op string) bool {
	switch op {
	case opPopFront, opPopBack, opFront, opBack:
		return true
	}
	return false
}

func isKnownOp(op string) bool {
	switch op {
	case opPushBack, opPushFront, opAppend, opClear, opLen, opDump, opDrain:
		return true
	}
	return isValueOp(op)
}

func loadConfigFile(p string) (*Config, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	return LoadConfig(b)
}

// LoadConfig decodes and validates a yaml scenario. Unknown keys are errors.
func LoadConfig(b []byte) (*Config, error) {
	m := make(map[string]any)
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("failed to decode yaml config, %w", err)
	}

	cfg := new(Config)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true, // allow `values: [1, 2]`
		TagName:          "yaml",
		Result:           cfg,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init yaml decoder, %w", err)
	}
	if err := decoder.Decode(m); err != nil {
		return nil, fmt.Errorf("failed to decode yaml struct, %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Repeat < 0 {
		return fmt.Errorf("negative repeat %d", c.Repeat)
	}
	if c.Repeat == 0 {
		c.Repeat = 1
	}
	for i, s := range c.Steps {
		if err := s.validate(); err != nil {
			return &StepError{Index: i, Op: s.Op, Err: err}
		}
	}
	return nil
}

func (s *StepConfig) validate() error {
	if !isKnownOp(s.Op) {
		return ErrUnknownOp
	}
	if len(s.List) == 0 {
		return invalidStepf("missing list name")
	}
	switch s.Op {
	case opAppend:
		if len(s.From) == 0 {
			return invalidStepf("append requires from")
		}
	case opPushBack, opPushFront:
		if len(s.Values) == 0 {
			return invalidStepf("%s requires values", s.Op)
		}
	}
	if s.Op != opAppend && len(s.From) > 0 {
		return invalidStepf("from is only valid for append")
	}
	if s.Op != opPushBack && s.Op != opPushFront && len(s.Values) > 0 {
		return invalidStepf("values is only valid for push ops")
	}

	if e := s.Expect; e != nil {
		if (e.Value != nil || e.Absent) && !isValueOp(s.Op) {
			return invalidStepf("expect.value/absent is not valid for %s", s.Op)
		}
		if e.Value != nil && e.Absent {
			return invalidStepf("expect.value conflicts with expect.absent")
		}
		if e.Values != nil && s.Op != opDump && s.Op != opDrain {
			return invalidStepf("expect.values is only valid for dump and drain")
		}
		if e.Len != nil && *e.Len < 0 {
			return invalidStepf("negative expect.len")
		}
	}
	return nil
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func templateConfig() *Config {
	return &Config{
		Repeat: 1,
		Log:    LogConfig{Steps: true},
		Steps: []StepConfig{
			{Op: opPushBack, List: "a", Values: []string{"9", "10", "11"}, Expect: &ExpectConfig{Len: intPtr(3)}},
			{Op: opPopFront, List: "a", Expect: &ExpectConfig{Value: strPtr("9")}},
			{Op: opPushBack, List: "b", Values: []string{"12"}},
			{Op: opAppend, List: "a", From: "b", Expect: &ExpectConfig{Len: intPtr(3)}},
			{Op: opDump, List: "a", Expect: &ExpectConfig{Values: []string{"10", "11", "12"}}},
			{Op: opLen, List: "b", Expect: &ExpectConfig{Len: intPtr(0)}},
			{Op: opDrain, List: "a", Expect: &ExpectConfig{Values: []string{"10", "11", "12"}, Len: intPtr(0)}},
			{Op: opPopBack, List: "a", Expect: &ExpectConfig{Absent: true}},
		},
	}
}

func genConfigTemplate(o string) error {
	b := new(bytes.Buffer)
	encoder := yaml.NewEncoder(b)
	encoder.SetIndent(2)
	if err := encoder.Encode(templateConfig()); err != nil {
		return fmt.Errorf("failed to encode config, %w", err)
	}
	encoder.Close()

	if len(o) == 0 || o == "stdout" {
		_, err := os.Stdout.Write(b.Bytes())
		return err
	}
	if err := os.WriteFile(o, b.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file, %w", err)
	}
	return nil
}
