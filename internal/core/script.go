package core

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// DefaultKey names the list a script runs against when it does not pick one.
const DefaultKey = "list"

// Script is a scripted sequence of list commands.
type Script struct {
	Name    string                   `yaml:"name"`
	Key     string                   `yaml:"key"`
	Initial []int                    `yaml:"initial"`
	Steps   []map[string]interface{} `yaml:"steps"`
}

// Step records one executed command and the list contents after it.
type Step struct {
	Command string      `msgpack:"command"`
	Status  string      `msgpack:"status"`
	Value   interface{} `msgpack:"value,omitempty"`
	Message string      `msgpack:"message,omitempty"`
	Values  []int       `msgpack:"values"`
	Size    int         `msgpack:"size"`
}

// Trace is the outcome of running a Script.
type Trace struct {
	Name    string `msgpack:"name"`
	Initial []int  `msgpack:"initial"`
	Steps   []Step `msgpack:"steps"`
}

// ParseScript decodes a YAML script.
func ParseScript(data []byte) (*Script, error) {
	script := &Script{}
	if err := yaml.Unmarshal(data, script); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	for i, step := range script.Steps {
		if _, ok := step["command"].(string); !ok {
			return nil, fmt.Errorf("step %d: invalid or missing 'command' field", i)
		}
	}
	return script, nil
}

// LoadScript reads and parses a YAML script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	script, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if script.Name == "" {
		script.Name = path
	}
	return script, nil
}

// DemoScript builds the list, prints it, clears it and prints it again.
func DemoScript() *Script {
	step := func(command string, value int) map[string]interface{} {
		return map[string]interface{}{"command": command, "value": value}
	}
	return &Script{
		Name: "demo",
		Steps: []map[string]interface{}{
			step("INSERT_HEAD", 100),
			step("INSERT_TAIL", 101),
			step("INSERT_HEAD", 99),
			step("INSERT_HEAD", 98),
			step("INSERT_TAIL", 102),
			{"command": "VALUES"},
			{"command": "CLEAR"},
			{"command": "VALUES"},
		},
	}
}

// Run executes every step against the handler's database. A failing step is
// recorded in the trace and does not stop the run.
func (s *Script) Run(h *CommandHandler) (*Trace, error) {
	if h == nil || h.Database == nil {
		return nil, errors.New("database is not initialized")
	}

	key := s.Key
	if key == "" {
		key = DefaultKey
	}
	if err := h.Database.Set(key, s.Initial); err != nil {
		return nil, err
	}

	trace := &Trace{Name: s.Name, Initial: append([]int{}, s.Initial...)}
	for _, raw := range s.Steps {
		request := make(map[string]interface{}, len(raw)+1)
		for k, v := range raw {
			request[k] = v
		}
		if _, ok := request["key"]; !ok {
			request["key"] = key
		}

		command, _ := request["command"].(string)
		step := Step{Command: strings.ToUpper(command)}

		response, err := h.HandleCommand(request)
		if err != nil {
			step.Status = "ERROR"
			step.Message = err.Error()
		} else {
			step.Status = response["status"].(string)
			step.Value = response["value"]
		}

		values, err := h.Database.Values(key)
		if err != nil {
			return nil, err
		}
		step.Values = values
		step.Size = len(values)
		trace.Steps = append(trace.Steps, step)
	}
	return trace, nil
}

// WriteText prints one line per step.
func (t *Trace) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "# %s %v\n", t.Name, t.Initial); err != nil {
		return err
	}
	for _, step := range t.Steps {
		line := fmt.Sprintf("%-12s %-5s size=%d %v", step.Command, step.Status, step.Size, step.Values)
		if step.Value != nil {
			line += fmt.Sprintf(" value=%v", step.Value)
		}
		if step.Message != "" {
			line += " error=" + step.Message
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// EncodeTrace serializes a trace with msgpack.
func EncodeTrace(t *Trace) ([]byte, error) {
	return msgpack.Marshal(t)
}

// DecodeTrace deserializes a msgpack trace.
func DecodeTrace(data []byte) (*Trace, error) {
	t := &Trace{}
	if err := msgpack.Unmarshal(data, t); err != nil {
		return nil, err
	}
	return t, nil
}
