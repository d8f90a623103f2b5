package core

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/vskvj3/dlist/internal/datastructures"
	"github.com/vskvj3/dlist/internal/utils"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "dlist-core")
	if err != nil {
		panic(err)
	}
	utils.NewLogger(filepath.Join(dir, "dlist.log"), false)
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func TestCommandHandler(t *testing.T) {
	h := NewCommandHandler(NewDatabase())
	run := func(request map[string]interface{}) (map[string]interface{}, error) {
		request["key"] = "numbers"
		return h.HandleCommand(request)
	}

	t.Run("insert commands", func(t *testing.T) {
		for _, request := range []map[string]interface{}{
			{"command": "INSERT", "value": 10},
			{"command": "insert", "value": 20},
			{"command": "INSERT_HEAD", "value": int8(5)},
			{"command": "INSERT_TAIL", "value": uint16(30)},
		} {
			response, err := run(request)
			require.NoError(t, err)
			assert.Equal(t, "OK", response["status"])
		}

		response, err := run(map[string]interface{}{"command": "VALUES"})
		require.NoError(t, err)
		assert.Equal(t, []int{5, 10, 20, 30}, response["value"])
	})

	t.Run("position commands", func(t *testing.T) {
		_, err := run(map[string]interface{}{"command": "INSERT_AT", "position": 1, "value": 7})
		require.NoError(t, err)
		_, err = run(map[string]interface{}{"command": "CHANGE", "position": "2", "value": 11})
		require.NoError(t, err)

		response, err := run(map[string]interface{}{"command": "GET", "position": 2})
		require.NoError(t, err)
		assert.Equal(t, 11, response["value"])

		_, err = run(map[string]interface{}{"command": "REMOVE_AT", "position": 1})
		require.NoError(t, err)

		response, err = run(map[string]interface{}{"command": "VALUES"})
		require.NoError(t, err)
		assert.Equal(t, []int{5, 11, 20, 30}, response["value"])
	})

	t.Run("invalid position", func(t *testing.T) {
		for _, command := range []string{"INSERT_AT", "REMOVE_AT", "CHANGE", "GET"} {
			_, err := run(map[string]interface{}{"command": command, "position": 4, "value": 1})
			assert.ErrorIs(t, err, datastructures.ErrInvalidPosition, command)
		}
	})

	t.Run("boundary and shape commands", func(t *testing.T) {
		_, err := run(map[string]interface{}{"command": "REVERSE"})
		require.NoError(t, err)

		response, err := run(map[string]interface{}{"command": "HEAD"})
		require.NoError(t, err)
		assert.Equal(t, 30, response["value"])
		response, err = run(map[string]interface{}{"command": "TAIL"})
		require.NoError(t, err)
		assert.Equal(t, 5, response["value"])
		response, err = run(map[string]interface{}{"command": "SIZE"})
		require.NoError(t, err)
		assert.Equal(t, 4, response["value"])

		_, err = run(map[string]interface{}{"command": "REMOVE_HEAD"})
		require.NoError(t, err)
		_, err = run(map[string]interface{}{"command": "REMOVE_TAIL"})
		require.NoError(t, err)
		_, err = run(map[string]interface{}{"command": "CLEAR"})
		require.NoError(t, err)

		response, err = run(map[string]interface{}{"command": "EMPTY"})
		require.NoError(t, err)
		assert.Equal(t, true, response["value"])

		_, err = run(map[string]interface{}{"command": "HEAD"})
		assert.ErrorIs(t, err, datastructures.ErrEmptyList)
		_, err = run(map[string]interface{}{"command": "TAIL"})
		assert.ErrorIs(t, err, datastructures.ErrEmptyList)

		_, err = run(map[string]interface{}{"command": "REMOVE_HEAD"})
		assert.NoError(t, err)
	})

	t.Run("malformed requests", func(t *testing.T) {
		_, err := h.HandleCommand(map[string]interface{}{"key": "numbers"})
		assert.EqualError(t, err, "invalid or missing 'command' field")

		_, err = h.HandleCommand(map[string]interface{}{"command": "SIZE"})
		assert.EqualError(t, err, "SIZE requires a 'key' field")

		_, err = h.HandleCommand(map[string]interface{}{"command": "SIZE", "key": ""})
		assert.EqualError(t, err, "key cannot be empty")

		_, err = run(map[string]interface{}{"command": "INSERT"})
		assert.EqualError(t, err, "INSERT requires a 'value' field")

		_, err = run(map[string]interface{}{"command": "INSERT", "value": "ten"})
		assert.Error(t, err)

		_, err = run(map[string]interface{}{"command": "SORT"})
		assert.EqualError(t, err, "unknown command: SORT")
	})
}

func TestHandleEncoded(t *testing.T) {
	h := NewCommandHandler(NewDatabase())

	send := func(request map[string]interface{}) map[string]interface{} {
		data, err := msgpack.Marshal(request)
		require.NoError(t, err)
		out, err := h.HandleEncoded(data)
		require.NoError(t, err)
		var response map[string]interface{}
		require.NoError(t, msgpack.Unmarshal(out, &response))
		return response
	}

	response := send(map[string]interface{}{"command": "INSERT", "key": "k", "value": 300})
	assert.Equal(t, "OK", response["status"])

	response = send(map[string]interface{}{"command": "HEAD", "key": "k"})
	assert.Equal(t, "OK", response["status"])
	value, err := utils.ToInt(response["value"])
	require.NoError(t, err)
	assert.Equal(t, 300, value)

	response = send(map[string]interface{}{"command": "REMOVE_AT", "key": "k", "position": 1})
	assert.Equal(t, "ERROR", response["status"])
	assert.Contains(t, response["message"], "position is invalid or out of bounds")

	out, err := h.HandleEncoded([]byte{0xc1})
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, msgpack.Unmarshal(out, &decoded))
	assert.Equal(t, "ERROR", decoded["status"])
}

func TestDatabase(t *testing.T) {
	db := NewDatabase()

	_, err := db.Values("missing")
	assert.EqualError(t, err, "key not found")
	assert.Error(t, db.Set("", nil))
	assert.Error(t, db.Do("", func(*IntList) error { return nil }))

	require.NoError(t, db.Set("b", []int{1, 2}))
	require.NoError(t, db.Do("a", func(l *IntList) error {
		l.Insert(3)
		return nil
	}))
	assert.Equal(t, []string{"a", "b"}, db.Keys())

	values, err := db.Values("b")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, values)

	db.Delete("b")
	assert.Equal(t, []string{"a"}, db.Keys())
}

func TestDatabaseObserver(t *testing.T) {
	db := NewDatabase()
	type event struct {
		key  string
		kind datastructures.Event
		size int
	}
	var events []event
	db.Observe(func(key string, kind datastructures.Event, size int) {
		events = append(events, event{key, kind, size})
	})

	require.NoError(t, db.Set("k", []int{1}))
	require.NoError(t, db.Do("k", func(l *IntList) error {
		l.Insert(2)
		l.RemoveHead()
		l.Clear()
		return nil
	}))

	assert.Equal(t, []event{
		{"k", datastructures.EventIncrease, 1},
		{"k", datastructures.EventIncrease, 2},
		{"k", datastructures.EventDecrease, 1},
		{"k", datastructures.EventReset, 0},
	}, events)
}

func TestDatabaseConcurrentAccess(t *testing.T) {
	db := NewDatabase()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = db.Do("shared", func(l *IntList) error {
					l.Insert(i*100 + j)
					return nil
				})
			}
		}(i)
	}
	wg.Wait()

	values, err := db.Values("shared")
	require.NoError(t, err)
	assert.Len(t, values, 800)
}

func TestScripts(t *testing.T) {
	tests := []struct {
		file      string
		final     []int
		lastValue interface{}
		errors    int
	}{
		{"scenario_a.yaml", []int{5, 10, 20, 30}, 4, 0},
		{"scenario_b.yaml", []int{}, nil, 1},
		{"scenario_c.yaml", []int{4, 3, 2, 1}, 1, 0},
		{"scenario_d.yaml", []int{1, 2, 3}, nil, 1},
		{"scenario_e.yaml", []int{}, 0, 0},
		{"demo.yaml", []int{}, []int{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			script, err := LoadScript(filepath.Join("..", "..", "scripts", tt.file))
			require.NoError(t, err)

			trace, err := script.Run(NewCommandHandler(NewDatabase()))
			require.NoError(t, err)
			require.Len(t, trace.Steps, len(script.Steps))

			last := trace.Steps[len(trace.Steps)-1]
			assert.Equal(t, tt.final, last.Values)
			assert.Equal(t, len(tt.final), last.Size)
			assert.Equal(t, tt.lastValue, last.Value)

			errors := 0
			for _, step := range trace.Steps {
				if step.Status == "ERROR" {
					errors++
				}
			}
			assert.Equal(t, tt.errors, errors)
		})
	}
}

func TestScenarioDTrace(t *testing.T) {
	script, err := LoadScript(filepath.Join("..", "..", "scripts", "scenario_d.yaml"))
	require.NoError(t, err)
	trace, err := script.Run(NewCommandHandler(NewDatabase()))
	require.NoError(t, err)

	assert.Equal(t, []int{1, 99, 2, 3}, trace.Steps[0].Values)
	assert.Equal(t, 99, trace.Steps[1].Value)
	assert.Equal(t, []int{1, 2, 3}, trace.Steps[2].Values)
	assert.Equal(t, "ERROR", trace.Steps[3].Status)
	assert.Contains(t, trace.Steps[3].Message, "RemoveAt: position 3")
}

func TestDemoScript(t *testing.T) {
	trace, err := DemoScript().Run(NewCommandHandler(NewDatabase()))
	require.NoError(t, err)

	assert.Equal(t, []int{98, 99, 100, 101, 102}, trace.Steps[5].Value)
	assert.Equal(t, []int{}, trace.Steps[7].Value)
	assert.Equal(t, 0, trace.Steps[7].Size)
}

func TestParseScript(t *testing.T) {
	_, err := ParseScript([]byte("steps:\n  - {value: 1}\n"))
	assert.EqualError(t, err, "step 0: invalid or missing 'command' field")

	_, err = ParseScript([]byte("steps: {"))
	assert.Error(t, err)

	_, err = LoadScript(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = (&Script{}).Run(nil)
	assert.Error(t, err)
}

func TestTraceOutput(t *testing.T) {
	script, err := ParseScript([]byte("name: out\ninitial: [1, 2]\nsteps:\n  - {command: REVERSE}\n  - {command: HEAD}\n  - {command: GET, position: 9}\n"))
	require.NoError(t, err)
	trace, err := script.Run(NewCommandHandler(NewDatabase()))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, trace.WriteText(&buf))
	text := buf.String()
	assert.Contains(t, text, "# out [1 2]")
	assert.Contains(t, text, "REVERSE      OK    size=2 [2 1]")
	assert.Contains(t, text, "value=2")
	assert.Contains(t, text, "error=GetNode: position 9")

	data, err := EncodeTrace(trace)
	require.NoError(t, err)
	decoded, err := DecodeTrace(data)
	require.NoError(t, err)
	assert.Equal(t, trace.Name, decoded.Name)
	assert.Equal(t, trace.Initial, decoded.Initial)
	require.Len(t, decoded.Steps, 3)
	assert.Equal(t, []int{2, 1}, decoded.Steps[0].Values)
	assert.Equal(t, "ERROR", decoded.Steps[2].Status)

	_, err = DecodeTrace([]byte{0xc1})
	assert.Error(t, err)
}
