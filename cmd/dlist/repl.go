package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vskvj3/dlist/internal/core"
)

// commandArgs lists the integer arguments each command takes, in order
var commandArgs = map[string][]string{
	"INSERT":      {"value"},
	"INSERT_HEAD": {"value"},
	"INSERT_TAIL": {"value"},
	"INSERT_AT":   {"position", "value"},
	"REMOVE_HEAD": nil,
	"REMOVE_TAIL": nil,
	"REMOVE_AT":   {"position"},
	"CHANGE":      {"position", "value"},
	"GET":         {"position"},
	"HEAD":        nil,
	"TAIL":        nil,
	"SIZE":        nil,
	"EMPTY":       nil,
	"CLEAR":       nil,
	"REVERSE":     nil,
	"VALUES":      nil,
}

// argParser parses and validates the command and its arguments
func argParser(input string) (map[string]interface{}, error) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil, fmt.Errorf("no command entered")
	}

	command := strings.ToUpper(parts[0])
	args, ok := commandArgs[command]
	if !ok {
		return nil, fmt.Errorf("unknown command: %s", command)
	}
	if len(parts)-1 != len(args) {
		if len(args) == 0 {
			return nil, fmt.Errorf("%s does not require any arguments", command)
		}
		return nil, fmt.Errorf("%s requires %s", command, strings.Join(args, " and "))
	}

	request := map[string]interface{}{
		"command": command,
		"key":     core.DefaultKey,
	}
	for i, name := range args {
		n, err := strconv.Atoi(parts[i+1])
		if err != nil {
			return nil, fmt.Errorf("%s must be an integer", name)
		}
		request[name] = n
	}
	return request, nil
}

// repl reads one command per line and prints the handler's response
func repl(handler *core.CommandHandler, in io.Reader, out io.Writer) {
	fmt.Fprintln(out, "Type commands (e.g., INSERT 10, INSERT_AT 1 99, REMOVE_AT 0, VALUES) and press Enter.")
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, ">> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		request, err := argParser(input)
		if err != nil {
			fmt.Fprintln(out, "Error:", err)
			continue
		}

		data, err := msgpack.Marshal(request)
		if err != nil {
			fmt.Fprintln(out, "Error serializing request:", err)
			continue
		}

		encoded, err := handler.HandleEncoded(data)
		if err != nil {
			fmt.Fprintln(out, "Error encoding response:", err)
			continue
		}

		var response map[string]interface{}
		if err := msgpack.Unmarshal(encoded, &response); err != nil {
			fmt.Fprintln(out, "Error deserializing response:", err)
			continue
		}

		if status, _ := response["status"].(string); status == "OK" {
			if value, ok := response["value"]; ok {
				fmt.Fprintln(out, value)
			} else {
				fmt.Fprintln(out, "OK")
			}
		} else {
			fmt.Fprintln(out, "Error:", response["message"])
		}
	}
}
