package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vskvj3/dlist/internal/utils"
)

type CommandHandler struct {
	Database *Database
}

// Create a new CommandHandler instance
func NewCommandHandler(db *Database) *CommandHandler {
	return &CommandHandler{Database: db}
}

// HandleCommand runs one request against the list named by its 'key' field.
// Malformed requests and failed list operations are returned as errors.
func (h *CommandHandler) HandleCommand(request map[string]interface{}) (map[string]interface{}, error) {
	logger := utils.GetLogger()

	command, ok := request["command"].(string)
	if !ok {
		return nil, errors.New("invalid or missing 'command' field")
	}
	command = strings.ToUpper(command)

	key, ok := request["key"].(string)
	if !ok {
		return nil, fmt.Errorf("%s requires a 'key' field", command)
	}

	var response map[string]interface{}
	err := h.Database.Do(key, func(l *IntList) error {
		var err error
		response, err = h.apply(l, command, request)
		return err
	})
	if err != nil {
		logger.Debug(fmt.Sprintf("%s %s failed: %v", command, key, err))
		return nil, err
	}

	logger.Debug(fmt.Sprintf("%s %s ok", command, key))
	return response, nil
}

// apply dispatches a single command; the caller holds the database lock
func (h *CommandHandler) apply(l *IntList, command string, request map[string]interface{}) (map[string]interface{}, error) {
	done := map[string]interface{}{"status": "OK"}

	switch command {
	case "INSERT", "INSERT_HEAD", "INSERT_TAIL":
		value, err := intField(request, command, "value")
		if err != nil {
			return nil, err
		}
		switch command {
		case "INSERT":
			l.Insert(value)
		case "INSERT_HEAD":
			l.InsertHead(value)
		default:
			l.InsertTail(value)
		}
		return done, nil

	case "INSERT_AT":
		position, err := intField(request, command, "position")
		if err != nil {
			return nil, err
		}
		value, err := intField(request, command, "value")
		if err != nil {
			return nil, err
		}
		if err := l.InsertAt(position, value); err != nil {
			return nil, err
		}
		return done, nil

	case "REMOVE_HEAD":
		l.RemoveHead()
		return done, nil

	case "REMOVE_TAIL":
		l.RemoveTail()
		return done, nil

	case "REMOVE_AT":
		position, err := intField(request, command, "position")
		if err != nil {
			return nil, err
		}
		if err := l.RemoveAt(position); err != nil {
			return nil, err
		}
		return done, nil

	case "CHANGE":
		position, err := intField(request, command, "position")
		if err != nil {
			return nil, err
		}
		value, err := intField(request, command, "value")
		if err != nil {
			return nil, err
		}
		if err := l.Change(position, value); err != nil {
			return nil, err
		}
		return done, nil

	case "GET":
		position, err := intField(request, command, "position")
		if err != nil {
			return nil, err
		}
		node, err := l.GetNode(position)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"status": "OK", "value": node.Value}, nil

	case "HEAD":
		value, err := l.GetHead()
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"status": "OK", "value": value}, nil

	case "TAIL":
		value, err := l.GetTail()
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"status": "OK", "value": value}, nil

	case "SIZE":
		return map[string]interface{}{"status": "OK", "value": l.Size()}, nil

	case "EMPTY":
		return map[string]interface{}{"status": "OK", "value": l.IsEmpty()}, nil

	case "CLEAR":
		l.Clear()
		return done, nil

	case "REVERSE":
		l.Reverse()
		return done, nil

	case "VALUES":
		return map[string]interface{}{"status": "OK", "value": l.Values()}, nil

	default:
		return nil, fmt.Errorf("unknown command: %s", command)
	}
}

// HandleEncoded decodes a msgpack request, runs it and encodes the response.
// Failures are reported inside the encoded response.
func (h *CommandHandler) HandleEncoded(data []byte) ([]byte, error) {
	request, err := utils.DecodeRequest(data)
	if err != nil {
		return utils.EncodeResponse(errorResponse("failed to decode request: " + err.Error()))
	}

	response, err := h.HandleCommand(request)
	if err != nil {
		return utils.EncodeResponse(errorResponse(err.Error()))
	}
	return utils.EncodeResponse(response)
}

func errorResponse(message string) map[string]interface{} {
	return map[string]interface{}{"status": "ERROR", "message": message}
}

// intField reads an integer field of any encoded width
func intField(request map[string]interface{}, command, field string) (int, error) {
	raw, ok := request[field]
	if !ok {
		return 0, fmt.Errorf("%s requires a '%s' field", command, field)
	}
	v, err := utils.ToInt(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: '%s' field: %w", command, field, err)
	}
	return v, nil
}
