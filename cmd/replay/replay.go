package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
)

type replayOptions struct {
	Target   string
	Delay    time.Duration
	Timeout  time.Duration
	FailFast bool
}

type delivery struct {
	Status int
	Body   []byte
}

type replayer struct {
	opts replayOptions
	out  io.Writer
	post func(target string, body []byte, timeout time.Duration) (delivery, error)
}

var errFailFast = errors.New("replay stopped at first failed delivery")

func newReplayer(opts replayOptions, out io.Writer) *replayer {
	return &replayer{opts: opts, out: out, post: postJSON}
}

// Run replays every payload of every file in order. Failed deliveries are
// reported; with FailFast the first one ends the run with an error.
func (r *replayer) Run(files []string) error {
	sent, failed := 0, 0
	for _, file := range files {
		payloads, err := loadPayloads(file)
		if err != nil {
			return err
		}
		for i, payload := range payloads {
			if sent > 0 && r.opts.Delay > 0 {
				time.Sleep(r.opts.Delay)
			}
			sent++

			res, err := r.post(r.opts.Target, payload, r.opts.Timeout)
			if err != nil {
				failed++
				fmt.Fprintf(r.out, "%s[%d]: error: %v\n", file, i, err)
			} else {
				fmt.Fprintf(r.out, "%s[%d]: %d %s\n", file, i, res.Status, bytes.TrimSpace(res.Body))
				if res.Status != fiber.StatusOK {
					failed++
				}
			}
			if failed > 0 && r.opts.FailFast {
				return errFailFast
			}
		}
	}

	fmt.Fprintf(r.out, "sent=%d failed=%d\n", sent, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d deliveries failed", failed, sent)
	}
	return nil
}

// loadPayloads reads a file holding one JSON object or an array of objects.
func loadPayloads(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
	}

	switch trimmed[0] {
	case '{':
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("%s: invalid JSON object", path)
		}
		return []json.RawMessage{json.RawMessage(trimmed)}, nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		for i, item := range items {
			if t := bytes.TrimSpace(item); len(t) == 0 || t[0] != '{' {
				return nil, fmt.Errorf("%s: element %d is not an object", path, i)
			}
		}
		return items, nil
	default:
		return nil, fmt.Errorf("%s: expected a JSON object or array", path)
	}
}

func postJSON(target string, body []byte, timeout time.Duration) (delivery, error) {
	agent := fiber.Post(target)
	agent.ContentType(fiber.MIMEApplicationJSON)
	agent.Body(body)
	if timeout > 0 {
		agent.Timeout(timeout)
	}

	status, resp, errs := agent.Bytes()
	if len(errs) > 0 {
		return delivery{}, errors.Join(errs...)
	}
	return delivery{Status: status, Body: resp}, nil
}
