package jsonc

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
)

// Strip removes comment lines from json-ish config data.
// Only whole lines whose first non-space characters are "//" are dropped,
// trailing comments on data lines are not supported.
func Strip(data []byte) []byte {
	out := []byte{}
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimSpace(line), []byte("//")) {
			continue
		}
		out = append(out, line...)
	}
	return out
}

// ReadFile reads the given file & strips comment lines.
func ReadFile(fpath string) ([]byte, error) {
	data, err := ioutil.ReadFile(fpath)
	if err != nil {
		return nil, err
	}
	return Strip(data), nil
}

// Unmarshal parses comment-tolerant json into v.
func Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(Strip(data), v)
}
