package benchmarks

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
)

// WriteKeys writes one decimal key per line.
func WriteKeys(w io.Writer, keys []int64) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 20)
	for _, k := range keys {
		buf = strconv.AppendInt(buf[:0], k, 10)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadKeys parses one integer per line. Surrounding whitespace and blank
// lines are ignored; anything else that is not an integer is an error.
func ReadKeys(r io.Reader) ([]int64, error) {
	var keys []int64
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		k, err := strconv.ParseInt(string(text), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		keys = append(keys, k)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

func WriteFile(path string, keys []int64) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return errors.Wrap(WriteKeys(f, keys), path)
}

func ReadFile(path string) ([]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	keys, err := ReadKeys(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return keys, nil
}

// GenerateFiles writes the dataset of every ordering into dir and returns
// the written paths in Orderings order.
func GenerateFiles(dir string, opts GenOptions) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var paths []string
	for _, o := range Orderings {
		keys, err := Generate(o, opts)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(dir, o.FileName())
		if err := WriteFile(path, keys); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
