package results

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// JSONStore keeps results as one indented json file per session in a directory.
func NewJSONStore(dir string) Store {
	return &JSONStore{
		base: dir,
	}
}

type JSONStore struct {
	base string

	mutex sync.RWMutex
}

func (js *JSONStore) listFiles() ([]string, error) {
	files, err := ioutil.ReadDir(js.base)

	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	var list []string

	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
			continue
		}

		list = append(list, strings.TrimSuffix(file.Name(), ".json"))
	}

	sort.Strings(list)

	return list, nil
}

func (js *JSONStore) encodeFile(filename string, results *SessionResults) error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	if _, err := os.Stat(js.base); os.IsNotExist(err) {
		err := os.MkdirAll(js.base, 0755)

		if err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(js.base, filename))

	if err != nil {
		return err
	}

	defer f.Close()

	return results.WriteJSON(f)
}

func (js *JSONStore) decodeFile(filename string, out interface{}) error {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	f, err := os.Open(filepath.Join(js.base, filename))

	if os.IsNotExist(err) {
		return ErrResultsNotFound
	} else if err != nil {
		return err
	}

	defer f.Close()

	return json.NewDecoder(f).Decode(out)
}

func (js *JSONStore) UpsertResults(results *SessionResults) error {
	return js.encodeFile(results.SessionID.String()+".json", results)
}

func (js *JSONStore) FindResultsByID(id string) (*SessionResults, error) {
	var results *SessionResults

	if err := js.decodeFile(id+".json", &results); err != nil {
		return nil, err
	}

	return results, nil
}

// ListResults returns the stored results ordered by session ID.
func (js *JSONStore) ListResults() ([]*SessionResults, error) {
	ids, err := js.listFiles()

	if err != nil {
		return nil, err
	}

	var list []*SessionResults

	for _, id := range ids {
		results, err := js.FindResultsByID(id)

		if err != nil {
			return nil, err
		}

		list = append(list, results)
	}

	return list, nil
}

func (js *JSONStore) DeleteResults(id string) error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	err := os.Remove(filepath.Join(js.base, id+".json"))

	if os.IsNotExist(err) {
		return nil
	}

	return err
}

func (js *JSONStore) Close() error {
	return nil
}
