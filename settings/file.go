package settings

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/ddvk/rmscribble/log"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	appFolder    = "rmscribble"
	settingsFile = "settings.yaml"
	envSettings  = "RMSCRIBBLE_SETTINGS"
)

// DefaultPath returns RMSCRIBBLE_SETTINGS when set, otherwise
// settings.yaml in the user config directory, falling back to
// ~/.rmscribble when there is none.
func DefaultPath() (string, error) {
	if p := os.Getenv(envSettings); p != "" {
		return p, nil
	}

	configDir, err := os.UserConfigDir()
	if err == nil {
		return filepath.Join(configDir, appFolder, settingsFile), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "no config or home directory")
	}
	return filepath.Join(home, "."+appFolder, settingsFile), nil
}

// FileStore keeps overrides in a YAML file.
type FileStore struct {
	mu   sync.Mutex
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the file. A missing file is not an error.
func (f *FileStore) Load(context.Context) (*Overrides, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := ioutil.ReadFile(f.Path)
	if os.IsNotExist(err) {
		log.Trace.Printf("no settings at %s, using defaults", f.Path)
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read settings")
	}

	o := &Overrides{}
	if err := yaml.Unmarshal(b, o); err != nil {
		return nil, errors.Wrapf(err, "parse settings %s", f.Path)
	}
	return o, nil
}

// Save writes o, creating the parent directory if needed.
func (f *FileStore) Save(o *Overrides) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := yaml.Marshal(o)
	if err != nil {
		return errors.Wrap(err, "encode settings")
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0700); err != nil {
		return errors.Wrap(err, "create settings directory")
	}
	log.Trace.Println("writing settings: ", f.Path)
	return ioutil.WriteFile(f.Path, b, 0644)
}

// Update loads the stored overrides, applies fn and saves the result.
func (f *FileStore) Update(ctx context.Context, fn func(*Overrides)) error {
	o, err := f.Load(ctx)
	if err != nil {
		return err
	}
	if o == nil {
		o = &Overrides{}
	}
	fn(o)
	return f.Save(o)
}
