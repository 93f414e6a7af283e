package config

import (
	"os"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

type MuseConfig struct {
	Name              string   `yaml:"name"`
	TriggerPhrase     string   `yaml:"triggerPhrase"`
	VoiceTone         string   `yaml:"voiceTone"`
	Purpose           string   `yaml:"purpose"`
	TasksSupported    []string `yaml:"tasksSupported"`
	Catchphrases      []string `yaml:"catchphrases"`
	SignatureQuestion string   `yaml:"signatureQuestion"`
	SampleTasks       []string `yaml:"sampleTasks"`
	RitualSystem      string   `yaml:"ritualSystem"`

	Capabilities map[string]CapabilityConfig `yaml:"capabilities"`
}

type CapabilityConfig struct {
	Description string   `yaml:"description"`
	Functions   []string `yaml:"functions"`
}

func LoadMuseFromFile(file string) (muse MuseConfig, err error) {
	var yamlBytes []byte
	if yamlBytes, err = os.ReadFile(file); err != nil {
		err = errors.Wrapf(err, "failed to read file %s", file)
		return
	}

	if err = yaml.Unmarshal(yamlBytes, &muse); err != nil {
		err = errors.Wrapf(err, "failed to unmarshal file %s", file)
		return
	}

	return
}

func LoadMusesFromFiles(files []string) ([]MuseConfig, error) {
	muses := make([]MuseConfig, 0, len(files))
	for _, file := range files {
		muse, err := LoadMuseFromFile(file)
		if err != nil {
			return nil, err
		}
		muses = append(muses, muse)
	}
	return muses, nil
}
