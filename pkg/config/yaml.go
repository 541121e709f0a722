// ABOUTME: YAML loaders for the sources and interests files
// ABOUTME: Walks yaml.Node mappings directly so topic order follows the file

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	coreerrors "newsdigest/core/errors"
)

// LoadSources reads the topic to feed-URL mapping plus fetch settings.
// The file shape matches config/sources.yaml:
//
//	rss_feeds:
//	  ai:
//	    - https://example.com/feed.xml
//	settings:
//	  freshness_hours: 24
//	  max_articles_per_feed: 50
func LoadSources(path string) (SourcesConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return SourcesConfig{}, &coreerrors.ConfigError{File: path, Message: err.Error()}
	}

	var doc struct {
		RSSFeeds yaml.Node `yaml:"rss_feeds"`
		Settings struct {
			FreshnessHours     int `yaml:"freshness_hours"`
			MaxArticlesPerFeed int `yaml:"max_articles_per_feed"`
		} `yaml:"settings"`
	}

	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return SourcesConfig{}, &coreerrors.ConfigError{File: path, Message: err.Error()}
	}

	cfg := SourcesConfig{
		FreshnessHours:     doc.Settings.FreshnessHours,
		MaxArticlesPerFeed: doc.Settings.MaxArticlesPerFeed,
	}
	if cfg.FreshnessHours == 0 {
		cfg.FreshnessHours = DefaultFreshnessHours
	}
	if cfg.MaxArticlesPerFeed == 0 {
		cfg.MaxArticlesPerFeed = DefaultMaxPerFeed
	}

	err = eachMappingEntry(&doc.RSSFeeds, func(key string, value *yaml.Node) error {
		var urls []string
		if err := value.Decode(&urls); err != nil {
			return fmt.Errorf("topic %s: %v", key, err)
		}
		cfg.Topics = append(cfg.Topics, TopicFeeds{Name: key, URLs: urls})
		return nil
	})
	if err != nil {
		return SourcesConfig{}, &coreerrors.ConfigError{File: path, Message: err.Error()}
	}

	return cfg, nil
}

// LoadInterests reads the weighted interest profile. The file shape
// matches config/topics.yaml:
//
//	topics:
//	  ai:
//	    weight: 1.5
//	    keywords: [llm, agents]
//
// A missing file is not an error; scoring falls back to a generic
// interest description.
func LoadInterests(path string) (InterestsConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return InterestsConfig{}, nil
		}
		return InterestsConfig{}, &coreerrors.ConfigError{File: path, Message: err.Error()}
	}

	var doc struct {
		Topics yaml.Node `yaml:"topics"`
	}

	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return InterestsConfig{}, &coreerrors.ConfigError{File: path, Message: err.Error()}
	}

	var cfg InterestsConfig
	err = eachMappingEntry(&doc.Topics, func(key string, value *yaml.Node) error {
		var entry struct {
			Weight   float64  `yaml:"weight"`
			Keywords []string `yaml:"keywords"`
		}
		if err := value.Decode(&entry); err != nil {
			return fmt.Errorf("topic %s: %v", key, err)
		}
		if entry.Weight == 0 {
			entry.Weight = 1.0
		}
		cfg.Topics = append(cfg.Topics, InterestTopic{
			Name:     key,
			Weight:   entry.Weight,
			Keywords: entry.Keywords,
		})
		return nil
	})
	if err != nil {
		return InterestsConfig{}, &coreerrors.ConfigError{File: path, Message: err.Error()}
	}

	return cfg, nil
}

// eachMappingEntry visits a YAML mapping in document order. yaml.v3
// decodes mappings into Go maps with randomized iteration, which would
// make topic ordering nondeterministic.
func eachMappingEntry(node *yaml.Node, fn func(key string, value *yaml.Node) error) error {
	if node.Kind == 0 || node.IsZero() {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("expected a mapping, got %v", node.Kind)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		if err := fn(node.Content[i].Value, node.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}
