// Package store persists chat histories, dataset metadata and suggestion
// pools as JSON documents in badger, keyed by type prefix.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"talkdata/models"
)

const (
	chatPrefix    = "chat:"
	suggestPrefix = "suggest:"
	datasetPrefix = "dataset:"
)

type Store struct {
	badgerDB *badger.DB
}

func New(dbPath string) (*Store, error) {
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Disable badger logging for cleaner output

	badgerDB, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Store{badgerDB: badgerDB}, nil
}

func (s *Store) Close() error {
	return s.badgerDB.Close()
}

func (s *Store) put(key string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return s.badgerDB.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get unmarshals the document at key into out. It reports false without an
// error when the key does not exist.
func (s *Store) get(key string, out interface{}) (bool, error) {
	err := s.badgerDB.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})
	if err == badger.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) delete(key string) error {
	return s.badgerDB.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

func (s *Store) UpsertChat(history *models.ChatHistory) error {
	return s.put(chatPrefix+history.ChatID, history)
}

func (s *Store) GetChat(chatID string) (*models.ChatHistory, error) {
	var history models.ChatHistory
	found, err := s.get(chatPrefix+chatID, &history)
	if err != nil || !found {
		return nil, err
	}
	return &history, nil
}

func (s *Store) DeleteChat(chatID string) error {
	return s.delete(chatPrefix + chatID)
}

// ListChats returns summaries of all stored conversations, newest first.
func (s *Store) ListChats() ([]models.ChatSummary, error) {
	var summaries []models.ChatSummary

	err := s.badgerDB.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chatPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var history models.ChatHistory
				if err := json.Unmarshal(val, &history); err != nil {
					return err
				}
				summaries = append(summaries, models.ChatSummary{
					ChatID:       history.ChatID,
					DatasetID:    history.DatasetID,
					Title:        history.Title,
					MessageCount: len(history.Messages),
					CreatedAt:    history.CreatedAt,
					UpdatedAt:    history.UpdatedAt,
				})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
	return summaries, nil
}

func (s *Store) ListChatsByDataset(datasetID string) ([]models.ChatSummary, error) {
	all, err := s.ListChats()
	if err != nil {
		return nil, err
	}
	var summaries []models.ChatSummary
	for _, sum := range all {
		if sum.DatasetID == datasetID {
			summaries = append(summaries, sum)
		}
	}
	return summaries, nil
}

func (s *Store) UpsertSuggestions(doc *models.SuggestedQuestions) error {
	return s.put(suggestPrefix+doc.DatasetID, doc)
}

func (s *Store) GetSuggestions(datasetID string) (*models.SuggestedQuestions, error) {
	var doc models.SuggestedQuestions
	found, err := s.get(suggestPrefix+datasetID, &doc)
	if err != nil || !found {
		return nil, err
	}
	return &doc, nil
}

func (s *Store) UpsertDataset(meta *models.DatasetMeta) error {
	return s.put(datasetPrefix+meta.DatasetID, meta)
}

func (s *Store) GetDataset(datasetID string) (*models.DatasetMeta, error) {
	var meta models.DatasetMeta
	found, err := s.get(datasetPrefix+datasetID, &meta)
	if err != nil || !found {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) ListDatasets() ([]models.DatasetMeta, error) {
	var datasets []models.DatasetMeta

	err := s.badgerDB.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(datasetPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var meta models.DatasetMeta
				if err := json.Unmarshal(val, &meta); err != nil {
					return err
				}
				datasets = append(datasets, meta)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(datasets, func(i, j int) bool {
		return datasets[i].UpdatedAt.After(datasets[j].UpdatedAt)
	})
	return datasets, nil
}

// LoadDatasetsFromDir imports dataset metadata descriptors (*.json) from a
// directory at startup. Existing entries for the same dataset ID are
// overwritten, so editing a descriptor and restarting picks up the change.
func (s *Store) LoadDatasetsFromDir(datasetsDir string) (int, error) {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(datasetsDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create datasets directory: %w", err)
	}

	loaded := 0
	err := filepath.Walk(datasetsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && strings.HasSuffix(strings.ToLower(info.Name()), ".json") {
			content, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			var meta models.DatasetMeta
			if err := json.Unmarshal(content, &meta); err != nil {
				return fmt.Errorf("failed to parse dataset descriptor %s: %w", info.Name(), err)
			}
			if meta.DatasetID == "" {
				return fmt.Errorf("dataset descriptor %s has no dataset_id", info.Name())
			}

			if err := s.UpsertDataset(&meta); err != nil {
				return err
			}
			loaded++
		}
		return nil
	})

	return loaded, err
}
