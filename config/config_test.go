package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DASHSCOPE_MODEL", "DB_PATH", "DATASETS_DIR", "LABEL_COLUMNS"} {
		t.Setenv(key, "")
	}

	cfg := GetConfig()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "qwen3-max", cfg.ModelName)
	assert.Equal(t, "./data/badger", cfg.DBPath)
	assert.Equal(t, "./datasets", cfg.DatasetsDir)
	assert.Equal(t, []string{"표준코드명"}, cfg.LabelColumns)
}

func TestGetConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("LABEL_COLUMNS", "표준코드명, 상품명 ,, ")

	cfg := GetConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"표준코드명", "상품명"}, cfg.LabelColumns)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a"}, splitList("a"))
	assert.Equal(t, []string{"a", "b"}, splitList(" a , b "))
}
