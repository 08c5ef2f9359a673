// Package seed 讀取預載的食譜庫條目檔案（YAML 或 JSON）
package seed

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cookbook-service/internal/pkg/common"

	"gopkg.in/yaml.v3"
)

// File 條目檔案格式
//
//	entries:
//	  - type: ingredient
//	    name: Egg
//	    cookTime: 5
//	  - type: recipe
//	    name: Omelette
//	    requiredItems:
//	      - name: Egg
//	        quantity: 3
type File struct {
	Entries []common.EntryRequest `json:"entries" yaml:"entries"`
}

// LoadFile 依副檔名解析條目檔案
func LoadFile(path string) ([]common.EntryRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	}
	return nil, fmt.Errorf("unsupported seed file extension %q", filepath.Ext(path))
}

// ParseYAML 解析 YAML 條目，禁止未知欄位
func ParseYAML(data []byte) ([]common.EntryRequest, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse seed yaml: %w", err)
	}
	return f.Entries, nil
}

// ParseJSON 解析 JSON 條目，禁止未知欄位
func ParseJSON(data []byte) ([]common.EntryRequest, error) {
	var f File
	if err := common.ParseJSONBytesStrict(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed json: %w", err)
	}
	return f.Entries, nil
}
