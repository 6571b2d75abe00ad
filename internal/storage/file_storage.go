// internal/storage/file_storage.go
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// FileStorage 提供文件存储服务，用于导出完成的节目记录
type FileStorage struct {
	BaseDir string

	// 文件级别锁 path -> *sync.RWMutex
	fileLocks sync.Map
}

// NewFileStorage 创建文件存储服务
func NewFileStorage(baseDir string) (*FileStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("创建存储目录失败: %w", err)
	}

	return &FileStorage{BaseDir: baseDir}, nil
}

// 获取文件锁
func (fs *FileStorage) getFileLock(fullPath string) *sync.RWMutex {
	value, _ := fs.fileLocks.LoadOrStore(fullPath, &sync.RWMutex{})
	return value.(*sync.RWMutex)
}

// SaveJSON 将数据序列化为JSON并写入相对路径
func (fs *FileStorage) SaveJSON(relPath string, data interface{}) error {
	fullPath := filepath.Join(fs.BaseDir, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化失败: %w", err)
	}

	lock := fs.getFileLock(fullPath)
	lock.Lock()
	defer lock.Unlock()

	return os.WriteFile(fullPath, encoded, 0644)
}

// LoadJSON 读取相对路径的JSON文件并反序列化
func (fs *FileStorage) LoadJSON(relPath string, out interface{}) error {
	fullPath := filepath.Join(fs.BaseDir, relPath)

	lock := fs.getFileLock(fullPath)
	lock.RLock()
	defer lock.RUnlock()

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, out)
}

// List 列出目录下指定后缀的文件名（按名称排序）
func (fs *FileStorage) List(relDir, suffix string) ([]string, error) {
	fullDir := filepath.Join(fs.BaseDir, relDir)

	entries, err := os.ReadDir(fullDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if suffix == "" || strings.HasSuffix(entry.Name(), suffix) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
