package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Load 加载 YAML 配置到 out，并监听文件变更热更新。
//
// 约定：
// 1) relPath 为绝对路径时直接使用；
// 2) 否则从当前目录开始逐级向上查找（便于在仓库任意子目录启动）。
func Load(relPath string, out any) {
	if relPath == "" {
		panic("config: relPath is empty")
	}

	path := relPath
	if !filepath.IsAbs(relPath) {
		curDir, err := os.Getwd()
		if err != nil {
			panic(err)
		}
		path = findUpward(curDir, relPath)
	}
	load(path, out)
}

func findUpward(startDir, relPath string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, relPath)
		if fileExist(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic(fmt.Sprintf("config file not exist, searched %s upward from: %s", relPath, startDir))
		}
		dir = parent
	}
}

func load(configPath string, out any) {
	if !fileExist(configPath) {
		panic(fmt.Sprintf("config file not exist, configPath=%v", configPath))
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.OnConfigChange(func(e fsnotify.Event) {
		log.Println("配置文件变更，重新加载")
		if err := v.Unmarshal(out); err != nil {
			log.Printf("config reload unmarshal failed: %v", err)
		}
	})
	v.WatchConfig()

	if err := v.ReadInConfig(); err != nil {
		panic(err)
	}
	if err := v.Unmarshal(out); err != nil {
		panic(err)
	}
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
