package audio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"go.uber.org/zap"
)

// artifactRe — имена, которые создаёт синтезатор. Чужие файлы в каталоге не трогаем.
var artifactRe = regexp.MustCompile(`^speech_[0-9a-f]{32}\.mp3$`)

// IsArtifactName сообщает, похоже ли имя на артефакт синтеза.
func IsArtifactName(name string) bool { return artifactRe.MatchString(name) }

// Cleaner удаляет старые mp3 по TTL в каталоге вывода.
type Cleaner struct {
	logger *zap.SugaredLogger
	now    func() time.Time
}

func NewCleaner(logger *zap.SugaredLogger) *Cleaner {
	return &Cleaner{logger: logger, now: time.Now}
}

// Clean удаляет артефакты старше ttl из dir и возвращает число удалённых файлов.
func (c *Cleaner) Clean(dir string, ttl time.Duration) int {
	if ttl <= 0 || dir == "" {
		return 0
	}

	deadline := c.now().Add(-ttl)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0
		}
		c.logger.Warnw("Не удалось прочитать каталог для очистки", "dir", dir, "error", err)
		return 0
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() || !IsArtifactName(e.Name()) {
			continue
		}
		fi, statErr := e.Info()
		if statErr != nil {
			c.logger.Warnw("Не удалось получить информацию о файле при очистке", "name", e.Name(), "error", statErr)
			continue
		}
		if fi.ModTime().Before(deadline) {
			full := filepath.Join(dir, e.Name())
			if err := os.Remove(full); err != nil {
				c.logger.Warnw("Не удалось удалить старый файл", "path", full, "error", err)
				continue
			}
			removed++
		}
	}
	if removed > 0 {
		c.logger.Infow("Очистка старых аудиофайлов выполнена", "dir", dir, "removed", removed)
	}
	return removed
}

// Run периодически вызывает Clean до отмены контекста.
func (c *Cleaner) Run(ctx context.Context, dir string, ttl, interval time.Duration) {
	if ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Clean(dir, ttl)
		}
	}
}
